// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportTarget identifies what kind of content a report is filed against.
type ReportTarget string

const (
	ReportTargetArticle ReportTarget = "article"
	ReportTargetComment ReportTarget = "comment"
)

// ReportStatus tracks a report through the admin review queue.
type ReportStatus string

const (
	ReportStatusOpen     ReportStatus = "open"
	ReportStatusInReview ReportStatus = "in_review"
	ReportStatusResolved ReportStatus = "resolved"
)

// Report is a user-filed complaint against an article or comment. A
// reporter may have at most one open or in-review report per item.
type Report struct {
	ID              uuid.UUID    `json:"id"`
	TargetType      ReportTarget `json:"target_type"`
	ItemID          uuid.UUID    `json:"item_id"`
	ReporterID      uuid.UUID    `json:"reporter_id"`
	Reason          string       `json:"reason"`
	Status          ReportStatus `json:"status"`
	ResolutionNotes *string      `json:"resolution_notes,omitempty"`
	ResolvedAt      *time.Time   `json:"resolved_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`

	Reporter *AuthorCard `json:"reporter,omitempty"`
}

// IsActive returns true while the report still occupies the review queue.
// Active reports block duplicate filings by the same reporter.
func (r *Report) IsActive() bool {
	return r.Status == ReportStatusOpen || r.Status == ReportStatusInReview
}

// ModerationAction is an append-only audit entry written for every admin
// moderation decision.
type ModerationAction struct {
	ID         uuid.UUID `json:"id"`
	AdminID    uuid.UUID `json:"admin_id"`
	TargetType string    `json:"target_type"`
	TargetID   uuid.UUID `json:"target_id"`
	Action     string    `json:"action"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	Admin *AuthorCard `json:"admin,omitempty"`
}
