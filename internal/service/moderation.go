// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/apperr"
	"inkwell/internal/models"
	"inkwell/internal/store"
)

// ModerationService owns the report queue and the admin review flow.
type ModerationService struct {
	reports  *store.ReportStore
	articles *store.ArticleStore
	comments *store.CommentStore
}

// NewModerationService wires a ModerationService.
func NewModerationService(reports *store.ReportStore, articles *store.ArticleStore, comments *store.CommentStore) *ModerationService {
	return &ModerationService{reports: reports, articles: articles, comments: comments}
}

// Report files a complaint against an article or comment. A reporter may
// hold one open or in-review report per item; duplicates conflict.
func (s *ModerationService) Report(targetType models.ReportTarget, itemID, reporterID uuid.UUID, reason string) (*models.Report, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperr.Validation("reason is required")
	}

	switch targetType {
	case models.ReportTargetArticle:
		a, err := s.articles.FindByID(itemID)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, apperr.NotFound("article not found")
		}
	case models.ReportTargetComment:
		// Soft-deleted comments stay reportable for audit context.
		c, err := s.comments.FindByID(itemID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, apperr.NotFound("comment not found")
		}
	default:
		return nil, apperr.Validation("unknown report target %q", targetType)
	}

	existing, err := s.reports.FindActive(targetType, itemID, reporterID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("an active report by you already exists for this item")
	}

	return s.reports.Create(targetType, itemID, reporterID, reason)
}

// ReportContext is a report plus the content it targets. The content is
// returned even when a comment has since been soft-deleted, and the item's
// other active reports ride along so the reviewer sees the whole pile.
type ReportContext struct {
	Report        *models.Report  `json:"report"`
	Article       *models.Article `json:"article,omitempty"`
	Comment       *models.Comment `json:"comment,omitempty"`
	ActiveReports []models.Report `json:"active_reports"`
}

// GetContext fetches a report with its reported content attached.
func (s *ModerationService) GetContext(reportID uuid.UUID) (*ReportContext, error) {
	r, err := s.reports.FindByID(reportID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apperr.NotFound("report not found")
	}

	ctx := &ReportContext{Report: r}
	switch r.TargetType {
	case models.ReportTargetArticle:
		ctx.Article, err = s.articles.FindWithAuthor(r.ItemID)
	case models.ReportTargetComment:
		ctx.Comment, err = s.comments.FindByID(r.ItemID)
	}
	if err != nil {
		return nil, err
	}

	active, err := s.reports.ListActiveForItem(r.TargetType, r.ItemID)
	if err != nil {
		return nil, err
	}
	ctx.ActiveReports = make([]models.Report, 0, len(active))
	for _, other := range active {
		if other.ID != r.ID {
			ctx.ActiveReports = append(ctx.ActiveReports, other)
		}
	}
	return ctx, nil
}

// ListReports returns the review queue, optionally filtered by status.
func (s *ModerationService) ListReports(status models.ReportStatus, page, limit int) ([]models.Report, int, error) {
	if status != "" {
		switch status {
		case models.ReportStatusOpen, models.ReportStatusInReview, models.ReportStatusResolved:
		default:
			return nil, 0, apperr.Validation("unknown report status %q", status)
		}
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.reports.List(status, limit, (page-1)*limit)
}

// UpdateStatus moves a report through the review queue. Every transition
// writes a moderation audit entry. Resolving with notes containing the
// substring "delete" soft-deletes a comment target and records a second
// audit entry; article targets are only flagged, never auto-removed. The
// takedown also resolves the item's remaining active reports.
func (s *ModerationService) UpdateStatus(reportID uuid.UUID, status models.ReportStatus, notes *string, adminID uuid.UUID) (*models.Report, error) {
	switch status {
	case models.ReportStatusOpen, models.ReportStatusInReview, models.ReportStatusResolved:
	default:
		return nil, apperr.Validation("unknown report status %q", status)
	}

	r, err := s.reports.FindByID(reportID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apperr.NotFound("report not found")
	}

	now := time.Now()
	updated, err := s.reports.SetStatus(reportID, status, notes, now)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("report not found")
	}

	if _, err := s.reports.CreateAction(adminID, string(r.TargetType), r.ItemID, "report_"+string(status), notes); err != nil {
		slog.Warn("record moderation action", "report_id", reportID, "error", err)
	}

	if status == models.ReportStatusResolved && notes != nil &&
		strings.Contains(strings.ToLower(*notes), "delete") {
		s.cascadeDelete(updated, adminID, notes)
	}
	return updated, nil
}

// cascadeDelete applies the resolution-notes takedown: comment targets are
// soft-deleted, article targets only flagged. Either way the item's other
// active reports are closed along with it.
func (s *ModerationService) cascadeDelete(r *models.Report, adminID uuid.UUID, notes *string) {
	switch r.TargetType {
	case models.ReportTargetComment:
		c, err := s.comments.FindByID(r.ItemID)
		if err != nil || c == nil {
			slog.Warn("cascade target lookup", "report_id", r.ID, "error", err)
			return
		}
		if !c.IsDeleted() {
			if err := s.comments.SoftDelete(c.ID); err != nil {
				slog.Warn("cascade soft delete", "comment_id", c.ID, "error", err)
				return
			}
		}
		if _, err := s.reports.CreateAction(adminID, "comment", c.ID, "delete_comment", notes); err != nil {
			slog.Warn("record cascade action", "comment_id", c.ID, "error", err)
		}
	case models.ReportTargetArticle:
		if _, err := s.reports.CreateAction(adminID, "article", r.ItemID, "flag_article", notes); err != nil {
			slog.Warn("record cascade action", "article_id", r.ItemID, "error", err)
		}
	}

	siblingNote := "resolved with report " + r.ID.String()
	n, err := s.reports.ResolveAllForItem(r.TargetType, r.ItemID, siblingNote, time.Now())
	if err != nil {
		slog.Warn("resolve sibling reports", "report_id", r.ID, "error", err)
		return
	}
	if n > 0 {
		slog.Info("sibling reports resolved", "report_id", r.ID, "count", n)
	}
}

// Audit returns the moderation action trail, newest first.
func (s *ModerationService) Audit(page, limit int) ([]models.ModerationAction, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return s.reports.ListActions(limit, (page-1)*limit)
}
