// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// ReportStore handles moderation reports and the admin audit trail.
type ReportStore struct {
	db *sql.DB
}

// NewReportStore creates a new ReportStore with the given database connection.
func NewReportStore(db *sql.DB) *ReportStore {
	return &ReportStore{db: db}
}

const reportColumns = `id, target_type, item_id, reporter_id, reason, status, resolution_notes, resolved_at, created_at`

func scanReport(row interface{ Scan(...any) error }) (*models.Report, error) {
	r := &models.Report{}
	err := row.Scan(&r.ID, &r.TargetType, &r.ItemID, &r.ReporterID, &r.Reason,
		&r.Status, &r.ResolutionNotes, &r.ResolvedAt, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Create inserts a new open report.
func (s *ReportStore) Create(targetType models.ReportTarget, itemID, reporterID uuid.UUID, reason string) (*models.Report, error) {
	row := s.db.QueryRow(`
		INSERT INTO reports (target_type, item_id, reporter_id, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING `+reportColumns,
		targetType, itemID, reporterID, reason)
	r, err := scanReport(row)
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	return r, nil
}

// FindByID retrieves a report by ID. Returns nil if absent.
func (s *ReportStore) FindByID(id uuid.UUID) (*models.Report, error) {
	row := s.db.QueryRow(`SELECT `+reportColumns+` FROM reports WHERE id = $1`, id)
	r, err := scanReport(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find report: %w", err)
	}
	return r, nil
}

// FindActive returns the reporter's open or in-review report against an
// item, if any. Used to reject duplicate filings.
func (s *ReportStore) FindActive(targetType models.ReportTarget, itemID, reporterID uuid.UUID) (*models.Report, error) {
	row := s.db.QueryRow(`
		SELECT `+reportColumns+` FROM reports
		WHERE target_type = $1 AND item_id = $2 AND reporter_id = $3
		  AND status IN ('open', 'in_review')
		LIMIT 1
	`, targetType, itemID, reporterID)
	r, err := scanReport(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active report: %w", err)
	}
	return r, nil
}

// List returns reports for the admin queue, newest first, optionally
// filtered by status, with the reporter card joined in.
func (s *ReportStore) List(status models.ReportStatus, limit, offset int) ([]models.Report, int, error) {
	where := ``
	countArgs := []any{}
	pageArgs := []any{limit, offset}
	if status != "" {
		where = ` WHERE r.status = $3`
		countArgs = append(countArgs, status)
		pageArgs = append(pageArgs, status)
	}

	var total int
	countWhere := ``
	if status != "" {
		countWhere = ` WHERE status = $1`
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM reports`+countWhere, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT r.id, r.target_type, r.item_id, r.reporter_id, r.reason, r.status,
		       r.resolution_notes, r.resolved_at, r.created_at,
		       u.id, u.username, u.display_name, u.avatar_url, u.headline, u.is_verified
		FROM reports r
		JOIN users u ON u.id = r.reporter_id`+where+`
		ORDER BY r.created_at DESC
		LIMIT $1 OFFSET $2
	`, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		r := models.Report{Reporter: &models.AuthorCard{}}
		if err := rows.Scan(
			&r.ID, &r.TargetType, &r.ItemID, &r.ReporterID, &r.Reason, &r.Status,
			&r.ResolutionNotes, &r.ResolvedAt, &r.CreatedAt,
			&r.Reporter.ID, &r.Reporter.Username, &r.Reporter.DisplayName,
			&r.Reporter.AvatarURL, &r.Reporter.Headline, &r.Reporter.IsVerified,
		); err != nil {
			return nil, 0, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, total, rows.Err()
}

// ListActiveForItem returns all open and in-review reports against one item,
// oldest first.
func (s *ReportStore) ListActiveForItem(targetType models.ReportTarget, itemID uuid.UUID) ([]models.Report, error) {
	rows, err := s.db.Query(`
		SELECT `+reportColumns+` FROM reports
		WHERE target_type = $1 AND item_id = $2 AND status IN ('open', 'in_review')
		ORDER BY created_at ASC
	`, targetType, itemID)
	if err != nil {
		return nil, fmt.Errorf("list active reports: %w", err)
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, *r)
	}
	return reports, rows.Err()
}

// SetStatus moves a report to a new status. Resolving stamps resolved_at and
// stores the notes; moving back out of resolved clears both.
func (s *ReportStore) SetStatus(id uuid.UUID, status models.ReportStatus, notes *string, now time.Time) (*models.Report, error) {
	var row *sql.Row
	if status == models.ReportStatusResolved {
		row = s.db.QueryRow(`
			UPDATE reports SET status = $2, resolution_notes = $3, resolved_at = $4
			WHERE id = $1
			RETURNING `+reportColumns,
			id, status, notes, now)
	} else {
		row = s.db.QueryRow(`
			UPDATE reports SET status = $2, resolution_notes = NULL, resolved_at = NULL
			WHERE id = $1
			RETURNING `+reportColumns,
			id, status)
	}
	r, err := scanReport(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("set report status: %w", err)
	}
	return r, nil
}

// ResolveAllForItem resolves every active report against an item and returns
// how many were closed. Used by the takedown cascade.
func (s *ReportStore) ResolveAllForItem(targetType models.ReportTarget, itemID uuid.UUID, notes string, now time.Time) (int, error) {
	res, err := s.db.Exec(`
		UPDATE reports SET status = 'resolved', resolution_notes = $3, resolved_at = $4
		WHERE target_type = $1 AND item_id = $2 AND status IN ('open', 'in_review')
	`, targetType, itemID, notes, now)
	if err != nil {
		return 0, fmt.Errorf("resolve reports for item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("resolve reports rows affected: %w", err)
	}
	return int(n), nil
}

// CreateAction appends one admin moderation audit entry.
func (s *ReportStore) CreateAction(adminID uuid.UUID, targetType string, targetID uuid.UUID, action string, notes *string) (*models.ModerationAction, error) {
	a := &models.ModerationAction{}
	err := s.db.QueryRow(`
		INSERT INTO moderation_actions (admin_id, target_type, target_id, action, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, admin_id, target_type, target_id, action, notes, created_at
	`, adminID, targetType, targetID, action, notes).Scan(
		&a.ID, &a.AdminID, &a.TargetType, &a.TargetID, &a.Action, &a.Notes, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create moderation action: %w", err)
	}
	return a, nil
}

// ListActions returns the moderation audit trail, newest first, with the
// acting admin's card joined in.
func (s *ReportStore) ListActions(limit, offset int) ([]models.ModerationAction, error) {
	rows, err := s.db.Query(`
		SELECT a.id, a.admin_id, a.target_type, a.target_id, a.action, a.notes, a.created_at,
		       u.id, u.username, u.display_name, u.avatar_url, u.headline, u.is_verified
		FROM moderation_actions a
		JOIN users u ON u.id = a.admin_id
		ORDER BY a.created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list moderation actions: %w", err)
	}
	defer rows.Close()

	var actions []models.ModerationAction
	for rows.Next() {
		a := models.ModerationAction{Admin: &models.AuthorCard{}}
		if err := rows.Scan(
			&a.ID, &a.AdminID, &a.TargetType, &a.TargetID, &a.Action, &a.Notes, &a.CreatedAt,
			&a.Admin.ID, &a.Admin.Username, &a.Admin.DisplayName,
			&a.Admin.AvatarURL, &a.Admin.Headline, &a.Admin.IsVerified,
		); err != nil {
			return nil, fmt.Errorf("scan moderation action: %w", err)
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}
