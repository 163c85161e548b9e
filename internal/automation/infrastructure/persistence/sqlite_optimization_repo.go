package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/google/uuid"
)

// SQLiteOptimizationRepository implements domain.OptimizationRepository using SQLite.
type SQLiteOptimizationRepository struct {
	db *sql.DB
}

// NewSQLiteOptimizationRepository creates a new SQLite optimization repository.
func NewSQLiteOptimizationRepository(db *sql.DB) *SQLiteOptimizationRepository {
	return &SQLiteOptimizationRepository{db: db}
}

// Create creates a new AI optimization record.
func (r *SQLiteOptimizationRepository) Create(ctx context.Context, opt *domain.AIOptimization) error {
	query := `
		INSERT INTO ai_optimizations (
			id, organization_id, campaign_id, kind, recommendation,
			estimated_impact, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		opt.ID.String(),
		opt.OrganizationID.String(),
		opt.CampaignID,
		opt.Kind,
		opt.Recommendation,
		opt.EstimatedImpact,
		string(opt.Status),
		opt.CreatedAt.Format(time.RFC3339Nano),
		opt.UpdatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// Update updates an existing optimization record.
func (r *SQLiteOptimizationRepository) Update(ctx context.Context, opt *domain.AIOptimization) error {
	query := `
		UPDATE ai_optimizations SET
			campaign_id = ?, kind = ?, recommendation = ?,
			estimated_impact = ?, status = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		opt.CampaignID,
		opt.Kind,
		opt.Recommendation,
		opt.EstimatedImpact,
		string(opt.Status),
		opt.UpdatedAt.Format(time.RFC3339Nano),
		opt.ID.String(),
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrOptimizationNotFound
	}
	return nil
}

// GetByID retrieves an optimization by id.
func (r *SQLiteOptimizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AIOptimization, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, organization_id, campaign_id, kind, recommendation,
			estimated_impact, status, created_at, updated_at
		FROM ai_optimizations WHERE id = ?
	`, id.String())

	opt, err := scanOptimization(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOptimizationNotFound
	}
	return opt, err
}

// List retrieves optimizations matching the filter, newest-first.
func (r *SQLiteOptimizationRepository) List(ctx context.Context, filter domain.OptimizationFilter) ([]*domain.AIOptimization, error) {
	query := `
		SELECT id, organization_id, campaign_id, kind, recommendation,
			estimated_impact, status, created_at, updated_at
		FROM ai_optimizations WHERE organization_id = ?
	`
	args := []any{filter.OrganizationID.String()}

	if filter.CampaignID != "" {
		query += " AND campaign_id = ?"
		args = append(args, filter.CampaignID)
	}
	if filter.Status != nil {
		query += " AND status = ?"
		args = append(args, string(*filter.Status))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opts []*domain.AIOptimization
	for rows.Next() {
		opt, err := scanOptimization(rows)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	return opts, rows.Err()
}

func scanOptimization(row rowScanner) (*domain.AIOptimization, error) {
	var (
		idStr, orgStr, campaignID, kind, status string
		recommendation                          sql.NullString
		estimatedImpact                         sql.NullFloat64
		createdAt, updatedAt                    string
	)

	err := row.Scan(
		&idStr, &orgStr, &campaignID, &kind, &recommendation,
		&estimatedImpact, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	orgID, err := uuid.Parse(orgStr)
	if err != nil {
		return nil, err
	}

	opt := &domain.AIOptimization{
		ID:              id,
		OrganizationID:  orgID,
		CampaignID:      campaignID,
		Kind:            kind,
		Recommendation:  recommendation.String,
		EstimatedImpact: estimatedImpact.Float64,
		Status:          domain.OptimizationStatus(status),
	}
	if opt.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, err
	}
	if opt.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, err
	}
	return opt, nil
}
