package persistence

import (
	"context"
	"errors"

	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresOptimizationRepository implements domain.OptimizationRepository using PostgreSQL.
type PostgresOptimizationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresOptimizationRepository creates a new PostgreSQL optimization repository.
func NewPostgresOptimizationRepository(pool *pgxpool.Pool) *PostgresOptimizationRepository {
	return &PostgresOptimizationRepository{pool: pool}
}

// Create creates a new AI optimization record.
func (r *PostgresOptimizationRepository) Create(ctx context.Context, opt *domain.AIOptimization) error {
	query := `
		INSERT INTO ai_optimizations (
			id, organization_id, campaign_id, kind, recommendation,
			estimated_impact, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		opt.ID,
		opt.OrganizationID,
		opt.CampaignID,
		opt.Kind,
		opt.Recommendation,
		opt.EstimatedImpact,
		string(opt.Status),
		opt.CreatedAt,
		opt.UpdatedAt,
	)
	return err
}

// Update updates an existing optimization record.
func (r *PostgresOptimizationRepository) Update(ctx context.Context, opt *domain.AIOptimization) error {
	query := `
		UPDATE ai_optimizations SET
			campaign_id = $1, kind = $2, recommendation = $3,
			estimated_impact = $4, status = $5, updated_at = $6
		WHERE id = $7
	`

	tag, err := r.pool.Exec(ctx, query,
		opt.CampaignID,
		opt.Kind,
		opt.Recommendation,
		opt.EstimatedImpact,
		string(opt.Status),
		opt.UpdatedAt,
		opt.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOptimizationNotFound
	}
	return nil
}

// GetByID retrieves an optimization by id.
func (r *PostgresOptimizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AIOptimization, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, organization_id, campaign_id, kind, recommendation,
			estimated_impact, status, created_at, updated_at
		FROM ai_optimizations WHERE id = $1
	`, id)

	opt, err := scanPostgresOptimization(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOptimizationNotFound
	}
	return opt, err
}

// List retrieves optimizations matching the filter, newest-first.
func (r *PostgresOptimizationRepository) List(ctx context.Context, filter domain.OptimizationFilter) ([]*domain.AIOptimization, error) {
	query := `
		SELECT id, organization_id, campaign_id, kind, recommendation,
			estimated_impact, status, created_at, updated_at
		FROM ai_optimizations
		WHERE organization_id = $1
			AND ($2::text = '' OR campaign_id = $2)
			AND ($3::text IS NULL OR status = $3)
		ORDER BY created_at DESC
	`

	var status *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}

	rows, err := r.pool.Query(ctx, query, filter.OrganizationID, filter.CampaignID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opts []*domain.AIOptimization
	for rows.Next() {
		opt, err := scanPostgresOptimization(rows)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	return opts, rows.Err()
}

func scanPostgresOptimization(row pgx.Row) (*domain.AIOptimization, error) {
	var (
		opt    domain.AIOptimization
		status string
	)

	err := row.Scan(
		&opt.ID, &opt.OrganizationID, &opt.CampaignID, &opt.Kind, &opt.Recommendation,
		&opt.EstimatedImpact, &status, &opt.CreatedAt, &opt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	opt.Status = domain.OptimizationStatus(status)
	return &opt, nil
}
