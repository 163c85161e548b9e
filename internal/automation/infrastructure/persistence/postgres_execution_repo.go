package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresExecutionRepository implements domain.ExecutionRepository using PostgreSQL.
type PostgresExecutionRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresExecutionRepository creates a new PostgreSQL execution repository.
func NewPostgresExecutionRepository(pool *pgxpool.Pool) *PostgresExecutionRepository {
	return &PostgresExecutionRepository{pool: pool}
}

// Create persists a finished execution record.
func (r *PostgresExecutionRepository) Create(ctx context.Context, execution *domain.RuleExecution) error {
	triggerData, err := json.Marshal(execution.TriggerData)
	if err != nil {
		return err
	}
	actions, err := json.Marshal(execution.Actions)
	if err != nil {
		return err
	}
	affected, err := json.Marshal(execution.AffectedCampaignIDs)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO rule_executions (
			id, rule_id, organization_id, trigger_type, trigger_data,
			status, actions, affected_campaign_ids, skip_reason,
			started_at, completed_at, duration_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = r.pool.Exec(ctx, query,
		execution.ID,
		execution.RuleID,
		execution.OrganizationID,
		string(execution.TriggerType),
		triggerData,
		string(execution.Status),
		actions,
		affected,
		execution.SkipReason,
		execution.StartedAt,
		execution.CompletedAt,
		execution.Duration.Milliseconds(),
	)
	return err
}

// GetByID retrieves an execution by id.
func (r *PostgresExecutionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RuleExecution, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, rule_id, organization_id, trigger_type, trigger_data,
			status, actions, affected_campaign_ids, skip_reason,
			started_at, completed_at, duration_ms
		FROM rule_executions WHERE id = $1
	`, id)

	execution, err := scanPostgresExecution(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrExecutionNotFound
	}
	return execution, err
}

// List retrieves executions matching the filter, newest-started-first.
func (r *PostgresExecutionRepository) List(ctx context.Context, filter domain.ExecutionFilter) ([]*domain.RuleExecution, error) {
	query := `
		SELECT id, rule_id, organization_id, trigger_type, trigger_data,
			status, actions, affected_campaign_ids, skip_reason,
			started_at, completed_at, duration_ms
		FROM rule_executions
		WHERE organization_id = $1
			AND ($2::uuid IS NULL OR rule_id = $2)
			AND ($3::text IS NULL OR status = $3)
		ORDER BY started_at DESC
		LIMIT $4
	`

	var status *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = domain.DefaultExecutionListLimit
	}

	rows, err := r.pool.Query(ctx, query, filter.OrganizationID, filter.RuleID, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var executions []*domain.RuleExecution
	for rows.Next() {
		execution, err := scanPostgresExecution(rows)
		if err != nil {
			return nil, err
		}
		executions = append(executions, execution)
	}
	return executions, rows.Err()
}

func scanPostgresExecution(row pgx.Row) (*domain.RuleExecution, error) {
	var (
		execution                      domain.RuleExecution
		triggerType                    *string
		triggerData, actions, affected []byte
		status                         string
		durationMs                     int64
	)

	err := row.Scan(
		&execution.ID, &execution.RuleID, &execution.OrganizationID,
		&triggerType, &triggerData,
		&status, &actions, &affected, &execution.SkipReason,
		&execution.StartedAt, &execution.CompletedAt, &durationMs,
	)
	if err != nil {
		return nil, err
	}

	if triggerType != nil {
		execution.TriggerType = domain.TriggerType(*triggerType)
	}
	execution.Status = domain.ExecutionStatus(status)
	execution.Duration = time.Duration(durationMs) * time.Millisecond

	if err := json.Unmarshal(triggerData, &execution.TriggerData); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(actions, &execution.Actions); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(affected, &execution.AffectedCampaignIDs); err != nil {
		return nil, err
	}

	return &execution, nil
}
