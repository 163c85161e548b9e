package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/google/uuid"
)

// SQLiteExecutionRepository implements domain.ExecutionRepository using SQLite.
type SQLiteExecutionRepository struct {
	db *sql.DB
}

// NewSQLiteExecutionRepository creates a new SQLite execution repository.
func NewSQLiteExecutionRepository(db *sql.DB) *SQLiteExecutionRepository {
	return &SQLiteExecutionRepository{db: db}
}

// Create persists a finished execution record.
func (r *SQLiteExecutionRepository) Create(ctx context.Context, execution *domain.RuleExecution) error {
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
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		execution.ID.String(),
		execution.RuleID.String(),
		execution.OrganizationID.String(),
		string(execution.TriggerType),
		string(triggerData),
		string(execution.Status),
		string(actions),
		string(affected),
		nullableString(execution.SkipReason),
		execution.StartedAt.Format(time.RFC3339Nano),
		nullableTime(execution.CompletedAt),
		execution.Duration.Milliseconds(),
	)
	return err
}

// GetByID retrieves an execution by id.
func (r *SQLiteExecutionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RuleExecution, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, rule_id, organization_id, trigger_type, trigger_data,
			status, actions, affected_campaign_ids, skip_reason,
			started_at, completed_at, duration_ms
		FROM rule_executions WHERE id = ?
	`, id.String())

	execution, err := scanExecution(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrExecutionNotFound
	}
	return execution, err
}

// List retrieves executions matching the filter, newest-started-first.
func (r *SQLiteExecutionRepository) List(ctx context.Context, filter domain.ExecutionFilter) ([]*domain.RuleExecution, error) {
	query := `
		SELECT id, rule_id, organization_id, trigger_type, trigger_data,
			status, actions, affected_campaign_ids, skip_reason,
			started_at, completed_at, duration_ms
		FROM rule_executions WHERE organization_id = ?
	`
	args := []any{filter.OrganizationID.String()}

	if filter.RuleID != nil {
		query += " AND rule_id = ?"
		args = append(args, filter.RuleID.String())
	}
	if filter.Status != nil {
		query += " AND status = ?"
		args = append(args, string(*filter.Status))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = domain.DefaultExecutionListLimit
	}
	query += " ORDER BY started_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var executions []*domain.RuleExecution
	for rows.Next() {
		execution, err := scanExecution(rows)
		if err != nil {
			return nil, err
		}
		executions = append(executions, execution)
	}
	return executions, rows.Err()
}

func scanExecution(row rowScanner) (*domain.RuleExecution, error) {
	var (
		idStr, ruleStr, orgStr, triggerType, status string
		triggerData, actions, affected              string
		skipReason                                  sql.NullString
		startedAt                                   string
		completedAt                                 sql.NullString
		durationMs                                  int64
	)

	err := row.Scan(
		&idStr, &ruleStr, &orgStr, &triggerType, &triggerData,
		&status, &actions, &affected, &skipReason,
		&startedAt, &completedAt, &durationMs,
	)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	ruleID, err := uuid.Parse(ruleStr)
	if err != nil {
		return nil, err
	}
	orgID, err := uuid.Parse(orgStr)
	if err != nil {
		return nil, err
	}

	execution := &domain.RuleExecution{
		ID:             id,
		RuleID:         ruleID,
		OrganizationID: orgID,
		TriggerType:    domain.TriggerType(triggerType),
		Status:         domain.ExecutionStatus(status),
		SkipReason:     skipReason.String,
		Duration:       time.Duration(durationMs) * time.Millisecond,
	}

	if err := json.Unmarshal([]byte(triggerData), &execution.TriggerData); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(actions), &execution.Actions); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(affected), &execution.AffectedCampaignIDs); err != nil {
		return nil, err
	}
	if execution.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t, err := time.Parse(time.RFC3339Nano, completedAt.String)
		if err != nil {
			return nil, err
		}
		execution.CompletedAt = &t
	}

	return execution, nil
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
