// Package persistence provides database implementations for the
// automation repositories.
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

// SQLiteRuleRepository implements domain.RuleRepository using SQLite.
type SQLiteRuleRepository struct {
	db *sql.DB
}

// NewSQLiteRuleRepository creates a new SQLite rule repository.
func NewSQLiteRuleRepository(db *sql.DB) *SQLiteRuleRepository {
	return &SQLiteRuleRepository{db: db}
}

// Create creates a new automation rule.
func (r *SQLiteRuleRepository) Create(ctx context.Context, rule *domain.AutomationRule) error {
	trigger, err := json.Marshal(rule.Trigger)
	if err != nil {
		return err
	}
	actions, err := json.Marshal(rule.Actions)
	if err != nil {
		return err
	}
	conditions, err := marshalNullable(rule.Conditions)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO automation_rules (
			id, organization_id, name, description, rule_type,
			trigger_config, actions, conditions, status,
			last_executed, execution_count, success_count, failure_count, average_execution_ms,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		rule.ID.String(),
		rule.OrganizationID.String(),
		rule.Name,
		rule.Description,
		string(rule.Type),
		string(trigger),
		string(actions),
		conditions,
		string(rule.Status),
		nullableTime(rule.Metadata.LastExecuted),
		rule.Metadata.ExecutionCount,
		rule.Metadata.SuccessCount,
		rule.Metadata.FailureCount,
		rule.Metadata.AverageExecutionTime.Milliseconds(),
		rule.CreatedAt.Format(time.RFC3339Nano),
		rule.UpdatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// Update updates an existing automation rule.
func (r *SQLiteRuleRepository) Update(ctx context.Context, rule *domain.AutomationRule) error {
	trigger, err := json.Marshal(rule.Trigger)
	if err != nil {
		return err
	}
	actions, err := json.Marshal(rule.Actions)
	if err != nil {
		return err
	}
	conditions, err := marshalNullable(rule.Conditions)
	if err != nil {
		return err
	}

	query := `
		UPDATE automation_rules SET
			name = ?, description = ?, rule_type = ?,
			trigger_config = ?, actions = ?, conditions = ?, status = ?,
			last_executed = ?, execution_count = ?, success_count = ?, failure_count = ?, average_execution_ms = ?,
			updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		rule.Name,
		rule.Description,
		string(rule.Type),
		string(trigger),
		string(actions),
		conditions,
		string(rule.Status),
		nullableTime(rule.Metadata.LastExecuted),
		rule.Metadata.ExecutionCount,
		rule.Metadata.SuccessCount,
		rule.Metadata.FailureCount,
		rule.Metadata.AverageExecutionTime.Milliseconds(),
		rule.UpdatedAt.Format(time.RFC3339Nano),
		rule.ID.String(),
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrRuleNotFound
	}
	return nil
}

// Delete removes a rule, reporting whether it existed.
func (r *SQLiteRuleRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM automation_rules WHERE id = ?", id.String())
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// GetByID retrieves a rule by id.
func (r *SQLiteRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AutomationRule, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, organization_id, name, description, rule_type,
			trigger_config, actions, conditions, status,
			last_executed, execution_count, success_count, failure_count, average_execution_ms,
			created_at, updated_at
		FROM automation_rules WHERE id = ?
	`, id.String())

	rule, err := scanRule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRuleNotFound
	}
	return rule, err
}

// List retrieves rules matching the filter, newest-created-first.
func (r *SQLiteRuleRepository) List(ctx context.Context, filter domain.RuleFilter) ([]*domain.AutomationRule, error) {
	query := `
		SELECT id, organization_id, name, description, rule_type,
			trigger_config, actions, conditions, status,
			last_executed, execution_count, success_count, failure_count, average_execution_ms,
			created_at, updated_at
		FROM automation_rules WHERE organization_id = ?
	`
	args := []any{filter.OrganizationID.String()}

	if filter.Type != nil {
		query += " AND rule_type = ?"
		args = append(args, string(*filter.Type))
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

	var rules []*domain.AutomationRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// Count counts an organization's rules.
func (r *SQLiteRuleRepository) Count(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM automation_rules WHERE organization_id = ?",
		orgID.String(),
	).Scan(&count)
	return count, err
}

// CountByStatus counts an organization's rules in a given status.
func (r *SQLiteRuleRepository) CountByStatus(ctx context.Context, orgID uuid.UUID, status domain.RuleStatus) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM automation_rules WHERE organization_id = ? AND status = ?",
		orgID.String(), string(status),
	).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRule(row rowScanner) (*domain.AutomationRule, error) {
	var (
		idStr, orgStr, name, ruleType, status string
		description                           sql.NullString
		triggerJSON, actionsJSON              string
		conditionsJSON                        sql.NullString
		lastExecuted                          sql.NullString
		execCount, successCount, failCount    int
		avgMs                                 int64
		createdAt, updatedAt                  string
	)

	err := row.Scan(
		&idStr, &orgStr, &name, &description, &ruleType,
		&triggerJSON, &actionsJSON, &conditionsJSON, &status,
		&lastExecuted, &execCount, &successCount, &failCount, &avgMs,
		&createdAt, &updatedAt,
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

	rule := &domain.AutomationRule{
		ID:             id,
		OrganizationID: orgID,
		Name:           name,
		Description:    description.String,
		Type:           domain.RuleType(ruleType),
		Status:         domain.RuleStatus(status),
		Metadata: domain.RuleMetadata{
			ExecutionCount:       execCount,
			SuccessCount:         successCount,
			FailureCount:         failCount,
			AverageExecutionTime: time.Duration(avgMs) * time.Millisecond,
		},
	}

	if err := json.Unmarshal([]byte(triggerJSON), &rule.Trigger); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(actionsJSON), &rule.Actions); err != nil {
		return nil, err
	}
	if conditionsJSON.Valid && conditionsJSON.String != "" {
		var conditions domain.RuleConditions
		if err := json.Unmarshal([]byte(conditionsJSON.String), &conditions); err != nil {
			return nil, err
		}
		rule.Conditions = &conditions
	}
	if lastExecuted.Valid {
		t, err := time.Parse(time.RFC3339Nano, lastExecuted.String)
		if err != nil {
			return nil, err
		}
		rule.Metadata.LastExecuted = &t
	}
	if rule.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, err
	}
	if rule.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, err
	}

	return rule, nil
}

func marshalNullable(v any) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	// A typed nil pointer also means absent.
	if c, ok := v.(*domain.RuleConditions); ok && c == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func nullableTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339Nano), Valid: true}
}
