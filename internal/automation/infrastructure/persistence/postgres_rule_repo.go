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

// PostgresRuleRepository implements domain.RuleRepository using PostgreSQL.
type PostgresRuleRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRuleRepository creates a new PostgreSQL rule repository.
func NewPostgresRuleRepository(pool *pgxpool.Pool) *PostgresRuleRepository {
	return &PostgresRuleRepository{pool: pool}
}

// Create creates a new automation rule.
func (r *PostgresRuleRepository) Create(ctx context.Context, rule *domain.AutomationRule) error {
	trigger, actions, conditions, err := marshalRuleFields(rule)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO automation_rules (
			id, organization_id, name, description, rule_type,
			trigger_config, actions, conditions, status,
			last_executed, execution_count, success_count, failure_count, average_execution_ms,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err = r.pool.Exec(ctx, query,
		rule.ID,
		rule.OrganizationID,
		rule.Name,
		rule.Description,
		string(rule.Type),
		trigger,
		actions,
		conditions,
		string(rule.Status),
		rule.Metadata.LastExecuted,
		rule.Metadata.ExecutionCount,
		rule.Metadata.SuccessCount,
		rule.Metadata.FailureCount,
		rule.Metadata.AverageExecutionTime.Milliseconds(),
		rule.CreatedAt,
		rule.UpdatedAt,
	)
	return err
}

// Update updates an existing automation rule.
func (r *PostgresRuleRepository) Update(ctx context.Context, rule *domain.AutomationRule) error {
	trigger, actions, conditions, err := marshalRuleFields(rule)
	if err != nil {
		return err
	}

	query := `
		UPDATE automation_rules SET
			name = $1, description = $2, rule_type = $3,
			trigger_config = $4, actions = $5, conditions = $6, status = $7,
			last_executed = $8, execution_count = $9, success_count = $10, failure_count = $11, average_execution_ms = $12,
			updated_at = $13
		WHERE id = $14
	`

	tag, err := r.pool.Exec(ctx, query,
		rule.Name,
		rule.Description,
		string(rule.Type),
		trigger,
		actions,
		conditions,
		string(rule.Status),
		rule.Metadata.LastExecuted,
		rule.Metadata.ExecutionCount,
		rule.Metadata.SuccessCount,
		rule.Metadata.FailureCount,
		rule.Metadata.AverageExecutionTime.Milliseconds(),
		rule.UpdatedAt,
		rule.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRuleNotFound
	}
	return nil
}

// Delete removes a rule, reporting whether it existed.
func (r *PostgresRuleRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM automation_rules WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// GetByID retrieves a rule by id.
func (r *PostgresRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AutomationRule, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, organization_id, name, description, rule_type,
			trigger_config, actions, conditions, status,
			last_executed, execution_count, success_count, failure_count, average_execution_ms,
			created_at, updated_at
		FROM automation_rules WHERE id = $1
	`, id)

	rule, err := scanPostgresRule(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRuleNotFound
	}
	return rule, err
}

// List retrieves rules matching the filter, newest-created-first.
func (r *PostgresRuleRepository) List(ctx context.Context, filter domain.RuleFilter) ([]*domain.AutomationRule, error) {
	query := `
		SELECT id, organization_id, name, description, rule_type,
			trigger_config, actions, conditions, status,
			last_executed, execution_count, success_count, failure_count, average_execution_ms,
			created_at, updated_at
		FROM automation_rules
		WHERE organization_id = $1
			AND ($2::text IS NULL OR rule_type = $2)
			AND ($3::text IS NULL OR status = $3)
		ORDER BY created_at DESC
	`

	var ruleType, status *string
	if filter.Type != nil {
		s := string(*filter.Type)
		ruleType = &s
	}
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}

	rows, err := r.pool.Query(ctx, query, filter.OrganizationID, ruleType, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*domain.AutomationRule
	for rows.Next() {
		rule, err := scanPostgresRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// Count counts an organization's rules.
func (r *PostgresRuleRepository) Count(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM automation_rules WHERE organization_id = $1",
		orgID,
	).Scan(&count)
	return count, err
}

// CountByStatus counts an organization's rules in a given status.
func (r *PostgresRuleRepository) CountByStatus(ctx context.Context, orgID uuid.UUID, status domain.RuleStatus) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM automation_rules WHERE organization_id = $1 AND status = $2",
		orgID, string(status),
	).Scan(&count)
	return count, err
}

func marshalRuleFields(rule *domain.AutomationRule) (trigger, actions, conditions []byte, err error) {
	if trigger, err = json.Marshal(rule.Trigger); err != nil {
		return nil, nil, nil, err
	}
	if actions, err = json.Marshal(rule.Actions); err != nil {
		return nil, nil, nil, err
	}
	if rule.Conditions != nil {
		if conditions, err = json.Marshal(rule.Conditions); err != nil {
			return nil, nil, nil, err
		}
	}
	return trigger, actions, conditions, nil
}

func scanPostgresRule(row pgx.Row) (*domain.AutomationRule, error) {
	var (
		rule                               domain.AutomationRule
		description                        *string
		ruleType, status                   string
		triggerJSON, actionsJSON           []byte
		conditionsJSON                     []byte
		lastExecuted                       *time.Time
		avgMs                              int64
	)

	err := row.Scan(
		&rule.ID, &rule.OrganizationID, &rule.Name, &description, &ruleType,
		&triggerJSON, &actionsJSON, &conditionsJSON, &status,
		&lastExecuted, &rule.Metadata.ExecutionCount, &rule.Metadata.SuccessCount,
		&rule.Metadata.FailureCount, &avgMs,
		&rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description != nil {
		rule.Description = *description
	}
	rule.Type = domain.RuleType(ruleType)
	rule.Status = domain.RuleStatus(status)
	rule.Metadata.LastExecuted = lastExecuted
	rule.Metadata.AverageExecutionTime = time.Duration(avgMs) * time.Millisecond

	if err := json.Unmarshal(triggerJSON, &rule.Trigger); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(actionsJSON, &rule.Actions); err != nil {
		return nil, err
	}
	if len(conditionsJSON) > 0 {
		var conditions domain.RuleConditions
		if err := json.Unmarshal(conditionsJSON, &conditions); err != nil {
			return nil, err
		}
		rule.Conditions = &conditions
	}

	return &rule, nil
}
