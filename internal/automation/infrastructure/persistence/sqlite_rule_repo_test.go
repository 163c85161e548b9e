package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/adspro/autopilot/internal/shared/infrastructure/database"
	"github.com/adspro/autopilot/internal/shared/infrastructure/migrations"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, migrations.RunSQLite(ctx, db))

	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func createTestRule(orgID uuid.UUID) *domain.AutomationRule {
	rule := domain.NewAutomationRule(
		orgID,
		"Pause low ROAS campaigns",
		domain.RuleTypePerformanceOptimization,
		domain.Trigger{
			Type:      domain.TriggerTypePerformanceThreshold,
			Metric:    "roas",
			Operator:  "lt",
			Threshold: 1.5,
		},
		[]domain.Action{
			{Type: domain.ActionPauseCampaign, Params: domain.PauseCampaignParams{Reason: "low roas"}},
			{
				Type:   domain.ActionSendNotification,
				Params: domain.NotificationParams{Title: "Campaign paused", Priority: "high"},
				Conditions: []domain.Condition{
					{Field: "spend", Operator: domain.OperatorGreaterThan, Value: 100.0},
				},
			},
		},
	)
	rule.Description = "Pauses campaigns whose ROAS drops below 1.5"
	return rule
}

func TestSQLiteRuleRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRuleRepository(db)
	ctx := context.Background()

	rule := createTestRule(uuid.New())
	min := 50.0
	rule.Conditions = &domain.RuleConditions{
		CampaignIDs: []string{"cmp_1", "cmp_2"},
		BudgetRange: &domain.FloatRange{Min: &min},
	}

	require.NoError(t, repo.Create(ctx, rule))

	got, err := repo.GetByID(ctx, rule.ID)
	require.NoError(t, err)

	assert.Equal(t, rule.ID, got.ID)
	assert.Equal(t, rule.OrganizationID, got.OrganizationID)
	assert.Equal(t, rule.Name, got.Name)
	assert.Equal(t, rule.Description, got.Description)
	assert.Equal(t, domain.RuleTypePerformanceOptimization, got.Type)
	assert.Equal(t, domain.RuleStatusActive, got.Status)
	assert.Equal(t, rule.Trigger, got.Trigger)
	require.Len(t, got.Actions, 2)
	assert.Equal(t, domain.PauseCampaignParams{Reason: "low roas"}, got.Actions[0].Params)
	require.Len(t, got.Actions[1].Conditions, 1)
	assert.Equal(t, "spend", got.Actions[1].Conditions[0].Field)
	require.NotNil(t, got.Conditions)
	assert.Equal(t, []string{"cmp_1", "cmp_2"}, got.Conditions.CampaignIDs)
	require.NotNil(t, got.Conditions.BudgetRange)
	assert.Equal(t, 50.0, *got.Conditions.BudgetRange.Min)
	assert.WithinDuration(t, rule.CreatedAt, got.CreatedAt, time.Millisecond)
}

func TestSQLiteRuleRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRuleRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrRuleNotFound)
}

func TestSQLiteRuleRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRuleRepository(db)
	ctx := context.Background()

	rule := createTestRule(uuid.New())
	require.NoError(t, repo.Create(ctx, rule))

	rule.Name = "Pause very low ROAS campaigns"
	rule.Status = domain.RuleStatusPaused
	now := time.Now()
	rule.Metadata = domain.RuleMetadata{
		LastExecuted:         &now,
		ExecutionCount:       3,
		SuccessCount:         2,
		FailureCount:         1,
		AverageExecutionTime: 120 * time.Millisecond,
	}
	require.NoError(t, repo.Update(ctx, rule))

	got, err := repo.GetByID(ctx, rule.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pause very low ROAS campaigns", got.Name)
	assert.Equal(t, domain.RuleStatusPaused, got.Status)
	assert.Equal(t, 3, got.Metadata.ExecutionCount)
	assert.Equal(t, 2, got.Metadata.SuccessCount)
	assert.Equal(t, 1, got.Metadata.FailureCount)
	assert.Equal(t, 120*time.Millisecond, got.Metadata.AverageExecutionTime)
	require.NotNil(t, got.Metadata.LastExecuted)
	assert.WithinDuration(t, now, *got.Metadata.LastExecuted, time.Millisecond)
}

func TestSQLiteRuleRepository_Update_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRuleRepository(db)

	rule := createTestRule(uuid.New())
	err := repo.Update(context.Background(), rule)
	assert.ErrorIs(t, err, domain.ErrRuleNotFound)
}

func TestSQLiteRuleRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRuleRepository(db)
	ctx := context.Background()

	rule := createTestRule(uuid.New())
	require.NoError(t, repo.Create(ctx, rule))

	existed, err := repo.Delete(ctx, rule.ID)
	require.NoError(t, err)
	assert.True(t, existed)

	_, err = repo.GetByID(ctx, rule.ID)
	assert.ErrorIs(t, err, domain.ErrRuleNotFound)

	// Deleting again reports absence, not an error.
	existed, err = repo.Delete(ctx, rule.ID)
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestSQLiteRuleRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRuleRepository(db)
	ctx := context.Background()
	orgID := uuid.New()

	var rules []*domain.AutomationRule
	for i := 0; i < 3; i++ {
		rule := createTestRule(orgID)
		rule.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Create(ctx, rule))
		rules = append(rules, rule)
	}
	paused := createTestRule(orgID)
	paused.Type = domain.RuleTypeBudgetOptimization
	paused.Status = domain.RuleStatusPaused
	paused.CreatedAt = time.Now().Add(time.Hour)
	require.NoError(t, repo.Create(ctx, paused))

	otherOrg := createTestRule(uuid.New())
	require.NoError(t, repo.Create(ctx, otherOrg))

	t.Run("all rules for org newest first", func(t *testing.T) {
		got, err := repo.List(ctx, domain.RuleFilter{OrganizationID: orgID})
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, paused.ID, got[0].ID)
		assert.Equal(t, rules[2].ID, got[1].ID)
	})

	t.Run("filter by type", func(t *testing.T) {
		ruleType := domain.RuleTypeBudgetOptimization
		got, err := repo.List(ctx, domain.RuleFilter{OrganizationID: orgID, Type: &ruleType})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, paused.ID, got[0].ID)
	})

	t.Run("filter by status", func(t *testing.T) {
		status := domain.RuleStatusActive
		got, err := repo.List(ctx, domain.RuleFilter{OrganizationID: orgID, Status: &status})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("empty org", func(t *testing.T) {
		got, err := repo.List(ctx, domain.RuleFilter{OrganizationID: uuid.New()})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestSQLiteRuleRepository_Counts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRuleRepository(db)
	ctx := context.Background()
	orgID := uuid.New()

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Create(ctx, createTestRule(orgID)))
	}
	paused := createTestRule(orgID)
	paused.Status = domain.RuleStatusPaused
	require.NoError(t, repo.Create(ctx, paused))

	total, err := repo.Count(ctx, orgID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	active, err := repo.CountByStatus(ctx, orgID, domain.RuleStatusActive)
	require.NoError(t, err)
	assert.Equal(t, int64(2), active)

	none, err := repo.CountByStatus(ctx, orgID, domain.RuleStatusFailed)
	require.NoError(t, err)
	assert.Equal(t, int64(0), none)
}

func TestSQLiteRuleRepository_UnknownActionTypeRoundTrips(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRuleRepository(db)
	ctx := context.Background()

	rule := createTestRule(uuid.New())
	rule.Actions = append(rule.Actions, domain.Action{
		Type:   domain.ActionType("future_action"),
		Params: domain.RawParams{"knob": "value"},
	})
	require.NoError(t, repo.Create(ctx, rule))

	got, err := repo.GetByID(ctx, rule.ID)
	require.NoError(t, err)
	require.Len(t, got.Actions, 3)
	assert.Equal(t, domain.ActionType("future_action"), got.Actions[2].Type)
	assert.Equal(t, domain.RawParams{"knob": "value"}, got.Actions[2].Params)
}
