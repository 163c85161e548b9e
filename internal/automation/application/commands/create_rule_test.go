package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/adspro/autopilot/internal/automation/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockRuleRepo is a mock implementation of domain.RuleRepository.
type mockRuleRepo struct {
	mock.Mock
}

func (m *mockRuleRepo) Create(ctx context.Context, rule *domain.AutomationRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *mockRuleRepo) Update(ctx context.Context, rule *domain.AutomationRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *mockRuleRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRuleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AutomationRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AutomationRule), args.Error(1)
}

func (m *mockRuleRepo) List(ctx context.Context, filter domain.RuleFilter) ([]*domain.AutomationRule, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AutomationRule), args.Error(1)
}

func (m *mockRuleRepo) CountByStatus(ctx context.Context, orgID uuid.UUID, status domain.RuleStatus) (int64, error) {
	args := m.Called(ctx, orgID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRuleRepo) Count(ctx context.Context, orgID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Error(1)
}

// mockOptimizationRepo is a mock implementation of domain.OptimizationRepository.
type mockOptimizationRepo struct {
	mock.Mock
}

func (m *mockOptimizationRepo) Create(ctx context.Context, opt *domain.AIOptimization) error {
	args := m.Called(ctx, opt)
	return args.Error(0)
}

func (m *mockOptimizationRepo) Update(ctx context.Context, opt *domain.AIOptimization) error {
	args := m.Called(ctx, opt)
	return args.Error(0)
}

func (m *mockOptimizationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AIOptimization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AIOptimization), args.Error(1)
}

func (m *mockOptimizationRepo) List(ctx context.Context, filter domain.OptimizationFilter) ([]*domain.AIOptimization, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AIOptimization), args.Error(1)
}

func TestCreateRuleCommand_Validate(t *testing.T) {
	t.Run("valid command", func(t *testing.T) {
		cmd := CreateRuleCommand{
			OrganizationID: uuid.New(),
			Name:           "Pause low performers",
		}

		assert.NoError(t, cmd.Validate())
	})

	t.Run("missing organization_id", func(t *testing.T) {
		cmd := CreateRuleCommand{Name: "Pause low performers"}

		err := cmd.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "organization_id is required")
	})

	t.Run("missing name", func(t *testing.T) {
		cmd := CreateRuleCommand{OrganizationID: uuid.New()}

		err := cmd.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("incomplete rule passes validation", func(t *testing.T) {
		// No trigger, no actions. The store accepts it; the gap
		// surfaces at execution time.
		cmd := CreateRuleCommand{
			OrganizationID: uuid.New(),
			Name:           "Draft rule",
		}

		assert.NoError(t, cmd.Validate())
	})
}

func TestCreateRuleHandler_Handle(t *testing.T) {
	orgID := uuid.New()

	t.Run("successfully creates rule", func(t *testing.T) {
		repo := new(mockRuleRepo)
		handler := NewCreateRuleHandler(repo)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AutomationRule")).Return(nil)

		rule, err := handler.Handle(context.Background(), CreateRuleCommand{
			OrganizationID: orgID,
			Name:           "Pause low performers",
			Type:           domain.RuleTypePerformanceOptimization,
			Trigger: domain.Trigger{
				Type:      domain.TriggerTypePerformanceThreshold,
				Metric:    "roas",
				Operator:  "lt",
				Threshold: 1.5,
			},
			Actions: []domain.Action{
				{Type: domain.ActionPauseCampaign},
			},
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, rule.ID)
		assert.Equal(t, orgID, rule.OrganizationID)
		assert.Equal(t, domain.RuleTypePerformanceOptimization, rule.Type)
		assert.Equal(t, domain.RuleStatusActive, rule.Status)
		repo.AssertExpectations(t)
	})

	t.Run("defaults to custom type", func(t *testing.T) {
		repo := new(mockRuleRepo)
		handler := NewCreateRuleHandler(repo)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AutomationRule")).Return(nil)

		rule, err := handler.Handle(context.Background(), CreateRuleCommand{
			OrganizationID: orgID,
			Name:           "Untyped rule",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.RuleTypeCustom, rule.Type)
	})

	t.Run("honors explicit status", func(t *testing.T) {
		repo := new(mockRuleRepo)
		handler := NewCreateRuleHandler(repo)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AutomationRule")).Return(nil)

		rule, err := handler.Handle(context.Background(), CreateRuleCommand{
			OrganizationID: orgID,
			Name:           "Scheduled rule",
			Status:         domain.RuleStatusScheduled,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.RuleStatusScheduled, rule.Status)
	})

	t.Run("validation failure does not touch the repo", func(t *testing.T) {
		repo := new(mockRuleRepo)
		handler := NewCreateRuleHandler(repo)

		rule, err := handler.Handle(context.Background(), CreateRuleCommand{Name: "No org"})

		assert.Error(t, err)
		assert.Nil(t, rule)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(mockRuleRepo)
		handler := NewCreateRuleHandler(repo)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AutomationRule")).
			Return(errors.New("database unavailable"))

		rule, err := handler.Handle(context.Background(), CreateRuleCommand{
			OrganizationID: orgID,
			Name:           "Pause low performers",
		})

		assert.Error(t, err)
		assert.Nil(t, rule)
	})
}
