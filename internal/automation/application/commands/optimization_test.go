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

func TestCreateOptimizationCommand_Validate(t *testing.T) {
	t.Run("valid command", func(t *testing.T) {
		cmd := CreateOptimizationCommand{
			OrganizationID: uuid.New(),
			Kind:           "budget_reallocation",
		}
		assert.NoError(t, cmd.Validate())
	})

	t.Run("missing organization_id", func(t *testing.T) {
		cmd := CreateOptimizationCommand{Kind: "budget_reallocation"}

		err := cmd.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "organization_id is required")
	})

	t.Run("missing kind", func(t *testing.T) {
		cmd := CreateOptimizationCommand{OrganizationID: uuid.New()}

		err := cmd.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "kind is required")
	})
}

func TestOptimizationHandler_Create(t *testing.T) {
	orgID := uuid.New()

	t.Run("creates pending recommendation", func(t *testing.T) {
		repo := new(mockOptimizationRepo)
		handler := NewOptimizationHandler(repo)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AIOptimization")).Return(nil)

		opt, err := handler.Create(context.Background(), CreateOptimizationCommand{
			OrganizationID:  orgID,
			CampaignID:      "cmp_1",
			Kind:            "budget_reallocation",
			Recommendation:  "Shift budget toward campaign B",
			EstimatedImpact: 0.15,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.OptimizationStatusPending, opt.Status)
		assert.Equal(t, orgID, opt.OrganizationID)
		assert.Equal(t, 0.15, opt.EstimatedImpact)
		repo.AssertExpectations(t)
	})

	t.Run("validation failure does not touch the repo", func(t *testing.T) {
		repo := new(mockOptimizationRepo)
		handler := NewOptimizationHandler(repo)

		opt, err := handler.Create(context.Background(), CreateOptimizationCommand{Kind: "x"})

		assert.Error(t, err)
		assert.Nil(t, opt)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(mockOptimizationRepo)
		handler := NewOptimizationHandler(repo)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AIOptimization")).
			Return(errors.New("database unavailable"))

		opt, err := handler.Create(context.Background(), CreateOptimizationCommand{
			OrganizationID: orgID,
			Kind:           "bid_adjustment",
		})

		assert.Error(t, err)
		assert.Nil(t, opt)
	})
}

func TestOptimizationHandler_Update(t *testing.T) {
	t.Run("transitions status", func(t *testing.T) {
		repo := new(mockOptimizationRepo)
		handler := NewOptimizationHandler(repo)

		opt := domain.NewAIOptimization(uuid.New(), "cmp_1", "bid_adjustment", "", 0.05)
		repo.On("GetByID", mock.Anything, opt.ID).Return(opt, nil)
		repo.On("Update", mock.Anything, opt).Return(nil)

		ok, err := handler.Update(context.Background(), UpdateOptimizationCommand{
			OptimizationID: opt.ID,
			Status:         domain.OptimizationStatusApplied,
		})

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, domain.OptimizationStatusApplied, opt.Status)
		repo.AssertExpectations(t)
	})

	t.Run("unknown id reports false without error", func(t *testing.T) {
		repo := new(mockOptimizationRepo)
		handler := NewOptimizationHandler(repo)

		id := uuid.New()
		repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrOptimizationNotFound)

		ok, err := handler.Update(context.Background(), UpdateOptimizationCommand{
			OptimizationID: id,
			Status:         domain.OptimizationStatusDismissed,
		})

		require.NoError(t, err)
		assert.False(t, ok)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("lookup error propagates", func(t *testing.T) {
		repo := new(mockOptimizationRepo)
		handler := NewOptimizationHandler(repo)

		id := uuid.New()
		repo.On("GetByID", mock.Anything, id).Return(nil, errors.New("database unavailable"))

		ok, err := handler.Update(context.Background(), UpdateOptimizationCommand{OptimizationID: id})

		assert.Error(t, err)
		assert.False(t, ok)
	})
}
