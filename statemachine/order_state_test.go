package statemachine

import (
	"testing"

	"github.com/hermione06/cafeteria-management-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffCanCompletePending(t *testing.T) {
	require.NoError(t, CanTransition(models.StatusPending, models.StatusCompleted, ActorStaff))
	require.NoError(t, CanTransition(models.StatusPending, models.StatusCompleted, ActorAdmin))
}

func TestOwnerCanOnlyCancel(t *testing.T) {
	require.NoError(t, CanTransition(models.StatusPending, models.StatusCancelled, ActorOwner))
	require.Error(t, CanTransition(models.StatusPending, models.StatusCompleted, ActorOwner))
}

func TestTerminalStatesRejectEverything(t *testing.T) {
	for _, from := range []models.OrderStatus{models.StatusCompleted, models.StatusCancelled} {
		for _, to := range []models.OrderStatus{models.StatusPending, models.StatusCompleted, models.StatusCancelled} {
			for _, actor := range []Actor{ActorOwner, ActorStaff, ActorAdmin} {
				assert.Error(t, CanTransition(from, to, actor),
					"expected %s -> %s by %s to be rejected", from, to, actor)
			}
		}
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	nexts := ValidTransitionsFrom(models.StatusPending)
	assert.ElementsMatch(t, []models.OrderStatus{models.StatusCompleted, models.StatusCancelled}, nexts)

	assert.Empty(t, ValidTransitionsFrom(models.StatusCompleted))
	assert.Empty(t, ValidTransitionsFrom(models.StatusCancelled))
}

func TestActorFor(t *testing.T) {
	assert.Equal(t, ActorAdmin, ActorFor(models.RoleAdmin, 1, 2))
	assert.Equal(t, ActorStaff, ActorFor(models.RoleStaff, 1, 2))
	assert.Equal(t, ActorOwner, ActorFor(models.RoleUser, 7, 7))
	assert.Equal(t, Actor("none"), ActorFor(models.RoleUser, 7, 8))
}
