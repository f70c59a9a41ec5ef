package goals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockGoalRepository struct {
	goals map[string]*Goal
}

func newMockGoalRepository() *mockGoalRepository {
	return &mockGoalRepository{goals: map[string]*Goal{}}
}

func (m *mockGoalRepository) createGoal(goal *Goal) error {
	stored := *goal
	m.goals[goal.ID] = &stored
	return nil
}

func (m *mockGoalRepository) getGoalsByUser(userID string) ([]Goal, error) {
	var result []Goal
	for _, goal := range m.goals {
		if goal.UserID == userID {
			result = append(result, *goal)
		}
	}
	return result, nil
}

func (m *mockGoalRepository) getGoalByID(userID, goalID string) (*Goal, error) {
	goal, ok := m.goals[goalID]
	if !ok || goal.UserID != userID {
		return nil, ErrGoalNotFound
	}
	copied := *goal
	return &copied, nil
}

func (m *mockGoalRepository) updateGoal(goal *Goal) error {
	existing, ok := m.goals[goal.ID]
	if !ok || existing.UserID != goal.UserID {
		return ErrGoalNotFound
	}
	stored := *goal
	m.goals[goal.ID] = &stored
	return nil
}

func (m *mockGoalRepository) deleteGoal(userID, goalID string) error {
	goal, ok := m.goals[goalID]
	if !ok || goal.UserID != userID {
		return ErrGoalNotFound
	}
	delete(m.goals, goalID)
	return nil
}

func TestCreateGoal_Validation(t *testing.T) {
	svc := NewService(newMockGoalRepository())

	goal := &Goal{UserID: "user-1", Title: "Vacation", TargetAmount: 30000}
	require.NoError(t, svc.CreateGoal(goal))
	assert.NotEmpty(t, goal.ID)
	assert.False(t, goal.IsCompleted)

	assert.ErrorIs(t, svc.CreateGoal(&Goal{UserID: "user-1", TargetAmount: 100}), ErrTitleRequired)
	assert.ErrorIs(t, svc.CreateGoal(&Goal{UserID: "user-1", Title: "Car", TargetAmount: 0}), ErrInvalidTarget)
}

func TestAddToGoal_AutoCompletesAtTarget(t *testing.T) {
	svc := NewService(newMockGoalRepository())

	goal := &Goal{UserID: "user-1", Title: "Laptop", TargetAmount: 2000, CurrentAmount: 500}
	require.NoError(t, svc.CreateGoal(goal))

	updated, err := svc.AddToGoal("user-1", goal.ID, 1000)
	require.NoError(t, err)
	assert.Equal(t, float64(1500), updated.CurrentAmount)
	assert.False(t, updated.IsCompleted)

	updated, err = svc.AddToGoal("user-1", goal.ID, 600)
	require.NoError(t, err)
	assert.Equal(t, float64(2100), updated.CurrentAmount)
	assert.True(t, updated.IsCompleted)

	_, err = svc.AddToGoal("user-1", goal.ID, 100)
	assert.ErrorIs(t, err, ErrGoalCompleted)
}

func TestAddToGoal_Validation(t *testing.T) {
	svc := NewService(newMockGoalRepository())

	goal := &Goal{UserID: "user-1", Title: "Laptop", TargetAmount: 2000}
	require.NoError(t, svc.CreateGoal(goal))

	_, err := svc.AddToGoal("user-1", goal.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.AddToGoal("user-1", "missing", 100)
	assert.ErrorIs(t, err, ErrGoalNotFound)

	_, err = svc.AddToGoal("someone-else", goal.ID, 100)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestGetSummary_Progress(t *testing.T) {
	svc := NewService(newMockGoalRepository())

	require.NoError(t, svc.CreateGoal(&Goal{UserID: "user-1", Title: "Vacation", TargetAmount: 30000, CurrentAmount: 12000}))
	require.NoError(t, svc.CreateGoal(&Goal{UserID: "user-1", Title: "Laptop", TargetAmount: 2000, CurrentAmount: 2000}))
	require.NoError(t, svc.CreateGoal(&Goal{UserID: "user-1", Title: "Car", TargetAmount: 8000}))

	summary, err := svc.GetSummary("user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalGoals)
	assert.Equal(t, 2, summary.ActiveGoals)
	assert.Equal(t, 1, summary.CompletedGoals)
	assert.Equal(t, float64(40000), summary.TotalTarget)
	assert.Equal(t, float64(14000), summary.TotalSaved)
	assert.Equal(t, float64(35), summary.OverallProgress)
}

func TestGetSummary_EmptyState(t *testing.T) {
	svc := NewService(newMockGoalRepository())

	summary, err := svc.GetSummary("user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalGoals)
	assert.Equal(t, float64(0), summary.OverallProgress)
}
