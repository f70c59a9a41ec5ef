package goals

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGoalNotFound  = errors.New("goal not found")
	ErrTitleRequired = errors.New("goal title is required")
	ErrInvalidTarget = errors.New("target amount must be greater than zero")
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrGoalCompleted = errors.New("goal already completed")
)

type Goal struct {
	ID            string     `json:"id"`
	UserID        string     `json:"-"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	TargetAmount  float64    `json:"targetAmount"`
	CurrentAmount float64    `json:"currentAmount"`
	Category      string     `json:"category,omitempty"`
	Priority      string     `json:"priority,omitempty"`
	TargetDate    *time.Time `json:"targetDate,omitempty"`
	IsCompleted   bool       `json:"isCompleted"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type GoalUpdate struct {
	Title        *string
	Description  *string
	TargetAmount *float64
	Category     *string
	Priority     *string
	TargetDate   *time.Time
}

type Summary struct {
	TotalGoals      int     `json:"totalGoals"`
	ActiveGoals     int     `json:"activeGoals"`
	CompletedGoals  int     `json:"completedGoals"`
	TotalTarget     float64 `json:"totalTarget"`
	TotalSaved      float64 `json:"totalSaved"`
	OverallProgress float64 `json:"overallProgress"`
}

type Service interface {
	CreateGoal(goal *Goal) error
	GetGoals(userID string) ([]Goal, error)
	UpdateGoal(userID, goalID string, update GoalUpdate) (*Goal, error)
	DeleteGoal(userID, goalID string) error
	AddToGoal(userID, goalID string, amount float64) (*Goal, error)
	GetSummary(userID string) (*Summary, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validateGoal(goal *Goal) error {
	if goal.Title == "" {
		return ErrTitleRequired
	}
	if goal.TargetAmount <= 0 {
		return ErrInvalidTarget
	}
	return nil
}

func (s *service) CreateGoal(goal *Goal) error {
	goal.ID = uuid.NewString()
	if err := validateGoal(goal); err != nil {
		return err
	}
	goal.IsCompleted = goal.CurrentAmount >= goal.TargetAmount
	return s.repo.createGoal(goal)
}

func (s *service) GetGoals(userID string) ([]Goal, error) {
	return s.repo.getGoalsByUser(userID)
}

func (s *service) UpdateGoal(userID, goalID string, update GoalUpdate) (*Goal, error) {
	goal, err := s.repo.getGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}
	if update.Title != nil {
		goal.Title = *update.Title
	}
	if update.Description != nil {
		goal.Description = *update.Description
	}
	if update.TargetAmount != nil {
		goal.TargetAmount = *update.TargetAmount
	}
	if update.Category != nil {
		goal.Category = *update.Category
	}
	if update.Priority != nil {
		goal.Priority = *update.Priority
	}
	if update.TargetDate != nil {
		goal.TargetDate = update.TargetDate
	}
	if err := validateGoal(goal); err != nil {
		return nil, err
	}
	goal.IsCompleted = goal.CurrentAmount >= goal.TargetAmount
	if err := s.repo.updateGoal(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *service) DeleteGoal(userID, goalID string) error {
	return s.repo.deleteGoal(userID, goalID)
}

// AddToGoal adds a contribution and completes the goal once the target is
// reached.
func (s *service) AddToGoal(userID, goalID string, amount float64) (*Goal, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	goal, err := s.repo.getGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal.IsCompleted {
		return nil, ErrGoalCompleted
	}
	goal.CurrentAmount += amount
	goal.IsCompleted = goal.CurrentAmount >= goal.TargetAmount
	if err := s.repo.updateGoal(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *service) GetSummary(userID string) (*Summary, error) {
	userGoals, err := s.repo.getGoalsByUser(userID)
	if err != nil {
		return nil, err
	}
	summary := &Summary{TotalGoals: len(userGoals)}
	for _, goal := range userGoals {
		if goal.IsCompleted {
			summary.CompletedGoals++
		} else {
			summary.ActiveGoals++
		}
		summary.TotalTarget += goal.TargetAmount
		summary.TotalSaved += goal.CurrentAmount
	}
	if summary.TotalTarget > 0 {
		summary.OverallProgress = math.Round(summary.TotalSaved / summary.TotalTarget * 100)
	}
	return summary, nil
}
