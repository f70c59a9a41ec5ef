package goals

import (
	"database/sql"
	"fmt"
)

type Repository interface {
	createGoal(goal *Goal) error
	getGoalsByUser(userID string) ([]Goal, error)
	getGoalByID(userID, goalID string) (*Goal, error)
	updateGoal(goal *Goal) error
	deleteGoal(userID, goalID string) error
}

type goalRepository struct {
	db *sql.DB
}

func NewGoalRepository(db *sql.DB) Repository {
	return &goalRepository{db: db}
}

const goalColumns = `id, user_id, title, description, target_amount, current_amount, category, priority, target_date, is_completed, created_at, updated_at`

func (r *goalRepository) createGoal(goal *Goal) error {
	query := `
		INSERT INTO goals (id, user_id, title, description, target_amount, current_amount, category, priority, target_date, is_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(query, goal.ID, goal.UserID, goal.Title, goal.Description,
		goal.TargetAmount, goal.CurrentAmount, goal.Category, goal.Priority,
		goal.TargetDate, goal.IsCompleted)
	if err != nil {
		return fmt.Errorf("could not create goal: %w", err)
	}
	return nil
}

func (r *goalRepository) scanGoal(row interface{ Scan(...interface{}) error }) (*Goal, error) {
	var goal Goal
	err := row.Scan(&goal.ID, &goal.UserID, &goal.Title, &goal.Description,
		&goal.TargetAmount, &goal.CurrentAmount, &goal.Category, &goal.Priority,
		&goal.TargetDate, &goal.IsCompleted, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) getGoalsByUser(userID string) ([]Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("could not fetch goals: %w", err)
	}
	defer rows.Close()

	var result []Goal
	for rows.Next() {
		goal, err := r.scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan goal: %w", err)
		}
		result = append(result, *goal)
	}
	return result, rows.Err()
}

func (r *goalRepository) getGoalByID(userID, goalID string) (*Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1 AND user_id = $2`
	goal, err := r.scanGoal(r.db.QueryRow(query, goalID, userID))
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not fetch goal: %w", err)
	}
	return goal, nil
}

func (r *goalRepository) updateGoal(goal *Goal) error {
	query := `
		UPDATE goals
		SET title = $1, description = $2, target_amount = $3, current_amount = $4,
		    category = $5, priority = $6, target_date = $7, is_completed = $8, updated_at = NOW()
		WHERE id = $9 AND user_id = $10
	`
	result, err := r.db.Exec(query, goal.Title, goal.Description, goal.TargetAmount,
		goal.CurrentAmount, goal.Category, goal.Priority, goal.TargetDate,
		goal.IsCompleted, goal.ID, goal.UserID)
	if err != nil {
		return fmt.Errorf("could not update goal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (r *goalRepository) deleteGoal(userID, goalID string) error {
	result, err := r.db.Exec(`DELETE FROM goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return fmt.Errorf("could not delete goal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrGoalNotFound
	}
	return nil
}
