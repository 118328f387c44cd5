package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fincontrol/api/models"
)

func CreateGoal(g *models.FinancialGoal) error {
	query := `
		INSERT INTO financial_goals (id, user_id, name, target_value, current_value, deadline, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`
	err := DB.QueryRow(query, g.ID, g.UserID, g.Name, g.TargetValue, g.CurrentValue, g.Deadline).
		Scan(&g.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating goal for user %s: %v", g.UserID, err)
	}
	return nil
}

func ListGoals(userID string) ([]models.FinancialGoal, error) {
	query := `
		SELECT id, user_id, name, target_value, current_value, deadline, created_at
		FROM financial_goals
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing goals for user %s: %v", userID, err)
	}
	defer rows.Close()

	goals := []models.FinancialGoal{}
	for rows.Next() {
		var g models.FinancialGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetValue, &g.CurrentValue, &g.Deadline, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning goal: %v", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func UpdateGoal(g *models.FinancialGoal) error {
	query := `
		UPDATE financial_goals
		SET name = $1, target_value = $2, deadline = $3
		WHERE id = $4 AND user_id = $5
	`
	res, err := DB.Exec(query, g.Name, g.TargetValue, g.Deadline, g.ID, g.UserID)
	if err != nil {
		return fmt.Errorf("error updating goal %s: %v", g.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error updating goal %s: %v", g.ID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DepositToGoal adds value to the goal's current amount and returns the
// updated row.
func DepositToGoal(userID string, id uuid.UUID, value decimal.Decimal) (*models.FinancialGoal, error) {
	query := `
		UPDATE financial_goals
		SET current_value = current_value + $1
		WHERE id = $2 AND user_id = $3
		RETURNING id, user_id, name, target_value, current_value, deadline, created_at
	`
	var g models.FinancialGoal
	err := DB.QueryRow(query, value, id, userID).
		Scan(&g.ID, &g.UserID, &g.Name, &g.TargetValue, &g.CurrentValue, &g.Deadline, &g.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error depositing to goal %s: %v", id, err)
	}
	return &g, nil
}

func DeleteGoal(userID string, id uuid.UUID) error {
	res, err := DB.Exec(`DELETE FROM financial_goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting goal %s: %v", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting goal %s: %v", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
