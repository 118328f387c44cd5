package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"fincontrol/api/models"
)

func CreateBudget(b *models.Budget) error {
	query := `
		INSERT INTO budgets (id, user_id, category, limit_value, month, alert_threshold, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`
	err := DB.QueryRow(query, b.ID, b.UserID, b.Category, b.LimitValue, b.Month, b.AlertThreshold).
		Scan(&b.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return ErrConflict
		}
		return fmt.Errorf("error creating budget for user %s: %v", b.UserID, err)
	}
	return nil
}

func ListBudgets(userID, month string) ([]models.Budget, error) {
	query := `
		SELECT id, user_id, category, limit_value, month, alert_threshold, created_at
		FROM budgets
		WHERE user_id = $1
	`
	args := []any{userID}
	if month != "" {
		args = append(args, month)
		query += " AND month = $2"
	}
	query += " ORDER BY month DESC, category"

	rows, err := DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing budgets for user %s: %v", userID, err)
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.LimitValue, &b.Month, &b.AlertThreshold, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning budget: %v", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// GetBudgetByCategoryMonth looks up the single budget covering a category in
// a month, if any. A miss returns ErrNotFound, not an error wrap, because
// the alert worker treats it as "nothing to evaluate".
func GetBudgetByCategoryMonth(userID, category, month string) (*models.Budget, error) {
	query := `
		SELECT id, user_id, category, limit_value, month, alert_threshold, created_at
		FROM budgets
		WHERE user_id = $1 AND category = $2 AND month = $3
	`
	var b models.Budget
	err := DB.QueryRow(query, userID, category, month).
		Scan(&b.ID, &b.UserID, &b.Category, &b.LimitValue, &b.Month, &b.AlertThreshold, &b.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting budget for user %s category %s: %v", userID, category, err)
	}
	return &b, nil
}

func UpdateBudget(b *models.Budget) error {
	query := `
		UPDATE budgets
		SET limit_value = $1, alert_threshold = $2
		WHERE id = $3 AND user_id = $4
	`
	res, err := DB.Exec(query, b.LimitValue, b.AlertThreshold, b.ID, b.UserID)
	if err != nil {
		return fmt.Errorf("error updating budget %s: %v", b.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error updating budget %s: %v", b.ID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func DeleteBudget(userID string, id uuid.UUID) error {
	res, err := DB.Exec(`DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting budget %s: %v", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting budget %s: %v", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
