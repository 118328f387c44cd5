package db

import (
	"fmt"

	"github.com/google/uuid"

	"fincontrol/api/models"
)

func CreateRecurringExpense(r *models.RecurringExpense) error {
	query := `
		INSERT INTO recurring_expenses (id, user_id, description, category, value, due_day, active, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING created_at
	`
	err := DB.QueryRow(query, r.ID, r.UserID, r.Description, r.Category, r.Value, r.DueDay, r.Active, r.StartDate, r.EndDate).
		Scan(&r.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating recurring expense for user %s: %v", r.UserID, err)
	}
	return nil
}

func ListRecurringExpenses(userID string, activeOnly bool) ([]models.RecurringExpense, error) {
	query := `
		SELECT id, user_id, description, category, value, due_day, active, start_date, end_date, created_at
		FROM recurring_expenses
		WHERE user_id = $1
	`
	if activeOnly {
		query += " AND active"
	}
	query += " ORDER BY due_day, description"

	rows, err := DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing recurring expenses for user %s: %v", userID, err)
	}
	defer rows.Close()

	expenses := []models.RecurringExpense{}
	for rows.Next() {
		var r models.RecurringExpense
		if err := rows.Scan(&r.ID, &r.UserID, &r.Description, &r.Category, &r.Value, &r.DueDay, &r.Active, &r.StartDate, &r.EndDate, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning recurring expense: %v", err)
		}
		expenses = append(expenses, r)
	}
	return expenses, rows.Err()
}

func UpdateRecurringExpense(r *models.RecurringExpense) error {
	query := `
		UPDATE recurring_expenses
		SET description = $1, category = $2, value = $3, due_day = $4, active = $5, start_date = $6, end_date = $7
		WHERE id = $8 AND user_id = $9
	`
	res, err := DB.Exec(query, r.Description, r.Category, r.Value, r.DueDay, r.Active, r.StartDate, r.EndDate, r.ID, r.UserID)
	if err != nil {
		return fmt.Errorf("error updating recurring expense %s: %v", r.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error updating recurring expense %s: %v", r.ID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func DeleteRecurringExpense(userID string, id uuid.UUID) error {
	res, err := DB.Exec(`DELETE FROM recurring_expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting recurring expense %s: %v", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting recurring expense %s: %v", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
