package db

import (
	"fmt"

	"github.com/google/uuid"

	"fincontrol/api/models"
)

func CreateInvestment(inv *models.Investment) error {
	query := `
		INSERT INTO investments (id, user_id, name, type, value, yield_rate, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at
	`
	err := DB.QueryRow(query, inv.ID, inv.UserID, inv.Name, inv.Type, inv.Value, inv.YieldRate, inv.Date).
		Scan(&inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating investment for user %s: %v", inv.UserID, err)
	}
	return nil
}

func ListInvestments(userID string) ([]models.Investment, error) {
	query := `
		SELECT id, user_id, name, type, value, yield_rate, date, created_at
		FROM investments
		WHERE user_id = $1
		ORDER BY date DESC
	`
	rows, err := DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing investments for user %s: %v", userID, err)
	}
	defer rows.Close()

	investments := []models.Investment{}
	for rows.Next() {
		var inv models.Investment
		if err := rows.Scan(&inv.ID, &inv.UserID, &inv.Name, &inv.Type, &inv.Value, &inv.YieldRate, &inv.Date, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning investment: %v", err)
		}
		investments = append(investments, inv)
	}
	return investments, rows.Err()
}

func UpdateInvestment(inv *models.Investment) error {
	query := `
		UPDATE investments
		SET name = $1, type = $2, value = $3, yield_rate = $4, date = $5
		WHERE id = $6 AND user_id = $7
	`
	res, err := DB.Exec(query, inv.Name, inv.Type, inv.Value, inv.YieldRate, inv.Date, inv.ID, inv.UserID)
	if err != nil {
		return fmt.Errorf("error updating investment %s: %v", inv.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error updating investment %s: %v", inv.ID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func DeleteInvestment(userID string, id uuid.UUID) error {
	res, err := DB.Exec(`DELETE FROM investments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting investment %s: %v", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting investment %s: %v", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
