package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fincontrol/api/models"
)

// TransactionFilter narrows ListTransactions. Zero values mean "no filter".
type TransactionFilter struct {
	From     time.Time
	To       time.Time
	Category string
	Type     models.TransactionType
}

func CreateTransaction(t *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, type, category, description, value, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at
	`
	err := DB.QueryRow(query, t.ID, t.UserID, t.Type, t.Category, t.Description, t.Value, t.Date).
		Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating transaction for user %s: %v", t.UserID, err)
	}
	return nil
}

func ListTransactions(userID string, f TransactionFilter) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, type, category, description, value, date, created_at
		FROM transactions
		WHERE user_id = $1
	`
	args := []any{userID}
	if !f.From.IsZero() {
		args = append(args, f.From)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions for user %s: %v", userID, err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Category, &t.Description, &t.Value, &t.Date, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning transaction: %v", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func GetTransactionByID(userID string, id uuid.UUID) (*models.Transaction, error) {
	query := `
		SELECT id, user_id, type, category, description, value, date, created_at
		FROM transactions
		WHERE id = $1 AND user_id = $2
	`
	var t models.Transaction
	err := DB.QueryRow(query, id, userID).
		Scan(&t.ID, &t.UserID, &t.Type, &t.Category, &t.Description, &t.Value, &t.Date, &t.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting transaction %s: %v", id, err)
	}
	return &t, nil
}

func UpdateTransaction(t *models.Transaction) error {
	query := `
		UPDATE transactions
		SET type = $1, category = $2, description = $3, value = $4, date = $5
		WHERE id = $6 AND user_id = $7
	`
	res, err := DB.Exec(query, t.Type, t.Category, t.Description, t.Value, t.Date, t.ID, t.UserID)
	if err != nil {
		return fmt.Errorf("error updating transaction %s: %v", t.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error updating transaction %s: %v", t.ID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func DeleteTransaction(userID string, id uuid.UUID) error {
	res, err := DB.Exec(`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting transaction %s: %v", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting transaction %s: %v", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertTransactions writes a batch in one transaction. Used by the Excel
// importer so a partial failure never leaves half a spreadsheet behind.
func InsertTransactions(transactions []models.Transaction) (err error) {
	tx, err := DB.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO transactions (id, user_id, type, category, description, value, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`)
	if err != nil {
		return fmt.Errorf("error preparing batch insert: %v", err)
	}
	defer stmt.Close()

	for _, t := range transactions {
		if _, err = stmt.Exec(t.ID, t.UserID, t.Type, t.Category, t.Description, t.Value, t.Date); err != nil {
			return fmt.Errorf("error inserting transaction %s: %v", t.ID, err)
		}
	}
	return nil
}

// SumExpensesByCategoryMonth returns the total spent in a category for a
// "YYYY-MM" month. Used by budget status and the alert worker.
func SumExpensesByCategoryMonth(userID, category, month string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(value), 0)
		FROM transactions
		WHERE user_id = $1 AND category = $2 AND type = 'expense'
		  AND to_char(date, 'YYYY-MM') = $3
	`
	var total decimal.Decimal
	if err := DB.QueryRow(query, userID, category, month).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("error summing expenses for user %s category %s: %v", userID, category, err)
	}
	return total, nil
}
