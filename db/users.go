package db

import (
	"database/sql"
	"fmt"

	"fincontrol/api/models"
)

// EnsureUser inserts the user row on first authenticated request. The auth
// provider owns credentials; this table only mirrors identity.
func EnsureUser(userID, email string) error {
	query := `
		INSERT INTO users (id, email, status, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO NOTHING
	`
	_, err := DB.Exec(query, userID, email, models.UserStatusActive)
	if err != nil {
		return fmt.Errorf("error ensuring user %s: %v", userID, err)
	}
	return nil
}

func GetUserByID(userID string) (*models.User, error) {
	query := `
		SELECT id, email, COALESCE(name, ''), COALESCE(currency, 'BRL'), status, created_at
		FROM users
		WHERE id = $1
	`
	row := DB.QueryRow(query, userID)
	user := &models.User{}
	err := row.Scan(&user.UserID, &user.Email, &user.Name, &user.Currency, &user.Status, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found: %s", userID)
		}
		return nil, fmt.Errorf("error getting user by ID %s: %v", userID, err)
	}
	return user, nil
}

func UpdateStatusByUserID(userID string, status models.UserStatus) error {
	query := `
		UPDATE users
		SET status = $1
		WHERE id = $2
	`
	_, err := DB.Exec(query, status, userID)
	if err != nil {
		return fmt.Errorf("error updating status for user %s: %v", userID, err)
	}
	return nil
}

// DeleteUserDataByID removes every Postgres row owned by the user in one
// transaction. Purchases and invoices go through the card foreign keys.
func DeleteUserDataByID(userID string) (err error) {
	tx, err := DB.Begin()
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	statements := []string{
		`DELETE FROM purchases WHERE invoice_id IN (
			SELECT i.id FROM invoices i JOIN credit_cards c ON i.card_id = c.id WHERE c.user_id = $1)`,
		`DELETE FROM invoices WHERE card_id IN (SELECT id FROM credit_cards WHERE user_id = $1)`,
		`DELETE FROM credit_cards WHERE user_id = $1`,
		`DELETE FROM transactions WHERE user_id = $1`,
		`DELETE FROM budgets WHERE user_id = $1`,
		`DELETE FROM investments WHERE user_id = $1`,
		`DELETE FROM recurring_expenses WHERE user_id = $1`,
		`DELETE FROM financial_goals WHERE user_id = $1`,
	}
	for _, stmt := range statements {
		if _, err = tx.Exec(stmt, userID); err != nil {
			return err
		}
	}
	return nil
}
