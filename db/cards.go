package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"fincontrol/api/models"
)

func CreateCard(card *models.CreditCard) error {
	query := `
		INSERT INTO credit_cards (id, user_id, name, brand, limit_value, closing_day, due_day, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at
	`
	err := DB.QueryRow(query, card.ID, card.UserID, card.Name, card.Brand, card.LimitValue, card.ClosingDay, card.DueDay).
		Scan(&card.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating card for user %s: %v", card.UserID, err)
	}
	return nil
}

func ListCards(userID string) ([]models.CreditCard, error) {
	query := `
		SELECT id, user_id, name, brand, limit_value, closing_day, due_day, created_at
		FROM credit_cards
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing cards for user %s: %v", userID, err)
	}
	defer rows.Close()

	cards := []models.CreditCard{}
	for rows.Next() {
		var c models.CreditCard
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Brand, &c.LimitValue, &c.ClosingDay, &c.DueDay, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning card: %v", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func GetCardByID(userID string, id uuid.UUID) (*models.CreditCard, error) {
	query := `
		SELECT id, user_id, name, brand, limit_value, closing_day, due_day, created_at
		FROM credit_cards
		WHERE id = $1 AND user_id = $2
	`
	var c models.CreditCard
	err := DB.QueryRow(query, id, userID).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Brand, &c.LimitValue, &c.ClosingDay, &c.DueDay, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting card %s: %v", id, err)
	}
	return &c, nil
}

func UpdateCard(card *models.CreditCard) error {
	query := `
		UPDATE credit_cards
		SET name = $1, brand = $2, limit_value = $3, closing_day = $4, due_day = $5
		WHERE id = $6 AND user_id = $7
	`
	res, err := DB.Exec(query, card.Name, card.Brand, card.LimitValue, card.ClosingDay, card.DueDay, card.ID, card.UserID)
	if err != nil {
		return fmt.Errorf("error updating card %s: %v", card.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error updating card %s: %v", card.ID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func DeleteCard(userID string, id uuid.UUID) (err error) {
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

	var owned bool
	err = tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM credit_cards WHERE id = $1 AND user_id = $2)`, id, userID).Scan(&owned)
	if err != nil {
		return fmt.Errorf("error checking card %s: %v", id, err)
	}
	if !owned {
		return ErrNotFound
	}

	if _, err = tx.Exec(`DELETE FROM purchases WHERE invoice_id IN (SELECT id FROM invoices WHERE card_id = $1)`, id); err != nil {
		return fmt.Errorf("error deleting purchases for card %s: %v", id, err)
	}
	if _, err = tx.Exec(`DELETE FROM invoices WHERE card_id = $1`, id); err != nil {
		return fmt.Errorf("error deleting invoices for card %s: %v", id, err)
	}
	if _, err = tx.Exec(`DELETE FROM credit_cards WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error deleting card %s: %v", id, err)
	}
	return nil
}

// AddPurchase routes a purchase into the card's invoice for the given
// "YYYY-MM" month, creating an open invoice if none exists, and bumps the
// invoice total in the same transaction so total always equals the sum of
// its purchases. Purchases can only land on open invoices.
func AddPurchase(userID string, cardID uuid.UUID, month string, p *models.Purchase) (invoiceID uuid.UUID, err error) {
	tx, err := DB.Begin()
	if err != nil {
		return uuid.Nil, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var owned bool
	err = tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM credit_cards WHERE id = $1 AND user_id = $2)`, cardID, userID).Scan(&owned)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error checking card %s: %v", cardID, err)
	}
	if !owned {
		return uuid.Nil, ErrNotFound
	}

	var status models.InvoiceStatus
	err = tx.QueryRow(`SELECT id, status FROM invoices WHERE card_id = $1 AND month = $2 FOR UPDATE`, cardID, month).
		Scan(&invoiceID, &status)
	switch {
	case err == sql.ErrNoRows:
		invoiceID = uuid.New()
		_, err = tx.Exec(`
			INSERT INTO invoices (id, card_id, month, status, total, created_at)
			VALUES ($1, $2, $3, $4, 0, NOW())
		`, invoiceID, cardID, month, models.InvoiceOpen)
		if err != nil {
			return uuid.Nil, fmt.Errorf("error creating invoice for card %s month %s: %v", cardID, month, err)
		}
	case err != nil:
		return uuid.Nil, fmt.Errorf("error locking invoice for card %s month %s: %v", cardID, month, err)
	case status != models.InvoiceOpen:
		return uuid.Nil, ErrConflict
	}

	p.InvoiceID = invoiceID
	_, err = tx.Exec(`
		INSERT INTO purchases (id, invoice_id, description, category, value, date, installment, installments, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`, p.ID, p.InvoiceID, p.Description, p.Category, p.Value, p.Date, p.Installment, p.Installments)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error inserting purchase on invoice %s: %v", invoiceID, err)
	}

	_, err = tx.Exec(`UPDATE invoices SET total = total + $1 WHERE id = $2`, p.Value, invoiceID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error updating invoice total %s: %v", invoiceID, err)
	}
	return invoiceID, nil
}

func ListInvoicesByCard(userID string, cardID uuid.UUID) ([]models.Invoice, error) {
	query := `
		SELECT i.id, i.card_id, i.month, i.status, i.total, i.created_at
		FROM invoices i
		JOIN credit_cards c ON i.card_id = c.id
		WHERE i.card_id = $1 AND c.user_id = $2
		ORDER BY i.month DESC
	`
	rows, err := DB.Query(query, cardID, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing invoices for card %s: %v", cardID, err)
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		var inv models.Invoice
		if err := rows.Scan(&inv.ID, &inv.CardID, &inv.Month, &inv.Status, &inv.Total, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning invoice: %v", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func ListPurchasesByInvoice(userID string, invoiceID uuid.UUID) ([]models.Purchase, error) {
	query := `
		SELECT p.id, p.invoice_id, p.description, p.category, p.value, p.date, p.installment, p.installments, p.created_at
		FROM purchases p
		JOIN invoices i ON p.invoice_id = i.id
		JOIN credit_cards c ON i.card_id = c.id
		WHERE p.invoice_id = $1 AND c.user_id = $2
		ORDER BY p.date
	`
	rows, err := DB.Query(query, invoiceID, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing purchases for invoice %s: %v", invoiceID, err)
	}
	defer rows.Close()

	purchases := []models.Purchase{}
	for rows.Next() {
		var p models.Purchase
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Description, &p.Category, &p.Value, &p.Date, &p.Installment, &p.Installments, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning purchase: %v", err)
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

// SetInvoiceStatus enforces the open -> closed -> paid lifecycle. Any other
// transition is ErrConflict.
func SetInvoiceStatus(userID string, invoiceID uuid.UUID, next models.InvoiceStatus) (err error) {
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

	var current models.InvoiceStatus
	err = tx.QueryRow(`
		SELECT i.status
		FROM invoices i
		JOIN credit_cards c ON i.card_id = c.id
		WHERE i.id = $1 AND c.user_id = $2
		FOR UPDATE OF i
	`, invoiceID, userID).Scan(&current)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("error locking invoice %s: %v", invoiceID, err)
	}

	valid := (current == models.InvoiceOpen && next == models.InvoiceClosed) ||
		(current == models.InvoiceClosed && next == models.InvoicePaid)
	if !valid {
		return ErrConflict
	}

	if _, err = tx.Exec(`UPDATE invoices SET status = $1 WHERE id = $2`, next, invoiceID); err != nil {
		return fmt.Errorf("error updating invoice %s status: %v", invoiceID, err)
	}
	return nil
}

// InvoiceWithCard joins an invoice with the card fields reports need.
type InvoiceWithCard struct {
	models.Invoice
	CardName string
	DueDay   int
}

// ListInvoicesForUser returns every invoice across the user's cards,
// joined with card name and due day for calendar and wealth projection.
func ListInvoicesForUser(userID string) ([]InvoiceWithCard, error) {
	query := `
		SELECT i.id, i.card_id, i.month, i.status, i.total, i.created_at, c.name, c.due_day
		FROM invoices i
		JOIN credit_cards c ON i.card_id = c.id
		WHERE c.user_id = $1
		ORDER BY i.month
	`
	rows, err := DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing invoices for user %s: %v", userID, err)
	}
	defer rows.Close()

	invoices := []InvoiceWithCard{}
	for rows.Next() {
		var iv InvoiceWithCard
		if err := rows.Scan(&iv.ID, &iv.CardID, &iv.Month, &iv.Status, &iv.Total, &iv.CreatedAt, &iv.CardName, &iv.DueDay); err != nil {
			return nil, fmt.Errorf("error scanning invoice: %v", err)
		}
		invoices = append(invoices, iv)
	}
	return invoices, rows.Err()
}
