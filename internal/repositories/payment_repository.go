package repositories

import (
	"database/sql"
	"errors"

	"matwana/internal/domain"
	"matwana/internal/domain/models"
)

// PaymentRepository is the append-only audit log for wallet-affecting
// events. No update or delete is exposed.
type PaymentRepository struct {
	DB *sql.DB
}

// Append inserts one payment record. A reused transaction id hits
// uniq_payments_txn and surfaces as a conflict.
func (r PaymentRepository) Append(tx Queryer, p models.Payment) (int64, error) {
	if tx == nil {
		tx = r.DB
	}
	res, err := tx.Exec(`
		INSERT INTO payments
		(passenger_id, payment_type, amount, transaction_id, payment_method, status, description, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.PassengerID, p.PaymentType, p.Amount, p.TransactionID,
		p.PaymentMethod, p.Status, p.Description, p.CompletedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "payment", Msg: "duplicate transaction id", Err: err}
		}
		return 0, domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}

func (r PaymentRepository) GetByTransactionID(txnID string) (models.Payment, error) {
	var p models.Payment
	err := r.DB.QueryRow(`
		SELECT id, passenger_id, payment_type, amount, transaction_id,
		       payment_method, status, description, created_at, completed_at
		FROM payments WHERE transaction_id = ? LIMIT 1`, txnID).Scan(
		&p.ID, &p.PassengerID, &p.PaymentType, &p.Amount, &p.TransactionID,
		&p.PaymentMethod, &p.Status, &p.Description, &p.CreatedAt, &p.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, domain.NotFoundError{Resource: "payment", Err: err}
		}
		return models.Payment{}, domain.InternalError{Err: err}
	}
	return p, nil
}

// ListByPassenger returns the passenger's statement, newest first.
func (r PaymentRepository) ListByPassenger(passengerID int64, limit int) ([]models.Payment, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.DB.Query(`
		SELECT id, passenger_id, payment_type, amount, transaction_id,
		       payment_method, status, description, created_at, completed_at
		FROM payments WHERE passenger_id = ?
		ORDER BY created_at DESC LIMIT ?`, passengerID, limit)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(
			&p.ID, &p.PassengerID, &p.PaymentType, &p.Amount, &p.TransactionID,
			&p.PaymentMethod, &p.Status, &p.Description, &p.CreatedAt, &p.CompletedAt,
		); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}
