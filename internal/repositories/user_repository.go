package repositories

import (
	"database/sql"
	"errors"

	"matwana/internal/domain"
	"matwana/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) Create(u models.User) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO users (name, email, phone, password_hash, user_type, credits, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.Name, u.Email, u.Phone, u.PasswordHash, u.UserType, u.Credits, u.Status,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "user", Msg: "email already registered", Err: err}
		}
		return 0, domain.InternalError{Err: err}
	}
	return res.LastInsertId()
}

func (r UserRepository) GetByEmail(email string) (models.User, error) {
	var u models.User
	err := r.DB.QueryRow(`
		SELECT id, name, email, phone, password_hash, user_type, credits, status, created_at
		FROM users WHERE email = ? LIMIT 1`, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.UserType, &u.Credits, &u.Status, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	return u, nil
}

// GetPassenger fetches a user that must be a passenger.
func (r UserRepository) GetPassenger(q Queryer, id int64) (models.User, error) {
	if q == nil {
		q = r.DB
	}
	var u models.User
	err := q.QueryRow(`
		SELECT id, name, email, phone, password_hash, user_type, credits, status, created_at
		FROM users WHERE id = ? AND user_type = ? LIMIT 1`, id, models.RolePassenger).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.UserType, &u.Credits, &u.Status, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "passenger", Err: err}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	return u, nil
}

// LockPassenger reads the passenger row FOR UPDATE inside tx, pinning the
// balance for the rest of the transaction.
func (r UserRepository) LockPassenger(tx Queryer, id int64) (models.User, error) {
	var u models.User
	err := tx.QueryRow(`
		SELECT id, name, credits FROM users
		WHERE id = ? AND user_type = ? FOR UPDATE`, id, models.RolePassenger).Scan(
		&u.ID, &u.Name, &u.Credits,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "passenger", Err: err}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	u.UserType = models.RolePassenger
	return u, nil
}

// CreditWallet adds cents to the passenger's balance.
func (r UserRepository) CreditWallet(tx Queryer, id, cents int64) error {
	if cents <= 0 {
		return domain.ValidationError{Field: "amount", Msg: "amount must be positive"}
	}
	res, err := tx.Exec(`
		UPDATE users SET credits = credits + ?
		WHERE id = ? AND user_type = ?`, cents, id, models.RolePassenger)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "passenger"}
	}
	return nil
}

// DebitWallet subtracts cents only when the balance covers it. The
// conditional WHERE is the guard: zero rows affected means insufficient
// funds and the balance is untouched.
func (r UserRepository) DebitWallet(tx Queryer, id, cents int64) error {
	if cents <= 0 {
		return domain.ValidationError{Field: "amount", Msg: "amount must be positive"}
	}
	res, err := tx.Exec(`
		UPDATE users SET credits = credits - ?
		WHERE id = ? AND user_type = ? AND credits >= ?`,
		cents, id, models.RolePassenger, cents)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.InsufficientFundsError{Needed: cents}
	}
	return nil
}

// GetBalance returns the passenger's current credits in cents.
func (r UserRepository) GetBalance(q Queryer, id int64) (int64, error) {
	if q == nil {
		q = r.DB
	}
	var cents int64
	err := q.QueryRow(`
		SELECT credits FROM users WHERE id = ? AND user_type = ? LIMIT 1`,
		id, models.RolePassenger).Scan(&cents)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NotFoundError{Resource: "passenger", Err: err}
		}
		return 0, domain.InternalError{Err: err}
	}
	return cents, nil
}
