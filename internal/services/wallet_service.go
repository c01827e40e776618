package services

import (
	"database/sql"
	"fmt"
	"time"

	intconfig "matwana/internal/config"
	"matwana/internal/domain"
	"matwana/internal/domain/models"
	"matwana/internal/repositories"
	"matwana/internal/utils"
)

// MinTopUpCents is the top-up floor: KES 100.
const MinTopUpCents int64 = 100 * 100

// WalletService owns the prepaid balance. Credit and the paired audit
// record are written in one transaction; both land or neither does.
type WalletService struct {
	UserRepo    repositories.UserRepository
	PaymentRepo repositories.PaymentRepository
	DB          *sql.DB
	RequestID   string
	Now         func() time.Time
}

func (s WalletService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s WalletService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// TopUp credits the wallet and appends a completed credit_topup payment.
// The gateway side is simulated; method is recorded as supplied.
func (s WalletService) TopUp(passengerID, cents int64, method string) (int64, string, error) {
	if passengerID <= 0 {
		return 0, "", domain.ValidationError{Field: "passenger_id", Msg: "invalid id"}
	}
	if err := utils.ValidatePositiveAmount(cents); err != nil {
		return 0, "", err
	}
	if cents < MinTopUpCents {
		return 0, "", domain.ValidationError{Field: "amount", Msg: "minimum top-up amount is KES 100"}
	}
	if method == "" {
		method = "mpesa"
	}

	tx, err := s.db().Begin()
	if err != nil {
		return 0, "", domain.InternalError{Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	passenger, err := s.UserRepo.LockPassenger(tx, passengerID)
	if err != nil {
		return 0, "", err
	}

	if err := s.UserRepo.CreditWallet(tx, passenger.ID, cents); err != nil {
		return 0, "", err
	}

	now := s.now()
	txnID := fmt.Sprintf("TOPUP%d", now.UnixNano())
	_, err = s.PaymentRepo.Append(tx, models.Payment{
		PassengerID:   passenger.ID,
		PaymentType:   models.PaymentTypeTopUp,
		Amount:        cents,
		TransactionID: txnID,
		PaymentMethod: method,
		Status:        models.PaymentCompleted,
		Description:   fmt.Sprintf("Wallet top-up of %s", utils.FormatKES(cents)),
		CompletedAt:   &now,
	})
	if err != nil {
		return 0, "", err
	}

	if err := tx.Commit(); err != nil {
		return 0, "", domain.InternalError{Err: err}
	}
	committed = true

	newBalance := passenger.Credits + cents
	utils.LogEvent(s.RequestID, "wallet", "topup",
		fmt.Sprintf("passenger_id=%d amount=%s balance=%s",
			passenger.ID, utils.FormatKES(cents), utils.FormatKES(newBalance)))
	return newBalance, txnID, nil
}

// Balance returns the passenger's current credits in cents.
func (s WalletService) Balance(passengerID int64) (int64, error) {
	return s.UserRepo.GetBalance(nil, passengerID)
}

// Statement returns the passenger's payment history, newest first.
func (s WalletService) Statement(passengerID int64, limit int) ([]models.Payment, error) {
	return s.PaymentRepo.ListByPassenger(passengerID, limit)
}

// Receipt fetches a payment by transaction id, scoped to the passenger.
func (s WalletService) Receipt(txnID string, passengerID int64) (models.Payment, error) {
	p, err := s.PaymentRepo.GetByTransactionID(txnID)
	if err != nil {
		return models.Payment{}, err
	}
	if p.PassengerID != passengerID {
		return models.Payment{}, domain.NotFoundError{Resource: "payment"}
	}
	return p, nil
}
