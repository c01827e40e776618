package services

import (
	"strings"
	"testing"
	"time"

	"matwana/internal/domain"
	"matwana/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func newWalletServiceForTest(t *testing.T) (WalletService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := WalletService{
		UserRepo:    repositories.UserRepository{DB: db},
		PaymentRepo: repositories.PaymentRepository{DB: db},
		DB:          db,
		Now:         func() time.Time { return time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC) },
	}
	return svc, mock, func() { db.Close() }
}

func TestTopUpSuccess(t *testing.T) {
	svc, mock, done := newWalletServiceForTest(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM users").WithArgs(int64(1), "passenger").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "credits"}).
			AddRow(1, "Wanjiku", 5000))
	mock.ExpectExec("UPDATE users SET credits = credits \\+").
		WithArgs(int64(20000), int64(1), "passenger").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(int64(1), "credit_topup", int64(20000), sqlmock.AnyArg(), "mpesa",
			"completed", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	newBalance, txnID, err := svc.TopUp(1, 20000, "mpesa")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if newBalance != 25000 {
		t.Fatalf("balance mismatch, got %d want 25000", newBalance)
	}
	if !strings.HasPrefix(txnID, "TOPUP") {
		t.Fatalf("transaction id missing prefix: %q", txnID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTopUpBelowMinimum(t *testing.T) {
	svc, mock, done := newWalletServiceForTest(t)
	defer done()

	// KES 50 is under the 100 floor; no transaction is even opened.
	_, _, err := svc.TopUp(1, 5000, "mpesa")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected DB activity: %v", err)
	}
}

func TestTopUpRejectsNonPositiveAmount(t *testing.T) {
	svc, _, done := newWalletServiceForTest(t)
	defer done()

	for _, cents := range []int64{0, -100} {
		if _, _, err := svc.TopUp(1, cents, "mpesa"); !domain.IsValidation(err) {
			t.Fatalf("amount %d: expected validation error, got %v", cents, err)
		}
	}
}

func TestTopUpPassengerNotFound(t *testing.T) {
	svc, mock, done := newWalletServiceForTest(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM users").WithArgs(int64(404), "passenger").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "credits"}))
	mock.ExpectRollback()

	_, _, err := svc.TopUp(404, 20000, "mpesa")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTopUpPaymentFailureRollsBackCredit(t *testing.T) {
	svc, mock, done := newWalletServiceForTest(t)
	defer done()

	// If the audit record cannot be written the credit must not stick.
	mock.ExpectBegin()
	mock.ExpectQuery("FROM users").WithArgs(int64(1), "passenger").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "credits"}).
			AddRow(1, "Wanjiku", 5000))
	mock.ExpectExec("UPDATE users SET credits = credits \\+").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnError(sqlmockError("payments table gone"))
	mock.ExpectRollback()

	_, _, err := svc.TopUp(1, 20000, "mpesa")
	if err == nil {
		t.Fatal("expected error, got success")
	}
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

type sqlmockError string

func (e sqlmockError) Error() string { return string(e) }
