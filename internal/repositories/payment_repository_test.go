package repositories

import (
	"testing"
	"time"

	"matwana/internal/domain"
	"matwana/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestPaymentAppend(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(int64(1), "trip", int64(15000), "TRIP000077", "credits",
			"completed", "Trip booking for CBD - Ngong", now).
		WillReturnResult(sqlmock.NewResult(5, 1))

	repo := PaymentRepository{DB: db}
	id, err := repo.Append(nil, models.Payment{
		PassengerID:   1,
		PaymentType:   models.PaymentTypeTrip,
		Amount:        15000,
		TransactionID: "TRIP000077",
		PaymentMethod: models.MethodCredits,
		Status:        models.PaymentCompleted,
		Description:   "Trip booking for CBD - Ngong",
		CompletedAt:   &now,
	})
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if id != 5 {
		t.Fatalf("id mismatch, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPaymentAppendDuplicateTransactionID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO payments").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "duplicate entry 'TRIP000077'"})

	repo := PaymentRepository{DB: db}
	_, err = repo.Append(nil, models.Payment{TransactionID: "TRIP000077"})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict for duplicate transaction id, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
