package repositories

import (
	"testing"

	"matwana/internal/domain"
	"matwana/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestBookingInsertMapsDuplicateKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO passenger_trips").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "duplicate entry '1-10'"})

	repo := BookingRepository{DB: db}
	_, err = repo.Insert(nil, models.Booking{PassengerID: 1, TripID: 10})
	if err == nil {
		t.Fatal("expected error, got success")
	}
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCountForTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(7))

	repo := BookingRepository{DB: db}
	n, err := repo.CountForTrip(nil, 10)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 7 {
		t.Fatalf("count mismatch, got %d", n)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
