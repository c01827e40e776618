package services

import (
	"testing"
	"time"

	"matwana/internal/domain"
	"matwana/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func newBookingServiceForTest(t *testing.T) (BookingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := BookingService{
		UserRepo:    repositories.UserRepository{DB: db},
		CatalogRepo: repositories.CatalogRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		PaymentRepo: repositories.PaymentRepository{DB: db},
		DB:          db,
		Now:         func() time.Time { return time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC) },
	}
	return svc, mock, func() { db.Close() }
}

func expectLockedPassenger(mock sqlmock.Sqlmock, id, credits int64) {
	mock.ExpectQuery("FROM users").WithArgs(id, "passenger").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "credits"}).
			AddRow(id, "Wanjiku", credits))
}

func expectBookableTrip(mock sqlmock.Sqlmock, tripID, routeID, fare int64, capacity int) {
	mock.ExpectQuery("FROM trips").WithArgs(tripID, routeID, "scheduled", "active").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "route_id", "matatu_id", "scheduled_departure", "status",
			"name", "start_point", "end_point", "standard_fare", "plate_number", "capacity",
		}).AddRow(tripID, routeID, 3, time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC), "scheduled",
			"CBD - Ngong", "CBD", "Ngong", fare, "KDA 123A", capacity))
}

func TestBookSuccess(t *testing.T) {
	svc, mock, done := newBookingServiceForTest(t)
	defer done()

	// Passenger holds KES 500, fare is KES 150.
	mock.ExpectBegin()
	expectLockedPassenger(mock, 1, 50000)
	expectBookableTrip(mock, 10, 2, 15000, 14)
	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(1), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(5))
	mock.ExpectExec("UPDATE users SET credits = credits -").
		WithArgs(int64(15000), int64(1), "passenger", int64(15000)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO passenger_trips").
		WithArgs(int64(1), int64(10), "CBD", "Ngong", int64(15000), "credits", true).
		WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(int64(1), "trip", int64(15000), "TRIP000077", "credits", "completed",
			"Trip booking for CBD - Ngong", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()

	booking, err := svc.Book(1, 2, 10)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if booking.ID != 77 {
		t.Fatalf("booking id mismatch, got %d", booking.ID)
	}
	if booking.FarePaid != 15000 {
		t.Fatalf("fare snapshot mismatch, got %d", booking.FarePaid)
	}
	if booking.BoardingStop != "CBD" || booking.AlightingStop != "Ngong" {
		t.Fatalf("stops not taken from route: %q -> %q", booking.BoardingStop, booking.AlightingStop)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookInsufficientFundsRollsBack(t *testing.T) {
	svc, mock, done := newBookingServiceForTest(t)
	defer done()

	// Balance 50, fare 150: the conditional debit touches zero rows and
	// the whole transaction rolls back before any insert.
	mock.ExpectBegin()
	expectLockedPassenger(mock, 1, 5000)
	expectBookableTrip(mock, 10, 2, 15000, 14)
	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(1), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(5))
	mock.ExpectExec("UPDATE users SET credits = credits -").
		WithArgs(int64(15000), int64(1), "passenger", int64(15000)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.Book(1, 2, 10)
	if !domain.IsInsufficientFunds(err) {
		t.Fatalf("expected InsufficientFunds, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookTripFull(t *testing.T) {
	svc, mock, done := newBookingServiceForTest(t)
	defer done()

	mock.ExpectBegin()
	expectLockedPassenger(mock, 1, 100000)
	expectBookableTrip(mock, 10, 2, 15000, 14)
	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(1), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(14))
	mock.ExpectRollback()

	_, err := svc.Book(1, 2, 10)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookAlreadyBooked(t *testing.T) {
	svc, mock, done := newBookingServiceForTest(t)
	defer done()

	mock.ExpectBegin()
	expectLockedPassenger(mock, 1, 100000)
	expectBookableTrip(mock, 10, 2, 15000, 14)
	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(1), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectRollback()

	_, err := svc.Book(1, 2, 10)
	if !domain.IsConflict(err) {
		t.Fatalf("expected AlreadyBooked conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookDuplicateKeyBackstop(t *testing.T) {
	svc, mock, done := newBookingServiceForTest(t)
	defer done()

	// The pre-check misses a concurrent double submit; the unique key on
	// (passenger_id, trip_id) still refuses the second insert.
	mock.ExpectBegin()
	expectLockedPassenger(mock, 1, 100000)
	expectBookableTrip(mock, 10, 2, 15000, 14)
	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(1), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(5))
	mock.ExpectExec("UPDATE users SET credits = credits -").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO passenger_trips").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "duplicate entry"})
	mock.ExpectRollback()

	_, err := svc.Book(1, 2, 10)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict from unique key, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookTripNotFound(t *testing.T) {
	svc, mock, done := newBookingServiceForTest(t)
	defer done()

	mock.ExpectBegin()
	expectLockedPassenger(mock, 1, 100000)
	mock.ExpectQuery("FROM trips").WithArgs(int64(99), int64(2), "scheduled", "active").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Book(1, 2, 99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected TripNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookPassengerNotFound(t *testing.T) {
	svc, mock, done := newBookingServiceForTest(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM users").WithArgs(int64(404), "passenger").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "credits"}))
	mock.ExpectRollback()

	_, err := svc.Book(404, 2, 10)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected PassengerNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookPaymentFailureAbortsBooking(t *testing.T) {
	svc, mock, done := newBookingServiceForTest(t)
	defer done()

	// The audit write is mandatory: when it fails nothing else survives.
	mock.ExpectBegin()
	expectLockedPassenger(mock, 1, 50000)
	expectBookableTrip(mock, 10, 2, 15000, 14)
	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(1), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(5))
	mock.ExpectExec("UPDATE users SET credits = credits -").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO passenger_trips").
		WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "duplicate entry"})
	mock.ExpectRollback()

	_, err := svc.Book(1, 2, 10)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookRejectsInvalidIDs(t *testing.T) {
	svc, _, done := newBookingServiceForTest(t)
	defer done()

	if _, err := svc.Book(0, 2, 10); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for passenger id, got %v", err)
	}
	if _, err := svc.Book(1, 0, 10); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for route id, got %v", err)
	}
	if _, err := svc.Book(1, 2, 0); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for trip id, got %v", err)
	}
}
