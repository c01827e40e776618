package repositories

import (
	"database/sql"
	"errors"
	"strings"

	"matwana/internal/domain"
	"matwana/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

// Exists reports whether the passenger already holds a booking on the trip.
// This is the friendly pre-check; uniq_passenger_trip remains the backstop.
func (r BookingRepository) Exists(q Queryer, passengerID, tripID int64) (bool, error) {
	if q == nil {
		q = r.DB
	}
	var n int
	err := q.QueryRow(`
		SELECT COUNT(*) FROM passenger_trips
		WHERE passenger_id = ? AND trip_id = ?`, passengerID, tripID).Scan(&n)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

// CountForTrip returns how many seats are already taken on the trip.
func (r BookingRepository) CountForTrip(q Queryer, tripID int64) (int, error) {
	if q == nil {
		q = r.DB
	}
	var n int
	if err := q.QueryRow(`
		SELECT COUNT(*) FROM passenger_trips WHERE trip_id = ?`, tripID).Scan(&n); err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return n, nil
}

// Insert creates the booking row. A duplicate (passenger, trip) pair hits
// uniq_passenger_trip and surfaces as AlreadyBooked.
func (r BookingRepository) Insert(tx Queryer, b models.Booking) (int64, error) {
	if tx == nil {
		tx = r.DB
	}
	res, err := tx.Exec(`
		INSERT INTO passenger_trips
		(passenger_id, trip_id, boarding_stop, alighting_stop, fare_paid, payment_method, is_paid)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.PassengerID, b.TripID, b.BoardingStop, b.AlightingStop, b.FarePaid, b.PaymentMethod, b.IsPaid,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "booking", Msg: "you have already booked this trip", Err: err}
		}
		return 0, domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	var b models.Booking
	err := r.DB.QueryRow(`
		SELECT pt.id, pt.passenger_id, pt.trip_id, pt.boarding_stop, pt.alighting_stop,
		       pt.fare_paid, pt.payment_method, pt.is_paid, pt.transaction_time,
		       r.name, COALESCE(m.plate_number, ''), t.status, t.scheduled_departure
		FROM passenger_trips pt
		JOIN trips t ON t.id = pt.trip_id
		JOIN routes r ON r.id = t.route_id
		LEFT JOIN matatus m ON m.id = t.matatu_id
		WHERE pt.id = ? LIMIT 1`, id).Scan(
		&b.ID, &b.PassengerID, &b.TripID, &b.BoardingStop, &b.AlightingStop,
		&b.FarePaid, &b.PaymentMethod, &b.IsPaid, &b.TransactionTime,
		&b.RouteName, &b.PlateNumber, &b.TripStatus, &b.ScheduledDeparture,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	return b, nil
}

// ListActive returns bookings whose trip is still upcoming or running.
func (r BookingRepository) ListActive(passengerID int64) ([]models.Booking, error) {
	rows, err := r.DB.Query(`
		SELECT pt.id, pt.passenger_id, pt.trip_id, pt.boarding_stop, pt.alighting_stop,
		       pt.fare_paid, pt.payment_method, pt.is_paid, pt.transaction_time,
		       r.name, COALESCE(m.plate_number, ''), t.status, t.scheduled_departure
		FROM passenger_trips pt
		JOIN trips t ON t.id = pt.trip_id
		JOIN routes r ON r.id = t.route_id
		LEFT JOIN matatus m ON m.id = t.matatu_id
		WHERE pt.passenger_id = ?
		  AND t.status IN (?, ?)
		  AND t.scheduled_departure >= DATE_SUB(NOW(), INTERVAL 1 HOUR)
		ORDER BY t.scheduled_departure`,
		passengerID, models.TripScheduled, models.TripActive)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()
	return collectBookings(rows)
}

// HistoryFilter narrows ListHistory; zero values mean no filter.
type HistoryFilter struct {
	Date   string // trip date, YYYY-MM-DD
	Status string // trip status
}

func (r BookingRepository) ListHistory(passengerID int64, f HistoryFilter) ([]models.Booking, error) {
	where := []string{"pt.passenger_id = ?"}
	args := []any{passengerID}
	if f.Date != "" {
		where = append(where, "DATE(t.scheduled_departure) = ?")
		args = append(args, f.Date)
	}
	if f.Status != "" {
		where = append(where, "t.status = ?")
		args = append(args, f.Status)
	}

	rows, err := r.DB.Query(`
		SELECT pt.id, pt.passenger_id, pt.trip_id, pt.boarding_stop, pt.alighting_stop,
		       pt.fare_paid, pt.payment_method, pt.is_paid, pt.transaction_time,
		       r.name, COALESCE(m.plate_number, ''), t.status, t.scheduled_departure
		FROM passenger_trips pt
		JOIN trips t ON t.id = pt.trip_id
		JOIN routes r ON r.id = t.route_id
		LEFT JOIN matatus m ON m.id = t.matatu_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY pt.transaction_time DESC`, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()
	return collectBookings(rows)
}

// CountForPassenger returns the passenger's lifetime booking count.
func (r BookingRepository) CountForPassenger(passengerID int64) (int, error) {
	var n int
	if err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM passenger_trips WHERE passenger_id = ?`, passengerID).Scan(&n); err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return n, nil
}

// CountActiveForPassenger counts bookings on upcoming trips.
func (r BookingRepository) CountActiveForPassenger(passengerID int64) (int, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM passenger_trips pt
		JOIN trips t ON t.id = pt.trip_id
		WHERE pt.passenger_id = ? AND t.status IN (?, ?) AND t.scheduled_departure >= NOW()`,
		passengerID, models.TripScheduled, models.TripActive).Scan(&n)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return n, nil
}

func collectBookings(rows *sql.Rows) ([]models.Booking, error) {
	out := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(
			&b.ID, &b.PassengerID, &b.TripID, &b.BoardingStop, &b.AlightingStop,
			&b.FarePaid, &b.PaymentMethod, &b.IsPaid, &b.TransactionTime,
			&b.RouteName, &b.PlateNumber, &b.TripStatus, &b.ScheduledDeparture,
		); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}
