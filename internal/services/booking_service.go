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

// BookingService owns the trip-booking workflow. Book runs as one
// transaction: failures at any step leave the passenger balance, the
// booking set and the payment log exactly as they were.
type BookingService struct {
	UserRepo    repositories.UserRepository
	CatalogRepo repositories.CatalogRepository
	BookingRepo repositories.BookingRepository
	PaymentRepo repositories.PaymentRepository
	DB          *sql.DB
	RequestID   string
	Now         func() time.Time
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Book reserves a seat on the trip for the passenger, debits the fare
// from the wallet and records the paired payment entry.
//
// The passenger and trip rows are locked for the duration of the
// transaction, the capacity check happens under that lock, and the
// uniq_passenger_trip key backs up the already-booked check against
// concurrent double submits.
func (s BookingService) Book(passengerID, routeID, tripID int64) (models.Booking, error) {
	if passengerID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "passenger_id", Msg: "invalid id"}
	}
	if routeID <= 0 || tripID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "trip_id", Msg: "route and trip are required"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	passenger, err := s.UserRepo.LockPassenger(tx, passengerID)
	if err != nil {
		return models.Booking{}, err
	}

	trip, err := s.CatalogRepo.GetBookableTrip(tx, tripID, routeID, true)
	if err != nil {
		return models.Booking{}, err
	}

	booked, err := s.BookingRepo.Exists(tx, passenger.ID, trip.ID)
	if err != nil {
		return models.Booking{}, err
	}
	if booked {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "you have already booked this trip"}
	}

	taken, err := s.BookingRepo.CountForTrip(tx, trip.ID)
	if err != nil {
		return models.Booking{}, err
	}
	if trip.Capacity-taken <= 0 {
		return models.Booking{}, domain.ConflictError{Resource: "trip", Msg: "trip is fully booked"}
	}

	// Fare snapshot: later edits to the route never touch this booking.
	fare := trip.StandardFare

	if fare > 0 {
		if err := s.UserRepo.DebitWallet(tx, passenger.ID, fare); err != nil {
			return models.Booking{}, err
		}
	}

	booking := models.Booking{
		PassengerID:   passenger.ID,
		TripID:        trip.ID,
		BoardingStop:  trip.StartPoint,
		AlightingStop: trip.EndPoint,
		FarePaid:      fare,
		PaymentMethod: models.MethodCredits,
		IsPaid:        true,
	}
	bookingID, err := s.BookingRepo.Insert(tx, booking)
	if err != nil {
		return models.Booking{}, err
	}
	booking.ID = bookingID

	// The audit record is part of the transaction: if it cannot be
	// written the whole booking rolls back.
	now := s.now()
	_, err = s.PaymentRepo.Append(tx, models.Payment{
		PassengerID:   passenger.ID,
		PaymentType:   models.PaymentTypeTrip,
		Amount:        fare,
		TransactionID: fmt.Sprintf("TRIP%06d", bookingID),
		PaymentMethod: models.MethodCredits,
		Status:        models.PaymentCompleted,
		Description:   fmt.Sprintf("Trip booking for %s", trip.RouteName),
		CompletedAt:   &now,
	})
	if err != nil {
		return models.Booking{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	committed = true

	utils.LogEvent(s.RequestID, "booking", "book",
		fmt.Sprintf("passenger_id=%d trip_id=%d booking_id=%d fare=%s",
			passenger.ID, trip.ID, bookingID, utils.FormatKES(fare)))

	booking.TransactionTime = now
	booking.RouteName = trip.RouteName
	booking.PlateNumber = trip.PlateNumber
	booking.TripStatus = trip.Status
	booking.ScheduledDeparture = trip.ScheduledDeparture
	return booking, nil
}

// SeatsAvailable is the advisory read used by listings; the booking
// transaction re-checks under the trip row lock.
func (s BookingService) SeatsAvailable(trip models.Trip) (int, error) {
	taken, err := s.BookingRepo.CountForTrip(nil, trip.ID)
	if err != nil {
		return 0, err
	}
	seats := trip.Capacity - taken
	if seats < 0 {
		seats = 0
	}
	return seats, nil
}

// ActiveBookings lists the passenger's bookings on upcoming trips.
func (s BookingService) ActiveBookings(passengerID int64) ([]models.Booking, error) {
	return s.BookingRepo.ListActive(passengerID)
}

// History lists the passenger's booking history with optional filters.
func (s BookingService) History(passengerID int64, f repositories.HistoryFilter) ([]models.Booking, error) {
	return s.BookingRepo.ListHistory(passengerID, f)
}

// GetOwned fetches a booking and verifies it belongs to the passenger.
func (s BookingService) GetOwned(bookingID, passengerID int64) (models.Booking, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if b.PassengerID != passengerID {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}
