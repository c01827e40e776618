package services

import (
	"database/sql"

	intconfig "matwana/internal/config"
	"matwana/internal/domain"
	"matwana/internal/domain/models"
	"matwana/internal/repositories"
)

// DashboardService provides the read-only aggregations behind the
// passenger dashboard and the admin stats screen.
type DashboardService struct {
	UserRepo    repositories.UserRepository
	BookingRepo repositories.BookingRepository
	DB          *sql.DB
}

func (s DashboardService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

type PassengerStats struct {
	TotalTrips     int   `json:"total_trips"`
	WalletBalance  int64 `json:"wallet_balance"`
	ActiveBookings int   `json:"active_bookings"`
}

func (s DashboardService) PassengerStats(passengerID int64) (PassengerStats, error) {
	var st PassengerStats
	total, err := s.BookingRepo.CountForPassenger(passengerID)
	if err != nil {
		return st, err
	}
	balance, err := s.UserRepo.GetBalance(nil, passengerID)
	if err != nil {
		return st, err
	}
	active, err := s.BookingRepo.CountActiveForPassenger(passengerID)
	if err != nil {
		return st, err
	}
	st.TotalTrips = total
	st.WalletBalance = balance
	st.ActiveBookings = active
	return st, nil
}

type AdminStats struct {
	TotalPassengers int   `json:"total_passengers"`
	TotalSaccos     int   `json:"total_saccos"`
	TotalMatatus    int   `json:"total_matatus"`
	TotalRoutes     int   `json:"total_routes"`
	TotalTrips      int   `json:"total_trips"`
	TotalBookings   int   `json:"total_bookings"`
	BookingsToday   int   `json:"bookings_today"`
	TotalRevenue    int64 `json:"total_revenue"`
}

func (s DashboardService) AdminStats() (AdminStats, error) {
	var st AdminStats
	db := s.db()

	counts := []struct {
		query string
		args  []any
		dst   *int
	}{
		{`SELECT COUNT(*) FROM users WHERE user_type = ?`, []any{models.RolePassenger}, &st.TotalPassengers},
		{`SELECT COUNT(*) FROM saccos WHERE is_active = 1`, nil, &st.TotalSaccos},
		{`SELECT COUNT(*) FROM matatus WHERE is_active = 1`, nil, &st.TotalMatatus},
		{`SELECT COUNT(*) FROM routes WHERE is_active = 1`, nil, &st.TotalRoutes},
		{`SELECT COUNT(*) FROM trips`, nil, &st.TotalTrips},
		{`SELECT COUNT(*) FROM passenger_trips`, nil, &st.TotalBookings},
		{`SELECT COUNT(*) FROM passenger_trips WHERE DATE(transaction_time) = CURDATE()`, nil, &st.BookingsToday},
	}
	for _, c := range counts {
		if err := db.QueryRow(c.query, c.args...).Scan(c.dst); err != nil {
			return AdminStats{}, domain.InternalError{Err: err}
		}
	}

	err := db.QueryRow(`
		SELECT COALESCE(SUM(amount), 0) FROM payments
		WHERE payment_type = ? AND status = ?`,
		models.PaymentTypeTrip, models.PaymentCompleted).Scan(&st.TotalRevenue)
	if err != nil {
		return AdminStats{}, domain.InternalError{Err: err}
	}
	return st, nil
}
