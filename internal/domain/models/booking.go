package models

import "time"

// Booking links a passenger to a trip they have paid for. FarePaid is the
// fare snapshot taken at booking time in KES cents; it is never recomputed
// from the route afterwards. Rows are append-only.
type Booking struct {
	ID              int64     `json:"id"`
	PassengerID     int64     `json:"passenger_id"`
	TripID          int64     `json:"trip_id"`
	BoardingStop    string    `json:"boarding_stop"`
	AlightingStop   string    `json:"alighting_stop"`
	FarePaid        int64     `json:"fare_paid"`
	PaymentMethod   string    `json:"payment_method"`
	IsPaid          bool      `json:"is_paid"`
	TransactionTime time.Time `json:"transaction_time"`

	// Joined fields filled by list reads.
	RouteName          string    `json:"route_name,omitempty"`
	PlateNumber        string    `json:"plate_number,omitempty"`
	TripStatus         string    `json:"trip_status,omitempty"`
	ScheduledDeparture time.Time `json:"scheduled_departure,omitempty"`
}
