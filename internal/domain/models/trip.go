package models

import "time"

const (
	TripScheduled = "scheduled"
	TripActive    = "active"
	TripCompleted = "completed"
	TripCancelled = "cancelled"
)

// Trip is one scheduled departure of a Route. The booking core only
// reads status and the assigned matatu's capacity.
type Trip struct {
	ID                 int64     `json:"id"`
	RouteID            int64     `json:"route_id"`
	MatatuID           int64     `json:"matatu_id"`
	DriverID           int64     `json:"driver_id,omitempty"`
	ConductorID        int64     `json:"conductor_id,omitempty"`
	ScheduledDeparture time.Time `json:"scheduled_departure"`
	Status             string    `json:"status"`

	// Joined fields filled by catalog reads.
	RouteName    string `json:"route_name,omitempty"`
	StartPoint   string `json:"start_point,omitempty"`
	EndPoint     string `json:"end_point,omitempty"`
	StandardFare int64  `json:"standard_fare,omitempty"`
	PlateNumber  string `json:"plate_number,omitempty"`
	Capacity     int    `json:"capacity,omitempty"`
}

// Bookable reports whether passengers may still book this trip.
func (t Trip) Bookable() bool {
	return t.Status == TripScheduled || t.Status == TripActive
}
