package models

// Route is read-only reference data from the booking core's perspective.
// StandardFare is integer KES cents.
type Route struct {
	ID                       int64   `json:"id"`
	Name                     string  `json:"name"`
	SaccoID                  int64   `json:"sacco_id"`
	SaccoName                string  `json:"sacco_name,omitempty"`
	StartPoint               string  `json:"start_point"`
	EndPoint                 string  `json:"end_point"`
	StandardFare             int64   `json:"standard_fare"`
	DistanceKm               float64 `json:"distance_km"`
	EstimatedDurationMinutes int     `json:"estimated_duration_minutes"`
	IsActive                 bool    `json:"is_active"`
}
