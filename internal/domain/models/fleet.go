package models

// Sacco is a transit cooperative operating matatus on its routes.
type Sacco struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// Matatu is a vehicle with fixed seating capacity.
type Matatu struct {
	ID          int64  `json:"id"`
	PlateNumber string `json:"plate_number"`
	SaccoID     int64  `json:"sacco_id"`
	Capacity    int    `json:"capacity"`
	Model       string `json:"model"`
	IsActive    bool   `json:"is_active"`
}
