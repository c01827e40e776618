package models

import "time"

const (
	RolePassenger  = "passenger"
	RoleDriver     = "driver"
	RoleConductor  = "conductor"
	RoleSaccoAdmin = "sacco_admin"
	RoleAdmin      = "admin"
)

// User covers all roles; Credits only carries meaning for passengers and
// is mutated exclusively by the wallet/booking transactions.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	UserType     string    `json:"user_type"`
	Credits      int64     `json:"credits"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
