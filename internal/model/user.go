package model

import "time"

// Roles a user can register with. Anything else normalizes to patient.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

// User mirrors the 'users' table. Identifiers are store-assigned UUID
// strings; email and user_name each carry a unique key.
type User struct {
	ID           string `json:"id"`
	Role         string `json:"role"`
	UserName     string `json:"userName"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Gender       string `json:"gender"`
	Age          int    `json:"age"`
	Contact      string `json:"contact"`
	Address      string `json:"address"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
