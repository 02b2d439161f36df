package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

// User models a selectable identity. Users are seeded once and never mutated.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
