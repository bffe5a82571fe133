package domain

import "time"

type User struct {
	ID           string
	Username     string // globally unique
	Email        string // globally unique
	PasswordHash string // bcrypt encoded, never serialized to clients
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
