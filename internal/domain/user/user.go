package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// User is a registered learner (or operator).
type User struct {
	ID             string
	Email          string
	FullName       string
	HashedPassword string
	Role           Role
	CreatedAt      time.Time
}

// New creates a student account. The caller hashes the password.
func New(email, fullName, hashedPassword string) (*User, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}
	if fullName == "" {
		return nil, errors.New("full_name is required")
	}
	if hashedPassword == "" {
		return nil, errors.New("hashed password is required")
	}
	return &User{
		ID:             uuid.NewString(),
		Email:          email,
		FullName:       fullName,
		HashedPassword: hashedPassword,
		Role:           RoleStudent,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// IsAdmin reports whether the user may manage the question database.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
