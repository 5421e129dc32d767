package users

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

type User struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	DisplayName     string     `json:"displayName"`
	Username        string     `json:"username"`
	PhotoURL        string     `json:"photoURL"`
	CreatedAt       time.Time  `json:"createdAt"`
	Streak          int        `json:"streak"`
	LastWorkoutDate *time.Time `json:"lastWorkoutDate,omitempty"`
}

// Name is what other users see: display name, then username, then "User".
func (u *User) Name() string {
	switch {
	case u.DisplayName != "":
		return u.DisplayName
	case u.Username != "":
		return u.Username
	default:
		return "User"
	}
}
