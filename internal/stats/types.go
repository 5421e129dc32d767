package stats

import (
	"errors"
	"time"
)

var (
	// ErrFetch wraps every failure to read from a backing store. Callers
	// never receive a partial result alongside it.
	ErrFetch = errors.New("stats fetch failed")
	// ErrProfileNotFound is returned by user stores when the profile is missing.
	ErrProfileNotFound = errors.New("user profile not found")
	ErrInvalidPeriod   = errors.New("invalid period")
)

// WorkoutRecord is the read-only projection of a stored workout that the
// streak and leaderboard computations need.
type WorkoutRecord struct {
	UserID        string
	Date          time.Time
	ExerciseCount int
}

// DirectoryUser is a user profile as seen by the leaderboard.
type DirectoryUser struct {
	ID          string
	DisplayName string
	Username    string
	Streak      int
}

// StreakState is the persisted streak of a user. LastWorkoutDate holds the
// calendar day of the most recent counted workout.
type StreakState struct {
	Streak          int
	LastWorkoutDate *time.Time
}

// UserStat is computed per leaderboard request and never stored.
type UserStat struct {
	UserID       string
	WorkoutCount int
	Points       int
}

type LeaderboardEntry struct {
	Rank             int    `json:"rank"`
	UserID           string `json:"userId"`
	DisplayName      string `json:"displayName"`
	Points           int    `json:"points"`
	WorkoutCount     int    `json:"workoutCount"`
	Streak           int    `json:"streak"`
	IsRequestingUser bool   `json:"isCurrentUser"`
}
