package workouts

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultListLimit   = 10
	DefaultWorkoutName = "Empty workout"
)

var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrNoExercises      = errors.New("workout has no exercises")
	ErrNotOwner         = errors.New("not the owner")
)

type Set struct {
	Reps      int     `json:"reps"`
	Weight    float64 `json:"weight"`
	RestTime  int     `json:"restTime"`
	Completed bool    `json:"completed"`
}

type Exercise struct {
	Name string `json:"name"`
	Sets []Set  `json:"sets"`
}

type Workout struct {
	ID     uuid.UUID `json:"id"`
	UserID string    `json:"userId"`
	Name   string    `json:"name"`
	// Duration in seconds
	Duration  int        `json:"duration"`
	Exercises []Exercise `json:"exercises"`
	Date      time.Time  `json:"date"`
	Notes     string     `json:"notes"`
}

type Template struct {
	ID        uuid.UUID  `json:"id"`
	UserID    string     `json:"userId"`
	Name      string     `json:"name"`
	Exercises []Exercise `json:"exercises"`
	CreatedAt time.Time  `json:"createdAt"`
	LastUsed  *time.Time `json:"lastUsed,omitempty"`
}
