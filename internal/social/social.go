package social

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const DefaultFeedLimit = 20

var (
	ErrFollowNotFound = errors.New("follow not found")
	ErrSelfFollow     = errors.New("cannot follow yourself")
)

type FollowStatus string

const (
	FollowPending  FollowStatus = "pending"
	FollowAccepted FollowStatus = "accepted"
)

type Follow struct {
	ID        uuid.UUID    `json:"id"`
	UserID    string       `json:"userId"`
	FriendID  string       `json:"friendId"`
	Status    FollowStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}

type ActivityType string

const (
	ActivityWorkout ActivityType = "workout"
	ActivityPR      ActivityType = "pr"
	ActivityStreak  ActivityType = "streak"
)

type Activity struct {
	ID           uuid.UUID    `json:"id"`
	UserID       string       `json:"userId"`
	UserName     string       `json:"userName"`
	UserPhotoURL string       `json:"userPhotoURL,omitempty"`
	Type         ActivityType `json:"type"`
	WorkoutName  string       `json:"workoutName,omitempty"`
	Duration     int          `json:"duration,omitempty"`
	ExerciseName string       `json:"exerciseName,omitempty"`
	Weight       float64      `json:"weight,omitempty"`
	Message      string       `json:"message"`
	Timestamp    time.Time    `json:"timestamp"`
}
