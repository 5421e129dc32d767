package stats

import (
	"sort"
	"time"
)

const (
	PointsPerWorkout = 10
	// DefaultDisplayName is shown for users without a display name or username.
	DefaultDisplayName = "User"
)

// Aggregate groups workout records by user. Each workout is worth
// PointsPerWorkout plus one point per exercise. Records dated before since
// are ignored.
func Aggregate(records []WorkoutRecord, since time.Time) map[string]*UserStat {
	userStats := make(map[string]*UserStat)
	for _, rec := range records {
		if rec.Date.Before(since) {
			continue
		}
		st, ok := userStats[rec.UserID]
		if !ok {
			st = &UserStat{UserID: rec.UserID}
			userStats[rec.UserID] = st
		}
		st.WorkoutCount++
		st.Points += PointsPerWorkout + max(rec.ExerciseCount, 0)
	}
	return userStats
}

// BuildLeaderboard joins aggregated stats with the user directory. Users
// without workouts in the window, or missing from the directory, are left
// out. Entries are ordered by points descending, then by user id.
func BuildLeaderboard(
	userStats map[string]*UserStat,
	directory []DirectoryUser,
	requestingUserID string,
) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(userStats))
	for _, u := range directory {
		st, ok := userStats[u.ID]
		if !ok {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			UserID:           u.ID,
			DisplayName:      displayName(u),
			Points:           st.Points,
			WorkoutCount:     st.WorkoutCount,
			Streak:           max(u.Streak, 0),
			IsRequestingUser: u.ID == requestingUserID,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].UserID < entries[j].UserID
	})
	rank(entries)

	return entries
}

// FilterFollowed keeps the requesting user and the users they follow,
// preserving order and points. Ranks are reassigned within the result.
func FilterFollowed(entries []LeaderboardEntry, requestingUserID string, followedIDs []string) []LeaderboardEntry {
	keep := make(map[string]bool, len(followedIDs)+1)
	keep[requestingUserID] = true
	for _, id := range followedIDs {
		keep[id] = true
	}

	filtered := make([]LeaderboardEntry, 0, len(keep))
	for _, e := range entries {
		if keep[e.UserID] {
			filtered = append(filtered, e)
		}
	}
	rank(filtered)

	return filtered
}

func rank(entries []LeaderboardEntry) {
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

func displayName(u DirectoryUser) string {
	switch {
	case u.DisplayName != "":
		return u.DisplayName
	case u.Username != "":
		return u.Username
	default:
		return DefaultDisplayName
	}
}
