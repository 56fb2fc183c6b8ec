package domain

import (
	"errors"
	"time"
)

// ErrAlreadyLogged is returned when the user already has a mood for the
// calendar day. Enforced by the (user_id, entry_date) unique index, not an
// application-level pre-check.
var ErrAlreadyLogged = errors.New("mood already logged today")

type MoodEntry struct {
	ID     string `json:"id" gorm:"primaryKey"`
	UserID string `json:"user_id" gorm:"not null;uniqueIndex:idx_mood_user_day"`
	// EntryDate is the UTC calendar day the mood belongs to.
	EntryDate time.Time `json:"-" gorm:"type:date;not null;uniqueIndex:idx_mood_user_day"`
	Score     int       `json:"mood_score"`
	Label     string    `json:"mood_label"`
	CreatedAt time.Time `json:"created_at"`
}
