package domain

import (
	"time"

	"gorm.io/datatypes"
)

// InsightTypeWeekly is the only insight type this service produces.
const InsightTypeWeekly = "weekly_summary"

// Sentiment trend values the generator is allowed to emit.
const (
	TrendRising   = "Rising"
	TrendFalling  = "Falling"
	TrendStable   = "Stable"
	TrendVolatile = "Volatile"
)

// WeeklyInsight is one generated weekly summary, keyed by its Monday start
// date. Immutable once created; the unique index makes the concurrent
// cache-miss race converge on a single row.
type WeeklyInsight struct {
	ID          string         `json:"id" gorm:"primaryKey"`
	UserID      string         `json:"user_id" gorm:"not null;uniqueIndex:idx_insight_user_week"`
	InsightType string         `json:"insight_type" gorm:"not null;uniqueIndex:idx_insight_user_week"`
	ValidFrom   time.Time      `json:"valid_from" gorm:"type:date;not null;uniqueIndex:idx_insight_user_week"`
	ValidUntil  time.Time      `json:"valid_until" gorm:"type:date;not null"`
	Payload     datatypes.JSON `json:"payload" gorm:"type:jsonb"`
	CreatedAt   time.Time      `json:"created_at"`
}

// InsightPayload is the structured content of a weekly insight.
type InsightPayload struct {
	Headline       string `json:"headline"`
	Summary        string `json:"summary"`
	Pattern        string `json:"pattern,omitempty"`
	SentimentTrend string `json:"sentiment_trend,omitempty"`
	ActionableTip  string `json:"actionable_tip,omitempty"`
	IsEmpty        bool   `json:"is_empty,omitempty"`
}

// EmptyWeekPayload is returned, never persisted, when the week holds too
// little data to say anything useful.
func EmptyWeekPayload() InsightPayload {
	return InsightPayload{
		Headline: "A Quiet Week",
		Summary:  "You didn't log much this week. Try journaling more to uncover patterns!",
		IsEmpty:  true,
	}
}

// FallbackPayload replaces the generated insight when the completion call or
// its JSON output fails, so the request still succeeds.
func FallbackPayload() InsightPayload {
	return InsightPayload{
		Headline:       "Your Week in Review",
		Summary:        "We couldn't generate a detailed insight this time, but your entries are safe and counted.",
		Pattern:        "Not enough signal to detect a pattern this week.",
		SentimentTrend: TrendStable,
		ActionableTip:  "Keep logging moods and journals; richer insights need a little more data.",
	}
}

// ValidTrend reports whether the generator produced an allowed trend value.
func ValidTrend(trend string) bool {
	switch trend {
	case TrendRising, TrendFalling, TrendStable, TrendVolatile:
		return true
	}
	return false
}
