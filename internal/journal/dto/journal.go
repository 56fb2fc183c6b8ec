package dto

import (
	"encoding/json"
	"time"

	journaldomain "journaly-backend/internal/journal/domain"
)

type CreateJournalRequest struct {
	Content   string `json:"content" binding:"required"`
	MoodScore int    `json:"mood_score" binding:"required,min=1,max=5"`
}

type UpdateJournalRequest struct {
	Content   string `json:"content" binding:"required"`
	MoodScore int    `json:"mood_score" binding:"required,min=1,max=5"`
}

type DeepenRequest struct {
	Content   string `json:"content" binding:"required"`
	JournalID string `json:"journal_id"`
}

type DeepenResponse struct {
	JournalID string `json:"journal_id"`
	Prompt    string `json:"prompt"`
}

type JournalResponse struct {
	ID               string    `json:"id"`
	MoodScore        int       `json:"mood_score"`
	Summary          string    `json:"summary"`
	Tags             []string  `json:"tags"`
	EnrichmentStatus string    `json:"enrichment_status"`
	CreatedAt        time.Time `json:"created_at"`
	Content          string    `json:"content"`
}

// ToJournalResponse shapes a domain entry for the API. content is passed in
// separately because listings send it blank while the detail view decrypts it.
func ToJournalResponse(entry *journaldomain.JournalEntry, content string) *JournalResponse {
	tags := []string{}
	if len(entry.Tags) > 0 {
		// A tags blob that no longer parses is treated as no tags
		_ = json.Unmarshal(entry.Tags, &tags)
	}

	return &JournalResponse{
		ID:               entry.ID,
		MoodScore:        entry.MoodScore,
		Summary:          entry.Summary,
		Tags:             tags,
		EnrichmentStatus: entry.EnrichmentStatus,
		CreatedAt:        entry.CreatedAt,
		Content:          content,
	}
}
