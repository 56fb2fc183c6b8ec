package domain

import (
	"errors"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// ErrNotFound is returned when an entry does not exist or is not owned by the
// requesting user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("journal entry not found")

// Enrichment status of a journal entry. A freshly created entry is pending
// until the background pipeline finishes; failures stay visible instead of
// leaving the placeholder summary forever unexplained.
const (
	EnrichmentPending  = "pending"
	EnrichmentComplete = "complete"
	EnrichmentFailed   = "failed"
)

// SummaryPlaceholder is stored until the background pipeline writes the real
// AI summary.
const SummaryPlaceholder = "Generating summary..."

type JournalEntry struct {
	ID               string         `json:"id" gorm:"primaryKey"`
	UserID           string         `json:"user_id" gorm:"index;not null"`
	MoodScore        int            `json:"mood_score"`
	ContentEncrypted string         `json:"-" gorm:"type:text;not null"`
	Summary          string         `json:"summary"`
	Tags             datatypes.JSON `json:"tags" gorm:"type:jsonb"`
	EnrichmentStatus string         `json:"enrichment_status"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// VectorChunk is one embedded paragraph of a journal entry. Chunks are written
// only by the enrichment pipeline and removed with their parent entry.
type VectorChunk struct {
	ID               string          `json:"id" gorm:"primaryKey"`
	JournalID        string          `json:"journal_id" gorm:"index;not null"`
	UserID           string          `json:"user_id" gorm:"index;not null"`
	ContentEncrypted string          `json:"-" gorm:"type:text;not null"`
	Embedding        pgvector.Vector `json:"-" gorm:"type:vector(384)"`
	CreatedAt        time.Time       `json:"created_at"`
}

// SimilarChunk is a similarity-search match with its cosine similarity score.
type SimilarChunk struct {
	JournalID        string
	ContentEncrypted string
	Similarity       float64
}
