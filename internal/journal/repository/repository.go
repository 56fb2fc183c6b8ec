package repository

import (
	"time"

	journaldomain "journaly-backend/internal/journal/domain"

	"gorm.io/datatypes"
)

// JournalRepository defines data access for journal entries and their vector
// chunks. All reads are scoped to the owning user.
type JournalRepository interface {
	Create(entry *journaldomain.JournalEntry) error
	FindByID(userID, id string) (*journaldomain.JournalEntry, error)
	FindByUser(userID string) ([]*journaldomain.JournalEntry, error)
	FindByUserInRange(userID string, from, to time.Time) ([]*journaldomain.JournalEntry, error)
	Update(entry *journaldomain.JournalEntry) error
	UpdateEnrichment(id string, summary string, tags datatypes.JSON, status string) error
	UpdateEnrichmentStatus(id, status string) error
	Delete(userID, id string) (bool, error)

	InsertChunks(chunks []*journaldomain.VectorChunk) error
	// FindSimilar runs a server-side cosine similarity search over the user's
	// chunks, excluding the given journal entry (the draft being written).
	FindSimilar(userID string, vector []float32, excludeJournalID string, threshold float64, limit int) ([]*journaldomain.SimilarChunk, error)
}
