package repository

import (
	"errors"
	"time"

	journaldomain "journaly-backend/internal/journal/domain"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// gormJournalRepository implements JournalRepository using GORM
type gormJournalRepository struct {
	db *gorm.DB
}

func NewGormJournalRepository(db *gorm.DB) JournalRepository {
	return &gormJournalRepository{db: db}
}

func (r *gormJournalRepository) Create(entry *journaldomain.JournalEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now().UTC()
	entry.UpdatedAt = entry.CreatedAt
	return r.db.Create(entry).Error
}

func (r *gormJournalRepository) FindByID(userID, id string) (*journaldomain.JournalEntry, error) {
	var entry journaldomain.JournalEntry
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *gormJournalRepository) FindByUser(userID string) ([]*journaldomain.JournalEntry, error) {
	var entries []*journaldomain.JournalEntry
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *gormJournalRepository) FindByUserInRange(userID string, from, to time.Time) ([]*journaldomain.JournalEntry, error) {
	var entries []*journaldomain.JournalEntry
	err := r.db.Where("user_id = ? AND created_at >= ? AND created_at <= ?", userID, from, to).
		Order("created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *gormJournalRepository) Update(entry *journaldomain.JournalEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	return r.db.Save(entry).Error
}

func (r *gormJournalRepository) UpdateEnrichment(id string, summary string, tags datatypes.JSON, status string) error {
	return r.db.Model(&journaldomain.JournalEntry{}).Where("id = ?", id).Updates(map[string]interface{}{
		"summary":           summary,
		"tags":              tags,
		"enrichment_status": status,
		"updated_at":        time.Now().UTC(),
	}).Error
}

func (r *gormJournalRepository) UpdateEnrichmentStatus(id, status string) error {
	return r.db.Model(&journaldomain.JournalEntry{}).Where("id = ?", id).
		Update("enrichment_status", status).Error
}

func (r *gormJournalRepository) Delete(userID, id string) (bool, error) {
	var deleted bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&journaldomain.JournalEntry{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		if !deleted {
			return nil
		}
		// Chunks cascade with their parent entry
		return tx.Where("journal_id = ?", id).Delete(&journaldomain.VectorChunk{}).Error
	})
	return deleted, err
}

func (r *gormJournalRepository) InsertChunks(chunks []*journaldomain.VectorChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, chunk := range chunks {
		if chunk.ID == "" {
			chunk.ID = uuid.New().String()
		}
		chunk.CreatedAt = now
	}
	return r.db.Create(&chunks).Error
}

func (r *gormJournalRepository) FindSimilar(userID string, vector []float32, excludeJournalID string, threshold float64, limit int) ([]*journaldomain.SimilarChunk, error) {
	query := pgvector.NewVector(vector)

	var matches []*journaldomain.SimilarChunk
	err := r.db.Raw(`
		SELECT journal_id, content_encrypted, 1 - (embedding <=> ?) AS similarity
		FROM vector_chunks
		WHERE user_id = ? AND journal_id <> ? AND 1 - (embedding <=> ?) > ?
		ORDER BY embedding <=> ?
		LIMIT ?`,
		query, userID, excludeJournalID, query, threshold, query, limit,
	).Scan(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}
