package repository

import (
	"errors"
	"time"

	mooddomain "journaly-backend/internal/mood/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MoodRepository defines data access for mood entries.
type MoodRepository interface {
	// Create inserts a mood entry, returning domain.ErrAlreadyLogged when one
	// already exists for the same user and calendar day.
	Create(entry *mooddomain.MoodEntry) error
	LoggedOn(userID string, day time.Time) (bool, error)
	FindByUserInRange(userID string, from, to time.Time) ([]*mooddomain.MoodEntry, error)
}

// gormMoodRepository implements MoodRepository using GORM
type gormMoodRepository struct {
	db *gorm.DB
}

func NewGormMoodRepository(db *gorm.DB) MoodRepository {
	return &gormMoodRepository{db: db}
}

func (r *gormMoodRepository) Create(entry *mooddomain.MoodEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now().UTC()
	entry.EntryDate = entry.CreatedAt.Truncate(24 * time.Hour)

	err := r.db.Create(entry).Error
	if err != nil {
		// Requires TranslateError on the gorm config
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return mooddomain.ErrAlreadyLogged
		}
		return err
	}
	return nil
}

func (r *gormMoodRepository) LoggedOn(userID string, day time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&mooddomain.MoodEntry{}).
		Where("user_id = ? AND entry_date = ?", userID, day.UTC().Truncate(24*time.Hour)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormMoodRepository) FindByUserInRange(userID string, from, to time.Time) ([]*mooddomain.MoodEntry, error) {
	var entries []*mooddomain.MoodEntry
	err := r.db.Where("user_id = ? AND created_at >= ? AND created_at <= ?", userID, from, to).
		Order("created_at ASC").Find(&entries).Error
	return entries, err
}
