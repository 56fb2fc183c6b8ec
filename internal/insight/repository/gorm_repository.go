package repository

import (
	"errors"
	"time"

	insightdomain "journaly-backend/internal/insight/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InsightRepository defines data access for weekly insights.
type InsightRepository interface {
	FindByWeek(userID, insightType string, validFrom time.Time) (*insightdomain.WeeklyInsight, error)
	// Insert persists the insight unless one already exists for the same
	// (user, type, week); in that case the existing row is returned, so two
	// concurrent generations converge on one payload.
	Insert(insight *insightdomain.WeeklyInsight) (*insightdomain.WeeklyInsight, error)
}

// gormInsightRepository implements InsightRepository using GORM
type gormInsightRepository struct {
	db *gorm.DB
}

func NewGormInsightRepository(db *gorm.DB) InsightRepository {
	return &gormInsightRepository{db: db}
}

func (r *gormInsightRepository) FindByWeek(userID, insightType string, validFrom time.Time) (*insightdomain.WeeklyInsight, error) {
	var insight insightdomain.WeeklyInsight
	err := r.db.Where("user_id = ? AND insight_type = ? AND valid_from = ?", userID, insightType, validFrom).
		First(&insight).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &insight, nil
}

func (r *gormInsightRepository) Insert(insight *insightdomain.WeeklyInsight) (*insightdomain.WeeklyInsight, error) {
	if insight.ID == "" {
		insight.ID = uuid.New().String()
	}
	insight.CreatedAt = time.Now().UTC()

	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(insight)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return insight, nil
	}

	// Lost the insert race; the row that won is the cached insight
	existing, err := r.FindByWeek(insight.UserID, insight.InsightType, insight.ValidFrom)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errors.New("insight insert conflicted but existing row not found")
	}
	return existing, nil
}
