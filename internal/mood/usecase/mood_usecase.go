package usecase

import (
	"time"

	mooddomain "journaly-backend/internal/mood/domain"
	"journaly-backend/internal/mood/repository"
)

// MoodUsecase handles daily mood logging.
type MoodUsecase interface {
	LogMood(userID string, score int, label string) (*mooddomain.MoodEntry, error)
	LoggedToday(userID string) (bool, error)
}

type moodUsecase struct {
	moodRepo repository.MoodRepository
	now      func() time.Time
}

func NewMoodUsecase(moodRepo repository.MoodRepository) MoodUsecase {
	return &moodUsecase{
		moodRepo: moodRepo,
		now:      time.Now,
	}
}

func (u *moodUsecase) LogMood(userID string, score int, label string) (*mooddomain.MoodEntry, error) {
	entry := &mooddomain.MoodEntry{
		UserID: userID,
		Score:  score,
		Label:  label,
	}
	if err := u.moodRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (u *moodUsecase) LoggedToday(userID string) (bool, error) {
	return u.moodRepo.LoggedOn(userID, u.now().UTC())
}
