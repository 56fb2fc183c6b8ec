package delivery

import (
	"errors"
	"net/http"

	authdelivery "journaly-backend/internal/auth/delivery"
	mooddomain "journaly-backend/internal/mood/domain"
	"journaly-backend/internal/mood/usecase"

	"github.com/gin-gonic/gin"
)

type MoodHandler struct {
	moodUsecase usecase.MoodUsecase
}

func NewMoodHandler(moodUsecase usecase.MoodUsecase) *MoodHandler {
	return &MoodHandler{moodUsecase: moodUsecase}
}

type LogMoodRequest struct {
	Score int    `json:"score" binding:"required,min=1,max=5"`
	Label string `json:"label" binding:"required"`
}

// POST /api/moods
func (h *MoodHandler) LogMood(c *gin.Context) {
	userID, ok := authdelivery.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req LogMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.moodUsecase.LogMood(userID, req.Score, req.Label)
	if err != nil {
		if errors.Is(err, mooddomain.ErrAlreadyLogged) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mood already logged today"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save mood"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GET /api/moods/today
func (h *MoodHandler) LoggedToday(c *gin.Context) {
	userID, ok := authdelivery.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	logged, err := h.moodUsecase.LoggedToday(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check mood"})
		return
	}

	c.JSON(http.StatusOK, logged)
}
