package delivery

import (
	"net/http"
	"strconv"

	authdelivery "journaly-backend/internal/auth/delivery"
	"journaly-backend/internal/insight/usecase"

	"github.com/gin-gonic/gin"
)

type InsightHandler struct {
	insightUsecase usecase.InsightUsecase
}

func NewInsightHandler(insightUsecase usecase.InsightUsecase) *InsightHandler {
	return &InsightHandler{insightUsecase: insightUsecase}
}

// GET /api/insights/weekly?offset=N
// offset 0 is the last completed week, 1 the week before that, and so on.
func (h *InsightHandler) GetWeeklySummary(c *gin.Context) {
	userID, ok := authdelivery.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	offset := 0
	if raw := c.Query("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
			return
		}
		offset = parsed
	}

	summary, err := h.insightUsecase.GetWeeklySummary(c.Request.Context(), userID, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get weekly summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
