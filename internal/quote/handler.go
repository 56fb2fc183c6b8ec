package quote

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GET /api/quotes/daily
func (h *Handler) GetDailyQuote(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.DailyQuote(c.Request.Context()))
}
