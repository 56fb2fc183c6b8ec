package delivery

import (
	"errors"
	"net/http"

	authdelivery "journaly-backend/internal/auth/delivery"
	journaldomain "journaly-backend/internal/journal/domain"
	journaldto "journaly-backend/internal/journal/dto"
	"journaly-backend/internal/journal/usecase"

	"github.com/gin-gonic/gin"
)

type JournalHandler struct {
	journalUsecase usecase.JournalUsecase
}

func NewJournalHandler(journalUsecase usecase.JournalUsecase) *JournalHandler {
	return &JournalHandler{journalUsecase: journalUsecase}
}

// GET /api/journals
func (h *JournalHandler) List(c *gin.Context) {
	userID, ok := authdelivery.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	journals, err := h.journalUsecase.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list journals"})
		return
	}

	c.JSON(http.StatusOK, journals)
}

// POST /api/journals
func (h *JournalHandler) Create(c *gin.Context) {
	userID, ok := authdelivery.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req journaldto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	journal, err := h.journalUsecase.Create(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create journal"})
		return
	}

	c.JSON(http.StatusCreated, journal)
}

// GET /api/journals/:id
func (h *JournalHandler) Get(c *gin.Context) {
	userID, ok := authdelivery.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	journal, err := h.journalUsecase.Get(userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, journaldomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "journal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get journal"})
		return
	}

	c.JSON(http.StatusOK, journal)
}

// PUT /api/journals/:id
func (h *JournalHandler) Update(c *gin.Context) {
	userID, ok := authdelivery.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req journaldto.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	journal, err := h.journalUsecase.Update(userID, c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, journaldomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "journal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update journal"})
		return
	}

	c.JSON(http.StatusOK, journal)
}

// DELETE /api/journals/:id
func (h *JournalHandler) Delete(c *gin.Context) {
	userID, ok := authdelivery.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	if err := h.journalUsecase.Delete(userID, c.Param("id")); err != nil {
		if errors.Is(err, journaldomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "journal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete journal"})
		return
	}

	c.Status(http.StatusNoContent)
}

// POST /api/journals/deepen
func (h *JournalHandler) Deepen(c *gin.Context) {
	userID, ok := authdelivery.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req journaldto.DeepenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.journalUsecase.Deepen(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, journaldomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "journal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate question"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
