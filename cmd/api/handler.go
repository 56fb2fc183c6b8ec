package api

import (
	authusecase "journaly-backend/internal/auth/usecase"
	insightusecase "journaly-backend/internal/insight/usecase"
	journalusecase "journaly-backend/internal/journal/usecase"
	moodusecase "journaly-backend/internal/mood/usecase"
	"journaly-backend/internal/quote"
	"journaly-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase    authusecase.AuthUsecase
	journalUsecase journalusecase.JournalUsecase
	moodUsecase    moodusecase.MoodUsecase
	insightUsecase insightusecase.InsightUsecase
	quoteService   *quote.Service
	config         *config.Config
}

func NewHandler(
	authUc authusecase.AuthUsecase,
	journalUc journalusecase.JournalUsecase,
	moodUc moodusecase.MoodUsecase,
	insightUc insightusecase.InsightUsecase,
	quoteService *quote.Service,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authUsecase:    authUc,
		journalUsecase: journalUc,
		moodUsecase:    moodUc,
		insightUsecase: insightUc,
		quoteService:   quoteService,
		config:         cfg,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.journalUsecase, h.moodUsecase, h.insightUsecase, h.quoteService)

	return r.Run(addr)
}
