package api

import (
	"net/http"

	authdelivery "journaly-backend/internal/auth/delivery"
	authusecase "journaly-backend/internal/auth/usecase"
	insightdelivery "journaly-backend/internal/insight/delivery"
	insightusecase "journaly-backend/internal/insight/usecase"
	journaldelivery "journaly-backend/internal/journal/delivery"
	journalusecase "journaly-backend/internal/journal/usecase"
	mooddelivery "journaly-backend/internal/mood/delivery"
	moodusecase "journaly-backend/internal/mood/usecase"
	"journaly-backend/internal/quote"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authUsecase authusecase.AuthUsecase,
	journalUsecase journalusecase.JournalUsecase,
	moodUsecase moodusecase.MoodUsecase,
	insightUsecase insightusecase.InsightUsecase,
	quoteService *quote.Service,
) {
	authHandler := authdelivery.NewAuthHandler(authUsecase)
	journalHandler := journaldelivery.NewJournalHandler(journalUsecase)
	moodHandler := mooddelivery.NewMoodHandler(moodUsecase)
	insightHandler := insightdelivery.NewInsightHandler(insightUsecase)
	quoteHandler := quote.NewHandler(quoteService)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
		}

		api.GET("/profile", authdelivery.AuthMiddleware(authUsecase), authHandler.Profile)

		// Journal routes (protected)
		journals := api.Group("/journals")
		journals.Use(authdelivery.AuthMiddleware(authUsecase))
		{
			journals.GET("", journalHandler.List)
			journals.POST("", journalHandler.Create)
			journals.POST("/deepen", journalHandler.Deepen)
			journals.GET("/:id", journalHandler.Get)
			journals.PUT("/:id", journalHandler.Update)
			journals.DELETE("/:id", journalHandler.Delete)
		}

		// Mood routes (protected)
		moods := api.Group("/moods")
		moods.Use(authdelivery.AuthMiddleware(authUsecase))
		{
			moods.POST("", moodHandler.LogMood)
			moods.GET("/today", moodHandler.LoggedToday)
		}

		// Insight routes (protected)
		insights := api.Group("/insights")
		insights.Use(authdelivery.AuthMiddleware(authUsecase))
		{
			insights.GET("/weekly", insightHandler.GetWeeklySummary)
		}

		// Daily quote (public)
		api.GET("/quotes/daily", quoteHandler.GetDailyQuote)
	}
}
