package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jobsentry/jobsentry-api/internal/alerts"
	"github.com/jobsentry/jobsentry-api/internal/auth"
	"github.com/jobsentry/jobsentry-api/internal/config"
	"github.com/jobsentry/jobsentry-api/internal/database"
	"github.com/jobsentry/jobsentry-api/internal/handlers"
	"github.com/jobsentry/jobsentry-api/internal/middleware"
	"github.com/jobsentry/jobsentry-api/internal/services"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Database Connection
	db := database.Connect(cfg.DatabaseURL)

	// 3. Initialize Core Services
	duplicateService := services.NewDuplicateService(db, cfg.Scoring.Duplicate)
	matchService := services.NewMatchService(db, cfg.Scoring.Match)
	userService := services.NewUserService(db)
	preferenceService := services.NewPreferenceService(db)
	jobService := services.NewJobService(db)
	webhookService := services.NewWebhookService(db, duplicateService, matchService, cfg.N8NWebhookURL)
	llmService := services.NewLLMService(cfg.GeminiAPIKey)

	// 4. Initialize Alert Channels
	var gmailSender *alerts.GmailSender
	if cfg.GmailEnabled {
		log.Println("Initializing Gmail Client...")
		if httpClient := auth.GetGmailClient(); httpClient != nil {
			gmailService, err := gmail.NewService(context.Background(), option.WithHTTPClient(httpClient))
			if err != nil {
				log.Printf("Failed to create Gmail service: %v", err)
			} else {
				log.Println("Gmail service connected")
				gmailSender = alerts.NewGmailSender(gmailService)
			}
		}
	}

	var telegramSender *alerts.TelegramSender
	if cfg.TelegramToken != "" {
		sender, err := alerts.NewTelegramSender(cfg.TelegramToken)
		if err != nil {
			log.Printf("Telegram alerts disabled: %v", err)
		} else {
			log.Println("Telegram bot connected")
			telegramSender = sender
		}
	}

	// 5. Start the Alert Watcher
	alertService := services.NewAlertService(db, gmailSender, telegramSender,
		time.Duration(cfg.AlertInterval)*time.Minute, cfg.Scoring.Match.AlertThreshold)
	alertService.StartWatcher()

	// 6. Initialize Handlers
	userHandler := handlers.NewUserHandler(userService)
	preferenceHandler := handlers.NewPreferenceHandler(preferenceService, webhookService)
	jobHandler := handlers.NewJobHandler(jobService, llmService)
	webhookHandler := handlers.NewWebhookHandler(webhookService)

	// 7. Setup Router, CORS & Rate Limiting
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // frontend origin list comes later
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Webhook-Secret"}
	r.Use(cors.New(corsConfig))

	limiter := middleware.NewLimiterManager(cfg.RateLimitPerMin, cfg.RateLimitBurst)
	r.Use(middleware.RateLimit(limiter))

	// 8. Define Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)
		api.POST("/users", userHandler.Register)

		// Authenticated user surface
		authed := api.Group("", middleware.RequireAPIKey(userService))
		{
			authed.GET("/users/me", userHandler.GetMe)
			authed.DELETE("/users/me", userHandler.DeleteMe)

			authed.POST("/preferences", preferenceHandler.Create)
			authed.GET("/preferences", preferenceHandler.List)
			authed.GET("/preferences/:id", preferenceHandler.Get)
			authed.PATCH("/preferences/:id", preferenceHandler.Update)
			authed.DELETE("/preferences/:id", preferenceHandler.Delete)
			authed.POST("/preferences/:id/scrape", preferenceHandler.TriggerScrape)

			authed.GET("/matches", jobHandler.ListMatches)
			authed.GET("/matches/:id", jobHandler.GetMatch)
			authed.PATCH("/matches/:id/status", jobHandler.UpdateStatus)
			authed.DELETE("/matches/:id", jobHandler.DeleteMatch)

			authed.POST("/jobs/extract", jobHandler.ExtractJob)
		}

		// N8N + ops surface, shared-secret guarded
		hooks := api.Group("", middleware.RequireWebhookSecret(cfg.WebhookSecret))
		{
			hooks.POST("/webhooks/scrape-results", webhookHandler.ScrapeResults)
			hooks.GET("/internal/users", userHandler.ListUsers)
		}
	}

	log.Printf("Server starting on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
