package main

import (
	"context"
	"log"

	"innerglow/backend/internal/cache"
	"innerglow/backend/internal/config"
	"innerglow/backend/internal/database"
	"innerglow/backend/internal/handlers"
	"innerglow/backend/internal/middleware"
	"innerglow/backend/internal/pins"
	"innerglow/backend/internal/services"
	"innerglow/backend/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	// Initialize Database
	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	db := client.Database(cfg.DBName)
	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Stores
	pinStore := store.NewPinStore(db)
	boardStore := store.NewBoardStore(db)
	userStore := store.NewUserStore(db)
	moodStore := store.NewMoodStore(db)
	journalStore := store.NewJournalStore(db)
	gratitudeStore := store.NewGratitudeStore(db)
	streakStore := store.NewStreakStore(db)
	dailyCache := store.NewDailyCacheStore(db)

	// External services and feed plumbing
	unsplash := services.NewUnsplash(cfg.UnsplashAccessKey)
	if !unsplash.Configured() {
		log.Println("UNSPLASH_ACCESS_KEY not set; discovery will serve local pins only")
	}
	affirmations := services.NewAffirmations(cfg.OpenAIAPIKey, dailyCache)
	providerCache := cache.New(cfg.RedisAddr)

	resolver := pins.NewResolver(pinStore)
	composer := pins.NewComposer(pinStore, unsplash, userStore, providerCache)

	// Auth
	verifier, err := middleware.NewVerifier(cfg.JWTSecret, cfg.JWKSURL)
	if err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}

	// Handlers
	pinHandler := handlers.NewPinHandler(pinStore, boardStore, userStore, unsplash, resolver, composer)
	boardHandler := handlers.NewBoardHandler(boardStore, pinStore, composer)
	feedHandler := handlers.NewFeedHandler(composer)
	profileHandler := handlers.NewProfileHandler(userStore)
	moodHandler := handlers.NewMoodHandler(moodStore)
	journalHandler := handlers.NewJournalHandler(journalStore)
	gratitudeHandler := handlers.NewGratitudeHandler(gratitudeStore)
	streakHandler := handlers.NewStreakHandler(streakStore)
	affirmationHandler := handlers.NewAffirmationHandler(affirmations)

	// Initialize Gin Router
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	router.GET("/health", handlers.HealthCheck)

	api := router.Group("/api/v1")
	{
		// PUBLIC ROUTES: discovery, search, and the board directory
		api.GET("/pins", pinHandler.ListPins)
		api.GET("/pins/for-you", feedHandler.ForYou)
		api.GET("/pins/search", feedHandler.Search)
		api.GET("/pins/boards", boardHandler.PublicBoards)
		api.GET("/pins/:id", pinHandler.GetPin)
		api.GET("/affirmations/today", affirmationHandler.Today)

		protected := api.Group("/").Use(middleware.AuthMiddleware(verifier))
		{
			// PIN ROUTES
			protected.POST("/pins/create", pinHandler.CreatePin)
			protected.POST("/pins/delete-batch", pinHandler.DeleteBatch)
			protected.POST("/pins/save/:id", pinHandler.SavePin)
			protected.POST("/pins/:id/comment", pinHandler.CommentPin)

			// BOARD ROUTES
			protected.GET("/pins/user-boards", boardHandler.UserBoards)
			protected.GET("/pins/boards/:id", boardHandler.BoardDetail)
			protected.PUT("/pins/boards/:id", boardHandler.UpdateBoard)
			protected.DELETE("/pins/boards/:id", boardHandler.DeleteBoard)

			// PROFILE
			protected.PUT("/me", profileHandler.UpdateMe)

			// WELLNESS ROUTES
			protected.POST("/moods", moodHandler.CreateMood)
			protected.GET("/moods", moodHandler.ListMoods)
			protected.DELETE("/moods/:id", moodHandler.DeleteMood)

			protected.POST("/journals", journalHandler.CreateJournal)
			protected.GET("/journals", journalHandler.ListJournals)
			protected.PUT("/journals/:id", journalHandler.UpdateJournal)
			protected.DELETE("/journals/:id", journalHandler.DeleteJournal)

			protected.POST("/gratitudes", gratitudeHandler.CreateGratitude)
			protected.GET("/gratitudes", gratitudeHandler.ListGratitudes)
			protected.DELETE("/gratitudes/:id", gratitudeHandler.DeleteGratitude)

			protected.GET("/streak", streakHandler.GetStreak)
			protected.POST("/streak/checkin", streakHandler.CheckIn)
		}
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
