package main

import (
	"net/http"
	"os"

	"aier-cms/config"
	"aier-cms/handlers"
	"aier-cms/middleware"
	"aier-cms/models"
	"aier-cms/repositories"
	"aier-cms/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found")
	}

	appCfg, dbCfg := config.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if appCfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Initialize database
	db, err := config.InitDB(dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := db.AutoMigrate(&models.Admin{}, &models.Persona{}, &models.Article{}, &models.Settings{}); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// Initialize repositories
	adminRepo := repositories.NewAdminRepository(db)
	personaRepo := repositories.NewPersonaRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	// Initialize services
	authService := services.NewAuthService(adminRepo)
	personaService := services.NewPersonaService(personaRepo, articleRepo)
	articleService := services.NewArticleService(articleRepo, personaRepo)
	settingsService := services.NewSettingsService(settingsRepo)

	// One-time idempotent bootstrap: default admin and settings
	created, err := authService.EnsureDefaultAdmin()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure default admin")
	}
	if created {
		log.Info().Str("email", services.DefaultAdminEmail).Msg("Default admin created")
	}
	if _, err := settingsService.Get(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure default settings")
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	personaHandler := handlers.NewPersonaHandler(personaService)
	articleHandler := handlers.NewArticleHandler(articleService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	// Setup router
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	api := router.Group("/api")
	{
		// Auth (public)
		api.POST("/auth/login", authHandler.Login)

		// Admin surface: identity gate first, before any handler binding
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware())
		{
			admin.GET("/profile", authHandler.GetProfile)

			admin.GET("/personas", personaHandler.GetPersonas)
			admin.POST("/personas", personaHandler.CreatePersona)
			admin.GET("/personas/:id", personaHandler.GetPersona)
			admin.PUT("/personas/:id", personaHandler.UpdatePersona)
			admin.DELETE("/personas/:id", personaHandler.DeletePersona)

			admin.GET("/articles", articleHandler.GetArticles)
			admin.POST("/articles", articleHandler.CreateArticle)
			admin.GET("/articles/:id", articleHandler.GetArticle)
			admin.PUT("/articles/:id", articleHandler.UpdateArticle)
			admin.DELETE("/articles/:id", articleHandler.DeleteArticle)

			admin.GET("/settings", settingsHandler.GetSettings)
			admin.PUT("/settings", settingsHandler.UpdateSettings)
		}

		// Public surface (anonymous)
		public := api.Group("/public")
		{
			public.GET("/settings", settingsHandler.GetSettings)
			public.GET("/personas", personaHandler.GetPublicPersonas)
			public.GET("/personas/:id", personaHandler.GetPublicPersona)
			public.GET("/articles", articleHandler.GetPublicArticles)
			public.GET("/articles/:id", articleHandler.GetPublicArticle)
		}
	}

	log.Info().Str("port", appCfg.Port).Msg("Server starting")
	if err := http.ListenAndServe(":"+appCfg.Port, router); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
