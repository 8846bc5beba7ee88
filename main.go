package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-playground/validator.v9"
	entranslations "gopkg.in/go-playground/validator.v9/translations/en"

	"github.com/proa/teiacultural/config"
	"github.com/proa/teiacultural/handlers"
	"github.com/proa/teiacultural/helper"
	"github.com/proa/teiacultural/middleware"
	"github.com/proa/teiacultural/repositories"
	"github.com/proa/teiacultural/services"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}

	// Initialize database and object storage
	db := config.InitDB(log)
	store := config.InitObjectStore(log)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	publicationRepo := repositories.NewPublicationRepository(db)

	// Seed the role catalog and the bootstrap admin
	config.Seed(roleRepo, userRepo, log)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, roleRepo, publicationRepo, store, log)
	publicationService := services.NewPublicationService(userRepo, publicationRepo, store, log)
	feedService := services.NewFeedService(publicationRepo, userRepo)

	// Initialize HTTP helper with validation translations
	httpHelper := newHTTPHelper()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, httpHelper)
	userHandler := handlers.NewUserHandler(userService, httpHelper)
	publicationHandler := handlers.NewPublicationHandler(publicationService)
	feedHandler := handlers.NewFeedHandler(feedService)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
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
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Public read routes
		v1.GET("/feed", feedHandler.GetFeed)
		v1.GET("/feed/username/:username", feedHandler.GetFeedByUsername)
		v1.GET("/feed/category/:category", feedHandler.GetFeedByCategory)
		v1.GET("/feed/profile/:username", feedHandler.GetProfileFeed)
		v1.GET("/users/username/:username", userHandler.GetByUsername)
		v1.GET("/users/category/:category", userHandler.ListByCategory)
		v1.GET("/profile/username/:username", userHandler.GetProfileByUsername)

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// Profile
			protected.GET("/profile", authHandler.GetProfile)

			// Tier transitions and premium details (self)
			protected.POST("/users/upgrade-to-premium", userHandler.UpgradeSelf)
			protected.POST("/users/downgrade-to-basic", userHandler.DowngradeSelf)
			protected.PATCH("/users/premium-details", userHandler.UpdateDetailsSelf)

			// Publications
			publications := protected.Group("/publications")
			{
				publications.POST("", publicationHandler.CreatePublication)
				publications.PATCH("/:id", publicationHandler.PatchPublication)
				publications.DELETE("/:id", publicationHandler.DeletePublication)
			}

			// Admin routes
			admin := protected.Group("/")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/users", userHandler.ListUsers)
				admin.POST("/users/:id/upgrade-to-premium", userHandler.UpgradeByID)
				admin.POST("/users/:id/downgrade-to-basic", userHandler.DowngradeByID)
				admin.PATCH("/users/:id/premium-details", userHandler.UpdateDetailsByID)
				admin.DELETE("/users/:id", userHandler.DeleteUser)
			}
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.WithField("port", port).Info("Server starting")
	log.Fatal(http.ListenAndServe(":"+port, router))
}

func newHTTPHelper() *helper.HTTPHelper {
	validate := validator.New()

	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(validate, translator)

	return &helper.HTTPHelper{
		Validate:   validate,
		Translator: translator,
	}
}
