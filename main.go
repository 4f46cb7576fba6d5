package main

import (
	"errors"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/hassanjrao/translation-management/config"
	"github.com/hassanjrao/translation-management/handlers"
	"github.com/hassanjrao/translation-management/helper"
	"github.com/hassanjrao/translation-management/middleware"
	"github.com/hassanjrao/translation-management/models"
	"github.com/hassanjrao/translation-management/repositories"
	"github.com/hassanjrao/translation-management/seeder"
	"github.com/hassanjrao/translation-management/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	appcache "github.com/hassanjrao/translation-management/cache"
)

func main() {
	seedCount := flag.Int("seed", 0, "seed this many generated translations and exit")
	seedBatch := flag.Int("seed-batch", 1000, "batch size for seeding")
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	db := config.InitDB()

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := ensureAdminExists(db); err != nil {
		log.Fatalf("Failed to ensure admin user exists: %v", err)
	}

	if *seedCount > 0 {
		if err := seeder.SeedTranslations(db, *seedCount, *seedBatch); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		log.Println("Seeding complete")
		return
	}

	if err := seeder.SeedBaseData(db); err != nil {
		log.Fatalf("Failed to seed base data: %v", err)
	}

	router := setupRouter(db)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

func setupRouter(db *gorm.DB) *gin.Engine {
	httpHelper := helper.NewHTTPHelper()
	cacheStore := appcache.New()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	tokenRepo := repositories.NewApiTokenRepository(db)
	localeRepo := repositories.NewLocaleRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	translationRepo := repositories.NewTranslationRepository(db, cacheStore, config.CacheTTL())

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenRepo)
	translationService := services.NewTranslationService(translationRepo, localeRepo, tagRepo)
	tagService := services.NewTagService(tagRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, httpHelper)
	translationHandler := handlers.NewTranslationHandler(translationService, httpHelper)
	tagHandler := handlers.NewTagHandler(tagService, httpHelper)

	// Setup router
	router := gin.Default()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/v1")
	{
		// Token issuance (public)
		v1.POST("/auth/token", authHandler.IssueToken)

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware(authService))
		{
			protected.DELETE("/auth/token", authHandler.RevokeToken)

			translations := protected.Group("/translations")
			{
				translations.POST("", translationHandler.Store)
				translations.GET("/search", translationHandler.Search)
				translations.GET("/export", translationHandler.Export)
				translations.GET("/:id", translationHandler.Show)
				translations.PUT("/:id", translationHandler.Update)
				translations.DELETE("/:id", translationHandler.Destroy)
			}

			tags := protected.Group("/tags")
			{
				tags.POST("", tagHandler.CreateTag)
				tags.GET("", tagHandler.GetTags)
			}
		}
	}

	return router
}

// ensureAdminExists creates the initial admin account so tokens can be
// issued against a fresh database.
func ensureAdminExists(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "password"
	}

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Admin",
		Email:    email,
		Password: string(hashed),
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Created admin user %s", email)
	return nil
}
