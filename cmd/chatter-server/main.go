package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mikepea/chatter/pkg/chatter/auth"
	"github.com/mikepea/chatter/pkg/chatter/config"
	"github.com/mikepea/chatter/pkg/chatter/database"
	"github.com/mikepea/chatter/pkg/chatter/groups"
	"github.com/mikepea/chatter/pkg/chatter/messages"
	"github.com/mikepea/chatter/pkg/chatter/models"
	"github.com/mikepea/chatter/pkg/chatter/users"
	log "github.com/sirupsen/logrus"
)

// @title Chatter API
// @version 1.0
// @description A group messaging backend with token authentication and role/ownership-based access control.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token. Format: "Bearer {token}"

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := database.Connect(cfg.DBPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := models.AutoMigrate(database.GetDB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Info("Database migrations completed")

	// Create default admin user if no admin exists
	if err := ensureAdminExists(cfg); err != nil {
		log.Fatalf("Failed to ensure admin user exists: %v", err)
	}

	// Install the strongpassword binding rule before any routes handle traffic
	if err := auth.RegisterValidators(); err != nil {
		log.Fatalf("Failed to register validators: %v", err)
	}

	// Set up Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "chatter",
			})
		})

		// Auth routes (public; /me and /password carry their own middleware)
		authHandler := auth.NewHandler(database.GetDB())
		authHandler.RegisterRoutes(api.Group("/auth"))

		authRequired := auth.AuthMiddleware(database.GetDB())

		// User roster and admin user management
		usersHandler := users.NewHandler(database.GetDB())
		usersHandler.RegisterRoutes(api.Group("/users", authRequired))

		// Groups, memberships and messages share the /groups subtree
		groupsGroup := api.Group("/groups", authRequired)
		groupsHandler := groups.NewHandler(database.GetDB())
		groupsHandler.RegisterRoutes(groupsGroup)
		groupsHandler.RegisterMemberRoutes(groupsGroup)

		messagesHandler := messages.NewHandler(database.GetDB())
		messagesHandler.RegisterRoutes(groupsGroup)
	}

	log.Infof("Starting chatter server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// ensureAdminExists creates a default admin user if no admin exists in the
// database, so the system is usable on first start.
func ensureAdminExists(cfg config.Config) error {
	db := database.GetDB()

	var count int64
	if err := db.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	adminUser := models.User{
		Name:         "Admin",
		Email:        cfg.AdminEmail,
		PasswordHash: hashedPassword,
		IsAdmin:      true,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Infof("Created default admin user: %s", adminUser.Email)
	return nil
}
