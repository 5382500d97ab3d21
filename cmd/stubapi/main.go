package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gdg-garage/reso-client/internal/config"
	"github.com/gdg-garage/reso-client/internal/database"
	"github.com/gdg-garage/reso-client/internal/models"
	"github.com/gdg-garage/reso-client/internal/stubapi"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env file: %v", err)
	}

	// Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatalf("JWT_SECRET must be set")
	}

	// Connect to Database
	db, err := database.Connect(cfg.DatabasePath, stubapi.Tables()...)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	server := stubapi.New(db, cfg.JWTSecret)
	if err := server.SeedCatalog(models.Fee(cfg.DefaultFee)); err != nil {
		log.Fatalf("Failed to seed events: %v", err)
	}
	if cfg.SuperAdminEmail != "" && cfg.SuperAdminPassword != "" {
		if _, err := server.EnsureAccount("Super Admin", cfg.SuperAdminEmail, cfg.SuperAdminPassword, models.RoleSuperAdmin); err != nil {
			log.Fatalf("Failed to create super admin: %v", err)
		}
	}

	r := stubapi.NewRouter(server, true)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
