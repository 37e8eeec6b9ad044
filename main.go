package main

import (
	"log"

	"github.com/fathy2028/shopeklopek/config"
	"github.com/fathy2028/shopeklopek/db"
	"github.com/fathy2028/shopeklopek/routes"
)

func main() {
	log.Println("✅ Starting application...")

	// Load .env and environment variables
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	if len(cfg.JWTSecret) == 0 {
		log.Fatalf("❌ JWT_SECRET is not set")
	}

	// Init DB
	conn, err := db.Open(cfg.DB)
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}

	// Auto-migrate all tables
	if err := db.Migrate(conn); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	r := routes.NewRouter(conn, cfg)

	log.Printf("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
