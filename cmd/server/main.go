package main

import (
	"log"
	"time"

	"bookkeeping-backend/internal/auth"
	"bookkeeping-backend/internal/config"
	"bookkeeping-backend/internal/repository"
	"bookkeeping-backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	cfg := config.Load()

	var store repository.Store
	if cfg.DSN != "" {
		db := config.InitDB(cfg.DSN)
		gormStore := repository.NewGormStore(db)
		if err := gormStore.AutoMigrate(); err != nil {
			log.Fatal("migration failed: ", err)
		}
		store = gormStore
	} else {
		log.Println("DB_DSN not set, using in-memory store")
		store = repository.NewMemoryStore()
	}
	if err := repository.Seed(store); err != nil {
		log.Fatal("seeding failed: ", err)
	}

	tokens := auth.NewManager([]byte(cfg.JWTSecret))

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, store, tokens)

	r.Run(":" + cfg.Port)
}
