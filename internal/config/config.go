package config

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	Port      string
	JWTSecret string
	DSN       string
}

// Load reads the process environment. DSN empty means the in-memory store.
func Load() Config {
	return Config{
		Port:      getenv("PORT", "3000"),
		JWTSecret: getenv("JWT_SECRET", "secretKeyDummy"),
		DSN:       os.Getenv("DB_DSN"),
	}
}

// InitDB opens the Postgres connection or aborts the process.
func InitDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect postgres database: ", err)
	}
	return db
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
