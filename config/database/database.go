package config

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// Pool is the shared connection pool used by all handlers.
var Pool *pgxpool.Pool

// InitDB connects to the database configured via DATABASE_URL.
func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("Unable to create connection pool: %v", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("Unable to reach database: %v", err)
	}

	Pool = pool
	log.Println("Connected to database")
}

func CloseDB() {
	if Pool != nil {
		Pool.Close()
	}
}
