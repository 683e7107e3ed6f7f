package main

// @title           Keyfold Core API
// @version         1.0
// @description     Minimal user registration and login API issuing 30-day bearer tokens.

// @contact.name   Keyfold OSS
// @contact.url    https://github.com/keyfold/keyfold-core/issues

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:9000
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/keyfold/keyfold-core/internal/adapters/driven/auth"
	"github.com/keyfold/keyfold-core/internal/adapters/driven/postgres"
	redisadapter "github.com/keyfold/keyfold-core/internal/adapters/driven/redis"
	"github.com/keyfold/keyfold-core/internal/adapters/driving/http"
	"github.com/keyfold/keyfold-core/internal/core/ports/driven"
	"github.com/keyfold/keyfold-core/internal/core/services"
)

var version = "dev"

func main() {
	log.Printf("keyfold-core %s starting", version)

	// Configuration from environment. The signing secret and a store
	// address are required - refuse to start without them rather than
	// fall back to an insecure default.
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	port := getEnvInt("PORT", 9000)
	databaseURL := os.Getenv("DATABASE_URL")
	redisURL := os.Getenv("REDIS_URL")
	if databaseURL == "" && redisURL == "" {
		log.Fatal("DATABASE_URL or REDIS_URL is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ===== Credential store (Redis document store if configured, otherwise PostgreSQL) =====
	var userStore driven.UserStore
	var storePinger http.Pinger

	if redisURL != "" {
		log.Println("Connecting to Redis...")
		opts, err := goredis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := goredis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		userStore = redisadapter.NewUserStore(redisClient)
		storePinger = pingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
		log.Println("Using Redis credential store")
	} else {
		log.Println("Connecting to PostgreSQL...")
		dbConfig := postgres.Config{
			URL:             databaseURL,
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300)) * time.Second,
			ConnMaxIdleTime: time.Duration(getEnvInt("DB_CONN_MAX_IDLE_SEC", 60)) * time.Second,
		}
		db, err := postgres.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Initialize schema (idempotent)
		if err := db.InitSchema(ctx); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}

		userStore = postgres.NewUserStore(db)
		storePinger = db
		log.Println("Using PostgreSQL credential store")
	}

	// ===== Driven adapters (infrastructure) =====
	authAdapter := auth.NewAdapter(jwtSecret)

	// Services (core business logic)
	authService := services.NewAuthService(userStore, authAdapter)
	userService := services.NewUserService(userStore)

	// HTTP server
	cfg := http.Config{
		Host:           "0.0.0.0",
		Port:           port,
		Version:        version,
		AllowedOrigins: []string{"*"},
	}
	server := http.NewServer(cfg, authService, userService, storePinger)

	log.Printf("API server starting on :%d", port)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// pingFunc adapts a function to the http.Pinger interface
type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Helper functions

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
