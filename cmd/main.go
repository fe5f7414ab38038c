package main

import (
	"CotizaLab/cache"
	"CotizaLab/catalog"
	"CotizaLab/config"
	"CotizaLab/database"
	"CotizaLab/routes"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	// Load configuration from config package
	config, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Record the store credentials; the connection itself opens on the
	// first lookup so unresolved credentials surface to the user instead
	// of crashing the process.
	database.Configure(config.Database)
	if !config.Database.Complete() {
		log.Println("Warning: database credentials unresolved, lookups will report a configuration error")
	}

	// Initialize Redis
	if err := database.InitializeRedis(); err != nil {
		log.Fatalf("failed to initialize Redis client: %v", err)
	}

	// Initialize the cache utility
	cache, err := cache.NewCache()
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}

	// Warm the price catalog; a failure here is reported per lookup, the
	// loader keeps retrying on use.
	catalogLoader := catalog.NewLoader(config.CatalogPath, cache)
	warmCtx, cancelWarm := context.WithTimeout(context.Background(), 15*time.Second)
	if _, err := catalogLoader.Get(warmCtx); err != nil {
		log.Printf("Warning: price catalog not loaded at startup: %v", err)
	}
	cancelWarm()

	// Pass the config to SetupRoutes
	handler := routes.SetupRoutes(cache, config, catalogLoader)

	// Configure and start the server
	srv := &http.Server{
		Addr:           ":" + config.Port,
		Handler:        handler,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		log.Printf("Starting server on :%s", config.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown handling
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	// Create a context with a timeout for shutdown
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	log.Println("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %+v", err)
	}

	wg.Wait() // Wait for all goroutines to finish before exiting
	log.Println("Server exited gracefully")
}

// loadConfig resolves configuration from environment variables, falling
// back to a godotenv secrets file for the store credentials.
func loadConfig() (*config.AppConfig, error) {
	dbConfig := databaseConfigFromEnv()
	if !dbConfig.Complete() {
		secretsFile := os.Getenv("SECRETS_FILE")
		if secretsFile == "" {
			secretsFile = "secrets.env"
		}
		if err := godotenv.Load(secretsFile); err == nil {
			log.Printf("Loaded store credentials from %s", secretsFile)
			dbConfig = databaseConfigFromEnv()
		}
	}

	// Get the Redis URL
	redisAddress := os.Getenv("REDIS_URL")
	if redisAddress == "" {
		return nil, errors.New("missing REDIS_URL environment variable")
	}

	// Get the Bearer Token
	bearerToken := os.Getenv("BEARER_TOKEN")
	if bearerToken == "" {
		return nil, errors.New("missing BEARER_TOKEN environment variable")
	}

	catalogPath := os.Getenv("ARANCELES_PATH")
	if catalogPath == "" {
		catalogPath = "aranceles.xlsx"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8930"
	}

	return &config.AppConfig{
		Database:     dbConfig,
		RedisAddress: redisAddress,
		BearerToken:  bearerToken,
		CatalogPath:  catalogPath,
		Port:         port,
	}, nil
}

// databaseConfigFromEnv reads the record store credentials from the
// environment. Every field must resolve for lookups to run.
func databaseConfigFromEnv() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:     os.Getenv("POSTGRES_HOST"),
		Database: os.Getenv("POSTGRES_DATABASE"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Port:     os.Getenv("POSTGRES_PORT"),
	}
}
