package database

import (
	"CotizaLab/config"
	"CotizaLab/models"
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	mu sync.Mutex

	// DB is the shared database handle, nil until the first successful open.
	DB *gorm.DB

	dbConfig config.DatabaseConfig
)

// Configure records the credential set without opening a connection. The
// handle is opened lazily so unresolved credentials or an unreachable
// store surface per lookup instead of killing the process. The record
// store is externally owned: no migrations, no seeds, reads only.
func Configure(cfg config.DatabaseConfig) {
	mu.Lock()
	defer mu.Unlock()
	dbConfig = cfg
}

// Get returns the shared gorm handle, opening it on first use.
func Get(ctx context.Context) (*gorm.DB, error) {
	mu.Lock()
	defer mu.Unlock()

	if DB != nil {
		return DB, nil
	}
	if !dbConfig.Complete() {
		return nil, models.ErrConfiguration
	}

	// Configure logging level based on environment
	logMode := logger.Silent
	if os.Getenv("ENV") == "development" {
		logMode = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logMode),
	})
	if err != nil {
		log.Printf("failed to open database connection: %v", err)
		return nil, errors.Wrap(models.ErrConnectivity, err.Error())
	}

	if err := configureConnectionPool(db); err != nil {
		return nil, err
	}
	if err := testDatabaseConnection(ctx, db); err != nil {
		return nil, err
	}

	DB = db
	log.Println("Database connection initialized.")
	return DB, nil
}

// configureConnectionPool sets up the connection pool settings for the database.
func configureConnectionPool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

// testDatabaseConnection verifies that the database connection is functional.
func testDatabaseConnection(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		log.Printf("failed to ping database: %v", err)
		return errors.Wrap(models.ErrConnectivity, err.Error())
	}
	return nil
}
