package database

import (
	"asistencia_go/config"
	"asistencia_go/models"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB
var RedisClient *redis.Client

// StoreLock serializes destructive store operations against everything else.
// Reset and Restore hold the write side for the whole snapshot-then-wipe or
// overwrite-then-reopen window; request handlers that touch the store through
// the services layer hold the read side.
var StoreLock sync.RWMutex

// Connect initializes the database and Redis connections
func Connect() {
	connectDatabase()
	connectRedis()
}

// connectDatabase opens the SQLite store file
func connectDatabase() {
	dsn := DSN(config.AppConfig.DBPath)

	if err := os.MkdirAll(filepath.Dir(config.AppConfig.DBPath), 0755); err != nil {
		log.Fatal("Failed to create database directory:", err)
	}

	// Configure GORM logger based on environment
	var gormLogger logger.Interface
	if config.AppConfig.AppEnv == "development" {
		gormLogger = logger.Default.LogMode(logger.Info)
	} else {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   gormLogger,
		DisableForeignKeyConstraintWhenMigrating: false,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connected successfully")

	// SQLite: single writer, a few readers
	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("Failed to get database instance:", err)
	}

	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetConnMaxLifetime(55 * time.Minute)

	if !config.AppConfig.SkipMigrate {
		AutoMigrate()
	}
}

// DSN builds the SQLite connection string for a store file path.
// WAL keeps readers unblocked; foreign_keys=on enforces the cascade
// constraints along Grade→Section→Student→AttendanceMark.
func DSN(path string) string {
	return path + "?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on"
}

// AutoMigrate performs automatic database migration
func AutoMigrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Grade{},
		&models.Section{},
		&models.Student{},
		&models.AttendanceMark{},
		&models.Course{},
		&models.Competency{},
		&models.Capability{},
		&models.ActivityLog{},
		&models.LogArchive{},
	)

	if err != nil {
		log.Fatal("Auto migration failed:", err)
	}

	log.Println("Database migration completed successfully")
}

// connectRedis initializes Redis connection
func connectRedis() {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.AppConfig.RedisHost, config.AppConfig.RedisPort),
		Password: config.AppConfig.RedisPassword,
		DB:       0, // use default DB
	})

	// Test Redis connection
	ctx := context.Background()
	_, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		log.Printf("Redis connection failed: %v", err)
		log.Println("Continuing without Redis - logs will be saved directly to database")
		RedisClient = nil
		return
	}

	log.Println("Redis connected successfully")
}

// GetRedisClient returns the Redis client instance
func GetRedisClient() *redis.Client {
	return RedisClient
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// Checkpoint flushes the WAL into the main store file so a file-level copy
// captures every committed write.
func Checkpoint() error {
	return DB.Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error
}

// Close closes the database connection
func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	log.Println("Database connection closed")
	return nil
}

// Reopen re-establishes the database connection after the store file was
// replaced (restore). GORM keeps no entity cache, so reopening is enough for
// subsequent requests to observe the restored state.
func Reopen() {
	connectDatabase()
}
