package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"sports-federation-backend/app/model"
	"sports-federation-backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Database struct {
	Postgres *gorm.DB
	Mongo    *mongo.Database
	client   *mongo.Client
}

func InitDB() (*Database, error) {
	// 1. PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		utils.GetEnv("DB_HOST", "localhost"),
		utils.GetEnv("DB_USER", "postgres"),
		utils.GetEnv("DB_PASSWORD"),
		utils.GetEnv("DB_NAME", "sports_federation"),
		utils.GetEnv("DB_PORT", "5432"),
		utils.GetEnv("DB_SSLMODE", "disable"),
		utils.GetEnv("APP_TIMEZONE", "Asia/Jakarta"),
	)

	pgDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger: NewGormLogger(
			utils.GetEnv("DB_LOG_LEVEL", "warn"),
			utils.GetEnvDuration("DB_SLOW_THRESHOLD", 200*time.Millisecond),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("gagal koneksi ke postgres: %w", err)
	}
	TunePool(pgDB)

	log.Println("Menjalankan migrasi database PostgreSQL...")
	err = pgDB.AutoMigrate(
		&model.Role{},
		&model.Permission{},
		&model.User{},
		&model.Cabor{},
		&model.Athlete{},
		&model.Coach{},
		&model.Venue{},
		&model.Event{},
		&model.FormTemplate{},
		&model.FormSubmission{},
		&model.FormSubmissionValue{},
		&model.TrainingSchedule{},
		&model.TrainingSession{},
	)
	if err != nil {
		return nil, fmt.Errorf("gagal migrasi database: %w", err)
	}

	// 2. MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(utils.GetEnv("MONGO_URI", "mongodb://localhost:27017")))
	if err != nil {
		return nil, fmt.Errorf("gagal koneksi ke mongo: %w", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("gagal ping mongo: %w", err)
	}

	mongoDatabase := mongoClient.Database(utils.GetEnv("MONGO_DB_NAME", "sports_federation"))
	if err := ensureMongoIndexes(ctx, mongoDatabase); err != nil {
		log.Printf("⚠️ Gagal membuat index MongoDB: %v", err)
	}

	log.Println("Berhasil terhubung ke PostgreSQL dan MongoDB!")

	return &Database{
		Postgres: pgDB,
		Mongo:    mongoDatabase,
		client:   mongoClient,
	}, nil
}

// TunePool mengatur pool koneksi postgres.
func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// ensureMongoIndexes: log aktivitas dibaca terbaru dulu dan difilter per action.
func ensureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("activity_logs").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "action", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return err
}

// Close menutup kedua koneksi.
func (d *Database) Close(ctx context.Context) {
	if sqlDB, err := d.Postgres.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if d.client != nil {
		_ = d.client.Disconnect(ctx)
	}
}
