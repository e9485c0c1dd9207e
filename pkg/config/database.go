package config

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/chefhub/backend/internal/kv"
	"github.com/anonto42/chefhub/backend/pkg/logger"
	"github.com/dgraph-io/badger/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds whichever backend connection the configured store uses
type DB struct {
	Postgres *gorm.DB
	Mongo    *mongo.Client
	Redis    *redis.Client
	Badger   *badger.DB

	log *logger.Logger
}

// InitStore connects the configured KV backend and returns the store built on it
func InitStore(ctx context.Context, cfg *Config, log *logger.Logger) (kv.Store, *DB, error) {
	db := &DB{log: log}

	switch cfg.KVBackend {
	case BackendMemory:
		log.Warn("using in-memory store, data is lost on restart")
		return kv.NewMemoryStore(), db, nil

	case BackendPostgres:
		pg, err := initPostgres(cfg.PostgresUrl)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		db.Postgres = pg
		log.Info("Successfully connected to PostgreSQL")
		store, err := kv.NewGormStore(pg)
		if err != nil {
			db.CloseDB()
			return nil, nil, err
		}
		return store, db, nil

	case BackendMongo:
		client, err := initMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		db.Mongo = client
		log.Info("Successfully connected to MongoDB", "database", cfg.MongoDatabase)
		return kv.NewMongoStore(client.Database(cfg.MongoDatabase)), db, nil

	case BackendRedis:
		client, err := initRedis(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		db.Redis = client
		log.Info("Successfully connected to Redis", "addr", cfg.RedisAddr)
		return kv.NewRedisStore(client), db, nil

	case BackendBadger:
		bdb, err := kv.OpenBadger(cfg.BadgerPath, false)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open Badger: %w", err)
		}
		db.Badger = bdb
		log.Info("Opened Badger store", "path", cfg.BadgerPath)
		return kv.NewBadgerStore(bdb), db, nil
	}
	return nil, nil, fmt.Errorf("unknown KV_BACKEND %q", cfg.KVBackend)
}

// initPostgres initializes the PostgreSQL database connection using GORM
func initPostgres(connStr string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// initMongo initializes the MongoDB connection
func initMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

func initRedis(ctx context.Context, cfg *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// CloseDB closes the open backend connections
func (db *DB) CloseDB() {
	if db == nil {
		return
	}
	if db.Postgres != nil {
		sqlDB, err := db.Postgres.DB()
		if err != nil {
			db.log.Error("Error getting SQL DB from GORM", "error", err)
		} else if err := sqlDB.Close(); err != nil {
			db.log.Error("Error closing PostgreSQL connection", "error", err)
		} else {
			db.log.Info("PostgreSQL connection closed")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			db.log.Error("Error closing MongoDB connection", "error", err)
		} else {
			db.log.Info("MongoDB connection closed")
		}
	}

	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			db.log.Error("Error closing Redis connection", "error", err)
		} else {
			db.log.Info("Redis connection closed")
		}
	}

	if db.Badger != nil {
		if err := db.Badger.Close(); err != nil {
			db.log.Error("Error closing Badger", "error", err)
		} else {
			db.log.Info("Badger closed")
		}
	}
}
