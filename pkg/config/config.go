package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Auth modes
const (
	AuthModeJWT      = "jwt"
	AuthModeFirebase = "firebase"
)

// KV backends
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendRedis    = "redis"
	BackendBadger   = "badger"
)

type Config struct {
	Port                    string
	Env                     string
	AuthMode                string
	JWTSecret               string
	FirebaseCredentialsPath string
	KVBackend               string
	PostgresUrl             string
	MongoURI                string
	MongoDatabase           string
	RedisAddr               string
	RedisPassword           string
	RedisDB                 int
	BadgerPath              string
	NatsURL                 string
	MetricsPort             string
	RequestTimeout          time.Duration

	// DotEnvLoaded reports whether Load found a .env file.
	DotEnvLoaded bool
}

// Load reads the configuration from the environment, after loading an optional .env file
func Load() *Config {
	loaded := godotenv.Load() == nil
	return &Config{
		DotEnvLoaded:            loaded,
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		AuthMode:                getEnv("AUTH_MODE", AuthModeJWT),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		KVBackend:               getEnv("KV_BACKEND", BackendMemory),
		PostgresUrl:             getEnv("POSTGRES_URL", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "chefhub"),
		RedisAddr:               getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),
		RedisDB:                 getEnvInt("REDIS_DB", 0),
		BadgerPath:              getEnv("BADGER_PATH", ""),
		NatsURL:                 getEnv("NATS_URL", ""),
		MetricsPort:             getEnv("METRICS_PORT", "9090"),
		RequestTimeout:          getEnvDuration("REQUEST_TIMEOUT", 15*time.Second),
	}
}

// Validate reports settings that cannot work together
func (c *Config) Validate() error {
	switch c.AuthMode {
	case AuthModeJWT:
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET must be set when AUTH_MODE=%s", AuthModeJWT)
		}
	case AuthModeFirebase:
		if c.FirebaseCredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH must be set when AUTH_MODE=%s", AuthModeFirebase)
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode)
	}

	switch c.KVBackend {
	case BackendMemory, BackendRedis:
	case BackendPostgres:
		if c.PostgresUrl == "" {
			return fmt.Errorf("POSTGRES_URL must be set when KV_BACKEND=%s", BackendPostgres)
		}
	case BackendMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI must be set when KV_BACKEND=%s", BackendMongo)
		}
	case BackendBadger:
		if c.BadgerPath == "" {
			return fmt.Errorf("BADGER_PATH must be set when KV_BACKEND=%s", BackendBadger)
		}
	default:
		return fmt.Errorf("unknown KV_BACKEND %q", c.KVBackend)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}
