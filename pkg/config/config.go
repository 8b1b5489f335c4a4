package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	DBDriver    string
	PostgresUrl string
	SQLitePath  string

	MongoURI      string
	MongoDatabase string

	FirebaseCredentialsPath string
	MetricsPort             string

	AuthMode  string
	JWTSecret string

	Dispatch DispatchConfig
}

// DispatchConfig sizes the notification worker pool.
type DispatchConfig struct {
	Workers         int
	QueueSize       int
	Timeout         time.Duration
	PushRatePerSec  float64
	PushConcurrency int
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("POSTGRES_CONN_STR", "")
	v.SetDefault("SQLITE_PATH", "newsroom.db")
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("MONGO_DATABASE", "newsroom")
	v.SetDefault("FIREBASE_CREDENTIALS_PATH", "")
	v.SetDefault("METRICS_PORT", "9090")
	v.SetDefault("AUTH_MODE", "query")
	v.SetDefault("JWT_SECRET", "supersecretjwtkey")
	v.SetDefault("DISPATCH_WORKERS", 4)
	v.SetDefault("DISPATCH_QUEUE_SIZE", 1024)
	v.SetDefault("DISPATCH_TIMEOUT", "15s")
	v.SetDefault("PUSH_RATE_PER_SEC", 50.0)
	v.SetDefault("PUSH_CONCURRENCY", 8)

	return &Config{
		Port:                    v.GetString("PORT"),
		Env:                     v.GetString("ENV"),
		LogLevel:                v.GetString("LOG_LEVEL"),
		DBDriver:                v.GetString("DB_DRIVER"),
		PostgresUrl:             v.GetString("POSTGRES_CONN_STR"),
		SQLitePath:              v.GetString("SQLITE_PATH"),
		MongoURI:                v.GetString("MONGO_URI"),
		MongoDatabase:           v.GetString("MONGO_DATABASE"),
		FirebaseCredentialsPath: v.GetString("FIREBASE_CREDENTIALS_PATH"),
		MetricsPort:             v.GetString("METRICS_PORT"),
		AuthMode:                v.GetString("AUTH_MODE"),
		JWTSecret:               v.GetString("JWT_SECRET"),
		Dispatch: DispatchConfig{
			Workers:         v.GetInt("DISPATCH_WORKERS"),
			QueueSize:       v.GetInt("DISPATCH_QUEUE_SIZE"),
			Timeout:         v.GetDuration("DISPATCH_TIMEOUT"),
			PushRatePerSec:  v.GetFloat64("PUSH_RATE_PER_SEC"),
			PushConcurrency: v.GetInt("PUSH_CONCURRENCY"),
		},
	}
}
