package database

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"cardroom/models"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const maxRetries = 3
const retryInterval = 5 * time.Second

// DefaultConfig returns the settings used when neither config.json nor the environment set a value.
func DefaultConfig() models.Config {
	return models.Config{
		DBDriver:                 DriverPostgres,
		DBHost:                   "localhost",
		DBSSLMode:                "disable",
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		RedisAddr:                "localhost:6379",
		Port:                     "8080",
		AllowOrigins:             []string{"http://localhost:8080"},
		RoomTTLHours:             24,
		ReadyTTLMinutes:          30,
	}
}

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// LoadConfig loads the configuration from a JSON file and applies environment overrides.
// A missing file is not an error.
func LoadConfig(filename string) (models.Config, error) {
	config := DefaultConfig()
	if filename != "" {
		configFile, err := os.Open(filename)
		switch {
		case err == nil:
			defer configFile.Close()
			if err := json.NewDecoder(configFile).Decode(&config); err != nil {
				return config, fmt.Errorf("decode %s: %w", filename, err)
			}
		case !os.IsNotExist(err):
			return config, err
		}
	}
	applyEnv(&config)
	applyLimits(&config)
	return config, nil
}

// applyLimits replaces settings below their lower limit, from any source, with the defaults.
func applyLimits(config *models.Config) {
	defaults := DefaultConfig()
	atLeast := func(value *int, floor, fallback int) {
		if *value < floor {
			*value = fallback
		}
	}
	atLeast(&config.DBMaxOpenConns, 1, defaults.DBMaxOpenConns)
	atLeast(&config.DBMaxIdleConns, 1, defaults.DBMaxIdleConns)
	atLeast(&config.DBConnMaxLifetimeSeconds, 1, defaults.DBConnMaxLifetimeSeconds)
	atLeast(&config.RedisDB, 0, defaults.RedisDB)
	atLeast(&config.RoomTTLHours, 1, defaults.RoomTTLHours)
	atLeast(&config.ReadyTTLMinutes, 1, defaults.ReadyTTLMinutes)
}

func applyEnv(config *models.Config) {
	envString("DB_DRIVER", &config.DBDriver)
	envString("DATABASE_URL", &config.DatabaseURL)
	envString("DB_HOST", &config.DBHost)
	envString("DB_USER", &config.DBUser)
	envString("DB_PASSWORD", &config.DBPassword)
	envString("DB_NAME", &config.DBName)
	envString("DB_SSLMODE", &config.DBSSLMode)
	envInt("DB_MAX_OPEN_CONNS", &config.DBMaxOpenConns, 1)
	envInt("DB_MAX_IDLE_CONNS", &config.DBMaxIdleConns, 1)
	envInt("DB_CONN_MAX_LIFETIME_SECONDS", &config.DBConnMaxLifetimeSeconds, 1)
	envString("REDIS_ADDR", &config.RedisAddr)
	envString("REDIS_PASSWORD", &config.RedisPassword)
	envInt("REDIS_DB", &config.RedisDB, 0)
	envString("PORT", &config.Port)
	envInt("ROOM_TTL_HOURS", &config.RoomTTLHours, 1)
	envInt("READY_TTL_MINUTES", &config.ReadyTTLMinutes, 1)
	if raw := os.Getenv("CORS_ALLOW_ORIGINS"); raw != "" {
		origins := []string{}
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
		config.AllowOrigins = origins
	}
}

func envString(key string, dst *string) {
	if raw := os.Getenv(key); raw != "" {
		*dst = raw
	}
}

// envInt ignores values that do not parse or fall below floor.
func envInt(key string, dst *int, floor int) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	if value, err := strconv.Atoi(raw); err == nil && value >= floor {
		*dst = value
	}
}

// DSN returns DATABASE_URL when set, otherwise a key/value DSN built from the DB_* settings.
func DSN(config models.Config) string {
	if config.DatabaseURL != "" {
		return config.DatabaseURL
	}
	if config.DBDriver == DriverSQLite {
		return "cardroom.db"
	}
	return fmt.Sprintf("host=%s user=%s dbname=%s password=%s sslmode=%s",
		config.DBHost, config.DBUser, config.DBName, config.DBPassword, config.DBSSLMode)
}

func dialector(config models.Config) (gorm.Dialector, error) {
	switch config.DBDriver {
	case DriverPostgres, "":
		return postgres.Open(DSN(config)), nil
	case DriverSQLite:
		return sqlite.Open(DSN(config)), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", config.DBDriver)
	}
}

// Open connects to the configured database, retrying while it comes up, and applies the pool settings.
func Open(config models.Config, logger *zap.Logger) (*gorm.DB, error) {
	dial, err := dialector(config)
	if err != nil {
		return nil, err
	}

	var gormDB *gorm.DB
	for i := 0; i <= maxRetries; i++ {
		gormDB, err = gorm.Open(dial, &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		logger.Error("database connection retry", zap.Int("retry", i), zap.Error(err))
		if i < maxRetries {
			time.Sleep(retryInterval)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(config.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(config.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(config.DBConnMaxLifetimeSeconds) * time.Second)

	logger.Info("connected to database", zap.String("driver", config.DBDriver))
	return gormDB, nil
}

// Migrate creates or updates the game_rooms and users tables.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	if db == nil {
		return fmt.Errorf("db connection is nil")
	}
	if err := db.AutoMigrate(&models.GameRoom{}, &models.User{}); err != nil {
		return fmt.Errorf("migrate tables: %w", err)
	}
	logger.Info("game_rooms and users tables migrated")
	return nil
}

func InitRedis(config models.Config, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Error("Failed to connect to Redis", zap.Error(err))
		rdb.Close()
		return nil, err
	}

	logger.Info("Connected to Redis", zap.String("addr", config.RedisAddr))
	return rdb, nil
}
