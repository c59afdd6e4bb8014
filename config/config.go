package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Config is the single place environment state enters the process. It is
// built once in main and handed to the adapters that need it; no other
// package reads os.Getenv.
type Config struct {
	Port      string
	GinMode   string
	JWTSecret string

	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string

	OneSignalAppID  string
	OneSignalAPIKey string
}

func Load() Config {
	return Config{
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", ""),
		JWTSecret: getEnv("JWT_SECRET", ""),

		DBUser: getEnv("DB_USER", "root"),
		DBPass: getEnv("DB_PASS", ""),
		DBHost: getEnv("DB_HOST", "127.0.0.1"),
		DBPort: getEnv("DB_PORT", "3306"),
		DBName: getEnv("DB_NAME", "restaurant_tab"),

		OneSignalAppID:  getEnv("ONESIGNAL_APP", ""),
		OneSignalAPIKey: getEnv("ONESIGNAL_KEY", ""),
	}
}

// InitDB opens the MySQL connection described by cfg.
func InitDB(cfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	return db, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
