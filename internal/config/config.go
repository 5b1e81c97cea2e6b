package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWTSecret string
	TokenTTL  time.Duration
	LogLevel  string
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// DSN builds the mysql data source name used by both the connection pool
// and the migration runner.
func (c DatabaseConfig) DSN() string {
	// refer to https://github.com/go-sql-driver/mysql/?tab=readme-ov-file#dsn-data-source-name
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", c.User, c.Password, c.Host, c.Port, c.Name)
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("No .env file loaded: %s", err)
	}

	serverPort, _ := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "3306"))
	tokenMinutes, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "30"))

	return &Config{
		Server: ServerConfig{
			Port: serverPort,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "arisuser"),
			Password: getEnv("DB_PASSWORD", "arispass"),
			Name:     getEnv("DB_NAME", "arisdb"),
		},
		JWTSecret: getEnv("JWT_SECRET", "my_secret_key"),
		TokenTTL:  time.Duration(tokenMinutes) * time.Minute,
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
