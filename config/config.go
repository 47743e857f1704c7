package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds the application's configuration values.
type Config struct {
	AppName    string `json:"appname"`
	AppEnv     string `json:"appenv"`
	AppPort    uint16 `json:"appport"`
	GinMode    string `json:"ginmode"`
	APIBaseURL string `json:"api_base_url"`
	DBHost     string `json:"dbhost"`
	DBPort     uint16 `json:"dbport"`
	DBName     string `json:"dbname"`
	DBUser     string `json:"dbuser"`
	DBPass     string `json:"dbpass"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		// Load environment variables from .env file. A missing file is not
		// fatal; tests and containerized deployments configure via the
		// environment directly.
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file loaded: %v", err)
		}

		appPort, _ := strconv.ParseUint(os.Getenv("APPPORT"), 10, 16)
		dbPort, _ := strconv.ParseUint(os.Getenv("DBPORT"), 10, 16)

		apiBaseURL := os.Getenv("API_BASE_URL")
		if apiBaseURL == "" {
			apiBaseURL = "http://localhost:8000"
		}

		// Initialize the Config struct with values from environment variables.
		config = &Config{
			AppName:    os.Getenv("APPNAME"),
			AppEnv:     os.Getenv("APPENV"),
			AppPort:    uint16(appPort),
			GinMode:    os.Getenv("GINMODE"),
			APIBaseURL: apiBaseURL,
			DBHost:     os.Getenv("DBHOST"),
			DBPort:     uint16(dbPort),
			DBName:     os.Getenv("DBNAME"),
			DBUser:     os.Getenv("DBUSER"),
			DBPass:     os.Getenv("DBPASS"),
		}
	})
	return config
}

// ConnectDB establishes a database connection using the configuration values.
// In the test environment an in-memory sqlite database is used so tests never
// require a running MySQL instance.
func ConnectDB() (*gorm.DB, error) {
	cfg := LoadConfig()
	if cfg.AppEnv == "test" {
		return gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	}

	// Build the Data Source Name (DSN) using the configuration values.
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// ResetConfigForTest resets the config singleton so tests can reload it with
// different environment variables.
func ResetConfigForTest() {
	config = nil
	once = sync.Once{}
}
