package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DataSourceCSV      = "csv"
	DataSourcePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Data     DataConfig
	Market   MarketConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int32
}

// DataConfig describes where operations and user settings come from.
type DataConfig struct {
	Source       string // csv or postgres
	CSVPath      string
	SettingsPath string
}

type MarketConfig struct {
	APIKey         string
	RatesURL       string
	StocksURL      string
	RatesBase      string
	RequestTimeout time.Duration
}

func Load() (*Config, error) {
	// .env is optional, plain environment variables work as well
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, err := getEnvInt("SERVER_READ_TIMEOUT", 30)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := getEnvInt("SERVER_WRITE_TIMEOUT", 30)
	if err != nil {
		return nil, err
	}
	marketTimeout, err := getEnvInt("MARKET_HTTP_TIMEOUT", 10)
	if err != nil {
		return nil, err
	}
	maxConns, err := getEnvInt("DB_MAX_CONNS", 4)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "fin_analyzer"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: int32(maxConns),
		},
		Data: DataConfig{
			Source:       getEnv("DATA_SOURCE", DataSourceCSV),
			CSVPath:      getEnv("OPERATIONS_CSV_PATH", "data/operations.csv"),
			SettingsPath: getEnv("USER_SETTINGS_PATH", "user_settings.json"),
		},
		Market: MarketConfig{
			APIKey:         getEnv("API_KEY", ""),
			RatesURL:       getEnv("EXCHANGE_RATES_URL", "https://api.exchangerate.host/latest"),
			StocksURL:      getEnv("ALPHA_VANTAGE_URL", "https://www.alphavantage.co/query"),
			RatesBase:      getEnv("EXCHANGE_RATES_BASE", "RUB"),
			RequestTimeout: time.Duration(marketTimeout) * time.Second,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Server.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Server.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.Data.Source {
	case DataSourceCSV:
		if c.Data.CSVPath == "" {
			problems = append(problems, "operations CSV path cannot be empty when using csv source")
		}
	case DataSourcePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			problems = append(problems, "database host and name are required when using postgres source")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid data source '%s': must be one of [%s %s]", c.Data.Source, DataSourceCSV, DataSourcePostgres))
	}

	if c.Market.RequestTimeout <= 0 {
		problems = append(problems, "market HTTP timeout must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// DSN builds a libpq connection string for pgx.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': must be a number", key, raw)
	}
	return value, nil
}
