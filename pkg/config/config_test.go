package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{Host: "localhost", DBName: "fin_analyzer"},
		Data:     DataConfig{Source: DataSourceCSV, CSVPath: "data/operations.csv"},
		Market:   MarketConfig{RequestTimeout: 5 * time.Second},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "valid csv config",
			mutate: func(c *Config) {},
		},
		{
			name:   "valid postgres config",
			mutate: func(c *Config) { c.Data.Source = DataSourcePostgres },
		},
		{
			name:    "non-numeric port",
			mutate:  func(c *Config) { c.Server.Port = "abc" },
			wantErr: "invalid port 'abc': must be a number",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = "70000" },
			wantErr: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:    "unknown data source",
			mutate:  func(c *Config) { c.Data.Source = "sheets" },
			wantErr: "invalid data source 'sheets'",
		},
		{
			name:    "empty csv path",
			mutate:  func(c *Config) { c.Data.CSVPath = "" },
			wantErr: "operations CSV path cannot be empty",
		},
		{
			name: "postgres without database name",
			mutate: func(c *Config) {
				c.Data.Source = DataSourcePostgres
				c.Database.DBName = ""
			},
			wantErr: "database host and name are required",
		},
		{
			name:    "zero market timeout",
			mutate:  func(c *Config) { c.Market.RequestTimeout = 0 },
			wantErr: "market HTTP timeout must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ValidateCollectsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = "0"
	cfg.Data.Source = "memory"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port 0")
	assert.Contains(t, err.Error(), "invalid data source 'memory'")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DATA_SOURCE", "")
	t.Setenv("MARKET_HTTP_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DataSourceCSV, cfg.Data.Source)
	assert.Equal(t, 10*time.Second, cfg.Market.RequestTimeout)
	assert.Equal(t, "RUB", cfg.Market.RatesBase)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATA_SOURCE", DataSourcePostgres)
	t.Setenv("MARKET_HTTP_TIMEOUT", "3")
	t.Setenv("API_KEY", "demo")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DataSourcePostgres, cfg.Data.Source)
	assert.Equal(t, 3*time.Second, cfg.Market.RequestTimeout)
	assert.Equal(t, "demo", cfg.Market.APIKey)
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_READ_TIMEOUT")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", d.DSN())
}
