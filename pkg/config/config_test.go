package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, "read_committed", cfg.DB.Isolation)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 5*time.Second, cfg.Ledger.TxTimeout)
	assert.Equal(t, 50, cfg.Ledger.HistoryDefaultLimit)
	assert.Equal(t, 200, cfg.Ledger.HistoryMaxLimit)
	assert.Empty(t, cfg.Telemetry.OTLPEndpoint)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "Memory")
	v.Set("LEDGER_TX_TIMEOUT", "750ms")
	v.Set("LEDGER_LOCK_TIMEOUT", "1500")
	v.Set("DB_MAX_CONNS", "4")
	v.Set("DB_MIN_CONNS", "1")
	v.Set("DB_AUTO_MIGRATE", "true")
	v.Set("LEDGER_LOW_STOCK_THRESHOLD", "10")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 750*time.Millisecond, cfg.Ledger.TxTimeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.Ledger.LockTimeout)
	assert.Equal(t, 4, cfg.DB.MaxConns)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, int64(10), cfg.Ledger.LowStockThreshold)
	assert.Empty(t, cfg.Store.SeedCatalog)
}

func TestFromViper_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"driver":    {"STORE_DRIVER": "sqlite"},
		"isolation": {"DB_ISOLATION": "chaos"},
		"pool":      {"DB_MIN_CONNS": "10", "DB_MAX_CONNS": "2"},
		"history":   {"LEDGER_HISTORY_DEFAULT_LIMIT": "300", "LEDGER_HISTORY_MAX_LIMIT": "200"},
		"threshold": {"LEDGER_LOW_STOCK_THRESHOLD": "-1"},
		"secret":    {"APP_ENV": "production"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			for k, val := range env {
				v.Set(k, val)
			}
			_, err := fromViper(v)
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw@db:5432/inv?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
