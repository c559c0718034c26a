package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/inkwell")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_SECRET_KEY", "test-secret")
}

func TestLoadEnvironmentVariables_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, int64(500000), cfg.FreeTierCredits)
	assert.Equal(t, "INR", cfg.Currency)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 10*time.Second, cfg.GatewayTimeout)
	assert.False(t, cfg.QuotaFailOpen)
}

func TestLoadEnvironmentVariables_MissingDatabaseURL(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_URL", "")

	_, err := LoadEnvironmentVariables()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadEnvironmentVariables_MemoryDriverSkipsDatabase(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("RAZORPAY_KEY_ID", "")
	t.Setenv("RAZORPAY_SECRET_KEY", "test-secret")

	cfg, err := LoadEnvironmentVariables()

	require.NoError(t, err)
	assert.True(t, cfg.InMemory())
}

func TestLoadEnvironmentVariables_SecretAlwaysRequired(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("RAZORPAY_SECRET_KEY", "")

	_, err := LoadEnvironmentVariables()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "RAZORPAY_SECRET_KEY")
}

func TestLoadEnvironmentVariables_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("FREE_TIER_CREDITS", "20000")
	t.Setenv("STORE_TIMEOUT", "2s")
	t.Setenv("QUOTA_FAIL_OPEN", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := LoadEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, int64(20000), cfg.FreeTierCredits)
	assert.Equal(t, 2*time.Second, cfg.StoreTimeout)
	assert.True(t, cfg.QuotaFailOpen)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadEnvironmentVariables_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"FREE_TIER_CREDITS", "lots"},
		{"FREE_TIER_CREDITS", "0"},
		{"STORE_TIMEOUT", "soon"},
		{"GATEWAY_TIMEOUT", "-1s"},
		{"QUOTA_FAIL_OPEN", "maybe"},
		{"STORAGE_DRIVER", "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadEnvironmentVariables()
			assert.Error(t, err)
		})
	}
}
