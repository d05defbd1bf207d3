package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderhub/order-admin/internal/config"
)

func TestNew_Defaults(t *testing.T) {
	conf := config.New()

	assert.Equal(t, "development", conf.Env)
	assert.Equal(t, "http://localhost:5000/api", conf.API.BaseURL)
	assert.Equal(t, 15*time.Second, conf.API.Timeout)
	assert.Equal(t, 10, conf.API.RetryMaxAttempts)
	assert.Equal(t, 500*time.Millisecond, conf.API.RetryInitialDelay)
	assert.Equal(t, 3*time.Second, conf.API.RetryMaxDelay)
	assert.Equal(t, 1.5, conf.API.RetryMultiplier)
	assert.Equal(t, time.Second, conf.API.CreateSyncDelay)
	assert.Equal(t, 1500*time.Millisecond, conf.API.ReconcileDelay)

	require.NoError(t, conf.Validate())
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("API_BASE_URL", "http://orders.internal/api")
	t.Setenv("API_RETRY_MAX_ATTEMPTS", "5")
	t.Setenv("API_RECONCILE_DELAY", "250ms")
	t.Setenv("API_RETRY_MULTIPLIER", "2.0")

	conf := config.New()

	assert.Equal(t, "production", conf.Env)
	assert.Equal(t, "http://orders.internal/api", conf.API.BaseURL)
	assert.Equal(t, 5, conf.API.RetryMaxAttempts)
	assert.Equal(t, 250*time.Millisecond, conf.API.ReconcileDelay)
	assert.Equal(t, 2.0, conf.API.RetryMultiplier)

	require.NoError(t, conf.Validate())
}

func TestNew_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("API_RETRY_MAX_ATTEMPTS", "lots")
	t.Setenv("API_RECONCILE_DELAY", "soon")

	conf := config.New()

	assert.Equal(t, 10, conf.API.RetryMaxAttempts)
	assert.Equal(t, 1500*time.Millisecond, conf.API.ReconcileDelay)
}

func TestValidate_RejectsBadConfig(t *testing.T) {
	conf := config.New()
	conf.Env = "sandbox"
	assert.Error(t, conf.Validate())

	conf = config.New()
	conf.API.BaseURL = "not a url"
	assert.Error(t, conf.Validate())
}
