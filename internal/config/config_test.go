// AngelaMos | 2026
// config_test.go

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := load("")
	require.NoError(t, err)

	assert.Equal(t, 3, c.Entitlement.FreeLimit)
	assert.Equal(t, "slate", c.Templates.DefaultID)
	assert.Equal(t, StorageLocal, c.Storage.Driver)
	assert.Equal(t, "X-RC-App-User-ID", c.Entitlement.UserIDHeader)
	assert.Equal(t, []string{"lifetime", "149"}, c.Billing.LifetimeMarkers)
	assert.Equal(t, time.Minute, c.RateLimit.Window)
	assert.Empty(t, c.Redis.URL)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte("entitlement:\n  free_limit: 5\ntemplates:\n  default_id: swiss\n")
	require.NoError(t, os.WriteFile(path, yaml, 0o600))

	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("REVENUECAT_WEBHOOK_SECRET", "s3cret")
	t.Setenv("FREE_LIMIT", "1")

	c, err := load(path)
	require.NoError(t, err)

	assert.Equal(t, "redis://localhost:6379/0", c.Redis.URL)
	assert.Equal(t, "s3cret", c.Billing.WebhookSecret)
	assert.Equal(t, 1, c.Entitlement.FreeLimit)
	assert.Equal(t, "swiss", c.Templates.DefaultID)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c, err := load("")
		require.NoError(t, err)
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "zero free limit",
			mutate:  func(c *Config) { c.Entitlement.FreeLimit = 0 },
			wantErr: true,
		},
		{
			name:    "unknown storage driver",
			mutate:  func(c *Config) { c.Storage.Driver = "ftp" },
			wantErr: true,
		},
		{
			name: "s3 without credentials",
			mutate: func(c *Config) {
				c.Storage.Driver = StorageS3
				c.Storage.S3.Bucket = "decks"
				c.Storage.S3.Region = "us-east-1"
			},
			wantErr: true,
		},
		{
			name: "s3 complete",
			mutate: func(c *Config) {
				c.Storage.Driver = StorageS3
				c.Storage.S3.Bucket = "decks"
				c.Storage.S3.Region = "us-east-1"
				c.Storage.S3.AccessKeyID = "id"
				c.Storage.S3.SecretAccessKey = "secret"
			},
		},
		{
			name: "wildcard origin with credentials",
			mutate: func(c *Config) {
				c.CORS.AllowCredentials = true
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := validate(c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEnvKeyReplacer(t *testing.T) {
	assert.Equal(t, "billing.webhook_secret", envKeyReplacer("REVENUECAT_WEBHOOK_SECRET"))
	assert.Equal(t, "", envKeyReplacer("HOME"))
}
