package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadAppliesDefaultsAndEnv(t *testing.T) {
	p := writeYAML(t, `
jwt:
  secret: s3cret
db:
  driver: sqlite
  dsn: file:plantya.db
`)
	t.Setenv("APP_DB_DSN", "file:override.db")
	t.Setenv("APP_MQTT_BROKER", "tcp://broker:1883")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "file:override.db", c.DB.DSN)
	assert.Equal(t, "tcp://broker:1883", c.MQTT.Broker)
	assert.Equal(t, 8080, c.App.HTTP.Port)
	assert.Equal(t, 8081, c.App.Admin.Port)
	assert.Equal(t, "plantya", c.MQTT.TopicPrefix)
	assert.Equal(t, 60, c.Redis.TTLSec)
	assert.Equal(t, 120, c.JWT.AccessTokenTTLMin)
	assert.Equal(t, "2h0m0s", c.JWT.TTL().String())
	assert.True(t, c.JWT.CookieSecure)
	assert.Equal(t, "UTC", c.App.Zone)
	assert.Equal(t, time.UTC, c.App.Location())
}

func TestLoadRejectsUnknownZone(t *testing.T) {
	p := writeYAML(t, "app:\n  zone: Mars/Olympus\njwt:\n  secret: x\ndb:\n  driver: sqlite\n")
	_, err := Load(p)
	assert.ErrorContains(t, err, "app.zone")
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	p := writeYAML(t, "jwt:\n  secret: x\ndb:\n  driver: oracle\n")
	_, err := Load(p)
	assert.ErrorContains(t, err, "oracle")
}

func TestLoadRequiresSecret(t *testing.T) {
	p := writeYAML(t, "db:\n  driver: postgres\n")
	_, err := Load(p)
	assert.ErrorContains(t, err, "jwt.secret")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
