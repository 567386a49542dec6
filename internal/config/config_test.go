package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pmt.yml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9000\"\ngantt:\n  days_in_view: 14\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", c.Server.Addr)
	assert.Equal(t, 14, c.Gantt.DaysInView)
	assert.Equal(t, 20, c.Gantt.IndentPx)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, time.Second, c.Timer.Interval())
	assert.NoError(t, c.Validate())
}

func TestLoadOptional_MissingFile(t *testing.T) {
	c, err := LoadOptional(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, "2025-12-01", c.Gantt.Start)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pmt.yml")
	require.NoError(t, os.WriteFile(path, []byte("server: [\n"), 0o644))
	_, err := LoadOptional(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PMT_ADDR", "127.0.0.1:7000")
	t.Setenv("PMT_LOG_LEVEL", "DEBUG")
	t.Setenv("PMT_DEV_STATIC", "yes")
	t.Setenv("PMT_GANTT_START", "2026-01-05")
	t.Setenv("PMT_GANTT_DAYS", "not-a-number")
	t.Setenv("PMT_SITE_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("PMT_SESSION_IDLE_MINUTES", "45")

	c := Default()
	c.ApplyEnv()

	assert.Equal(t, "127.0.0.1:7000", c.Server.Addr)
	assert.Equal(t, "debug", c.Log.Level)
	assert.True(t, c.Server.DevStatic)
	assert.Equal(t, 31, c.Gantt.DaysInView)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.Site.AllowedOrigins)
	assert.Equal(t, 45*time.Minute, c.Session.IdleTimeout())
	assert.Equal(t, time.Minute, c.Session.SweepInterval())

	start, err := c.Gantt.StartTime(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), start)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PMT_GANTT_DAYS=10\n"), 0o644))
	t.Setenv("PMT_GANTT_DAYS", "")
	os.Unsetenv("PMT_GANTT_DAYS")

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	c := Default()
	c.ApplyEnv()
	assert.Equal(t, 10, c.Gantt.DaysInView)
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Gantt.Start = "12/01/2025"
	assert.Error(t, c.Validate())

	c = Default()
	c.Gantt.DaysInView = -3
	assert.Error(t, c.Validate())

	c = Default()
	c.Session.SweepSeconds = -1
	assert.Error(t, c.Validate())
}

func TestLoad_ExampleConfigMatchesDefaults(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "pmt.yml"))
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	d := Default()
	assert.Equal(t, d.Server, c.Server)
	assert.Equal(t, d.Gantt, c.Gantt)
	assert.Equal(t, d.Timer, c.Timer)
	assert.Equal(t, d.Session, c.Session)
	assert.Equal(t, []string{"http://localhost:8080"}, c.Site.AllowedOrigins)
}
