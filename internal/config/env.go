package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads a .env file into the process environment. A missing
// file is not an error; variables already set are left alone.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ApplyEnv overrides file settings with PMT_* environment variables.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("PMT_ADDR")); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("PMT_LOG_LEVEL")); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := getEnvBool("PMT_DEV_STATIC"); ok {
		c.Server.DevStatic = v
	}
	if v, ok := getEnvBool("PMT_COOKIE_SECURE"); ok {
		c.Server.CookieSecure = v
	}
	if v := strings.TrimSpace(os.Getenv("PMT_GANTT_START")); v != "" {
		c.Gantt.Start = v
	}
	if v := getEnvInt("PMT_GANTT_DAYS"); v > 0 {
		c.Gantt.DaysInView = v
	}
	if v := getEnvInt("PMT_SESSION_IDLE_MINUTES"); v > 0 {
		c.Session.IdleMinutes = v
	}
	if v := strings.TrimSpace(os.Getenv("PMT_SITE_ORIGINS")); v != "" {
		c.Site.AllowedOrigins = splitList(v)
	}
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func getEnvBool(key string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes":
		return true, true
	case "0", "false", "no":
		return false, true
	default:
		return false, false
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
