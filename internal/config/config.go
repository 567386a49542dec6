package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

type Config struct {
	Version string        `yaml:"version" json:"version"`
	Server  ServerConfig  `yaml:"server" json:"server"`
	Log     LogConfig     `yaml:"log" json:"log"`
	UI      UIConfig      `yaml:"ui" json:"ui"`
	Gantt   GanttConfig   `yaml:"gantt" json:"gantt"`
	Timer   TimerConfig   `yaml:"timer" json:"timer"`
	Session SessionConfig `yaml:"session" json:"session"`
	Site    SiteConfig    `yaml:"site" json:"site"`
}

type ServerConfig struct {
	Addr            string `yaml:"addr" json:"addr"`
	DevStatic       bool   `yaml:"dev_static" json:"dev_static"`
	StaticDir       string `yaml:"static_dir" json:"static_dir"`
	CookieSecure    bool   `yaml:"cookie_secure" json:"cookie_secure"`
	ShutdownTimeout int    `yaml:"shutdown_timeout_seconds" json:"shutdown_timeout_seconds"`
}

type LogConfig struct {
	Level       string `yaml:"level" json:"level"`
	Development bool   `yaml:"development" json:"development"`
}

type UIConfig struct {
	Sidebar SidebarConfig `yaml:"sidebar" json:"sidebar"`
}

type SidebarConfig struct {
	Collapsed bool `yaml:"collapsed" json:"collapsed"`
}

type GanttConfig struct {
	// Start is the first day of the timeline, formatted 2006-01-02.
	Start      string `yaml:"start" json:"start"`
	DaysInView int    `yaml:"days_in_view" json:"days_in_view"`
	IndentPx   int    `yaml:"indent_px" json:"indent_px"`
}

type TimerConfig struct {
	TickSeconds int `yaml:"tick_seconds" json:"tick_seconds"`
}

// SessionConfig bounds how long per-visitor state outlives the last request.
type SessionConfig struct {
	IdleMinutes  int `yaml:"idle_minutes" json:"idle_minutes"`
	SweepSeconds int `yaml:"sweep_seconds" json:"sweep_seconds"`
}

type SiteConfig struct {
	ThemeCookie    string   `yaml:"theme_cookie" json:"theme_cookie"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
}

func (s *ServerConfig) ApplyDefaults() {
	if s.Addr == "" {
		s.Addr = ":8080"
	}
	if s.StaticDir == "" {
		s.StaticDir = "static"
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = 10
	}
}

func (l *LogConfig) ApplyDefaults() {
	if l.Level == "" {
		l.Level = "info"
	}
}

func (g *GanttConfig) ApplyDefaults() {
	if g.Start == "" {
		g.Start = "2025-12-01"
	}
	if g.DaysInView == 0 {
		g.DaysInView = 31
	}
	if g.IndentPx == 0 {
		g.IndentPx = 20
	}
}

// StartTime parses Start in loc.
func (g GanttConfig) StartTime(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dateLayout, g.Start, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("gantt start %q: %w", g.Start, err)
	}
	return t, nil
}

func (t *TimerConfig) ApplyDefaults() {
	if t.TickSeconds == 0 {
		t.TickSeconds = 1
	}
}

func (t TimerConfig) Interval() time.Duration {
	return time.Duration(t.TickSeconds) * time.Second
}

func (s *SessionConfig) ApplyDefaults() {
	if s.IdleMinutes == 0 {
		s.IdleMinutes = 120
	}
	if s.SweepSeconds == 0 {
		s.SweepSeconds = 60
	}
}

func (s SessionConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleMinutes) * time.Minute
}

func (s SessionConfig) SweepInterval() time.Duration {
	return time.Duration(s.SweepSeconds) * time.Second
}

func (s *SiteConfig) ApplyDefaults() {
	if s.ThemeCookie == "" {
		s.ThemeCookie = "theme"
	}
}

func (c *Config) ApplyDefaults() {
	c.Server.ApplyDefaults()
	c.Log.ApplyDefaults()
	c.Gantt.ApplyDefaults()
	c.Timer.ApplyDefaults()
	c.Session.ApplyDefaults()
	c.Site.ApplyDefaults()
}

func (c *Config) Validate() error {
	if _, err := c.Gantt.StartTime(time.UTC); err != nil {
		return err
	}
	if c.Gantt.DaysInView < 1 {
		return fmt.Errorf("gantt days_in_view must be positive, got %d", c.Gantt.DaysInView)
	}
	if c.Timer.TickSeconds < 1 {
		return fmt.Errorf("timer tick_seconds must be positive, got %d", c.Timer.TickSeconds)
	}
	if c.Session.IdleMinutes < 1 || c.Session.SweepSeconds < 1 {
		return fmt.Errorf("session idle_minutes and sweep_seconds must be positive, got %d and %d", c.Session.IdleMinutes, c.Session.SweepSeconds)
	}
	return nil
}

func Default() *Config {
	var c Config
	c.ApplyDefaults()
	return &c
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	r.ApplyDefaults()
	return &r, nil
}

// LoadOptional is Load, falling back to defaults when the file is absent.
func LoadOptional(path string) (*Config, error) {
	c, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return c, err
}
