// Package config
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/tellor-io/node-storage-monitor/internal/domain"
)

// DefaultPath is where Load looks for the config file when neither the
// -config flag nor NODE_STORAGE_MONITOR_CONFIG is set.
const DefaultPath = "storage-monitor.yaml"

const envPrefix = "NODE_STORAGE_MONITOR_"

const (
	defaultPollIntervalSeconds   = 300
	defaultRequestTimeoutSeconds = 10
	defaultCooldownSeconds       = 3600
	defaultServerName            = "Server"
)

type TargetConfig struct {
	Name            string   `yaml:"name"`
	Kind            string   `yaml:"kind"`
	Path            string   `yaml:"path"`
	Threshold       float64  `yaml:"threshold" validate:"gt=0"`
	CooldownSeconds int      `yaml:"cooldown_seconds" validate:"gte=0"`
	Exclude         []string `yaml:"exclude"`
}

type Config struct {
	ServerName            string         `yaml:"server_name"`
	WebhookURL            string         `yaml:"webhook_url" validate:"required,http_url"`
	PollIntervalSeconds   int            `yaml:"poll_interval_seconds" validate:"gte=1"`
	RequestTimeoutSeconds int            `yaml:"request_timeout_seconds" validate:"gte=1,lte=30"`
	NotifyRecovery        bool           `yaml:"notify_recovery"`
	AnnounceStartup       bool           `yaml:"announce_startup"`
	ReportSchedule        string         `yaml:"report_schedule"`
	LogLevel              string         `yaml:"log_level"`
	LogFormat             string         `yaml:"log_format"`
	Targets               []TargetConfig `yaml:"targets" validate:"min=1,dive"`
}

// Load reads, normalizes and validates the YAML config at path. An empty
// path falls back to NODE_STORAGE_MONITOR_CONFIG, then DefaultPath.
func Load(path string) (*Config, error) {
	godotenv.Load()

	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG")
	}
	if path == "" {
		path = DefaultPath
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{
		ServerName:            defaultServerName,
		PollIntervalSeconds:   defaultPollIntervalSeconds,
		RequestTimeoutSeconds: defaultRequestTimeoutSeconds,
		LogLevel:              "info",
		LogFormat:             "text",
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Environment variables override file values so a webhook URL can be kept
// out of the config file entirely.
func (c *Config) applyEnv() {
	if v := os.Getenv(envPrefix + "WEBHOOK_URL"); v != "" {
		c.WebhookURL = v
	}
	if v := os.Getenv(envPrefix + "SERVER_NAME"); v != "" {
		c.ServerName = v
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(envPrefix + "LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
}

func (c *Config) normalize() error {
	for i := range c.Targets {
		t := &c.Targets[i]

		if t.Kind == "" {
			t.Kind = string(domain.KindFilesystem)
		}
		if _, err := domain.ParseTargetKind(t.Kind); err != nil {
			return fmt.Errorf("target %d: %w", i, err)
		}

		if t.CooldownSeconds == 0 {
			t.CooldownSeconds = defaultCooldownSeconds
		}

		t.Path = expandHome(t.Path)
		for j := range t.Exclude {
			t.Exclude[j] = expandHome(t.Exclude[j])
		}

		if t.Name == "" {
			if t.Path != "" {
				t.Name = t.Path
			} else {
				t.Name = t.Kind
			}
		}
	}

	return nil
}

func (c *Config) validate() error {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.Struct(c); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("invalid config: %w", err)
		}

		msgs := make([]string, 0, len(verrs))
		for _, e := range verrs {
			msgs = append(msgs, messageFor(e))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}

	seen := make(map[string]bool, len(c.Targets))
	for _, t := range c.Targets {
		if seen[t.Name] {
			return fmt.Errorf("invalid config: duplicate target name %q", t.Name)
		}
		seen[t.Name] = true

		kind := domain.TargetKind(t.Kind)
		if kind != domain.KindJournal && t.Path == "" {
			return fmt.Errorf("invalid config: target %q: %s targets need a path", t.Name, t.Kind)
		}
		if kind == domain.KindFilesystem && t.Threshold > 100 {
			return fmt.Errorf("invalid config: target %q: filesystem threshold is a percentage, got %.1f", t.Name, t.Threshold)
		}
	}

	if c.ReportSchedule != "" {
		if _, err := cron.ParseStandard(c.ReportSchedule); err != nil {
			return fmt.Errorf("invalid config: report_schedule: %w", err)
		}
	}

	return nil
}

func messageFor(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "http_url":
		return fmt.Sprintf("%s must be an http(s) URL", e.Field())
	case "min":
		return fmt.Sprintf("%s needs at least %s entry", e.Field(), e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// BuildTargets converts the validated target entries into domain targets.
func (c *Config) BuildTargets() []domain.Target {
	targets := make([]domain.Target, 0, len(c.Targets))
	for _, t := range c.Targets {
		targets = append(targets, domain.Target{
			Name:      t.Name,
			Kind:      domain.TargetKind(t.Kind),
			Path:      t.Path,
			Threshold: t.Threshold,
			Cooldown:  time.Duration(t.CooldownSeconds) * time.Second,
			Exclude:   t.Exclude,
		})
	}
	return targets
}
