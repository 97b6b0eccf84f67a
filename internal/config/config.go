package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/platyfa/platyfa-api/internal/security"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values. Secrets are expected to
// arrive through the environment in deployments.
const (
	EnvDatabase     = "PLATYFA_DATABASE"
	EnvJWTSecret    = "PLATYFA_JWT_SECRET"
	EnvSMTPPassword = "PLATYFA_SMTP_PASSWORD"
	EnvPort         = "PORT"
)

// Duration wraps time.Duration so YAML values like "2s" or "500ms" decode.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(value.Value))
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// SMTPConfig holds outbound mail settings. Mail is disabled when the host or
// credentials are empty.
type SMTPConfig struct {
	Host       string `yaml:"host"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	From       string `yaml:"from"`
	SkipVerify bool   `yaml:"skip-verify"`
}

// LogConfig holds logging settings. File is optional; when set, output
// rotates through it.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Config is the process-wide configuration, fixed at startup and read-only
// thereafter.
type Config struct {
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`

	JWT        JWTConfig `yaml:"jwt"`
	BcryptCost int       `yaml:"bcrypt-cost"`

	// ClientURL is the SPA origin used to build password-reset links.
	ClientURL string `yaml:"client-url"`

	// PromoSendDelay is the pause between promotional emails, respecting the
	// mail provider's rate limit.
	PromoSendDelay Duration `yaml:"promo-send-delay"`

	SMTP SMTPConfig `yaml:"smtp"`
	Log  LogConfig  `yaml:"log"`
}

// Load reads the YAML config file at path, applies defaults and environment
// overrides, and validates the result. An empty path yields a config built
// from defaults and environment only.
func Load(path string) (Config, error) {
	cfg := defaults()

	if strings.TrimSpace(path) != "" {
		data, errRead := os.ReadFile(path)
		if errRead != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, errRead)
		}
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, errUnmarshal)
		}
	}

	applyEnv(&cfg)

	if errValidate := cfg.validate(); errValidate != nil {
		return Config{}, errValidate
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Port:           3000,
		Database:       "file:platyfa.db",
		BcryptCost:     security.DefaultBcryptCost,
		PromoSendDelay: Duration(2 * time.Second),
		Log:            LogConfig{Level: "info"},
	}
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvDatabase)); v != "" {
		cfg.Database = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvJWTSecret)); v != "" {
		cfg.JWT.Secret = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSMTPPassword)); v != "" {
		cfg.SMTP.Password = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPort)); v != "" {
		if port, errParse := strconv.Atoi(v); errParse == nil && port > 0 {
			cfg.Port = port
		}
	}
}

// validate rejects configurations the server cannot run with. A missing JWT
// secret is a startup error rather than a per-request one.
func (c Config) validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return fmt.Errorf("config: jwt secret is required (set jwt.secret or %s)", EnvJWTSecret)
	}
	if strings.TrimSpace(c.Database) == "" {
		return fmt.Errorf("config: database dsn is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Port)
	}
	if c.PromoSendDelay < 0 {
		return fmt.Errorf("config: promo-send-delay cannot be negative")
	}
	return nil
}
