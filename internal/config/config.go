package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"go.uber.org/zap/zapcore"

	srvErrors "github.com/tupyy/tpserve/pkg/errors"
)

const (
	ServerModeDev  = "dev"
	ServerModeProd = "prod"

	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

type Configuration struct {
	Server    Server `mapstructure:"server"`
	Admin     Admin  `mapstructure:"admin"`
	Pool      Pool   `mapstructure:"pool"`
	LogFormat string `mapstructure:"log_format" default:"console"`
	LogLevel  string `mapstructure:"log_level" default:"info"`
}

// Server configures the static file listener.
type Server struct {
	Address      string        `mapstructure:"address" default:"127.0.0.1:1560"`
	WebRoot      string        `mapstructure:"web_root" default:"./web"`
	IndexPage    string        `mapstructure:"index_page" default:"hello.html"`
	NotFoundPage string        `mapstructure:"not_found_page" default:"404.html"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" default:"10s"`
}

// Admin configures the optional admin API (health, pool stats, metrics).
type Admin struct {
	Enabled  bool   `mapstructure:"enabled" default:"false"`
	Mode     string `mapstructure:"mode" default:"dev"`
	HTTPPort int    `mapstructure:"http_port" default:"8000"`
}

type Pool struct {
	Workers     int           `mapstructure:"workers" default:"4"`
	IdleBackoff time.Duration `mapstructure:"idle_backoff" default:"10ms"`
}

// NewConfigurationWithDefaults returns a configuration with every field set
// to its default value.
func NewConfigurationWithDefaults() (*Configuration, error) {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply configuration defaults: %w", err)
	}
	return cfg, nil
}

func (c *Configuration) Validate() error {
	if c.Pool.Workers < 1 {
		return srvErrors.NewInvalidConfigurationError("pool.workers", "must be at least 1")
	}
	if c.Pool.IdleBackoff <= 0 {
		return srvErrors.NewInvalidConfigurationError("pool.idle_backoff", "must be positive")
	}
	if _, _, err := net.SplitHostPort(c.Server.Address); err != nil {
		return srvErrors.NewInvalidConfigurationError("server.address", err.Error())
	}
	if c.Server.WebRoot == "" {
		return srvErrors.NewInvalidConfigurationError("server.web_root", "must not be empty")
	}
	if c.Server.IndexPage == "" || strings.ContainsRune(c.Server.IndexPage, '/') {
		return srvErrors.NewInvalidConfigurationError("server.index_page", "must be a file name")
	}
	if c.Server.NotFoundPage == "" || strings.ContainsRune(c.Server.NotFoundPage, '/') {
		return srvErrors.NewInvalidConfigurationError("server.not_found_page", "must be a file name")
	}
	if c.Server.ReadTimeout < 0 {
		return srvErrors.NewInvalidConfigurationError("server.read_timeout", "must not be negative")
	}
	switch c.Admin.Mode {
	case ServerModeDev, ServerModeProd:
	default:
		return srvErrors.NewInvalidConfigurationError("admin.mode", fmt.Sprintf("unknown mode %q", c.Admin.Mode))
	}
	if c.Admin.Enabled && (c.Admin.HTTPPort < 1 || c.Admin.HTTPPort > 65535) {
		return srvErrors.NewInvalidConfigurationError("admin.http_port", "must be between 1 and 65535")
	}
	switch c.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		return srvErrors.NewInvalidConfigurationError("log_format", fmt.Sprintf("unknown format %q", c.LogFormat))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return srvErrors.NewInvalidConfigurationError("log_level", err.Error())
	}
	return nil
}

// DebugMap flattens the configuration for structured logging.
func (c *Configuration) DebugMap() map[string]any {
	return map[string]any{
		"server.address":        c.Server.Address,
		"server.web_root":       c.Server.WebRoot,
		"server.index_page":     c.Server.IndexPage,
		"server.not_found_page": c.Server.NotFoundPage,
		"server.read_timeout":   c.Server.ReadTimeout.String(),
		"admin.enabled":         c.Admin.Enabled,
		"admin.mode":            c.Admin.Mode,
		"admin.http_port":       c.Admin.HTTPPort,
		"pool.workers":          c.Pool.Workers,
		"pool.idle_backoff":     c.Pool.IdleBackoff.String(),
		"log_format":            c.LogFormat,
		"log_level":             c.LogLevel,
	}
}
