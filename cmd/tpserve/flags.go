package main

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tupyy/tpserve/internal/config"
)

const envPrefix = "TPSERVE"

// flagKeys maps configuration keys to the flags that override them.
var flagKeys = map[string]string{
	"server.address":        "address",
	"server.web_root":       "web-root",
	"server.index_page":     "index-page",
	"server.not_found_page": "not-found-page",
	"server.read_timeout":   "read-timeout",
	"admin.enabled":         "admin",
	"admin.mode":            "admin-mode",
	"admin.http_port":       "admin-port",
	"pool.workers":          "workers",
	"pool.idle_backoff":     "idle-backoff",
	"log_format":            "log-format",
	"log_level":             "log-level",
}

func registerFlags(fs *pflag.FlagSet) error {
	d, err := config.NewConfigurationWithDefaults()
	if err != nil {
		return err
	}

	fs.String("address", d.Server.Address, "Address the static server listens on")
	fs.String("web-root", d.Server.WebRoot, "Directory files are served from")
	fs.String("index-page", d.Server.IndexPage, "File served for /")
	fs.String("not-found-page", d.Server.NotFoundPage, "File served with 404 responses")
	fs.Duration("read-timeout", d.Server.ReadTimeout, "Deadline for reading a request and writing its response")
	fs.Bool("admin", d.Admin.Enabled, "Enable the admin API and metrics endpoint")
	fs.String("admin-mode", d.Admin.Mode, "Admin server mode: dev or prod")
	fs.Int("admin-port", d.Admin.HTTPPort, "Admin server port")
	fs.IntP("workers", "w", d.Pool.Workers, "Number of pool workers")
	fs.Duration("idle-backoff", d.Pool.IdleBackoff, "How long an idle worker sleeps before looking for work again")
	fs.String("log-format", d.LogFormat, "Log format: console or json")
	fs.String("log-level", d.LogLevel, "Log level: debug, info, warn or error")

	return nil
}

// loadConfiguration merges, from lowest to highest precedence: defaults,
// configFile, envFile, the TPSERVE_* environment and flags set on fs.
func loadConfiguration(v *viper.Viper, fs *pflag.FlagSet, configFile, envFile string) (*config.Configuration, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, name := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	cfg, err := config.NewConfigurationWithDefaults()
	if err != nil {
		return nil, err
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
