package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

type configuration struct {
	ServerAddress string
	AdminURL      string
	Timeout       time.Duration
	Clients       int
}

var cfg configuration

func (c configuration) Validate() error {
	if _, _, err := net.SplitHostPort(c.ServerAddress); err != nil {
		return fmt.Errorf("failed to parse server address: %v", err)
	}
	if c.AdminURL != "" {
		if _, err := url.Parse(c.AdminURL); err != nil {
			return fmt.Errorf("failed to parse admin url: %v", err)
		}
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.Clients < 1 {
		return errors.New("clients must be at least 1")
	}
	return nil
}

func main() {
	flag.StringVar(&cfg.ServerAddress, "server-address", "127.0.0.1:1560", "Address of the running tpserve static server")
	flag.StringVar(&cfg.AdminURL, "admin-url", "", "Base url of the admin API (admin specs are skipped when empty)")
	flag.DurationVar(&cfg.Timeout, "timeout", 5*time.Second, "Per-connection timeout")
	flag.IntVar(&cfg.Clients, "clients", 100, "Number of concurrent clients in the burst test")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("failed to validate configuration: %v", err)
	}

	RegisterFailHandler(Fail)
	if !RunSpecs(&testing.T{}, "E2E Suite") {
		os.Exit(1)
	}
}
