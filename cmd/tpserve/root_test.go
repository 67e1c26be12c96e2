package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tupyy/tpserve/internal/config"
	srvErrors "github.com/tupyy/tpserve/pkg/errors"
)

var _ = Describe("loadConfiguration", func() {
	var fs *pflag.FlagSet

	BeforeEach(func() {
		fs = pflag.NewFlagSet("test", pflag.ContinueOnError)
		Expect(registerFlags(fs)).To(Succeed())
	})

	writeTemp := func(name, content string) string {
		path := filepath.Join(GinkgoT().TempDir(), name)
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
		return path
	}

	It("should return defaults when nothing is set", func() {
		cfg, err := loadConfiguration(viper.New(), fs, "", "")
		Expect(err).NotTo(HaveOccurred())

		expected, err := config.NewConfigurationWithDefaults()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(expected))
	})

	It("should read a YAML config file", func() {
		path := writeTemp("tpserve.yaml", `
server:
  address: 0.0.0.0:9000
  read_timeout: 3s
pool:
  workers: 8
log_format: json
`)

		cfg, err := loadConfiguration(viper.New(), fs, path, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Server.Address).To(Equal("0.0.0.0:9000"))
		Expect(cfg.Server.ReadTimeout).To(Equal(3 * time.Second))
		Expect(cfg.Pool.Workers).To(Equal(8))
		Expect(cfg.LogFormat).To(Equal(config.LogFormatJSON))
		Expect(cfg.Server.IndexPage).To(Equal("hello.html"))
	})

	It("should let the environment override the config file", func() {
		path := writeTemp("tpserve.yaml", "pool:\n  workers: 8\n")
		GinkgoT().Setenv("TPSERVE_POOL_WORKERS", "6")
		GinkgoT().Setenv("TPSERVE_ADMIN_ENABLED", "true")

		cfg, err := loadConfiguration(viper.New(), fs, path, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Pool.Workers).To(Equal(6))
		Expect(cfg.Admin.Enabled).To(BeTrue())
	})

	It("should let flags override the environment", func() {
		GinkgoT().Setenv("TPSERVE_POOL_WORKERS", "6")
		Expect(fs.Parse([]string{"-w", "2", "--idle-backoff", "25ms"})).To(Succeed())

		cfg, err := loadConfiguration(viper.New(), fs, "", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Pool.Workers).To(Equal(2))
		Expect(cfg.Pool.IdleBackoff).To(Equal(25 * time.Millisecond))
	})

	It("should load variables from an env file", func() {
		path := writeTemp(".env", "TPSERVE_SERVER_WEB_ROOT=/srv/www\n")
		DeferCleanup(os.Unsetenv, "TPSERVE_SERVER_WEB_ROOT")

		cfg, err := loadConfiguration(viper.New(), fs, "", path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Server.WebRoot).To(Equal("/srv/www"))
	})

	It("should fail on a missing env file", func() {
		_, err := loadConfiguration(viper.New(), fs, "", filepath.Join(GinkgoT().TempDir(), "missing.env"))
		Expect(err).To(HaveOccurred())
	})

	It("should fail on a missing config file", func() {
		_, err := loadConfiguration(viper.New(), fs, filepath.Join(GinkgoT().TempDir(), "missing.yaml"), "")
		Expect(err).To(HaveOccurred())
	})

	It("should reject an invalid configuration", func() {
		Expect(fs.Parse([]string{"--workers", "0"})).To(Succeed())

		_, err := loadConfiguration(viper.New(), fs, "", "")
		Expect(srvErrors.IsInvalidConfigurationError(err)).To(BeTrue())
	})
})

var _ = Describe("newLogger", func() {
	It("should build a logger for each format", func() {
		cfg, err := config.NewConfigurationWithDefaults()
		Expect(err).NotTo(HaveOccurred())

		for _, format := range []string{config.LogFormatConsole, config.LogFormatJSON} {
			cfg.LogFormat = format
			logger, err := newLogger(cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(logger).NotTo(BeNil())
		}
	})

	It("should reject an unknown level", func() {
		cfg, err := config.NewConfigurationWithDefaults()
		Expect(err).NotTo(HaveOccurred())
		cfg.LogLevel = "loud"

		_, err = newLogger(cfg)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("version command", func() {
	It("should print the version", func() {
		var out bytes.Buffer
		cmd := newRootCommand()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"version"})

		Expect(cmd.Execute()).To(Succeed())
		Expect(out.String()).To(ContainSubstring(version))
	})
})

var _ = Describe("run", func() {
	It("should start and stop cleanly when the context is cancelled", func() {
		cfg, err := config.NewConfigurationWithDefaults()
		Expect(err).NotTo(HaveOccurred())
		cfg.Server.Address = "127.0.0.1:0"
		cfg.Server.WebRoot = GinkgoT().TempDir()
		cfg.Admin.Enabled = true
		cfg.Admin.HTTPPort = 0
		cfg.Pool.Workers = 2

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() {
			errCh <- run(ctx, cfg)
		}()

		Consistently(errCh, 100*time.Millisecond).ShouldNot(Receive())
		cancel()
		Eventually(errCh, 5*time.Second).Should(Receive(BeNil()))
	})

	It("should fail on an invalid listen address", func() {
		cfg, err := config.NewConfigurationWithDefaults()
		Expect(err).NotTo(HaveOccurred())
		cfg.Server.Address = "127.0.0.1:notaport"

		Expect(run(context.Background(), cfg)).NotTo(Succeed())
	})
})
