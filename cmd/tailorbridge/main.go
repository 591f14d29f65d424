// tailorbridge is the command line companion for the TailorMate measurement
// service: it registers customers, uploads measurement photos with offline
// resilience, and exports measurement history as reports.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/amani1505/tailoring-bridge/internal/api"
	"github.com/amani1505/tailoring-bridge/internal/cache"
	"github.com/amani1505/tailoring-bridge/internal/clock"
	"github.com/amani1505/tailoring-bridge/internal/config"
	"github.com/amani1505/tailoring-bridge/internal/image"
	"github.com/amani1505/tailoring-bridge/internal/logger"
	"github.com/amani1505/tailoring-bridge/internal/probe"
	"github.com/amani1505/tailoring-bridge/internal/retry"
	"github.com/amani1505/tailoring-bridge/internal/session"
	"github.com/amani1505/tailoring-bridge/internal/upload"
	"github.com/amani1505/tailoring-bridge/internal/validate"
)

// Build info set at compile time via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var configPath string

// app holds the wired-up components shared by the commands
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	api      *api.Client
	sess     *session.Session
	cache    *cache.Cache
	prober   *probe.Prober
	executor *upload.Executor
	clock    *clock.Health // nil unless enabled in config
}

// buildApp loads configuration and wires the component graph
func buildApp() (*app, error) {
	logger.Init()
	log := logger.Default()

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.Service.BaseURL, cfg.Service.ServiceTimeout())

	sess, err := session.Open(cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}

	c, err := cache.Open(cfg.Cache.Dir, cache.Config{
		MaxRecords: cfg.Cache.MaxRecords,
		MaxAge:     cfg.Cache.MaxAgeSeconds,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("open offline cache: %w", err)
	}

	prober := probe.New(probe.Config{
		HealthURL:      client.HealthURL(cfg.Service.HealthPath),
		InternetURL:    cfg.Probe.InternetURL,
		DNSHostname:    cfg.Probe.DNSHostname,
		HealthTimeout:  seconds(cfg.Probe.HealthTimeoutSeconds),
		ProbeTimeout:   seconds(cfg.Probe.ProbeTimeoutSeconds),
		ResolveTimeout: seconds(cfg.Probe.ResolveTimeoutSeconds),
	})

	a := &app{
		cfg:    cfg,
		log:    log,
		api:    client,
		sess:   sess,
		cache:  c,
		prober: prober,
	}

	var clk upload.ClockHealth
	if cfg.Clock.Enabled {
		a.clock = clock.NewHealth(clock.Config{
			Servers:          cfg.Clock.Servers,
			TimeoutSeconds:   cfg.Clock.TimeoutSeconds,
			MaxOffsetSeconds: cfg.Clock.MaxOffsetSeconds,
		})
		clk = a.clock
	}

	a.executor = upload.NewExecutor(
		upload.ExecutorConfig{
			BaseURL:  cfg.Service.BaseURL,
			DeviceID: cfg.Service.DeviceID,
			Timeout:  cfg.Upload.UploadTimeout(),
			Logger:   log,
		},
		validate.New(cfg.Upload.MaxFileSizeBytes()),
		prober,
		image.NewProcessor(cfg.Image),
		c,
		clk,
	)

	return a, nil
}

// retryWorker builds the cache drain worker from config
func (a *app) retryWorker() *retry.Worker {
	return retry.NewWorker(a.cache, a.executor, retry.WorkerConfig{
		Interval: seconds(a.cfg.Retry.IntervalSeconds),
		Backoff: retry.BackoffConfig{
			InitialSeconds: a.cfg.Retry.InitialSeconds,
			MaxSeconds:     a.cfg.Retry.MaxSeconds,
			Multiplier:     a.cfg.Retry.Multiplier,
			Jitter:         a.cfg.Retry.JitterEnabled(),
		},
		Logger: a.log,
	})
}

// checkClock runs a one-shot NTP check when clock health is enabled, so
// cached records carry an accurate confidence level
func (a *app) checkClock() {
	if a.clock == nil {
		return
	}
	if _, err := a.clock.Check(); err != nil {
		a.log.Warn("Clock health check failed", "error", err)
	}
}

func main() {
	root := &cobra.Command{
		Use:           "tailorbridge",
		Short:         "Command line client for the TailorMate measurement service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(),
		"path to the configuration file")

	root.AddCommand(
		newRegisterCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newUploadCmd(),
		newUsersCmd(),
		newMeasurementsCmd(),
		newTailorsCmd(),
		newExportCmd(),
		newRetryCmd(),
		newProbeCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	return filepath.Join(config.DefaultDir(), "config.json")
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
