package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amani1505/tailoring-bridge/internal/logger"
	"github.com/amani1505/tailoring-bridge/internal/update"
)

func newRetryCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "retry",
		Short: "Replay uploads saved while offline",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}

			if a.cache.Count() == 0 && !watch {
				fmt.Println("Nothing pending")
				return nil
			}

			a.checkClock()
			worker := a.retryWorker()

			if watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				worker.Drain(ctx)
				worker.Run(ctx)
				return nil
			}

			succeeded := worker.Drain(cmd.Context())
			remaining := a.cache.Count()
			fmt.Printf("Replayed %d, %d still pending\n", succeeded, remaining)
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "keep draining on an interval until interrupted")
	return cmd
}

func newProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Check connectivity to the measurement service",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			state := a.prober.Probe(cmd.Context())
			fmt.Println(state)
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session, cache and connectivity status",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}

			status := map[string]interface{}{
				"service":       a.cfg.Service.BaseURL,
				"connectivity":  a.prober.Probe(cmd.Context()).String(),
				"pending_cache": a.cache.GetStats(),
			}

			if user, err := a.sess.Current(); err == nil {
				status["session_user"] = fmt.Sprintf("%s %s (%s)", user.FirstName, user.LastName, user.ID)
			} else {
				status["session_user"] = nil
			}

			if a.clock != nil {
				if _, err := a.clock.Check(); err != nil {
					a.log.Warn("Clock health check failed", "error", err)
				}
				status["clock"] = a.clock.GetStatus()
			}

			var recent []string
			for _, entry := range logger.GetRecentLogs(10) {
				recent = append(recent, logger.FormatEntry(entry))
			}
			status["recent_log"] = recent

			return printJSON(status)
		},
	}
}

func newVersionCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show build version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("tailorbridge %s (%s)\n", Version, GitCommit)

			if check {
				status, err := update.NewChecker(Version).Check(cmd.Context())
				if err != nil {
					return fmt.Errorf("check for updates: %w", err)
				}
				if status.UpdateAvailable {
					fmt.Printf("Update available: %s\n%s\n", status.LatestVersion, status.LatestURL)
				} else {
					fmt.Println("Up to date")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "check GitHub for a newer release")
	return cmd
}
