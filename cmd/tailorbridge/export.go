package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/amani1505/tailoring-bridge/internal/api"
	"github.com/amani1505/tailoring-bridge/internal/export"
)

func newExportCmd() *cobra.Command {
	var (
		format  string
		userID  string
		outPath string
		deliver bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export measurement history as a CSV or PDF report",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}

			measurements, err := listMeasurements(cmd, a, userID)
			if err != nil {
				return err
			}
			if len(measurements) == 0 {
				return fmt.Errorf("no measurements to export")
			}

			var user *api.User
			if u, err := a.sess.Current(); err == nil {
				user = u
			}

			if outPath == "" {
				name := fmt.Sprintf("measurements-%s.%s", time.Now().Format("20060102-150405"), format)
				outPath = filepath.Join(a.cfg.Export.Dir, name)
			}

			switch format {
			case "csv", "json":
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				if format == "csv" {
					err = export.WriteCSV(f, measurements)
				} else {
					err = export.WriteJSON(f, user, measurements)
				}
				if err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
			case "pdf":
				if err := export.WritePDF(outPath, user, measurements); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported format %q, use csv, json or pdf", format)
			}

			fmt.Println("Wrote", outPath)

			if deliver {
				if a.cfg.Export.SFTP == nil {
					return fmt.Errorf("export.sftp is not configured")
				}
				d, err := export.NewDeliverer(*a.cfg.Export.SFTP)
				if err != nil {
					return err
				}
				data, err := os.ReadFile(outPath)
				if err != nil {
					return err
				}
				if err := d.Deliver(filepath.Base(outPath), data); err != nil {
					return fmt.Errorf("deliver report: %w", err)
				}
				fmt.Println("Delivered to", a.cfg.Export.SFTP.Host)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "csv, json or pdf")
	cmd.Flags().StringVar(&userID, "user", "", "filter by user ID (default: session user if logged in)")
	cmd.Flags().StringVar(&outPath, "out", "", "output file path")
	cmd.Flags().BoolVar(&deliver, "deliver", false, "also upload the report to the configured SFTP drop box")

	return cmd
}
