package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/amani1505/tailoring-bridge/internal/api"
)

func newMeasurementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "measurements",
		Aliases: []string{"m"},
		Short:   "Browse measurement history",
	}

	var userID string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List measurements, optionally for one customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}

			measurements, err := listMeasurements(cmd, a, userID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSER\tCHEST\tWAIST\tHIP\tTAKEN")
			for _, m := range measurements {
				fmt.Fprintf(w, "%s\t%s\t%.1f\t%.1f\t%.1f\t%s\n",
					m.ID, m.UserID,
					m.ChestCircumference, m.WaistCircumference, m.HipCircumference,
					m.CreatedAt.Format("2006-01-02"))
			}
			return w.Flush()
		},
	}
	listCmd.Flags().StringVar(&userID, "user", "", "filter by user ID (default: session user if logged in)")

	cmd.AddCommand(
		listCmd,
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one measurement set",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := buildApp()
				if err != nil {
					return err
				}
				m, err := a.api.GetMeasurement(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(m)
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a measurement set",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := buildApp()
				if err != nil {
					return err
				}
				if err := a.api.DeleteMeasurement(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Println("Deleted", args[0])
				return nil
			},
		},
	)

	return cmd
}

// listMeasurements resolves the user filter: explicit flag, else session
// user, else everything
func listMeasurements(cmd *cobra.Command, a *app, userID string) ([]api.Measurement, error) {
	if userID == "" {
		if user, err := a.sess.Current(); err == nil {
			userID = user.ID
		}
	}
	if userID != "" {
		return a.api.ListMeasurementsByUser(cmd.Context(), userID)
	}
	return a.api.ListMeasurements(cmd.Context())
}

func newTailorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tailors",
		Short: "Manage tailor shops",
	}

	var tailor api.Tailor
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Register a tailor shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			created, err := a.api.CreateTailor(cmd.Context(), tailor)
			if err != nil {
				return err
			}
			return printJSON(created)
		},
	}
	addCmd.Flags().StringVar(&tailor.Name, "name", "", "tailor name")
	addCmd.Flags().StringVar(&tailor.ShopName, "shop", "", "shop name")
	addCmd.Flags().StringVar(&tailor.Email, "email", "", "contact email")
	addCmd.Flags().StringVar(&tailor.PhoneNumber, "phone", "", "contact phone")
	addCmd.Flags().StringVar(&tailor.Location, "location", "", "shop location")
	addCmd.MarkFlagRequired("name")

	cmd.AddCommand(
		addCmd,
		&cobra.Command{
			Use:   "list",
			Short: "List tailor shops",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := buildApp()
				if err != nil {
					return err
				}
				tailors, err := a.api.ListTailors(cmd.Context())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tSHOP\tLOCATION")
				for _, t := range tailors {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Name, t.ShopName, t.Location)
				}
				return w.Flush()
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a tailor shop",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := buildApp()
				if err != nil {
					return err
				}
				if err := a.api.DeleteTailor(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Println("Deleted", args[0])
				return nil
			},
		},
	)

	return cmd
}
