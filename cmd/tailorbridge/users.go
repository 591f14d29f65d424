package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/amani1505/tailoring-bridge/internal/api"
)

func newRegisterCmd() *cobra.Command {
	var req api.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new customer and start a session as them",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}

			user, err := a.api.CreateUser(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("register user: %w", err)
			}
			if err := a.sess.Begin(user); err != nil {
				return fmt.Errorf("start session: %w", err)
			}

			fmt.Printf("Registered %s %s (%s)\n", user.FirstName, user.LastName, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "customer first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "customer last name")
	cmd.Flags().StringVar(&req.Email, "email", "", "customer email")
	cmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "customer phone number")
	cmd.Flags().StringVar(&req.Gender, "gender", "", "male or female")
	cmd.Flags().Float64Var(&req.Height, "height", 0, "height in cm")
	cmd.Flags().Float64Var(&req.Weight, "weight", 0, "weight in kg")
	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("last-name")
	cmd.MarkFlagRequired("email")

	return cmd
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <user-id>",
		Short: "Start a session as an existing customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}

			user, err := a.api.GetUser(cmd.Context(), args[0])
			if err != nil {
				if api.IsNotFound(err) {
					return fmt.Errorf("user %s not found", args[0])
				}
				return err
			}
			if err := a.sess.Begin(user); err != nil {
				return err
			}

			fmt.Printf("Logged in as %s %s\n", user.FirstName, user.LastName)
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			if err := a.sess.Clear(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}

			user, err := a.sess.Current()
			if err != nil {
				return err
			}
			return printJSON(user)
		},
	}
}

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage customers",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all customers",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := buildApp()
				if err != nil {
					return err
				}
				users, err := a.api.ListUsers(cmd.Context())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tEMAIL\tHEIGHT")
				for _, u := range users {
					fmt.Fprintf(w, "%s\t%s %s\t%s\t%.1f\n", u.ID, u.FirstName, u.LastName, u.Email, u.Height)
				}
				return w.Flush()
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one customer",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := buildApp()
				if err != nil {
					return err
				}
				user, err := a.api.GetUser(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(user)
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a customer",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := buildApp()
				if err != nil {
					return err
				}
				if err := a.api.DeleteUser(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Println("Deleted", args[0])
				return nil
			},
		},
	)

	return cmd
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
