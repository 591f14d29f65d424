package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/amani1505/tailoring-bridge/internal/outcome"
	"github.com/amani1505/tailoring-bridge/internal/upload"
)

func newUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload measurement photos",
	}

	cmd.AddCommand(newUploadProcessCmd(), newUploadImageCmd())
	return cmd
}

func newUploadProcessCmd() *cobra.Command {
	var req upload.ProcessRequest

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Upload front and side photos for measurement extraction",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}

			// The session user fills in whatever the flags left out
			if req.UserID == "" || req.Height == "" || req.Gender == "" {
				user, err := a.sess.Current()
				if err != nil {
					return fmt.Errorf("no --user given and %w", err)
				}
				if req.UserID == "" {
					req.UserID = user.ID
				}
				if req.Height == "" && user.Height > 0 {
					req.Height = strconv.FormatFloat(user.Height, 'f', -1, 64)
				}
				if req.Gender == "" {
					req.Gender = user.Gender
				}
			}
			if req.Height == "" || req.Gender == "" {
				return fmt.Errorf("height and gender are required, via flags or the user profile")
			}

			a.checkClock()
			result := a.executor.ProcessMeasurement(cmd.Context(), req)
			return reportOutcome(result)
		},
	}

	cmd.Flags().StringVar(&req.FrontImage, "front", "", "front photo path")
	cmd.Flags().StringVar(&req.SideImage, "side", "", "side photo path")
	cmd.Flags().StringVar(&req.UserID, "user", "", "user ID (default: session user)")
	cmd.Flags().StringVar(&req.Height, "height", "", "height in cm (default: user profile)")
	cmd.Flags().StringVar(&req.Gender, "gender", "", "male or female (default: user profile)")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "free-form notes for the tailor")
	cmd.MarkFlagRequired("front")
	cmd.MarkFlagRequired("side")

	return cmd
}

func newUploadImageCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "image <path>",
		Short: "Upload a single photo without measurement processing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}

			if userID == "" {
				user, err := a.sess.Current()
				if err != nil {
					return fmt.Errorf("no --user given and %w", err)
				}
				userID = user.ID
			}

			a.checkClock()
			result := a.executor.UploadImage(cmd.Context(), args[0], userID)
			return reportOutcome(result)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user ID (default: session user)")
	return cmd
}

// reportOutcome prints the outcome and the recommended next step. Cached
// failures exit cleanly since the retry worker will finish the job.
func reportOutcome(result outcome.UploadOutcome) error {
	if result.Status == outcome.Success {
		fmt.Println("Upload succeeded")
		if len(result.Payload) > 0 {
			return printJSON(result.Payload)
		}
		return nil
	}

	cached := ""
	if id, ok := result.Payload["cachedId"]; ok {
		cached = fmt.Sprintf("Saved for retry as %v. Run 'tailorbridge retry' when back online.", id)
	}

	switch outcome.StrategyFor(result) {
	case outcome.RetryAlternate:
		fmt.Printf("%s: %s\n", result.Status, result.Message)
		fmt.Println("The processing endpoint is down; 'tailorbridge upload image' may still work.")
		if cached != "" {
			fmt.Println(cached)
			return nil
		}
		return fmt.Errorf("%s: %s", result.Status, result.Message)
	case outcome.RetryImmediate:
		fmt.Printf("%s: %s\n", result.Status, result.Message)
		fmt.Println("The request timed out; an immediate retry may succeed.")
		if cached != "" {
			fmt.Println(cached)
			return nil
		}
		return fmt.Errorf("%s: %s", result.Status, result.Message)
	case outcome.RetryCache:
		if cached != "" {
			fmt.Printf("%s: %s\n%s\n", result.Status, result.Message, cached)
			return nil
		}
		return fmt.Errorf("%s: %s", result.Status, result.Message)
	default:
		return fmt.Errorf("%s: %s", result.Status, result.Message)
	}
}
