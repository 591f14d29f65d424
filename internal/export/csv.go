// Package export writes measurement history to CSV and PDF reports and can
// deliver them to a remote SFTP drop box.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/amani1505/tailoring-bridge/internal/api"
)

var csvHeader = []string{
	"id", "user_id", "height",
	"chest", "waist", "hip",
	"shoulder_width", "sleeve_length", "upper_arm_length",
	"neck", "inseam", "torso_length",
	"bicep", "wrist", "thigh",
	"created_at",
}

// WriteCSV writes measurement history as CSV, one row per measurement
func WriteCSV(w io.Writer, measurements []api.Measurement) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, m := range measurements {
		row := []string{
			m.ID,
			m.UserID,
			formatCm(m.Height),
			formatCm(m.ChestCircumference),
			formatCm(m.WaistCircumference),
			formatCm(m.HipCircumference),
			formatCm(m.ShoulderWidth),
			formatCm(m.SleeveLength),
			formatCm(m.UpperArmLength),
			formatCm(m.NeckCircumference),
			formatCm(m.Inseam),
			formatCm(m.TorsoLength),
			formatCm(m.BicepCircumference),
			formatCm(m.WristCircumference),
			formatCm(m.ThighCircumference),
			m.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatCm(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
