package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	pdf "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/amani1505/tailoring-bridge/internal/api"
)

// WritePDF renders a measurement report for one user as a PDF file.
// The layout is declared as pdfcpu create JSON and rendered from that.
func WritePDF(outPath string, user *api.User, measurements []api.Measurement) error {
	decl, err := buildReportJSON(user, measurements)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	tmp, err := os.CreateTemp("", "tailorbridge-report-*.json")
	if err != nil {
		return fmt.Errorf("create report declaration: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(decl); err != nil {
		tmp.Close()
		return fmt.Errorf("write report declaration: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := pdf.CreateFile("", tmp.Name(), outPath, model.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("render PDF: %w", err)
	}
	return nil
}

// buildReportJSON produces the pdfcpu create declaration for the report:
// a header with the customer name and one text block per measurement set.
func buildReportJSON(user *api.User, measurements []api.Measurement) ([]byte, error) {
	var lines []string
	lines = append(lines, "Measurement Report")
	if user != nil {
		lines = append(lines, fmt.Sprintf("Customer: %s %s", user.FirstName, user.LastName))
	}
	lines = append(lines, fmt.Sprintf("Generated: %s", time.Now().UTC().Format("2006-01-02 15:04 UTC")))
	lines = append(lines, "")

	for _, m := range measurements {
		lines = append(lines,
			fmt.Sprintf("Taken %s", m.CreatedAt.Format("2006-01-02")),
			fmt.Sprintf("  Height %.1f cm    Chest %.1f cm    Waist %.1f cm", m.Height, m.ChestCircumference, m.WaistCircumference),
			fmt.Sprintf("  Hip %.1f cm    Shoulder %.1f cm    Sleeve %.1f cm", m.HipCircumference, m.ShoulderWidth, m.SleeveLength),
			fmt.Sprintf("  Neck %.1f cm    Inseam %.1f cm    Torso %.1f cm", m.NeckCircumference, m.Inseam, m.TorsoLength),
			fmt.Sprintf("  Bicep %.1f cm    Wrist %.1f cm    Thigh %.1f cm", m.BicepCircumference, m.WristCircumference, m.ThighCircumference),
			"",
		)
	}

	type textBox struct {
		Value    string  `json:"value"`
		Position []int   `json:"position"`
		Font     fontDef `json:"font"`
	}

	boxes := make([]textBox, 0, len(lines))
	y := 780
	for i, line := range lines {
		size := 9
		if i == 0 {
			size = 16
		}
		boxes = append(boxes, textBox{
			Value:    line,
			Position: []int{40, y},
			Font:     fontDef{Name: "Helvetica", Size: size},
		})
		y -= size + 5
	}

	decl := map[string]interface{}{
		"pages": map[string]interface{}{
			"1": map[string]interface{}{
				"content": map[string]interface{}{
					"text": boxes,
				},
			},
		},
	}
	return json.MarshalIndent(decl, "", "  ")
}

type fontDef struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}
