package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/amani1505/tailoring-bridge/internal/api"
	"github.com/amani1505/tailoring-bridge/internal/config"
)

func sampleMeasurements() []api.Measurement {
	return []api.Measurement{
		{
			ID:                 "m1",
			UserID:             "u1",
			Height:             175.0,
			ChestCircumference: 98.5,
			WaistCircumference: 82.3,
			HipCircumference:   96.0,
			ShoulderWidth:      45.2,
			SleeveLength:       61.0,
			UpperArmLength:     33.4,
			NeckCircumference:  38.1,
			Inseam:             78.9,
			TorsoLength:        52.7,
			BicepCircumference: 31.5,
			WristCircumference: 17.2,
			ThighCircumference: 55.8,
			CreatedAt:          time.Date(2025, 5, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:        "m2",
			UserID:    "u1",
			Height:    175.0,
			CreatedAt: time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC),
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleMeasurements()); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Generated CSV does not parse: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d records", len(records))
	}
	if records[0][0] != "id" || records[0][1] != "user_id" {
		t.Errorf("Unexpected header: %v", records[0])
	}
	if len(records[1]) != len(csvHeader) {
		t.Errorf("Row width %d does not match header width %d", len(records[1]), len(csvHeader))
	}
	if records[1][0] != "m1" {
		t.Errorf("Expected first row m1, got %s", records[1][0])
	}
	if records[1][3] != "98.5" {
		t.Errorf("Expected chest 98.5, got %s", records[1][3])
	}
	if records[1][15] != "2025-05-10T09:30:00Z" {
		t.Errorf("Expected RFC3339 created_at, got %s", records[1][15])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "id,user_id") {
		t.Errorf("Expected header-only output, got %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	user := &api.User{ID: "u1", FirstName: "Amina", LastName: "Juma"}

	if err := WriteJSON(&buf, user, sampleMeasurements()); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var report struct {
		Count        int               `json:"count"`
		User         *api.User         `json:"user"`
		Measurements []api.Measurement `json:"measurements"`
	}
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("Generated JSON does not parse: %v", err)
	}
	if report.Count != 2 || len(report.Measurements) != 2 {
		t.Errorf("Expected 2 measurements, got count=%d len=%d", report.Count, len(report.Measurements))
	}
	if report.User == nil || report.User.ID != "u1" {
		t.Errorf("Expected user in report, got %+v", report.User)
	}
	if report.Measurements[0].ChestCircumference != 98.5 {
		t.Errorf("Measurement values not preserved: %+v", report.Measurements[0])
	}
}

func TestBuildReportJSON(t *testing.T) {
	user := &api.User{ID: "u1", FirstName: "Amina", LastName: "Juma"}

	decl, err := buildReportJSON(user, sampleMeasurements())
	if err != nil {
		t.Fatalf("buildReportJSON failed: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(decl, &parsed); err != nil {
		t.Fatalf("Declaration does not parse as JSON: %v", err)
	}
	if _, ok := parsed["pages"]; !ok {
		t.Error("Expected pages key in declaration")
	}

	text := string(decl)
	if !strings.Contains(text, "Amina Juma") {
		t.Error("Expected customer name in report")
	}
	if !strings.Contains(text, "98.5") {
		t.Error("Expected measurement values in report")
	}
	if !strings.Contains(text, "2025-05-10") {
		t.Error("Expected measurement date in report")
	}
}

func TestNewDelivererValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.SFTP
	}{
		{"missing host", config.SFTP{Username: "u", Password: "p"}},
		{"missing username", config.SFTP{Host: "drop.example", Password: "p"}},
		{"missing password", config.SFTP{Host: "drop.example", Username: "u"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewDeliverer(tt.cfg); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestNewDelivererDefaultPort(t *testing.T) {
	d, err := NewDeliverer(config.SFTP{Host: "drop.example", Username: "u", Password: "p"})
	if err != nil {
		t.Fatalf("NewDeliverer failed: %v", err)
	}
	if d.config.Port != 22 {
		t.Errorf("Expected default port 22, got %d", d.config.Port)
	}
}
