package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateUser_EnvelopeUnwrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/users" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %s, want application/json", ct)
		}

		var req CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Email != "jane@example.com" {
			t.Errorf("email = %s, want jane@example.com", req.Email)
		}

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"u1","firstName":"Jane","lastName":"Doe","email":"jane@example.com"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	user, err := client.CreateUser(context.Background(), CreateUserRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
	})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("ID = %s, want u1", user.ID)
	}
	if user.FirstName != "Jane" {
		t.Errorf("FirstName = %s, want Jane", user.FirstName)
	}
}

func TestGetUser_BareBodyFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No envelope: the client must fall back to the raw body
		w.Write([]byte(`{"id":"u2","email":"raw@example.com"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	user, err := client.GetUser(context.Background(), "u2")
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if user.ID != "u2" || user.Email != "raw@example.com" {
		t.Errorf("GetUser() = %+v, want id=u2 email=raw@example.com", user)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"user not found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	_, err := client.GetUser(context.Background(), "missing")
	if err == nil {
		t.Fatal("GetUser() expected error for 404")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound() = false for %v", err)
	}
	// Callers wrap client errors; detection must survive the wrapping
	if !IsNotFound(fmt.Errorf("load user: %w", err)) {
		t.Errorf("IsNotFound() = false for wrapped %v", err)
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error %v is not a StatusError", err)
	}
	if statusErr.Body != "user not found" {
		t.Errorf("Body = %q, want server message", statusErr.Body)
	}
}

func TestListMeasurementsByUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/measurements" {
			t.Errorf("path = %s, want /measurements", r.URL.Path)
		}
		if got := r.URL.Query().Get("userId"); got != "u1" {
			t.Errorf("userId = %s, want u1", got)
		}
		w.Write([]byte(`{"data":[{"id":"m1","userId":"u1","chestCircumference":98.5},{"id":"m2","userId":"u1"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	ms, err := client.ListMeasurementsByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListMeasurementsByUser() error = %v", err)
	}
	if len(ms) != 2 {
		t.Fatalf("len = %d, want 2", len(ms))
	}
	if ms[0].ID != "m1" || ms[0].ChestCircumference != 98.5 {
		t.Errorf("ms[0] = %+v, want id=m1 chest=98.5", ms[0])
	}
}

func TestDeleteMeasurement(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	if err := client.DeleteMeasurement(context.Background(), "m9"); err != nil {
		t.Fatalf("DeleteMeasurement() error = %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/measurements/m9" {
		t.Errorf("request = %s %s, want DELETE /measurements/m9", gotMethod, gotPath)
	}
}

func TestUpdateTailor_Patch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s, want PATCH", r.Method)
		}
		var fields map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			t.Fatalf("decode patch: %v", err)
		}
		if fields["shopName"] != "Stitch & Co" {
			t.Errorf("shopName = %v, want Stitch & Co", fields["shopName"])
		}
		w.Write([]byte(`{"data":{"id":"t1","shopName":"Stitch & Co"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	tailor, err := client.UpdateTailor(context.Background(), "t1", map[string]interface{}{"shopName": "Stitch & Co"})
	if err != nil {
		t.Fatalf("UpdateTailor() error = %v", err)
	}
	if tailor.ShopName != "Stitch & Co" {
		t.Errorf("ShopName = %s, want Stitch & Co", tailor.ShopName)
	}
}

func TestHealthURL(t *testing.T) {
	client := NewClient("https://api.example/", 0)
	if got := client.HealthURL(""); got != "https://api.example/health" {
		t.Errorf("HealthURL() = %s, want https://api.example/health", got)
	}
	if got := client.HealthURL("/status"); got != "https://api.example/status" {
		t.Errorf("HealthURL(/status) = %s, want https://api.example/status", got)
	}
}
