package probe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func failingServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server
}

// unreachableURL points at a closed port so connections fail fast
const unreachableURL = "http://127.0.0.1:1/health"

func TestProbe_ServiceAvailable(t *testing.T) {
	health := okServer(t)

	p := New(Config{
		HealthURL: health.URL,
		// The other probes must never matter when health answers 200
		InternetURL: unreachableURL,
		DNSHostname: "definitely-not-a-real-host.invalid",
	})

	if got := p.Probe(context.Background()); got != ServiceAvailable {
		t.Errorf("Probe() = %v, want ServiceAvailable", got)
	}
}

func TestProbe_HealthNon200FallsThrough(t *testing.T) {
	health := failingServer(t, http.StatusServiceUnavailable)
	internet := okServer(t)

	p := New(Config{
		HealthURL:   health.URL,
		InternetURL: internet.URL,
	})

	if got := p.Probe(context.Background()); got != InternetOnlyServiceDown {
		t.Errorf("Probe() = %v, want InternetOnlyServiceDown", got)
	}
}

func TestProbe_InternetOnlyServiceDown(t *testing.T) {
	internet := okServer(t)

	p := New(Config{
		HealthURL:   unreachableURL,
		InternetURL: internet.URL,
	})

	if got := p.Probe(context.Background()); got != InternetOnlyServiceDown {
		t.Errorf("Probe() = %v, want InternetOnlyServiceDown", got)
	}
}

func TestProbe_InternetProbeAcceptsAnyStatus(t *testing.T) {
	// A 404 from the external endpoint still proves connectivity
	internet := failingServer(t, http.StatusNotFound)

	p := New(Config{
		HealthURL:   unreachableURL,
		InternetURL: internet.URL,
	})

	if got := p.Probe(context.Background()); got != InternetOnlyServiceDown {
		t.Errorf("Probe() = %v, want InternetOnlyServiceDown", got)
	}
}

func TestProbe_DNSFallback(t *testing.T) {
	p := New(Config{
		HealthURL:   unreachableURL,
		InternetURL: unreachableURL,
		DNSHostname: "dns.google",
	})
	p.lookup = func(ctx context.Context, host string) ([]string, error) {
		if host != "dns.google" {
			t.Errorf("lookup host = %s, want dns.google", host)
		}
		return []string{"8.8.8.8"}, nil
	}

	if got := p.Probe(context.Background()); got != InternetOnlyServiceDown {
		t.Errorf("Probe() = %v, want InternetOnlyServiceDown", got)
	}
}

func TestProbe_Offline(t *testing.T) {
	p := New(Config{
		HealthURL:   unreachableURL,
		InternetURL: unreachableURL,
		DNSHostname: "dns.google",
	})
	p.lookup = func(ctx context.Context, host string) ([]string, error) {
		return nil, errors.New("no network")
	}

	if got := p.Probe(context.Background()); got != Offline {
		t.Errorf("Probe() = %v, want Offline", got)
	}
}

func TestProbe_HealthTimeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer slow.Close()

	internet := okServer(t)

	p := New(Config{
		HealthURL:     slow.URL,
		InternetURL:   internet.URL,
		HealthTimeout: 50 * time.Millisecond,
	})

	if got := p.Probe(context.Background()); got != InternetOnlyServiceDown {
		t.Errorf("Probe() = %v, want InternetOnlyServiceDown after health timeout", got)
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{ServiceAvailable, "service_available"},
		{InternetOnlyServiceDown, "service_down"},
		{Offline, "offline"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %s, want %s", tt.state, got, tt.want)
		}
	}
}
