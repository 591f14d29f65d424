// Package probe determines whether the measurement service is reachable.
//
// Three probes run in order, short-circuiting on the first definitive
// signal: the service health endpoint, a general internet endpoint, then
// DNS resolution. Each probe uses an independent mechanism so a firewall
// blocking only HTTP does not mask genuine internet availability.
package probe

import (
	"context"
	"net"
	"net/http"
	"time"
)

// State represents service reachability at the moment of the probe
type State int

const (
	// ServiceAvailable means the service health endpoint answered 200
	ServiceAvailable State = iota
	// InternetOnlyServiceDown means the internet is reachable but the
	// service health probe failed
	InternetOnlyServiceDown
	// Offline means no probe succeeded
	Offline
)

func (s State) String() string {
	switch s {
	case ServiceAvailable:
		return "service_available"
	case InternetOnlyServiceDown:
		return "service_down"
	case Offline:
		return "offline"
	default:
		return "unknown"
	}
}

// Config configures the probe chain
type Config struct {
	HealthURL      string        // Service health endpoint, e.g. https://api.example/health
	InternetURL    string        // Known-reachable external endpoint
	DNSHostname    string        // Hostname for the DNS fallback probe
	HealthTimeout  time.Duration // Default: 10s
	ProbeTimeout   time.Duration // Default: 5s
	ResolveTimeout time.Duration // Default: 5s
}

// lookupFunc resolves a hostname; swapped out in tests
type lookupFunc func(ctx context.Context, host string) ([]string, error)

// Prober runs the connectivity probe chain
type Prober struct {
	config Config
	client *http.Client
	lookup lookupFunc
}

// New creates a prober. Zero timeouts get defaults applied.
func New(cfg Config) *Prober {
	if cfg.HealthTimeout == 0 {
		cfg.HealthTimeout = 10 * time.Second
	}
	if cfg.ProbeTimeout == 0 {
		cfg.ProbeTimeout = 5 * time.Second
	}
	if cfg.ResolveTimeout == 0 {
		cfg.ResolveTimeout = 5 * time.Second
	}

	resolver := &net.Resolver{}
	return &Prober{
		config: cfg,
		client: &http.Client{},
		lookup: resolver.LookupHost,
	}
}

// Probe computes a fresh connectivity state. Results are never cached:
// network conditions can change between attempts.
func (p *Prober) Probe(ctx context.Context) State {
	if p.serviceHealthy(ctx) {
		return ServiceAvailable
	}

	if p.internetReachable(ctx) {
		return InternetOnlyServiceDown
	}

	if p.dnsResolves(ctx) {
		return InternetOnlyServiceDown
	}

	return Offline
}

// serviceHealthy requests the service health endpoint; only a 200 counts
func (p *Prober) serviceHealthy(ctx context.Context) bool {
	if p.config.HealthURL == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.HealthURL, nil)
	if err != nil {
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// internetReachable requests a known external endpoint. Any completed HTTP
// exchange proves connectivity, regardless of status code.
func (p *Prober) internetReachable(ctx context.Context) bool {
	if p.config.InternetURL == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.InternetURL, nil)
	if err != nil {
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()

	return true
}

// dnsResolves resolves a well-known hostname as a fallback signal in case
// the HTTP probe itself was blocked
func (p *Prober) dnsResolves(ctx context.Context) bool {
	if p.config.DNSHostname == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.ResolveTimeout)
	defer cancel()

	addrs, err := p.lookup(ctx, p.config.DNSHostname)
	return err == nil && len(addrs) > 0
}
