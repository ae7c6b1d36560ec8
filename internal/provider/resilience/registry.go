package resilience

import (
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// SourceHealth is a point-in-time view of one upstream's health.
type SourceHealth struct {
	// Name is the upstream identifier.
	Name string

	// CircuitState is the current circuit breaker state.
	CircuitState gobreaker.State

	// Counts contains circuit breaker statistics.
	Counts gobreaker.Counts

	// LastSuccessAt is the time of the last successful fetch, if any.
	LastSuccessAt *time.Time

	// LastFailureAt is the time of the last failed fetch, if any.
	LastFailureAt *time.Time

	// LastError is the most recent error message, if any.
	LastError string
}

// Healthy reports whether the upstream is accepting requests normally.
func (h *SourceHealth) Healthy() bool {
	return h.CircuitState == gobreaker.StateClosed
}

// Registry tracks upstream clients so their health can be reported on
// the service's sources endpoint.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]*registeredSource
}

type registeredSource struct {
	client        *Client
	lastSuccessAt *time.Time
	lastFailureAt *time.Time
	lastError     string
}

// NewRegistry creates an empty source registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]*registeredSource)}
}

// Register adds an upstream client to the registry.
func (r *Registry) Register(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[client.Name()] = &registeredSource{client: client}
}

// RecordSuccess records a successful fetch for an upstream.
func (r *Registry) RecordSuccess(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sources[name]; ok {
		now := time.Now()
		s.lastSuccessAt = &now
	}
}

// RecordFailure records a failed fetch for an upstream.
func (r *Registry) RecordFailure(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sources[name]; ok {
		now := time.Now()
		s.lastFailureAt = &now
		if err != nil {
			s.lastError = err.Error()
		}
	}
}

// Health returns the health of all registered upstreams.
func (r *Registry) Health() []*SourceHealth {
	r.mu.RLock()
	defer r.mu.RUnlock()

	health := make([]*SourceHealth, 0, len(r.sources))
	for name, s := range r.sources {
		health = append(health, &SourceHealth{
			Name:          name,
			CircuitState:  s.client.CircuitState(),
			Counts:        s.client.CircuitCounts(),
			LastSuccessAt: s.lastSuccessAt,
			LastFailureAt: s.lastFailureAt,
			LastError:     s.lastError,
		})
	}
	return health
}
