// services/flow_registry.go
package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// FlowRegistry holds the payment flows currently in progress. Flows
// are in-process state for one staff session; a flow abandoned mid-way
// (modal closed without confirming) is evicted after its TTL so the
// registry cannot grow without bound.
type FlowRegistry struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[uuid.UUID]*flowEntry
	now     func() time.Time
}

type flowEntry struct {
	mu        sync.Mutex
	flow      *PaymentFlow
	createdAt time.Time
}

func NewFlowRegistry(ttl time.Duration) *FlowRegistry {
	return &FlowRegistry{
		ttl:     ttl,
		entries: map[uuid.UUID]*flowEntry{},
		now:     time.Now,
	}
}

// Put registers a flow, sweeping out any expired entries first.
func (r *FlowRegistry) Put(f *PaymentFlow) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, e := range r.entries {
		if now.Sub(e.createdAt) > r.ttl {
			delete(r.entries, id)
		}
	}
	r.entries[f.ID] = &flowEntry{flow: f, createdAt: now}
}

// WithFlow runs fn while holding the flow's own lock, so two requests
// advancing the same flow cannot interleave mid-transition. Returns
// false when the flow is unknown or has expired.
func (r *FlowRegistry) WithFlow(id uuid.UUID, fn func(*PaymentFlow)) bool {
	r.mu.Lock()
	entry, ok := r.entries[id]
	if ok && r.now().Sub(entry.createdAt) > r.ttl {
		delete(r.entries, id)
		ok = false
	}
	r.mu.Unlock()

	if !ok {
		return false
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	fn(entry.flow)
	return true
}

// Drop removes a flow once it reaches a terminal step.
func (r *FlowRegistry) Drop(id uuid.UUID) {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}
