// services/flow_registry_test.go
package services

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registryAt(ttl time.Duration, start time.Time) (*FlowRegistry, *time.Time) {
	clock := start
	r := NewFlowRegistry(ttl)
	r.now = func() time.Time { return clock }
	return r, &clock
}

func TestFlowRegistryLookup(t *testing.T) {
	r := NewFlowRegistry(time.Hour)
	flow := NewPaymentFlow(uuid.New(), 500, "merchant@upi")
	r.Put(flow)

	var got *PaymentFlow
	found := r.WithFlow(flow.ID, func(f *PaymentFlow) { got = f })

	require.True(t, found)
	assert.Same(t, flow, got)

	assert.False(t, r.WithFlow(uuid.New(), func(*PaymentFlow) {}))
}

func TestFlowRegistryDrop(t *testing.T) {
	r := NewFlowRegistry(time.Hour)
	flow := NewPaymentFlow(uuid.New(), 500, "")
	r.Put(flow)

	r.Drop(flow.ID)

	assert.False(t, r.WithFlow(flow.ID, func(*PaymentFlow) {}))
}

func TestFlowRegistryExpiredFlowNotReturned(t *testing.T) {
	start := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	r, clock := registryAt(time.Hour, start)

	flow := NewPaymentFlow(uuid.New(), 500, "")
	r.Put(flow)

	*clock = start.Add(61 * time.Minute)

	assert.False(t, r.WithFlow(flow.ID, func(*PaymentFlow) {}))
}

func TestFlowRegistrySweepsAbandonedFlows(t *testing.T) {
	start := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	r, clock := registryAt(time.Hour, start)

	// A day of abandoned flows, registered one minute apart.
	for i := 0; i < 100; i++ {
		*clock = start.Add(time.Duration(i) * time.Minute)
		r.Put(NewPaymentFlow(uuid.New(), 500, ""))
	}

	// Registering the next flow sweeps out everything older than the
	// TTL, so the map does not keep every flow ever started.
	*clock = start.Add(24 * time.Hour)
	fresh := NewPaymentFlow(uuid.New(), 500, "")
	r.Put(fresh)

	r.mu.Lock()
	size := len(r.entries)
	r.mu.Unlock()
	assert.Equal(t, 1, size)

	assert.True(t, r.WithFlow(fresh.ID, func(*PaymentFlow) {}))
}

func TestFlowRegistrySerializesAdvances(t *testing.T) {
	r := NewFlowRegistry(time.Hour)
	flow := NewPaymentFlow(uuid.New(), 500, "")
	r.Put(flow)

	// Each goroutine bounces the flow choice -> method -> choice. If
	// two transitions could interleave mid-step, one of the PayNow or
	// Back calls would observe a half-advanced flow and fail.
	var wg sync.WaitGroup
	errs := make(chan error, 200)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.WithFlow(flow.ID, func(f *PaymentFlow) {
				if err := f.PayNow(); err != nil {
					errs <- err
					return
				}
				if err := f.Back(); err != nil {
					errs <- err
				}
			})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("transition failed under concurrency: %v", err)
	}
	assert.Equal(t, StepChoice, flow.Step())
}
