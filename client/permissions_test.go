package client

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type countingGranter struct {
	calls   int32
	delay   time.Duration
	granted bool
	err     error
}

func (g *countingGranter) Request(kind string) (bool, error) {
	atomic.AddInt32(&g.calls, 1)
	if g.delay > 0 {
		time.Sleep(g.delay)
	}
	return g.granted, g.err
}

func TestRequireCollapsesConcurrentRequests(t *testing.T) {
	granter := &countingGranter{granted: true, delay: 100 * time.Millisecond}
	arbiter := NewPermissionArbiter(granter)

	var wg sync.WaitGroup
	results := make([]bool, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			granted, err := arbiter.Require(PermissionCamera)
			if err != nil {
				t.Errorf("Require() error = %v", err)
			}
			results[i] = granted
		}(i)
	}
	wg.Wait()

	if calls := atomic.LoadInt32(&granter.calls); calls != 1 {
		t.Errorf("granter prompted %d times for one kind, want 1", calls)
	}
	for i, granted := range results {
		if !granted {
			t.Errorf("caller %d did not share the granted result", i)
		}
	}
}

func TestRequireSharesDenialWithConcurrentWaiters(t *testing.T) {
	granter := &countingGranter{granted: false, delay: 100 * time.Millisecond}
	arbiter := NewPermissionArbiter(granter)

	var wg sync.WaitGroup
	results := make([]bool, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			granted, err := arbiter.Require(PermissionCamera)
			if err != nil {
				t.Errorf("Require() error = %v", err)
			}
			results[i] = granted
		}(i)
	}
	wg.Wait()

	// A waiter that sees the prompt resolve as denied must not raise a
	// second dialog of its own; it returns the shared denial.
	if calls := atomic.LoadInt32(&granter.calls); calls != 1 {
		t.Errorf("denied prompt raised %d dialogs, want 1", calls)
	}
	for i, granted := range results {
		if granted {
			t.Errorf("caller %d did not receive the shared denial", i)
		}
	}
}

func TestRequireDoesNotCacheDenials(t *testing.T) {
	granter := &countingGranter{granted: false}
	arbiter := NewPermissionArbiter(granter)

	if granted, _ := arbiter.Require(PermissionLocation); granted {
		t.Fatal("expected denial")
	}
	if granted, _ := arbiter.Require(PermissionLocation); granted {
		t.Fatal("expected denial")
	}
	if calls := atomic.LoadInt32(&granter.calls); calls != 2 {
		t.Errorf("denied permission should re-prompt, got %d calls", calls)
	}
}

func TestRequireClearsInFlightOnError(t *testing.T) {
	granter := &countingGranter{err: errors.New("platform unavailable")}
	arbiter := NewPermissionArbiter(granter)

	if _, err := arbiter.Require(PermissionCamera); err == nil {
		t.Fatal("expected error from granter")
	}

	// A second call must not deadlock on a stale in-flight marker.
	done := make(chan struct{})
	go func() {
		arbiter.Require(PermissionCamera)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Require() deadlocked after a failed prompt")
	}
}

func TestRequireDifferentKindsRunIndependently(t *testing.T) {
	granter := &countingGranter{granted: true}
	arbiter := NewPermissionArbiter(granter)

	if granted, _ := arbiter.Require(PermissionCamera); !granted {
		t.Fatal("camera should be granted")
	}
	if granted, _ := arbiter.Require(PermissionLocation); !granted {
		t.Fatal("location should be granted")
	}
	if calls := atomic.LoadInt32(&granter.calls); calls != 2 {
		t.Errorf("distinct kinds should each prompt once, got %d calls", calls)
	}

	// Granted results are cached per kind.
	arbiter.Require(PermissionCamera)
	if calls := atomic.LoadInt32(&granter.calls); calls != 2 {
		t.Errorf("granted permission re-prompted, got %d calls", calls)
	}
}
