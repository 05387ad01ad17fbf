// Package leaktest checks that background goroutines started by a test
// have exited once the component under test is shut down.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleDelay  = 10 * time.Millisecond
	pollInterval = 10 * time.Millisecond

	// DefaultTimeout bounds how long Check waits for goroutines to exit
	DefaultTimeout = time.Second
)

// GoroutineChecker records the goroutine count before a component starts
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker creates a new checker and records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(settleDelay)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check polls until the goroutine count is back within tolerance of the
// baseline, failing the test after DefaultTimeout
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	target := g.before + tolerance
	if waitFor(target, DefaultTimeout) {
		return
	}

	after := runtime.NumGoroutine()
	g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
		g.before, after, after-g.before, tolerance)
}

// CheckNoGoroutineLeak runs fn, which must start and stop its component,
// and fails if goroutines it started are still running afterwards
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// WaitForGoroutines waits until at most target goroutines are running
func WaitForGoroutines(t testing.TB, target int, timeout time.Duration) {
	t.Helper()

	if !waitFor(target, timeout) {
		t.Errorf("Timeout waiting for goroutines to complete: current=%d, target=%d",
			runtime.NumGoroutine(), target)
	}
}

func waitFor(target int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		if runtime.NumGoroutine() <= target {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
}
