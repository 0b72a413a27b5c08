package utils

import (
	"runtime"
	"testing"
	"time"
)

// GoroutineLeakDetector helps detect goroutine leaks in tests, such as
// batch decode workers that outlive their call
type GoroutineLeakDetector struct {
	t              testing.TB
	initialCount   int
	allowedGrowth  int
	checkInterval  time.Duration
	stabilizeDelay time.Duration
}

// NewGoroutineLeakDetector creates a new goroutine leak detector
func NewGoroutineLeakDetector(t testing.TB) *GoroutineLeakDetector {
	return &GoroutineLeakDetector{
		t:              t,
		checkInterval:  50 * time.Millisecond,
		stabilizeDelay: 100 * time.Millisecond,
	}
}

// Start records the initial goroutine count
func (d *GoroutineLeakDetector) Start() {
	time.Sleep(d.stabilizeDelay)
	d.initialCount = runtime.NumGoroutine()
}

// Check reports an error if the goroutine count grew beyond the allowed
// threshold since Start. The lowest of three samples is used.
func (d *GoroutineLeakDetector) Check() {
	d.t.Helper()
	time.Sleep(d.stabilizeDelay)

	finalCount := runtime.NumGoroutine()
	for i := 0; i < 2; i++ {
		time.Sleep(d.checkInterval)
		if c := runtime.NumGoroutine(); c < finalCount {
			finalCount = c
		}
	}

	leaked := finalCount - d.initialCount
	if leaked > d.allowedGrowth {
		d.t.Errorf("Goroutine leak detected: started with %d, ended with %d (leaked: %d, allowed: %d)",
			d.initialCount, finalCount, leaked, d.allowedGrowth)

		buf := make([]byte, 1<<20)
		stackLen := runtime.Stack(buf, true)
		d.t.Logf("Current goroutine stack traces:\n%s", buf[:stackLen])
	}
}

// SetAllowedGrowth sets the number of goroutines allowed to grow
func (d *GoroutineLeakDetector) SetAllowedGrowth(n int) *GoroutineLeakDetector {
	d.allowedGrowth = n
	return d
}

// SetStabilizeDelay sets the delay to allow goroutines to stabilize
func (d *GoroutineLeakDetector) SetStabilizeDelay(delay time.Duration) *GoroutineLeakDetector {
	d.stabilizeDelay = delay
	return d
}
