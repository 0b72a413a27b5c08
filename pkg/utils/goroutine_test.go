package utils

import (
	"fmt"
	"testing"
)

// recordingTB captures failures instead of failing the enclosing test
type recordingTB struct {
	testing.TB
	failed bool
	logs   []string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(format string, args ...interface{}) {
	r.failed = true
	r.logs = append(r.logs, fmt.Sprintf(format, args...))
}

func (r *recordingTB) Logf(format string, args ...interface{}) {
	r.logs = append(r.logs, fmt.Sprintf(format, args...))
}

func TestGoroutineLeakDetector(t *testing.T) {
	t.Run("NoLeak", func(t *testing.T) {
		detector := NewGoroutineLeakDetector(t)
		detector.Start()

		ch := make(chan struct{})
		go func() {
			ch <- struct{}{}
		}()
		<-ch

		detector.Check()
	})

	t.Run("DetectsLeak", func(t *testing.T) {
		rec := &recordingTB{TB: t}
		detector := NewGoroutineLeakDetector(rec)
		detector.Start()

		stop := make(chan struct{})
		go func() {
			<-stop
		}()
		defer close(stop)

		detector.Check()

		if !rec.failed {
			t.Error("Expected leak detector to fail but it didn't")
		}
	})

	t.Run("AllowedGrowth", func(t *testing.T) {
		rec := &recordingTB{TB: t}
		detector := NewGoroutineLeakDetector(rec).SetAllowedGrowth(1)
		detector.Start()

		stop := make(chan struct{})
		go func() {
			<-stop
		}()
		defer close(stop)

		detector.Check()

		if rec.failed {
			t.Errorf("Expected one extra goroutine to be tolerated: %v", rec.logs)
		}
	})
}
