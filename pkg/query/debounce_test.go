package query

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CollapsesRapidCalls(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var fired atomic.Int64
	var last atomic.Int64
	for i := 1; i <= 5; i++ {
		v := int64(i)
		d.Do(func() {
			fired.Add(1)
			last.Store(v)
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	if got := fired.Load(); got != 1 {
		t.Errorf("expected one firing, got %d", got)
	}
	if got := last.Load(); got != 5 {
		t.Errorf("expected the last call to win, got %d", got)
	}
}

func TestDebouncer_Flush(t *testing.T) {
	d := NewDebouncer(time.Hour)
	defer d.Stop()

	var fired atomic.Int64
	d.Do(func() { fired.Add(1) })
	d.Flush()

	if got := fired.Load(); got != 1 {
		t.Errorf("expected flush to fire immediately, got %d", got)
	}

	// Flushing with nothing pending is a no-op.
	d.Flush()
	if got := fired.Load(); got != 1 {
		t.Errorf("expected no extra firing, got %d", got)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	var fired atomic.Int64
	d.Do(func() { fired.Add(1) })
	d.Stop()

	time.Sleep(50 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("expected stop to cancel the pending call, got %d", got)
	}
}
