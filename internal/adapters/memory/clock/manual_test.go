package clock

import (
	"sync"
	"testing"
	"time"
)

func TestManual_SetAndAdvance(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := NewManual(start)
	if got := c.Now(); !got.Equal(start) {
		t.Fatalf("Now()=%v want=%v", got, start)
	}

	if got := c.Advance(90 * time.Second); !got.Equal(start.Add(90 * time.Second)) {
		t.Fatalf("Advance()=%v", got)
	}

	c.Set(start)
	if got := c.Now(); !got.Equal(start) {
		t.Fatalf("Now() after Set=%v want=%v", got, start)
	}
}

func TestManual_ConcurrentAdvance(t *testing.T) {
	t.Parallel()

	start := time.Unix(0, 0).UTC()
	c := NewManual(start)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Advance(time.Second)
			_ = c.Now()
		}()
	}
	wg.Wait()

	if got := c.Now(); !got.Equal(start.Add(20 * time.Second)) {
		t.Fatalf("Now()=%v want=%v", got, start.Add(20*time.Second))
	}
}
