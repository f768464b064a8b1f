package canvas

import (
	"testing"
	"time"
)

const tick = 100 * time.Millisecond

func TestScheduler_FiresWhenDue(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.Schedule(tick, func() { fired++ })

	s.Advance(50 * time.Millisecond)
	if fired != 0 {
		t.Fatal("callback fired early")
	}
	s.Advance(50 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("expected callback to fire at 100ms, fired=%d", fired)
	}
	s.Advance(time.Second)
	if fired != 1 {
		t.Error("one-shot callback fired twice")
	}
}

func TestScheduler_OrderByDueThenRegistration(t *testing.T) {
	s := NewScheduler()
	var order []string

	s.Schedule(200*time.Millisecond, func() { order = append(order, "late") })
	s.Schedule(tick, func() { order = append(order, "a") })
	s.Schedule(tick, func() { order = append(order, "b") })

	if n := s.Advance(time.Second); n != 3 {
		t.Fatalf("expected 3 callbacks, got %d", n)
	}
	want := []string{"a", "b", "late"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", order, want)
		}
	}
}

func TestScheduler_RearmDuringAdvanceWaitsForNextAdvance(t *testing.T) {
	s := NewScheduler()
	count := 0
	var loop func()
	loop = func() {
		count++
		s.Schedule(0, loop)
	}
	s.Schedule(0, loop)

	s.Advance(time.Millisecond)
	if count != 1 {
		t.Fatalf("re-armed callback ran in the same Advance, count=%d", count)
	}
	s.Advance(time.Millisecond)
	if count != 2 {
		t.Fatalf("expected second run on next Advance, count=%d", count)
	}
}

func TestScheduler_RepeatingTimerCadence(t *testing.T) {
	s := NewScheduler()
	ticks := 0
	var loop func()
	loop = func() {
		ticks++
		s.Schedule(tick, loop)
	}
	s.Schedule(tick, loop)

	// 60 TPS 下 60 帧为 1 秒，每 6 帧触发一次
	var firedAt []int
	for i := 1; i <= 60; i++ {
		before := ticks
		s.Advance(frame)
		if ticks != before {
			firedAt = append(firedAt, i)
		}
	}
	if ticks != 10 {
		t.Fatalf("expected 10 ticks in 60 frames, got %d (frames %v)", ticks, firedAt)
	}
	for i, f := range firedAt {
		if f != 6*(i+1) {
			t.Errorf("tick %d fired on frame %d, want %d", i+1, f, 6*(i+1))
		}
	}
}

func TestScheduler_StopDiscardsPending(t *testing.T) {
	s := NewScheduler()
	fired := 0
	for i := 0; i < 5; i++ {
		s.Schedule(tick, func() { fired++ })
	}

	s.Stop()
	if s.Pending() != 0 {
		t.Errorf("expected no pending callbacks, got %d", s.Pending())
	}
	if id := s.Schedule(tick, func() { fired++ }); id != 0 {
		t.Error("schedule after stop should be refused")
	}
	s.Advance(time.Second)
	if fired != 0 {
		t.Errorf("no callback should fire after stop, got %d", fired)
	}
}

func TestScheduler_StopInsideCallback(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.Schedule(tick, func() {
		fired++
		s.Stop()
	})
	s.Schedule(tick, func() { fired++ })

	s.Advance(tick)
	if fired != 1 {
		t.Errorf("callbacks after stop should be discarded, fired=%d", fired)
	}
}
