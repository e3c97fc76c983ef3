package clock

import (
	"sync"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestVirtualClock_Now(t *testing.T) {
	vc := NewVirtualClock(epoch)
	if got := vc.Now(); !got.Equal(epoch) {
		t.Errorf("Now() = %v, want %v", got, epoch)
	}
}

func TestVirtualClock_Advance(t *testing.T) {
	vc := NewVirtualClock(epoch)
	vc.Advance(1500 * time.Millisecond)

	want := epoch.Add(1500 * time.Millisecond)
	if got := vc.Now(); !got.Equal(want) {
		t.Errorf("Now() after Advance = %v, want %v", got, want)
	}
}

func TestVirtualClock_AdvanceNegativePanics(t *testing.T) {
	vc := NewVirtualClock(epoch)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on negative advance")
		}
	}()
	vc.Advance(-1 * time.Second)
}

func TestVirtualClock_SetPastPanics(t *testing.T) {
	vc := NewVirtualClock(epoch)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on setting time to the past")
		}
	}()
	vc.Set(epoch.Add(-1 * time.Hour))
}

func TestVirtualClock_Since(t *testing.T) {
	vc := NewVirtualClock(epoch)
	start := vc.Now()
	vc.Advance(250 * time.Millisecond)

	if got := vc.Since(start); got != 250*time.Millisecond {
		t.Errorf("Since() = %v, want 250ms", got)
	}
}

func TestVirtualClock_After_FiresOnAdvance(t *testing.T) {
	vc := NewVirtualClock(epoch)
	ch := vc.After(500 * time.Millisecond)

	select {
	case <-ch:
		t.Fatal("After() fired before advance")
	default:
	}

	vc.Advance(500 * time.Millisecond)

	select {
	case got := <-ch:
		if want := epoch.Add(500 * time.Millisecond); !got.Equal(want) {
			t.Errorf("After() sent %v, want %v", got, want)
		}
	default:
		t.Fatal("After() did not fire after advance")
	}
}

func TestVirtualClock_After_ZeroDuration(t *testing.T) {
	vc := NewVirtualClock(epoch)
	select {
	case <-vc.After(0):
	default:
		t.Fatal("After(0) should fire immediately")
	}
}

func TestSteppingClock_AdvancesOnEveryRead(t *testing.T) {
	sc := NewSteppingClock(epoch, time.Millisecond)

	first := sc.Now()
	second := sc.Now()
	if got := second.Sub(first); got != time.Millisecond {
		t.Errorf("gap between reads = %v, want 1ms", got)
	}
	if got := sc.Since(first); got != 2*time.Millisecond {
		t.Errorf("Since() = %v, want 2ms", got)
	}
}

func TestSteppingClock_FiresWaiters(t *testing.T) {
	sc := NewSteppingClock(epoch, 10*time.Millisecond)
	ch := sc.After(25 * time.Millisecond)

	for i := 0; i < 3; i++ {
		sc.Now()
	}
	select {
	case <-ch:
	default:
		t.Fatal("After() should fire once reads step past the deadline")
	}
}

func TestSteppingClock_BusyWaitTerminates(t *testing.T) {
	sc := NewSteppingClock(epoch, 100*time.Microsecond)
	start := sc.Now()

	polls := 0
	for sc.Since(start) < 100*time.Millisecond {
		polls++
	}
	if polls < 999 || polls > 1000 {
		t.Errorf("polls = %d, want about 1000", polls)
	}
}

func TestSeconds_RoundTrip(t *testing.T) {
	if got := Seconds(1500 * time.Millisecond); got != 1.5 {
		t.Errorf("Seconds(1.5s) = %v, want 1.5", got)
	}
	if got := Seconds(-time.Second); got != 0 {
		t.Errorf("Seconds(-1s) = %v, want 0", got)
	}
	if got := Duration(0.25); got != 250*time.Millisecond {
		t.Errorf("Duration(0.25) = %v, want 250ms", got)
	}
}

func TestVirtualClock_ConcurrentAccess(t *testing.T) {
	vc := NewVirtualClock(epoch)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = vc.Now()
			_ = vc.Since(epoch)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			vc.Advance(time.Millisecond)
		}
	}()
	wg.Wait()

	if got, want := vc.Now(), epoch.Add(100*time.Millisecond); !got.Equal(want) {
		t.Errorf("after concurrent ops, Now() = %v, want %v", got, want)
	}
}

func TestClocks_ImplementClock(t *testing.T) {
	var _ Clock = NewRealClock()
	var _ Clock = NewVirtualClock(time.Now())
}
