package scheduler

import (
	"context"
	"testing"
	"time"
)

func TestWakeTimer_FiresRegisteredWake(t *testing.T) {
	timer := NewWakeTimer()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 1)
	go timer.Run(ctx, func(context.Context) {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	if err := timer.RegisterWake(ctx, time.Now().Add(10*time.Millisecond)); err != nil {
		t.Fatalf("RegisterWake: %v", err)
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("wake did not fire")
	}
}

func TestWakeTimer_ReregistrationReplacesWake(t *testing.T) {
	timer := NewWakeTimer()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan time.Time, 1)
	go timer.Run(ctx, func(context.Context) {
		select {
		case fired <- time.Now():
		default:
		}
	})

	// Далёкое пробуждение, затем близкое: побеждает последняя регистрация
	timer.RegisterWake(ctx, time.Now().Add(time.Hour))
	timer.RegisterWake(ctx, time.Now().Add(20*time.Millisecond))

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("re-registered wake did not fire")
	}
}

func TestWakeTimer_StopsOnContextCancel(t *testing.T) {
	timer := NewWakeTimer()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		timer.Run(ctx, func(context.Context) {})
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
