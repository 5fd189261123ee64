package scheduler

import (
	"context"
	"sync"
	"time"
)

// WakeTimer — процессный таймер пробуждений, реализация WakeRegistrar
// для хостов без собственного механизма push-пробуждений.
//
// Регистрация перезаписывает предыдущую: движок держит ровно одно
// запланированное пробуждение.
type WakeTimer struct {
	mu    sync.Mutex
	at    time.Time
	reset chan struct{}
}

// NewWakeTimer создаёт WakeTimer без запланированного пробуждения.
func NewWakeTimer() *WakeTimer {
	return &WakeTimer{reset: make(chan struct{}, 1)}
}

// RegisterWake планирует следующее пробуждение, заменяя предыдущее.
func (t *WakeTimer) RegisterWake(ctx context.Context, at time.Time) error {
	t.mu.Lock()
	t.at = at
	t.mu.Unlock()

	select {
	case t.reset <- struct{}{}:
	default:
	}
	return nil
}

// Run крутит цикл пробуждений и вызывает fn на каждое срабатывание.
// Блокирует до отмены контекста.
func (t *WakeTimer) Run(ctx context.Context, fn func(ctx context.Context)) {
	for {
		t.mu.Lock()
		at := t.at
		t.mu.Unlock()

		var wait time.Duration
		if at.IsZero() {
			// Пробуждение ещё не зарегистрировано — ждём регистрации
			wait = time.Hour
		} else {
			wait = time.Until(at)
			if wait < 0 {
				wait = 0
			}
		}

		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case <-t.reset:
			// Перерегистрация — пересчитываем ожидание
			timer.Stop()
			continue

		case <-timer.C:
			if at.IsZero() {
				continue
			}
			t.mu.Lock()
			// Сработавшее пробуждение потреблено, fn зарегистрирует следующее
			t.at = time.Time{}
			t.mu.Unlock()

			fn(ctx)
		}
	}
}
