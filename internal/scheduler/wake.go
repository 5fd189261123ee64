package scheduler

import (
	"context"
	"time"
)

// WakeConfig — параметры вычисления следующего фонового пробуждения.
type WakeConfig struct {
	// Floor — минимальный интервал между пробуждениями (троттлинг хоста).
	Floor time.Duration

	// Idle — максимальный интервал: даже без единого алерта движок
	// просыпается, чтобы увидеть напоминания, созданные на других
	// устройствах.
	Idle time.Duration

	// Lead — подъём незадолго до ближайшего алерта, чтобы успеть
	// подхватить изменения с других устройств.
	Lead time.Duration
}

// WakeRegistrar регистрирует следующее фоновое пробуждение у хоста.
//
// Одновременно действует не больше одного запроса этого рода: новая
// регистрация заменяет предыдущую. Хост вправе задержать или склеить
// пробуждение — это мягкая гарантия.
type WakeRegistrar interface {
	RegisterWake(ctx context.Context, at time.Time) error
}

// NextWake вычисляет время следующего пробуждения.
//
// Без будущих алертов — now + Idle. Иначе целевой интервал
// (ближайший алерт − now − Lead) зажимается в [Floor, Idle]: не чаще
// Floor, не реже Idle.
func NextWake(fireTimes []time.Time, now time.Time, cfg WakeConfig) time.Time {
	var earliest time.Time
	for _, ft := range fireTimes {
		if !ft.After(now) {
			continue
		}
		if earliest.IsZero() || ft.Before(earliest) {
			earliest = ft
		}
	}

	if earliest.IsZero() {
		return now.Add(cfg.Idle)
	}

	d := earliest.Sub(now) - cfg.Lead
	if d < cfg.Floor {
		d = cfg.Floor
	}
	if d > cfg.Idle {
		d = cfg.Idle
	}
	return now.Add(d)
}
