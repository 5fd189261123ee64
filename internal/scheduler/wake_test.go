package scheduler

import (
	"testing"
	"time"
)

func TestNextWake(t *testing.T) {
	cfg := WakeConfig{
		Floor: 30 * time.Minute,
		Idle:  4 * time.Hour,
		Lead:  time.Hour,
	}

	tests := []struct {
		name      string
		fireTimes []time.Duration // смещения от testNow
		want      time.Duration
	}{
		// Без алертов — idle-интервал
		{"no alerts", nil, 4 * time.Hour},

		// Ближайший алерт через 20 минут: цель отрицательная,
		// зажимается в floor
		{"alert in 20m clamps to floor", []time.Duration{20 * time.Minute}, 30 * time.Minute},

		// Алерт через 2 часа: просыпаемся за час до него
		{"alert in 2h", []time.Duration{2 * time.Hour}, time.Hour},

		// Далёкий алерт: не реже idle-интервала
		{"alert in 10h clamps to idle", []time.Duration{10 * time.Hour}, 4 * time.Hour},

		// Берётся ближайший из нескольких
		{"earliest wins", []time.Duration{6 * time.Hour, 3 * time.Hour, 8 * time.Hour}, 2 * time.Hour},

		// Прошедшие времена срабатывания игнорируются
		{"past fire times ignored", []time.Duration{-time.Hour, 5 * time.Hour}, 4 * time.Hour},

		// Только прошедшие — как будто алертов нет
		{"all past", []time.Duration{-2 * time.Hour, -time.Minute}, 4 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fireTimes []time.Time
			for _, off := range tt.fireTimes {
				fireTimes = append(fireTimes, testNow.Add(off))
			}

			got := NextWake(fireTimes, testNow, cfg)
			want := testNow.Add(tt.want)
			if !got.Equal(want) {
				t.Errorf("expected wake at now+%v, got now+%v", tt.want, got.Sub(testNow))
			}
		})
	}
}
