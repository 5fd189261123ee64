package repeat

import (
	"testing"
	"time"

	"github.com/shaiso/Alerta/internal/domain"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestNextDueDate_NoRule(t *testing.T) {
	now := date(2025, time.January, 10, 12, 0)
	if got := NextDueDate(nil, nil, domain.RepeatModeFixed, now); got != nil {
		t.Errorf("expected nil for absent rule, got %v", got)
	}
}

func TestNextDueDate_AfterComplete(t *testing.T) {
	now := date(2025, time.January, 10, 9, 30)

	tests := []struct {
		name string
		rule domain.RepeatRule
		want time.Time
	}{
		{"every 3 days", domain.RepeatRule{Unit: domain.RepeatDay, Interval: 3}, date(2025, time.January, 13, 9, 30)},
		{"every 2 weeks", domain.RepeatRule{Unit: domain.RepeatWeek, Interval: 2}, date(2025, time.January, 24, 9, 30)},
		{"every month", domain.RepeatRule{Unit: domain.RepeatMonth, Interval: 1}, date(2025, time.February, 10, 9, 30)},
		{"every year", domain.RepeatRule{Unit: domain.RepeatYear, Interval: 1}, date(2026, time.January, 10, 9, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Предыдущий срок в after_complete не участвует
			old := date(2024, time.June, 1, 8, 0)
			got := NextDueDate(&old, &tt.rule, domain.RepeatModeAfterComplete, now)
			if got == nil {
				t.Fatal("expected non-nil result")
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, *got)
			}
		})
	}
}

func TestNextDueDate_FixedCatchUp(t *testing.T) {
	// Срок 1 января 10:00, правило "каждые 7 дней", сейчас 20 января.
	// Пропущенные 8 и 15 января перешагиваются: первый срок строго
	// после "сейчас" — 22 января 10:00.
	due := date(2025, time.January, 1, 10, 0)
	now := date(2025, time.January, 20, 0, 0)
	rule := domain.RepeatRule{Unit: domain.RepeatDay, Interval: 7}

	got := NextDueDate(&due, &rule, domain.RepeatModeFixed, now)
	if got == nil {
		t.Fatal("expected non-nil result")
	}
	want := date(2025, time.January, 22, 10, 0)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, *got)
	}
}

func TestNextDueDate_FixedFutureDue(t *testing.T) {
	// Срок ещё в будущем — одно применение правила от него.
	due := date(2025, time.March, 10, 18, 0)
	now := date(2025, time.March, 1, 0, 0)
	rule := domain.RepeatRule{Unit: domain.RepeatWeek, Interval: 1}

	got := NextDueDate(&due, &rule, domain.RepeatModeFixed, now)
	if got == nil {
		t.Fatal("expected non-nil result")
	}
	want := date(2025, time.March, 17, 18, 0)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, *got)
	}
}

func TestNextDueDate_FixedNilDue(t *testing.T) {
	// Без предыдущего срока базой служит "сейчас".
	now := date(2025, time.May, 5, 7, 0)
	rule := domain.RepeatRule{Unit: domain.RepeatDay, Interval: 2}

	got := NextDueDate(nil, &rule, domain.RepeatModeFixed, now)
	if got == nil {
		t.Fatal("expected non-nil result")
	}
	want := date(2025, time.May, 7, 7, 0)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, *got)
	}
}

func TestNextDueDate_MonthLengths(t *testing.T) {
	// Календарная арифметика, не дельта в секундах: 15 февраля + месяц
	// = 15 марта, хотя в феврале 28 дней.
	due := date(2025, time.February, 15, 12, 0)
	now := date(2025, time.February, 20, 0, 0)
	rule := domain.RepeatRule{Unit: domain.RepeatMonth, Interval: 1}

	got := NextDueDate(&due, &rule, domain.RepeatModeFixed, now)
	if got == nil {
		t.Fatal("expected non-nil result")
	}
	want := date(2025, time.March, 15, 12, 0)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, *got)
	}
}

func TestAdvance_WeekdaySkip(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		// Пятница → понедельник, суббота и воскресенье пропускаются,
		// время суток сохраняется
		{"friday to monday", date(2025, time.January, 3, 9, 0), date(2025, time.January, 6, 9, 0)},
		{"saturday to monday", date(2025, time.January, 4, 14, 30), date(2025, time.January, 6, 14, 30)},
		{"midweek", date(2025, time.January, 7, 8, 15), date(2025, time.January, 8, 8, 15)},
	}

	rule := domain.RepeatRule{Unit: domain.RepeatWeekdays, Interval: 1}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := advance(tt.from, &rule)
			if !ok {
				t.Fatal("expected ok")
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAdvance_WeekdaysIgnoresInterval(t *testing.T) {
	// Interval>1 для weekdays не определён — единица всегда ведёт себя
	// как interval=1.
	from := date(2025, time.January, 6, 10, 0) // понедельник
	rule := domain.RepeatRule{Unit: domain.RepeatWeekdays, Interval: 3}

	got, ok := advance(from, &rule)
	if !ok {
		t.Fatal("expected ok")
	}
	want := date(2025, time.January, 7, 10, 0)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNextDueDate_UnknownUnit(t *testing.T) {
	now := date(2025, time.January, 10, 0, 0)
	rule := domain.RepeatRule{Unit: "fortnight", Interval: 1}

	if got := NextDueDate(nil, &rule, domain.RepeatModeFixed, now); got != nil {
		t.Errorf("expected nil for unknown unit, got %v", *got)
	}
	if got := NextDueDate(nil, &rule, domain.RepeatModeAfterComplete, now); got != nil {
		t.Errorf("expected nil for unknown unit, got %v", *got)
	}
}

func TestNextDueDate_ZeroInterval(t *testing.T) {
	// Interval < 1 нормализуется к 1, цикл не зависает.
	due := date(2025, time.January, 1, 10, 0)
	now := date(2025, time.January, 3, 0, 0)
	rule := domain.RepeatRule{Unit: domain.RepeatDay, Interval: 0}

	got := NextDueDate(&due, &rule, domain.RepeatModeFixed, now)
	if got == nil {
		t.Fatal("expected non-nil result")
	}
	want := date(2025, time.January, 3, 10, 0)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, *got)
	}
}
