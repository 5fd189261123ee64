package repeat

import (
	"time"

	"github.com/shaiso/Alerta/internal/domain"
)

// maxAdvance — предел числа шагов догоняющего цикла в fixed-режиме.
// Цикл и так конечен (каждый шаг двигает срок минимум на день вперёд),
// но предел гарантирует завершение даже при вырожденном правиле.
const maxAdvance = 1000

// NextDueDate вычисляет следующий срок повторяющегося напоминания.
//
// current — предыдущий срок (nil допустим), now — момент выполнения.
// Возвращает nil, если правила нет либо вычисление не сходится за
// maxAdvance шагов — это трактуется как "повторений больше нет",
// а не как ошибка.
func NextDueDate(current *time.Time, rule *domain.RepeatRule, mode domain.RepeatMode, now time.Time) *time.Time {
	if rule == nil {
		return nil
	}

	if mode == domain.RepeatModeAfterComplete {
		// Отсчёт от момента выполнения: одно применение правила.
		next, ok := advance(now, rule)
		if !ok {
			return nil
		}
		return &next
	}

	// fixed: отсчёт от предыдущего срока. Если элемент выполнили спустя
	// несколько периодов, правило применяется до первого срока строго
	// в будущем — иначе алерт сработал бы немедленно, в прошлом.
	base := now
	if current != nil {
		base = *current
	}

	next := base
	for i := 0; i < maxAdvance; i++ {
		n, ok := advance(next, rule)
		if !ok {
			return nil
		}
		next = n
		if next.After(now) {
			return &next
		}
	}
	return nil
}

// advance выполняет один шаг правила от момента t.
//
// Для day/week/month/year — календарная арифметика (AddDate учитывает
// разную длину месяцев и високосные годы), не фиксированная дельта
// в секундах. ok=false для неизвестной единицы.
func advance(t time.Time, rule *domain.RepeatRule) (time.Time, bool) {
	interval := rule.Interval
	if interval < 1 {
		interval = 1
	}

	switch rule.Unit {
	case domain.RepeatDay:
		return t.AddDate(0, 0, interval), true
	case domain.RepeatWeek:
		return t.AddDate(0, 0, 7*interval), true
	case domain.RepeatMonth:
		return t.AddDate(0, interval, 0), true
	case domain.RepeatYear:
		return t.AddDate(interval, 0, 0), true
	case domain.RepeatWeekdays:
		return nextWeekday(t), true
	default:
		return time.Time{}, false
	}
}

// nextWeekday переходит на следующий календарный день, пропуская субботу
// и воскресенье. Время суток исходного момента сохраняется. Interval для
// этой единицы не учитывается: "каждые N будних дней" не поддерживается.
func nextWeekday(t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
