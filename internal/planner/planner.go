package planner

import (
	"sort"
	"time"

	"github.com/shaiso/Alerta/internal/domain"
)

// Diff — результат сверки: что взвести и что отменить.
//
// Применение Diff к текущему pending-набору и повторный Plan с теми же
// items дают пустой Diff — сверка идемпотентна.
type Diff struct {
	// ToSchedule — элементы, для которых нужно взвести алерт.
	// Упорядочены по возрастанию срока.
	ToSchedule []domain.ReminderItem

	// ToCancel — свои алерты, которые нужно отменить.
	ToCancel []domain.AlertID

	// Admitted — сколько элементов прошло admission control.
	Admitted int

	// Deferred — сколько элементов не поместилось в бюджет.
	Deferred int
}

// Plan сверяет желаемый набор напоминаний с pending-набором хоста.
//
// Кандидаты фильтруются (не выполнен, не удалён, срок задан), сортируются
// по сроку (при равенстве — по ID элемента), и первые budget элементов
// проходят admission control. Взводятся прошедшие элементы, которых ещё
// нет в pending и чей срок всё ещё в будущем: просроченные элементы —
// это "missed", их молча перевзводить нельзя. Отменяются свои алерты,
// чей элемент больше не желателен либо вытеснен бюджетом.
//
// Функция чистая: нет обращений к часам и внешним системам, идентичный
// вход даёт байтово идентичный выход. Чужие алерты (без префикса движка)
// не трогаются никогда.
func Plan(items []domain.ReminderItem, pending []domain.PendingAlert, budget int, now time.Time) Diff {
	if budget < 0 {
		budget = 0
	}

	// 1. Фильтр: алерт нужен только невыполненным элементам со сроком.
	eligible := make([]domain.ReminderItem, 0, len(items))
	for _, it := range items {
		if it.NeedsAlert() {
			eligible = append(eligible, it)
		}
	}

	// 2. Ближайший срок первым; при равенстве — по ID для детерминизма.
	sort.Slice(eligible, func(i, j int) bool {
		a, b := &eligible[i], &eligible[j]
		if !a.DueDate.Equal(*b.DueDate) {
			return a.DueDate.Before(*b.DueDate)
		}
		return a.ID.String() < b.ID.String()
	})

	// 3. Admission control: в бюджет проходят первые budget элементов.
	admitted := eligible
	if len(admitted) > budget {
		admitted = admitted[:budget]
	}

	diff := Diff{
		Admitted: len(admitted),
		Deferred: len(eligible) - len(admitted),
	}

	pendingSet := make(map[domain.AlertID]struct{}, len(pending))
	for _, p := range pending {
		pendingSet[p.ID] = struct{}{}
	}

	// 4. Взводим прошедшие бюджет элементы, которых ещё нет в pending
	// и чей срок в будущем.
	admittedIDs := make(map[domain.AlertID]struct{}, len(admitted))
	for _, it := range admitted {
		id := domain.AlertIDFor(it.ID)
		admittedIDs[id] = struct{}{}

		if _, exists := pendingSet[id]; exists {
			continue
		}
		if !it.DueDate.After(now) {
			// Просроченный элемент остаётся "missed", не перевзводим.
			continue
		}
		diff.ToSchedule = append(diff.ToSchedule, it)
	}

	// 5. Отменяем свои алерты вне admitted-набора.
	for _, p := range pending {
		if !p.ID.Owned() {
			continue
		}
		if _, ok := admittedIDs[p.ID]; !ok {
			diff.ToCancel = append(diff.ToCancel, p.ID)
		}
	}
	sort.Slice(diff.ToCancel, func(i, j int) bool {
		return diff.ToCancel[i] < diff.ToCancel[j]
	})

	return diff
}
