package scheduler

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shaiso/Alerta/internal/domain"
)

// ScanCaps — ограничения окна сканирования одного пасса.
type ScanCaps struct {
	// Total — максимум списков за пасс.
	Total int

	// Priority — предел пула списков с действующими алертами.
	Priority int

	// Recency — предел пула недавно изменённых списков.
	Recency int
}

// SelectLists выбирает списки для пасса сверки.
//
// Если списков не больше Total, сканируются все. Иначе объединяются два
// пула: приоритетный — до Priority списков, уже владеющих алертом
// (защита взятых обязательств), и recency — до Recency самых недавно
// изменённых из остальных. Список вне обоих пулов ждёт, пока не
// попадёт в recency-окно: осознанный компромисс ограниченной стоимости
// пасса, его видно по Summary.SkippedLists.
func SelectLists(lists []domain.ListRef, priority map[uuid.UUID]struct{}, caps ScanCaps) []uuid.UUID {
	if len(lists) <= caps.Total {
		ids := make([]uuid.UUID, len(lists))
		for i, l := range lists {
			ids[i] = l.ID
		}
		return ids
	}

	// Свежие первыми; при равенстве — по ID для детерминизма.
	sorted := append([]domain.ListRef(nil), lists...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := &sorted[i], &sorted[j]
		if !a.LastModified.Equal(b.LastModified) {
			return a.LastModified.After(b.LastModified)
		}
		return a.ID.String() < b.ID.String()
	})

	selected := make([]uuid.UUID, 0, caps.Total)
	seen := make(map[uuid.UUID]struct{}, caps.Total)

	taken := 0
	for _, l := range sorted {
		if len(selected) >= caps.Total || taken >= caps.Priority {
			break
		}
		if _, ok := priority[l.ID]; !ok {
			continue
		}
		selected = append(selected, l.ID)
		seen[l.ID] = struct{}{}
		taken++
	}

	taken = 0
	for _, l := range sorted {
		if len(selected) >= caps.Total || taken >= caps.Recency {
			break
		}
		if _, ok := seen[l.ID]; ok {
			continue
		}
		selected = append(selected, l.ID)
		seen[l.ID] = struct{}{}
		taken++
	}

	return selected
}
