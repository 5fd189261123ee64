package scheduler

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Alerta/internal/domain"
)

func TestSelectLists_SmallFleet(t *testing.T) {
	// Парк меньше окна — сканируется всё
	var lists []domain.ListRef
	for i := 0; i < 10; i++ {
		lists = append(lists, domain.ListRef{ID: uuid.New(), LastModified: testNow})
	}

	got := SelectLists(lists, nil, ScanCaps{Total: 30, Priority: 10, Recency: 20})
	if len(got) != 10 {
		t.Errorf("expected all 10 lists, got %d", len(got))
	}
}

func TestSelectLists_Cap(t *testing.T) {
	// 50 списков, 3 владеют алертом, окно 30, recency-пул 20:
	// выбираются эти 3 плюс 20 самых недавно изменённых — 23 списка.
	var lists []domain.ListRef
	for i := 0; i < 50; i++ {
		lists = append(lists, domain.ListRef{
			ID:           uuid.New(),
			LastModified: testNow.Add(-time.Duration(i) * time.Hour),
		})
	}

	priority := map[uuid.UUID]struct{}{
		// Самые старые — вне recency-окна, попадают только через приоритет
		lists[47].ID: {},
		lists[48].ID: {},
		lists[49].ID: {},
	}

	caps := ScanCaps{Total: 30, Priority: 10, Recency: 20}
	got := SelectLists(lists, priority, caps)

	if len(got) != 23 {
		t.Fatalf("expected 23 lists selected, got %d", len(got))
	}

	selected := make(map[uuid.UUID]struct{}, len(got))
	for _, id := range got {
		selected[id] = struct{}{}
	}

	for pid := range priority {
		if _, ok := selected[pid]; !ok {
			t.Error("list owning a pending alert not selected")
		}
	}

	// Recency-пул: 20 самых свежих из остальных
	for i := 0; i < 20; i++ {
		if _, ok := selected[lists[i].ID]; !ok {
			t.Errorf("recently modified list %d not selected", i)
		}
	}
}

func TestSelectLists_PriorityPoolBounded(t *testing.T) {
	// Приоритетных списков больше предела пула — берутся только Priority
	var lists []domain.ListRef
	priority := make(map[uuid.UUID]struct{})
	for i := 0; i < 40; i++ {
		l := domain.ListRef{
			ID:           uuid.New(),
			LastModified: testNow.Add(-time.Duration(i) * time.Minute),
		}
		lists = append(lists, l)
		if i < 15 {
			priority[l.ID] = struct{}{}
		}
	}

	caps := ScanCaps{Total: 12, Priority: 5, Recency: 4}
	got := SelectLists(lists, priority, caps)

	if len(got) != 9 {
		t.Errorf("expected 5 priority + 4 recency = 9 lists, got %d", len(got))
	}
}

func TestSelectLists_Deterministic(t *testing.T) {
	var lists []domain.ListRef
	for i := 0; i < 40; i++ {
		lists = append(lists, domain.ListRef{ID: uuid.New(), LastModified: testNow})
	}

	caps := ScanCaps{Total: 10, Priority: 3, Recency: 7}
	first := SelectLists(lists, nil, caps)
	second := SelectLists(lists, nil, caps)

	if len(first) != len(second) {
		t.Fatal("selection size differs between runs")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatal("selection order differs between runs")
		}
	}
}
