package planner

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Alerta/internal/domain"
)

var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

// item создаёт элемент со сроком через offset от testNow.
func item(offset time.Duration) domain.ReminderItem {
	due := testNow.Add(offset)
	return domain.ReminderItem{
		ID:      uuid.New(),
		ListID:  uuid.New(),
		Title:   "test",
		DueDate: &due,
	}
}

// apply применяет Diff к pending-набору (модель идемпотентности).
func apply(pending []domain.PendingAlert, diff Diff) []domain.PendingAlert {
	cancelled := make(map[domain.AlertID]struct{}, len(diff.ToCancel))
	for _, id := range diff.ToCancel {
		cancelled[id] = struct{}{}
	}

	var next []domain.PendingAlert
	for _, p := range pending {
		if _, ok := cancelled[p.ID]; !ok {
			next = append(next, p)
		}
	}
	for _, it := range diff.ToSchedule {
		next = append(next, domain.PendingAlert{ID: domain.AlertIDFor(it.ID), FireAt: it.DueDate})
	}
	return next
}

func TestPlan_Filtering(t *testing.T) {
	checked := item(time.Hour)
	checked.Checked = true

	deleted := item(time.Hour)
	deleted.Deleted = true

	noDue := item(time.Hour)
	noDue.DueDate = nil

	ok := item(time.Hour)

	diff := Plan([]domain.ReminderItem{checked, deleted, noDue, ok}, nil, 10, testNow)

	if diff.Admitted != 1 {
		t.Errorf("expected 1 admitted, got %d", diff.Admitted)
	}
	if len(diff.ToSchedule) != 1 || diff.ToSchedule[0].ID != ok.ID {
		t.Errorf("expected only the eligible item scheduled, got %v", diff.ToSchedule)
	}
}

func TestPlan_PastDueNotRearmed(t *testing.T) {
	// Просроченный элемент проходит admission, но не взводится заново.
	past := item(-time.Hour)
	future := item(time.Hour)

	diff := Plan([]domain.ReminderItem{past, future}, nil, 10, testNow)

	if diff.Admitted != 2 {
		t.Errorf("expected 2 admitted, got %d", diff.Admitted)
	}
	if len(diff.ToSchedule) != 1 || diff.ToSchedule[0].ID != future.ID {
		t.Errorf("expected only the future item scheduled, got %v", diff.ToSchedule)
	}
}

func TestPlan_BudgetAdmission(t *testing.T) {
	// 70 кандидатов при бюджете 60: ближайшие 60 проходят, 10 ждут.
	var items []domain.ReminderItem
	for i := 0; i < 70; i++ {
		items = append(items, item(time.Duration(i+1)*time.Minute))
	}

	diff := Plan(items, nil, 60, testNow)

	if diff.Admitted != 60 {
		t.Errorf("expected 60 admitted, got %d", diff.Admitted)
	}
	if diff.Deferred != 10 {
		t.Errorf("expected 10 deferred, got %d", diff.Deferred)
	}
	if len(diff.ToSchedule) != 60 {
		t.Errorf("expected 60 to schedule, got %d", len(diff.ToSchedule))
	}

	// Проходят именно ближайшие по сроку
	for i := 1; i < len(diff.ToSchedule); i++ {
		if diff.ToSchedule[i].DueDate.Before(*diff.ToSchedule[i-1].DueDate) {
			t.Fatal("ToSchedule is not ordered by due date")
		}
	}
}

func TestPlan_BudgetInvariant(t *testing.T) {
	// После применения диффа своих pending-алертов не больше бюджета.
	var items []domain.ReminderItem
	var pending []domain.PendingAlert
	for i := 0; i < 30; i++ {
		it := item(time.Duration(i+1) * time.Hour)
		items = append(items, it)
		if i%2 == 0 {
			pending = append(pending, domain.PendingAlert{ID: domain.AlertIDFor(it.ID), FireAt: it.DueDate})
		}
	}

	for _, budget := range []int{0, 1, 10, 15, 29, 30, 100} {
		diff := Plan(items, pending, budget, testNow)
		after := apply(pending, diff)

		owned := 0
		for _, p := range after {
			if p.ID.Owned() {
				owned++
			}
		}
		if owned > budget {
			t.Errorf("budget %d: %d owned alerts after apply", budget, owned)
		}
	}
}

func TestPlan_CancelsEvictedAndUndesired(t *testing.T) {
	kept := item(time.Hour)
	evicted := item(2 * time.Hour)

	done := item(30 * time.Minute)
	done.Checked = true

	pending := []domain.PendingAlert{
		{ID: domain.AlertIDFor(kept.ID)},
		{ID: domain.AlertIDFor(evicted.ID)},
		{ID: domain.AlertIDFor(done.ID)},
	}

	// Бюджет 1: kept проходит (ближайший срок), evicted вытесняется,
	// done больше не желателен.
	diff := Plan([]domain.ReminderItem{kept, evicted, done}, pending, 1, testNow)

	if len(diff.ToSchedule) != 0 {
		t.Errorf("expected nothing to schedule, got %v", diff.ToSchedule)
	}
	if len(diff.ToCancel) != 2 {
		t.Fatalf("expected 2 cancellations, got %d", len(diff.ToCancel))
	}
	cancelled := map[domain.AlertID]struct{}{}
	for _, id := range diff.ToCancel {
		cancelled[id] = struct{}{}
	}
	if _, ok := cancelled[domain.AlertIDFor(evicted.ID)]; !ok {
		t.Error("evicted item's alert not cancelled")
	}
	if _, ok := cancelled[domain.AlertIDFor(done.ID)]; !ok {
		t.Error("checked item's alert not cancelled")
	}
}

func TestPlan_ForeignAlertsUntouched(t *testing.T) {
	pending := []domain.PendingAlert{
		{ID: "some-other-subsystem:42"},
		{ID: "calendar:event:abc"},
	}

	diff := Plan(nil, pending, 10, testNow)

	if len(diff.ToCancel) != 0 {
		t.Errorf("foreign alerts must never be cancelled, got %v", diff.ToCancel)
	}
}

func TestPlan_Idempotence(t *testing.T) {
	var items []domain.ReminderItem
	for i := 0; i < 25; i++ {
		items = append(items, item(time.Duration(i+1)*time.Minute))
	}
	pending := []domain.PendingAlert{{ID: "foreign:1"}}

	first := Plan(items, pending, 20, testNow)
	after := apply(pending, first)

	second := Plan(items, after, 20, testNow)
	if len(second.ToSchedule) != 0 || len(second.ToCancel) != 0 {
		t.Errorf("expected empty diff on re-plan, got schedule=%d cancel=%d",
			len(second.ToSchedule), len(second.ToCancel))
	}
}

func TestPlan_Deterministic(t *testing.T) {
	// Одинаковые сроки: порядок стабилен за счёт tie-break по ID.
	due := testNow.Add(time.Hour)
	var items []domain.ReminderItem
	for i := 0; i < 10; i++ {
		items = append(items, domain.ReminderItem{
			ID:      uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", 9-i)),
			ListID:  uuid.Nil,
			DueDate: &due,
		})
	}
	pending := []domain.PendingAlert{
		{ID: domain.AlertIDFor(items[3].ID)},
		{ID: "foreign:x"},
	}

	first := Plan(items, pending, 5, testNow)
	second := Plan(items, pending, 5, testNow)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different plans")
	}

	// Tie-break: ID по возрастанию
	for i := 1; i < len(first.ToSchedule); i++ {
		if first.ToSchedule[i-1].ID.String() > first.ToSchedule[i].ID.String() {
			t.Fatal("equal due dates not ordered by item ID")
		}
	}
}

func TestPlan_NegativeBudget(t *testing.T) {
	it := item(time.Hour)
	pending := []domain.PendingAlert{{ID: domain.AlertIDFor(it.ID)}}

	diff := Plan([]domain.ReminderItem{it}, pending, -5, testNow)

	if diff.Admitted != 0 || len(diff.ToSchedule) != 0 {
		t.Error("negative budget must admit nothing")
	}
	if len(diff.ToCancel) != 1 {
		t.Errorf("expected the pending alert cancelled, got %v", diff.ToCancel)
	}
}
