package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Alerta/internal/domain"
	"github.com/shaiso/Alerta/internal/gateway"
	"github.com/shaiso/Alerta/internal/planner"
	"github.com/shaiso/Alerta/internal/telemetry"
)

// Default configuration values.
const (
	// defaultBudget — бюджет алертов движка. Строго меньше жёсткого
	// потолка платформы (64): запас остаётся алертам, которыми движок
	// не управляет.
	defaultBudget = 60

	defaultScanCap      = 30
	defaultPriorityPool = 10
	defaultRecencyPool  = 20

	defaultWakeFloor = 30 * time.Minute
	defaultWakeIdle  = 4 * time.Hour
	defaultWakeLead  = time.Hour
)

// Store — доступ движка к внешнему хранилищу списков и элементов.
//
// Хранилище владеет элементами и мутирует их; движок только читает,
// за единственным исключением SaveItem из обработки действия "выполнено".
type Store interface {
	// ListAllLists перечисляет все списки с временем последнего изменения.
	ListAllLists(ctx context.Context) ([]domain.ListRef, error)

	// ListItemsWithReminders возвращает элементы списка, несущие
	// напоминание, включая выполненные и помеченные удалёнными —
	// их алерты подлежат отмене.
	ListItemsWithReminders(ctx context.Context, listID uuid.UUID) ([]domain.ReminderItem, error)

	// ListsOwningItems возвращает списки, которым принадлежат элементы.
	// Используется для приоритетного пула выбора списков.
	ListsOwningItems(ctx context.Context, itemIDs []uuid.UUID) ([]uuid.UUID, error)

	// GetItem возвращает элемент списка. (nil, nil) если элемент не найден.
	GetItem(ctx context.Context, listID, itemID uuid.UUID) (*domain.ReminderItem, error)

	// SaveItem сохраняет элемент.
	SaveItem(ctx context.Context, item *domain.ReminderItem) error
}

// SummaryPublisher публикует итоги пасса для внешних потребителей.
type SummaryPublisher interface {
	PublishPassCompleted(ctx context.Context, trigger string, summary domain.Summary) error
}

// Scheduler — оркестратор пассов сверки.
//
// Пасс: разрешение → желаемые элементы окна сканирования → pending-набор
// шлюза → planner.Plan → применение диффа (отмены раньше взведений) →
// регистрация следующего пробуждения. Между пассами не живёт никакое
// изменяемое состояние — всё перевычисляется из хранилища и шлюза,
// поэтому движок самовосстанавливается после рестартов.
type Scheduler struct {
	store     Store
	gateway   gateway.Gateway
	wakes     WakeRegistrar
	publisher SummaryPublisher

	leases *listLeases

	budget int
	caps   ScanCaps
	wake   WakeConfig

	logger *slog.Logger
	now    func() time.Time
}

// Config — конфигурация Scheduler.
type Config struct {
	Store     Store
	Gateway   gateway.Gateway
	Wakes     WakeRegistrar    // опционально
	Publisher SummaryPublisher // опционально

	Budget       int           // бюджет алертов (default: 60)
	ScanCap      int           // максимум списков за пасс (default: 30)
	PriorityPool int           // пул списков с алертами (default: 10)
	RecencyPool  int           // пул недавно изменённых (default: 20)
	WakeFloor    time.Duration // минимальный интервал пробуждений (default: 30m)
	IdleInterval time.Duration // максимальный интервал (default: 4h)
	LeadTime     time.Duration // подъём до ближайшего алерта (default: 1h)

	Logger *slog.Logger
	Now    func() time.Time // для тестов (default: time.Now)
}

// New создаёт новый Scheduler.
func New(cfg Config) *Scheduler {
	budget := cfg.Budget
	if budget <= 0 {
		budget = defaultBudget
	}

	caps := ScanCaps{Total: cfg.ScanCap, Priority: cfg.PriorityPool, Recency: cfg.RecencyPool}
	if caps.Total <= 0 {
		caps.Total = defaultScanCap
	}
	if caps.Priority <= 0 {
		caps.Priority = defaultPriorityPool
	}
	if caps.Recency <= 0 {
		caps.Recency = defaultRecencyPool
	}

	wake := WakeConfig{Floor: cfg.WakeFloor, Idle: cfg.IdleInterval, Lead: cfg.LeadTime}
	if wake.Floor <= 0 {
		wake.Floor = defaultWakeFloor
	}
	if wake.Idle <= 0 {
		wake.Idle = defaultWakeIdle
	}
	if wake.Lead <= 0 {
		wake.Lead = defaultWakeLead
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Scheduler{
		store:     cfg.Store,
		gateway:   cfg.Gateway,
		wakes:     cfg.Wakes,
		publisher: cfg.Publisher,
		leases:    newListLeases(),
		budget:    budget,
		caps:      caps,
		wake:      wake,
		logger:    logger,
		now:       now,
	}
}

// RunReconciliation выполняет один пасс сверки по всему парку списков.
//
// Ошибки чтения одного списка пропускают этот список, остальные
// обрабатываются. Ошибки отдельных взведений считаются в Summary.Failed
// и не прерывают пасс. Повторный пасс без изменений элементов даёт
// пустой дифф.
func (s *Scheduler) RunReconciliation(ctx context.Context, trigger string) (domain.Summary, error) {
	start := s.now()
	log := s.logger.With("trigger", trigger)

	var summary domain.Summary

	// Следующее пробуждение регистрируется на любом исходе — включая
	// отказ в разрешении и истёкший дедлайн — иначе конвейер без живого
	// соединения с хостом остановится навсегда.
	defer s.registerNextWake(ctx, log)
	defer func() {
		telemetry.ObservePass(trigger, summary, s.now().Sub(start))
	}()

	okPerm, err := s.gateway.HasPermission(ctx)
	if err != nil {
		return summary, fmt.Errorf("check permission: %w", err)
	}
	if !okPerm {
		// Нет разрешения — пасс становится no-op, не ошибкой.
		// Повторим на следующем триггере.
		log.Info("alert permission unavailable, pass is a no-op")
		return summary, nil
	}

	pending, err := s.gateway.PendingAlerts(ctx)
	if err != nil {
		return summary, fmt.Errorf("pending alerts: %w", err)
	}

	lists, err := s.store.ListAllLists(ctx)
	if err != nil {
		return summary, fmt.Errorf("list all lists: %w", err)
	}

	// Приоритетный пул: списки, уже владеющие алертом.
	priority := s.listsOwningPending(ctx, log, pending)

	selected := SelectLists(lists, priority, s.caps)
	summary.SkippedLists = len(lists) - len(selected)

	// Собираем элементы выбранных списков. Лизы держатся до конца
	// применения диффа: одновременный пасс по тому же списку невозможен.
	var items []domain.ReminderItem
	scanned := make(map[uuid.UUID]struct{})
	clean := true

	for _, listID := range selected {
		if ctx.Err() != nil {
			// Дедлайн пасса истёк: бросаем недочитанное, wake уже в defer.
			log.Warn("pass deadline expired while reading lists")
			clean = false
			break
		}

		if !s.leases.TryAcquire(listID) {
			// Список сверяется другим пассом — пропускаем в этом.
			summary.SkippedLists++
			clean = false
			continue
		}
		defer s.leases.Release(listID)

		batch, err := s.store.ListItemsWithReminders(ctx, listID)
		if err != nil {
			log.Warn("failed to read list, skipping it this pass",
				"list_id", listID,
				"error", err,
			)
			clean = false
			continue
		}

		items = append(items, batch...)
		for _, it := range batch {
			scanned[it.ID] = struct{}{}
		}
	}

	// Свои алерты, чьи элементы не попали в окно сканирования, из сверки
	// исключаются: отменять их нельзя, элемент мог остаться желаемым.
	// Только полный чистый скан трактует их как осиротевшие.
	s.reconcileScope(ctx, log, items, pending, scanned, clean && summary.SkippedLists == 0, &summary)

	log.Info("reconciliation pass completed",
		"admitted", summary.Admitted,
		"scheduled", summary.Scheduled,
		"cancelled", summary.Cancelled,
		"deferred", summary.Deferred,
		"failed", summary.Failed,
		"skipped_lists", summary.SkippedLists,
		"duration", s.now().Sub(start),
	)

	s.publishSummary(ctx, log, trigger, summary)
	return summary, nil
}

// ReconcileList выполняет пасс сверки по одному списку.
//
// Тот же planner.Plan, что и для всего парка: масштаб выражается входным
// набором кандидатов. Если список уже сверяется другим пассом,
// возвращается ErrListBusy — вызывающий повторяет позже.
func (s *Scheduler) ReconcileList(ctx context.Context, trigger string, listID uuid.UUID) (domain.Summary, error) {
	if !s.leases.TryAcquire(listID) {
		return domain.Summary{}, fmt.Errorf("list %s: %w", listID, ErrListBusy)
	}
	defer s.leases.Release(listID)

	return s.reconcileListLocked(ctx, trigger, listID)
}

// reconcileListLocked — пасс по одному списку. Лиза списка уже взята.
func (s *Scheduler) reconcileListLocked(ctx context.Context, trigger string, listID uuid.UUID) (domain.Summary, error) {
	start := s.now()
	log := s.logger.With("trigger", trigger, "list_id", listID)

	var summary domain.Summary

	defer s.registerNextWake(ctx, log)
	defer func() {
		telemetry.ObservePass(trigger, summary, s.now().Sub(start))
	}()

	okPerm, err := s.gateway.HasPermission(ctx)
	if err != nil {
		return summary, fmt.Errorf("check permission: %w", err)
	}
	if !okPerm {
		log.Info("alert permission unavailable, pass is a no-op")
		return summary, nil
	}

	pending, err := s.gateway.PendingAlerts(ctx)
	if err != nil {
		return summary, fmt.Errorf("pending alerts: %w", err)
	}

	items, err := s.store.ListItemsWithReminders(ctx, listID)
	if err != nil {
		return summary, fmt.Errorf("list items: %w", err)
	}

	scanned := make(map[uuid.UUID]struct{}, len(items))
	for _, it := range items {
		scanned[it.ID] = struct{}{}
	}

	s.reconcileScope(ctx, log, items, pending, scanned, false, &summary)

	log.Info("list reconciliation completed",
		"scheduled", summary.Scheduled,
		"cancelled", summary.Cancelled,
		"deferred", summary.Deferred,
		"failed", summary.Failed,
	)

	s.publishSummary(ctx, log, trigger, summary)
	return summary, nil
}

// reconcileScope сверяет кандидатов одного масштаба с pending-набором.
//
// Свои алерты вне scanned-набора — вне масштаба пасса: они исключаются
// из входа планировщика (их нельзя ни перевзводить, ни отменять) и
// уменьшают доступный бюджет, чтобы глобальный инвариант |своих| ≤ бюджет
// держался при любом масштабе. cancelOrphans=true — только для полного
// чистого скана: тогда нераспознанные свои алерты осиротели и снимаются.
func (s *Scheduler) reconcileScope(
	ctx context.Context,
	log *slog.Logger,
	items []domain.ReminderItem,
	pending []domain.PendingAlert,
	scanned map[uuid.UUID]struct{},
	cancelOrphans bool,
	summary *domain.Summary,
) {
	inScope := make([]domain.PendingAlert, 0, len(pending))
	var outOfScope []domain.AlertID

	for _, p := range pending {
		itemID, owned := domain.ParseAlertID(p.ID)
		if !owned {
			// Чужой алерт: в план попадает, но planner его не тронет.
			inScope = append(inScope, p)
			continue
		}
		if _, ok := scanned[itemID]; ok {
			inScope = append(inScope, p)
		} else {
			outOfScope = append(outOfScope, p.ID)
		}
	}

	budget := s.budget
	if !cancelOrphans {
		// Вне масштаба остаются действующие обязательства — бюджет
		// этого пасса сокращается на их число.
		budget -= len(outOfScope)
	}

	diff := planner.Plan(items, inScope, budget, s.now())

	if cancelOrphans && len(outOfScope) > 0 {
		log.Info("cancelling orphaned alerts", "count", len(outOfScope))
		diff.ToCancel = append(diff.ToCancel, outOfScope...)
	}

	summary.Admitted += diff.Admitted
	summary.Deferred += diff.Deferred

	s.applyDiff(ctx, log, diff, summary)
}

// applyDiff применяет дифф к шлюзу.
//
// Отмены идут раньше взведений: иначе можно на мгновение упереться в
// жёсткий потолок хоста. Ошибка одного взведения считается и не
// прерывает остальные.
func (s *Scheduler) applyDiff(ctx context.Context, log *slog.Logger, diff planner.Diff, summary *domain.Summary) {
	if len(diff.ToCancel) > 0 {
		if err := s.gateway.Cancel(ctx, diff.ToCancel); err != nil {
			log.Warn("failed to cancel alerts", "count", len(diff.ToCancel), "error", err)
			summary.Failed += len(diff.ToCancel)
		} else {
			summary.Cancelled += len(diff.ToCancel)
		}
	}

	for i := range diff.ToSchedule {
		it := &diff.ToSchedule[i]

		if ctx.Err() != nil {
			// Дедлайн пасса: оставшиеся взведения подождут следующего.
			summary.Failed += len(diff.ToSchedule) - i
			log.Warn("pass deadline expired while submitting alerts",
				"remaining", len(diff.ToSchedule)-i,
			)
			return
		}

		err := s.gateway.Submit(ctx, domain.AlertIDFor(it.ID), *it.DueDate, alertPayloadFor(it))
		if err != nil {
			summary.Failed++
			log.Warn("failed to submit alert",
				"item_id", it.ID,
				"list_id", it.ListID,
				"error", err,
			)
			continue
		}
		summary.Scheduled++
	}
}

// listsOwningPending возвращает множество списков с действующими алертами.
// Ошибка здесь не фатальна: пасс продолжается без приоритетного пула.
func (s *Scheduler) listsOwningPending(ctx context.Context, log *slog.Logger, pending []domain.PendingAlert) map[uuid.UUID]struct{} {
	var itemIDs []uuid.UUID
	for _, p := range pending {
		if itemID, ok := domain.ParseAlertID(p.ID); ok {
			itemIDs = append(itemIDs, itemID)
		}
	}
	if len(itemIDs) == 0 {
		return nil
	}

	listIDs, err := s.store.ListsOwningItems(ctx, itemIDs)
	if err != nil {
		log.Warn("failed to resolve lists owning pending alerts", "error", err)
		return nil
	}

	priority := make(map[uuid.UUID]struct{}, len(listIDs))
	for _, id := range listIDs {
		priority[id] = struct{}{}
	}
	return priority
}

// registerNextWake вычисляет и регистрирует следующее пробуждение.
//
// Вызывается в defer каждого пасса на свежем контексте: даже пасс,
// оборванный дедлайном, оставляет после себя будущее пробуждение.
func (s *Scheduler) registerNextWake(ctx context.Context, log *slog.Logger) {
	if s.wakes == nil {
		return
	}

	wakeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	now := s.now()

	var fireTimes []time.Time
	pending, err := s.gateway.PendingAlerts(wakeCtx)
	if err != nil {
		// Шлюз недоступен — просыпаемся по idle-интервалу.
		log.Warn("failed to fetch pending alerts for wake computation", "error", err)
	} else {
		owned := 0
		for _, p := range pending {
			if !p.ID.Owned() {
				continue
			}
			owned++
			if p.FireAt != nil {
				fireTimes = append(fireTimes, *p.FireAt)
			}
		}
		telemetry.SetPendingOwned(owned)
	}

	at := NextWake(fireTimes, now, s.wake)
	if err := s.wakes.RegisterWake(wakeCtx, at); err != nil {
		log.Warn("failed to register next wake", "at", at, "error", err)
		return
	}

	log.Debug("next wake registered", "at", at, "in", at.Sub(now))
}

// publishSummary публикует итоги пасса. Ошибка публикации не фатальна.
func (s *Scheduler) publishSummary(ctx context.Context, log *slog.Logger, trigger string, summary domain.Summary) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishPassCompleted(ctx, trigger, summary); err != nil {
		log.Warn("failed to publish pass summary", "error", err)
	}
}

// alertPayloadFor собирает полезную нагрузку алерта для элемента.
func alertPayloadFor(it *domain.ReminderItem) domain.AlertPayload {
	return domain.AlertPayload{
		Title:    it.Title,
		Body:     it.Notes,
		Category: domain.CategoryComplete,
		ItemID:   it.ID,
		ListID:   it.ListID,
	}
}
