package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Alerta/internal/domain"
)

// Store — хранилище списков и элементов на PostgreSQL.
//
// Методы элементов — в этом файле, методы списков — в list_repo.go.
// Store реализует scheduler.Store.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore создаёт новый Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// itemColumns — колонки items в порядке сканирования.
const itemColumns = `
	id, list_id, title, notes, due_at,
	repeat_unit, repeat_interval, repeat_mode,
	checked, deleted, created_at, updated_at
`

// ListItemsWithReminders возвращает элементы списка, несущие напоминание.
//
// Выполненные и помеченные удалёнными элементы со сроком тоже попадают
// в выборку: их алерты подлежат отмене на ближайшем пассе.
func (r *Store) ListItemsWithReminders(ctx context.Context, listID uuid.UUID) ([]domain.ReminderItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE list_id = $1
		  AND due_at IS NOT NULL
		ORDER BY due_at ASC, id ASC
	`
	rows, err := r.pool.Query(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("list items with reminders: %w", err)
	}
	defer rows.Close()

	var items []domain.ReminderItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// ListsOwningItems возвращает списки, которым принадлежат элементы.
func (r *Store) ListsOwningItems(ctx context.Context, itemIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT DISTINCT list_id
		FROM items
		WHERE id = ANY($1)
	`
	rows, err := r.pool.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("lists owning items: %w", err)
	}
	defer rows.Close()

	var listIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan list id: %w", err)
		}
		listIDs = append(listIDs, id)
	}
	return listIDs, rows.Err()
}

// GetItem возвращает элемент списка. (nil, nil) если элемент не найден —
// так того требует контракт scheduler.Store.
func (r *Store) GetItem(ctx context.Context, listID, itemID uuid.UUID) (*domain.ReminderItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE list_id = $1 AND id = $2
	`
	item, err := scanItem(r.pool.QueryRow(ctx, query, listID, itemID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return item, err
}

// SaveItem сохраняет элемент и поднимает last_modified его списка.
func (r *Store) SaveItem(ctx context.Context, item *domain.ReminderItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var unit *string
	var interval *int
	var mode *string
	if item.Repeat != nil {
		u := string(item.Repeat.Unit)
		unit = &u
		interval = &item.Repeat.Interval
		m := string(item.RepeatMode)
		mode = &m
	}

	query := `
		UPDATE items
		SET title = $3, notes = $4, due_at = $5,
		    repeat_unit = $6, repeat_interval = $7, repeat_mode = $8,
		    checked = $9, deleted = $10, updated_at = $11
		WHERE list_id = $1 AND id = $2
	`
	result, err := tx.Exec(ctx, query,
		item.ListID,
		item.ID,
		item.Title,
		nullString(item.Notes),
		item.DueDate,
		unit,
		interval,
		mode,
		item.Checked,
		item.Deleted,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	_, err = tx.Exec(ctx, `
		UPDATE lists SET last_modified = $2 WHERE id = $1
	`, item.ListID, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("touch list: %w", err)
	}

	return tx.Commit(ctx)
}

// scanItem читает одну строку items.
func scanItem(row pgx.Row) (*domain.ReminderItem, error) {
	var it domain.ReminderItem
	var notes *string
	var unit *string
	var interval *int
	var mode *string

	err := row.Scan(
		&it.ID,
		&it.ListID,
		&it.Title,
		&notes,
		&it.DueDate,
		&unit,
		&interval,
		&mode,
		&it.Checked,
		&it.Deleted,
		&it.CreatedAt,
		&it.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan item: %w", err)
	}

	if notes != nil {
		it.Notes = *notes
	}
	if unit != nil {
		it.Repeat = &domain.RepeatRule{Unit: domain.RepeatUnit(*unit), Interval: 1}
		if interval != nil {
			it.Repeat.Interval = *interval
		}
	}
	if mode != nil {
		it.RepeatMode = domain.RepeatMode(*mode)
	}

	return &it, nil
}

// nullString возвращает nil для пустой строки (для NULL в БД).
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
