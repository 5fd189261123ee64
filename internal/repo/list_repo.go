package repo

import (
	"context"
	"fmt"

	"github.com/shaiso/Alerta/internal/domain"
)

// ListAllLists возвращает все списки, от недавно изменённых к старым.
func (r *Store) ListAllLists(ctx context.Context) ([]domain.ListRef, error) {
	query := `
		SELECT id, name, last_modified
		FROM lists
		ORDER BY last_modified DESC, id ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all lists: %w", err)
	}
	defer rows.Close()

	var lists []domain.ListRef
	for rows.Next() {
		var l domain.ListRef
		if err := rows.Scan(&l.ID, &l.Name, &l.LastModified); err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}
