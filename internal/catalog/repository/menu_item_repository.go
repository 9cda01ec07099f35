package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"brewline/internal/domain"
)

type MySQLMenuItemRepository struct {
	db *sql.DB
}

func NewMySQLMenuItemRepository(db *sql.DB) *MySQLMenuItemRepository {
	return &MySQLMenuItemRepository{db: db}
}

const menuItemColumns = `id, name, price, category_id, description, image_url,
	       is_available, preparation_time_minutes, created_at, updated_at`

func (r *MySQLMenuItemRepository) ListAll(ctx context.Context) ([]domain.MenuItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM menu_items
		ORDER BY category_id ASC, name ASC`, menuItemColumns)

	return r.queryMenuItems(ctx, query)
}

func (r *MySQLMenuItemRepository) ListAvailable(ctx context.Context) ([]domain.MenuItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM menu_items
		WHERE is_available = 1
		ORDER BY category_id ASC, name ASC`, menuItemColumns)

	return r.queryMenuItems(ctx, query)
}

func (r *MySQLMenuItemRepository) ListByCategory(ctx context.Context, categoryID int) ([]domain.MenuItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM menu_items
		WHERE category_id = ?
		ORDER BY name ASC`, menuItemColumns)

	return r.queryMenuItems(ctx, query, categoryID)
}

// FindAvailableByIDs runs on the caller's transaction so the order
// placement engine re-checks availability inside its own transaction.
func (r *MySQLMenuItemRepository) FindAvailableByIDs(ctx context.Context, tx *sql.Tx, ids []uint) ([]domain.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM menu_items
		WHERE id IN (%s)
		  AND is_available = 1`,
		menuItemColumns, strings.Join(placeholders, ", "),
	)

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying menu items by ids: %w", err)
	}
	defer rows.Close()

	return scanMenuItems(rows)
}

func (r *MySQLMenuItemRepository) queryMenuItems(ctx context.Context, query string, args ...interface{}) ([]domain.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying menu items: %w", err)
	}
	defer rows.Close()

	return scanMenuItems(rows)
}

func scanMenuItems(rows *sql.Rows) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	for rows.Next() {
		var m domain.MenuItem
		err := rows.Scan(
			&m.ID, &m.Name, &m.Price, &m.CategoryID, &m.Description, &m.ImageURL,
			&m.IsAvailable, &m.PreparationTimeMinutes, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning menu item row: %w", err)
		}
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating menu item rows: %w", err)
	}

	return items, nil
}
