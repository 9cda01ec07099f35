package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"brewline/internal/domain"
	"brewline/internal/errors"
)

type MySQLItemRepository struct {
	db *sql.DB
}

func NewMySQLItemRepository(db *sql.DB) *MySQLItemRepository {
	return &MySQLItemRepository{db: db}
}

const itemColumns = `id, name, unit_label, rate, category, status, created_by, created_at, updated_at`

func (r *MySQLItemRepository) List(ctx context.Context, status string) ([]domain.InventoryItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM inventory_items
		ORDER BY name ASC`, itemColumns)
	var args []interface{}

	if status != "" && status != "all" {
		query = fmt.Sprintf(`
		SELECT %s
		FROM inventory_items
		WHERE status = ?
		ORDER BY name ASC`, itemColumns)
		args = append(args, status)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying inventory items: %w", err)
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating inventory item rows: %w", err)
	}

	return items, nil
}

func (r *MySQLItemRepository) FindByID(ctx context.Context, id uint) (*domain.InventoryItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM inventory_items
		WHERE id = ?`, itemColumns)

	var item domain.InventoryItem
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.UnitLabel, &item.Rate, &item.Category,
		&item.Status, &item.CreatedBy, &item.CreatedAt, &item.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("inventory item with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying inventory item by id: %w", err)
	}

	return &item, nil
}

func (r *MySQLItemRepository) Insert(ctx context.Context, item domain.InventoryItem) (uint, error) {
	query := `
		INSERT INTO inventory_items (name, unit_label, rate, category, status, created_by)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		item.Name, item.UnitLabel, item.Rate, item.Category, item.Status, item.CreatedBy,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting inventory item: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

type ItemPatch struct {
	Name      *string
	UnitLabel *string
	Rate      *decimal.Decimal
	Category  *string
	Status    *string
}

func (r *MySQLItemRepository) Update(ctx context.Context, id uint, patch ItemPatch) error {
	query := `
		UPDATE inventory_items
		SET name = COALESCE(?, name),
		    unit_label = COALESCE(?, unit_label),
		    rate = COALESCE(?, rate),
		    category = COALESCE(?, category),
		    status = COALESCE(?, status),
		    updated_at = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		patch.Name, patch.UnitLabel, patch.Rate, patch.Category, patch.Status,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("updating inventory item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("inventory item with id %d not found", id))
	}

	return nil
}

// Delete hard-deletes the item. Foreign key violations (item referenced by
// historical order lines) are returned unmapped so the service can fall
// back to deactivation.
func (r *MySQLItemRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("inventory item with id %d not found", id))
	}

	return nil
}

func (r *MySQLItemRepository) Deactivate(ctx context.Context, id uint) error {
	query := `UPDATE inventory_items SET status = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, domain.InventoryItemInactive, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("deactivating inventory item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("inventory item with id %d not found", id))
	}

	return nil
}

func scanItem(rows *sql.Rows) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := rows.Scan(
		&item.ID, &item.Name, &item.UnitLabel, &item.Rate, &item.Category,
		&item.Status, &item.CreatedBy, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning inventory item row: %w", err)
	}
	return &item, nil
}
