package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"brewline/internal/domain"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) InsertOrder(ctx context.Context, tx *sql.Tx, orderedBy string, notes *string, at time.Time) (uint, error) {
	query := `
		INSERT INTO inventory_orders (status, ordered_by, notes, ordered_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, domain.InventoryOrderPending, orderedBy, notes, at, at)
	if err != nil {
		return 0, fmt.Errorf("inserting inventory order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

// InsertLineFromItem snapshots name, unit and rate from the live inventory
// item row in a single INSERT…SELECT, computing line_amount = quantity × rate
// in the database. Returns the number of rows inserted: zero means the item
// id does not exist.
func (r *MySQLOrderRepository) InsertLineFromItem(ctx context.Context, tx *sql.Tx, orderID, itemID uint, quantity int) (int64, error) {
	query := `
		INSERT INTO inventory_order_items
			(order_id, inventory_item_id, item_name_snapshot, unit_label_snapshot,
			 unit_rate_snapshot, quantity, line_amount)
		SELECT ?, i.id, i.name, i.unit_label, i.rate, ?, (? * i.rate)
		FROM inventory_items i
		WHERE i.id = ?`

	result, err := tx.ExecContext(ctx, query, orderID, quantity, quantity, itemID)
	if err != nil {
		return 0, fmt.Errorf("inserting inventory order line: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected, nil
}

func (r *MySQLOrderRepository) UpdateTotalFromLines(ctx context.Context, tx *sql.Tx, orderID uint) error {
	query := `
		UPDATE inventory_orders o
		SET o.total_amount = COALESCE(
		      (SELECT SUM(line_amount) FROM inventory_order_items WHERE order_id = o.id), 0),
		    o.updated_at = ?
		WHERE o.id = ?`

	if _, err := tx.ExecContext(ctx, query, time.Now().UTC(), orderID); err != nil {
		return fmt.Errorf("updating inventory order total: %w", err)
	}

	return nil
}

// MarkPurchased flips a pending order to purchased. The WHERE clause makes
// the update conditional: when two callers race, exactly one matches a row.
func (r *MySQLOrderRepository) MarkPurchased(ctx context.Context, tx *sql.Tx, orderID uint, purchasedBy string, at time.Time) (bool, error) {
	query := `
		UPDATE inventory_orders
		SET status = ?, purchased_at = ?, purchased_by = ?, updated_at = ?
		WHERE id = ? AND status = ?`

	result, err := tx.ExecContext(ctx, query,
		domain.InventoryOrderPurchased, at, purchasedBy, at, orderID, domain.InventoryOrderPending)
	if err != nil {
		return false, fmt.Errorf("marking inventory order purchased: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *MySQLOrderRepository) InsertHistory(ctx context.Context, tx *sql.Tx, orderID uint, oldStatus, newStatus, changedBy, note string) error {
	query := `
		INSERT INTO inventory_order_status_history (order_id, old_status, new_status, changed_by, note)
		VALUES (?, ?, ?, ?, ?)`

	if _, err := tx.ExecContext(ctx, query, orderID, oldStatus, newStatus, changedBy, note); err != nil {
		return fmt.Errorf("inserting inventory order history: %w", err)
	}

	return nil
}

func (r *MySQLOrderRepository) List(ctx context.Context, status, user string) ([]domain.InventoryOrder, error) {
	var conds []string
	var args []interface{}

	if status != "" && status != "all" {
		conds = append(conds, "status = ?")
		args = append(args, status)
	}
	if user != "" {
		conds = append(conds, "ordered_by = ?")
		args = append(args, user)
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, status, total_amount, ordered_by, notes, ordered_at,
		       purchased_at, purchased_by, updated_at
		FROM inventory_orders
		%s
		ORDER BY ordered_at DESC`, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying inventory orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.InventoryOrder
	for rows.Next() {
		var o domain.InventoryOrder
		err := rows.Scan(
			&o.ID, &o.Status, &o.TotalAmount, &o.OrderedBy, &o.Notes, &o.OrderedAt,
			&o.PurchasedAt, &o.PurchasedBy, &o.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning inventory order row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating inventory order rows: %w", err)
	}

	return orders, nil
}

func (r *MySQLOrderRepository) FindLinesByOrderIDs(ctx context.Context, orderIDs []uint) ([]domain.InventoryOrderLine, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(orderIDs))
	args := make([]interface{}, 0, len(orderIDs))
	for i, id := range orderIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT id, order_id, inventory_item_id, item_name_snapshot, unit_label_snapshot,
		       unit_rate_snapshot, quantity, line_amount
		FROM inventory_order_items
		WHERE order_id IN (%s)
		ORDER BY id ASC`, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying inventory order lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.InventoryOrderLine
	for rows.Next() {
		var l domain.InventoryOrderLine
		err := rows.Scan(
			&l.ID, &l.OrderID, &l.InventoryItemID, &l.ItemName, &l.UnitLabel,
			&l.UnitRate, &l.Quantity, &l.LineAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning inventory order line row: %w", err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating inventory order line rows: %w", err)
	}

	return lines, nil
}
