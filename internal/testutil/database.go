package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration-test database. Expects a MySQL instance
// at localhost:3306 with a 'brewline_test' schema; override with
// TEST_DATABASE_DSN. Tests are skipped when no database is reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "root:@tcp(localhost:3306)/brewline_test?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables child-first and closes the handle.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{
		"order_status_history",
		"order_items",
		"orders",
		"inventory_order_status_history",
		"inventory_order_items",
		"inventory_orders",
		"inventory_items",
		"menu_items",
		"feedback",
	}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema used by the integration tests.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createMenuItems := `
	CREATE TABLE IF NOT EXISTS menu_items (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		category_id INT NOT NULL DEFAULT 0,
		description TEXT,
		image_url VARCHAR(500),
		is_available TINYINT(1) NOT NULL DEFAULT 1,
		preparation_time_minutes INT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_category (category_id),
		INDEX idx_available (is_available)
	)`

	createOrders := `
	CREATE TABLE IF NOT EXISTS orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		customer_name VARCHAR(255) NOT NULL,
		customer_phone VARCHAR(50) NOT NULL DEFAULT 'Not provided',
		customer_email VARCHAR(255) NOT NULL DEFAULT 'Not provided',
		total_amount DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		order_status ENUM('pending','confirmed','preparing','ready','delivered','cancelled') NOT NULL DEFAULT 'pending',
		payment_status ENUM('pending','paid','failed','refunded') NOT NULL DEFAULT 'pending',
		payment_method ENUM('cash','card','upi','online'),
		special_instructions TEXT,
		cancelled_at DATETIME,
		cancellation_reason VARCHAR(500),
		cancelled_by VARCHAR(100),
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_status (order_status),
		INDEX idx_phone (customer_phone),
		INDEX idx_created (created_at)
	)`

	createOrderItems := `
	CREATE TABLE IF NOT EXISTS order_items (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		order_id INT UNSIGNED NOT NULL,
		menu_item_id INT UNSIGNED,
		item_name VARCHAR(255) NOT NULL,
		item_price DECIMAL(10,2) NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		special_instructions TEXT,
		subtotal DECIMAL(10,2) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
		FOREIGN KEY (menu_item_id) REFERENCES menu_items(id) ON DELETE SET NULL,
		INDEX idx_order (order_id)
	)`

	createStatusHistory := `
	CREATE TABLE IF NOT EXISTS order_status_history (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		order_id INT UNSIGNED NOT NULL,
		old_status VARCHAR(50),
		new_status VARCHAR(50) NOT NULL,
		changed_by VARCHAR(100) NOT NULL DEFAULT 'system',
		notes VARCHAR(500),
		changed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
		INDEX idx_order (order_id)
	)`

	createInventoryItems := `
	CREATE TABLE IF NOT EXISTS inventory_items (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		unit_label VARCHAR(50) NOT NULL,
		rate DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		category VARCHAR(100) NOT NULL DEFAULT '',
		status ENUM('active','inactive') NOT NULL DEFAULT 'active',
		created_by VARCHAR(100),
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_status (status)
	)`

	createInventoryOrders := `
	CREATE TABLE IF NOT EXISTS inventory_orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		status ENUM('pending','purchased') NOT NULL DEFAULT 'pending',
		total_amount DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		ordered_by VARCHAR(100) NOT NULL,
		notes VARCHAR(500),
		ordered_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		purchased_at DATETIME,
		purchased_by VARCHAR(100),
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_status (status),
		INDEX idx_ordered_by (ordered_by)
	)`

	createInventoryOrderItems := `
	CREATE TABLE IF NOT EXISTS inventory_order_items (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		order_id INT UNSIGNED NOT NULL,
		inventory_item_id INT UNSIGNED,
		item_name_snapshot VARCHAR(255) NOT NULL,
		unit_label_snapshot VARCHAR(50) NOT NULL,
		unit_rate_snapshot DECIMAL(10,2) NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		line_amount DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (order_id) REFERENCES inventory_orders(id) ON DELETE CASCADE,
		FOREIGN KEY (inventory_item_id) REFERENCES inventory_items(id),
		INDEX idx_order (order_id)
	)`

	createInventoryOrderStatusHistory := `
	CREATE TABLE IF NOT EXISTS inventory_order_status_history (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		order_id INT UNSIGNED NOT NULL,
		old_status VARCHAR(50),
		new_status VARCHAR(50) NOT NULL,
		changed_by VARCHAR(100) NOT NULL,
		note VARCHAR(500),
		changed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (order_id) REFERENCES inventory_orders(id) ON DELETE CASCADE,
		INDEX idx_order (order_id)
	)`

	createFeedback := `
	CREATE TABLE IF NOT EXISTS feedback (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		customer_name VARCHAR(255) NOT NULL DEFAULT 'Anonymous',
		email VARCHAR(255),
		rating INT NOT NULL,
		feedback TEXT,
		submitted_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"menu_items", createMenuItems},
		{"orders", createOrders},
		{"order_items", createOrderItems},
		{"order_status_history", createStatusHistory},
		{"inventory_items", createInventoryItems},
		{"inventory_orders", createInventoryOrders},
		{"inventory_order_items", createInventoryOrderItems},
		{"inventory_order_status_history", createInventoryOrderStatusHistory},
		{"feedback", createFeedback},
	}

	for _, tbl := range tables {
		if _, err := db.Exec(tbl.query); err != nil {
			t.Fatalf("failed to create table %s: %v", tbl.name, err)
		}
	}
}

// SeedMenuItem inserts a menu item and returns its id.
func SeedMenuItem(t *testing.T, db *sql.DB, name string, price string, available bool) uint {
	result, err := db.Exec(`
		INSERT INTO menu_items (name, price, category_id, is_available)
		VALUES (?, ?, 1, ?)`,
		name, price, available,
	)
	if err != nil {
		t.Fatalf("failed to seed menu item: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read menu item id: %v", err)
	}
	return uint(id)
}

// SeedInventoryItem inserts an inventory item and returns its id.
func SeedInventoryItem(t *testing.T, db *sql.DB, name, unit string, rate string) uint {
	result, err := db.Exec(`
		INSERT INTO inventory_items (name, unit_label, rate, category, status)
		VALUES (?, ?, ?, 'general', 'active')`,
		name, unit, rate,
	)
	if err != nil {
		t.Fatalf("failed to seed inventory item: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read inventory item id: %v", err)
	}
	return uint(id)
}
