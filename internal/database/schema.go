package database

// Schema DDL, applied in order by SetupSchema. Log tables intentionally
// carry no foreign keys: the service accepts log rows for parents it has
// never seen, matching the behavior the frontend relies on.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
	    uuid CHAR(36) PRIMARY KEY,
	    user_name VARCHAR(100) NOT NULL,
	    email VARCHAR(255) NOT NULL,
	    password VARCHAR(100) NOT NULL,
	    full_name VARCHAR(200) NOT NULL DEFAULT '',
	    phone VARCHAR(32) NOT NULL DEFAULT '',
	    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	    UNIQUE KEY uk_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS tokens (
	    token VARCHAR(512) PRIMARY KEY,
	    customer_uuid CHAR(36) NOT NULL,
	    expires_at TIMESTAMP NOT NULL,
	    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	    INDEX idx_customer_uuid (customer_uuid)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS token_blacklist (
	    token VARCHAR(512) PRIMARY KEY,
	    customer_uuid CHAR(36) NOT NULL,
	    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS products (
	    id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    name VARCHAR(255) NOT NULL,
	    description TEXT,
	    price DECIMAL(10,2) NOT NULL,
	    quantity INT NOT NULL DEFAULT 0,
	    owner_uuid CHAR(36) NOT NULL,
	    image LONGBLOB NULL,
	    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	    FOREIGN KEY (owner_uuid) REFERENCES customers(uuid),
	    INDEX idx_owner_uuid (owner_uuid),
	    INDEX idx_price (price)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS categories (
	    id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    name VARCHAR(100) NOT NULL,
	    UNIQUE KEY uk_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS product_categories (
	    product_id BIGINT NOT NULL,
	    category_id BIGINT NOT NULL,
	    PRIMARY KEY (product_id, category_id),
	    FOREIGN KEY (product_id) REFERENCES products(id),
	    FOREIGN KEY (category_id) REFERENCES categories(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS carts (
	    id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    customer_uuid CHAR(36) NOT NULL,
	    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	    UNIQUE KEY uk_customer_uuid (customer_uuid),
	    FOREIGN KEY (customer_uuid) REFERENCES customers(uuid)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS cart_items (
	    id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    cart_id BIGINT NOT NULL,
	    product_id BIGINT NOT NULL,
	    quantity INT NOT NULL,
	    UNIQUE KEY uk_cart_product (cart_id, product_id),
	    FOREIGN KEY (cart_id) REFERENCES carts(id),
	    FOREIGN KEY (product_id) REFERENCES products(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS orders (
	    id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    uuid CHAR(36) NOT NULL,
	    order_number INT NOT NULL,
	    customer_uuid CHAR(36) NOT NULL,
	    total DECIMAL(10,2) NOT NULL,
	    status ENUM('Pending', 'Paid', 'Shipped', 'Delivered', 'Cancelled') DEFAULT 'Pending',
	    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	    UNIQUE KEY uk_order_number (order_number),
	    FOREIGN KEY (customer_uuid) REFERENCES customers(uuid),
	    INDEX idx_customer_uuid (customer_uuid),
	    INDEX idx_status (status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS order_items (
	    id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    order_id BIGINT NOT NULL,
	    product_id BIGINT NOT NULL,
	    quantity INT NOT NULL,
	    price DECIMAL(10,2) NOT NULL,
	    FOREIGN KEY (order_id) REFERENCES orders(id),
	    FOREIGN KEY (product_id) REFERENCES products(id),
	    INDEX idx_order_id (order_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS shipments (
	    id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    order_id BIGINT NOT NULL,
	    shipment_status VARCHAR(100) NOT NULL,
	    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	    INDEX idx_order_id (order_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS order_logs (
	    id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    order_id BIGINT NOT NULL,
	    order_status VARCHAR(100) NOT NULL,
	    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	    INDEX idx_order_id (order_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS shipment_logs (
	    id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    shipment_id BIGINT NOT NULL,
	    shipment_status VARCHAR(100) NOT NULL,
	    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	    INDEX idx_shipment_id (shipment_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// SetupSchema creates all tables
func (db *DB) SetupSchema() error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

// CleanupData removes all data (but keeps schema)
func (db *DB) CleanupData() error {
	queries := []string{
		"DELETE FROM shipment_logs",
		"DELETE FROM order_logs",
		"DELETE FROM shipments",
		"DELETE FROM order_items",
		"DELETE FROM orders",
		"DELETE FROM cart_items",
		"DELETE FROM carts",
		"DELETE FROM product_categories",
		"DELETE FROM categories",
		"DELETE FROM products",
		"DELETE FROM token_blacklist",
		"DELETE FROM tokens",
		"DELETE FROM customers",
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}

// DropSchema removes all tables
func (db *DB) DropSchema() error {
	queries := []string{
		"DROP TABLE IF EXISTS shipment_logs",
		"DROP TABLE IF EXISTS order_logs",
		"DROP TABLE IF EXISTS shipments",
		"DROP TABLE IF EXISTS order_items",
		"DROP TABLE IF EXISTS orders",
		"DROP TABLE IF EXISTS cart_items",
		"DROP TABLE IF EXISTS carts",
		"DROP TABLE IF EXISTS product_categories",
		"DROP TABLE IF EXISTS categories",
		"DROP TABLE IF EXISTS products",
		"DROP TABLE IF EXISTS token_blacklist",
		"DROP TABLE IF EXISTS tokens",
		"DROP TABLE IF EXISTS customers",
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}
