package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
}

func New(databaseURL string) (*Database, error) {
	var db *gorm.DB
	var err error

	if strings.HasPrefix(databaseURL, "sqlite://") {
		// SQLite for development
		dbPath := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	} else {
		// PostgreSQL for production
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Create tables manually with raw SQL
	createTablesSQL := `
	CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT UNIQUE NOT NULL,
		description TEXT,
		parent_id UUID REFERENCES categories(id),
		is_active BOOLEAN DEFAULT true,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT UNIQUE NOT NULL,
		sku TEXT UNIQUE NOT NULL,
		description TEXT,
		short_description TEXT,
		price DECIMAL(10,2) NOT NULL DEFAULT 0,
		original_price DECIMAL(10,2),
		stock_quantity INTEGER DEFAULT 0,
		is_active BOOLEAN DEFAULT true,
		is_featured BOOLEAN DEFAULT false,
		weight DECIMAL(10,3),
		dimensions JSONB,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS product_categories (
		id UUID PRIMARY KEY,
		product_id UUID NOT NULL,
		category_id UUID NOT NULL,
		is_primary BOOLEAN DEFAULT false,
		sort_order INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS product_images (
		id UUID PRIMARY KEY,
		product_id UUID NOT NULL,
		url TEXT NOT NULL,
		alt_text TEXT,
		caption TEXT,
		is_primary BOOLEAN DEFAULT false,
		sort_order INTEGER DEFAULT 0,
		size_bytes BIGINT,
		format TEXT,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS attributes (
		id UUID PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		slug TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS product_attribute_values (
		id UUID PRIMARY KEY,
		product_id UUID NOT NULL,
		attribute_id UUID NOT NULL,
		value TEXT NOT NULL
	);
	`

	err = db.Exec(createTablesSQL).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
