package infra

import (
	"fmt"

	"github.com/Dignition/colizeum-api/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches for the bits
// legacy deployments are missing (the user_club table predates migrations and
// club_product_barcode gained purchase_price after initial rollout).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Club{},
		&model.UserClub{},
		&model.CashierReport{},
		&model.Product{},
		&model.ProductBarcode{},
		&model.ClubProductBarcode{},
		&model.Stock{},
		&model.StockMove{},
		&model.DebtTransaction{},
		&model.InventorySession{},
		&model.InventoryCount{},
		&model.Shift{},
		&model.PayrollEntry{},
		&model.PayrollHour{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot be trusted
// with on databases created by earlier deployments. Each statement uses
// IF NOT EXISTS semantics so re-running on a patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// user_club was created ad hoc on old installs, without its indexes.
		`CREATE TABLE IF NOT EXISTS user_club (
		    id SERIAL PRIMARY KEY,
		    user_id BIGINT NOT NULL,
		    club_id BIGINT NOT NULL,
		    role TEXT NOT NULL CHECK (role IN ('owner','club_admin','staff')),
		    UNIQUE (user_id, club_id)
		)`,
		`CREATE INDEX IF NOT EXISTS ix_user_club_user ON user_club (user_id)`,
		`CREATE INDEX IF NOT EXISTS ix_user_club_club ON user_club (club_id)`,
		// purchase_price was added to club_product_barcode after initial
		// rollout; legacy rows need the column backfilled with 0.
		`ALTER TABLE club_product_barcode
		    ADD COLUMN IF NOT EXISTS purchase_price NUMERIC(12,2) DEFAULT 0`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
