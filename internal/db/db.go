package db

import (
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/drivebook/car-rental-api/internal/config"
	"github.com/drivebook/car-rental-api/internal/models"
)

// Backstop for the create-booking race: two requests can both pass the
// overlap check before either insert commits, and the insert-time row lock
// sees nothing when no conflicting row exists yet. The constraint rejects
// the second insert; 23P01 is mapped back to a booking conflict.
// tstzrange is an immutable constructor, which index expressions require.
const bookingsNoOverlapDDL = `
ALTER TABLE bookings
ADD CONSTRAINT bookings_no_overlap
EXCLUDE USING gist (
    catalog_item_id WITH =,
    tstzrange(start_date, end_date, '[]') WITH &&
)
WHERE (status IN ('PENDING', 'CONFIRMED'))`

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.CatalogItem{},
		&models.Booking{},
		&models.Rate{},
		&models.Review{},
		&models.Contact{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatalf("failed to create btree_gist extension: %v", err)
	}

	// Re-running migrations hits 42710 (constraint already exists). Anything
	// else means the backstop is missing, and booking writes must not start
	// without it.
	if err := db.Exec(bookingsNoOverlapDDL).Error; err != nil && !isDuplicateObject(err) {
		log.Fatalf("failed to add booking overlap constraint: %v", err)
	}

	return db
}

func isDuplicateObject(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42710"
	}
	return false
}
