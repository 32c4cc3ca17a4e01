package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/osantanna/livraria-pos/internal/infrastructure/config"
)

// NewDB opens the MySQL connection, configures the pool and migrates the
// schema. SQL statement logging is enabled only in debug mode.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrapping sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	log.Println("database connection established")

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return db, nil
}

// autoMigrate creates missing tables and columns. AutoMigrate never drops
// or alters existing columns; destructive schema changes need a real
// migration.
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&BookModel{},
		&SaleModel{},
		&SaleItemModel{},
	)
}

// BookModel is the GORM mapping of the catalog table. Title is the business
// key; Barcode is nullable and unique only when present (MySQL allows
// multiple NULLs in a unique index). Prices are int64 centavos.
type BookModel struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"uniqueIndex;size:255;not null"`
	Author    string    `gorm:"size:255;not null;default:''"`
	Price     int64     `gorm:"not null;default:0"`
	Stock     int       `gorm:"not null;default:0"`
	Barcode   *string   `gorm:"uniqueIndex;size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (BookModel) TableName() string {
	return "books"
}

// SaleModel is the GORM mapping of the sales table. Sales are immutable
// once written; RawPayments keeps whatever representation was persisted at
// the time of the sale.
type SaleModel struct {
	ID          uint            `gorm:"primaryKey"`
	BuyerName   *string         `gorm:"size:255"`
	Subtotal    int64           `gorm:"not null;default:0"`
	Discount    int64           `gorm:"not null;default:0"`
	Total       int64           `gorm:"not null;default:0;index"`
	RawPayments string          `gorm:"column:payments;type:text;not null"`
	Items       []SaleItemModel `gorm:"foreignKey:SaleID"`
	SoldAt      time.Time       `gorm:"autoCreateTime;index"`
}

func (SaleModel) TableName() string {
	return "sales"
}

// SaleItemModel is one line of a sale with its unit price snapshot. The
// book FK restricts deletion: a book with sale history cannot be removed
// from the catalog.
type SaleItemModel struct {
	ID       uint       `gorm:"primaryKey"`
	SaleID   uint       `gorm:"index;not null"`
	BookID   uint       `gorm:"index;not null"`
	Book     *BookModel `gorm:"foreignKey:BookID;constraint:OnDelete:RESTRICT"`
	Quantity int        `gorm:"not null"`
	Price    int64      `gorm:"not null"`
}

func (SaleItemModel) TableName() string {
	return "sale_items"
}
