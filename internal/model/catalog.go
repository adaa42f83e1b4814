package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entity shared by all clubs. Purchase price here is the
// global fallback; clubs may override it via ClubProductBarcode.
type Product struct {
	ID            uint    `gorm:"primaryKey"`
	Name          string  `gorm:"size:180;index;not null"`
	SKU           *string `gorm:"size:64;uniqueIndex"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	SellPrice     decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	IsActive      bool            `gorm:"not null;default:true"`
}

func (Product) TableName() string { return "product" }

// ProductBarcode is a global barcode → product mapping.
type ProductBarcode struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"index;not null"`
	Barcode   string `gorm:"size:64;uniqueIndex;not null"`
}

func (ProductBarcode) TableName() string { return "product_barcode" }

// ClubProductBarcode maps a barcode to a product within one club and may
// override the purchase price for that club. Unique per (club, barcode).
type ClubProductBarcode struct {
	ID            uint   `gorm:"primaryKey"`
	ClubID        uint   `gorm:"index;not null;uniqueIndex:uq_club_barcode"`
	ProductID     uint   `gorm:"index;not null"`
	Barcode       string `gorm:"size:64;index;not null;uniqueIndex:uq_club_barcode"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
}

func (ClubProductBarcode) TableName() string { return "club_product_barcode" }

// Stock is the per-club on-hand quantity, refreshed when an inventory
// session is closed.
type Stock struct {
	ID        uint `gorm:"primaryKey"`
	ClubID    uint `gorm:"index;not null"`
	ProductID uint `gorm:"index;not null"`
	Qty       int  `gorm:"default:0"`
}

func (Stock) TableName() string { return "stock" }

// StockMove records each stock change. Reason: "sale" | "purchase" |
// "adjust" | "transfer".
type StockMove struct {
	ID        uint   `gorm:"primaryKey"`
	ClubID    uint   `gorm:"not null"`
	ProductID uint   `gorm:"not null"`
	QtyDelta  int    `gorm:"not null"`
	Reason    string `gorm:"size:64;default:'adjust'"`
	CreatedAt time.Time
}

func (StockMove) TableName() string { return "stock_move" }
