package model

import "time"

// InventorySession is one counting period per club. At most one session with
// ClosedAt = nil exists per club; imports reuse the open one.
type InventorySession struct {
	ID        uint `gorm:"primaryKey"`
	ClubID    uint `gorm:"index;not null"`
	StartedAt time.Time
	ClosedAt  *time.Time
}

func (InventorySession) TableName() string { return "inventory_session" }

// InventoryCount is a per-session expected/counted pair, keyed by
// session + product.
type InventoryCount struct {
	ID          uint `gorm:"primaryKey"`
	SessionID   uint `gorm:"index;not null;uniqueIndex:uq_session_product"`
	ProductID   uint `gorm:"not null;uniqueIndex:uq_session_product"`
	ExpectedQty int  `gorm:"default:0"`
	CountedQty  int  `gorm:"default:0"`
}

func (InventoryCount) TableName() string { return "inventory_count" }
