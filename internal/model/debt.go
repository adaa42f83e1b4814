package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DebtKindNormal = "normal"
	DebtKindDefect = "defect"
)

// DebtTransaction charges qty units of a product to an employee.
// Kind: "normal" bills at cost×1.10; "defect" is a write-off with price 0
// and a mandatory reason.
type DebtTransaction struct {
	ID        uint `gorm:"primaryKey"`
	ClubID    uint `gorm:"index;not null"`
	UserID    uint `gorm:"index;not null"`
	ProductID uint `gorm:"index;not null"`
	Qty       int  `gorm:"not null;default:1"`
	CostPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Kind      string          `gorm:"size:16;default:'normal'"` // normal | defect
	Reason    string          `gorm:"size:255;default:''"`
	CreatedAt time.Time

	User    *User    `gorm:"foreignKey:UserID"`
	Product *Product `gorm:"foreignKey:ProductID"`
}

func (DebtTransaction) TableName() string { return "debt_transaction" }
