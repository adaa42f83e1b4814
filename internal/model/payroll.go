package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PayrollStatusDraft    = "draft"
	PayrollStatusApproved = "approved"
	PayrollStatusPaid     = "paid"
)

// PayrollEntry is a monthly pay record per user.
// Status: "draft" | "approved" | "paid".
type PayrollEntry struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"index;not null"`
	Month      string `gorm:"size:7;not null"` // YYYY-MM
	BaseSalary decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	Bonuses    decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	Fines      decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	Status     string          `gorm:"size:16;default:'draft'"`
}

func (PayrollEntry) TableName() string { return "payroll_entry" }

// PayrollHour is the per-day worked-hours record derived from shifts,
// unique per (club, user, day).
type PayrollHour struct {
	ID     uint      `gorm:"primaryKey"`
	ClubID uint      `gorm:"index;not null;uniqueIndex:uq_payroll_day"`
	UserID uint      `gorm:"index;not null;uniqueIndex:uq_payroll_day"`
	Day    time.Time `gorm:"type:date;index;not null;uniqueIndex:uq_payroll_day"`
	Hours  decimal.Decimal `gorm:"type:decimal(6,2);default:0"`
}

func (PayrollHour) TableName() string { return "payroll_hour" }
