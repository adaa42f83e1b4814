package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashierReport is one per-shift cashier report, unique per
// (club_id, shift_date, shift_type). Status: "draft" | "ok" | "warn".
// The extended-payment breakdown (SbpAcq + SbpCls + Acquiring) should equal
// Extended; a mismatch only downgrades Status to "warn", it never blocks
// the write.
const (
	ReportStatusDraft = "draft"
	ReportStatusOK    = "ok"
	ReportStatusWarn  = "warn"

	ShiftDay   = "day"
	ShiftNight = "night"
)

type CashierReport struct {
	ID     uint `gorm:"primaryKey"`
	ClubID uint `gorm:"index;not null"`
	UserID uint `gorm:"index"`

	ShiftDate time.Time `gorm:"type:date;index;not null"`
	ShiftType string    `gorm:"size:16;not null;default:'day'"` // day | night

	// Sales
	Bar      decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	Cash     decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	Extended decimal.Decimal `gorm:"type:decimal(12,2);default:0"`

	// Extended-payment breakdown
	SbpAcq    decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	SbpCls    decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	Acquiring decimal.Decimal `gorm:"type:decimal(12,2);default:0"`

	// AcquiringFee stores the shift's total expenses.
	AcquiringFee decimal.Decimal `gorm:"type:decimal(12,2);default:0"`

	RefundCash    decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	RefundNoncash decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	Encashment    decimal.Decimal `gorm:"type:decimal(12,2);default:0"`

	// ExpensesJSON holds the free-text expense breakdown as a JSON array.
	ExpensesJSON string `gorm:"type:text"`

	Note      string `gorm:"type:text"`
	Status    string `gorm:"size:24;default:'draft'"`
	CreatedAt time.Time

	User *User `gorm:"foreignKey:UserID"`
}

func (CashierReport) TableName() string { return "cashier_report" }

// ZReport = cash + extended payment.
func (r *CashierReport) ZReport() decimal.Decimal {
	return r.Cash.Add(r.Extended)
}

// GamePS = Z-report − bar (game revenue).
func (r *CashierReport) GamePS() decimal.Decimal {
	return r.Cash.Add(r.Extended).Sub(r.Bar)
}

// Delta = extended − (sbp_acq + sbp_cls + acquiring), rounded to 2 decimals.
func (r *CashierReport) Delta() decimal.Decimal {
	return r.Extended.Sub(r.SbpAcq.Add(r.SbpCls).Add(r.Acquiring)).Round(2)
}
