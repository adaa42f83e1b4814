package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ReportPayload carries the editable fields of a cashier report. The same
// shape serves create and update; status is never client-supplied.
type ReportPayload struct {
	ShiftDate string `json:"shift_date" validate:"required,datetime=2006-01-02"`
	ShiftType string `json:"shift_type" validate:"required,oneof=day night"`

	Bar      decimal.Decimal `json:"bar"      validate:"min=0"`
	Cash     decimal.Decimal `json:"cash"     validate:"min=0"`
	Extended decimal.Decimal `json:"extended" validate:"min=0"`

	SbpAcq    decimal.Decimal `json:"sbp_acq"   validate:"min=0"`
	SbpCls    decimal.Decimal `json:"sbp_cls"   validate:"min=0"`
	Acquiring decimal.Decimal `json:"acquiring" validate:"min=0"`

	AcquiringFee  decimal.Decimal `json:"acquiring_fee"  validate:"min=0"`
	RefundCash    decimal.Decimal `json:"refund_cash"    validate:"min=0"`
	RefundNoncash decimal.Decimal `json:"refund_noncash" validate:"min=0"`
	Encashment    decimal.Decimal `json:"encashment"     validate:"min=0"`

	ExpensesJSON string `json:"expenses_json"`
	Note         string `json:"note"`

	// MismatchReason is appended to the note when the extended-payment
	// breakdown does not add up. Advisory only.
	MismatchReason string `json:"mismatch_reason"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ReportResponse struct {
	ID        uint   `json:"id"`
	ClubID    uint   `json:"club_id"`
	UserID    uint   `json:"user_id"`
	UserName  string `json:"user_name,omitempty"`
	ShiftDate string `json:"shift_date"`
	ShiftType string `json:"shift_type"`

	Bar      decimal.Decimal `json:"bar"`
	Cash     decimal.Decimal `json:"cash"`
	Extended decimal.Decimal `json:"extended"`

	SbpAcq    decimal.Decimal `json:"sbp_acq"`
	SbpCls    decimal.Decimal `json:"sbp_cls"`
	Acquiring decimal.Decimal `json:"acquiring"`

	AcquiringFee  decimal.Decimal `json:"acquiring_fee"`
	RefundCash    decimal.Decimal `json:"refund_cash"`
	RefundNoncash decimal.Decimal `json:"refund_noncash"`
	Encashment    decimal.Decimal `json:"encashment"`

	ExpensesJSON string `json:"expenses_json"`
	Note         string `json:"note"`
	Status       string `json:"status"`

	ZReport decimal.Decimal `json:"z_report"`
	GamePS  decimal.Decimal `json:"game_ps"`
	Delta   decimal.Decimal `json:"delta"`

	CanEdit bool `json:"can_edit"`
}

// MonthTotals sums every monetary column across the month's reports.
type MonthTotals struct {
	Bar           decimal.Decimal `json:"bar"`
	Cash          decimal.Decimal `json:"cash"`
	Extended      decimal.Decimal `json:"extended"`
	SbpAcq        decimal.Decimal `json:"sbp_acq"`
	SbpCls        decimal.Decimal `json:"sbp_cls"`
	Acquiring     decimal.Decimal `json:"acquiring"`
	AcquiringFee  decimal.Decimal `json:"acquiring_fee"`
	RefundCash    decimal.Decimal `json:"refund_cash"`
	RefundNoncash decimal.Decimal `json:"refund_noncash"`
	Encashment    decimal.Decimal `json:"encashment"`
}

type ReportMonthResponse struct {
	Month         string           `json:"month"` // YYYY-MM
	ClubID        uint             `json:"club_id"`
	Reports       []ReportResponse `json:"reports"`
	Totals        MonthTotals      `json:"totals"`
	FullDaysCount int              `json:"full_days_count"`
}
