package dto

import "github.com/shopspring/decimal"

type RecalcHoursRequest struct {
	Month string `json:"month" validate:"required,datetime=2006-01"`
}

type PayrollHourRow struct {
	UserID uint            `json:"user_id"`
	Day    string          `json:"day"` // YYYY-MM-DD
	Hours  decimal.Decimal `json:"hours"`
}

type PayrollHoursResponse struct {
	Month string           `json:"month"`
	Rows  []PayrollHourRow `json:"rows"`
}

type PayrollEntryPayload struct {
	UserID     uint            `json:"user_id" validate:"required,min=1"`
	Month      string          `json:"month"   validate:"required,datetime=2006-01"`
	BaseSalary decimal.Decimal `json:"base_salary" validate:"min=0"`
	Bonuses    decimal.Decimal `json:"bonuses"     validate:"min=0"`
	Fines      decimal.Decimal `json:"fines"       validate:"min=0"`
	Status     string          `json:"status" validate:"omitempty,oneof=draft approved paid"`
}

type PayrollEntryResponse struct {
	ID         uint            `json:"id"`
	UserID     uint            `json:"user_id"`
	Month      string          `json:"month"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	Bonuses    decimal.Decimal `json:"bonuses"`
	Fines      decimal.Decimal `json:"fines"`
	Total      decimal.Decimal `json:"total"`
	Status     string          `json:"status"`
}
