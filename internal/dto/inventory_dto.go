package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CountRow struct {
	ProductID uint `json:"product_id"`
	Fridge    int  `json:"fridge"`
	Store     int  `json:"store"`
}

type SaveCountsRequest struct {
	Rows []CountRow `json:"rows" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InventoryItem struct {
	ProductID   uint            `json:"product_id"`
	Name        string          `json:"name"`
	ExpectedQty int             `json:"expected_qty"`
	CountedQty  int             `json:"counted_qty"`
	DebtQty     int             `json:"debt_qty"`
	Price       decimal.Decimal `json:"price"` // purchase price, club override first
}

// AdminStat is one row of the shortage allocation table. Informational only:
// no ledger side effects.
type AdminStat struct {
	UserID    uint            `json:"user_id"`
	Name      string          `json:"name"`
	Shifts    int             `json:"shifts"`
	Share     float64         `json:"share"`
	Allocated decimal.Decimal `json:"allocated"`
}

type InventoryViewResponse struct {
	ClubID        uint            `json:"club_id"`
	HasSession    bool            `json:"has_session"`
	Items         []InventoryItem `json:"items"`
	AdminStats    []AdminStat     `json:"admin_stats"`
	ShortageValue decimal.Decimal `json:"shortage_value"`
}

type ImportResponse struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors,omitempty"`
	View     InventoryViewResponse `json:"view"`
}

type SaveCountsResponse struct {
	Saved int `json:"saved"`
}
