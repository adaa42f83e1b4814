package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ChargeRequest serves both normal charges and defect write-offs.
// Product is resolved by barcode first, then by explicit id.
type ChargeRequest struct {
	UserID    uint   `json:"user_id"`    // target employee; ignored for non-owner callers
	Barcode   string `json:"barcode"`
	ProductID uint   `json:"product_id"`
	Qty       int    `json:"qty"`
	Reason    string `json:"reason"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LookupProduct struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CostPrice *decimal.Decimal `json:"cost_price,omitempty"` // owners/superadmin only
}

type LookupResponse struct {
	Found   bool           `json:"found"`
	Product *LookupProduct `json:"product,omitempty"`
}

type SearchItem struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Barcodes      string          `json:"barcodes"` // comma-joined club barcodes
}

type DebtOpResponse struct {
	ID          uint            `json:"id"`
	UserID      uint            `json:"user_id"`
	UserName    string          `json:"user_name"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Qty         int             `json:"qty"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Price       decimal.Decimal `json:"price"`
	Kind        string          `json:"kind"`
	Reason      string          `json:"reason"`
	CreatedAt   string          `json:"created_at"`
}

// DebtSummary is the per-employee total of normal charges (price × qty).
type DebtSummary struct {
	UserID uint            `json:"user_id"`
	Name   string          `json:"name"`
	Total  decimal.Decimal `json:"total"`
}

type DebtIndexResponse struct {
	Items         []DebtOpResponse `json:"items"`
	Defects       []DebtOpResponse `json:"defects"`
	Sums          []DebtSummary    `json:"sums"`
	CanDelete     bool             `json:"can_delete"`
	CanChooseUser bool             `json:"can_choose_user"`
	Members       []ClubMember     `json:"members,omitempty"`
}

type ClubMember struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}
