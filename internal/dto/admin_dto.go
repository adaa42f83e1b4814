package dto

import "github.com/shopspring/decimal"

// ─── Clubs ───────────────────────────────────────────────────────────────────

type ClubPayload struct {
	Name     string `json:"name"     validate:"required,min=1,max=120"`
	Timezone string `json:"timezone"`
	IsActive bool   `json:"is_active"`
}

type ClubResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
	IsActive bool   `json:"is_active"`
}

// ─── Users ───────────────────────────────────────────────────────────────────

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=4"`
	FullName string `json:"full_name"`
	// Initial membership; role defaults to club_admin.
	ClubID   uint   `json:"club_id" validate:"required,min=1"`
	ClubRole string `json:"club_role" validate:"omitempty,oneof=owner club_admin staff"`
}

type CreateSuperadminRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=4"`
	FullName string `json:"full_name"`
}

type UpdateUserRequest struct {
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	NewPassword string `json:"new_password"`
}

type AdminUserResponse struct {
	ID          uint               `json:"id"`
	Username    string             `json:"username"`
	FullName    string             `json:"full_name"`
	Role        string             `json:"role"`
	Memberships []MembershipBrief  `json:"memberships"`
}

type MembershipBrief struct {
	ClubName string `json:"club"`
	Role     string `json:"role"`
}

// ─── Memberships ─────────────────────────────────────────────────────────────

type GrantMembershipRequest struct {
	ClubID uint   `json:"club_id" validate:"required,min=1"`
	UserID uint   `json:"user_id"`
	Login  string `json:"login"` // alternative to user_id
	Role   string `json:"role" validate:"required,oneof=owner club_admin staff"`
}

type MembershipResponse struct {
	ID       uint   `json:"id"`
	UserID   uint   `json:"user_id"`
	ClubID   uint   `json:"club_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// ─── Products / barcodes ─────────────────────────────────────────────────────

type ProductPayload struct {
	Name          string          `json:"name" validate:"required,min=1,max=180"`
	SKU           *string         `json:"sku"`
	PurchasePrice decimal.Decimal `json:"purchase_price" validate:"min=0"`
	SellPrice     decimal.Decimal `json:"sell_price"     validate:"min=0"`
	IsActive      bool            `json:"is_active"`
}

type ProductResponse struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	SKU           *string         `json:"sku"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellPrice     decimal.Decimal `json:"sell_price"`
	IsActive      bool            `json:"is_active"`
}

type ClubBarcodePayload struct {
	ClubID        uint            `json:"club_id" validate:"required,min=1"`
	Barcode       string          `json:"barcode" validate:"required,min=1,max=64"`
	PurchasePrice decimal.Decimal `json:"purchase_price" validate:"min=0"`
}
