package repository

import (
	"context"
	"time"

	"github.com/Dignition/colizeum-api/internal/model"

	"gorm.io/gorm"
)

// InventoryItem is one count row joined with its product.
type InventoryItem struct {
	ProductID   uint
	Name        string
	ExpectedQty int
	CountedQty  int
}

type InventoryRepository interface {
	// ActiveSession returns the open session of a club, ErrRecordNotFound
	// when none is open.
	ActiveSession(ctx context.Context, clubID uint) (*model.InventorySession, error)
	CreateSession(ctx context.Context, s *model.InventorySession) error
	CloseSession(ctx context.Context, sessionID uint, at time.Time) error

	// UpsertExpected sets the expected quantity of a product, creating the
	// count row when absent (import path).
	UpsertExpected(ctx context.Context, sessionID, productID uint, expected int) error
	// UpsertCounted overwrites the counted quantity (cashier save path).
	UpsertCounted(ctx context.Context, sessionID, productID uint, counted int) error
	ClearCounts(ctx context.Context, sessionID uint) error
	Items(ctx context.Context, sessionID uint) ([]InventoryItem, error)

	GetStock(ctx context.Context, clubID, productID uint) (*model.Stock, error)
	UpsertStock(ctx context.Context, clubID, productID uint, qty int) error
	CreateStockMove(ctx context.Context, m *model.StockMove) error
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) ActiveSession(ctx context.Context, clubID uint) (*model.InventorySession, error) {
	var s model.InventorySession
	err := r.db.WithContext(ctx).
		Where("club_id = ? AND closed_at IS NULL", clubID).
		Order("started_at DESC").
		First(&s).Error
	return &s, err
}

func (r *inventoryRepo) CreateSession(ctx context.Context, s *model.InventorySession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *inventoryRepo) CloseSession(ctx context.Context, sessionID uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.InventorySession{}).
		Where("id = ?", sessionID).
		Update("closed_at", at).Error
}

func (r *inventoryRepo) UpsertExpected(ctx context.Context, sessionID, productID uint, expected int) error {
	var c model.InventoryCount
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND product_id = ?", sessionID, productID).
		First(&c).Error
	if err == gorm.ErrRecordNotFound {
		c = model.InventoryCount{SessionID: sessionID, ProductID: productID, ExpectedQty: expected}
		return r.db.WithContext(ctx).Create(&c).Error
	}
	if err != nil {
		return err
	}
	c.ExpectedQty = expected
	return r.db.WithContext(ctx).Save(&c).Error
}

func (r *inventoryRepo) UpsertCounted(ctx context.Context, sessionID, productID uint, counted int) error {
	var c model.InventoryCount
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND product_id = ?", sessionID, productID).
		First(&c).Error
	if err == gorm.ErrRecordNotFound {
		c = model.InventoryCount{SessionID: sessionID, ProductID: productID, CountedQty: counted}
		return r.db.WithContext(ctx).Create(&c).Error
	}
	if err != nil {
		return err
	}
	c.CountedQty = counted
	return r.db.WithContext(ctx).Save(&c).Error
}

func (r *inventoryRepo) ClearCounts(ctx context.Context, sessionID uint) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&model.InventoryCount{}).Error
}

func (r *inventoryRepo) Items(ctx context.Context, sessionID uint) ([]InventoryItem, error) {
	var items []InventoryItem
	err := r.db.WithContext(ctx).
		Table("inventory_count ic").
		Select("ic.product_id, p.name, ic.expected_qty, ic.counted_qty").
		Joins("JOIN product p ON p.id = ic.product_id").
		Where("ic.session_id = ?", sessionID).
		Order("p.name ASC").
		Scan(&items).Error
	return items, err
}

func (r *inventoryRepo) GetStock(ctx context.Context, clubID, productID uint) (*model.Stock, error) {
	var s model.Stock
	err := r.db.WithContext(ctx).
		Where("club_id = ? AND product_id = ?", clubID, productID).
		First(&s).Error
	return &s, err
}

func (r *inventoryRepo) UpsertStock(ctx context.Context, clubID, productID uint, qty int) error {
	var s model.Stock
	err := r.db.WithContext(ctx).
		Where("club_id = ? AND product_id = ?", clubID, productID).
		First(&s).Error
	if err == gorm.ErrRecordNotFound {
		s = model.Stock{ClubID: clubID, ProductID: productID, Qty: qty}
		return r.db.WithContext(ctx).Create(&s).Error
	}
	if err != nil {
		return err
	}
	s.Qty = qty
	return r.db.WithContext(ctx).Save(&s).Error
}

func (r *inventoryRepo) CreateStockMove(ctx context.Context, m *model.StockMove) error {
	return r.db.WithContext(ctx).Create(m).Error
}
