package repository

import (
	"context"

	"github.com/Dignition/colizeum-api/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DebtSum aggregates a member's open charges.
type DebtSum struct {
	UserID uint
	Qty    int
	Total  decimal.Decimal
}

type DebtRepository interface {
	Create(ctx context.Context, tx *model.DebtTransaction) error
	FindByID(ctx context.Context, id uint) (*model.DebtTransaction, error)
	Delete(ctx context.Context, id uint) error
	// DeleteForUser removes every charge of a member in a club.
	DeleteForUser(ctx context.Context, clubID, userID uint) (int64, error)
	// DeleteForClub wipes the whole club ledger (full debt reset).
	DeleteForClub(ctx context.Context, clubID uint) (int64, error)
	// ListByClub returns recent charges of one kind, newest first, optionally
	// filtered by member. Limited to keep the ledger page bounded.
	ListByClub(ctx context.Context, clubID uint, kind string, userID uint, limit int) ([]model.DebtTransaction, error)
	SumsByUser(ctx context.Context, clubID uint, kind string) ([]DebtSum, error)
	// QtyByProduct sums normal-kind charged quantities per product for a club,
	// feeding the shortage formula.
	QtyByProduct(ctx context.Context, clubID uint) (map[uint]int, error)
}

type debtRepo struct{ db *gorm.DB }

func NewDebtRepository(db *gorm.DB) DebtRepository { return &debtRepo{db: db} }

func (r *debtRepo) Create(ctx context.Context, tx *model.DebtTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *debtRepo) FindByID(ctx context.Context, id uint) (*model.DebtTransaction, error) {
	var tx model.DebtTransaction
	err := r.db.WithContext(ctx).Preload("User").Preload("Product").First(&tx, id).Error
	return &tx, err
}

func (r *debtRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.DebtTransaction{}, id).Error
}

func (r *debtRepo) DeleteForUser(ctx context.Context, clubID, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Delete(&model.DebtTransaction{})
	return res.RowsAffected, res.Error
}

func (r *debtRepo) DeleteForClub(ctx context.Context, clubID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Delete(&model.DebtTransaction{})
	return res.RowsAffected, res.Error
}

func (r *debtRepo) ListByClub(ctx context.Context, clubID uint, kind string, userID uint, limit int) ([]model.DebtTransaction, error) {
	q := r.db.WithContext(ctx).
		Preload("User").Preload("Product").
		Where("club_id = ? AND kind = ?", clubID, kind)
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	var rows []model.DebtTransaction
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *debtRepo) SumsByUser(ctx context.Context, clubID uint, kind string) ([]DebtSum, error) {
	var sums []DebtSum
	err := r.db.WithContext(ctx).
		Table("debt_transaction").
		Select("user_id, COALESCE(SUM(qty), 0) AS qty, COALESCE(SUM(price * qty), 0) AS total").
		Where("club_id = ? AND kind = ?", clubID, kind).
		Group("user_id").
		Scan(&sums).Error
	return sums, err
}

func (r *debtRepo) QtyByProduct(ctx context.Context, clubID uint) (map[uint]int, error) {
	type row struct {
		ProductID uint
		Qty       int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("debt_transaction").
		Select("product_id, COALESCE(SUM(qty), 0) AS qty").
		Where("club_id = ? AND kind = 'normal'", clubID).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]int, len(rows))
	for _, r := range rows {
		out[r.ProductID] = r.Qty
	}
	return out, nil
}
