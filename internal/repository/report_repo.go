package repository

import (
	"context"
	"time"

	"github.com/Dignition/colizeum-api/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthSums carries the monthly per-column totals of cashier reports.
type MonthSums struct {
	Bar           decimal.Decimal
	Cash          decimal.Decimal
	Extended      decimal.Decimal
	SbpAcq        decimal.Decimal
	SbpCls        decimal.Decimal
	Acquiring     decimal.Decimal
	AcquiringFee  decimal.Decimal
	RefundCash    decimal.Decimal
	RefundNoncash decimal.Decimal
	Encashment    decimal.Decimal
}

type ReportRepository interface {
	Create(ctx context.Context, r *model.CashierReport) error
	FindByID(ctx context.Context, id uint) (*model.CashierReport, error)
	// FindByKey resolves the unique (club, shift_date, shift_type) row.
	FindByKey(ctx context.Context, clubID uint, date time.Time, shiftType string) (*model.CashierReport, error)
	Update(ctx context.Context, r *model.CashierReport) error
	// ListRange returns a club's reports with shift_date in [start, end),
	// ordered by date then shift type.
	ListRange(ctx context.Context, clubID uint, start, end time.Time) ([]model.CashierReport, error)
	SumRange(ctx context.Context, clubID uint, start, end time.Time) (*MonthSums, error)
	CountByClub(ctx context.Context, clubID uint) (int64, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) Create(ctx context.Context, rep *model.CashierReport) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *reportRepo) FindByID(ctx context.Context, id uint) (*model.CashierReport, error) {
	var rep model.CashierReport
	err := r.db.WithContext(ctx).Preload("User").First(&rep, id).Error
	return &rep, err
}

func (r *reportRepo) FindByKey(ctx context.Context, clubID uint, date time.Time, shiftType string) (*model.CashierReport, error) {
	var rep model.CashierReport
	err := r.db.WithContext(ctx).
		Where("club_id = ? AND shift_date = ? AND shift_type = ?", clubID, date, shiftType).
		First(&rep).Error
	return &rep, err
}

func (r *reportRepo) Update(ctx context.Context, rep *model.CashierReport) error {
	return r.db.WithContext(ctx).Save(rep).Error
}

func (r *reportRepo) ListRange(ctx context.Context, clubID uint, start, end time.Time) ([]model.CashierReport, error) {
	var reports []model.CashierReport
	err := r.db.WithContext(ctx).Preload("User").
		Where("club_id = ? AND shift_date >= ? AND shift_date < ?", clubID, start, end).
		Order("shift_date ASC, shift_type ASC").
		Find(&reports).Error
	return reports, err
}

func (r *reportRepo) SumRange(ctx context.Context, clubID uint, start, end time.Time) (*MonthSums, error) {
	var sums MonthSums
	err := r.db.WithContext(ctx).Model(&model.CashierReport{}).
		Select(`COALESCE(SUM(bar),0)            AS bar,
		        COALESCE(SUM(cash),0)           AS cash,
		        COALESCE(SUM(extended),0)       AS extended,
		        COALESCE(SUM(sbp_acq),0)        AS sbp_acq,
		        COALESCE(SUM(sbp_cls),0)        AS sbp_cls,
		        COALESCE(SUM(acquiring),0)      AS acquiring,
		        COALESCE(SUM(acquiring_fee),0)  AS acquiring_fee,
		        COALESCE(SUM(refund_cash),0)    AS refund_cash,
		        COALESCE(SUM(refund_noncash),0) AS refund_noncash,
		        COALESCE(SUM(encashment),0)     AS encashment`).
		Where("club_id = ? AND shift_date >= ? AND shift_date < ?", clubID, start, end).
		Scan(&sums).Error
	return &sums, err
}

func (r *reportRepo) CountByClub(ctx context.Context, clubID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CashierReport{}).
		Where("club_id = ?", clubID).Count(&count).Error
	return count, err
}

func (r *reportRepo) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CashierReport{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
