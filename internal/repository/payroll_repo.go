package repository

import (
	"context"
	"time"

	"github.com/Dignition/colizeum-api/internal/model"

	"gorm.io/gorm"
)

type PayrollRepository interface {
	UpsertHour(ctx context.Context, h *model.PayrollHour) error
	DeleteHours(ctx context.Context, clubID uint, from, to time.Time) error
	ListHours(ctx context.Context, clubID uint, from, to time.Time) ([]model.PayrollHour, error)

	UpsertEntry(ctx context.Context, e *model.PayrollEntry) error
	FindEntry(ctx context.Context, userID uint, month string) (*model.PayrollEntry, error)
	ListEntries(ctx context.Context, month string) ([]model.PayrollEntry, error)
}

type payrollRepo struct{ db *gorm.DB }

func NewPayrollRepository(db *gorm.DB) PayrollRepository { return &payrollRepo{db: db} }

func (r *payrollRepo) UpsertHour(ctx context.Context, h *model.PayrollHour) error {
	var existing model.PayrollHour
	err := r.db.WithContext(ctx).
		Where("club_id = ? AND user_id = ? AND day = ?", h.ClubID, h.UserID, h.Day).
		First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(h).Error
	}
	if err != nil {
		return err
	}
	existing.Hours = h.Hours
	return r.db.WithContext(ctx).Save(&existing).Error
}

func (r *payrollRepo) DeleteHours(ctx context.Context, clubID uint, from, to time.Time) error {
	return r.db.WithContext(ctx).
		Where("club_id = ? AND day >= ? AND day < ?", clubID, from, to).
		Delete(&model.PayrollHour{}).Error
}

func (r *payrollRepo) ListHours(ctx context.Context, clubID uint, from, to time.Time) ([]model.PayrollHour, error) {
	var rows []model.PayrollHour
	err := r.db.WithContext(ctx).
		Where("club_id = ? AND day >= ? AND day < ?", clubID, from, to).
		Order("day ASC, user_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *payrollRepo) UpsertEntry(ctx context.Context, e *model.PayrollEntry) error {
	var existing model.PayrollEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ?", e.UserID, e.Month).
		First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(e).Error
	}
	if err != nil {
		return err
	}
	existing.BaseSalary = e.BaseSalary
	existing.Bonuses = e.Bonuses
	existing.Fines = e.Fines
	existing.Total = e.Total
	existing.Status = e.Status
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return err
	}
	e.ID = existing.ID
	return nil
}

func (r *payrollRepo) FindEntry(ctx context.Context, userID uint, month string) (*model.PayrollEntry, error) {
	var e model.PayrollEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ?", userID, month).
		First(&e).Error
	return &e, err
}

func (r *payrollRepo) ListEntries(ctx context.Context, month string) ([]model.PayrollEntry, error) {
	var rows []model.PayrollEntry
	err := r.db.WithContext(ctx).
		Where("month = ?", month).
		Order("user_id ASC").
		Find(&rows).Error
	return rows, err
}
