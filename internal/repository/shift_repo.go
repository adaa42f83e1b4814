package repository

import (
	"context"
	"time"

	"github.com/Dignition/colizeum-api/internal/model"

	"gorm.io/gorm"
)

type ShiftRepository interface {
	Create(ctx context.Context, s *model.Shift) error
	CreateBatch(ctx context.Context, shifts []model.Shift) error
	// ListMonth returns shifts whose start falls inside [from, to).
	ListMonth(ctx context.Context, clubID uint, from, to time.Time) ([]model.Shift, error)
	// DeleteForDay removes a member's shifts starting on one calendar day.
	DeleteForDay(ctx context.Context, clubID, userID uint, from, to time.Time) (int64, error)
	DeleteMonth(ctx context.Context, clubID uint, from, to time.Time) error
	// CountsByUserMonth counts per-member shifts in the window, feeding the
	// shortage allocator and payroll.
	CountsByUserMonth(ctx context.Context, clubID uint, from, to time.Time) (map[uint]int, error)
	// SuperadminShiftCounts counts shifts in the window for superadmin users
	// across the club, keyed by user id.
	SuperadminShiftCounts(ctx context.Context, clubID uint, from, to time.Time) (map[uint]int, error)
}

type shiftRepo struct{ db *gorm.DB }

func NewShiftRepository(db *gorm.DB) ShiftRepository { return &shiftRepo{db: db} }

func (r *shiftRepo) Create(ctx context.Context, s *model.Shift) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *shiftRepo) CreateBatch(ctx context.Context, shifts []model.Shift) error {
	if len(shifts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&shifts).Error
}

func (r *shiftRepo) ListMonth(ctx context.Context, clubID uint, from, to time.Time) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Where("club_id = ? AND start_ts >= ? AND start_ts < ?", clubID, from, to).
		Order("start_ts ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) DeleteForDay(ctx context.Context, clubID, userID uint, from, to time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("club_id = ? AND user_id = ? AND start_ts >= ? AND start_ts < ?", clubID, userID, from, to).
		Delete(&model.Shift{})
	return res.RowsAffected, res.Error
}

func (r *shiftRepo) DeleteMonth(ctx context.Context, clubID uint, from, to time.Time) error {
	return r.db.WithContext(ctx).
		Where("club_id = ? AND start_ts >= ? AND start_ts < ?", clubID, from, to).
		Delete(&model.Shift{}).Error
}

func (r *shiftRepo) CountsByUserMonth(ctx context.Context, clubID uint, from, to time.Time) (map[uint]int, error) {
	type row struct {
		UserID uint
		N      int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("shift").
		Select("user_id, COUNT(*) AS n").
		Where("club_id = ? AND start_ts >= ? AND start_ts < ?", clubID, from, to).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]int, len(rows))
	for _, r := range rows {
		out[r.UserID] = r.N
	}
	return out, nil
}

func (r *shiftRepo) SuperadminShiftCounts(ctx context.Context, clubID uint, from, to time.Time) (map[uint]int, error) {
	type row struct {
		UserID uint
		N      int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("shift s").
		Select("s.user_id, COUNT(*) AS n").
		Joins(`JOIN "user" u ON u.id = s.user_id AND u.role = 'superadmin'`).
		Where("s.club_id = ? AND s.start_ts >= ? AND s.start_ts < ?", clubID, from, to).
		Group("s.user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]int, len(rows))
	for _, r := range rows {
		out[r.UserID] = r.N
	}
	return out, nil
}
