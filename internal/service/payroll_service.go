package service

import (
	"context"
	"errors"
	"time"

	"github.com/Dignition/colizeum-api/internal/apierror"
	"github.com/Dignition/colizeum-api/internal/dto"
	"github.com/Dignition/colizeum-api/internal/model"
	"github.com/Dignition/colizeum-api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PayrollService interface {
	// RecalcHours rebuilds the per-day worked-hours table of a club month
	// from the schedule.
	RecalcHours(ctx context.Context, user *model.User, clubID uint, month string) (*dto.PayrollHoursResponse, error)
	Hours(ctx context.Context, user *model.User, clubID uint, month string) (*dto.PayrollHoursResponse, error)
	SaveEntry(ctx context.Context, user *model.User, req dto.PayrollEntryPayload) (*dto.PayrollEntryResponse, error)
	Entries(ctx context.Context, user *model.User, month string) ([]dto.PayrollEntryResponse, error)
}

type payrollService struct {
	payroll     repository.PayrollRepository
	shifts      repository.ShiftRepository
	memberships repository.MembershipRepository
	acl         ACLService
	db          *gorm.DB
}

func NewPayrollService(
	payroll repository.PayrollRepository,
	shifts repository.ShiftRepository,
	memberships repository.MembershipRepository,
	acl ACLService,
	db *gorm.DB,
) PayrollService {
	return &payrollService{
		payroll:     payroll,
		shifts:      shifts,
		memberships: memberships,
		acl:         acl,
		db:          db,
	}
}

// ── RecalcHours ───────────────────────────────────────────────────────────────

func (s *payrollService) RecalcHours(ctx context.Context, user *model.User, clubID uint, month string) (*dto.PayrollHoursResponse, error) {
	if err := s.requirePayrollAccess(ctx, user, clubID); err != nil {
		return nil, err
	}
	from, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, errors.New("неверный формат месяца")
	}
	to := from.AddDate(0, 1, 0)

	shifts, err := s.shifts.ListMonth(ctx, clubID, from, to)
	if err != nil {
		return nil, err
	}

	// Several shifts of one user on one day collapse into a single row.
	type key struct {
		userID uint
		day    string
	}
	hours := make(map[key]decimal.Decimal)
	for _, sh := range shifts {
		k := key{userID: sh.UserID, day: sh.StartTS.Format("2006-01-02")}
		dur := decimal.NewFromFloat(sh.EndTS.Sub(sh.StartTS).Hours()).Round(2)
		hours[k] = hours[k].Add(dur)
	}

	err = runTx(ctx, s.db, func(*gorm.DB) error {
		if err := s.payroll.DeleteHours(ctx, clubID, from, to); err != nil {
			return err
		}
		for k, h := range hours {
			day, _ := time.Parse("2006-01-02", k.day)
			row := &model.PayrollHour{
				ClubID: clubID,
				UserID: k.userID,
				Day:    day,
				Hours:  h,
			}
			if err := s.payroll.UpsertHour(ctx, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Hours(ctx, user, clubID, month)
}

// ── Hours ─────────────────────────────────────────────────────────────────────

func (s *payrollService) Hours(ctx context.Context, user *model.User, clubID uint, month string) (*dto.PayrollHoursResponse, error) {
	if err := s.requirePayrollAccess(ctx, user, clubID); err != nil {
		return nil, err
	}
	from, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, errors.New("неверный формат месяца")
	}
	to := from.AddDate(0, 1, 0)

	rows, err := s.payroll.ListHours(ctx, clubID, from, to)
	if err != nil {
		return nil, err
	}
	resp := &dto.PayrollHoursResponse{Month: month, Rows: make([]dto.PayrollHourRow, len(rows))}
	for i, r := range rows {
		resp.Rows[i] = dto.PayrollHourRow{
			UserID: r.UserID,
			Day:    r.Day.Format("2006-01-02"),
			Hours:  r.Hours,
		}
	}
	return resp, nil
}

// ── Entries ───────────────────────────────────────────────────────────────────

func (s *payrollService) SaveEntry(ctx context.Context, user *model.User, req dto.PayrollEntryPayload) (*dto.PayrollEntryResponse, error) {
	if err := s.requireEntryAccess(ctx, user); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = model.PayrollStatusDraft
	}
	entry := &model.PayrollEntry{
		UserID:     req.UserID,
		Month:      req.Month,
		BaseSalary: req.BaseSalary,
		Bonuses:    req.Bonuses,
		Fines:      req.Fines,
		Total:      req.BaseSalary.Add(req.Bonuses).Sub(req.Fines),
		Status:     status,
	}
	if err := s.payroll.UpsertEntry(ctx, entry); err != nil {
		return nil, err
	}
	return toPayrollEntry(entry), nil
}

func (s *payrollService) Entries(ctx context.Context, user *model.User, month string) ([]dto.PayrollEntryResponse, error) {
	if err := s.requireEntryAccess(ctx, user); err != nil {
		return nil, err
	}
	rows, err := s.payroll.ListEntries(ctx, month)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PayrollEntryResponse, len(rows))
	for i := range rows {
		resp[i] = *toPayrollEntry(&rows[i])
	}
	return resp, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *payrollService) requirePayrollAccess(ctx context.Context, user *model.User, clubID uint) error {
	if err := s.acl.RequireClub(ctx, user, clubID); err != nil {
		return err
	}
	if user.Role == model.RoleSuperadmin {
		return nil
	}
	role, err := s.memberships.RoleIn(ctx, user.ID, clubID)
	if err != nil {
		return err
	}
	if role != model.MembershipRoleOwner && role != model.MembershipRoleClubAdmin {
		return apierror.Forbidden("недостаточно прав")
	}
	return nil
}

// requireEntryAccess gates salary entries: superadmins and owners only,
// club admins never see money totals.
func (s *payrollService) requireEntryAccess(ctx context.Context, user *model.User) error {
	if user.Role == model.RoleSuperadmin {
		return nil
	}
	roles, err := s.memberships.DistinctRoles(ctx, user.ID)
	if err != nil {
		return err
	}
	for _, r := range roles {
		if r == model.MembershipRoleOwner {
			return nil
		}
	}
	return apierror.Forbidden("недостаточно прав")
}

func toPayrollEntry(e *model.PayrollEntry) *dto.PayrollEntryResponse {
	return &dto.PayrollEntryResponse{
		ID:         e.ID,
		UserID:     e.UserID,
		Month:      e.Month,
		BaseSalary: e.BaseSalary,
		Bonuses:    e.Bonuses,
		Fines:      e.Fines,
		Total:      e.Total,
		Status:     e.Status,
	}
}
