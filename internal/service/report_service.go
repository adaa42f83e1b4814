package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dignition/colizeum-api/internal/apierror"
	"github.com/Dignition/colizeum-api/internal/dto"
	"github.com/Dignition/colizeum-api/internal/model"
	"github.com/Dignition/colizeum-api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrDuplicateReport is returned when a report already exists for the same
// (club, date, shift type); ReportID points at the existing row.
type ErrDuplicateReport struct {
	ReportID uint
}

func (e *ErrDuplicateReport) Error() string {
	return "отчёт за эту смену уже существует"
}

// deltaTolerance is how far the extended-payment breakdown may drift from
// the extended total before the report is flagged.
var deltaTolerance = decimal.NewFromFloat(0.01)

type ReportService interface {
	Create(ctx context.Context, user *model.User, clubID uint, req dto.ReportPayload) (*dto.ReportResponse, error)
	Get(ctx context.Context, user *model.User, id uint) (*dto.ReportResponse, error)
	Update(ctx context.Context, user *model.User, id uint, req dto.ReportPayload) (*dto.ReportResponse, error)
	// Month returns a club's reports for one calendar month with totals and
	// the count of days that have both a day and a night report.
	Month(ctx context.Context, user *model.User, clubID uint, month string) (*dto.ReportMonthResponse, error)
}

type reportService struct {
	reports repository.ReportRepository
	acl     ACLService
}

func NewReportService(reports repository.ReportRepository, acl ACLService) ReportService {
	return &reportService{reports: reports, acl: acl}
}

// ── Create ────────────────────────────────────────────────────────────────────

func (s *reportService) Create(ctx context.Context, user *model.User, clubID uint, req dto.ReportPayload) (*dto.ReportResponse, error) {
	if err := s.acl.RequireClub(ctx, user, clubID); err != nil {
		return nil, err
	}
	date, err := time.Parse("2006-01-02", req.ShiftDate)
	if err != nil {
		return nil, errors.New("неверный формат даты")
	}

	if existing, err := s.reports.FindByKey(ctx, clubID, date, req.ShiftType); err == nil {
		return nil, &ErrDuplicateReport{ReportID: existing.ID}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	report := &model.CashierReport{
		ClubID:    clubID,
		UserID:    user.ID,
		ShiftDate: date,
		ShiftType: req.ShiftType,
	}
	applyPayload(report, req)
	classify(report, req.MismatchReason)

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	report.User = user
	return s.toResponse(ctx, user, report)
}

// ── Get / Update ──────────────────────────────────────────────────────────────

func (s *reportService) Get(ctx context.Context, user *model.User, id uint) (*dto.ReportResponse, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("отчёт не найден")
	}
	if err := s.acl.RequireClub(ctx, user, report.ClubID); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, user, report)
}

func (s *reportService) Update(ctx context.Context, user *model.User, id uint, req dto.ReportPayload) (*dto.ReportResponse, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("отчёт не найден")
	}
	canEdit, err := s.acl.CanEditReport(ctx, user, report)
	if err != nil {
		return nil, err
	}
	if !canEdit {
		return nil, apierror.Forbidden("нет прав на редактирование отчёта")
	}

	date, err := time.Parse("2006-01-02", req.ShiftDate)
	if err != nil {
		return nil, errors.New("неверный формат даты")
	}
	// Moving the report onto another already-taken (date, type) slot is a
	// conflict too.
	if existing, err := s.reports.FindByKey(ctx, report.ClubID, date, req.ShiftType); err == nil && existing.ID != report.ID {
		return nil, &ErrDuplicateReport{ReportID: existing.ID}
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	report.ShiftDate = date
	report.ShiftType = req.ShiftType
	applyPayload(report, req)
	classify(report, req.MismatchReason)

	if err := s.reports.Update(ctx, report); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, user, report)
}

// ── Month ─────────────────────────────────────────────────────────────────────

func (s *reportService) Month(ctx context.Context, user *model.User, clubID uint, month string) (*dto.ReportMonthResponse, error) {
	if err := s.acl.RequireClub(ctx, user, clubID); err != nil {
		return nil, err
	}
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, errors.New("неверный формат месяца")
	}
	end := start.AddDate(0, 1, 0)

	reports, err := s.reports.ListRange(ctx, clubID, start, end)
	if err != nil {
		return nil, err
	}
	sums, err := s.reports.SumRange(ctx, clubID, start, end)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReportMonthResponse{
		Month:  month,
		ClubID: clubID,
		Totals: dto.MonthTotals{
			Bar:           sums.Bar,
			Cash:          sums.Cash,
			Extended:      sums.Extended,
			SbpAcq:        sums.SbpAcq,
			SbpCls:        sums.SbpCls,
			Acquiring:     sums.Acquiring,
			AcquiringFee:  sums.AcquiringFee,
			RefundCash:    sums.RefundCash,
			RefundNoncash: sums.RefundNoncash,
			Encashment:    sums.Encashment,
		},
		Reports: make([]dto.ReportResponse, 0, len(reports)),
	}

	// A "full day" has both shift reports filed.
	types := make(map[string]map[string]bool)
	for i := range reports {
		r, err := s.toResponse(ctx, user, &reports[i])
		if err != nil {
			return nil, err
		}
		resp.Reports = append(resp.Reports, *r)

		day := reports[i].ShiftDate.Format("2006-01-02")
		if types[day] == nil {
			types[day] = make(map[string]bool)
		}
		types[day][reports[i].ShiftType] = true
	}
	for _, t := range types {
		if t["day"] && t["night"] {
			resp.FullDaysCount++
		}
	}
	return resp, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func applyPayload(r *model.CashierReport, req dto.ReportPayload) {
	r.Bar = req.Bar
	r.Cash = req.Cash
	r.Extended = req.Extended
	r.SbpAcq = req.SbpAcq
	r.SbpCls = req.SbpCls
	r.Acquiring = req.Acquiring
	r.AcquiringFee = req.AcquiringFee
	r.RefundCash = req.RefundCash
	r.RefundNoncash = req.RefundNoncash
	r.Encashment = req.Encashment
	r.ExpensesJSON = req.ExpensesJSON
	r.Note = req.Note
}

// classify reconciles the extended-payment breakdown. Within tolerance the
// report is "ok"; otherwise it becomes "warn" and the discrepancy is stamped
// into the note so it survives later edits of the money fields.
func classify(r *model.CashierReport, mismatchReason string) {
	delta := r.Delta()
	if delta.Abs().LessThanOrEqual(deltaTolerance) {
		r.Status = model.ReportStatusOK
		return
	}
	r.Status = model.ReportStatusWarn
	tag := "[Δ=" + formatDelta(delta) + "]"
	if mismatchReason != "" {
		tag += " " + mismatchReason
	}
	if r.Note == "" {
		r.Note = tag
	} else {
		r.Note = r.Note + "\n" + tag
	}
}

// formatDelta renders a signed amount without trailing zeros but with at
// least one decimal place: 50 -> "+50.0", -3.25 -> "-3.25".
func formatDelta(d decimal.Decimal) string {
	s := fmt.Sprintf("%+.2f", d.InexactFloat64())
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}

func (s *reportService) toResponse(ctx context.Context, user *model.User, r *model.CashierReport) (*dto.ReportResponse, error) {
	canEdit, err := s.acl.CanEditReport(ctx, user, r)
	if err != nil {
		return nil, err
	}
	resp := &dto.ReportResponse{
		ID:            r.ID,
		ClubID:        r.ClubID,
		UserID:        r.UserID,
		ShiftDate:     r.ShiftDate.Format("2006-01-02"),
		ShiftType:     r.ShiftType,
		Bar:           r.Bar,
		Cash:          r.Cash,
		Extended:      r.Extended,
		SbpAcq:        r.SbpAcq,
		SbpCls:        r.SbpCls,
		Acquiring:     r.Acquiring,
		AcquiringFee:  r.AcquiringFee,
		RefundCash:    r.RefundCash,
		RefundNoncash: r.RefundNoncash,
		Encashment:    r.Encashment,
		ExpensesJSON:  r.ExpensesJSON,
		Note:          r.Note,
		Status:        r.Status,
		ZReport:       r.ZReport(),
		GamePS:        r.GamePS(),
		Delta:         r.Delta(),
		CanEdit:       canEdit,
	}
	if r.User != nil {
		resp.UserName = r.User.FullName
		if resp.UserName == "" {
			resp.UserName = r.User.Username
		}
	}
	return resp, nil
}
