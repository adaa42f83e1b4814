package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Dignition/colizeum-api/internal/apierror"
	"github.com/Dignition/colizeum-api/internal/dto"
	"github.com/Dignition/colizeum-api/internal/model"
	"github.com/Dignition/colizeum-api/internal/repository"

	"gorm.io/gorm"
)

const (
	dayShiftStart   = "10:00"
	dayShiftEnd     = "22:00"
	nightShiftStart = "22:00"
	nightShiftEnd   = "10:00"
)

// offSentinels mark a day off in the start field; they clear the cell.
var offSentinels = map[string]bool{"B": true, "В": true, "OFF": true}

type ScheduleService interface {
	Month(ctx context.Context, user *model.User, clubID uint, month string) (*dto.ScheduleMonthResponse, error)
	// SaveShift upserts or clears one user+day cell.
	SaveShift(ctx context.Context, user *model.User, clubID uint, req dto.SaveShiftRequest) (*dto.SaveResultResponse, error)
	// SaveMonth replaces the whole grid for a month in one call.
	SaveMonth(ctx context.Context, user *model.User, clubID uint, req dto.SaveMonthRequest) (*dto.SaveResultResponse, error)
}

type scheduleService struct {
	shifts      repository.ShiftRepository
	reports     repository.ReportRepository
	memberships repository.MembershipRepository
	acl         ACLService
	db          *gorm.DB
}

func NewScheduleService(
	shifts repository.ShiftRepository,
	reports repository.ReportRepository,
	memberships repository.MembershipRepository,
	acl ACLService,
	db *gorm.DB,
) ScheduleService {
	return &scheduleService{
		shifts:      shifts,
		reports:     reports,
		memberships: memberships,
		acl:         acl,
		db:          db,
	}
}

// ── Month ─────────────────────────────────────────────────────────────────────

func (s *scheduleService) Month(ctx context.Context, user *model.User, clubID uint, month string) (*dto.ScheduleMonthResponse, error) {
	if err := s.acl.RequireClub(ctx, user, clubID); err != nil {
		return nil, err
	}
	from, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, errors.New("неверный формат месяца")
	}
	to := from.AddDate(0, 1, 0)

	resp := &dto.ScheduleMonthResponse{
		Month:    month,
		ClubID:   clubID,
		Cells:    make(map[string]dto.ScheduleCell),
		MyUserID: user.ID,
	}
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		resp.Days = append(resp.Days, d.Format("2006-01-02"))
	}

	members, err := s.memberships.MembersOf(ctx, clubID)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		resp.Staff = append(resp.Staff, dto.ClubMember{
			ID:   m.UserID,
			Name: displayName(m.Username, m.FullName),
			Role: m.Role,
		})
	}

	resp.EditableAll, resp.EditableSelfOnly = s.editScope(ctx, user, clubID)

	// Filed cashier reports imply worked shifts; explicit schedule rows
	// take precedence over that inference.
	reports, err := s.reports.ListRange(ctx, clubID, from, to)
	if err != nil {
		return nil, err
	}
	for _, r := range reports {
		key := cellKey(r.UserID, r.ShiftDate)
		cell := resp.Cells[key]
		switch r.ShiftType {
		case model.ShiftDay:
			if cell.Start == nightShiftStart {
				cell = dto.ScheduleCell{Start: dayShiftStart, End: dayShiftStart, Both: 1}
			} else {
				cell = dto.ScheduleCell{Start: dayShiftStart, End: dayShiftEnd}
			}
		case model.ShiftNight:
			if cell.Start == dayShiftStart && cell.Both == 0 {
				cell = dto.ScheduleCell{Start: dayShiftStart, End: dayShiftStart, Both: 1}
			} else if cell.Start == "" {
				cell = dto.ScheduleCell{Start: nightShiftStart, End: nightShiftEnd}
			}
		}
		resp.Cells[key] = cell
	}

	shifts, err := s.shifts.ListMonth(ctx, clubID, from, to)
	if err != nil {
		return nil, err
	}
	for _, sh := range shifts {
		cell := dto.ScheduleCell{
			Start: sh.StartTS.Format("15:04"),
			End:   sh.EndTS.Format("15:04"),
		}
		if sh.EndTS.Sub(sh.StartTS) >= 24*time.Hour {
			cell.Both = 1
		}
		resp.Cells[cellKey(sh.UserID, sh.StartTS)] = cell
	}
	return resp, nil
}

// ── SaveShift ─────────────────────────────────────────────────────────────────

func (s *scheduleService) SaveShift(ctx context.Context, user *model.User, clubID uint, req dto.SaveShiftRequest) (*dto.SaveResultResponse, error) {
	if err := s.acl.RequireClub(ctx, user, clubID); err != nil {
		return nil, err
	}
	if err := s.canEditRow(ctx, user, clubID, req.UserID); err != nil {
		return nil, err
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apierror.Coded("bad_time", "неверная дата")
	}

	resp := &dto.SaveResultResponse{}
	err = runTx(ctx, s.db, func(*gorm.DB) error {
		action, err := s.applyCell(ctx, clubID, req.UserID, day, req.Start, req.End, req.Both)
		if err != nil {
			return err
		}
		resp.Action = action
		if action == "upsert" {
			resp.Saved = 1
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ── SaveMonth ─────────────────────────────────────────────────────────────────

func (s *scheduleService) SaveMonth(ctx context.Context, user *model.User, clubID uint, req dto.SaveMonthRequest) (*dto.SaveResultResponse, error) {
	if err := s.acl.RequireClub(ctx, user, clubID); err != nil {
		return nil, err
	}
	if all, _ := s.editScope(ctx, user, clubID); !all {
		return nil, apierror.Forbidden("недостаточно прав")
	}
	from, err := time.Parse("2006-01", req.Month)
	if err != nil {
		return nil, apierror.Coded("bad_time", "неверный формат месяца")
	}
	to := from.AddDate(0, 1, 0)

	resp := &dto.SaveResultResponse{Action: "upsert"}
	err = runTx(ctx, s.db, func(*gorm.DB) error {
		// The submitted grid is the whole truth for the month: shifts of
		// members or days missing from it must not survive.
		if err := s.shifts.DeleteMonth(ctx, clubID, from, to); err != nil {
			return err
		}
		for _, row := range req.Rows {
			for date, cell := range row.Days {
				day, err := time.Parse("2006-01-02", date)
				if err != nil {
					return apierror.Coded("bad_time", "неверная дата: "+date)
				}
				shift, err := buildShift(clubID, row.UserID, day, cell.Start, cell.End, cell.Both)
				if err != nil {
					return err
				}
				if shift == nil {
					continue
				}
				if err := s.shifts.Create(ctx, shift); err != nil {
					return err
				}
				resp.Saved++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// applyCell replaces the shifts of one user+day with the given cell.
// An off sentinel or an empty start clears the day.
func (s *scheduleService) applyCell(ctx context.Context, clubID, userID uint, day time.Time, start, end string, both int) (string, error) {
	dayEnd := day.AddDate(0, 0, 1)
	if _, err := s.shifts.DeleteForDay(ctx, clubID, userID, day, dayEnd); err != nil {
		return "", err
	}

	shift, err := buildShift(clubID, userID, day, start, end, both)
	if err != nil {
		return "", err
	}
	if shift == nil {
		return "delete", nil
	}
	if err := s.shifts.Create(ctx, shift); err != nil {
		return "", err
	}
	return "upsert", nil
}

// buildShift turns one grid cell into a shift row. An off sentinel or an
// empty start yields nil.
func buildShift(clubID, userID uint, day time.Time, start, end string, both int) (*model.Shift, error) {
	start = strings.ToUpper(strings.TrimSpace(start))
	if start == "" || offSentinels[start] {
		return nil, nil
	}

	startTS, err := atTime(day, start)
	if err != nil {
		return nil, apierror.Coded("bad_time", "неверное время начала: "+start)
	}
	if end == "" {
		end = dayShiftEnd
	}
	endTS, err := atTime(day, end)
	if err != nil {
		return nil, apierror.Coded("bad_time", "неверное время окончания: "+end)
	}

	// Overnight rollover: a 24h cell always crosses midnight, and any end
	// at or before the start means the shift finishes next day.
	switch {
	case both != 0 && !endTS.Before(startTS):
		endTS = endTS.AddDate(0, 0, 1)
	case !endTS.After(startTS):
		endTS = endTS.AddDate(0, 0, 1)
	}

	return &model.Shift{
		ClubID:  clubID,
		UserID:  userID,
		StartTS: startTS,
		EndTS:   endTS,
	}, nil
}

// editScope resolves schedule edit rights: superadmin and owner edit any
// row, club_admin only their own, staff none.
func (s *scheduleService) editScope(ctx context.Context, user *model.User, clubID uint) (all, selfOnly bool) {
	if user.Role == model.RoleSuperadmin {
		return true, false
	}
	role, err := s.memberships.RoleIn(ctx, user.ID, clubID)
	if err != nil {
		return false, false
	}
	switch role {
	case model.MembershipRoleOwner:
		return true, false
	case model.MembershipRoleClubAdmin:
		return false, true
	}
	return false, false
}

func (s *scheduleService) canEditRow(ctx context.Context, user *model.User, clubID, rowUserID uint) error {
	all, selfOnly := s.editScope(ctx, user, clubID)
	if all {
		return nil
	}
	if selfOnly {
		if rowUserID == user.ID {
			return nil
		}
		return apierror.Forbidden("можно менять только свой график")
	}
	return apierror.Forbidden("график меняет администрация клуба")
}

// atTime combines a calendar day with an "HH:MM" time of day.
func atTime(day time.Time, hhmm string) (time.Time, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, errors.New("bad time")
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return time.Time{}, errors.New("bad time")
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return time.Time{}, errors.New("bad time")
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location()), nil
}

func cellKey(userID uint, day time.Time) string {
	return strconv.FormatUint(uint64(userID), 10) + ":" + day.Format("2006-01-02")
}
