package service

import (
	"context"
	"testing"
	"time"

	"github.com/Dignition/colizeum-api/internal/dto"
	"github.com/Dignition/colizeum-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduleService(env *testEnv) ScheduleService {
	return NewScheduleService(env.shifts, env.reports, env.members, env.acl, nil)
}

func TestSaveShiftDay(t *testing.T) {
	env := newTestEnv()
	env.club(1, "COLIZEUM Арена")
	owner := env.member(2, "owner", 1, model.MembershipRoleOwner)
	staff := env.member(3, "masha", 1, model.MembershipRoleStaff)
	svc := newScheduleService(env)

	resp, err := svc.SaveShift(context.Background(), owner, 1, dto.SaveShiftRequest{
		UserID: staff.ID, Date: "2026-01-05", Start: "10:00", End: "22:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "upsert", resp.Action)
	assert.Equal(t, 1, resp.Saved)

	require.Len(t, env.shifts.shifts, 1)
	sh := env.shifts.shifts[0]
	assert.Equal(t, "2026-01-05 10:00", sh.StartTS.Format("2006-01-02 15:04"))
	assert.Equal(t, "2026-01-05 22:00", sh.EndTS.Format("2006-01-02 15:04"))
}

func TestSaveShiftNightRollsOver(t *testing.T) {
	env := newTestEnv()
	env.club(1, "COLIZEUM Арена")
	owner := env.member(2, "owner", 1, model.MembershipRoleOwner)
	svc := newScheduleService(env)

	_, err := svc.SaveShift(context.Background(), owner, 1, dto.SaveShiftRequest{
		UserID: owner.ID, Date: "2026-01-05", Start: "22:00", End: "10:00",
	})
	require.NoError(t, err)

	sh := env.shifts.shifts[0]
	assert.Equal(t, "2026-01-06 10:00", sh.EndTS.Format("2006-01-02 15:04"))
	assert.Equal(t, 12*time.Hour, sh.EndTS.Sub(sh.StartTS))
}

func TestSaveShiftBothIsFullDay(t *testing.T) {
	env := newTestEnv()
	env.club(1, "COLIZEUM Арена")
	owner := env.member(2, "owner", 1, model.MembershipRoleOwner)
	svc := newScheduleService(env)

	_, err := svc.SaveShift(context.Background(), owner, 1, dto.SaveShiftRequest{
		UserID: owner.ID, Date: "2026-01-05", Start: "10:00", End: "10:00", Both: 1,
	})
	require.NoError(t, err)

	sh := env.shifts.shifts[0]
	assert.Equal(t, 24*time.Hour, sh.EndTS.Sub(sh.StartTS))
}

func TestSaveShiftOffSentinelClearsDay(t *testing.T) {
	env := newTestEnv()
	env.club(1, "COLIZEUM Арена")
	owner := env.member(2, "owner", 1, model.MembershipRoleOwner)
	svc := newScheduleService(env)

	ctx := context.Background()
	for _, sentinel := range []string{"B", "в", "off", ""} {
		_, err := svc.SaveShift(ctx, owner, 1, dto.SaveShiftRequest{
			UserID: owner.ID, Date: "2026-01-05", Start: "10:00", End: "22:00",
		})
		require.NoError(t, err)

		resp, err := svc.SaveShift(ctx, owner, 1, dto.SaveShiftRequest{
			UserID: owner.ID, Date: "2026-01-05", Start: sentinel,
		})
		require.NoError(t, err, "sentinel %q", sentinel)
		assert.Equal(t, "delete", resp.Action)
		assert.Empty(t, env.shifts.shifts)
	}
}

func TestSaveShiftBadTime(t *testing.T) {
	env := newTestEnv()
	env.club(1, "COLIZEUM Арена")
	owner := env.member(2, "owner", 1, model.MembershipRoleOwner)
	svc := newScheduleService(env)

	_, err := svc.SaveShift(context.Background(), owner, 1, dto.SaveShiftRequest{
		UserID: owner.ID, Date: "2026-01-05", Start: "25:00",
	})
	assertCode(t, err, "bad_time")

	_, err = svc.SaveShift(context.Background(), owner, 1, dto.SaveShiftRequest{
		UserID: owner.ID, Date: "вчера", Start: "10:00",
	})
	assertCode(t, err, "bad_time")
}

func TestSaveShiftClubAdminSelfOnly(t *testing.T) {
	env := newTestEnv()
	env.club(1, "COLIZEUM Арена")
	clubAdmin := env.member(2, "cadmin", 1, model.MembershipRoleClubAdmin)
	other := env.member(3, "petya", 1, model.MembershipRoleStaff)
	svc := newScheduleService(env)

	_, err := svc.SaveShift(context.Background(), clubAdmin, 1, dto.SaveShiftRequest{
		UserID: other.ID, Date: "2026-01-05", Start: "10:00", End: "22:00",
	})
	assert.ErrorContains(t, err, "только свой график")

	_, err = svc.SaveShift(context.Background(), clubAdmin, 1, dto.SaveShiftRequest{
		UserID: clubAdmin.ID, Date: "2026-01-05", Start: "10:00", End: "22:00",
	})
	assert.NoError(t, err)

	resp, err := svc.Month(context.Background(), clubAdmin, 1, "2026-01")
	require.NoError(t, err)
	assert.False(t, resp.EditableAll)
	assert.True(t, resp.EditableSelfOnly)

	// Bulk month save stays a superadmin/owner action.
	_, err = svc.SaveMonth(context.Background(), clubAdmin, 1, dto.SaveMonthRequest{Month: "2026-01"})
	assert.ErrorContains(t, err, "недостаточно прав")
}

func TestSaveShiftStaffCannotEdit(t *testing.T) {
	env := newTestEnv()
	env.club(1, "COLIZEUM Арена")
	staff := env.member(2, "masha", 1, model.MembershipRoleStaff)
	svc := newScheduleService(env)

	// Cashiers do not edit the schedule, their own row included.
	_, err := svc.SaveShift(context.Background(), staff, 1, dto.SaveShiftRequest{
		UserID: staff.ID, Date: "2026-01-05", Start: "10:00", End: "22:00",
	})
	require.Error(t, err)
	assert.Empty(t, env.shifts.shifts)
}

func TestSaveMonthReplacesGrid(t *testing.T) {
	env := newTestEnv()
	env.club(1, "COLIZEUM Арена")
	owner := env.member(2, "owner", 1, model.MembershipRoleOwner)
	staff := env.member(3, "masha", 1, model.MembershipRoleStaff)
	stale := env.member(4, "petya", 1, model.MembershipRoleStaff)
	svc := newScheduleService(env)

	ctx := context.Background()
	// A leftover shift of a member missing from the submitted grid.
	require.NoError(t, env.shifts.Create(ctx, &model.Shift{
		ClubID: 1, UserID: stale.ID,
		StartTS: time.Date(2026, time.January, 20, 10, 0, 0, 0, time.UTC),
		EndTS:   time.Date(2026, time.January, 20, 22, 0, 0, 0, time.UTC),
	}))

	resp, err := svc.SaveMonth(ctx, owner, 1, dto.SaveMonthRequest{
		Month: "2026-01",
		Rows: []dto.ScheduleRow{
			{UserID: staff.ID, Days: map[string]dto.ScheduleCell{
				"2026-01-05": {Start: "10:00", End: "22:00"},
				"2026-01-06": {Start: "22:00", End: "10:00"},
				"2026-01-07": {Start: "B"},
			}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Saved)
	require.Len(t, env.shifts.shifts, 2)
	for _, sh := range env.shifts.shifts {
		assert.Equal(t, staff.ID, sh.UserID)
	}
}

func TestSaveMonthRequiresManager(t *testing.T) {
	env := newTestEnv()
	env.club(1, "COLIZEUM Арена")
	staff := env.member(2, "masha", 1, model.MembershipRoleStaff)
	svc := newScheduleService(env)

	_, err := svc.SaveMonth(context.Background(), staff, 1, dto.SaveMonthRequest{Month: "2026-01"})
	assert.ErrorContains(t, err, "недостаточно прав")
}

func TestMonthInfersCellsFromReports(t *testing.T) {
	env := newTestEnv()
	env.club(1, "COLIZEUM Арена")
	owner := env.member(2, "owner", 1, model.MembershipRoleOwner)
	staff := env.member(3, "masha", 1, model.MembershipRoleStaff)
	svc := newScheduleService(env)

	ctx := context.Background()
	day5 := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	day6 := time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC)
	require.NoError(t, env.reports.Create(ctx, &model.CashierReport{
		ClubID: 1, UserID: staff.ID, ShiftDate: day5, ShiftType: model.ShiftDay,
	}))
	require.NoError(t, env.reports.Create(ctx, &model.CashierReport{
		ClubID: 1, UserID: staff.ID, ShiftDate: day6, ShiftType: model.ShiftDay,
	}))
	require.NoError(t, env.reports.Create(ctx, &model.CashierReport{
		ClubID: 1, UserID: staff.ID, ShiftDate: day6, ShiftType: model.ShiftNight,
	}))

	resp, err := svc.Month(ctx, owner, 1, "2026-01")
	require.NoError(t, err)

	assert.Len(t, resp.Days, 31)
	assert.True(t, resp.EditableAll)

	cell := resp.Cells["3:2026-01-05"]
	assert.Equal(t, dto.ScheduleCell{Start: "10:00", End: "22:00"}, cell)

	// Both reports filed on one day read as a full 24h cell.
	cell = resp.Cells["3:2026-01-06"]
	assert.Equal(t, 1, cell.Both)
}

func TestMonthExplicitShiftOverridesInference(t *testing.T) {
	env := newTestEnv()
	env.club(1, "COLIZEUM Арена")
	staff := env.member(2, "masha", 1, model.MembershipRoleStaff)
	svc := newScheduleService(env)

	ctx := context.Background()
	day5 := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, env.reports.Create(ctx, &model.CashierReport{
		ClubID: 1, UserID: staff.ID, ShiftDate: day5, ShiftType: model.ShiftDay,
	}))
	require.NoError(t, env.shifts.Create(ctx, &model.Shift{
		ClubID: 1, UserID: staff.ID,
		StartTS: time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC),
		EndTS:   time.Date(2026, time.January, 5, 20, 0, 0, 0, time.UTC),
	}))

	resp, err := svc.Month(ctx, staff, 1, "2026-01")
	require.NoError(t, err)

	// Cashiers see the grid read-only.
	assert.False(t, resp.EditableAll)
	assert.False(t, resp.EditableSelfOnly)
	cell := resp.Cells["2:2026-01-05"]
	assert.Equal(t, dto.ScheduleCell{Start: "12:00", End: "20:00"}, cell)
}

func TestAtTime(t *testing.T) {
	day := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	ts, err := atTime(day, "09:30")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-05 09:30", ts.Format("2006-01-02 15:04"))

	for _, bad := range []string{"24:00", "10:60", "10", "aa:bb"} {
		_, err := atTime(day, bad)
		assert.Error(t, err, "time %q", bad)
	}
}
