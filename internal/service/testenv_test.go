package service

import (
	"github.com/Dignition/colizeum-api/internal/model"
)

// testEnv wires all fakes together the way router.New wires the real
// repositories. Redis and the DB handle stay nil so services run their
// fallback paths.
type testEnv struct {
	users     *fakeUserRepo
	clubs     *fakeClubRepo
	members   *fakeMembershipRepo
	reports   *fakeReportRepo
	catalog   *fakeCatalogRepo
	debts     *fakeDebtRepo
	inventory *fakeInventoryRepo
	shifts    *fakeShiftRepo
	payroll   *fakePayrollRepo
	acl       ACLService
}

func newTestEnv() *testEnv {
	users := newFakeUserRepo()
	clubs := newFakeClubRepo()
	members := newFakeMembershipRepo(users, clubs)
	catalog := newFakeCatalogRepo()
	env := &testEnv{
		users:     users,
		clubs:     clubs,
		members:   members,
		reports:   newFakeReportRepo(),
		catalog:   catalog,
		debts:     newFakeDebtRepo(users),
		inventory: newFakeInventoryRepo(catalog),
		shifts:    newFakeShiftRepo(users),
		payroll:   newFakePayrollRepo(),
	}
	env.acl = NewACLService(clubs, members, nil)
	return env
}

func (e *testEnv) club(id uint, name string) *model.Club {
	return e.clubs.add(model.Club{ID: id, Name: name, IsActive: true})
}

func (e *testEnv) superadmin(id uint, username string) *model.User {
	return e.users.add(model.User{ID: id, Username: username, Role: model.RoleSuperadmin, IsActive: true})
}

// member creates a plain user with one club membership.
func (e *testEnv) member(id uint, username string, clubID uint, role string) *model.User {
	u := e.users.add(model.User{ID: id, Username: username, Role: model.RoleUser, IsActive: true})
	e.members.add(u.ID, clubID, role)
	return u
}
