package service

import (
	"context"
	"fmt"

	"github.com/Dignition/colizeum-api/internal/apierror"
	"github.com/Dignition/colizeum-api/internal/model"
	"github.com/Dignition/colizeum-api/internal/repository"

	"github.com/redis/go-redis/v9"
)

const activeClubKeyFmt = "acl:active_club:%d"

// ACLService answers every club-visibility and permission question. All
// other services go through it instead of re-deriving role rules.
type ACLService interface {
	// AllowedClubs returns the active clubs a user may see: every active
	// club for superadmins, membership clubs otherwise.
	AllowedClubs(ctx context.Context, user *model.User) ([]model.Club, error)
	// ActiveClub resolves the user's currently selected club, falling back
	// to the lowest-id allowed club and persisting that choice.
	ActiveClub(ctx context.Context, user *model.User) (*model.Club, error)
	// SetActiveClub switches the selection. Clubs outside the allowed set
	// are ignored without error.
	SetActiveClub(ctx context.Context, user *model.User, clubID uint) (*model.Club, error)
	CanEditReport(ctx context.Context, user *model.User, report *model.CashierReport) (bool, error)
	CanDeleteDebtOps(ctx context.Context, user *model.User, clubID uint) (bool, error)
	// RoleIn returns the user's membership role inside one club, "" when
	// not a member.
	RoleIn(ctx context.Context, userID, clubID uint) (string, error)
	RequireClub(ctx context.Context, user *model.User, clubID uint) error
}

type aclService struct {
	clubs       repository.ClubRepository
	memberships repository.MembershipRepository
	rdb         *redis.Client
}

func NewACLService(clubs repository.ClubRepository, memberships repository.MembershipRepository, rdb *redis.Client) ACLService {
	return &aclService{clubs: clubs, memberships: memberships, rdb: rdb}
}

// ── AllowedClubs ──────────────────────────────────────────────────────────────

func (s *aclService) AllowedClubs(ctx context.Context, user *model.User) ([]model.Club, error) {
	if user.Role == model.RoleSuperadmin {
		return s.clubs.ListActive(ctx)
	}
	return s.memberships.ClubsForUser(ctx, user.ID)
}

// ── ActiveClub / SetActiveClub ────────────────────────────────────────────────

func (s *aclService) ActiveClub(ctx context.Context, user *model.User) (*model.Club, error) {
	allowed, err := s.AllowedClubs(ctx, user)
	if err != nil {
		return nil, err
	}
	if len(allowed) == 0 {
		return nil, nil
	}

	key := fmt.Sprintf(activeClubKeyFmt, user.ID)
	if s.rdb != nil {
		var stored uint
		if err := s.rdb.Get(ctx, key).Scan(&stored); err == nil {
			for i := range allowed {
				if allowed[i].ID == stored {
					return &allowed[i], nil
				}
			}
		}
	}

	// Fall back to the lowest-id allowed club and remember it, so the
	// selection survives until the user switches explicitly.
	min := &allowed[0]
	for i := range allowed {
		if allowed[i].ID < min.ID {
			min = &allowed[i]
		}
	}
	if s.rdb != nil {
		s.rdb.Set(ctx, key, min.ID, 0)
	}
	return min, nil
}

func (s *aclService) SetActiveClub(ctx context.Context, user *model.User, clubID uint) (*model.Club, error) {
	allowed, err := s.AllowedClubs(ctx, user)
	if err != nil {
		return nil, err
	}
	for i := range allowed {
		if allowed[i].ID == clubID {
			if s.rdb != nil {
				key := fmt.Sprintf(activeClubKeyFmt, user.ID)
				if err := s.rdb.Set(ctx, key, clubID, 0).Err(); err != nil {
					return nil, err
				}
			}
			return &allowed[i], nil
		}
	}
	// Requested club is outside the allowed set: keep current selection.
	return s.ActiveClub(ctx, user)
}

// ── Permission checks ─────────────────────────────────────────────────────────

func (s *aclService) CanEditReport(ctx context.Context, user *model.User, report *model.CashierReport) (bool, error) {
	if user.Role == model.RoleSuperadmin {
		return true, nil
	}
	role, err := s.memberships.RoleIn(ctx, user.ID, report.ClubID)
	if err != nil {
		return false, err
	}
	// Cashiers only create and view their own reports, never edit them.
	return role == model.MembershipRoleOwner || role == model.MembershipRoleClubAdmin, nil
}

func (s *aclService) CanDeleteDebtOps(ctx context.Context, user *model.User, clubID uint) (bool, error) {
	if user.Role == model.RoleSuperadmin {
		return true, nil
	}
	role, err := s.memberships.RoleIn(ctx, user.ID, clubID)
	if err != nil {
		return false, err
	}
	return role == model.MembershipRoleOwner, nil
}

func (s *aclService) RoleIn(ctx context.Context, userID, clubID uint) (string, error) {
	return s.memberships.RoleIn(ctx, userID, clubID)
}

func (s *aclService) RequireClub(ctx context.Context, user *model.User, clubID uint) error {
	allowed, err := s.AllowedClubs(ctx, user)
	if err != nil {
		return err
	}
	for i := range allowed {
		if allowed[i].ID == clubID {
			return nil
		}
	}
	return apierror.Forbidden("клуб недоступен")
}
