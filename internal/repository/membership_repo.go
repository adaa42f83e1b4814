package repository

import (
	"context"

	"github.com/Dignition/colizeum-api/internal/model"

	"gorm.io/gorm"
)

// Member is a membership row joined with the user's display fields.
type Member struct {
	MembershipID uint
	UserID       uint
	ClubID       uint
	Username     string
	FullName     string
	Role         string
}

type MembershipRepository interface {
	Create(ctx context.Context, m *model.UserClub) error
	Delete(ctx context.Context, id uint) error
	DeleteByClub(ctx context.Context, clubID uint) error
	DeleteByUser(ctx context.Context, userID uint) error

	// RoleIn returns the membership role of a user within one club,
	// or "" when no membership exists.
	RoleIn(ctx context.Context, userID, clubID uint) (string, error)
	// DistinctRoles returns the distinct membership roles a user holds
	// across all clubs.
	DistinctRoles(ctx context.Context, userID uint) ([]string, error)
	Exists(ctx context.Context, userID, clubID uint) (bool, error)

	// ClubIDsForUser returns ids of active clubs the user is a member of.
	ClubIDsForUser(ctx context.Context, userID uint) ([]uint, error)
	// ClubsForUser returns the active clubs the user is a member of,
	// ordered by name.
	ClubsForUser(ctx context.Context, userID uint) ([]model.Club, error)
	ListForUser(ctx context.Context, userID uint) ([]model.UserClub, error)
	// MembersOf lists a club's members joined with user names, optionally
	// filtered to the given roles.
	MembersOf(ctx context.Context, clubID uint, roles ...string) ([]Member, error)
	MemberIDs(ctx context.Context, clubID uint) ([]uint, error)
}

type membershipRepo struct{ db *gorm.DB }

func NewMembershipRepository(db *gorm.DB) MembershipRepository { return &membershipRepo{db: db} }

func (r *membershipRepo) Create(ctx context.Context, m *model.UserClub) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *membershipRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.UserClub{}, id).Error
}

func (r *membershipRepo) DeleteByClub(ctx context.Context, clubID uint) error {
	return r.db.WithContext(ctx).Where("club_id = ?", clubID).Delete(&model.UserClub{}).Error
}

func (r *membershipRepo) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.UserClub{}).Error
}

func (r *membershipRepo) RoleIn(ctx context.Context, userID, clubID uint) (string, error) {
	var m model.UserClub
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND club_id = ?", userID, clubID).
		First(&m).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return m.Role, nil
}

func (r *membershipRepo) DistinctRoles(ctx context.Context, userID uint) ([]string, error) {
	var roles []string
	err := r.db.WithContext(ctx).Model(&model.UserClub{}).
		Distinct("role").
		Where("user_id = ?", userID).
		Pluck("role", &roles).Error
	return roles, err
}

func (r *membershipRepo) Exists(ctx context.Context, userID, clubID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserClub{}).
		Where("user_id = ? AND club_id = ?", userID, clubID).
		Count(&count).Error
	return count > 0, err
}

func (r *membershipRepo) ClubIDsForUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Table("user_club uc").
		Joins("JOIN club c ON c.id = uc.club_id").
		Where("uc.user_id = ? AND c.is_active = true", userID).
		Order("c.name ASC").
		Pluck("c.id", &ids).Error
	return ids, err
}

func (r *membershipRepo) ClubsForUser(ctx context.Context, userID uint) ([]model.Club, error) {
	var clubs []model.Club
	err := r.db.WithContext(ctx).
		Table("club c").
		Select("c.*").
		Joins("JOIN user_club uc ON uc.club_id = c.id").
		Where("uc.user_id = ? AND c.is_active = true", userID).
		Order("c.name ASC").
		Scan(&clubs).Error
	return clubs, err
}

func (r *membershipRepo) ListForUser(ctx context.Context, userID uint) ([]model.UserClub, error) {
	var rows []model.UserClub
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}

func (r *membershipRepo) MembersOf(ctx context.Context, clubID uint, roles ...string) ([]Member, error) {
	q := r.db.WithContext(ctx).
		Table("user_club m").
		Select(`m.id AS membership_id, m.user_id, m.club_id, m.role,
		        u.username, u.full_name`).
		Joins(`JOIN "user" u ON u.id = m.user_id`).
		Where("m.club_id = ?", clubID)
	if len(roles) > 0 {
		q = q.Where("m.role IN ?", roles)
	}
	var members []Member
	err := q.Order("COALESCE(NULLIF(u.full_name,''), u.username) ASC").Scan(&members).Error
	return members, err
}

func (r *membershipRepo) MemberIDs(ctx context.Context, clubID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.UserClub{}).
		Where("club_id = ?", clubID).
		Pluck("user_id", &ids).Error
	return ids, err
}
