package model

import "time"

const (
	RoleSuperadmin = "superadmin"
	RoleOwner      = "owner"
	RoleClubAdmin  = "club_admin"
	RoleCashier    = "cashier"
	RoleUser       = "user"
)

// Per-club membership roles, stored in UserClub.
const (
	MembershipRoleOwner     = "owner"
	MembershipRoleClubAdmin = "club_admin"
	MembershipRoleStaff     = "staff"
)

// User stores system accounts. Role is the system-wide role:
// "superadmin" | "owner" | "club_admin" | "cashier" | "user".
// Per-club roles live in UserClub, not here.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string `gorm:"size:256;not null"`
	FullName     string `gorm:"size:128;default:''"`
	Role         string `gorm:"size:32;not null;default:'cashier'"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
}

func (User) TableName() string { return "user" }
