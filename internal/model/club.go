package model

// Club is the tenant boundary for all operations. Deactivation hides the club
// from selection but keeps historical data intact.
type Club struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:120;uniqueIndex;not null"`
	Timezone string `gorm:"size:64;default:'Europe/Moscow'"`
	IsActive bool   `gorm:"not null;default:true"`
}

func (Club) TableName() string { return "club" }

// UserClub is a per-club membership row.
// Role: "owner" | "club_admin" | "staff", unique per (user, club).
// A user holding "owner" anywhere may not also hold "club_admin" anywhere;
// the exclusivity is checked at grant time only.
type UserClub struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"index:ix_user_club_user;not null"`
	ClubID uint   `gorm:"index:ix_user_club_club;not null"`
	Role   string `gorm:"size:16;not null"`
}

func (UserClub) TableName() string { return "user_club" }
