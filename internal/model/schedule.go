package model

import "time"

// Shift is one scheduled work period. An overnight shift is a single row
// whose EndTS falls on the next calendar day.
type Shift struct {
	ID          uint      `gorm:"primaryKey"`
	ClubID      uint      `gorm:"index;not null"`
	UserID      uint      `gorm:"index;not null"`
	StartTS     time.Time `gorm:"not null"`
	EndTS       time.Time `gorm:"not null"`
	RoleAtShift string    `gorm:"size:32;default:'cashier'"`
}

func (Shift) TableName() string { return "shift" }
