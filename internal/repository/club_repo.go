package repository

import (
	"context"

	"github.com/Dignition/colizeum-api/internal/model"

	"gorm.io/gorm"
)

type ClubRepository interface {
	Create(ctx context.Context, c *model.Club) error
	FindByID(ctx context.Context, id uint) (*model.Club, error)
	ListActive(ctx context.Context) ([]model.Club, error)
	ListAll(ctx context.Context) ([]model.Club, error)
	Update(ctx context.Context, c *model.Club) error
	Delete(ctx context.Context, id uint) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type clubRepo struct{ db *gorm.DB }

func NewClubRepository(db *gorm.DB) ClubRepository { return &clubRepo{db: db} }

func (r *clubRepo) Create(ctx context.Context, c *model.Club) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clubRepo) FindByID(ctx context.Context, id uint) (*model.Club, error) {
	var c model.Club
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *clubRepo) ListActive(ctx context.Context) ([]model.Club, error) {
	var clubs []model.Club
	err := r.db.WithContext(ctx).Where("is_active = true").Order("name ASC").Find(&clubs).Error
	return clubs, err
}

func (r *clubRepo) ListAll(ctx context.Context) ([]model.Club, error) {
	var clubs []model.Club
	err := r.db.WithContext(ctx).Order("name ASC").Find(&clubs).Error
	return clubs, err
}

func (r *clubRepo) Update(ctx context.Context, c *model.Club) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clubRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Club{}, id).Error
}

func (r *clubRepo) DB() *gorm.DB { return r.db }
