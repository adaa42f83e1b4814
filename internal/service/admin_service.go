package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Dignition/colizeum-api/internal/dto"
	"github.com/Dignition/colizeum-api/internal/model"
	"github.com/Dignition/colizeum-api/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// clubNamePrefix brands every club; the admin panel accepts names with or
// without it.
const clubNamePrefix = "COLIZEUM "

type AdminService interface {
	// Clubs
	CreateClub(ctx context.Context, req dto.ClubPayload) (*dto.ClubResponse, error)
	UpdateClub(ctx context.Context, id uint, req dto.ClubPayload) (*dto.ClubResponse, error)
	// DeleteClub refuses while cashier reports reference the club.
	DeleteClub(ctx context.Context, id uint) error
	ListClubs(ctx context.Context) ([]dto.ClubResponse, error)

	// Users
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.AdminUserResponse, error)
	CreateSuperadmin(ctx context.Context, req dto.CreateSuperadminRequest) (*dto.AdminUserResponse, error)
	UpdateUser(ctx context.Context, id uint, req dto.UpdateUserRequest) (*dto.AdminUserResponse, error)
	// DeleteUser refuses while the user's cashier reports exist.
	DeleteUser(ctx context.Context, id uint) error
	ListUsers(ctx context.Context) ([]dto.AdminUserResponse, error)

	// Memberships
	GrantMembership(ctx context.Context, req dto.GrantMembershipRequest) (*dto.MembershipResponse, error)
	RevokeMembership(ctx context.Context, membershipID uint) error
	ClubMembers(ctx context.Context, clubID uint) ([]dto.MembershipResponse, error)

	// Catalog
	CreateProduct(ctx context.Context, req dto.ProductPayload) (*dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, id uint, req dto.ProductPayload) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context) ([]dto.ProductResponse, error)
	SetClubBarcode(ctx context.Context, productID uint, req dto.ClubBarcodePayload) error
	DeleteClubBarcode(ctx context.Context, barcodeID uint) error
}

type adminService struct {
	clubs       repository.ClubRepository
	users       repository.UserRepository
	memberships repository.MembershipRepository
	reports     repository.ReportRepository
	catalog     repository.CatalogRepository
	db          *gorm.DB
}

func NewAdminService(
	clubs repository.ClubRepository,
	users repository.UserRepository,
	memberships repository.MembershipRepository,
	reports repository.ReportRepository,
	catalog repository.CatalogRepository,
	db *gorm.DB,
) AdminService {
	return &adminService{
		clubs:       clubs,
		users:       users,
		memberships: memberships,
		reports:     reports,
		catalog:     catalog,
		db:          db,
	}
}

// ── Clubs ─────────────────────────────────────────────────────────────────────

func (s *adminService) CreateClub(ctx context.Context, req dto.ClubPayload) (*dto.ClubResponse, error) {
	club := &model.Club{
		Name:     brandClubName(req.Name),
		Timezone: req.Timezone,
		IsActive: req.IsActive,
	}
	if club.Timezone == "" {
		club.Timezone = "Europe/Moscow"
	}
	if err := s.clubs.Create(ctx, club); err != nil {
		return nil, err
	}
	return toClubResponse(club), nil
}

func (s *adminService) UpdateClub(ctx context.Context, id uint, req dto.ClubPayload) (*dto.ClubResponse, error) {
	club, err := s.clubs.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("клуб не найден")
	}
	club.Name = brandClubName(req.Name)
	if req.Timezone != "" {
		club.Timezone = req.Timezone
	}
	club.IsActive = req.IsActive
	if err := s.clubs.Update(ctx, club); err != nil {
		return nil, err
	}
	return toClubResponse(club), nil
}

func (s *adminService) DeleteClub(ctx context.Context, id uint) error {
	count, err := s.reports.CountByClub(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("нельзя удалить клуб: по нему есть отчёты")
	}
	return runTx(ctx, s.db, func(*gorm.DB) error {
		if err := s.memberships.DeleteByClub(ctx, id); err != nil {
			return err
		}
		return s.clubs.Delete(ctx, id)
	})
}

func (s *adminService) ListClubs(ctx context.Context) ([]dto.ClubResponse, error) {
	clubs, err := s.clubs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClubResponse, len(clubs))
	for i := range clubs {
		out[i] = *toClubResponse(&clubs[i])
	}
	return out, nil
}

// ── Users ─────────────────────────────────────────────────────────────────────

func (s *adminService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.AdminUserResponse, error) {
	clubRole := req.ClubRole
	if clubRole == "" {
		clubRole = model.MembershipRoleClubAdmin
	}
	if _, err := s.clubs.FindByID(ctx, req.ClubID); err != nil {
		return nil, errors.New("клуб не найден")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         model.RoleUser,
		IsActive:     true,
	}

	err = runTx(ctx, s.db, func(*gorm.DB) error {
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
		return s.memberships.Create(ctx, &model.UserClub{
			UserID: user.ID,
			ClubID: req.ClubID,
			Role:   clubRole,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.adminUser(ctx, user)
}

func (s *adminService) CreateSuperadmin(ctx context.Context, req dto.CreateSuperadminRequest) (*dto.AdminUserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         model.RoleSuperadmin,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.adminUser(ctx, user)
}

func (s *adminService) UpdateUser(ctx context.Context, id uint, req dto.UpdateUserRequest) (*dto.AdminUserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("пользователь не найден")
	}
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.NewPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.adminUser(ctx, user)
}

func (s *adminService) DeleteUser(ctx context.Context, id uint) error {
	count, err := s.reports.CountByUser(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("нельзя удалить пользователя: за ним числятся отчёты")
	}
	return runTx(ctx, s.db, func(*gorm.DB) error {
		if err := s.memberships.DeleteByUser(ctx, id); err != nil {
			return err
		}
		return s.users.Delete(ctx, id)
	})
}

func (s *adminService) ListUsers(ctx context.Context) ([]dto.AdminUserResponse, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AdminUserResponse, 0, len(users))
	for i := range users {
		resp, err := s.adminUser(ctx, &users[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// ── Memberships ───────────────────────────────────────────────────────────────

func (s *adminService) GrantMembership(ctx context.Context, req dto.GrantMembershipRequest) (*dto.MembershipResponse, error) {
	var user *model.User
	var err error
	switch {
	case req.UserID != 0:
		user, err = s.users.FindByID(ctx, req.UserID)
	case req.Login != "":
		user, err = s.users.FindByUsername(ctx, req.Login)
	default:
		return nil, errors.New("укажите пользователя")
	}
	if err != nil {
		return nil, errors.New("пользователь не найден")
	}

	// Superadmins see every club already; attaching them would only let
	// role checks drift apart.
	if user.Role == model.RoleSuperadmin {
		return nil, errors.New("суперадмина нельзя привязать к клубу")
	}

	if _, err := s.clubs.FindByID(ctx, req.ClubID); err != nil {
		return nil, errors.New("клуб не найден")
	}

	exists, err := s.memberships.Exists(ctx, user.ID, req.ClubID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("пользователь уже состоит в этом клубе")
	}

	if err := s.checkGrantRole(ctx, user.ID, req.Role); err != nil {
		return nil, err
	}

	m := &model.UserClub{UserID: user.ID, ClubID: req.ClubID, Role: req.Role}
	if err := s.memberships.Create(ctx, m); err != nil {
		return nil, err
	}
	return &dto.MembershipResponse{
		ID:       m.ID,
		UserID:   user.ID,
		ClubID:   req.ClubID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     req.Role,
	}, nil
}

// checkGrantRole keeps owner and club_admin mutually exclusive per person:
// whatever role the user already holds anywhere fixes which of the two they
// may receive elsewhere.
func (s *adminService) checkGrantRole(ctx context.Context, userID uint, role string) error {
	if role != model.MembershipRoleOwner && role != model.MembershipRoleClubAdmin {
		return nil
	}
	held, err := s.memberships.DistinctRoles(ctx, userID)
	if err != nil {
		return err
	}
	for _, h := range held {
		if h == model.MembershipRoleOwner && role == model.MembershipRoleClubAdmin {
			return errors.New("владелец клуба не может быть администратором другого клуба")
		}
		if h == model.MembershipRoleClubAdmin && role == model.MembershipRoleOwner {
			return errors.New("администратор клуба не может быть владельцем другого клуба")
		}
	}
	return nil
}

func (s *adminService) RevokeMembership(ctx context.Context, membershipID uint) error {
	return s.memberships.Delete(ctx, membershipID)
}

func (s *adminService) ClubMembers(ctx context.Context, clubID uint) ([]dto.MembershipResponse, error) {
	members, err := s.memberships.MembersOf(ctx, clubID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MembershipResponse, len(members))
	for i, m := range members {
		out[i] = dto.MembershipResponse{
			ID:       m.MembershipID,
			UserID:   m.UserID,
			ClubID:   m.ClubID,
			Username: m.Username,
			FullName: m.FullName,
			Role:     m.Role,
		}
	}
	return out, nil
}

// ── Catalog ───────────────────────────────────────────────────────────────────

func (s *adminService) CreateProduct(ctx context.Context, req dto.ProductPayload) (*dto.ProductResponse, error) {
	p := &model.Product{
		Name:          req.Name,
		SKU:           req.SKU,
		PurchasePrice: req.PurchasePrice,
		SellPrice:     req.SellPrice,
		IsActive:      req.IsActive,
	}
	if err := s.catalog.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

func (s *adminService) UpdateProduct(ctx context.Context, id uint, req dto.ProductPayload) (*dto.ProductResponse, error) {
	p, err := s.catalog.FindProduct(ctx, id)
	if err != nil {
		return nil, errors.New("товар не найден")
	}
	p.Name = req.Name
	p.SKU = req.SKU
	p.PurchasePrice = req.PurchasePrice
	p.SellPrice = req.SellPrice
	p.IsActive = req.IsActive
	if err := s.catalog.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

func (s *adminService) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, len(products))
	for i := range products {
		out[i] = *toProductResponse(&products[i])
	}
	return out, nil
}

func (s *adminService) SetClubBarcode(ctx context.Context, productID uint, req dto.ClubBarcodePayload) error {
	if _, err := s.catalog.FindProduct(ctx, productID); err != nil {
		return errors.New("товар не найден")
	}
	return s.catalog.UpsertClubBarcode(ctx, &model.ClubProductBarcode{
		ClubID:        req.ClubID,
		ProductID:     productID,
		Barcode:       req.Barcode,
		PurchasePrice: req.PurchasePrice,
	})
}

func (s *adminService) DeleteClubBarcode(ctx context.Context, barcodeID uint) error {
	return s.catalog.DeleteClubBarcode(ctx, barcodeID)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func brandClubName(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(strings.ToUpper(name), strings.TrimSpace(clubNamePrefix)) {
		return name
	}
	return clubNamePrefix + name
}

func (s *adminService) adminUser(ctx context.Context, user *model.User) (*dto.AdminUserResponse, error) {
	resp := &dto.AdminUserResponse{
		ID:          user.ID,
		Username:    user.Username,
		FullName:    user.FullName,
		Role:        user.Role,
		Memberships: []dto.MembershipBrief{},
	}
	rows, err := s.memberships.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		club, err := s.clubs.FindByID(ctx, row.ClubID)
		if err != nil {
			continue
		}
		resp.Memberships = append(resp.Memberships, dto.MembershipBrief{
			ClubName: club.Name,
			Role:     row.Role,
		})
	}
	return resp, nil
}

func toClubResponse(c *model.Club) *dto.ClubResponse {
	return &dto.ClubResponse{ID: c.ID, Name: c.Name, Timezone: c.Timezone, IsActive: c.IsActive}
}

func toProductResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		PurchasePrice: p.PurchasePrice,
		SellPrice:     p.SellPrice,
		IsActive:      p.IsActive,
	}
}
