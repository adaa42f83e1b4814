package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/Dignition/colizeum-api/internal/apierror"
	"github.com/Dignition/colizeum-api/internal/dto"
	"github.com/Dignition/colizeum-api/internal/model"
	"github.com/Dignition/colizeum-api/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	lookupCacheTTL = 4 * time.Hour
	debtPageLimit  = 200
)

// markup is the retail markup applied over purchase price for staff charges.
var markup = decimal.NewFromFloat(1.10)

// cachedLookup is the redis payload for a resolved barcode. Role-dependent
// fields are stripped at response time, never cached.
type cachedLookup struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Cost      decimal.Decimal `json:"cost"`
}

type DebtService interface {
	// Lookup resolves a scanned barcode to a product and its staff price.
	// Cost price is exposed only to owners and superadmins.
	Lookup(ctx context.Context, user *model.User, clubID uint, barcode string) (*dto.LookupResponse, error)
	// Charge writes a normal debt operation; Defect writes a zero-price
	// write-off with a mandatory reason.
	Charge(ctx context.Context, user *model.User, clubID uint, req dto.ChargeRequest) (*dto.DebtOpResponse, error)
	Defect(ctx context.Context, user *model.User, clubID uint, req dto.ChargeRequest) (*dto.DebtOpResponse, error)
	DeleteOp(ctx context.Context, user *model.User, opID uint) error
	// Reset wipes the club's operations: the whole ledger when
	// targetUserID is zero, one member's otherwise.
	Reset(ctx context.Context, user *model.User, clubID, targetUserID uint) (int64, error)
	Index(ctx context.Context, user *model.User, clubID, filterUserID uint) (*dto.DebtIndexResponse, error)
	Search(ctx context.Context, user *model.User, clubID uint, query string) ([]dto.SearchItem, error)
}

type debtService struct {
	debts       repository.DebtRepository
	catalog     repository.CatalogRepository
	memberships repository.MembershipRepository
	users       repository.UserRepository
	acl         ACLService
	rdb         *redis.Client
}

func NewDebtService(
	debts repository.DebtRepository,
	catalog repository.CatalogRepository,
	memberships repository.MembershipRepository,
	users repository.UserRepository,
	acl ACLService,
	rdb *redis.Client,
) DebtService {
	return &debtService{
		debts:       debts,
		catalog:     catalog,
		memberships: memberships,
		users:       users,
		acl:         acl,
		rdb:         rdb,
	}
}

// ── Lookup ────────────────────────────────────────────────────────────────────

func (s *debtService) Lookup(ctx context.Context, user *model.User, clubID uint, barcode string) (*dto.LookupResponse, error) {
	if err := s.acl.RequireClub(ctx, user, clubID); err != nil {
		return nil, err
	}

	cl, err := s.resolveBarcode(ctx, clubID, barcode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &dto.LookupResponse{Found: false}, nil
	}
	if err != nil {
		return nil, err
	}

	product := &dto.LookupProduct{
		ID:    cl.ProductID,
		Name:  cl.Name,
		Price: staffPrice(cl.Cost),
	}
	if s.canSeeCost(ctx, user, clubID) {
		cost := cl.Cost
		product.CostPrice = &cost
	}
	return &dto.LookupResponse{Found: true, Product: product}, nil
}

// resolveBarcode answers from redis when possible, falling back to the DB
// and repopulating the cache best effort.
func (s *debtService) resolveBarcode(ctx context.Context, clubID uint, barcode string) (*cachedLookup, error) {
	cacheKey := "debt:lookup:" + strconv.FormatUint(uint64(clubID), 10) + ":" + barcode
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var cl cachedLookup
			if jsonErr := json.Unmarshal(cached, &cl); jsonErr == nil {
				return &cl, nil
			}
		}
	}

	mapping, err := s.catalog.FindClubBarcode(ctx, clubID, barcode)
	if err != nil {
		return nil, err
	}
	product, err := s.catalog.FindProduct(ctx, mapping.ProductID)
	if err != nil {
		return nil, err
	}

	cost := mapping.PurchasePrice
	if cost.IsZero() {
		cost = product.PurchasePrice
	}
	cl := &cachedLookup{ProductID: product.ID, Name: product.Name, Cost: cost}

	if s.rdb != nil {
		if b, jsonErr := json.Marshal(cl); jsonErr == nil {
			_ = s.rdb.Set(context.Background(), cacheKey, b, lookupCacheTTL).Err()
		}
	}
	return cl, nil
}

// ── Charge / Defect ───────────────────────────────────────────────────────────

func (s *debtService) Charge(ctx context.Context, user *model.User, clubID uint, req dto.ChargeRequest) (*dto.DebtOpResponse, error) {
	return s.writeOp(ctx, user, clubID, req, model.DebtKindNormal)
}

func (s *debtService) Defect(ctx context.Context, user *model.User, clubID uint, req dto.ChargeRequest) (*dto.DebtOpResponse, error) {
	if req.Reason == "" {
		return nil, apierror.Coded("no_reason", "укажите причину списания")
	}
	return s.writeOp(ctx, user, clubID, req, model.DebtKindDefect)
}

func (s *debtService) writeOp(ctx context.Context, user *model.User, clubID uint, req dto.ChargeRequest, kind string) (*dto.DebtOpResponse, error) {
	if err := s.acl.RequireClub(ctx, user, clubID); err != nil {
		return nil, err
	}

	targetID, err := s.resolveTarget(ctx, user, clubID, req.UserID)
	if err != nil {
		return nil, err
	}

	qty := req.Qty
	if qty <= 0 {
		qty = 1
	}

	var productID uint
	var cost decimal.Decimal
	switch {
	case req.Barcode != "":
		cl, err := s.resolveBarcode(ctx, clubID, req.Barcode)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Coded("no_product", "товар не найден")
		}
		if err != nil {
			return nil, err
		}
		productID, cost = cl.ProductID, cl.Cost
	case req.ProductID != 0:
		product, err := s.catalog.FindProduct(ctx, req.ProductID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Coded("no_product", "товар не найден")
		}
		if err != nil {
			return nil, err
		}
		cost = product.PurchasePrice
		if mapping, err := s.catalog.FindClubMapping(ctx, clubID, product.ID); err == nil && !mapping.PurchasePrice.IsZero() {
			cost = mapping.PurchasePrice
		}
		productID = product.ID
	default:
		return nil, apierror.Coded("no_product", "товар не найден")
	}

	price := decimal.Zero
	if kind == model.DebtKindNormal {
		price = staffPrice(cost)
	}

	op := &model.DebtTransaction{
		ClubID:    clubID,
		UserID:    targetID,
		ProductID: productID,
		Qty:       qty,
		CostPrice: cost,
		Price:     price,
		Kind:      kind,
		Reason:    req.Reason,
	}
	if err := s.debts.Create(ctx, op); err != nil {
		return nil, err
	}

	saved, err := s.debts.FindByID(ctx, op.ID)
	if err != nil {
		return nil, err
	}
	return toDebtOp(saved), nil
}

// resolveTarget decides who the charge lands on. Owners and superadmins
// pick any club member and must name one; everyone else charges themselves.
func (s *debtService) resolveTarget(ctx context.Context, user *model.User, clubID, requested uint) (uint, error) {
	if !s.canChooseUser(ctx, user, clubID) {
		return user.ID, nil
	}
	if requested == 0 {
		return 0, apierror.Coded("bad_user", "выберите сотрудника")
	}
	if requested == user.ID {
		return user.ID, nil
	}
	ok, err := s.memberships.Exists(ctx, requested, clubID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, apierror.Coded("bad_user", "сотрудник не состоит в клубе")
	}
	return requested, nil
}

// ── DeleteOp / Reset ──────────────────────────────────────────────────────────

func (s *debtService) DeleteOp(ctx context.Context, user *model.User, opID uint) error {
	op, err := s.debts.FindByID(ctx, opID)
	if err != nil {
		return errors.New("операция не найдена")
	}
	can, err := s.acl.CanDeleteDebtOps(ctx, user, op.ClubID)
	if err != nil {
		return err
	}
	if !can {
		return apierror.Forbidden("нет прав на удаление операций")
	}
	return s.debts.Delete(ctx, op.ID)
}

func (s *debtService) Reset(ctx context.Context, user *model.User, clubID, targetUserID uint) (int64, error) {
	can, err := s.acl.CanDeleteDebtOps(ctx, user, clubID)
	if err != nil {
		return 0, err
	}
	if !can {
		return 0, apierror.Forbidden("нет прав на удаление операций")
	}
	if targetUserID == 0 {
		return s.debts.DeleteForClub(ctx, clubID)
	}
	return s.debts.DeleteForUser(ctx, clubID, targetUserID)
}

// ── Index / Search ────────────────────────────────────────────────────────────

func (s *debtService) Index(ctx context.Context, user *model.User, clubID, filterUserID uint) (*dto.DebtIndexResponse, error) {
	if err := s.acl.RequireClub(ctx, user, clubID); err != nil {
		return nil, err
	}

	chooser := s.canChooseUser(ctx, user, clubID)
	if !chooser {
		// Plain members only ever see their own ledger.
		filterUserID = user.ID
	}

	normal, err := s.debts.ListByClub(ctx, clubID, model.DebtKindNormal, filterUserID, debtPageLimit)
	if err != nil {
		return nil, err
	}
	defects, err := s.debts.ListByClub(ctx, clubID, model.DebtKindDefect, filterUserID, debtPageLimit)
	if err != nil {
		return nil, err
	}

	resp := &dto.DebtIndexResponse{
		Items:         make([]dto.DebtOpResponse, 0, len(normal)),
		Defects:       make([]dto.DebtOpResponse, 0, len(defects)),
		CanChooseUser: chooser,
	}
	for i := range normal {
		resp.Items = append(resp.Items, *toDebtOp(&normal[i]))
	}
	for i := range defects {
		resp.Defects = append(resp.Defects, *toDebtOp(&defects[i]))
	}

	resp.CanDelete, err = s.acl.CanDeleteDebtOps(ctx, user, clubID)
	if err != nil {
		return nil, err
	}

	sums, err := s.debts.SumsByUser(ctx, clubID, model.DebtKindNormal)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(sums))
	for _, sum := range sums {
		ids = append(ids, sum.UserID)
	}
	names := make(map[uint]string, len(ids))
	if len(ids) > 0 {
		users, err := s.users.ListByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			names[u.ID] = displayName(u.Username, u.FullName)
		}
	}
	for _, sum := range sums {
		if !chooser && sum.UserID != user.ID {
			continue
		}
		resp.Sums = append(resp.Sums, dto.DebtSummary{
			UserID: sum.UserID,
			Name:   names[sum.UserID],
			Total:  sum.Total,
		})
	}

	if chooser {
		members, err := s.memberships.MembersOf(ctx, clubID)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			resp.Members = append(resp.Members, dto.ClubMember{
				ID:   m.UserID,
				Name: displayName(m.Username, m.FullName),
				Role: m.Role,
			})
		}
	}
	return resp, nil
}

func (s *debtService) Search(ctx context.Context, user *model.User, clubID uint, query string) ([]dto.SearchItem, error) {
	if err := s.acl.RequireClub(ctx, user, clubID); err != nil {
		return nil, err
	}
	rows, err := s.catalog.Search(ctx, clubID, query, 20)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SearchItem, len(rows))
	for i, r := range rows {
		items[i] = dto.SearchItem{
			ID:            r.ID,
			Name:          r.Name,
			PurchasePrice: r.PurchasePrice,
			Barcodes:      r.Barcodes,
		}
	}
	return items, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// canChooseUser limits charge targeting and the full ledger view to
// superadmins and club owners.
func (s *debtService) canChooseUser(ctx context.Context, user *model.User, clubID uint) bool {
	if user.Role == model.RoleSuperadmin {
		return true
	}
	role, err := s.memberships.RoleIn(ctx, user.ID, clubID)
	if err != nil {
		return false
	}
	return role == model.MembershipRoleOwner
}

func (s *debtService) canSeeCost(ctx context.Context, user *model.User, clubID uint) bool {
	if user.Role == model.RoleSuperadmin {
		return true
	}
	role, err := s.memberships.RoleIn(ctx, user.ID, clubID)
	if err != nil {
		return false
	}
	return role == model.MembershipRoleOwner
}

// staffPrice applies the staff markup over the purchase cost.
func staffPrice(cost decimal.Decimal) decimal.Decimal {
	return cost.Mul(markup).Round(2)
}

func toDebtOp(op *model.DebtTransaction) *dto.DebtOpResponse {
	resp := &dto.DebtOpResponse{
		ID:        op.ID,
		UserID:    op.UserID,
		ProductID: op.ProductID,
		Qty:       op.Qty,
		CostPrice: op.CostPrice,
		Price:     op.Price,
		Kind:      op.Kind,
		Reason:    op.Reason,
		CreatedAt: op.CreatedAt.Format(time.RFC3339),
	}
	if op.User != nil {
		resp.UserName = displayName(op.User.Username, op.User.FullName)
	}
	if op.Product != nil {
		resp.ProductName = op.Product.Name
	}
	return resp
}

func displayName(username, fullName string) string {
	if fullName != "" {
		return fullName
	}
	return username
}

