package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Dignition/colizeum-api/internal/apierror"
	"github.com/Dignition/colizeum-api/internal/dto"
	"github.com/Dignition/colizeum-api/internal/model"
	"github.com/Dignition/colizeum-api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

type InventoryService interface {
	// View renders the open counting session: per-product rows, the running
	// shortage value and its split across the club's management.
	View(ctx context.Context, user *model.User, clubID uint) (*dto.InventoryViewResponse, error)
	// Import loads expected quantities from an accounting export (xlsx or
	// csv), opening a session when none is active.
	Import(ctx context.Context, user *model.User, clubID uint, filename string, data []byte) (*dto.ImportResponse, error)
	SaveCounts(ctx context.Context, user *model.User, clubID uint, req dto.SaveCountsRequest) (*dto.SaveCountsResponse, error)
	// ResetSession drops every count row of the open session so the
	// counting can start over from a fresh import.
	ResetSession(ctx context.Context, user *model.User, clubID uint) error
	// CloseSession snapshots counted quantities into stock and closes the
	// session.
	CloseSession(ctx context.Context, user *model.User, clubID uint) error
}

type inventoryService struct {
	inventory   repository.InventoryRepository
	catalog     repository.CatalogRepository
	debts       repository.DebtRepository
	shifts      repository.ShiftRepository
	memberships repository.MembershipRepository
	users       repository.UserRepository
	acl         ACLService
	db          *gorm.DB
	instanceDir string
}

func NewInventoryService(
	inventory repository.InventoryRepository,
	catalog repository.CatalogRepository,
	debts repository.DebtRepository,
	shifts repository.ShiftRepository,
	memberships repository.MembershipRepository,
	users repository.UserRepository,
	acl ACLService,
	db *gorm.DB,
	instanceDir string,
) InventoryService {
	return &inventoryService{
		inventory:   inventory,
		catalog:     catalog,
		debts:       debts,
		shifts:      shifts,
		memberships: memberships,
		users:       users,
		acl:         acl,
		db:          db,
		instanceDir: instanceDir,
	}
}

// ── View ──────────────────────────────────────────────────────────────────────

func (s *inventoryService) View(ctx context.Context, user *model.User, clubID uint) (*dto.InventoryViewResponse, error) {
	if err := s.acl.RequireClub(ctx, user, clubID); err != nil {
		return nil, err
	}

	session, err := s.inventory.ActiveSession(ctx, clubID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &dto.InventoryViewResponse{ClubID: clubID, HasSession: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, clubID, session)
}

func (s *inventoryService) buildView(ctx context.Context, clubID uint, session *model.InventorySession) (*dto.InventoryViewResponse, error) {
	items, err := s.inventory.Items(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	debtQty, err := s.debts.QtyByProduct(ctx, clubID)
	if err != nil {
		return nil, err
	}
	prices, err := s.catalog.PurchasePriceMap(ctx, clubID)
	if err != nil {
		return nil, err
	}

	resp := &dto.InventoryViewResponse{
		ClubID:     clubID,
		HasSession: true,
		Items:      make([]dto.InventoryItem, 0, len(items)),
	}

	// Shortage is signed per product: what debt operations already charged
	// does not count as missing, and surpluses offset shortages.
	shortage := decimal.Zero
	for _, item := range items {
		price := prices[item.ProductID]
		resp.Items = append(resp.Items, dto.InventoryItem{
			ProductID:   item.ProductID,
			Name:        item.Name,
			ExpectedQty: item.ExpectedQty,
			CountedQty:  item.CountedQty,
			DebtQty:     debtQty[item.ProductID],
			Price:       price,
		})
		units := item.ExpectedQty - item.CountedQty - debtQty[item.ProductID]
		shortage = shortage.Add(price.Mul(decimal.NewFromInt(int64(units))))
	}
	resp.ShortageValue = shortage.Round(2)

	stats, err := s.allocate(ctx, clubID, session.StartedAt, resp.ShortageValue)
	if err != nil {
		return nil, err
	}
	resp.AdminStats = stats
	return resp, nil
}

// allocate splits the shortage value across the club's management in
// proportion to their shifts worked in the session's month. Informational
// only, nothing is charged automatically.
func (s *inventoryService) allocate(ctx context.Context, clubID uint, at time.Time, value decimal.Decimal) ([]dto.AdminStat, error) {
	from := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, at.Location())
	to := from.AddDate(0, 1, 0)
	daysInMonth := to.AddDate(0, 0, -1).Day()
	totalSlots := daysInMonth * 2 // a day and a night shift per calendar day

	counts, err := s.shifts.CountsByUserMonth(ctx, clubID, from, to)
	if err != nil {
		return nil, err
	}

	managers, err := s.memberships.MembersOf(ctx, clubID, model.MembershipRoleOwner, model.MembershipRoleClubAdmin)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		userID uint
		name   string
	}
	seen := make(map[uint]bool, len(managers))
	candidates := make([]candidate, 0, len(managers))
	for _, m := range managers {
		seen[m.UserID] = true
		candidates = append(candidates, candidate{userID: m.UserID, name: displayName(m.Username, m.FullName)})
	}

	// Superadmins are not club members but still take a share when they
	// actually worked shifts there this month.
	superCounts, err := s.shifts.SuperadminShiftCounts(ctx, clubID, from, to)
	if err != nil {
		return nil, err
	}
	if len(superCounts) > 0 {
		ids := make([]uint, 0, len(superCounts))
		for id := range superCounts {
			if !seen[id] {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			supers, err := s.users.ListByIDs(ctx, ids)
			if err != nil {
				return nil, err
			}
			for _, u := range supers {
				candidates = append(candidates, candidate{userID: u.ID, name: displayName(u.Username, u.FullName)})
			}
		}
	}

	stats := make([]dto.AdminStat, 0, len(candidates))
	for _, c := range candidates {
		shifts := counts[c.userID]
		if shifts == 0 {
			shifts = superCounts[c.userID]
		}
		// Members with no shifts stay in the stats with a zero share.
		share := float64(shifts) / float64(totalSlots)
		stats = append(stats, dto.AdminStat{
			UserID:    c.userID,
			Name:      c.name,
			Shifts:    shifts,
			Share:     share,
			Allocated: value.Mul(decimal.NewFromFloat(share)).Round(2),
		})
	}
	return stats, nil
}

// ── Import ────────────────────────────────────────────────────────────────────

func (s *inventoryService) Import(ctx context.Context, user *model.User, clubID uint, filename string, data []byte) (*dto.ImportResponse, error) {
	if err := s.requireManager(ctx, user, clubID); err != nil {
		return nil, err
	}

	rows, err := parseImportFile(filename, data)
	if err != nil {
		return nil, err
	}

	session, err := s.inventory.ActiveSession(ctx, clubID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		session = &model.InventorySession{ClubID: clubID, StartedAt: time.Now()}
		if err := s.inventory.CreateSession(ctx, session); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	resp := &dto.ImportResponse{}
	for _, row := range rows {
		product, err := s.catalog.FindProductByName(ctx, row.Name)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unknown names with zero stock are noise in the export,
			// only positive leftovers are worth flagging.
			if row.Expected > 0 {
				resp.Errors = append(resp.Errors, fmt.Sprintf("товар «%s» не найден в каталоге", row.Name))
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		if err := s.inventory.UpsertExpected(ctx, session.ID, product.ID, row.Expected); err != nil {
			return nil, err
		}
		resp.Imported++
	}

	s.archiveUpload(clubID, filename, data)

	view, err := s.buildView(ctx, clubID, session)
	if err != nil {
		return nil, err
	}
	resp.View = *view
	return resp, nil
}

// archiveUpload keeps the raw file for audit. Best effort: a full disk must
// not fail the import itself.
func (s *inventoryService) archiveUpload(clubID uint, filename string, data []byte) {
	if s.instanceDir == "" {
		return
	}
	dir := filepath.Join(s.instanceDir, "imports", fmt.Sprintf("club_%d", clubID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	name := time.Now().Format("20060102_150405") + "_" + filepath.Base(filename)
	_ = os.WriteFile(filepath.Join(dir, name), data, 0o644)
}

// ── SaveCounts ────────────────────────────────────────────────────────────────

func (s *inventoryService) SaveCounts(ctx context.Context, user *model.User, clubID uint, req dto.SaveCountsRequest) (*dto.SaveCountsResponse, error) {
	if err := s.acl.RequireClub(ctx, user, clubID); err != nil {
		return nil, err
	}
	session, err := s.inventory.ActiveSession(ctx, clubID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.New("нет открытой инвентаризации")
	}
	if err != nil {
		return nil, err
	}

	resp := &dto.SaveCountsResponse{}
	err = runTx(ctx, s.db, func(*gorm.DB) error {
		for _, row := range req.Rows {
			counted := max(row.Fridge, 0) + max(row.Store, 0)
			if err := s.inventory.UpsertCounted(ctx, session.ID, row.ProductID, counted); err != nil {
				return err
			}
			resp.Saved++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *inventoryService) ResetSession(ctx context.Context, user *model.User, clubID uint) error {
	if err := s.requireManager(ctx, user, clubID); err != nil {
		return err
	}
	session, err := s.inventory.ActiveSession(ctx, clubID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.New("нет открытой инвентаризации")
	}
	if err != nil {
		return err
	}
	return runTx(ctx, s.db, func(*gorm.DB) error {
		return s.inventory.ClearCounts(ctx, session.ID)
	})
}

// ── CloseSession ──────────────────────────────────────────────────────────────

func (s *inventoryService) CloseSession(ctx context.Context, user *model.User, clubID uint) error {
	if err := s.requireManager(ctx, user, clubID); err != nil {
		return err
	}
	session, err := s.inventory.ActiveSession(ctx, clubID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.New("нет открытой инвентаризации")
	}
	if err != nil {
		return err
	}

	items, err := s.inventory.Items(ctx, session.ID)
	if err != nil {
		return err
	}

	return runTx(ctx, s.db, func(*gorm.DB) error {
		for _, item := range items {
			prev := 0
			if stock, err := s.inventory.GetStock(ctx, clubID, item.ProductID); err == nil {
				prev = stock.Qty
			}
			if delta := item.CountedQty - prev; delta != 0 {
				move := &model.StockMove{
					ClubID:    clubID,
					ProductID: item.ProductID,
					QtyDelta:  delta,
					Reason:    "adjust",
				}
				if err := s.inventory.CreateStockMove(ctx, move); err != nil {
					return err
				}
			}
			if err := s.inventory.UpsertStock(ctx, clubID, item.ProductID, item.CountedQty); err != nil {
				return err
			}
		}
		return s.inventory.CloseSession(ctx, session.ID, time.Now())
	})
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *inventoryService) requireManager(ctx context.Context, user *model.User, clubID uint) error {
	if err := s.acl.RequireClub(ctx, user, clubID); err != nil {
		return err
	}
	if user.Role == model.RoleSuperadmin {
		return nil
	}
	role, err := s.memberships.RoleIn(ctx, user.ID, clubID)
	if err != nil {
		return err
	}
	if role != model.MembershipRoleOwner && role != model.MembershipRoleClubAdmin {
		return apierror.Forbidden("недостаточно прав")
	}
	return nil
}
