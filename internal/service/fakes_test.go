package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Dignition/colizeum-api/internal/model"
	"github.com/Dignition/colizeum-api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository fakes shared by the service tests.

// ── Users ─────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (r *fakeUserRepo) add(u model.User) *model.User {
	if u.ID == 0 {
		u.ID = r.nextID
	}
	if u.ID >= r.nextID {
		r.nextID = u.ID + 1
	}
	r.users[u.ID] = &u
	return r.users[u.ID]
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	u.ID = r.nextID
	r.nextID++
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ListAll(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) ListByIDs(_ context.Context, ids []uint) ([]model.User, error) {
	var out []model.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

// ── Clubs ─────────────────────────────────────────────────────────────────────

type fakeClubRepo struct {
	clubs  map[uint]*model.Club
	nextID uint
}

func newFakeClubRepo() *fakeClubRepo {
	return &fakeClubRepo{clubs: make(map[uint]*model.Club), nextID: 1}
}

func (r *fakeClubRepo) add(c model.Club) *model.Club {
	if c.ID == 0 {
		c.ID = r.nextID
	}
	if c.ID >= r.nextID {
		r.nextID = c.ID + 1
	}
	r.clubs[c.ID] = &c
	return r.clubs[c.ID]
}

func (r *fakeClubRepo) Create(_ context.Context, c *model.Club) error {
	c.ID = r.nextID
	r.nextID++
	cp := *c
	r.clubs[c.ID] = &cp
	return nil
}

func (r *fakeClubRepo) FindByID(_ context.Context, id uint) (*model.Club, error) {
	c, ok := r.clubs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClubRepo) ListActive(_ context.Context) ([]model.Club, error) {
	var out []model.Club
	for _, c := range r.clubs {
		if c.IsActive {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeClubRepo) ListAll(_ context.Context) ([]model.Club, error) {
	var out []model.Club
	for _, c := range r.clubs {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeClubRepo) Update(_ context.Context, c *model.Club) error {
	cp := *c
	r.clubs[c.ID] = &cp
	return nil
}

func (r *fakeClubRepo) Delete(_ context.Context, id uint) error {
	delete(r.clubs, id)
	return nil
}

func (r *fakeClubRepo) DB() *gorm.DB { return nil }

var _ repository.ClubRepository = (*fakeClubRepo)(nil)

// ── Memberships ───────────────────────────────────────────────────────────────

type fakeMembershipRepo struct {
	rows   []model.UserClub
	users  *fakeUserRepo
	clubs  *fakeClubRepo
	nextID uint
}

func newFakeMembershipRepo(users *fakeUserRepo, clubs *fakeClubRepo) *fakeMembershipRepo {
	return &fakeMembershipRepo{users: users, clubs: clubs, nextID: 1}
}

func (r *fakeMembershipRepo) add(userID, clubID uint, role string) {
	r.rows = append(r.rows, model.UserClub{ID: r.nextID, UserID: userID, ClubID: clubID, Role: role})
	r.nextID++
}

func (r *fakeMembershipRepo) Create(_ context.Context, m *model.UserClub) error {
	m.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, *m)
	return nil
}

func (r *fakeMembershipRepo) Delete(_ context.Context, id uint) error {
	for i, row := range r.rows {
		if row.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeMembershipRepo) DeleteByClub(_ context.Context, clubID uint) error {
	var kept []model.UserClub
	for _, row := range r.rows {
		if row.ClubID != clubID {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

func (r *fakeMembershipRepo) DeleteByUser(_ context.Context, userID uint) error {
	var kept []model.UserClub
	for _, row := range r.rows {
		if row.UserID != userID {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

func (r *fakeMembershipRepo) RoleIn(_ context.Context, userID, clubID uint) (string, error) {
	for _, row := range r.rows {
		if row.UserID == userID && row.ClubID == clubID {
			return row.Role, nil
		}
	}
	return "", nil
}

func (r *fakeMembershipRepo) DistinctRoles(_ context.Context, userID uint) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, row := range r.rows {
		if row.UserID == userID && !seen[row.Role] {
			seen[row.Role] = true
			out = append(out, row.Role)
		}
	}
	return out, nil
}

func (r *fakeMembershipRepo) Exists(_ context.Context, userID, clubID uint) (bool, error) {
	for _, row := range r.rows {
		if row.UserID == userID && row.ClubID == clubID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMembershipRepo) ClubIDsForUser(_ context.Context, userID uint) ([]uint, error) {
	clubs, err := r.ClubsForUser(context.Background(), userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(clubs))
	for i, c := range clubs {
		ids[i] = c.ID
	}
	return ids, nil
}

func (r *fakeMembershipRepo) ClubsForUser(_ context.Context, userID uint) ([]model.Club, error) {
	var out []model.Club
	for _, row := range r.rows {
		if row.UserID != userID {
			continue
		}
		if c, ok := r.clubs.clubs[row.ClubID]; ok && c.IsActive {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeMembershipRepo) ListForUser(_ context.Context, userID uint) ([]model.UserClub, error) {
	var out []model.UserClub
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeMembershipRepo) MembersOf(_ context.Context, clubID uint, roles ...string) ([]repository.Member, error) {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	var out []repository.Member
	for _, row := range r.rows {
		if row.ClubID != clubID {
			continue
		}
		if len(roles) > 0 && !allowed[row.Role] {
			continue
		}
		m := repository.Member{
			MembershipID: row.ID,
			UserID:       row.UserID,
			ClubID:       row.ClubID,
			Role:         row.Role,
		}
		if u, ok := r.users.users[row.UserID]; ok {
			m.Username = u.Username
			m.FullName = u.FullName
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		ni := out[i].FullName
		if ni == "" {
			ni = out[i].Username
		}
		nj := out[j].FullName
		if nj == "" {
			nj = out[j].Username
		}
		return ni < nj
	})
	return out, nil
}

func (r *fakeMembershipRepo) MemberIDs(_ context.Context, clubID uint) ([]uint, error) {
	var out []uint
	for _, row := range r.rows {
		if row.ClubID == clubID {
			out = append(out, row.UserID)
		}
	}
	return out, nil
}

var _ repository.MembershipRepository = (*fakeMembershipRepo)(nil)

// ── Reports ───────────────────────────────────────────────────────────────────

type fakeReportRepo struct {
	reports map[uint]*model.CashierReport
	nextID  uint
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uint]*model.CashierReport), nextID: 1}
}

func (r *fakeReportRepo) Create(_ context.Context, rep *model.CashierReport) error {
	rep.ID = r.nextID
	r.nextID++
	rep.CreatedAt = time.Now()
	cp := *rep
	r.reports[rep.ID] = &cp
	return nil
}

func (r *fakeReportRepo) FindByID(_ context.Context, id uint) (*model.CashierReport, error) {
	rep, ok := r.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rep
	return &cp, nil
}

func (r *fakeReportRepo) FindByKey(_ context.Context, clubID uint, date time.Time, shiftType string) (*model.CashierReport, error) {
	for _, rep := range r.reports {
		if rep.ClubID == clubID && rep.ShiftDate.Equal(date) && rep.ShiftType == shiftType {
			cp := *rep
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeReportRepo) Update(_ context.Context, rep *model.CashierReport) error {
	cp := *rep
	r.reports[rep.ID] = &cp
	return nil
}

func (r *fakeReportRepo) ListRange(_ context.Context, clubID uint, start, end time.Time) ([]model.CashierReport, error) {
	var out []model.CashierReport
	for _, rep := range r.reports {
		if rep.ClubID == clubID && !rep.ShiftDate.Before(start) && rep.ShiftDate.Before(end) {
			out = append(out, *rep)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ShiftDate.Equal(out[j].ShiftDate) {
			return out[i].ShiftDate.Before(out[j].ShiftDate)
		}
		return out[i].ShiftType < out[j].ShiftType
	})
	return out, nil
}

func (r *fakeReportRepo) SumRange(ctx context.Context, clubID uint, start, end time.Time) (*repository.MonthSums, error) {
	reports, _ := r.ListRange(ctx, clubID, start, end)
	sums := &repository.MonthSums{}
	for _, rep := range reports {
		sums.Bar = sums.Bar.Add(rep.Bar)
		sums.Cash = sums.Cash.Add(rep.Cash)
		sums.Extended = sums.Extended.Add(rep.Extended)
		sums.SbpAcq = sums.SbpAcq.Add(rep.SbpAcq)
		sums.SbpCls = sums.SbpCls.Add(rep.SbpCls)
		sums.Acquiring = sums.Acquiring.Add(rep.Acquiring)
		sums.AcquiringFee = sums.AcquiringFee.Add(rep.AcquiringFee)
		sums.RefundCash = sums.RefundCash.Add(rep.RefundCash)
		sums.RefundNoncash = sums.RefundNoncash.Add(rep.RefundNoncash)
		sums.Encashment = sums.Encashment.Add(rep.Encashment)
	}
	return sums, nil
}

func (r *fakeReportRepo) CountByClub(_ context.Context, clubID uint) (int64, error) {
	var n int64
	for _, rep := range r.reports {
		if rep.ClubID == clubID {
			n++
		}
	}
	return n, nil
}

func (r *fakeReportRepo) CountByUser(_ context.Context, userID uint) (int64, error) {
	var n int64
	for _, rep := range r.reports {
		if rep.UserID == userID {
			n++
		}
	}
	return n, nil
}

var _ repository.ReportRepository = (*fakeReportRepo)(nil)

// ── Catalog ───────────────────────────────────────────────────────────────────

type fakeCatalogRepo struct {
	products map[uint]*model.Product
	barcodes []model.ClubProductBarcode
	nextID   uint
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{products: make(map[uint]*model.Product), nextID: 1}
}

func (r *fakeCatalogRepo) addProduct(p model.Product) *model.Product {
	if p.ID == 0 {
		p.ID = r.nextID
	}
	if p.ID >= r.nextID {
		r.nextID = p.ID + 1
	}
	r.products[p.ID] = &p
	return r.products[p.ID]
}

func (r *fakeCatalogRepo) addBarcode(b model.ClubProductBarcode) {
	b.ID = r.nextID
	r.nextID++
	r.barcodes = append(r.barcodes, b)
}

func (r *fakeCatalogRepo) CreateProduct(_ context.Context, p *model.Product) error {
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeCatalogRepo) FindProduct(_ context.Context, id uint) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeCatalogRepo) FindProductByName(_ context.Context, name string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCatalogRepo) ListProducts(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCatalogRepo) UpdateProduct(_ context.Context, p *model.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeCatalogRepo) FindClubBarcode(_ context.Context, clubID uint, barcode string) (*model.ClubProductBarcode, error) {
	for _, b := range r.barcodes {
		if b.ClubID == clubID && b.Barcode == barcode {
			cp := b
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCatalogRepo) FindClubMapping(_ context.Context, clubID, productID uint) (*model.ClubProductBarcode, error) {
	for _, b := range r.barcodes {
		if b.ClubID == clubID && b.ProductID == productID {
			cp := b
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCatalogRepo) UpsertClubBarcode(_ context.Context, m *model.ClubProductBarcode) error {
	for i, b := range r.barcodes {
		if b.ClubID == m.ClubID && b.Barcode == m.Barcode {
			r.barcodes[i].ProductID = m.ProductID
			r.barcodes[i].PurchasePrice = m.PurchasePrice
			return nil
		}
	}
	m.ID = r.nextID
	r.nextID++
	r.barcodes = append(r.barcodes, *m)
	return nil
}

func (r *fakeCatalogRepo) DeleteClubBarcode(_ context.Context, id uint) error {
	for i, b := range r.barcodes {
		if b.ID == id {
			r.barcodes = append(r.barcodes[:i], r.barcodes[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeCatalogRepo) ListClubBarcodes(_ context.Context, productID uint) ([]model.ClubProductBarcode, error) {
	var out []model.ClubProductBarcode
	for _, b := range r.barcodes {
		if b.ProductID == productID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) PurchasePriceMap(_ context.Context, clubID uint) (map[uint]decimal.Decimal, error) {
	out := make(map[uint]decimal.Decimal, len(r.products))
	for id, p := range r.products {
		out[id] = p.PurchasePrice
	}
	for _, b := range r.barcodes {
		if b.ClubID == clubID && !b.PurchasePrice.IsZero() {
			out[b.ProductID] = b.PurchasePrice
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) Search(_ context.Context, clubID uint, query string, limit int) ([]repository.CatalogSearchRow, error) {
	var out []repository.CatalogSearchRow
	q := strings.ToLower(query)
	for _, b := range r.barcodes {
		if b.ClubID != clubID {
			continue
		}
		p, ok := r.products[b.ProductID]
		if !ok {
			continue
		}
		if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(b.Barcode, query) {
			continue
		}
		price := p.PurchasePrice
		if !b.PurchasePrice.IsZero() {
			price = b.PurchasePrice
		}
		out = append(out, repository.CatalogSearchRow{
			ID:            p.ID,
			Name:          p.Name,
			PurchasePrice: price,
			Barcodes:      b.Barcode,
		})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

var _ repository.CatalogRepository = (*fakeCatalogRepo)(nil)

// ── Debts ─────────────────────────────────────────────────────────────────────

type fakeDebtRepo struct {
	ops    []model.DebtTransaction
	users  *fakeUserRepo
	nextID uint
}

func newFakeDebtRepo(users *fakeUserRepo) *fakeDebtRepo {
	return &fakeDebtRepo{users: users, nextID: 1}
}

func (r *fakeDebtRepo) Create(_ context.Context, tx *model.DebtTransaction) error {
	tx.ID = r.nextID
	r.nextID++
	tx.CreatedAt = time.Now()
	r.ops = append(r.ops, *tx)
	return nil
}

func (r *fakeDebtRepo) FindByID(_ context.Context, id uint) (*model.DebtTransaction, error) {
	for _, op := range r.ops {
		if op.ID == id {
			cp := op
			if r.users != nil {
				if u, ok := r.users.users[op.UserID]; ok {
					uc := *u
					cp.User = &uc
				}
			}
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeDebtRepo) Delete(_ context.Context, id uint) error {
	for i, op := range r.ops {
		if op.ID == id {
			r.ops = append(r.ops[:i], r.ops[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeDebtRepo) DeleteForUser(_ context.Context, clubID, userID uint) (int64, error) {
	var kept []model.DebtTransaction
	var deleted int64
	for _, op := range r.ops {
		if op.ClubID == clubID && op.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, op)
	}
	r.ops = kept
	return deleted, nil
}

func (r *fakeDebtRepo) DeleteForClub(_ context.Context, clubID uint) (int64, error) {
	var kept []model.DebtTransaction
	var deleted int64
	for _, op := range r.ops {
		if op.ClubID == clubID {
			deleted++
			continue
		}
		kept = append(kept, op)
	}
	r.ops = kept
	return deleted, nil
}

func (r *fakeDebtRepo) ListByClub(_ context.Context, clubID uint, kind string, userID uint, limit int) ([]model.DebtTransaction, error) {
	var out []model.DebtTransaction
	for i := len(r.ops) - 1; i >= 0 && len(out) < limit; i-- {
		op := r.ops[i]
		if op.ClubID != clubID || op.Kind != kind {
			continue
		}
		if userID != 0 && op.UserID != userID {
			continue
		}
		out = append(out, op)
	}
	return out, nil
}

func (r *fakeDebtRepo) SumsByUser(_ context.Context, clubID uint, kind string) ([]repository.DebtSum, error) {
	byUser := make(map[uint]*repository.DebtSum)
	for _, op := range r.ops {
		if op.ClubID != clubID || op.Kind != kind {
			continue
		}
		s, ok := byUser[op.UserID]
		if !ok {
			s = &repository.DebtSum{UserID: op.UserID}
			byUser[op.UserID] = s
		}
		s.Qty += op.Qty
		s.Total = s.Total.Add(op.Price.Mul(decimal.NewFromInt(int64(op.Qty))))
	}
	var out []repository.DebtSum
	for _, s := range byUser {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *fakeDebtRepo) QtyByProduct(_ context.Context, clubID uint) (map[uint]int, error) {
	out := make(map[uint]int)
	for _, op := range r.ops {
		if op.ClubID == clubID && op.Kind == model.DebtKindNormal {
			out[op.ProductID] += op.Qty
		}
	}
	return out, nil
}

var _ repository.DebtRepository = (*fakeDebtRepo)(nil)

// ── Inventory ─────────────────────────────────────────────────────────────────

type fakeInventoryRepo struct {
	sessions map[uint]*model.InventorySession
	counts   []model.InventoryCount
	stocks   []model.Stock
	moves    []model.StockMove
	catalog  *fakeCatalogRepo
	nextID   uint
}

func newFakeInventoryRepo(catalog *fakeCatalogRepo) *fakeInventoryRepo {
	return &fakeInventoryRepo{sessions: make(map[uint]*model.InventorySession), catalog: catalog, nextID: 1}
}

func (r *fakeInventoryRepo) ActiveSession(_ context.Context, clubID uint) (*model.InventorySession, error) {
	for _, s := range r.sessions {
		if s.ClubID == clubID && s.ClosedAt == nil {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeInventoryRepo) CreateSession(_ context.Context, s *model.InventorySession) error {
	s.ID = r.nextID
	r.nextID++
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) CloseSession(_ context.Context, sessionID uint, at time.Time) error {
	if s, ok := r.sessions[sessionID]; ok {
		s.ClosedAt = &at
	}
	return nil
}

func (r *fakeInventoryRepo) UpsertExpected(_ context.Context, sessionID, productID uint, expected int) error {
	for i, c := range r.counts {
		if c.SessionID == sessionID && c.ProductID == productID {
			r.counts[i].ExpectedQty = expected
			return nil
		}
	}
	r.counts = append(r.counts, model.InventoryCount{
		ID: r.nextID, SessionID: sessionID, ProductID: productID, ExpectedQty: expected,
	})
	r.nextID++
	return nil
}

func (r *fakeInventoryRepo) UpsertCounted(_ context.Context, sessionID, productID uint, counted int) error {
	for i, c := range r.counts {
		if c.SessionID == sessionID && c.ProductID == productID {
			r.counts[i].CountedQty = counted
			return nil
		}
	}
	r.counts = append(r.counts, model.InventoryCount{
		ID: r.nextID, SessionID: sessionID, ProductID: productID, CountedQty: counted,
	})
	r.nextID++
	return nil
}

func (r *fakeInventoryRepo) ClearCounts(_ context.Context, sessionID uint) error {
	var kept []model.InventoryCount
	for _, c := range r.counts {
		if c.SessionID != sessionID {
			kept = append(kept, c)
		}
	}
	r.counts = kept
	return nil
}

func (r *fakeInventoryRepo) Items(_ context.Context, sessionID uint) ([]repository.InventoryItem, error) {
	var out []repository.InventoryItem
	for _, c := range r.counts {
		if c.SessionID != sessionID {
			continue
		}
		item := repository.InventoryItem{
			ProductID:   c.ProductID,
			ExpectedQty: c.ExpectedQty,
			CountedQty:  c.CountedQty,
		}
		if r.catalog != nil {
			if p, ok := r.catalog.products[c.ProductID]; ok {
				item.Name = p.Name
			}
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeInventoryRepo) GetStock(_ context.Context, clubID, productID uint) (*model.Stock, error) {
	for _, s := range r.stocks {
		if s.ClubID == clubID && s.ProductID == productID {
			cp := s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeInventoryRepo) UpsertStock(_ context.Context, clubID, productID uint, qty int) error {
	for i, s := range r.stocks {
		if s.ClubID == clubID && s.ProductID == productID {
			r.stocks[i].Qty = qty
			return nil
		}
	}
	r.stocks = append(r.stocks, model.Stock{ID: r.nextID, ClubID: clubID, ProductID: productID, Qty: qty})
	r.nextID++
	return nil
}

func (r *fakeInventoryRepo) CreateStockMove(_ context.Context, m *model.StockMove) error {
	m.ID = r.nextID
	r.nextID++
	m.CreatedAt = time.Now()
	r.moves = append(r.moves, *m)
	return nil
}

var _ repository.InventoryRepository = (*fakeInventoryRepo)(nil)

// ── Shifts ────────────────────────────────────────────────────────────────────

type fakeShiftRepo struct {
	shifts []model.Shift
	users  *fakeUserRepo
	nextID uint
}

func newFakeShiftRepo(users *fakeUserRepo) *fakeShiftRepo {
	return &fakeShiftRepo{users: users, nextID: 1}
}

func (r *fakeShiftRepo) Create(_ context.Context, s *model.Shift) error {
	s.ID = r.nextID
	r.nextID++
	r.shifts = append(r.shifts, *s)
	return nil
}

func (r *fakeShiftRepo) CreateBatch(ctx context.Context, shifts []model.Shift) error {
	for i := range shifts {
		if err := r.Create(ctx, &shifts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeShiftRepo) ListMonth(_ context.Context, clubID uint, from, to time.Time) ([]model.Shift, error) {
	var out []model.Shift
	for _, s := range r.shifts {
		if s.ClubID == clubID && !s.StartTS.Before(from) && s.StartTS.Before(to) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTS.Before(out[j].StartTS) })
	return out, nil
}

func (r *fakeShiftRepo) DeleteForDay(_ context.Context, clubID, userID uint, from, to time.Time) (int64, error) {
	var kept []model.Shift
	var deleted int64
	for _, s := range r.shifts {
		if s.ClubID == clubID && s.UserID == userID && !s.StartTS.Before(from) && s.StartTS.Before(to) {
			deleted++
			continue
		}
		kept = append(kept, s)
	}
	r.shifts = kept
	return deleted, nil
}

func (r *fakeShiftRepo) DeleteMonth(_ context.Context, clubID uint, from, to time.Time) error {
	var kept []model.Shift
	for _, s := range r.shifts {
		if s.ClubID == clubID && !s.StartTS.Before(from) && s.StartTS.Before(to) {
			continue
		}
		kept = append(kept, s)
	}
	r.shifts = kept
	return nil
}

func (r *fakeShiftRepo) CountsByUserMonth(ctx context.Context, clubID uint, from, to time.Time) (map[uint]int, error) {
	shifts, _ := r.ListMonth(ctx, clubID, from, to)
	out := make(map[uint]int)
	for _, s := range shifts {
		out[s.UserID]++
	}
	return out, nil
}

func (r *fakeShiftRepo) SuperadminShiftCounts(ctx context.Context, clubID uint, from, to time.Time) (map[uint]int, error) {
	counts, _ := r.CountsByUserMonth(ctx, clubID, from, to)
	out := make(map[uint]int)
	for userID, n := range counts {
		if r.users == nil {
			continue
		}
		if u, ok := r.users.users[userID]; ok && u.Role == model.RoleSuperadmin {
			out[userID] = n
		}
	}
	return out, nil
}

var _ repository.ShiftRepository = (*fakeShiftRepo)(nil)

// ── Payroll ───────────────────────────────────────────────────────────────────

type fakePayrollRepo struct {
	hours   []model.PayrollHour
	entries []model.PayrollEntry
	nextID  uint
}

func newFakePayrollRepo() *fakePayrollRepo { return &fakePayrollRepo{nextID: 1} }

func (r *fakePayrollRepo) UpsertHour(_ context.Context, h *model.PayrollHour) error {
	for i, row := range r.hours {
		if row.ClubID == h.ClubID && row.UserID == h.UserID && row.Day.Equal(h.Day) {
			r.hours[i].Hours = h.Hours
			return nil
		}
	}
	h.ID = r.nextID
	r.nextID++
	r.hours = append(r.hours, *h)
	return nil
}

func (r *fakePayrollRepo) DeleteHours(_ context.Context, clubID uint, from, to time.Time) error {
	var kept []model.PayrollHour
	for _, h := range r.hours {
		if h.ClubID == clubID && !h.Day.Before(from) && h.Day.Before(to) {
			continue
		}
		kept = append(kept, h)
	}
	r.hours = kept
	return nil
}

func (r *fakePayrollRepo) ListHours(_ context.Context, clubID uint, from, to time.Time) ([]model.PayrollHour, error) {
	var out []model.PayrollHour
	for _, h := range r.hours {
		if h.ClubID == clubID && !h.Day.Before(from) && h.Day.Before(to) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Day.Equal(out[j].Day) {
			return out[i].Day.Before(out[j].Day)
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func (r *fakePayrollRepo) UpsertEntry(_ context.Context, e *model.PayrollEntry) error {
	for i, row := range r.entries {
		if row.UserID == e.UserID && row.Month == e.Month {
			e.ID = row.ID
			r.entries[i] = *e
			return nil
		}
	}
	e.ID = r.nextID
	r.nextID++
	r.entries = append(r.entries, *e)
	return nil
}

func (r *fakePayrollRepo) FindEntry(_ context.Context, userID uint, month string) (*model.PayrollEntry, error) {
	for _, e := range r.entries {
		if e.UserID == userID && e.Month == month {
			cp := e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePayrollRepo) ListEntries(_ context.Context, month string) ([]model.PayrollEntry, error) {
	var out []model.PayrollEntry
	for _, e := range r.entries {
		if e.Month == month {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

var _ repository.PayrollRepository = (*fakePayrollRepo)(nil)
