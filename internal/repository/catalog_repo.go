package repository

import (
	"context"

	"github.com/Dignition/colizeum-api/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogSearchRow is one product hit of the club-scoped search, barcodes
// comma-joined.
type CatalogSearchRow struct {
	ID            uint
	Name          string
	PurchasePrice decimal.Decimal
	Barcodes      string
}

type CatalogRepository interface {
	CreateProduct(ctx context.Context, p *model.Product) error
	FindProduct(ctx context.Context, id uint) (*model.Product, error)
	FindProductByName(ctx context.Context, name string) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, p *model.Product) error

	// FindClubBarcode resolves a scanned barcode within one club.
	FindClubBarcode(ctx context.Context, clubID uint, barcode string) (*model.ClubProductBarcode, error)
	// FindClubMapping returns any barcode mapping of a product within a club
	// (used for the purchase-price override when the charge came by id).
	FindClubMapping(ctx context.Context, clubID, productID uint) (*model.ClubProductBarcode, error)
	UpsertClubBarcode(ctx context.Context, m *model.ClubProductBarcode) error
	DeleteClubBarcode(ctx context.Context, id uint) error
	ListClubBarcodes(ctx context.Context, productID uint) ([]model.ClubProductBarcode, error)

	// PurchasePriceMap resolves every product's purchase price for a club:
	// the club barcode override when set, else the global product price.
	PurchasePriceMap(ctx context.Context, clubID uint) (map[uint]decimal.Decimal, error)
	Search(ctx context.Context, clubID uint, query string, limit int) ([]CatalogSearchRow, error)
}

type catalogRepo struct{ db *gorm.DB }

func NewCatalogRepository(db *gorm.DB) CatalogRepository { return &catalogRepo{db: db} }

func (r *catalogRepo) CreateProduct(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *catalogRepo) FindProduct(ctx context.Context, id uint) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *catalogRepo) FindProductByName(ctx context.Context, name string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&p).Error
	return &p, err
}

func (r *catalogRepo) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *catalogRepo) UpdateProduct(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *catalogRepo) FindClubBarcode(ctx context.Context, clubID uint, barcode string) (*model.ClubProductBarcode, error) {
	var m model.ClubProductBarcode
	err := r.db.WithContext(ctx).
		Where("club_id = ? AND barcode = ?", clubID, barcode).
		First(&m).Error
	return &m, err
}

func (r *catalogRepo) FindClubMapping(ctx context.Context, clubID, productID uint) (*model.ClubProductBarcode, error) {
	var m model.ClubProductBarcode
	err := r.db.WithContext(ctx).
		Where("club_id = ? AND product_id = ?", clubID, productID).
		First(&m).Error
	return &m, err
}

func (r *catalogRepo) UpsertClubBarcode(ctx context.Context, m *model.ClubProductBarcode) error {
	existing := &model.ClubProductBarcode{}
	err := r.db.WithContext(ctx).
		Where("club_id = ? AND barcode = ?", m.ClubID, m.Barcode).
		First(existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(m).Error
	}
	if err != nil {
		return err
	}
	existing.ProductID = m.ProductID
	existing.PurchasePrice = m.PurchasePrice
	return r.db.WithContext(ctx).Save(existing).Error
}

func (r *catalogRepo) DeleteClubBarcode(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.ClubProductBarcode{}, id).Error
}

func (r *catalogRepo) ListClubBarcodes(ctx context.Context, productID uint) ([]model.ClubProductBarcode, error) {
	var rows []model.ClubProductBarcode
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Find(&rows).Error
	return rows, err
}

func (r *catalogRepo) PurchasePriceMap(ctx context.Context, clubID uint) (map[uint]decimal.Decimal, error) {
	type row struct {
		ID uint
		PP decimal.Decimal
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("product p").
		Select(`p.id, COALESCE(MAX(cb.purchase_price), COALESCE(p.purchase_price, 0)) AS pp`).
		Joins("LEFT JOIN club_product_barcode cb ON cb.product_id = p.id AND cb.club_id = ?", clubID).
		Group("p.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]decimal.Decimal, len(rows))
	for _, r := range rows {
		out[r.ID] = r.PP
	}
	return out, nil
}

func (r *catalogRepo) Search(ctx context.Context, clubID uint, query string, limit int) ([]CatalogSearchRow, error) {
	like := "%" + query + "%"
	var rows []CatalogSearchRow
	err := r.db.WithContext(ctx).
		Table("club_product_barcode cb").
		Select(`p.id, p.name,
		        COALESCE(MAX(cb.purchase_price), COALESCE(p.purchase_price, 0)) AS purchase_price,
		        STRING_AGG(cb.barcode, ', ') AS barcodes`).
		Joins("JOIN product p ON p.id = cb.product_id").
		Where("cb.club_id = ? AND (p.name ILIKE ? OR cb.barcode LIKE ?)", clubID, like, like).
		Group("p.id, p.name").
		Order("p.name ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
