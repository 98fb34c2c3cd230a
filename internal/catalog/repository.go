package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/solsticegems/solstice-backend/pkg/db/models"
	"github.com/solsticegems/solstice-backend/pkg/enums"
	"github.com/solsticegems/solstice-backend/pkg/pagination"
)

// ListFilters is the repository-level filter set. Sets become SQL IN
// clauses, ranges become BETWEEN, all scoped to one category.
type ListFilters struct {
	Category   enums.ProductCategory
	Shapes     []string
	Colors     []string
	Clarities  []string
	Cuts       []string
	StoneTypes []string
	Styles     []string
	Metals     []string

	CaratMin *float64
	CaratMax *float64
	PriceMin *int
	PriceMax *int

	OnlyAvailable bool
}

// sortColumns whitelists every accepted sort key. Anything else falls back
// to the price-ascending default.
var sortColumns = map[string]string{
	enums.SortPriceAsc.String():  "price_cents ASC",
	enums.SortPriceDesc.String(): "price_cents DESC",
	enums.SortCaratAsc.String():  "carat_weight ASC NULLS LAST",
	enums.SortCaratDesc.String(): "carat_weight DESC NULLS LAST",
	enums.SortNewest.String():    "created_at DESC",
}

// Repository reads catalog rows for the storefront.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads one product with ordered images.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts applies the filters and returns one page plus the total count
// before pagination.
func (r *Repository) ListProducts(ctx context.Context, filters ListFilters, sortKey string, params pagination.Params) ([]models.Product, int64, error) {
	qb := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("category = ?", filters.Category)

	if filters.OnlyAvailable {
		qb = qb.Where("is_available = ?", true)
	}
	qb = applyInFilter(qb, "shape", filters.Shapes)
	qb = applyInFilter(qb, "color", filters.Colors)
	qb = applyInFilter(qb, "clarity", filters.Clarities)
	qb = applyInFilter(qb, "cut", filters.Cuts)
	qb = applyInFilter(qb, "stone_type", filters.StoneTypes)
	qb = applyInFilter(qb, "style", filters.Styles)
	qb = applyInFilter(qb, "metal", filters.Metals)

	if filters.CaratMin != nil && filters.CaratMax != nil {
		qb = qb.Where("carat_weight BETWEEN ? AND ?", *filters.CaratMin, *filters.CaratMax)
	}
	if filters.PriceMin != nil && filters.PriceMax != nil {
		qb = qb.Where("price_cents BETWEEN ? AND ?", *filters.PriceMin, *filters.PriceMax)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := sortColumns[sortKey]
	if !ok {
		order = sortColumns[enums.SortPriceAsc.String()]
	}

	var rows []models.Product
	err := qb.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order(order).
		Order("id ASC"). // stable tiebreak so pages never overlap
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func applyInFilter(qb *gorm.DB, column string, values []string) *gorm.DB {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			cleaned = append(cleaned, v)
		}
	}
	if len(cleaned) == 0 {
		return qb
	}
	return qb.Where(column+" IN ?", cleaned)
}
