package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/solsticegems/solstice-backend/pkg/enums"
)

// Product is the canonical catalog row. One table backs every category;
// stone-specific columns (shape, clarity, cut, carat) and jewelry-specific
// columns (style, metal) are nullable and populated per category.
type Product struct {
	ID             uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Category       enums.ProductCategory `gorm:"column:category;type:product_category;not null;index:products_category_idx"`
	SKU            string                `gorm:"column:sku;not null;uniqueIndex:products_sku_key"`
	Title          string                `gorm:"column:title;not null"`
	Subtitle       *string               `gorm:"column:subtitle"`
	Description    *string               `gorm:"column:description"`
	Shape          *enums.DiamondShape   `gorm:"column:shape"`
	Color          *string               `gorm:"column:color"`
	Clarity        *enums.DiamondClarity `gorm:"column:clarity"`
	Cut            *enums.DiamondCut     `gorm:"column:cut"`
	StoneType      *enums.GemstoneType   `gorm:"column:stone_type"`
	Style          *enums.Style          `gorm:"column:style"`
	Metal          *enums.Metal          `gorm:"column:metal"`
	CaratWeight    *decimal.Decimal      `gorm:"column:carat_weight;type:numeric(6,2)"`
	PriceCents     int                   `gorm:"column:price_cents;not null"`
	SalePriceCents *int                  `gorm:"column:sale_price_cents"`
	IsAvailable    bool                  `gorm:"column:is_available;not null;default:true"`
	IsFeatured     bool                  `gorm:"column:is_featured;not null;default:false"`
	Tags           pq.StringArray        `gorm:"column:tags;type:text[];not null;default:ARRAY[]::text[]"`
	Images         []ProductImage        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
