package customize

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/solsticegems/solstice-backend/internal/browse"
	"github.com/solsticegems/solstice-backend/pkg/db/models"
	"github.com/solsticegems/solstice-backend/pkg/enums"
	pkgerrors "github.com/solsticegems/solstice-backend/pkg/errors"
	"github.com/solsticegems/solstice-backend/pkg/logger"
)

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Quote is the configured-product summary returned at the end of the flow.
type Quote struct {
	Setting       QuoteLine `json:"setting"`
	Stone         QuoteLine `json:"stone"`
	Metal         string    `json:"metal"`
	Size          string    `json:"size"`
	StoneCategory string    `json:"stoneCategory"`
	TotalCents    int       `json:"totalCents"`
	Total         string    `json:"total"`
}

// QuoteLine is one half of the configured ring.
type QuoteLine struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	SKU       string `json:"sku,omitempty"`
	Price     int    `json:"price"`
}

// Service combines a chosen setting and stone into a quote.
type Service interface {
	Complete(ctx context.Context, query url.Values) (*Quote, error)
}

type service struct {
	products productLoader
	logg     *logger.Logger
}

func NewService(products productLoader, logg *logger.Logger) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{products: products, logg: logg}, nil
}

// Complete validates the flow parameters and prices the configured pair.
// Both halves must be present; a partial flow cannot be completed.
func (s *service) Complete(ctx context.Context, query url.Values) (*Quote, error) {
	if browse.DeriveStep(query) != browse.StepComplete {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "both a setting and a stone are required")
	}
	flow := browse.DecodeFlow(query)

	if !enums.Metal(flow.Metal).IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid metal")
	}
	if !enums.RingSize(flow.Size).IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid ring size")
	}

	setting, err := s.loadProduct(ctx, flow.SettingID, enums.ProductCategorySetting)
	if err != nil {
		return nil, err
	}

	stoneID, stoneCategory, _ := flow.StoneID()
	stone, err := s.loadProduct(ctx, stoneID, stoneCategory)
	if err != nil {
		return nil, err
	}

	settingPrice := effectivePrice(setting)
	stonePrice := effectivePrice(stone)
	totalCents := settingPrice + stonePrice
	total := decimal.NewFromInt(int64(totalCents)).Div(decimal.NewFromInt(100))

	return &Quote{
		Setting:       quoteLine(setting, settingPrice),
		Stone:         quoteLine(stone, stonePrice),
		Metal:         flow.Metal,
		Size:          flow.Size,
		StoneCategory: stoneCategory.String(),
		TotalCents:    totalCents,
		Total:         total.StringFixed(2),
	}, nil
}

func (s *service) loadProduct(ctx context.Context, id string, category enums.ProductCategory) (*models.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid %s id", category))
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("%s not found", category))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.Category != category {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("product is not a %s", category))
	}
	if !product.IsAvailable {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("%s is no longer available", category))
	}
	return product, nil
}

func effectivePrice(product *models.Product) int {
	if product.SalePriceCents != nil {
		return *product.SalePriceCents
	}
	return product.PriceCents
}

func quoteLine(product *models.Product, price int) QuoteLine {
	return QuoteLine{
		ProductID: product.ID.String(),
		Title:     product.Title,
		SKU:       product.SKU,
		Price:     price,
	}
}
