package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/solsticegems/solstice-backend/pkg/db/models"
	"github.com/solsticegems/solstice-backend/pkg/enums"
	pkgerrors "github.com/solsticegems/solstice-backend/pkg/errors"
	"github.com/solsticegems/solstice-backend/pkg/logger"
	"github.com/solsticegems/solstice-backend/pkg/pagination"
)

type productStore interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
	ReplaceImages(ctx context.Context, productID uuid.UUID, images []models.ProductImage) error
	List(ctx context.Context, query ListQuery, params pagination.Params) ([]models.Product, int64, error)
}

type mediaResolver interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.MediaAsset, error)
}

type changeNotifier interface {
	ProductChanged(ctx context.Context, action string, productID uuid.UUID, category string)
}

// Service is the back-office catalog management surface.
type Service interface {
	Create(ctx context.Context, input ProductInput) (*AdminProductDTO, error)
	Update(ctx context.Context, id string, input ProductInput) (*AdminProductDTO, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*AdminProductDTO, error)
	List(ctx context.Context, query ListQuery) (*ListResult, error)
	SetAvailability(ctx context.Context, id string, available bool) (*AdminProductDTO, error)
}

type service struct {
	repo     productStore
	media    mediaResolver
	events   changeNotifier
	imageURL func(gcsKey string) string
	logg     *logger.Logger
}

func NewService(repo productStore, media mediaResolver, events changeNotifier, imageURL func(string) string, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if media == nil {
		return nil, fmt.Errorf("media resolver required")
	}
	if events == nil {
		return nil, fmt.Errorf("change notifier required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, media: media, events: events, imageURL: imageURL, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input ProductInput) (*AdminProductDTO, error) {
	product, err := buildProduct(input)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	if len(input.MediaIDs) > 0 {
		if err := s.attachImages(ctx, created.ID, input.MediaIDs); err != nil {
			return nil, err
		}
	}

	s.events.ProductChanged(ctx, EventProductCreated, created.ID, created.Category.String())
	return s.reload(ctx, created.ID)
}

func (s *service) Update(ctx context.Context, id string, input ProductInput) (*AdminProductDTO, error) {
	productID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, mapNotFound(err, "product not found")
	}

	updated, err := buildProduct(input)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if input.IsAvailable == nil {
		updated.IsAvailable = existing.IsAvailable
	}
	if input.IsFeatured == nil {
		updated.IsFeatured = existing.IsFeatured
	}

	if _, err := s.repo.Update(ctx, updated); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	if input.MediaIDs != nil {
		if err := s.attachImages(ctx, updated.ID, input.MediaIDs); err != nil {
			return nil, err
		}
	}

	s.events.ProductChanged(ctx, EventProductUpdated, updated.ID, updated.Category.String())
	return s.reload(ctx, updated.ID)
}

func (s *service) Delete(ctx context.Context, id string) error {
	productID, err := parseID(id)
	if err != nil {
		return err
	}
	existing, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return mapNotFound(err, "product not found")
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return mapNotFound(err, "product not found")
	}
	s.events.ProductChanged(ctx, EventProductDeleted, productID, existing.Category.String())
	return nil
}

func (s *service) Get(ctx context.Context, id string) (*AdminProductDTO, error) {
	productID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, productID)
}

func (s *service) List(ctx context.Context, query ListQuery) (*ListResult, error) {
	if query.Category != "" && !query.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category filter")
	}
	params := pagination.Params{Page: query.Page, Limit: query.Limit}.Normalize(pagination.AdminPageSize)

	rows, total, err := s.repo.List(ctx, query, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	result := &ListResult{
		Data:       make([]AdminProductDTO, 0, len(rows)),
		Pagination: pagination.NewMeta(total, params),
	}
	for i := range rows {
		result.Data = append(result.Data, toAdminDTO(&rows[i], s.imageURL))
	}
	return result, nil
}

// SetAvailability toggles the availability flag and emits an update event.
func (s *service) SetAvailability(ctx context.Context, id string, available bool) (*AdminProductDTO, error) {
	productID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, mapNotFound(err, "product not found")
	}
	if err := s.repo.SetAvailability(ctx, productID, available); err != nil {
		return nil, mapNotFound(err, "product not found")
	}
	s.events.ProductChanged(ctx, EventProductUpdated, productID, existing.Category.String())
	return s.reload(ctx, productID)
}

func (s *service) reload(ctx context.Context, id uuid.UUID) (*AdminProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "product not found")
	}
	dto := toAdminDTO(product, s.imageURL)
	return &dto, nil
}

// attachImages resolves media ids into ordered image rows.
func (s *service) attachImages(ctx context.Context, productID uuid.UUID, mediaIDs []string) error {
	images := make([]models.ProductImage, 0, len(mediaIDs))
	for _, raw := range mediaIDs {
		mediaID, err := uuid.Parse(raw)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid media id")
		}
		asset, err := s.media.FindByID(ctx, mediaID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "media asset not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve media asset")
		}
		id := mediaID
		images = append(images, models.ProductImage{MediaID: &id, GCSKey: asset.GCSKey})
	}
	if err := s.repo.ReplaceImages(ctx, productID, images); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach images")
	}
	return nil
}

// buildProduct validates the payload against the category's column set.
func buildProduct(input ProductInput) (*models.Product, error) {
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	if strings.TrimSpace(input.SKU) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.PriceCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if input.SalePriceCents != nil && (*input.SalePriceCents <= 0 || *input.SalePriceCents >= input.PriceCents) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale price must be positive and below the list price")
	}

	product := &models.Product{
		Category:       input.Category,
		SKU:            strings.TrimSpace(input.SKU),
		Title:          strings.TrimSpace(input.Title),
		Subtitle:       input.Subtitle,
		Description:    input.Description,
		CaratWeight:    input.CaratWeight,
		PriceCents:     input.PriceCents,
		SalePriceCents: input.SalePriceCents,
		IsAvailable:    true,
		Tags:           pq.StringArray(input.Tags),
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}

	if input.Category.IsStone() {
		if err := applyStoneColumns(product, input); err != nil {
			return nil, err
		}
	} else {
		if err := applyJewelryColumns(product, input); err != nil {
			return nil, err
		}
	}
	return product, nil
}

func applyStoneColumns(product *models.Product, input ProductInput) error {
	if input.Shape == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "shape is required for stones")
	}
	shape, err := enums.ParseDiamondShape(*input.Shape)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid shape")
	}
	product.Shape = &shape

	if input.CaratWeight == nil || input.CaratWeight.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "carat weight is required for stones")
	}

	if input.Clarity != nil {
		clarity, err := enums.ParseDiamondClarity(*input.Clarity)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid clarity")
		}
		product.Clarity = &clarity
	}
	if input.Cut != nil {
		cut, err := enums.ParseDiamondCut(*input.Cut)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid cut")
		}
		product.Cut = &cut
	}
	if input.Color != nil {
		product.Color = input.Color
	}

	if input.Category == enums.ProductCategoryGemstone {
		if input.StoneType == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "stone type is required for gemstones")
		}
		stoneType, err := enums.ParseGemstoneType(*input.StoneType)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid stone type")
		}
		product.StoneType = &stoneType
	}
	return nil
}

func applyJewelryColumns(product *models.Product, input ProductInput) error {
	if input.Style != nil {
		style, err := enums.ParseStyle(input.Category, *input.Style)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid style for category")
		}
		product.Style = &style
	}
	if input.Metal != nil {
		metal, err := enums.ParseMetal(*input.Metal)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid metal")
		}
		product.Metal = &metal
	}
	return nil
}

func parseID(id string) (uuid.UUID, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}
	return productID, nil
}

func mapNotFound(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
