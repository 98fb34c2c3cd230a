package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/solsticegems/solstice-backend/pkg/db/models"
	pkgerrors "github.com/solsticegems/solstice-backend/pkg/errors"
	"github.com/solsticegems/solstice-backend/pkg/logger"
	"github.com/solsticegems/solstice-backend/pkg/redis"
)

// cartTTL bounds how long an abandoned anonymous cart survives.
const cartTTL = 30 * 24 * time.Hour

const maxLineQuantity = 20

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type imageURLBuilder func(gcsKey string) string

// Service exposes session cart operations.
type Service interface {
	Get(ctx context.Context, cartID string) (*Cart, error)
	AddItem(ctx context.Context, cartID string, input AddItemInput) (*Cart, error)
	UpdateQuantity(ctx context.Context, cartID, lineID string, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, cartID, lineID string) (*Cart, error)
	Clear(ctx context.Context, cartID string) error
}

type service struct {
	store    redis.CartStore
	products productLoader
	imageURL imageURLBuilder
	logg     *logger.Logger
}

// NewService builds a cart service backed by redis and the product catalog.
func NewService(store redis.CartStore, products productLoader, imageURL imageURLBuilder, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{store: store, products: products, imageURL: imageURL, logg: logg}, nil
}

// AddItemInput is the add-to-cart payload.
type AddItemInput struct {
	ProductID     string
	Quantity      int
	Customization *Customization
}

func (s *service) Get(ctx context.Context, cartID string) (*Cart, error) {
	if cartID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}
	return s.load(ctx, cartID)
}

// AddItem resolves the product, shapes the cart line and persists the cart.
// Plain lines for the same product merge; customized lines always stand alone.
func (s *service) AddItem(ctx context.Context, cartID string, input AddItemInput) (*Cart, error) {
	if cartID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}
	if input.Quantity <= 0 || input.Quantity > maxLineQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity out of range")
	}

	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsAvailable {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product is no longer available")
	}

	cart, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	item := buildItem(product, input, s.imageURL)
	if input.Customization == nil {
		if idx, ok := cart.findLine(item.LineID); ok {
			merged := cart.Items[idx].Quantity + input.Quantity
			if merged > maxLineQuantity {
				merged = maxLineQuantity
			}
			cart.Items[idx].Quantity = merged
			return cart, s.save(ctx, cart)
		}
	}
	cart.Items = append(cart.Items, item)
	return cart, s.save(ctx, cart)
}

func (s *service) UpdateQuantity(ctx context.Context, cartID, lineID string, quantity int) (*Cart, error) {
	if quantity <= 0 || quantity > maxLineQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity out of range")
	}
	cart, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	idx, ok := cart.findLine(lineID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	cart.Items[idx].Quantity = quantity
	return cart, s.save(ctx, cart)
}

func (s *service) RemoveItem(ctx context.Context, cartID, lineID string) (*Cart, error) {
	cart, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	idx, ok := cart.findLine(lineID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	return cart, s.save(ctx, cart)
}

func (s *service) Clear(ctx context.Context, cartID string) error {
	if cartID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}
	if err := s.store.Del(ctx, s.store.CartKey(cartID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

// load returns the stored cart, or an empty one when the key is missing.
func (s *service) load(ctx context.Context, cartID string) (*Cart, error) {
	raw, err := s.store.Get(ctx, s.store.CartKey(cartID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return &Cart{ID: cartID, Items: []Item{}}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		s.logg.Warn(ctx, "discarding unreadable cart payload")
		return &Cart{ID: cartID, Items: []Item{}}, nil
	}
	cart.ID = cartID
	return &cart, nil
}

func (s *service) save(ctx context.Context, cart *Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.store.Set(ctx, s.store.CartKey(cart.ID), payload, cartTTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return nil
}

// buildItem shapes a cart line from the product row. The sale price wins
// over the list price when present; customized lines carry a fresh line id
// so two differently configured rings never merge.
func buildItem(product *models.Product, input AddItemInput, imageURL imageURLBuilder) Item {
	price := product.PriceCents
	if product.SalePriceCents != nil {
		price = *product.SalePriceCents
	}

	item := Item{
		LineID:        product.ID.String(),
		ProductID:     product.ID.String(),
		Title:         product.Title,
		SKU:           product.SKU,
		UnitPrice:     price,
		Quantity:      input.Quantity,
		ProductType:   product.Category.String(),
		Customization: input.Customization,
	}
	if len(product.Images) > 0 && imageURL != nil {
		item.ImageURL = imageURL(product.Images[0].GCSKey)
	}
	if input.Customization != nil {
		item.LineID = uuid.NewString()
	}
	return item
}
