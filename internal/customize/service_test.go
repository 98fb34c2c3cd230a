package customize

import (
	"context"
	"io"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/solsticegems/solstice-backend/pkg/db/models"
	"github.com/solsticegems/solstice-backend/pkg/enums"
	pkgerrors "github.com/solsticegems/solstice-backend/pkg/errors"
	"github.com/solsticegems/solstice-backend/pkg/logger"
)

type stubProducts struct {
	byID map[uuid.UUID]*models.Product
}

func (s *stubProducts) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	product, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

func newQuoteService(t *testing.T, products ...*models.Product) Service {
	t.Helper()
	byID := map[uuid.UUID]*models.Product{}
	for _, p := range products {
		byID[p.ID] = p
	}
	logg := logger.New(logger.Options{ServiceName: "customize-test", Level: zerolog.ErrorLevel, Output: io.Discard})
	svc, err := NewService(&stubProducts{byID: byID}, logg)
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return svc
}

func product(category enums.ProductCategory, price int, sale *int) *models.Product {
	return &models.Product{
		ID:             uuid.New(),
		Category:       category,
		SKU:            "SKU-" + string(category),
		Title:          "Test " + string(category),
		PriceCents:     price,
		SalePriceCents: sale,
		IsAvailable:    true,
	}
}

func completeQuery(settingID, diamondID string) url.Values {
	q := url.Values{}
	q.Set("settingId", settingID)
	q.Set("metal", "platinum")
	q.Set("size", "6.5")
	q.Set("diamondId", diamondID)
	return q
}

func TestCompleteQuotesPair(t *testing.T) {
	stoneSale := 180000
	setting := product(enums.ProductCategorySetting, 250000, nil)
	stone := product(enums.ProductCategoryDiamond, 200000, &stoneSale)
	svc := newQuoteService(t, setting, stone)

	quote, err := svc.Complete(context.Background(), completeQuery(setting.ID.String(), stone.ID.String()))
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if quote.Setting.Price != 250000 {
		t.Fatalf("unexpected setting price %d", quote.Setting.Price)
	}
	if quote.Stone.Price != 180000 {
		t.Fatalf("sale price should win, got %d", quote.Stone.Price)
	}
	if quote.TotalCents != 430000 {
		t.Fatalf("unexpected total %d", quote.TotalCents)
	}
	if quote.Total != "4300.00" {
		t.Fatalf("unexpected formatted total %q", quote.Total)
	}
	if quote.StoneCategory != "diamond" || quote.Metal != "platinum" || quote.Size != "6.5" {
		t.Fatalf("unexpected quote context %+v", quote)
	}
}

func TestCompleteRejectsPartialFlow(t *testing.T) {
	setting := product(enums.ProductCategorySetting, 250000, nil)
	svc := newQuoteService(t, setting)

	q := url.Values{}
	q.Set("settingId", setting.ID.String())
	q.Set("metal", "platinum")
	q.Set("size", "6.5")

	_, err := svc.Complete(context.Background(), q)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing stone, got %v", err)
	}
}

func TestCompleteRejectsCategoryMismatch(t *testing.T) {
	setting := product(enums.ProductCategorySetting, 250000, nil)
	notAStone := product(enums.ProductCategoryNecklace, 90000, nil)
	svc := newQuoteService(t, setting, notAStone)

	_, err := svc.Complete(context.Background(), completeQuery(setting.ID.String(), notAStone.ID.String()))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for category mismatch, got %v", err)
	}
}

func TestCompleteRejectsInvalidMetalOrSize(t *testing.T) {
	setting := product(enums.ProductCategorySetting, 250000, nil)
	stone := product(enums.ProductCategoryDiamond, 200000, nil)
	svc := newQuoteService(t, setting, stone)

	q := completeQuery(setting.ID.String(), stone.ID.String())
	q.Set("metal", "titanium")
	if _, err := svc.Complete(context.Background(), q); err == nil {
		t.Fatal("expected error for unknown metal")
	}

	q = completeQuery(setting.ID.String(), stone.ID.String())
	q.Set("size", "15")
	if _, err := svc.Complete(context.Background(), q); err == nil {
		t.Fatal("expected error for unknown ring size")
	}
}

func TestCompleteMissingProduct(t *testing.T) {
	setting := product(enums.ProductCategorySetting, 250000, nil)
	svc := newQuoteService(t, setting)

	_, err := svc.Complete(context.Background(), completeQuery(setting.ID.String(), uuid.NewString()))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
