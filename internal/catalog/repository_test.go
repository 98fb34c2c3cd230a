package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/solsticegems/solstice-backend/pkg/db/models"
	"github.com/solsticegems/solstice-backend/pkg/enums"
	"github.com/solsticegems/solstice-backend/pkg/pagination"
)

func mustCreateDiamond(t *testing.T, tx *gorm.DB, shape enums.DiamondShape, clarity enums.DiamondClarity, carat float64, priceCents int) *models.Product {
	t.Helper()
	weight := decimal.NewFromFloat(carat)
	product := &models.Product{
		Category:    enums.ProductCategoryDiamond,
		SKU:         fmt.Sprintf("SKU-%s", uuid.NewString()),
		Title:       fmt.Sprintf("%s Diamond", shape),
		Shape:       &shape,
		Clarity:     &clarity,
		CaratWeight: &weight,
		PriceCents:  priceCents,
		IsAvailable: true,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func TestListProductsFilterComposition(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	match := mustCreateDiamond(t, tx, enums.DiamondShapeRound, enums.DiamondClarityVS1, 1.2, 250000)
	mustCreateDiamond(t, tx, enums.DiamondShapeOval, enums.DiamondClarityVS1, 1.1, 240000)
	mustCreateDiamond(t, tx, enums.DiamondShapeRound, enums.DiamondClaritySI1, 1.3, 260000)
	tooSmall := mustCreateDiamond(t, tx, enums.DiamondShapeRound, enums.DiamondClarityVS1, 0.4, 90000)

	min := 0.5
	max := 3.0
	filters := ListFilters{
		Category:      enums.ProductCategoryDiamond,
		Shapes:        []string{enums.DiamondShapeRound.String()},
		Clarities:     []string{enums.DiamondClarityVS1.String()},
		CaratMin:      &min,
		CaratMax:      &max,
		OnlyAvailable: true,
	}
	params := pagination.Params{Page: 1, Limit: pagination.CatalogPageSize}

	rows, total, err := repo.ListProducts(ctx, filters, enums.SortPriceAsc.String(), params)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}

	for _, row := range rows {
		if row.ID == tooSmall.ID {
			t.Fatal("carat range filter leaked an out-of-range row")
		}
	}

	found := false
	for _, row := range rows {
		if row.ID == match.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("expected matching diamond in result set")
	}
	if total < 1 {
		t.Fatalf("unexpected total %d", total)
	}
}

func TestListProductsSortWhitelist(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	mustCreateDiamond(t, tx, enums.DiamondShapeRound, enums.DiamondClarityVS1, 1.0, 300000)
	mustCreateDiamond(t, tx, enums.DiamondShapeRound, enums.DiamondClarityVS1, 1.0, 100000)

	filters := ListFilters{
		Category: enums.ProductCategoryDiamond,
		Shapes:   []string{enums.DiamondShapeRound.String()},
	}
	params := pagination.Params{Page: 1, Limit: pagination.CatalogPageSize}

	// an unknown sort key must fall back to the default ordering, not error
	rows, _, err := repo.ListProducts(ctx, filters, "drop table products", params)
	if err != nil {
		t.Fatalf("list with unknown sort: %v", err)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].PriceCents > rows[i].PriceCents {
			t.Fatal("fallback ordering should be price ascending")
		}
	}
}
