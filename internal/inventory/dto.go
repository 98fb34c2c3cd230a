package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/solsticegems/solstice-backend/pkg/db/models"
	"github.com/solsticegems/solstice-backend/pkg/enums"
	"github.com/solsticegems/solstice-backend/pkg/pagination"
)

// ProductInput is the admin create/update payload. Optional columns stay nil
// when the field does not apply to the category.
type ProductInput struct {
	Category       enums.ProductCategory
	SKU            string
	Title          string
	Subtitle       *string
	Description    *string
	Shape          *string
	Color          *string
	Clarity        *string
	Cut            *string
	StoneType      *string
	Style          *string
	Metal          *string
	CaratWeight    *decimal.Decimal
	PriceCents     int
	SalePriceCents *int
	IsAvailable    *bool
	IsFeatured     *bool
	Tags           []string
	MediaIDs       []string
}

// ListQuery captures the admin listing controls.
type ListQuery struct {
	Page        int
	Limit       int
	Search      string
	SortBy      string
	SortOrder   string
	Category    enums.ProductCategory
	IsAvailable *bool
}

// AdminProductDTO is the back-office row representation.
type AdminProductDTO struct {
	ID             string    `json:"id"`
	Category       string    `json:"category"`
	SKU            string    `json:"sku"`
	Title          string    `json:"title"`
	Subtitle       string    `json:"subtitle,omitempty"`
	Description    string    `json:"description,omitempty"`
	Shape          string    `json:"shape,omitempty"`
	Color          string    `json:"color,omitempty"`
	Clarity        string    `json:"clarity,omitempty"`
	Cut            string    `json:"cut,omitempty"`
	StoneType      string    `json:"stoneType,omitempty"`
	Style          string    `json:"style,omitempty"`
	Metal          string    `json:"metal,omitempty"`
	Carat          string    `json:"carat,omitempty"`
	PriceCents     int       `json:"priceCents"`
	SalePriceCents *int      `json:"salePriceCents,omitempty"`
	IsAvailable    bool      `json:"isAvailable"`
	IsFeatured     bool      `json:"isFeatured"`
	Tags           []string  `json:"tags,omitempty"`
	Images         []string  `json:"images,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ListResult is the admin listing envelope.
type ListResult struct {
	Data       []AdminProductDTO `json:"data"`
	Pagination pagination.Meta   `json:"pagination"`
}

func toAdminDTO(p *models.Product, imageURL func(string) string) AdminProductDTO {
	dto := AdminProductDTO{
		ID:             p.ID.String(),
		Category:       p.Category.String(),
		SKU:            p.SKU,
		Title:          p.Title,
		PriceCents:     p.PriceCents,
		SalePriceCents: p.SalePriceCents,
		IsAvailable:    p.IsAvailable,
		IsFeatured:     p.IsFeatured,
		Tags:           []string(p.Tags),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.Subtitle != nil {
		dto.Subtitle = *p.Subtitle
	}
	if p.Description != nil {
		dto.Description = *p.Description
	}
	if p.Shape != nil {
		dto.Shape = p.Shape.String()
	}
	if p.Color != nil {
		dto.Color = *p.Color
	}
	if p.Clarity != nil {
		dto.Clarity = p.Clarity.String()
	}
	if p.Cut != nil {
		dto.Cut = p.Cut.String()
	}
	if p.StoneType != nil {
		dto.StoneType = p.StoneType.String()
	}
	if p.Style != nil {
		dto.Style = p.Style.String()
	}
	if p.Metal != nil {
		dto.Metal = p.Metal.String()
	}
	if p.CaratWeight != nil {
		dto.Carat = p.CaratWeight.String()
	}
	if imageURL != nil {
		for _, img := range p.Images {
			if url := imageURL(img.GCSKey); url != "" {
				dto.Images = append(dto.Images, url)
			}
		}
	}
	return dto
}
