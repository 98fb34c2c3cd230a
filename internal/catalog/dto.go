package catalog

import (
	"strings"

	"github.com/solsticegems/solstice-backend/pkg/db/models"
)

// ProductSummaryDTO is the listing-card payload. Field names match what the
// browse controller decodes.
type ProductSummaryDTO struct {
	ID          string `json:"id"`
	SKU         string `json:"sku,omitempty"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Price       int    `json:"price"`
	SalePrice   *int   `json:"salePrice,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	ProductType string `json:"productType"`
	Carat       string `json:"carat,omitempty"`
}

// ProductDetailDTO extends the summary with the full display surface.
type ProductDetailDTO struct {
	ProductSummaryDTO
	Description string   `json:"description,omitempty"`
	Shape       string   `json:"shape,omitempty"`
	Color       string   `json:"color,omitempty"`
	Clarity     string   `json:"clarity,omitempty"`
	Cut         string   `json:"cut,omitempty"`
	StoneType   string   `json:"stoneType,omitempty"`
	Style       string   `json:"style,omitempty"`
	Metal       string   `json:"metal,omitempty"`
	IsAvailable bool     `json:"isAvailable"`
	Images      []string `json:"images,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// ListResult is the standardized listing response shape.
type ListResult struct {
	Products   []ProductSummaryDTO `json:"products"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"totalPages"`
}

// ImageURLBuilder turns a stored object key into a display URL.
type ImageURLBuilder func(gcsKey string) string

func toSummaryDTO(p *models.Product, imageURL ImageURLBuilder) ProductSummaryDTO {
	dto := ProductSummaryDTO{
		ID:          p.ID.String(),
		SKU:         p.SKU,
		Title:       p.Title,
		Price:       p.PriceCents,
		SalePrice:   p.SalePriceCents,
		ProductType: p.Category.String(),
	}
	if p.Subtitle != nil {
		dto.Subtitle = *p.Subtitle
	}
	if p.CaratWeight != nil {
		dto.Carat = p.CaratWeight.String()
	}
	if len(p.Images) > 0 && imageURL != nil {
		dto.ImageURL = imageURL(p.Images[0].GCSKey)
	}
	return dto
}

func toDetailDTO(p *models.Product, imageURL ImageURLBuilder) ProductDetailDTO {
	dto := ProductDetailDTO{
		ProductSummaryDTO: toSummaryDTO(p, imageURL),
		IsAvailable:       p.IsAvailable,
		Tags:              []string(p.Tags),
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
	if imageURL != nil {
		for _, img := range p.Images {
			if url := imageURL(img.GCSKey); url != "" {
				dto.Images = append(dto.Images, url)
			}
		}
	}
	return dto
}

func normalizeSlug(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
