// AngelaMos | 2026
// dto.go

package product

import (
	"time"

	"github.com/carterperez-dev/templates/order-api/internal/core"
)

type CreateProductRequest struct {
	Name      string  `json:"name"      validate:"required,min=1,max=200"`
	Price     *int64  `json:"price"     validate:"required,gte=0"`
	Image     string  `json:"image"     validate:"omitempty,uri,max=2048"`
	Type      string  `json:"type"      validate:"max=100"`
	DateEntry *string `json:"dateEntry"`
}

type UpdateProductRequest struct {
	Name      *string `json:"name,omitempty"      validate:"omitempty,min=1,max=200"`
	Price     *int64  `json:"price,omitempty"     validate:"omitempty,gte=0"`
	Image     *string `json:"image,omitempty"     validate:"omitempty,uri,max=2048"`
	Type      *string `json:"type,omitempty"      validate:"omitempty,max=100"`
	DateEntry *string `json:"dateEntry,omitempty"`
}

type ProductResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Price     int64      `json:"price"`
	Image     string     `json:"image"`
	Type      string     `json:"type"`
	DateEntry *time.Time `json:"dateEntry"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

func ToProductResponse(p *Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Type:      p.Type,
		DateEntry: core.UTCPtr(p.DateEntry),
	}
}

func ToProductResponseList(products []Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, ToProductResponse(&p))
	}
	return responses
}
