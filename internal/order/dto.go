// AngelaMos | 2026
// dto.go

package order

import (
	"time"

	"github.com/carterperez-dev/templates/order-api/internal/core"
	"github.com/carterperez-dev/templates/order-api/internal/product"
)

type CreateOrderRequest struct {
	UserID    int64             `json:"userId"    validate:"required,gt=0"`
	Client    string            `json:"client"    validate:"required,max=200"`
	Status    string            `json:"status"    validate:"required,oneof=pending canceled ready delivered"`
	DateEntry string            `json:"dateEntry" validate:"required"`
	Products  []LineItemRequest `json:"products"  validate:"required,min=1,dive"`
}

type LineItemRequest struct {
	Qty     int        `json:"qty"     validate:"required,gt=0"`
	Product ProductRef `json:"product" validate:"required"`
}

type ProductRef struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=canceled ready delivered"`
}

type OrderResponse struct {
	ID            int64              `json:"id"`
	UserID        int64              `json:"userId"`
	Client        string             `json:"client"`
	Status        Status             `json:"status"`
	DateEntry     time.Time          `json:"dateEntry"`
	DateProcessed *time.Time         `json:"dateProcessed"`
	Products      []LineItemResponse `json:"products"`
}

type LineItemResponse struct {
	Qty     int                     `json:"qty"`
	Product product.ProductResponse `json:"product"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// ToInput converts the wire request, parsing dateEntry.
func (r CreateOrderRequest) ToInput() (CreateOrderInput, error) {
	dateEntry, err := core.ParseTimestamp(r.DateEntry)
	if err != nil {
		return CreateOrderInput{}, err
	}

	status, err := ParseStatus(r.Status)
	if err != nil {
		return CreateOrderInput{}, err
	}

	items := make([]ItemInput, 0, len(r.Products))
	for _, p := range r.Products {
		items = append(items, ItemInput{
			ProductID: p.Product.ID,
			Quantity:  p.Qty,
		})
	}

	return CreateOrderInput{
		UserID:    r.UserID,
		Client:    r.Client,
		Status:    status,
		DateEntry: dateEntry,
		Items:     items,
	}, nil
}

func ToOrderResponse(o *Order) OrderResponse {
	products := make([]LineItemResponse, 0, len(o.LineItems))
	for _, item := range o.LineItems {
		products = append(products, LineItemResponse{
			Qty:     item.Quantity,
			Product: product.ToProductResponse(&item.Product),
		})
	}

	return OrderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		Client:        o.Client,
		Status:        o.Status,
		DateEntry:     o.DateEntry.UTC(),
		DateProcessed: core.UTCPtr(o.DateProcessed),
		Products:      products,
	}
}

func ToOrderResponseList(orders []Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses
}
