// AngelaMos | 2026
// service.go

package product

import (
	"context"
	"strings"

	"github.com/carterperez-dev/templates/order-api/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProduct(
	ctx context.Context,
	req CreateProductRequest,
) (*Product, error) {
	dateEntry, err := core.ParseOptionalTimestamp(req.DateEntry)
	if err != nil {
		return nil, err
	}

	product := &Product{
		Name:      strings.TrimSpace(req.Name),
		Image:     req.Image,
		Type:      req.Type,
		DateEntry: dateEntry,
	}
	if req.Price != nil {
		product.Price = *req.Price
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateProduct(
	ctx context.Context,
	id int64,
	req UpdateProductRequest,
) (*Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Type != nil {
		product.Type = *req.Type
	}
	if req.DateEntry != nil {
		dateEntry, err := core.ParseOptionalTimestamp(req.DateEntry)
		if err != nil {
			return nil, err
		}
		product.DateEntry = dateEntry
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
