package service

import (
	"context"

	"caffenio/internal/domain"
	"caffenio/internal/repository"
)

// Numeric category ids the kiosk navigates by. Category 4 (Dulces) is split
// into named subcategories instead.
var categoryByID = map[int64]string{
	1: "Calientes",
	2: "Fríos",
	3: "Alimentos",
}

var subcategoryByID = map[string]string{
	"nieve":      "Dulces-Nieve",
	"reposteria": "Dulces-Repostería",
}

// CatalogService read-only запросы к каталогу продуктов
type CatalogService struct {
	catalog repository.ProductCatalog
}

func NewCatalogService(catalog repository.ProductCatalog) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	return s.catalog.All(ctx)
}

func (s *CatalogService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.catalog.GetByID(ctx, id)
}

// ByCategory maps the numeric kiosk category to catalog products.
func (s *CatalogService) ByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	category, ok := categoryByID[categoryID]
	if !ok {
		return nil, ErrInvalidInput
	}
	return s.catalog.ByCategory(ctx, category)
}

// BySubcategory resolves a Dulces subcategory ("nieve", "reposteria").
func (s *CatalogService) BySubcategory(ctx context.Context, subcategoryID string) ([]domain.Product, error) {
	category, ok := subcategoryByID[subcategoryID]
	if !ok {
		return nil, ErrInvalidInput
	}
	return s.catalog.ByCategory(ctx, category)
}

// Availability reports whether the product can currently be ordered.
func (s *CatalogService) Availability(ctx context.Context, id int64) (bool, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return p.IsAvailable, nil
}
