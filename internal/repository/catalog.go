package repository

import (
	"context"

	"caffenio/internal/domain"
)

// StaticCatalog статичный каталог продуктов киоска. The list is seeded once
// and never mutated, so lookups need no locking.
type StaticCatalog struct {
	products []domain.Product
}

// NewStaticCatalog builds the catalog with the standard kiosk menu.
func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{products: seedProducts()}
}

// NewCatalogWith builds a catalog from an explicit product list. Used by tests.
func NewCatalogWith(products []domain.Product) *StaticCatalog {
	return &StaticCatalog{products: products}
}

var _ ProductCatalog = (*StaticCatalog)(nil)

func (c *StaticCatalog) All(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out, nil
}

func (c *StaticCatalog) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (c *StaticCatalog) ByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	out := make([]domain.Product, 0)
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func seedProducts() []domain.Product {
	return []domain.Product{
		// Calientes
		{ID: 1, Name: "Americano", Description: "Café preparado con espresso y agua caliente, con un sabor más suave y menos intenso que el espresso.", Price: 35, Category: "Calientes", IsAvailable: true, ImageURL: "/assets/images/americano.png"},
		{ID: 2, Name: "Capuccino", Description: "Base de café espresso, leche caliente y una capa de espuma de leche en crema.", Price: 45, Category: "Calientes", IsAvailable: true, ImageURL: "/assets/images/capuccino.png"},
		{ID: 3, Name: "Chocolate", Description: "Base de leche y chocolate, también disponible con un toque mexicano.", Price: 40, Category: "Calientes", IsAvailable: false, ImageURL: "/assets/images/chocolate.png"},
		// Fríos
		{ID: 4, Name: "Frappé", Description: "Bebida helada de café con leche y hielo.", Price: 55, Category: "Fríos", IsAvailable: true, ImageURL: "/assets/images/frappe.png"},
		{ID: 5, Name: "Cold Brew", Description: "Café preparado con agua fría durante varias horas.", Price: 50, Category: "Fríos", IsAvailable: true, ImageURL: "/assets/images/coldbrew.png"},
		// Alimentos
		{ID: 6, Name: "Sandwich", Description: "Sandwich fresco con ingredientes de calidad.", Price: 60, Category: "Alimentos", IsAvailable: true, ImageURL: "/assets/images/sandwich.png"},
		{ID: 7, Name: "Ensalada", Description: "Ensalada fresca del día.", Price: 55, Category: "Alimentos", IsAvailable: false, ImageURL: "/assets/images/ensalada.png"},
		// Dulces - Nieve
		{ID: 8, Name: "Helado de Vainilla", Description: "Nieve artesanal de vainilla.", Price: 35, Category: "Dulces-Nieve", IsAvailable: true, ImageURL: "/assets/images/nieve-vainilla.png"},
		{ID: 9, Name: "Helado de Chocolate", Description: "Nieve artesanal de chocolate.", Price: 35, Category: "Dulces-Nieve", IsAvailable: true, ImageURL: "/assets/images/nieve-chocolate.png"},
		// Dulces - Repostería
		{ID: 10, Name: "Pastel de Chocolate", Description: "Delicioso pastel de chocolate casero.", Price: 45, Category: "Dulces-Repostería", IsAvailable: true, ImageURL: "/assets/images/pastel-chocolate.png"},
		{ID: 11, Name: "Croissant", Description: "Croissant recién horneado.", Price: 30, Category: "Dulces-Repostería", IsAvailable: true, ImageURL: "/assets/images/croissant.png"},
	}
}
