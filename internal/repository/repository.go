package repository

import (
	"context"
	"errors"

	"caffenio/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// ErrTicketsExhausted возвращается, когда все 9000 номеров тикетов заняты
var ErrTicketsExhausted = errors.New("ticket numbers exhausted")

// OrderRepository интерфейс хранилища заказов.
// Create assigns the internal id, the ticket number and CreatedAt.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	List(ctx context.Context) ([]domain.Order, error)
	GetByTicket(ctx context.Context, ticket string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
}

// ProductCatalog интерфейс каталога. Read-only: the product list is fixed
// at process start.
type ProductCatalog interface {
	All(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	ByCategory(ctx context.Context, category string) ([]domain.Product, error)
}
