package service

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"

	"caffenio/internal/domain"
	"caffenio/internal/repository"
)

var ErrInvalidInput = errors.New("invalid input")

// amounts are client-computed floats; allow half a cent of slack when
// cross-checking them.
const centTolerance = 0.005

// OrderSubmission is a finalized checkout payload. Amounts come computed by
// the kiosk; the service cross-checks their arithmetic but does not reprice
// lines against the catalog (customized lines carry surcharges the catalog
// does not know).
type OrderSubmission struct {
	CustomerID string
	Subtotal   float64
	Tax        float64
	Discount   float64
	Total      float64
	Items      []domain.OrderLine
}

// SubmitResult what the kiosk shows on the confirmation screen.
type SubmitResult struct {
	TicketNumber string
	OrderID      int64
	Total        float64
}

// OrderService реализует приём заказов: выдача тикета, список, поиск по
// тикету, смена статуса.
type OrderService struct {
	orders repository.OrderRepository
	logger *zap.Logger
}

func NewOrderService(orders repository.OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{orders: orders, logger: logger}
}

// SubmitOrder validates the payload, stores the order and issues its ticket
// number. Either the order is stored with a valid ticket or nothing is.
func (s *OrderService) SubmitOrder(ctx context.Context, sub OrderSubmission) (*SubmitResult, error) {
	if err := validateSubmission(sub); err != nil {
		return nil, err
	}

	o := domain.Order{
		CustomerID: sub.CustomerID,
		Subtotal:   sub.Subtotal,
		Tax:        sub.Tax,
		Discount:   sub.Discount,
		Total:      sub.Total,
		Status:     domain.OrderStatusPending,
		Items:      sub.Items,
	}
	if err := s.orders.Create(ctx, &o); err != nil {
		s.logger.Error("order create failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("new order",
		zap.String("ticket", o.TicketNumber),
		zap.Int64("order_id", o.ID),
		zap.Float64("total", o.Total),
	)
	return &SubmitResult{TicketNumber: o.TicketNumber, OrderID: o.ID, Total: o.Total}, nil
}

func validateSubmission(sub OrderSubmission) error {
	if len(sub.Items) == 0 {
		return ErrInvalidInput
	}
	if sub.Subtotal < 0 || sub.Tax < 0 || sub.Discount < 0 || sub.Total < 0 {
		return ErrInvalidInput
	}
	if math.Abs(sub.Total-(sub.Subtotal+sub.Tax-sub.Discount)) > centTolerance {
		return ErrInvalidInput
	}
	for _, it := range sub.Items {
		if it.ProductID <= 0 || it.Quantity < 1 || it.UnitPrice < 0 {
			return ErrInvalidInput
		}
		if math.Abs(it.LineSubtotal-it.UnitPrice*float64(it.Quantity)) > centTolerance {
			return ErrInvalidInput
		}
	}
	return nil
}

// ListOrders возвращает все заказы, новые первыми
func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// GetByTicket exact-match lookup on the customer-facing ticket number.
func (s *OrderService) GetByTicket(ctx context.Context, ticket string) (*domain.Order, error) {
	if ticket == "" {
		return nil, ErrInvalidInput
	}
	return s.orders.GetByTicket(ctx, ticket)
}

// UpdateStatus overwrites the order's status. Any of the four known statuses
// is accepted regardless of the current one; unknown strings are rejected.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	if id <= 0 || !domain.ValidStatus(status) {
		return ErrInvalidInput
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.logger.Info("order status updated", zap.Int64("order_id", id), zap.String("status", string(status)))
	return nil
}
