package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/htol/bookshop/book"
	"github.com/htol/bookshop/logger"
	"github.com/htol/bookshop/validator"
)

// OrderForm is what a customer submits. The system assigns the id, date
// and status
type OrderForm struct {
	BookID       string `json:"bookId" validate:"required"`
	CustomerName string `json:"customerName" validate:"required"`
	Phone        string `json:"phone" validate:"required,phone"`
	Address      string `json:"address" validate:"required"`
}

func (f OrderForm) trimmed() OrderForm {
	return OrderForm{
		BookID:       strings.TrimSpace(f.BookID),
		CustomerName: strings.TrimSpace(f.CustomerName),
		Phone:        strings.TrimSpace(f.Phone),
		Address:      strings.TrimSpace(f.Address),
	}
}

// SubmitOrder validates f and records a pending order. Nothing is stored
// when validation fails
func (s *Service) SubmitOrder(ctx context.Context, f OrderForm) (book.Order, error) {
	f = f.trimmed()
	if err := s.validate.Struct(f); err != nil {
		return book.Order{}, err
	}

	b, err := s.repo.FindBook(ctx, f.BookID)
	if err != nil {
		return book.Order{}, fmt.Errorf("submit order for book %q: %w", f.BookID, err)
	}
	if !b.Purchasable() {
		return book.Order{}, fmt.Errorf("submit order for book %q: %w", f.BookID, ErrNotPurchasable)
	}

	o, err := s.repo.AddOrder(ctx, book.Order{
		BookID:       b.ID,
		BookTitle:    b.Title,
		CustomerName: f.CustomerName,
		Phone:        f.Phone,
		Address:      f.Address,
		Status:       book.StatusPending,
		Date:         s.now().UTC(),
	})
	if err != nil {
		return book.Order{}, fmt.Errorf("add order: %w", err)
	}

	logger.Info("order submitted", "order_id", o.ID, "book_id", o.BookID)
	return o, nil
}

// UpdateOrderStatus moves an order to any known status
func (s *Service) UpdateOrderStatus(ctx context.Context, id, status string) error {
	if err := validator.ValidateID(id); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	st, err := book.ParseOrderStatus(status)
	if err != nil {
		fe := &validator.FieldErrors{}
		fe.Add("status", "must be one of: Pending Shipped Delivered Cancelled")
		return fe
	}
	if err := s.repo.SetOrderStatus(ctx, id, st); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// DeleteOrder removes an order after the admin confirmed it
func (s *Service) DeleteOrder(ctx context.Context, id string, confirmed bool) error {
	if err := validator.ValidateID(id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := s.repo.RemoveOrder(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
