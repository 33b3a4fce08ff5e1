package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/htol/bookshop/book"
)

const orderColumns = `order_id, book_id, book_title, customer_name, phone, address, status, created_at`

func insertOrder(ctx context.Context, ex execer, o book.Order) error {
	_, err := ex.ExecContext(ctx,
		`INSERT INTO orders (`+orderColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.BookID, o.BookTitle, o.CustomerName, o.Phone, o.Address,
		string(o.Status), o.Date.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert order %q: %w", o.ID, err)
	}
	return nil
}

func (r *Repo) ListOrders(ctx context.Context) ([]book.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listOrders(ctx)
}

func (r *Repo) listOrders(ctx context.Context) ([]book.Order, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []book.Order{}
	for rows.Next() {
		var (
			o       book.Order
			status  string
			created string
		)
		if err := rows.Scan(&o.ID, &o.BookID, &o.BookTitle, &o.CustomerName, &o.Phone, &o.Address, &status, &created); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Status = book.OrderStatus(status)
		if o.Date, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parse order %q date: %w", o.ID, err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// AddOrder stores o, minting an ID when o.ID is empty
func (r *Repo) AddOrder(ctx context.Context, o book.Order) (book.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.ID == "" {
		o.ID = r.nextOrderID()
	} else {
		r.observeOrderID(o.ID)
	}
	if err := insertOrder(ctx, r.db, o); err != nil {
		return book.Order{}, err
	}
	r.bump()
	return o, nil
}

func (r *Repo) SetOrderStatus(ctx context.Context, id string, status book.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE order_id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("set order %q status: %w", id, err)
	}
	if err := rowsAffected(res, "set order status", id); err != nil {
		return err
	}
	r.bump()
	return nil
}

func (r *Repo) RemoveOrder(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE order_id = ?`, id)
	if err != nil {
		return fmt.Errorf("remove order %q: %w", id, err)
	}
	if err := rowsAffected(res, "remove order", id); err != nil {
		return err
	}
	r.bump()
	return nil
}
