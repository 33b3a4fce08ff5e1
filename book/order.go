package book

import (
	"fmt"
	"strings"
	"time"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

// OrderStatuses lists every status in display order.
var OrderStatuses = []OrderStatus{StatusPending, StatusShipped, StatusDelivered, StatusCancelled}

// Valid reports whether s is one of OrderStatuses.
func (s OrderStatus) Valid() bool {
	for _, st := range OrderStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// ParseOrderStatus matches s against the known statuses, ignoring case.
func ParseOrderStatus(s string) (OrderStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range OrderStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Order is a customer purchase request. BookTitle is copied from the book at
// submission so the order still renders after the book is deleted.
type Order struct {
	ID           string      `json:"id" yaml:"id"`
	BookID       string      `json:"bookId" yaml:"bookId"`
	BookTitle    string      `json:"bookTitle" yaml:"bookTitle"`
	CustomerName string      `json:"customerName" yaml:"customerName"`
	Phone        string      `json:"phone" yaml:"phone"`
	Address      string      `json:"address" yaml:"address"`
	Status       OrderStatus `json:"status" yaml:"status"`
	Date         time.Time   `json:"date" yaml:"date"`
}
