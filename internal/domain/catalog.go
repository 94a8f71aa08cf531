package domain

import (
	"context"
	"time"
)

// --- Dashboard input records ---

type Product struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Price     Cents  `json:"price"`
	Cost      Cents  `json:"cost"`
	Inventory int    `json:"inventory"`
	MinStock  int    `json:"minStock"`
}

type OrderStatus string

const (
	OrderCompleted         OrderStatus = "completed"
	OrderPaid              OrderStatus = "paid"
	OrderRefunded          OrderStatus = "refunded"
	OrderPartiallyRefunded OrderStatus = "partially_refunded"
	OrderPending           OrderStatus = "pending"
	OrderCancelled         OrderStatus = "cancelled"
	OrderVoid              OrderStatus = "void"
)

// CountsAsSale reports whether an order in this status contributes to sales figures.
func (s OrderStatus) CountsAsSale() bool {
	switch s {
	case OrderCompleted, OrderPaid, OrderRefunded, OrderPartiallyRefunded:
		return true
	default:
		return false
	}
}

type OrderItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     Cents  `json:"price"`
}

type Refund struct {
	Amount    Cents       `json:"amount"`
	Items     []OrderItem `json:"items,omitempty"`
	Timestamp time.Time   `json:"timestamp,omitempty"`
}

type Order struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Status    OrderStatus `json:"status"`
	Total     Cents       `json:"total"`
	Items     []OrderItem `json:"items"`
	Refunds   []Refund    `json:"refunds,omitempty"`
}

// RefundedTotal sums all refund amounts on the order.
func (o Order) RefundedTotal() Cents {
	var total Cents
	for _, r := range o.Refunds {
		total += r.Amount
	}
	return total
}

// --- Providers (external collaborators) ---

// ProductCatalog supplies the product records shown on the dashboard.
type ProductCatalog interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

// OrderHistory supplies the order records shown on the dashboard.
type OrderHistory interface {
	ListOrders(ctx context.Context) ([]Order, error)
}
