package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the read model returned by the order API. Items may be
// absent when the order came from a list query.
type Order struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customerId"`
	OrderDate   time.Time       `json:"orderDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      Status          `json:"status"`
	Items       []OrderItem     `json:"items,omitempty"`
}

type OrderItem struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

type PagedOrders struct {
	Items      []Order `json:"items"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalCount int     `json:"totalCount"`
	TotalPages int     `json:"totalPages,omitempty"`
}

// OrderItemRequest is the only item shape the write side accepts,
// denormalized fields are never sent.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerID string             `json:"customerId,omitempty"`
	Items      []OrderItemRequest `json:"items"`
}

// UpdateOrderRequest maps to the API UpdateOrderCommand. NewStatus and
// ReplaceItems serialize as null when unset, a null ReplaceItems
// preserves the existing items.
type UpdateOrderRequest struct {
	OrderID      string             `json:"orderId"`
	NewStatus    *int               `json:"newStatus"`
	ReplaceItems []OrderItemRequest `json:"replaceItems"`
}
