package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/comanda-pos/sdk-go/routes"
)

// OrderType distinguishes how an order leaves the kitchen.
type OrderType string

const (
	OrderTypeDelivery   OrderType = "delivery"
	OrderTypeTakeout    OrderType = "takeout"
	OrderTypeCollection OrderType = "collection"
)

// OrderStatus is the kitchen workflow state.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is the backend's order row.
type Order struct {
	ID            int         `json:"id"`
	OrderNumber   string      `json:"order_number,omitempty"`
	CustomerID    int         `json:"customer_id,omitempty"`
	CustomerName  string      `json:"customer_name,omitempty"`
	OrderType     OrderType   `json:"order_type"`
	Status        OrderStatus `json:"status"`
	Subtotal      float64     `json:"subtotal"`
	Tax           float64     `json:"tax"`
	DeliveryFee   float64     `json:"delivery_fee,omitempty"`
	Total         float64     `json:"total"`
	Notes         string      `json:"notes,omitempty"`
	PhoneLine     int         `json:"phone_line,omitempty"`
	TableID       int         `json:"table_id,omitempty"`
	CashSessionID int         `json:"cash_session_id,omitempty"`
	WaiterName    string      `json:"waiter_name,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at,omitempty"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID        int     `json:"id"`
	OrderID   int     `json:"order_id"`
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
	Notes     string  `json:"notes,omitempty"`
}

// OrderWithItems is an order with its lines, returned by Get.
type OrderWithItems struct {
	Order
	Items []OrderItem `json:"items"`
}

// NewOrderItem is one line of an order creation payload.
type NewOrderItem struct {
	ProductID int    `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
}

// NewOrder is the order creation payload. Pricing (subtotal, tax, total) is
// computed server-side; the client only names products and quantities.
type NewOrder struct {
	CustomerID  int            `json:"customer_id"`
	OrderType   OrderType      `json:"order_type"`
	Items       []NewOrderItem `json:"items"`
	Notes       string         `json:"notes,omitempty"`
	PhoneLine   int            `json:"phone_line,omitempty"`
	DeliveryFee float64        `json:"delivery_fee"`
	Status      OrderStatus    `json:"status,omitempty"`
}

// OrderItemsUpdate edits the lines of an open order: lines to add and line
// ids to remove, applied together. Totals are recomputed server-side.
type OrderItemsUpdate struct {
	AddItems      []NewOrderItem `json:"add_items"`
	RemoveItemIDs []int          `json:"remove_item_ids"`
}

// ListOrdersParams filters the order listing.
type ListOrdersParams struct {
	Status    OrderStatus
	OrderType OrderType
	// OnlyActiveSession restricts to orders of the open cash session.
	OnlyActiveSession bool
	// Limit caps the result count; the backend defaults to 50.
	Limit int
}

// OrdersClient wraps the order endpoints.
type OrdersClient struct {
	client *Client
}

// Create submits a new order.
func (o *OrdersClient) Create(ctx context.Context, order NewOrder) (Order, error) {
	var out Order
	if err := o.client.doJSON(ctx, http.MethodPost, routes.Orders, order, &out); err != nil {
		return Order{}, err
	}
	return out, nil
}

// Get returns one order with its lines.
func (o *OrdersClient) Get(ctx context.Context, id int) (OrderWithItems, error) {
	var out OrderWithItems
	if err := o.client.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/%d", routes.Orders, id), nil, &out); err != nil {
		return OrderWithItems{}, err
	}
	return out, nil
}

// List returns orders matching the filters, newest first.
func (o *OrdersClient) List(ctx context.Context, params ListOrdersParams) ([]Order, error) {
	query := url.Values{}
	if params.Status != "" {
		query.Set("status", string(params.Status))
	}
	if params.OrderType != "" {
		query.Set("order_type", string(params.OrderType))
	}
	if params.OnlyActiveSession {
		query.Set("only_active_session", "true")
	}
	if params.Limit > 0 {
		query.Set("limit", fmt.Sprint(params.Limit))
	}
	path := routes.Orders
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var out []Order
	if err := o.client.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateItems edits the lines of an open order and returns the updated order
// with its recomputed totals.
func (o *OrdersClient) UpdateItems(ctx context.Context, id int, update OrderItemsUpdate) (OrderWithItems, error) {
	var out OrderWithItems
	if err := o.client.doJSON(ctx, http.MethodPost, fmt.Sprintf("%s/%d/items", routes.Orders, id), update, &out); err != nil {
		return OrderWithItems{}, err
	}
	return out, nil
}

// UpdateStatus moves an order through the kitchen workflow.
func (o *OrdersClient) UpdateStatus(ctx context.Context, id int, status OrderStatus) (Order, error) {
	payload := struct {
		Status OrderStatus `json:"status"`
	}{Status: status}
	var out Order
	if err := o.client.doJSON(ctx, http.MethodPatch, fmt.Sprintf("%s/%d/status", routes.Orders, id), payload, &out); err != nil {
		return Order{}, err
	}
	return out, nil
}
