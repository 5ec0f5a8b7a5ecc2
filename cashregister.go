package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/comanda-pos/sdk-go/routes"
)

// PaymentType distinguishes how an order was settled.
type PaymentType string

const (
	PaymentTypeCash  PaymentType = "cash"
	PaymentTypeCard  PaymentType = "card"
	PaymentTypeMixed PaymentType = "mixed"
)

// CashSession is one register open/close cycle. Expected amount and
// difference are computed server-side at close.
type CashSession struct {
	ID             int        `json:"id"`
	UserID         int        `json:"user_id"`
	Status         string     `json:"status"`
	OpeningAmount  float64    `json:"opening_amount"`
	ClosingAmount  *float64   `json:"closing_amount,omitempty"`
	ExpectedAmount *float64   `json:"expected_amount,omitempty"`
	Difference     *float64   `json:"difference,omitempty"`
	TotalCashSales float64    `json:"total_cash_sales"`
	TotalCardSales float64    `json:"total_card_sales"`
	TotalSales     float64    `json:"total_sales"`
	TotalTips      float64    `json:"total_tips"`
	OrdersCount    int        `json:"orders_count"`
	OpenedAt       time.Time  `json:"opened_at"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// OpenCashSession is the register opening payload.
type OpenCashSession struct {
	OpeningAmount float64 `json:"opening_amount"`
	UserID        int     `json:"user_id"`
	Notes         string  `json:"notes,omitempty"`
}

// CloseCashSession is the register closing payload: the counted drawer
// amount, against which the backend computes the difference.
type CloseCashSession struct {
	ClosingAmount float64 `json:"closing_amount"`
	Notes         string  `json:"notes,omitempty"`
}

// NewPayment records a payment for an order against the active session.
type NewPayment struct {
	OrderID     int         `json:"order_id"`
	PaymentType PaymentType `json:"payment_type"`
	CashAmount  float64     `json:"cash_amount"`
	CardAmount  float64     `json:"card_amount"`
	TipAmount   float64     `json:"tip_amount"`
}

// Payment is a recorded payment with the change computed server-side.
type Payment struct {
	ID           int       `json:"id"`
	OrderID      int       `json:"order_id"`
	PaymentType  string    `json:"payment_type"`
	TotalAmount  float64   `json:"total_amount"`
	CashAmount   float64   `json:"cash_amount"`
	CardAmount   float64   `json:"card_amount"`
	TipAmount    float64   `json:"tip_amount"`
	ChangeAmount float64   `json:"change_amount"`
	CreatedAt    time.Time `json:"created_at"`
}

// CashSessionSummary is the close-out view of a session.
type CashSessionSummary struct {
	SessionID      int       `json:"session_id"`
	OpeningAmount  float64   `json:"opening_amount"`
	TotalCashSales float64   `json:"total_cash_sales"`
	TotalCardSales float64   `json:"total_card_sales"`
	TotalTips      float64   `json:"total_tips"`
	ExpectedCash   float64   `json:"expected_cash"`
	OrdersCount    int       `json:"orders_count"`
	Payments       []Payment `json:"payments"`
}

// CashRegisterClient wraps the register session and payment endpoints.
type CashRegisterClient struct {
	client *Client
}

// OpenSession opens the register for the day.
func (c *CashRegisterClient) OpenSession(ctx context.Context, open OpenCashSession) (CashSession, error) {
	var out CashSession
	if err := c.client.doJSON(ctx, http.MethodPost, routes.CashSessions, open, &out); err != nil {
		return CashSession{}, err
	}
	return out, nil
}

// ActiveSession returns the currently open session, if any. The ok result
// is false when no session is open.
func (c *CashRegisterClient) ActiveSession(ctx context.Context) (CashSession, bool, error) {
	var out *CashSession
	if err := c.client.doJSON(ctx, http.MethodGet, routes.CashSessions+"/active", nil, &out); err != nil {
		return CashSession{}, false, err
	}
	if out == nil {
		return CashSession{}, false, nil
	}
	return *out, true, nil
}

// Session returns one session by id.
func (c *CashRegisterClient) Session(ctx context.Context, id int) (CashSession, error) {
	var out CashSession
	if err := c.client.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/%d", routes.CashSessions, id), nil, &out); err != nil {
		return CashSession{}, err
	}
	return out, nil
}

// Summary returns the close-out view of a session.
func (c *CashRegisterClient) Summary(ctx context.Context, id int) (CashSessionSummary, error) {
	var out CashSessionSummary
	if err := c.client.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/%d/summary", routes.CashSessions, id), nil, &out); err != nil {
		return CashSessionSummary{}, err
	}
	return out, nil
}

// CloseSession closes a session with the counted drawer amount.
func (c *CashRegisterClient) CloseSession(ctx context.Context, id int, close CloseCashSession) (CashSession, error) {
	var out CashSession
	if err := c.client.doJSON(ctx, http.MethodPost, fmt.Sprintf("%s/%d/close", routes.CashSessions, id), close, &out); err != nil {
		return CashSession{}, err
	}
	return out, nil
}

// ListSessionsParams filters the session listing.
type ListSessionsParams struct {
	// Status restricts to "open" or "closed" sessions when set.
	Status string
}

// ListSessions returns past sessions, newest first.
func (c *CashRegisterClient) ListSessions(ctx context.Context, params ListSessionsParams) ([]CashSession, error) {
	path := routes.CashSessions
	if params.Status != "" {
		path += "?status=" + url.QueryEscape(params.Status)
	}
	var out []CashSession
	if err := c.client.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePayment records a payment for an order.
func (c *CashRegisterClient) CreatePayment(ctx context.Context, payment NewPayment) (Payment, error) {
	var out Payment
	if err := c.client.doJSON(ctx, http.MethodPost, routes.CashPayments, payment, &out); err != nil {
		return Payment{}, err
	}
	return out, nil
}

// PaymentForOrder returns the payment recorded for an order, if any.
func (c *CashRegisterClient) PaymentForOrder(ctx context.Context, orderID int) (Payment, bool, error) {
	var out *Payment
	if err := c.client.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/order/%d", routes.CashPayments, orderID), nil, &out); err != nil {
		return Payment{}, false, err
	}
	if out == nil {
		return Payment{}, false, nil
	}
	return *out, true, nil
}
