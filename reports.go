package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/comanda-pos/sdk-go/routes"
)

// DailySalesSummary aggregates one day's orders.
type DailySalesSummary struct {
	TotalOrders     int     `json:"total_orders"`
	TotalSales      float64 `json:"total_sales"`
	AverageTicket   float64 `json:"average_ticket"`
	TotalTax        float64 `json:"total_tax"`
	CompletedOrders int     `json:"completed_orders"`
	CancelledOrders int     `json:"cancelled_orders"`
}

// OrderTypeBreakdown is one order type's share of a day.
type OrderTypeBreakdown struct {
	OrderType OrderType `json:"order_type"`
	Count     int       `json:"count"`
	Total     float64   `json:"total"`
}

// DailySalesReport is the daily-sales response.
type DailySalesReport struct {
	Date        string               `json:"date"`
	Summary     DailySalesSummary    `json:"summary"`
	ByOrderType []OrderTypeBreakdown `json:"by_order_type"`
}

// TopProduct ranks one product by quantity sold.
type TopProduct struct {
	ProductID    int     `json:"product_id"`
	Name         string  `json:"name"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// RevenueBucket is one period's revenue in the revenue-by-period report.
type RevenueBucket struct {
	Period  string  `json:"period"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// ReportsClient wraps the sales reporting endpoints. All of them require the
// admin or manager role; other roles get a 403 APIError.
type ReportsClient struct {
	client *Client
}

// DailySales returns the sales aggregate for a date (YYYY-MM-DD), or for
// today when date is empty.
func (r *ReportsClient) DailySales(ctx context.Context, date string) (DailySalesReport, error) {
	path := routes.ReportsDailySales
	if date != "" {
		path += "?report_date=" + url.QueryEscape(date)
	}
	var out DailySalesReport
	if err := r.client.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return DailySalesReport{}, err
	}
	return out, nil
}

// TopProducts ranks products by quantity sold over the last n days.
func (r *ReportsClient) TopProducts(ctx context.Context, days, limit int) ([]TopProduct, error) {
	query := url.Values{}
	if days > 0 {
		query.Set("days", fmt.Sprint(days))
	}
	if limit > 0 {
		query.Set("limit", fmt.Sprint(limit))
	}
	path := routes.ReportsTopProducts
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var out []TopProduct
	if err := r.client.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RevenueByPeriod buckets revenue by "day", "week", or "month".
func (r *ReportsClient) RevenueByPeriod(ctx context.Context, period string) ([]RevenueBucket, error) {
	path := routes.ReportsRevenueByPeriod
	if period != "" {
		path += "?period=" + url.QueryEscape(period)
	}
	var out []RevenueBucket
	if err := r.client.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
