package sdk

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/comanda-pos/sdk-go/routes"
)

// Table is a floor-plan table with its position and current occupation.
type Table struct {
	ID          int              `json:"id"`
	TableNumber int              `json:"table_number"`
	IsOccupied  bool             `json:"is_occupied"`
	X           int              `json:"x"`
	Y           int              `json:"y"`
	ActiveOrder *ActiveOrderInfo `json:"active_order,omitempty"`
}

// ActiveOrderInfo summarises the order currently seated at a table.
type ActiveOrderInfo struct {
	ID           int       `json:"id"`
	CustomerName string    `json:"customer_name,omitempty"`
	Total        float64   `json:"total"`
	CreatedAt    time.Time `json:"created_at"`
	TimeElapsed  string    `json:"time_elapsed,omitempty"`
}

// NewTable is the creation payload.
type NewTable struct {
	TableNumber int `json:"table_number"`
	X           int `json:"x"`
	Y           int `json:"y"`
}

// TablesClient wraps the floor-plan endpoints.
type TablesClient struct {
	client *Client
}

// List returns every table with its occupation state.
func (t *TablesClient) List(ctx context.Context) ([]Table, error) {
	var out []Table
	if err := t.client.doJSON(ctx, http.MethodGet, routes.Tables, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create adds a table to the floor plan.
func (t *TablesClient) Create(ctx context.Context, table NewTable) (Table, error) {
	var out Table
	if err := t.client.doJSON(ctx, http.MethodPost, routes.Tables, table, &out); err != nil {
		return Table{}, err
	}
	return out, nil
}

// UpdateStatus marks a table occupied or free.
func (t *TablesClient) UpdateStatus(ctx context.Context, id int, occupied bool) error {
	payload := struct {
		IsOccupied bool `json:"is_occupied"`
	}{IsOccupied: occupied}
	return t.client.doJSON(ctx, http.MethodPatch, fmt.Sprintf("%s/%d/status", routes.Tables, id), payload, nil)
}

// UpdatePosition moves a table on the floor plan.
func (t *TablesClient) UpdatePosition(ctx context.Context, id, x, y int) error {
	payload := struct {
		X int `json:"x"`
		Y int `json:"y"`
	}{X: x, Y: y}
	return t.client.doJSON(ctx, http.MethodPatch, fmt.Sprintf("%s/%d/position", routes.Tables, id), payload, nil)
}
