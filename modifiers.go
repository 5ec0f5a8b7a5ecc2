package sdk

import (
	"context"
	"net/http"

	"github.com/comanda-pos/sdk-go/routes"
)

// Modifier is an add-on applied to an order line (extra toppings, sauces,
// "no onion" style options priced per unit).
type Modifier struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	ModifierType string  `json:"modifier_type,omitempty"`
	IsActive     bool    `json:"is_active"`
}

// NewModifier is the creation payload.
type NewModifier struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ModifiersClient wraps the order modifier endpoints.
type ModifiersClient struct {
	client *Client
}

// List returns all modifiers in name order.
func (m *ModifiersClient) List(ctx context.Context) ([]Modifier, error) {
	var out []Modifier
	if err := m.client.doJSON(ctx, http.MethodGet, routes.Modifiers, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create adds a modifier. Requires the admin role.
func (m *ModifiersClient) Create(ctx context.Context, modifier NewModifier) (Modifier, error) {
	var out Modifier
	if err := m.client.doJSON(ctx, http.MethodPost, routes.Modifiers, modifier, &out); err != nil {
		return Modifier{}, err
	}
	return out, nil
}
