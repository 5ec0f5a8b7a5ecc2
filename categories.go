package sdk

import (
	"context"
	"fmt"
	"net/http"

	"github.com/comanda-pos/sdk-go/routes"
)

// Category groups menu items for the order screen.
type Category struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

// NewCategory is the creation payload.
type NewCategory struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

// CategoryUpdate carries partial updates; nil fields are left unchanged.
type CategoryUpdate struct {
	Name      *string `json:"name,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// CategoriesClient wraps the menu category endpoints.
type CategoriesClient struct {
	client *Client
}

// List returns all categories in sort order.
func (c *CategoriesClient) List(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.client.doJSON(ctx, http.MethodGet, routes.Categories, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one category by id.
func (c *CategoriesClient) Get(ctx context.Context, id int) (Category, error) {
	var out Category
	if err := c.client.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/%d", routes.Categories, id), nil, &out); err != nil {
		return Category{}, err
	}
	return out, nil
}

// Create adds a category. Requires the admin role.
func (c *CategoriesClient) Create(ctx context.Context, category NewCategory) (Category, error) {
	var out Category
	if err := c.client.doJSON(ctx, http.MethodPost, routes.Categories, category, &out); err != nil {
		return Category{}, err
	}
	return out, nil
}

// Update applies a partial update to a category.
func (c *CategoriesClient) Update(ctx context.Context, id int, update CategoryUpdate) (Category, error) {
	var out Category
	if err := c.client.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s/%d", routes.Categories, id), update, &out); err != nil {
		return Category{}, err
	}
	return out, nil
}

// Delete removes a category.
func (c *CategoriesClient) Delete(ctx context.Context, id int) error {
	return c.client.doJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", routes.Categories, id), nil, nil)
}
