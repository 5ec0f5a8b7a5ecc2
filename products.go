package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/comanda-pos/sdk-go/routes"
)

// Product is a sellable menu item. Category name is filled on reads that
// join the category table.
type Product struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	CategoryID    int       `json:"category_id"`
	Price         float64   `json:"price"`
	Description   string    `json:"description,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	IsAvailable   bool      `json:"is_available"`
	SortOrder     int       `json:"sort_order"`
	StockQuantity int       `json:"stock_quantity"`
	CategoryName  string    `json:"category_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewProduct is the creation payload.
type NewProduct struct {
	Name          string  `json:"name"`
	CategoryID    int     `json:"category_id"`
	Price         float64 `json:"price"`
	Description   string  `json:"description,omitempty"`
	ImageURL      string  `json:"image_url,omitempty"`
	IsAvailable   bool    `json:"is_available"`
	SortOrder     int     `json:"sort_order"`
	StockQuantity int     `json:"stock_quantity"`
}

// ProductUpdate carries partial updates; nil fields are left unchanged.
type ProductUpdate struct {
	Name          *string  `json:"name,omitempty"`
	CategoryID    *int     `json:"category_id,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Description   *string  `json:"description,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty"`
	IsAvailable   *bool    `json:"is_available,omitempty"`
	SortOrder     *int     `json:"sort_order,omitempty"`
	StockQuantity *int     `json:"stock_quantity,omitempty"`
}

// ListProductsParams filters the product listing.
type ListProductsParams struct {
	// CategoryID restricts to one category when > 0.
	CategoryID int
	// IncludeUnavailable also returns items flagged off the menu.
	IncludeUnavailable bool
}

// ProductsClient wraps the menu item endpoints.
type ProductsClient struct {
	client *Client
}

// List returns menu items, available-only by default.
func (p *ProductsClient) List(ctx context.Context, params ListProductsParams) ([]Product, error) {
	query := url.Values{}
	if params.CategoryID > 0 {
		query.Set("category_id", fmt.Sprint(params.CategoryID))
	}
	if params.IncludeUnavailable {
		query.Set("available_only", "false")
	}
	path := routes.Products
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var out []Product
	if err := p.client.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one product by id.
func (p *ProductsClient) Get(ctx context.Context, id int) (Product, error) {
	var out Product
	if err := p.client.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/%d", routes.Products, id), nil, &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

// Create adds a menu item. Requires the admin role.
func (p *ProductsClient) Create(ctx context.Context, product NewProduct) (Product, error) {
	var out Product
	if err := p.client.doJSON(ctx, http.MethodPost, routes.Products, product, &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

// Update applies a partial update to a menu item.
func (p *ProductsClient) Update(ctx context.Context, id int, update ProductUpdate) (Product, error) {
	var out Product
	if err := p.client.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s/%d", routes.Products, id), update, &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

// Delete removes a menu item.
func (p *ProductsClient) Delete(ctx context.Context, id int) error {
	return p.client.doJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", routes.Products, id), nil, nil)
}
