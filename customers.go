package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/comanda-pos/sdk-go/routes"
)

// Customer is a delivery or collection customer record.
type Customer struct {
	ID           int     `json:"id"`
	Phone        string  `json:"phone"`
	Name         string  `json:"name"`
	Email        string  `json:"email,omitempty"`
	AddressLine1 string  `json:"address_line1,omitempty"`
	AddressLine2 string  `json:"address_line2,omitempty"`
	City         string  `json:"city,omitempty"`
	County       string  `json:"county,omitempty"`
	Eircode      string  `json:"eircode,omitempty"`
	Country      string  `json:"country,omitempty"`
	Latitude     float64 `json:"latitude,omitempty"`
	Longitude    float64 `json:"longitude,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// NewCustomer is the creation and update payload. City, county, and country
// default server-side to the restaurant's delivery area when left empty.
type NewCustomer struct {
	Phone        string   `json:"phone"`
	Name         string   `json:"name"`
	Email        string   `json:"email,omitempty"`
	AddressLine1 string   `json:"address_line1,omitempty"`
	AddressLine2 string   `json:"address_line2,omitempty"`
	City         string   `json:"city,omitempty"`
	County       string   `json:"county,omitempty"`
	Eircode      string   `json:"eircode,omitempty"`
	Country      string   `json:"country,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

// CustomerMatch is the phone lookup result.
type CustomerMatch struct {
	Found    bool      `json:"found"`
	Customer *Customer `json:"customer,omitempty"`
}

// ListCustomersParams filters the customer listing.
type ListCustomersParams struct {
	// Search matches against name and phone.
	Search string
	// Limit caps the result count; the backend defaults to 100.
	Limit int
}

// CustomersClient wraps the customer endpoints.
type CustomersClient struct {
	client *Client
}

// List returns customers matching the filters.
func (c *CustomersClient) List(ctx context.Context, params ListCustomersParams) ([]Customer, error) {
	query := url.Values{}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Limit > 0 {
		query.Set("limit", fmt.Sprint(params.Limit))
	}
	path := routes.Customers
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var out []Customer
	if err := c.client.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create registers a new delivery customer.
func (c *CustomersClient) Create(ctx context.Context, customer NewCustomer) (Customer, error) {
	var out Customer
	if err := c.client.doJSON(ctx, http.MethodPost, routes.Customers, customer, &out); err != nil {
		return Customer{}, err
	}
	return out, nil
}

// Update replaces a customer record, typically to correct the delivery
// address on a repeat call.
func (c *CustomersClient) Update(ctx context.Context, id int, customer NewCustomer) (Customer, error) {
	var out Customer
	if err := c.client.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s/%d", routes.Customers, id), customer, &out); err != nil {
		return Customer{}, err
	}
	return out, nil
}

// SearchByPhone looks up the customer on an incoming call's number.
func (c *CustomersClient) SearchByPhone(ctx context.Context, phone string) (CustomerMatch, error) {
	path := fmt.Sprintf("%s/search-by-phone/%s", routes.Customers, url.PathEscape(phone))
	var out CustomerMatch
	if err := c.client.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return CustomerMatch{}, err
	}
	return out, nil
}
