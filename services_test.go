package sdk

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/comanda-pos/sdk-go/routes"
)

func TestModifiersList(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(routes.Modifiers, respondJSON(http.StatusOK, []Modifier{
		{ID: 1, Name: "Extra cheese", Price: 1.50, IsActive: true},
		{ID: 2, Name: "Garlic dip", Price: 0.80, ModifierType: "sauce", IsActive: true},
	}))
	client := newTestClient(t, backend)

	modifiers, err := client.Modifiers.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(modifiers) != 2 || modifiers[0].Name != "Extra cheese" || modifiers[1].ModifierType != "sauce" {
		t.Fatalf("modifiers = %+v", modifiers)
	}
	reqs := backend.requests(routes.Modifiers)
	if len(reqs) != 1 || reqs[0].Method != http.MethodGet {
		t.Fatalf("requests = %+v", reqs)
	}
}

func TestModifiersCreate(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(routes.Modifiers, respondJSON(http.StatusCreated, Modifier{ID: 3, Name: "Jalapenos", Price: 1.00, IsActive: true}))
	client := newTestClient(t, backend)

	created, err := client.Modifiers.Create(context.Background(), NewModifier{Name: "Jalapenos", Price: 1.00})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 3 {
		t.Fatalf("created = %+v", created)
	}
	reqs := backend.requests(routes.Modifiers)
	var body NewModifier
	if err := json.Unmarshal([]byte(reqs[0].Body), &body); err != nil || body.Name != "Jalapenos" || body.Price != 1.00 {
		t.Fatalf("request body = %q (%v)", reqs[0].Body, err)
	}
}

func TestCustomersCreate(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(routes.Customers, respondJSON(http.StatusCreated, Customer{ID: 12, Phone: "0861234567", Name: "Mary"}))
	client := newTestClient(t, backend)

	created, err := client.Customers.Create(context.Background(), NewCustomer{
		Phone:        "0861234567",
		Name:         "Mary",
		AddressLine1: "14 Laurence St",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 12 {
		t.Fatalf("created = %+v", created)
	}
	reqs := backend.requests(routes.Customers)
	if len(reqs) != 1 || reqs[0].Method != http.MethodPost {
		t.Fatalf("requests = %+v", reqs)
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(reqs[0].Body), &body); err != nil || body["phone"] != "0861234567" {
		t.Fatalf("request body = %q (%v)", reqs[0].Body, err)
	}
	// empty optional fields stay off the wire so backend defaults apply
	if _, ok := body["city"]; ok {
		t.Fatalf("empty city was serialised: %q", reqs[0].Body)
	}
}

func TestCustomersUpdate(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(routes.Customers+"/12", respondJSON(http.StatusOK, Customer{ID: 12, Phone: "0861234567", Name: "Mary", AddressLine2: "Apt 3"}))
	client := newTestClient(t, backend)

	updated, err := client.Customers.Update(context.Background(), 12, NewCustomer{
		Phone:        "0861234567",
		Name:         "Mary",
		AddressLine1: "14 Laurence St",
		AddressLine2: "Apt 3",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.AddressLine2 != "Apt 3" {
		t.Fatalf("updated = %+v", updated)
	}
	reqs := backend.requests(routes.Customers + "/12")
	if len(reqs) != 1 || reqs[0].Method != http.MethodPut {
		t.Fatalf("requests = %+v", reqs)
	}
}

func TestOrdersUpdateItems(t *testing.T) {
	backend := newFakeBackend(t)
	backend.on(routes.Orders+"/9/items", respondJSON(http.StatusOK, OrderWithItems{
		Order: Order{ID: 9, Total: 21.50},
		Items: []OrderItem{{ID: 31, OrderID: 9, ProductID: 4, Quantity: 2}},
	}))
	client := newTestClient(t, backend)

	updated, err := client.Orders.UpdateItems(context.Background(), 9, OrderItemsUpdate{
		AddItems:      []NewOrderItem{{ProductID: 4, Quantity: 2}},
		RemoveItemIDs: []int{27},
	})
	if err != nil {
		t.Fatalf("update items: %v", err)
	}
	if updated.ID != 9 || len(updated.Items) != 1 {
		t.Fatalf("updated = %+v", updated)
	}
	reqs := backend.requests(routes.Orders + "/9/items")
	if len(reqs) != 1 || reqs[0].Method != http.MethodPost {
		t.Fatalf("requests = %+v", reqs)
	}
	var body OrderItemsUpdate
	if err := json.Unmarshal([]byte(reqs[0].Body), &body); err != nil {
		t.Fatalf("request body = %q (%v)", reqs[0].Body, err)
	}
	if len(body.AddItems) != 1 || body.AddItems[0].ProductID != 4 {
		t.Fatalf("add_items = %+v", body.AddItems)
	}
	if len(body.RemoveItemIDs) != 1 || body.RemoveItemIDs[0] != 27 {
		t.Fatalf("remove_item_ids = %+v", body.RemoveItemIDs)
	}
}

func TestListSessionsStatusFilter(t *testing.T) {
	backend := newFakeBackend(t)
	var gotQuery string
	backend.on(routes.CashSessions, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		respondJSON(http.StatusOK, []CashSession{{ID: 5, Status: "closed"}})(w, r)
	})
	client := newTestClient(t, backend)

	sessions, err := client.CashRegister.ListSessions(context.Background(), ListSessionsParams{Status: "closed"})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Status != "closed" {
		t.Fatalf("sessions = %+v", sessions)
	}
	if gotQuery != "status=closed" {
		t.Fatalf("query = %q", gotQuery)
	}
}

func TestListSessionsNoFilter(t *testing.T) {
	backend := newFakeBackend(t)
	var gotQuery string
	backend.on(routes.CashSessions, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		respondJSON(http.StatusOK, []CashSession{})(w, r)
	})
	client := newTestClient(t, backend)

	if _, err := client.CashRegister.ListSessions(context.Background(), ListSessionsParams{}); err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if gotQuery != "" {
		t.Fatalf("query = %q, want none", gotQuery)
	}
}
