package sdk

import "fmt"

// NewOrderRequest constructs a validated order payload with the required
// fields set.
func NewOrderRequest(customerID int, orderType OrderType, items []NewOrderItem) (NewOrder, error) {
	return NewOrderBuilder(customerID).Type(orderType).Items(items).Build()
}

// OrderBuilder provides a fluent builder with validation, for assembling an
// order from a cart one line at a time.
type OrderBuilder struct {
	req NewOrder
}

// NewOrderBuilder seeds the builder with a customer id.
func NewOrderBuilder(customerID int) *OrderBuilder {
	return &OrderBuilder{
		req: NewOrder{CustomerID: customerID},
	}
}

// Type sets the order type.
func (b *OrderBuilder) Type(orderType OrderType) *OrderBuilder {
	b.req.OrderType = orderType
	return b
}

// Item appends an order line.
func (b *OrderBuilder) Item(productID, quantity int) *OrderBuilder {
	b.req.Items = append(b.req.Items, NewOrderItem{ProductID: productID, Quantity: quantity})
	return b
}

// ItemWithNotes appends an order line with kitchen notes.
func (b *OrderBuilder) ItemWithNotes(productID, quantity int, notes string) *OrderBuilder {
	b.req.Items = append(b.req.Items, NewOrderItem{ProductID: productID, Quantity: quantity, Notes: notes})
	return b
}

// Items replaces the existing line list.
func (b *OrderBuilder) Items(items []NewOrderItem) *OrderBuilder {
	b.req.Items = items
	return b
}

// Notes sets order-level notes.
func (b *OrderBuilder) Notes(notes string) *OrderBuilder {
	b.req.Notes = notes
	return b
}

// PhoneLine records which phone line took the order (1-4).
func (b *OrderBuilder) PhoneLine(line int) *OrderBuilder {
	b.req.PhoneLine = line
	return b
}

// DeliveryFee sets the delivery charge.
func (b *OrderBuilder) DeliveryFee(fee float64) *OrderBuilder {
	b.req.DeliveryFee = fee
	return b
}

// Status presets the initial workflow status; the backend defaults to
// pending when unset.
func (b *OrderBuilder) Status(status OrderStatus) *OrderBuilder {
	b.req.Status = status
	return b
}

// Build validates and returns the payload.
func (b *OrderBuilder) Build() (NewOrder, error) {
	if b.req.CustomerID <= 0 {
		return NewOrder{}, fmt.Errorf("customer id is required")
	}
	if b.req.OrderType == "" {
		return NewOrder{}, fmt.Errorf("order type is required")
	}
	if len(b.req.Items) == 0 {
		return NewOrder{}, fmt.Errorf("at least one item is required")
	}
	for _, item := range b.req.Items {
		if item.ProductID <= 0 {
			return NewOrder{}, fmt.Errorf("item product id is required")
		}
		if item.Quantity <= 0 {
			return NewOrder{}, fmt.Errorf("item quantity must be positive")
		}
	}
	if b.req.PhoneLine < 0 || b.req.PhoneLine > 4 {
		return NewOrder{}, fmt.Errorf("phone line must be between 1 and 4")
	}
	if b.req.DeliveryFee < 0 {
		return NewOrder{}, fmt.Errorf("delivery fee must be non-negative")
	}
	return b.req, nil
}
