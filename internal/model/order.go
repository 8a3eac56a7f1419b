package model

// OrderStatus is the display status of a submitted order.
// Orders are created as StatusPending; no automated transitions exist.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusConfirmed OrderStatus = "Confirmed"
	StatusPreparing OrderStatus = "Preparing"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

// IsValid reports whether s is one of the known order statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CustomerInfo is the captured order-form snapshot.
type CustomerInfo struct {
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	Address             string `json:"address"`
	City                string `json:"city"`
	ZipCode             string `json:"zipCode,omitempty"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

// OrderPayload is what a submission hands to the order history store: the
// ordered items in one of two shapes plus the customer snapshot. Cart orders
// carry CartItems; single-item orders carry FoodItem and Quantity.
type OrderPayload struct {
	CartItems    []CartLine   `json:"cartItems,omitempty"`
	FoodItem     *MenuItem    `json:"foodItem,omitempty"`
	Quantity     int          `json:"quantity,omitempty"`
	CustomerInfo CustomerInfo `json:"customerInfo"`
}

// OrderRecord is one entry in the append-only order history. Records are
// stamped at append time and never mutated afterwards.
type OrderRecord struct {
	ID     string      `json:"id"`
	Date   string      `json:"date"` // RFC 3339
	Status OrderStatus `json:"status"`
	OrderPayload
}
