package domain

import "time"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderAccepted  OrderStatus = "accepted"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Address represents a shipping address owned by a user.
type Address struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	ZipCode  string `json:"zip_code"`
}

// OrderItem is a single product line within an order.
type OrderItem struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Quantity     int     `json:"quantity"`
	Discount     float64 `json:"discount"`
	OrderedPrice float64 `json:"ordered_price"`
}

// Payment captures how an order was paid for.
type Payment struct {
	Method        string `json:"method"`
	GatewayID     string `json:"gateway_id,omitempty"`
	GatewayStatus string `json:"gateway_status,omitempty"`
}

// Order is the purchase aggregate: items and payment are embedded, the
// shipping address is referenced by ID.
type Order struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Username    string      `json:"username"`
	Items       []OrderItem `json:"items"`
	Payment     Payment     `json:"payment"`
	AddressID   string      `json:"address_id"`
	TotalAmount float64     `json:"total_amount"`
	Status      OrderStatus `json:"status"`
	OrderDate   time.Time   `json:"order_date"`
}
