package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusFailed    OrderStatus = "failed"
)

type Order struct {
	ID         int64       `json:"id"`
	StoreID    int64       `json:"storeId"`
	UserID     *int64      `json:"userId"`
	Username   string      `json:"username"`
	OrderTotal float64     `json:"orderTotal"`
	Status     OrderStatus `json:"orderStatus"`
	OrderDate  time.Time   `json:"orderDate"`
	Lines      []OrderLine `json:"orderLines"`
}

// OrderLine snapshots price and quantity at purchase time. ProductName and
// Image are the product's current attributes, filled in on read for display.
type OrderLine struct {
	ID          int64   `json:"id"`
	StoreID     int64   `json:"storeId"`
	ProductID   int64   `json:"productId"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"qty"`
	ProductName string  `json:"productName,omitempty"`
	Image       string  `json:"image,omitempty"`
}
