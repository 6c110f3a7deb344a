package domain

import "time"

type Store struct {
	ID          int64        `json:"storeId"`
	OwnerID     int64        `json:"ownerId"`
	Name        string       `json:"storeName"`
	Logo        string       `json:"logo"`
	ColorScheme string       `json:"colorScheme"`
	SiteFont    string       `json:"siteFont"`
	Products    []Product    `json:"products,omitempty"`
	Categories  []Category   `json:"categories,omitempty"`
	Promotions  []Promotion  `json:"promotions,omitempty"`
	Orders      []OrderBrief `json:"orders,omitempty"`
}

type Promotion struct {
	ID           int64     `json:"promId"`
	StoreID      int64     `json:"storeId"`
	Description  string    `json:"description"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	DiscountRate float64   `json:"discountRate"`
}

// OrderBrief is the store-dashboard summary row, without line items.
type OrderBrief struct {
	ID        int64       `json:"id"`
	OrderDate time.Time   `json:"date"`
	Status    OrderStatus `json:"status"`
	Total     float64     `json:"total"`
}

type Carousel struct {
	ID             int64  `json:"id"`
	StoreID        int64  `json:"storeId"`
	ImageOne       string `json:"imageOne"`
	ImageOneHeader string `json:"imageOneHeader"`
	ImageOneText   string `json:"imageOneText"`
	ImageTwo       string `json:"imageTwo"`
	ImageTwoHeader string `json:"imageTwoHeader"`
	ImageTwoText   string `json:"imageTwoText"`
}
