package domain

type Product struct {
	ID          int64   `json:"productId"`
	StoreID     int64   `json:"storeId"`
	CategoryID  int64   `json:"categoryId"`
	Name        string  `json:"productName"`
	Description string  `json:"productDescription"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	QtyInStock  int     `json:"qty"`
}

// ProductFilter narrows store product listings.
type ProductFilter struct {
	Search   string
	MinPrice *float64
	MaxPrice *float64
}

type Category struct {
	ID       int64     `json:"categoryId"`
	StoreID  int64     `json:"storeId"`
	Name     string    `json:"categoryName"`
	Products []Product `json:"products,omitempty"`
}
