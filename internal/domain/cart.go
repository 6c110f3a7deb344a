package domain

// CartItem is a client-assembled purchase line. It is never persisted on its
// own; it only becomes durable as an order line after payment confirmation.
type CartItem struct {
	ProductID          int64   `json:"productId"`
	StoreID            int64   `json:"storeId"`
	Quantity           int     `json:"quantity"`
	Price              float64 `json:"price"`
	ProductName        string  `json:"productName,omitempty"`
	ProductDescription string  `json:"productDescription,omitempty"`
	Image              string  `json:"image,omitempty"`
}

// CartMetadataVersion is the current correlation payload format. Bump it when
// the shape changes so stale sessions fail decoding loudly instead of
// producing half-read carts.
const CartMetadataVersion = 1

// CartMetadata is the correlation payload attached to a checkout session and
// echoed back inside the payment confirmation event.
type CartMetadata struct {
	Version int        `json:"v"`
	UserID  *int64     `json:"userId,omitempty"`
	Items   []CartItem `json:"items"`
}
