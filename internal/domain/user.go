package domain

type User struct {
	ID        int64     `json:"userId"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	Addresses []Address `json:"addresses,omitempty"`
}

type Owner struct {
	ID        int64  `json:"ownerId"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Roles     string `json:"roles"`
	IsAdmin   bool   `json:"isAdmin"`
}

type Address struct {
	ID            int64  `json:"addressId"`
	UserID        int64  `json:"userId"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zipCode"`
}
