package repository

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrStoreNotFound     = errors.New("store not found")
	ErrCarouselNotFound  = errors.New("carousel not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrOwnerNotFound     = errors.New("owner not found")
	ErrAddressNotFound   = errors.New("address not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateStore    = errors.New("store name already exists")
)
