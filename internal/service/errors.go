package service

import "errors"

var (
	ErrEmptyCart   = errors.New("cart is empty, nothing to checkout")
	ErrBadEvent    = errors.New("malformed payment event payload")
	ErrBadMetadata = errors.New("unreadable cart correlation metadata")
)
