package models

import "errors"

var (
	ErrConflictData       = errors.New("data conflicts with existing data")
	ErrDataNotFound       = errors.New("data not found")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrMissingToken       = errors.New("token is required")
	ErrMissingAmount      = errors.New("amount is required")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidProduct     = errors.New("invalid product data")
	ErrInvalidCategory    = errors.New("invalid category data")
	ErrInvalidSetting     = errors.New("invalid setting data")
	ErrForbidden          = errors.New("operation is not permitted")
	ErrInternalError      = errors.New("internal error")
)
