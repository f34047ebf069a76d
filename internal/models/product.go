package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is catalog entity. Prices are integer currency units (CLP).
// SalePrice, when set, is the promotional price shown and charged.
type Product struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description *string
	Price       int64
	SalePrice   *int64
	Stock       int32
	Images      []string
	CategoryID  uuid.UUID
	Featured    bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// ProductFilter narrows catalog listing.
type ProductFilter struct {
	CategoryID *uuid.UUID
	Limit      int
	Page       int
	SortBy     string
	Order      string
}

// Category is catalog category entity
type Category struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description *string
	ImageURL    *string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
