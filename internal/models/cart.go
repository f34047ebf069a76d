package models

// CartItem is a cart line with the product data snapshotted when it was added.
type CartItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	SalePrice *int64 `json:"sale_price,omitempty"`
	Image     string `json:"image,omitempty"`
	Quantity  int32  `json:"quantity"`
}

// UnitPrice returns the price charged per unit: the promotional price when
// present, the regular price otherwise.
func (ci CartItem) UnitPrice() int64 {
	if ci.SalePrice != nil {
		return *ci.SalePrice
	}
	return ci.Price
}

// CartTotal sums unit price times quantity over items.
func CartTotal(items []CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.UnitPrice() * int64(item.Quantity)
	}
	return total
}
