package model

// Product is a store catalog entry. Name and description are translation
// keys so the storefront can render in any supported language.
// swagger:model Product
type Product struct {
	UUIDBase
	NameKey        string  `gorm:"size:100;not null" json:"nameKey"`
	DescriptionKey string  `gorm:"size:100;not null" json:"descriptionKey"`
	Price          float64 `gorm:"not null" json:"price"`
	ImageURL       string  `gorm:"size:512" json:"imageUrl"`
	Enabled        bool    `gorm:"default:true" json:"enabled"`
}

func (Product) TableName() string {
	return "products"
}

// CartLine is one quantity-bearing cart entry. Carts live in Redis, not in
// MySQL, so this is a plain JSON struct without gorm tags.
type CartLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartSummary is a cart plus its derived totals. Totals are always folded
// from the lines on the way out, never stored.
type CartSummary struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice float64    `json:"totalPrice"`
}

// CartItem joins a cart line with its catalog product for display.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}
