package domain

import "time"

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	BasePrice   float64    `json:"base_price"`
	ImageURL    string     `json:"image_url,omitempty"`
	IsFeatured  bool       `json:"is_featured"`
	Categories  []Category `json:"categories,omitempty"`
	Variants    []Variant  `json:"product_variants,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Variant struct {
	ID       string  `json:"id"`
	SKU      string  `json:"sku,omitempty"`
	Price    float64 `json:"price"`
	Color    string  `json:"color,omitempty"`
	Size     string  `json:"size,omitempty"`
	Edition  string  `json:"edition,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`
	StockQty int     `json:"stock_qty"`
}

// ProductFilter maps to the catalog's optional query parameters.
type ProductFilter struct {
	Category string
	Search   string
	Sort     string
}

// NewProduct is the multipart payload for the admin create endpoint. Variant
// rows ride along as a JSON form field; images are attached as file parts.
type NewProduct struct {
	Name        string
	Description string
	BasePrice   float64
	CategoryIDs []string
	Variants    []NewVariant
}

type NewVariant struct {
	SKU      string  `json:"sku"`
	Size     string  `json:"size,omitempty"`
	Color    string  `json:"color,omitempty"`
	Edition  string  `json:"edition,omitempty"`
	StockQty int     `json:"stock_qty"`
	Price    float64 `json:"price"`
}
