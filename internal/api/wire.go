package api

import (
	"bytes"
	"strconv"

	"velora-storefront/internal/domain"

	"github.com/goccy/go-json"
)

// ID tolerates both string and numeric identifiers on the wire. The remote
// mixes the two across resources.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Money tolerates prices sent as JSON numbers or numeric strings.
type Money float64

func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*m = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*m = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*m = Money(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*m = Money(f)
	return nil
}

// --- Nested wire records ---
//
// Cart and wishlist list responses nest the variant and product records; the
// client flattens them into the denormalized view models.

type productRecord struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type variantRecord struct {
	ID       ID            `json:"id"`
	Price    Money         `json:"price"`
	Color    string        `json:"color"`
	Size     string        `json:"size"`
	Edition  string        `json:"edition"`
	StockQty int           `json:"stock_qty"`
	Product  productRecord `json:"products"`
}

type cartRow struct {
	ID       ID            `json:"id"`
	Quantity int           `json:"quantity"`
	Variant  variantRecord `json:"product_variants"`
}

func (r cartRow) toLine() domain.CartLine {
	return domain.CartLine{
		ID:          string(r.ID),
		ProductID:   string(r.Variant.Product.ID),
		VariantID:   string(r.Variant.ID),
		Name:        r.Variant.Product.Name,
		Description: r.Variant.Product.Description,
		Price:       float64(r.Variant.Price),
		ImageURL:    r.Variant.Product.ImageURL,
		Color:       r.Variant.Color,
		Size:        r.Variant.Size,
		Edition:     r.Variant.Edition,
		Quantity:    r.Quantity,
		StockQty:    r.Variant.StockQty,
	}
}

type wishlistRow struct {
	ID      ID            `json:"id"`
	Variant variantRecord `json:"product_variants"`
}

func (r wishlistRow) toEntry() domain.WishlistEntry {
	return domain.WishlistEntry{
		ID:          string(r.ID),
		ProductID:   string(r.Variant.Product.ID),
		VariantID:   string(r.Variant.ID),
		Name:        r.Variant.Product.Name,
		Description: r.Variant.Product.Description,
		Price:       float64(r.Variant.Price),
		ImageURL:    r.Variant.Product.ImageURL,
		Color:       r.Variant.Color,
		Size:        r.Variant.Size,
		Edition:     r.Variant.Edition,
	}
}
