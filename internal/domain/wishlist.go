package domain

// WishlistEntry mirrors CartLine without quantity or stock.
type WishlistEntry struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	VariantID   string  `json:"variant_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
	Color       string  `json:"color,omitempty"`
	Size        string  `json:"size,omitempty"`
	Edition     string  `json:"edition,omitempty"`
}

// Matches reports whether any of the entry's identifiers equals the
// candidate. Call sites pass entry, variant, or product IDs interchangeably,
// so the match is deliberately loose.
func (e WishlistEntry) Matches(candidateID string) bool {
	return e.ID == candidateID || e.VariantID == candidateID || e.ProductID == candidateID
}
