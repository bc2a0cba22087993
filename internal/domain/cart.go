package domain

// CartLine is the client view of one cart row, denormalized from the remote's
// nested variant/product records.
type CartLine struct {
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
	Quantity    int     `json:"quantity"`
	StockQty    int     `json:"stock_qty"`
}

func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// CartDocument is the persisted shape of an anonymous cart.
type CartDocument struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
}

// CartTotal sums price x quantity over the lines.
func CartTotal(lines []CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

// CartCount sums the quantities over the lines.
func CartCount(lines []CartLine) int {
	var count int
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}
