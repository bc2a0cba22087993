package api

import (
	"context"
	"net/http"

	"velora-storefront/internal/domain"
	"velora-storefront/pkg/apperr"

	"github.com/goccy/go-json"
)

type addCartRequest struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart fetches the remote cart and flattens the nested records. The total
// is the server-computed one, not a client sum.
func (c *Client) GetCart(ctx context.Context) ([]domain.CartLine, float64, error) {
	env, err := c.doEnvelope(ctx, http.MethodGet, "/api/cart", nil)
	if err != nil {
		return nil, 0, err
	}

	var rows []cartRow
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		return nil, 0, apperr.New(apperr.CodeRemote, "failed to decode cart", 0, err)
	}

	lines := make([]domain.CartLine, len(rows))
	for i, row := range rows {
		lines[i] = row.toLine()
	}
	return lines, float64(env.Total), nil
}

func (c *Client) AddCartItem(ctx context.Context, variantID string, quantity int) error {
	_, err := c.doEnvelope(ctx, http.MethodPost, "/api/cart", addCartRequest{
		VariantID: variantID,
		Quantity:  quantity,
	})
	return err
}

func (c *Client) UpdateCartItem(ctx context.Context, lineID string, quantity int) error {
	_, err := c.doEnvelope(ctx, http.MethodPut, "/api/cart/"+lineID, updateCartRequest{
		Quantity: quantity,
	})
	return err
}

func (c *Client) DeleteCartItem(ctx context.Context, lineID string) error {
	_, err := c.doEnvelope(ctx, http.MethodDelete, "/api/cart/"+lineID, nil)
	return err
}
