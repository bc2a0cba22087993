package api

import (
	"context"
	"net/http"

	"velora-storefront/internal/domain"
	"velora-storefront/pkg/apperr"

	"github.com/goccy/go-json"
)

type addWishlistRequest struct {
	VariantID string `json:"variant_id"`
}

func (c *Client) GetWishlist(ctx context.Context) ([]domain.WishlistEntry, error) {
	env, err := c.doEnvelope(ctx, http.MethodGet, "/api/wishlist", nil)
	if err != nil {
		return nil, err
	}

	var rows []wishlistRow
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		return nil, apperr.New(apperr.CodeRemote, "failed to decode wishlist", 0, err)
	}

	entries := make([]domain.WishlistEntry, len(rows))
	for i, row := range rows {
		entries[i] = row.toEntry()
	}
	return entries, nil
}

// AddWishlistItem posts the variant and returns the entry the remote created,
// with its authoritative fields.
func (c *Client) AddWishlistItem(ctx context.Context, variantID string) (domain.WishlistEntry, error) {
	env, err := c.doEnvelope(ctx, http.MethodPost, "/api/wishlist", addWishlistRequest{VariantID: variantID})
	if err != nil {
		return domain.WishlistEntry{}, err
	}

	var row wishlistRow
	if err := json.Unmarshal(env.Data, &row); err != nil {
		return domain.WishlistEntry{}, apperr.New(apperr.CodeRemote, "failed to decode wishlist entry", 0, err)
	}
	return row.toEntry(), nil
}

func (c *Client) DeleteWishlistItem(ctx context.Context, entryID string) error {
	_, err := c.doEnvelope(ctx, http.MethodDelete, "/api/wishlist/"+entryID, nil)
	return err
}
