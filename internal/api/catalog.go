package api

import (
	"context"
	"net/http"
	"net/url"

	"velora-storefront/internal/domain"
	"velora-storefront/pkg/apperr"

	"github.com/goccy/go-json"
)

// Products lists the catalog with optional category/search/sort filters.
func (c *Client) Products(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	params := url.Values{}
	if filter.Category != "" {
		params.Set("category", filter.Category)
	}
	if filter.Search != "" {
		params.Set("search", filter.Search)
	}
	if filter.Sort != "" {
		params.Set("sort", filter.Sort)
	}

	path := "/api/products"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	env, err := c.doEnvelope(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(env.Data, &products); err != nil {
		return nil, apperr.New(apperr.CodeRemote, "failed to decode products", 0, err)
	}
	return products, nil
}

func (c *Client) ProductByID(ctx context.Context, id string) (domain.Product, error) {
	env, err := c.doEnvelope(ctx, http.MethodGet, "/api/products/"+id, nil)
	if err != nil {
		return domain.Product{}, err
	}

	var product domain.Product
	if err := json.Unmarshal(env.Data, &product); err != nil {
		return domain.Product{}, apperr.New(apperr.CodeRemote, "failed to decode product", 0, err)
	}
	return product, nil
}

func (c *Client) FeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	env, err := c.doEnvelope(ctx, http.MethodGet, "/api/products/featured", nil)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(env.Data, &products); err != nil {
		return nil, apperr.New(apperr.CodeRemote, "failed to decode featured products", 0, err)
	}
	return products, nil
}

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	env, err := c.doEnvelope(ctx, http.MethodGet, "/api/categories", nil)
	if err != nil {
		return nil, err
	}

	var categories []domain.Category
	if err := json.Unmarshal(env.Data, &categories); err != nil {
		return nil, apperr.New(apperr.CodeRemote, "failed to decode categories", 0, err)
	}
	return categories, nil
}
