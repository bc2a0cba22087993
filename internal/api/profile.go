package api

import (
	"context"
	"net/http"

	"velora-storefront/internal/domain"
	"velora-storefront/pkg/apperr"

	"github.com/goccy/go-json"
)

func (c *Client) Profile(ctx context.Context) (domain.Profile, error) {
	env, err := c.doEnvelope(ctx, http.MethodGet, "/api/profile", nil)
	if err != nil {
		return domain.Profile{}, err
	}

	var profile domain.Profile
	if err := json.Unmarshal(env.Data, &profile); err != nil {
		return domain.Profile{}, apperr.New(apperr.CodeRemote, "failed to decode profile", 0, err)
	}
	return profile, nil
}

type updateProfileRequest struct {
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar_url,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, name, avatar string) (domain.Profile, error) {
	env, err := c.doEnvelope(ctx, http.MethodPut, "/api/profile", updateProfileRequest{
		Name:   name,
		Avatar: avatar,
	})
	if err != nil {
		return domain.Profile{}, err
	}

	var profile domain.Profile
	if err := json.Unmarshal(env.Data, &profile); err != nil {
		return domain.Profile{}, apperr.New(apperr.CodeRemote, "failed to decode profile", 0, err)
	}
	return profile, nil
}

func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	env, err := c.doEnvelope(ctx, http.MethodGet, "/api/profile/orders", nil)
	if err != nil {
		return nil, err
	}

	var orders []domain.Order
	if err := json.Unmarshal(env.Data, &orders); err != nil {
		return nil, apperr.New(apperr.CodeRemote, "failed to decode orders", 0, err)
	}
	return orders, nil
}

// CreateAddress saves a new address and returns it with its assigned ID.
func (c *Client) CreateAddress(ctx context.Context, addr domain.Address) (domain.Address, error) {
	env, err := c.doEnvelope(ctx, http.MethodPost, "/api/profile/addresses", addr)
	if err != nil {
		return domain.Address{}, err
	}

	var created struct {
		domain.Address
		ID ID `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		return domain.Address{}, apperr.New(apperr.CodeRemote, "failed to decode address", 0, err)
	}
	created.Address.ID = string(created.ID)
	return created.Address, nil
}

func (c *Client) CreatePaymentMethod(ctx context.Context, pm domain.PaymentMethod) (domain.PaymentMethod, error) {
	env, err := c.doEnvelope(ctx, http.MethodPost, "/api/profile/payment-methods", pm)
	if err != nil {
		return domain.PaymentMethod{}, err
	}

	var created struct {
		domain.PaymentMethod
		ID ID `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		return domain.PaymentMethod{}, apperr.New(apperr.CodeRemote, "failed to decode payment method", 0, err)
	}
	created.PaymentMethod.ID = string(created.ID)
	return created.PaymentMethod, nil
}

// CreateOrder posts the checkout payload and returns the created order.
func (c *Client) CreateOrder(ctx context.Context, req domain.OrderRequest) (domain.Order, error) {
	env, err := c.doEnvelope(ctx, http.MethodPost, "/api/orders", req)
	if err != nil {
		return domain.Order{}, err
	}

	var order domain.Order
	if err := json.Unmarshal(env.Data, &order); err != nil {
		return domain.Order{}, apperr.New(apperr.CodeRemote, "failed to decode order", 0, err)
	}
	return order, nil
}
