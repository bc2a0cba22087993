package api

import (
	"context"
	"net/http"

	"velora-storefront/internal/domain"
	"velora-storefront/pkg/apperr"

	"github.com/goccy/go-json"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the bare `{token, user}` body the auth endpoints return.
type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (c *Client) Register(ctx context.Context, name, email, password string) (domain.Session, error) {
	var resp authResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/register", registerRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return domain.Session{}, err
	}
	if resp.Token == "" {
		return domain.Session{}, apperr.BadRequest("registration did not return a token", nil)
	}
	return domain.Session{Token: resp.Token, User: resp.User}, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (domain.Session, error) {
	var resp authResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", loginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return domain.Session{}, err
	}
	if resp.Token == "" {
		return domain.Session{}, apperr.BadRequest("login did not return a token", nil)
	}
	return domain.Session{Token: resp.Token, User: resp.User}, nil
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (domain.User, error) {
	env, err := c.doEnvelope(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return domain.User{}, err
	}
	var user domain.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return domain.User{}, apperr.New(apperr.CodeRemote, "failed to decode user", 0, err)
	}
	return user, nil
}
