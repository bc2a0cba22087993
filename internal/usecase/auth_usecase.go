package usecase

import (
	"context"
	"time"

	"velora-storefront/internal/api"
	"velora-storefront/internal/domain"
	"velora-storefront/internal/storage/localstore"
	"velora-storefront/pkg/apperr"
	"velora-storefront/pkg/logger"
	"velora-storefront/pkg/utils"
)

// AuthUsecase owns the session: the persisted bearer token plus the user it
// was issued for. Its authentication flag gates which data source the cart
// and wishlist use.
type AuthUsecase struct {
	client *api.Client
	store  *localstore.Store
}

func NewAuthUsecase(client *api.Client, store *localstore.Store) *AuthUsecase {
	return &AuthUsecase{
		client: client,
		store:  store,
	}
}

// Register creates an account and persists the resulting session.
func (u *AuthUsecase) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	session, err := u.client.Register(ctx, name, email, password)
	if err != nil {
		return domain.User{}, err
	}

	if err := u.store.SetSession(session.Token, session.User); err != nil {
		return domain.User{}, err
	}
	logger.Info().Str("user_id", session.User.ID).Msg("Registered")
	return session.User, nil
}

// Login authenticates and persists the resulting session.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (domain.User, error) {
	session, err := u.client.Login(ctx, email, password)
	if err != nil {
		return domain.User{}, err
	}

	if err := u.store.SetSession(session.Token, session.User); err != nil {
		return domain.User{}, err
	}
	logger.Info().Str("user_id", session.User.ID).Msg("Logged in")
	return session.User, nil
}

// Logout clears the persisted session. Idempotent; an anonymous session stays
// anonymous.
func (u *AuthUsecase) Logout() {
	if err := u.store.ClearSession(); err != nil {
		logger.Error().Err(err).Msg("Failed to clear session")
	}
}

// CurrentUser fetches the authenticated profile from the remote. Unlike the
// cart/wishlist mutators this propagates errors; a rejected session is
// destroyed before returning.
func (u *AuthUsecase) CurrentUser(ctx context.Context) (domain.User, error) {
	if !u.IsAuthenticated() {
		return domain.User{}, apperr.Unauthorized("not logged in", nil)
	}

	user, err := u.client.Me(ctx)
	if err != nil {
		if apperr.Is(err, apperr.CodeUnauthorized) {
			u.Logout()
		}
		return domain.User{}, err
	}
	return user, nil
}

// IsAuthenticated reports whether a usable token is persisted. A token whose
// exp claim has passed is dropped eagerly rather than burning a request on
// the inevitable 401.
func (u *AuthUsecase) IsAuthenticated() bool {
	token := u.store.Token()
	if token == "" {
		return false
	}

	claims, err := utils.ParseClaims(token)
	if err != nil {
		// Opaque tokens are accepted as-is; the remote decides.
		return true
	}
	if claims.IsExpired(time.Now()) {
		logger.Debug().Msg("Stored token expired, clearing session")
		u.Logout()
		return false
	}
	return true
}

// IsAdmin reports whether the session user carries the admin role.
func (u *AuthUsecase) IsAdmin() bool {
	if !u.IsAuthenticated() {
		return false
	}
	user, ok := u.store.User()
	return ok && user.IsAdmin()
}

// SessionUser returns the locally cached session user, if any.
func (u *AuthUsecase) SessionUser() (domain.User, bool) {
	if !u.IsAuthenticated() {
		return domain.User{}, false
	}
	return u.store.User()
}
