package usecase

import (
	"context"

	"velora-storefront/internal/api"
	"velora-storefront/internal/domain"
	"velora-storefront/pkg/apperr"
	"velora-storefront/pkg/logger"
)

// OrderUsecase covers the checkout and profile flows.
type OrderUsecase struct {
	client *api.Client
	auth   *AuthUsecase
	cart   *CartUsecase
}

func NewOrderUsecase(client *api.Client, auth *AuthUsecase, cart *CartUsecase) *OrderUsecase {
	return &OrderUsecase{
		client: client,
		auth:   auth,
		cart:   cart,
	}
}

// CheckoutOptions selects the shipping address and payment method. Either an
// existing ID or a new record can be supplied; new records are created first
// and their IDs used for the order.
type CheckoutOptions struct {
	AddressID     string
	NewAddress    *domain.Address
	PaymentMethod string
	NewPayment    *domain.PaymentMethod
}

// Checkout places an order for the current cart, then clears the cart.
func (u *OrderUsecase) Checkout(ctx context.Context, opts CheckoutOptions) (domain.Order, error) {
	if !u.auth.IsAuthenticated() {
		return domain.Order{}, apperr.Unauthorized("checkout requires login", nil)
	}

	lines := u.cart.Lines()
	if len(lines) == 0 {
		return domain.Order{}, apperr.Precondition("cart is empty")
	}

	addressID := opts.AddressID
	if opts.NewAddress != nil {
		addr := *opts.NewAddress
		addr.IsDefault = false
		created, err := u.client.CreateAddress(ctx, addr)
		if err != nil {
			return domain.Order{}, err
		}
		addressID = created.ID
	}
	if addressID == "" {
		return domain.Order{}, apperr.Precondition("no shipping address selected")
	}

	paymentMethod := opts.PaymentMethod
	if opts.NewPayment != nil {
		pm := *opts.NewPayment
		pm.IsDefault = false
		created, err := u.client.CreatePaymentMethod(ctx, pm)
		if err != nil {
			return domain.Order{}, err
		}
		if paymentMethod == "" {
			paymentMethod = created.Type
		}
	}
	if paymentMethod == "" {
		return domain.Order{}, apperr.Precondition("no payment method selected")
	}

	req := domain.OrderRequest{
		AddressID:     addressID,
		PaymentMethod: paymentMethod,
		Items:         make([]domain.OrderRequestItem, len(lines)),
	}
	for i, line := range lines {
		req.Items[i] = domain.OrderRequestItem{
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
		}
	}

	order, err := u.client.CreateOrder(ctx, req)
	if err != nil {
		return domain.Order{}, err
	}

	logger.Info().Str("order_id", order.ID).Float64("total", order.TotalAmount).Msg("Order placed")
	u.cart.ClearCart(ctx)
	return order, nil
}

// Orders returns the authenticated user's order history.
func (u *OrderUsecase) Orders(ctx context.Context) ([]domain.Order, error) {
	if !u.auth.IsAuthenticated() {
		return nil, apperr.Unauthorized("order history requires login", nil)
	}
	return u.client.Orders(ctx)
}

// Profile returns the profile aggregate: user, addresses, payment methods.
func (u *OrderUsecase) Profile(ctx context.Context) (domain.Profile, error) {
	if !u.auth.IsAuthenticated() {
		return domain.Profile{}, apperr.Unauthorized("profile requires login", nil)
	}
	return u.client.Profile(ctx)
}

func (u *OrderUsecase) UpdateProfile(ctx context.Context, name, avatar string) (domain.Profile, error) {
	if !u.auth.IsAuthenticated() {
		return domain.Profile{}, apperr.Unauthorized("profile requires login", nil)
	}
	return u.client.UpdateProfile(ctx, name, avatar)
}
