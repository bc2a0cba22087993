package usecase

import (
	"context"

	"velora-storefront/internal/api"
	"velora-storefront/internal/domain"
	"velora-storefront/pkg/apperr"
)

// AdminUsecase is the product-management surface. Every operation checks the
// session role locally before issuing a call; the remote enforces it again.
type AdminUsecase struct {
	client  *api.Client
	auth    *AuthUsecase
	catalog *CatalogUsecase
}

func NewAdminUsecase(client *api.Client, auth *AuthUsecase, catalog *CatalogUsecase) *AdminUsecase {
	return &AdminUsecase{
		client:  client,
		auth:    auth,
		catalog: catalog,
	}
}

func (u *AdminUsecase) guard() error {
	if !u.auth.IsAuthenticated() {
		return apperr.Unauthorized("admin access requires login", nil)
	}
	if !u.auth.IsAdmin() {
		return apperr.Forbidden("admin privileges required", nil)
	}
	return nil
}

func (u *AdminUsecase) Products(ctx context.Context) ([]domain.Product, error) {
	if err := u.guard(); err != nil {
		return nil, err
	}
	return u.client.AdminProducts(ctx)
}

// CreateProduct uploads a new product with its images and invalidates the
// catalog cache.
func (u *AdminUsecase) CreateProduct(ctx context.Context, product domain.NewProduct, mainImage api.ImageUpload, additional []api.ImageUpload) (domain.Product, error) {
	if err := u.guard(); err != nil {
		return domain.Product{}, err
	}
	if product.Name == "" || product.BasePrice <= 0 {
		return domain.Product{}, apperr.Precondition("product needs a name and a positive base price")
	}

	created, err := u.client.CreateProduct(ctx, product, mainImage, additional)
	if err != nil {
		return domain.Product{}, err
	}
	u.catalog.Invalidate()
	return created, nil
}

func (u *AdminUsecase) DeleteProduct(ctx context.Context, id string) error {
	if err := u.guard(); err != nil {
		return err
	}
	if err := u.client.DeleteProduct(ctx, id); err != nil {
		return err
	}
	u.catalog.Invalidate()
	return nil
}
