package usecase

import (
	"context"
	"fmt"
	"time"

	"velora-storefront/internal/api"
	"velora-storefront/internal/domain"
	"velora-storefront/pkg/cache"
)

// CatalogUsecase serves catalog reads through a TTL cache so repeated page
// views do not re-hit the remote.
type CatalogUsecase struct {
	client      *api.Client
	cache       cache.CacheService
	productTTL  time.Duration
	categoryTTL time.Duration
}

func NewCatalogUsecase(client *api.Client, cache cache.CacheService, productTTL, categoryTTL time.Duration) *CatalogUsecase {
	return &CatalogUsecase{
		client:      client,
		cache:       cache,
		productTTL:  productTTL,
		categoryTTL: categoryTTL,
	}
}

func (uc *CatalogUsecase) Products(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	key := fmt.Sprintf("products:%s|%s|%s", filter.Category, filter.Search, filter.Sort)
	if cached, ok := uc.cache.Get(key); ok {
		return cached.([]domain.Product), nil
	}

	products, err := uc.client.Products(ctx, filter)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(key, products, uc.productTTL)
	return products, nil
}

func (uc *CatalogUsecase) ProductByID(ctx context.Context, id string) (domain.Product, error) {
	key := "product:" + id
	if cached, ok := uc.cache.Get(key); ok {
		return cached.(domain.Product), nil
	}

	product, err := uc.client.ProductByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	uc.cache.Set(key, product, uc.productTTL)
	return product, nil
}

func (uc *CatalogUsecase) FeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	key := "products:featured"
	if cached, ok := uc.cache.Get(key); ok {
		return cached.([]domain.Product), nil
	}

	products, err := uc.client.FeaturedProducts(ctx)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(key, products, uc.productTTL)
	return products, nil
}

func (uc *CatalogUsecase) Categories(ctx context.Context) ([]domain.Category, error) {
	key := "categories"
	if cached, ok := uc.cache.Get(key); ok {
		return cached.([]domain.Category), nil
	}

	categories, err := uc.client.Categories(ctx)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(key, categories, uc.categoryTTL)
	return categories, nil
}

// Invalidate drops every cached catalog read. Called after admin mutations.
func (uc *CatalogUsecase) Invalidate() {
	uc.cache.Flush()
}
