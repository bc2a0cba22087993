package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"velora-storefront/config"
	"velora-storefront/internal/api"
	"velora-storefront/internal/domain"
	"velora-storefront/internal/infrastructure/cache"
	"velora-storefront/internal/storage/localstore"
	"velora-storefront/internal/usecase"
	"velora-storefront/pkg/logger"
)

const usageText = `Usage: storefront <command> [args]

Catalog:
  products [-category slug] [-search text] [-sort field]
  product <id>
  featured
  categories

Session:
  register <name> <email> <password>
  login <email> <password>
  logout
  whoami

Cart:
  cart show
  cart add <variant-id> [quantity]
  cart update <line-id> <quantity>
  cart rm <line-id>
  cart clear

Wishlist:
  wishlist show
  wishlist add <variant-id>
  wishlist rm <entry-id>
  wishlist clear

Orders:
  orders
  checkout -address <id> -payment <method>

Admin:
  admin products
  admin create -name <name> -price <price> -image <file> [-description text]
  admin delete <product-id>
`

type app struct {
	cfg      *config.Config
	auth     *usecase.AuthUsecase
	cart     *usecase.CartUsecase
	wishlist *usecase.WishlistUsecase
	catalog  *usecase.CatalogUsecase
	orders   *usecase.OrderUsecase
	admin    *usecase.AdminUsecase
}

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	store, err := localstore.Open(cfg.StateDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open local state")
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, store, cfg.RequestRate, cfg.RequestBurst)
	memCache := cache.NewMemoryCache(cfg.CacheProductTTL, time.Hour)

	authUC := usecase.NewAuthUsecase(client, store)
	cartUC := usecase.NewCartUsecase(client, store, authUC, cfg.RefreshDebounce, cfg.MaxCartQuantity)
	wishlistUC := usecase.NewWishlistUsecase(client, store, authUC)
	catalogUC := usecase.NewCatalogUsecase(client, memCache, cfg.CacheProductTTL, cfg.CacheCategoryTTL)
	orderUC := usecase.NewOrderUsecase(client, authUC, cartUC)
	adminUC := usecase.NewAdminUsecase(client, authUC, catalogUC)

	a := &app{
		cfg:      cfg,
		auth:     authUC,
		cart:     cartUC,
		wishlist: wishlistUC,
		catalog:  catalogUC,
		orders:   orderUC,
		admin:    adminUC,
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	ctx := context.Background()
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "products":
		return a.cmdProducts(ctx, args)
	case "product":
		if len(args) < 1 {
			return fmt.Errorf("product requires an id")
		}
		product, err := a.catalog.ProductByID(ctx, args[0])
		if err != nil {
			return err
		}
		printProduct(product)
		return nil
	case "featured":
		products, err := a.catalog.FeaturedProducts(ctx)
		if err != nil {
			return err
		}
		for _, p := range products {
			fmt.Printf("%-12s  %-32s  $%.2f\n", p.ID, p.Name, p.BasePrice)
		}
		return nil
	case "categories":
		categories, err := a.catalog.Categories(ctx)
		if err != nil {
			return err
		}
		for _, c := range categories {
			fmt.Printf("%-12s  %s\n", c.ID, c.Name)
		}
		return nil
	case "register":
		if len(args) < 3 {
			return fmt.Errorf("register requires name, email, password")
		}
		user, err := a.auth.Register(ctx, args[0], args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Printf("registered as %s <%s>\n", user.Name, user.Email)
		return nil
	case "login":
		if len(args) < 2 {
			return fmt.Errorf("login requires email, password")
		}
		user, err := a.auth.Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("logged in as %s <%s>\n", user.Name, user.Email)
		return nil
	case "logout":
		a.auth.Logout()
		fmt.Println("logged out")
		return nil
	case "whoami":
		if !a.auth.IsAuthenticated() {
			fmt.Println("anonymous")
			return nil
		}
		user, err := a.auth.CurrentUser(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s> role=%s\n", user.Name, user.Email, user.Role)
		return nil
	case "cart":
		return a.cmdCart(ctx, args)
	case "wishlist":
		return a.cmdWishlist(ctx, args)
	case "orders":
		orders, err := a.orders.Orders(ctx)
		if err != nil {
			return err
		}
		for _, o := range orders {
			fmt.Printf("%-12s  %-10s  $%.2f  %s\n", o.ID, o.Status, o.TotalAmount, o.CreatedAt.Format("2006-01-02"))
		}
		return nil
	case "checkout":
		return a.cmdCheckout(ctx, args)
	case "admin":
		return a.cmdAdmin(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usageText)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) cmdProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	category := fs.String("category", "", "filter by category slug")
	search := fs.String("search", "", "search text")
	sort := fs.String("sort", "", "sort field")
	if err := fs.Parse(args); err != nil {
		return err
	}

	products, err := a.catalog.Products(ctx, domain.ProductFilter{
		Category: *category,
		Search:   *search,
		Sort:     *sort,
	})
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Printf("%-12s  %-32s  $%.2f  (%d variants)\n", p.ID, p.Name, p.BasePrice, len(p.Variants))
	}
	return nil
}

func (a *app) cmdCart(ctx context.Context, args []string) error {
	if len(args) < 1 {
		args = []string{"show"}
	}
	a.cart.Load(ctx)

	switch args[0] {
	case "show":
		for _, line := range a.cart.Lines() {
			fmt.Printf("%-12s  %-32s  x%d  $%.2f\n", line.ID, line.Name, line.Quantity, line.Subtotal())
		}
		fmt.Printf("total: $%.2f (%d items)\n", a.cart.Total(), a.cart.Count())
		return nil
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("cart add requires a variant id")
		}
		quantity := 1
		if len(args) > 2 {
			quantity, _ = strconv.Atoi(args[2])
		}
		if !a.cart.AddToCart(ctx, domain.CartLine{VariantID: args[1]}, quantity) {
			return fmt.Errorf("could not add variant %s", args[1])
		}
		fmt.Println("added")
		return nil
	case "update":
		if len(args) < 3 {
			return fmt.Errorf("cart update requires a line id and quantity")
		}
		quantity, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[2])
		}
		if !a.cart.UpdateQuantity(ctx, args[1], quantity) {
			return fmt.Errorf("could not update line %s", args[1])
		}
		fmt.Println("updated")
		return nil
	case "rm":
		if len(args) < 2 {
			return fmt.Errorf("cart rm requires a line id")
		}
		if !a.cart.RemoveFromCart(ctx, args[1]) {
			return fmt.Errorf("could not remove line %s", args[1])
		}
		fmt.Println("removed")
		return nil
	case "clear":
		if !a.cart.ClearCart(ctx) {
			return fmt.Errorf("could not clear cart")
		}
		fmt.Println("cleared")
		return nil
	default:
		return fmt.Errorf("unknown cart command %q", args[0])
	}
}

func (a *app) cmdWishlist(ctx context.Context, args []string) error {
	if len(args) < 1 {
		args = []string{"show"}
	}
	a.wishlist.Load(ctx)

	switch args[0] {
	case "show":
		for _, e := range a.wishlist.Entries() {
			fmt.Printf("%-12s  %-32s  $%.2f\n", e.ID, e.Name, e.Price)
		}
		return nil
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("wishlist add requires a variant id")
		}
		a.wishlist.AddToWishlist(ctx, domain.WishlistEntry{VariantID: args[1]})
		fmt.Println("added")
		return nil
	case "rm":
		if len(args) < 2 {
			return fmt.Errorf("wishlist rm requires an entry id")
		}
		a.wishlist.RemoveFromWishlist(ctx, args[1])
		fmt.Println("removed")
		return nil
	case "clear":
		a.wishlist.ClearWishlist()
		fmt.Println("cleared")
		return nil
	default:
		return fmt.Errorf("unknown wishlist command %q", args[0])
	}
}

func (a *app) cmdCheckout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	addressID := fs.String("address", "", "shipping address id")
	payment := fs.String("payment", "", "payment method")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.cart.Load(ctx)
	order, err := a.orders.Checkout(ctx, usecase.CheckoutOptions{
		AddressID:     *addressID,
		PaymentMethod: *payment,
	})
	if err != nil {
		return err
	}
	fmt.Printf("order %s placed, total $%.2f\n", order.ID, order.TotalAmount)
	return nil
}

func (a *app) cmdAdmin(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("admin requires a subcommand")
	}

	switch args[0] {
	case "products":
		products, err := a.admin.Products(ctx)
		if err != nil {
			return err
		}
		for _, p := range products {
			fmt.Printf("%-12s  %-32s  $%.2f\n", p.ID, p.Name, p.BasePrice)
		}
		return nil
	case "create":
		fs := flag.NewFlagSet("admin create", flag.ContinueOnError)
		name := fs.String("name", "", "product name")
		description := fs.String("description", "", "product description")
		price := fs.Float64("price", 0, "base price")
		imagePath := fs.String("image", "", "main image file")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *imagePath == "" {
			return fmt.Errorf("admin create requires -image")
		}

		f, err := os.Open(*imagePath)
		if err != nil {
			return err
		}
		defer f.Close()

		if info, err := f.Stat(); err == nil && info.Size() > a.cfg.MaxUploadSizeMB<<20 {
			return fmt.Errorf("image %s exceeds the %dMB upload limit", *imagePath, a.cfg.MaxUploadSizeMB)
		}

		created, err := a.admin.CreateProduct(ctx, domain.NewProduct{
			Name:        *name,
			Description: *description,
			BasePrice:   *price,
		}, api.ImageUpload{Name: *imagePath, Reader: f}, nil)
		if err != nil {
			return err
		}
		fmt.Printf("created product %s\n", created.ID)
		return nil
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("admin delete requires a product id")
		}
		if err := a.admin.DeleteProduct(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil
	default:
		return fmt.Errorf("unknown admin command %q", args[0])
	}
}

func printProduct(p domain.Product) {
	fmt.Printf("%s\n%s\nbase price: $%.2f\n", p.Name, p.Description, p.BasePrice)
	for _, v := range p.Variants {
		fmt.Printf("  variant %-12s  %s %s %s  $%.2f  stock=%d\n", v.ID, v.Color, v.Size, v.Edition, v.Price, v.StockQty)
	}
}
