package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/wims/storefront/internal/config"
	"github.com/wims/storefront/internal/gateway"
	"github.com/wims/storefront/internal/models"
	"github.com/wims/storefront/internal/service"
	"github.com/wims/storefront/internal/session"
	"github.com/wims/storefront/internal/state"
	"github.com/wims/storefront/pkg/logger"
)

const usage = `Usage: storefront <command> [flags]

Commands:
  login       -username -password   log in and store the session token
  logout                            clear the stored session
  categories                        list catalog categories
  products    [-categories a,b] [-mode at-most|at-least] [-amount N]
                                    list products matching the filter
  basket                            show the current basket
  add         -id <productId>       add one unit of a product to the basket
  remove      -id <productId>       remove a product from the basket
  checkout                          create an order from the basket
  orders                            list past orders, newest first
`

// app wires the session, gateway client and services together for the CLI.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	session *session.Session
	gw      *gateway.Client
	state   *state.AppState
	catalog *service.CatalogService
	basket  *service.BasketService
	orders  *service.OrderService
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	a, err := newApp(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		// The CLI analog of the blocking alert: mutation failures reach the
		// user here with the best available message.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(cfg *config.Config, log *slog.Logger) (*app, error) {
	var store session.Store
	var err error
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		store, err = session.NewRedisStore(cfg.Session.RedisAddr)
	default:
		store, err = session.NewFileStore(cfg.Session.Dir)
	}
	if err != nil {
		return nil, err
	}

	sess := session.New(store)
	gw := gateway.New(cfg.Gateway.URL, time.Duration(cfg.Gateway.Timeout)*time.Second, sess, log)
	st := state.New()

	return &app{
		cfg:     cfg,
		log:     log,
		session: sess,
		gw:      gw,
		state:   st,
		catalog: service.NewCatalogService(gw, st, log),
		basket:  service.NewBasketService(gw, st, log),
		orders:  service.NewOrderService(gw, st, log),
	}, nil
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.session.Clear(ctx)
	case "categories":
		return a.listCategories(ctx)
	case "products":
		return a.listProducts(ctx, args)
	case "basket":
		return a.showBasket(ctx)
	case "add":
		return a.addToBasket(ctx, args)
	case "remove":
		return a.removeFromBasket(ctx, args)
	case "checkout":
		return a.checkout(ctx)
	case "orders":
		return a.listOrders(ctx)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	token, err := a.gw.Login(ctx, *username, *password)
	if err != nil {
		a.log.Error("login failed", "error", err)
		return errors.New("login failed, please check your credentials and try again")
	}
	if err := a.session.SaveToken(ctx, token); err != nil {
		return err
	}

	// Seed the buyer profile alongside the token so checkout and order
	// history work immediately after login.
	buyer, err := a.cfg.LoadProfile()
	if err != nil {
		return err
	}
	if err := a.session.SaveBuyer(ctx, *buyer); err != nil {
		return err
	}

	fmt.Printf("Logged in as %s\n", buyer.FullName())
	return nil
}

func (a *app) listCategories(ctx context.Context) error {
	a.catalog.LoadCategories(ctx)
	for _, c := range a.state.Categories {
		fmt.Printf("%s\t%s\n", c.CategoryID, c.CategoryName)
	}
	return nil
}

func (a *app) listProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	categories := fs.String("categories", "", "comma-separated category ids")
	mode := fs.String("mode", string(state.PriceAtMost), "price bound: at-most or at-least")
	amount := fs.Float64("amount", 100, "price threshold")
	fs.Parse(args)

	for _, id := range strings.Split(*categories, ",") {
		if id = strings.TrimSpace(id); id != "" {
			a.state.ToggleCategory(id)
		}
	}
	a.state.Filter = state.PriceFilter{Mode: state.PriceMode(*mode), Amount: *amount}

	a.catalog.ApplyFilter(ctx)
	for _, p := range a.state.Products() {
		fmt.Printf("%s\t%-20s\t$%.2f\t%s\n", p.ID, p.Name, p.Price.Float64(), p.Description)
	}
	return nil
}

func (a *app) showBasket(ctx context.Context) error {
	a.basket.Refresh(ctx)
	items := a.state.Basket().Products
	if len(items) == 0 {
		fmt.Println("Basket is empty")
		return nil
	}
	for _, item := range items {
		fmt.Printf("%s\t%-20s\t$%.2f\tx%g\n", item.ID, item.Name, item.Price.Float64(), item.Quantity.Float64())
	}
	fmt.Printf("Total: $%.2f\n", state.OrderTotal(items))
	return nil
}

func (a *app) addToBasket(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	id := fs.String("id", "", "product id")
	fs.Parse(args)
	if *id == "" {
		return errors.New("-id is required")
	}

	product, err := a.findProduct(ctx, *id)
	if err != nil {
		return err
	}
	if err := a.basket.Add(ctx, *product); err != nil {
		return err
	}
	fmt.Printf("Added %s to basket\n", product.Name)
	return nil
}

// findProduct looks the product up in the catalog with a permissive price
// filter, since adds always start from a displayed product record.
func (a *app) findProduct(ctx context.Context, id string) (*models.Product, error) {
	products, err := a.gw.FilterProducts(ctx, models.ProductFilter{
		WarehouseID: []string{},
		CategoryID:  []string{},
		Price:       state.PriceFilter{Mode: state.PriceAtMost, Amount: 1_000_000}.Predicate(),
		Quantity:    "",
	})
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("product %s not found", id)
}

func (a *app) removeFromBasket(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	id := fs.String("id", "", "product id")
	fs.Parse(args)
	if *id == "" {
		return errors.New("-id is required")
	}

	if err := a.basket.Remove(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("Removed %s from basket\n", *id)
	return nil
}

func (a *app) checkout(ctx context.Context) error {
	a.basket.Refresh(ctx)

	buyer, err := a.session.Buyer(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			buyer = nil
		} else {
			return err
		}
	}

	order, err := a.orders.Checkout(ctx, buyer)
	if err != nil {
		return err
	}
	fmt.Printf("Order created successfully! id=%s total=$%.2f\n", order.ID, order.Price.Float64())
	return nil
}

func (a *app) listOrders(ctx context.Context) error {
	buyer, err := a.session.Buyer(ctx)
	if err != nil {
		return errors.New("no buyer profile stored, log in first")
	}

	for _, o := range a.orders.Orders(ctx, *buyer) {
		fmt.Printf("Order %s\tstatus=%s\tcreated=%s\ttotal=$%.2f\n",
			o.OrderID, o.Status, o.CreatedAt.Local().Format("2006-01-02 15:04"), o.Price.Float64())
		for _, item := range o.Items {
			fmt.Printf("  %-20s\t$%.2f\tx%g\n", item.Name, item.Price.Float64(), item.Quantity.Float64())
		}
	}
	return nil
}
