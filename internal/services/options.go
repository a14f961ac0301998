package services

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/list_catalog"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/list_categories"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/list_inventory"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/list_unpriced"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/price_history"
	catalogrepo "github.com/light-bringer/backoffice-service/internal/app/catalog/repo"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/usecases/assign_price"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/usecases/update_product"
	identitydomain "github.com/light-bringer/backoffice-service/internal/app/identity/domain"
	"github.com/light-bringer/backoffice-service/internal/app/identity/queries/list_users"
	identityrepo "github.com/light-bringer/backoffice-service/internal/app/identity/repo"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/change_role"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/create_user"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/deactivate_user"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/login"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/register_customer"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/queries/get_cart"
	ledgerrepo "github.com/light-bringer/backoffice-service/internal/app/ledger/repo"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/add_to_cart"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/checkout"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/remove_cart_item"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/update_cart_item"
	"github.com/light-bringer/backoffice-service/internal/app/orders/queries/admin_summary"
	"github.com/light-bringer/backoffice-service/internal/app/orders/queries/export_orders"
	"github.com/light-bringer/backoffice-service/internal/app/orders/queries/get_order"
	"github.com/light-bringer/backoffice-service/internal/app/orders/queries/list_orders"
	"github.com/light-bringer/backoffice-service/internal/app/orders/queries/sold_products"
	ordersrepo "github.com/light-bringer/backoffice-service/internal/app/orders/repo"
	"github.com/light-bringer/backoffice-service/internal/config"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
	"github.com/light-bringer/backoffice-service/internal/pkg/outbox"
	"github.com/light-bringer/backoffice-service/internal/pkg/session"
	"github.com/light-bringer/backoffice-service/internal/transport/grpc/shop"
	httptransport "github.com/light-bringer/backoffice-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	Sessions      *session.Manager

	CartHandler *shop.CartHandler
	AuthHandler *shop.AuthHandler
	HTTPHandler *httptransport.Handler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)
	events := outbox.NewRepo()
	sessions := session.NewManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, clk)
	policy := identitydomain.Policy{
		MaxFailures:     int64(cfg.Auth.MaxFailures),
		LockoutDuration: cfg.Auth.LockoutDuration,
	}

	// 3. Create repositories
	users := identityrepo.NewUserRepo()
	attempts := identityrepo.NewLoginAttemptRepo()
	identityReadModel := identityrepo.NewReadModel(spannerClient, clk)

	catalogProducts := catalogrepo.NewProductRepo()
	categories := catalogrepo.NewCategoryRepo()
	history := catalogrepo.NewPriceHistoryRepo()
	catalogReadModel := catalogrepo.NewReadModel(spannerClient, categories)

	ledgerProducts := ledgerrepo.NewProductRepo()
	carts := ledgerrepo.NewCartRepo(spannerClient)
	orders := ledgerrepo.NewOrderRepo()
	ledgerReadModel := ledgerrepo.NewReadModel(spannerClient, carts)

	ordersReadModel := ordersrepo.NewReadModel(spannerClient, clk)

	// 4. Create command use cases (write operations)
	loginUseCase := login.NewInteractor(users, attempts, events, comm, sessions, clk, policy)
	addToCartUseCase := add_to_cart.NewInteractor(ledgerProducts, carts, events, comm, clk)
	updateCartItemUseCase := update_cart_item.NewInteractor(ledgerProducts, carts, events, comm, clk)
	removeCartItemUseCase := remove_cart_item.NewInteractor(ledgerProducts, carts, events, comm, clk)
	checkoutUseCase := checkout.NewInteractor(ledgerProducts, carts, orders, events, comm, clk)

	// 5. Create query use cases (read operations)
	getCartQuery := get_cart.NewQuery(ledgerReadModel)
	listCategoriesQuery := list_categories.NewQuery(catalogReadModel)
	listInventoryQuery := list_inventory.NewQuery(catalogReadModel)
	listUnpricedQuery := list_unpriced.NewQuery(catalogReadModel)
	adminSummaryQuery := admin_summary.NewQuery(ordersReadModel)

	// 6. Create transport handlers
	httpHandler := httptransport.NewHandler(httptransport.Deps{
		Login:            loginUseCase,
		RegisterCustomer: register_customer.NewInteractor(users, events, comm, clk, cfg.Auth.BcryptCost),
		CreateUser:       create_user.NewInteractor(users, events, comm, clk, cfg.Auth.BcryptCost),
		ChangeRole:       change_role.NewInteractor(users, events, comm, clk),
		DeactivateUser:   deactivate_user.NewInteractor(users, events, comm, clk),
		ListUsers:        list_users.NewQuery(identityReadModel),

		CreateProduct:  create_product.NewInteractor(catalogProducts, categories, events, comm, clk),
		UpdateProduct:  update_product.NewInteractor(catalogProducts, categories, events, comm, clk),
		AssignPrice:    assign_price.NewInteractor(catalogProducts, history, events, comm, clk),
		GetProduct:     get_product.NewQuery(catalogReadModel),
		ListCatalog:    list_catalog.NewQuery(catalogReadModel),
		ListCategories: listCategoriesQuery,
		ListInventory:  listInventoryQuery,
		ListUnpriced:   listUnpricedQuery,
		PriceHistory:   price_history.NewQuery(catalogReadModel),

		AddToCart:      addToCartUseCase,
		UpdateCartItem: updateCartItemUseCase,
		RemoveCartItem: removeCartItemUseCase,
		Checkout:       checkoutUseCase,
		GetCart:        getCartQuery,

		ListOrders:   list_orders.NewQuery(ordersReadModel),
		GetOrder:     get_order.NewQuery(ordersReadModel),
		SoldProducts: sold_products.NewQuery(ordersReadModel),
		AdminSummary: adminSummaryQuery,
		ExportOrders: export_orders.NewQuery(ordersReadModel),

		Events: outbox.NewReader(spannerClient),
	}, logger)

	return &ServiceOptions{
		SpannerClient: spannerClient,
		Sessions:      sessions,
		CartHandler: shop.NewCartHandler(
			addToCartUseCase,
			updateCartItemUseCase,
			removeCartItemUseCase,
			checkoutUseCase,
			getCartQuery,
		),
		AuthHandler: shop.NewAuthHandler(loginUseCase),
		HTTPHandler: httpHandler,
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
