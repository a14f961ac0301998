//go:build integration

package e2e

import (
	"testing"
	"time"

	"cloud.google.com/go/spanner"

	identitydomain "github.com/light-bringer/backoffice-service/internal/app/identity/domain"
	identityrepo "github.com/light-bringer/backoffice-service/internal/app/identity/repo"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/login"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/queries/get_cart"
	ledgerrepo "github.com/light-bringer/backoffice-service/internal/app/ledger/repo"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/add_to_cart"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/checkout"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/release_abandoned_carts"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/remove_cart_item"
	"github.com/light-bringer/backoffice-service/internal/app/orders/queries/sold_products"
	ordersrepo "github.com/light-bringer/backoffice-service/internal/app/orders/repo"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
	"github.com/light-bringer/backoffice-service/internal/pkg/logging"
	"github.com/light-bringer/backoffice-service/internal/pkg/outbox"
	"github.com/light-bringer/backoffice-service/internal/pkg/session"
	"github.com/light-bringer/backoffice-service/tests/testutil"
)

// Services holds the use cases exercised against the emulator.
type Services struct {
	// Commands
	Login          *login.Interactor
	AddToCart      *add_to_cart.Interactor
	RemoveCartItem *remove_cart_item.Interactor
	Checkout       *checkout.Interactor
	ReleaseCarts   *release_abandoned_carts.Interactor

	// Queries
	GetCart      *get_cart.Query
	SoldProducts *sold_products.Query

	// Infrastructure
	Clock  *clock.MockClock
	Client *spanner.Client
}

// setupTest wires every use case against a clean emulator database.
func setupTest(t *testing.T) (*Services, func()) {
	t.Helper()

	testutil.WaitForEmulator(t)
	client, cleanup := testutil.SetupSpannerTest(t)

	clk := testutil.NewMockClock()
	comm := committer.NewCommitter(client)
	events := outbox.NewRepo()
	sessions := session.NewManager("integration-secret-integration-secret", 10*time.Minute, clk)

	products := ledgerrepo.NewProductRepo()
	carts := ledgerrepo.NewCartRepo(client)
	orders := ledgerrepo.NewOrderRepo()

	services := &Services{
		Login: login.NewInteractor(
			identityrepo.NewUserRepo(),
			identityrepo.NewLoginAttemptRepo(),
			events, comm, sessions, clk, identitydomain.DefaultPolicy,
		),
		AddToCart:      add_to_cart.NewInteractor(products, carts, events, comm, clk),
		RemoveCartItem: remove_cart_item.NewInteractor(products, carts, events, comm, clk),
		Checkout:       checkout.NewInteractor(products, carts, orders, events, comm, clk),
		ReleaseCarts:   release_abandoned_carts.NewInteractor(products, carts, events, comm, clk, logging.Discard()),

		GetCart:      get_cart.NewQuery(ledgerrepo.NewReadModel(client, carts)),
		SoldProducts: sold_products.NewQuery(ordersrepo.NewReadModel(client, clk)),

		Clock:  clk,
		Client: client,
	}

	return services, cleanup
}
