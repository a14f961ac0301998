package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/catalogtest"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/list_catalog"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/list_categories"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/list_inventory"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/list_unpriced"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/queries/price_history"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/usecases/assign_price"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/usecases/update_product"
	identitydomain "github.com/light-bringer/backoffice-service/internal/app/identity/domain"
	"github.com/light-bringer/backoffice-service/internal/app/identity/identitytest"
	"github.com/light-bringer/backoffice-service/internal/app/identity/queries/list_users"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/change_role"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/create_user"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/deactivate_user"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/login"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/register_customer"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/ledgertest"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/queries/get_cart"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/add_to_cart"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/checkout"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/remove_cart_item"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/usecases/update_cart_item"
	"github.com/light-bringer/backoffice-service/internal/app/orders/orderstest"
	"github.com/light-bringer/backoffice-service/internal/app/orders/queries/admin_summary"
	"github.com/light-bringer/backoffice-service/internal/app/orders/queries/export_orders"
	"github.com/light-bringer/backoffice-service/internal/app/orders/queries/get_order"
	"github.com/light-bringer/backoffice-service/internal/app/orders/queries/list_orders"
	"github.com/light-bringer/backoffice-service/internal/app/orders/queries/sold_products"
	"github.com/light-bringer/backoffice-service/internal/models/m_outbox"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
	"github.com/light-bringer/backoffice-service/internal/pkg/logging"
	"github.com/light-bringer/backoffice-service/internal/pkg/money"
	"github.com/light-bringer/backoffice-service/internal/pkg/outbox"
	"github.com/light-bringer/backoffice-service/internal/pkg/session"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeEvents struct {
	got  outbox.Filter
	rows []*m_outbox.Data
}

func (f *fakeEvents) ListEvents(_ context.Context, filter outbox.Filter) ([]*m_outbox.Data, error) {
	f.got = filter
	return f.rows, nil
}

type testEnv struct {
	router   *gin.Engine
	sessions *session.Manager
	users    *identitytest.Store
	catalog  *catalogtest.Store
	ledger   *ledgertest.Store
	events   *fakeEvents
}

func newTestEnv(t *testing.T, limiter *IPRateLimiter) *testEnv {
	t.Helper()
	clk := clock.NewMockClock(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
	sessions := session.NewManager("0123456789abcdef0123456789abcdef", 10*time.Minute, clk)

	users := identitytest.NewStore()
	hash, err := identitydomain.HashPassword("Secret123", bcrypt.MinCost)
	require.NoError(t, err)
	users.PutUser("u1", identitytest.UserRow{Username: "ana", Email: "ana@example.com", PasswordHash: hash, Role: identitydomain.RoleCustomer, Active: true})

	catalog := catalogtest.NewStore()
	ledger := ledgertest.NewStore()
	orders := orderstest.NewReadModel(orderstest.Sample()...)
	events := &fakeEvents{}

	deps := Deps{
		Login:            login.NewInteractor(users.Users(), users.Attempts(), users.EventRepo(), users, sessions, clk, identitydomain.DefaultPolicy),
		RegisterCustomer: register_customer.NewInteractor(users.Users(), users.EventRepo(), users, clk, bcrypt.MinCost),
		CreateUser:       create_user.NewInteractor(users.Users(), users.EventRepo(), users, clk, bcrypt.MinCost),
		ChangeRole:       change_role.NewInteractor(users.Users(), users.EventRepo(), users, clk),
		DeactivateUser:   deactivate_user.NewInteractor(users.Users(), users.EventRepo(), users, clk),
		ListUsers:        list_users.NewQuery(users.ReadModel()),

		CreateProduct:  create_product.NewInteractor(catalog.Products(), catalog.CategoryRepo(), catalog.EventRepo(), catalog, clk),
		UpdateProduct:  update_product.NewInteractor(catalog.Products(), catalog.CategoryRepo(), catalog.EventRepo(), catalog, clk),
		AssignPrice:    assign_price.NewInteractor(catalog.Products(), catalog.HistoryRepo(), catalog.EventRepo(), catalog, clk),
		GetProduct:     get_product.NewQuery(catalog.ReadModel()),
		ListCatalog:    list_catalog.NewQuery(catalog.ReadModel()),
		ListCategories: list_categories.NewQuery(catalog.ReadModel()),
		ListInventory:  list_inventory.NewQuery(catalog.ReadModel()),
		ListUnpriced:   list_unpriced.NewQuery(catalog.ReadModel()),
		PriceHistory:   price_history.NewQuery(catalog.ReadModel()),

		AddToCart:      add_to_cart.NewInteractor(ledger.Products(), ledger.Carts(), ledger.EventRepo(), ledger, clk),
		UpdateCartItem: update_cart_item.NewInteractor(ledger.Products(), ledger.Carts(), ledger.EventRepo(), ledger, clk),
		RemoveCartItem: remove_cart_item.NewInteractor(ledger.Products(), ledger.Carts(), ledger.EventRepo(), ledger, clk),
		Checkout:       checkout.NewInteractor(ledger.Products(), ledger.Carts(), ledger.OrderRepo(), ledger.EventRepo(), ledger, clk),
		GetCart:        get_cart.NewQuery(ledger.ReadModel()),

		ListOrders:   list_orders.NewQuery(orders),
		GetOrder:     get_order.NewQuery(orders),
		SoldProducts: sold_products.NewQuery(orders),
		AdminSummary: admin_summary.NewQuery(orders),
		ExportOrders: export_orders.NewQuery(orders),

		Events: events,
	}

	if limiter == nil {
		limiter = NewIPRateLimiter(1000, 1000)
	}
	logger := logging.Discard()
	return &testEnv{
		router:   NewRouter(NewHandler(deps, logger), sessions, limiter, logger),
		sessions: sessions,
		users:    users,
		catalog:  catalog,
		ledger:   ledger,
		events:   events,
	}
}

func (e *testEnv) token(t *testing.T, userID string, role identitydomain.Role) string {
	t.Helper()
	tok, _, err := e.sessions.Issue(session.Principal{UserID: userID, Username: userID, Role: role.String()})
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", loginBody{Username: "ana", Password: "Secret123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "customer", body["role"])
	require.NotEmpty(t, body["token"])

	me := env.do(t, http.MethodGet, "/api/v1/auth/me", body["token"].(string), nil)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Equal(t, "u1", decode(t, me)["user_id"])
}

func TestLogin_LockoutReturns423(t *testing.T) {
	env := newTestEnv(t, nil)
	wrong := loginBody{Username: "ana", Password: "nope"}

	for i := 0; i < 4; i++ {
		rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", wrong)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", wrong)
	require.Equal(t, http.StatusLocked, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(120), body["retry_after_minutes"])
	assert.Contains(t, body["error"], "120 minutes")

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", "", loginBody{Username: "ana", Password: "Secret123"})
	assert.Equal(t, http.StatusLocked, rec.Code)
}

func TestLogin_RateLimited(t *testing.T) {
	env := newTestEnv(t, NewIPRateLimiter(0.001, 2))
	body := loginBody{Username: "ana", Password: "Secret123"}

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/v1/auth/login", "", body).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/v1/auth/login", "", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, env.do(t, http.MethodPost, "/api/v1/auth/login", "", body).Code)
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", "", registerBody{
		FullName: "Ben B", Username: "ben", Email: "ben@example.com", Password: "Secret123", PasswordConfirm: "Secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, env.users.UserIDByName("ben"))

	rec = env.do(t, http.MethodPost, "/api/v1/auth/register", "", registerBody{
		FullName: "Ana Again", Username: "ana2", Email: "ANA@example.com", Password: "Secret123", PasswordConfirm: "Secret123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/auth/register", "", registerBody{
		FullName: "Cy", Username: "cy", Email: "cy@example.com", Password: "short", PasswordConfirm: "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoleChecks(t *testing.T) {
	env := newTestEnv(t, nil)

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/v1/shop/cart", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/v1/shop/cart", "garbage", nil).Code)

	clerk := env.token(t, "w1", identitydomain.RoleWarehouse)
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodGet, "/api/v1/shop/cart", clerk, nil).Code)
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodGet, "/api/v1/admin/summary", clerk, nil).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/v1/warehouse/products", clerk, nil).Code)

	boss := env.token(t, "a1", identitydomain.RoleAdmin)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/v1/warehouse/products", boss, nil).Code)
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodGet, "/api/v1/shop/cart", boss, nil).Code)
}

func TestShop_CartAndCheckout(t *testing.T) {
	env := newTestEnv(t, nil)
	env.ledger.PutProduct("mug", ledgertest.ProductRow{Name: "Mug", Price: money.MustNew(1250, 100), Stock: 3, Visible: true})
	tok := env.token(t, "u1", identitydomain.RoleCustomer)

	rec := env.do(t, http.MethodPost, "/api/v1/shop/cart/items", tok, addItemBody{ProductID: "mug", Quantity: 2})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	itemID := decode(t, rec)["item_id"].(string)

	rec = env.do(t, http.MethodPost, "/api/v1/shop/cart/items", tok, addItemBody{ProductID: "mug", Quantity: 2})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "insufficient stock")

	rec = env.do(t, http.MethodPost, "/api/v1/shop/cart/items", tok, addItemBody{ProductID: "mug", Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/v1/shop/cart/items/"+itemID, tok, quantityBody{Quantity: 3})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["stock_left"])

	rec = env.do(t, http.MethodGet, "/api/v1/shop/cart", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode(t, rec)
	assert.Equal(t, "37.50", cart["total"])
	assert.Equal(t, float64(3), cart["item_count"])

	rec = env.do(t, http.MethodPost, "/api/v1/shop/checkout", tok, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode(t, rec)
	assert.Equal(t, "37.50", order["total"])
	assert.Equal(t, "completed", order["status"])

	rec = env.do(t, http.MethodPost, "/api/v1/shop/checkout", tok, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "cart is empty", decode(t, rec)["error"])
}

func TestShop_RemoveCartItem(t *testing.T) {
	env := newTestEnv(t, nil)
	env.ledger.PutProduct("mug", ledgertest.ProductRow{Name: "Mug", Price: money.MustNew(5, 1), Stock: 2, Visible: true})
	tok := env.token(t, "u1", identitydomain.RoleCustomer)

	rec := env.do(t, http.MethodPost, "/api/v1/shop/cart/items", tok, addItemBody{ProductID: "mug", Quantity: 2})
	require.Equal(t, http.StatusCreated, rec.Code)
	itemID := decode(t, rec)["item_id"].(string)

	rec = env.do(t, http.MethodDelete, "/api/v1/shop/cart/items/"+itemID, tok, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(2), env.ledger.Product("mug").Stock)

	rec = env.do(t, http.MethodDelete, "/api/v1/shop/cart/items/"+itemID, tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShop_Orders(t *testing.T) {
	env := newTestEnv(t, nil)
	tok := env.token(t, "u1", identitydomain.RoleCustomer)

	rec := env.do(t, http.MethodGet, "/api/v1/shop/orders", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode(t, rec)["orders"].([]any)
	require.Len(t, orders, 2)
	assert.Equal(t, "o3", orders[0].(map[string]any)["order_id"])

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/v1/shop/orders/o1", tok, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/v1/shop/orders/o2", tok, nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/v1/shop/orders?limit=-1", tok, nil).Code)
}

func TestWarehouse_Products(t *testing.T) {
	env := newTestEnv(t, nil)
	tok := env.token(t, "w1", identitydomain.RoleWarehouse)

	rec := env.do(t, http.MethodPost, "/api/v1/warehouse/products", tok, map[string]any{
		"name": "Green tea", "stock": 5, "expires_on": "2027-01-31",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decode(t, rec)["product_id"].(string)

	rec = env.do(t, http.MethodGet, "/api/v1/warehouse/products/"+id, tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	product := decode(t, rec)
	assert.Nil(t, product["price"])
	assert.Equal(t, false, product["visible"])
	assert.Equal(t, "2027-01-31", product["expires_on"])

	rec = env.do(t, http.MethodPatch, "/api/v1/warehouse/products/"+id, tok, map[string]any{"stock": 9, "version": 0})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, decode(t, rec)["changed"])

	rec = env.do(t, http.MethodPatch, "/api/v1/warehouse/products/"+id, tok, map[string]any{"stock": 10, "version": 0})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/warehouse/products", tok, map[string]any{"name": "", "stock": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdmin_Pricing(t *testing.T) {
	env := newTestEnv(t, nil)
	env.catalog.PutProduct("p1", catalogtest.ProductRow{Name: "Tea", Stock: 4, Version: 1, CreatedAt: time.Now()})
	tok := env.token(t, "a1", identitydomain.RoleAdmin)

	rec := env.do(t, http.MethodGet, "/api/v1/admin/products/unpriced", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["products"], 1)

	rec = env.do(t, http.MethodPut, "/api/v1/admin/products/p1/price", tok, map[string]any{"price": "12.5"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "12.50", body["price"])
	assert.Equal(t, true, body["visible"])

	rec = env.do(t, http.MethodPut, "/api/v1/admin/products/p1/price", tok, map[string]any{"price": "-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = env.do(t, http.MethodPut, "/api/v1/admin/products/p1/price", tok, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/products/p1/price", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["visible"])

	rec = env.do(t, http.MethodGet, "/api/v1/admin/products/p1/price-history", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["history"], 2)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPut, "/api/v1/admin/products/nope/price", tok, map[string]any{"price": "1"}).Code)
}

func TestAdmin_Users(t *testing.T) {
	env := newTestEnv(t, nil)
	tok := env.token(t, "a1", identitydomain.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/users", tok, createUserBody{
		Username: "clerk", Email: "clerk@example.com", FullName: "Clerk", Password: "Secret123", Role: "warehouse",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	clerkID := decode(t, rec)["user_id"].(string)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/users?role=warehouse", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users := decode(t, rec)["users"].([]any)
	require.Len(t, users, 1)
	assert.Equal(t, "clerk", users[0].(map[string]any)["username"])

	rec = env.do(t, http.MethodPut, "/api/v1/admin/users/"+clerkID+"/role", tok, roleBody{Role: "admin"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = env.do(t, http.MethodPut, "/api/v1/admin/users/"+clerkID+"/role", tok, roleBody{Role: "root"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/users/"+clerkID+"/deactivate", tok, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	row, _ := env.users.User(clerkID)
	assert.False(t, row.Active)
}

func TestAdmin_SalesAndExport(t *testing.T) {
	env := newTestEnv(t, nil)
	tok := env.token(t, "a1", identitydomain.RoleAdmin)

	rec := env.do(t, http.MethodGet, "/api/v1/admin/sales/products", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sold := decode(t, rec)["products"].([]any)
	require.Len(t, sold, 2)
	assert.Equal(t, "p2", sold[0].(map[string]any)["product_id"])

	rec = env.do(t, http.MethodGet, "/api/v1/admin/summary", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "52.00", decode(t, rec)["revenue"])

	rec = env.do(t, http.MethodGet, "/api/v1/admin/orders", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["orders"], 3)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/v1/admin/orders/o2", tok, nil).Code)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/orders/export?format=csv", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "orders.csv")
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "order_id,created_at"))

	rec = env.do(t, http.MethodGet, "/api/v1/admin/orders/export?format=pdf", tok, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdmin_Events(t *testing.T) {
	env := newTestEnv(t, nil)
	env.events.rows = []*m_outbox.Data{{
		EventID:     "e1",
		EventType:   "order.placed",
		AggregateID: "o1",
		Payload:     spanner.NullJSON{Value: map[string]any{"total": "20.00"}, Valid: true},
		Status:      m_outbox.StatusPending,
		CreatedAt:   time.Now(),
	}}
	tok := env.token(t, "a1", identitydomain.RoleAdmin)

	rec := env.do(t, http.MethodGet, "/api/v1/admin/events?event_type=order.placed&limit=5", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, "order.placed", env.events.got.EventType)
	assert.Equal(t, int64(5), env.events.got.Limit)

	event := body["events"].([]any)[0].(map[string]any)
	assert.Equal(t, "20.00", event["payload"].(map[string]any)["total"])
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/api/v1/auth/dashboard", env.token(t, "u1", identitydomain.RoleCustomer), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Contains(t, body, "categories")
	assert.Equal(t, float64(0), body["cart_item_count"])

	rec = env.do(t, http.MethodGet, "/api/v1/auth/dashboard", env.token(t, "a1", identitydomain.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode(t, rec), "summary")
}

func TestIPRateLimiter_PrunesIdleVisitors(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	now := time.Now()
	l.now = func() time.Time { return now }
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))

	now = now.Add(time.Hour)
	l.prune(now)
	assert.Empty(t, l.limiters)
}
