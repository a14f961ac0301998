package testutil

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/light-bringer/backoffice-service/internal/models/m_product"
	"github.com/light-bringer/backoffice-service/internal/models/m_user"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

// TestPassword is the password of every user created by CreateTestUser.
const TestPassword = "Secret123"

// Seed applies the mutations in a single blind write.
func Seed(t *testing.T, client *spanner.Client, muts ...*spanner.Mutation) {
	t.Helper()

	plan := committer.NewPlan()
	plan.AddMultiple(muts)
	require.NoError(t, committer.NewCommitter(client).Apply(context.Background(), plan), "failed to seed rows")
}

// CreateTestUser inserts an active user with TestPassword and returns its id.
func CreateTestUser(t *testing.T, client *spanner.Client, username, role string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	userID := uuid.New().String()
	Seed(t, client, m_user.NewModel().InsertMut(&m_user.Data{
		UserID:       userID,
		Username:     username,
		Email:        spanner.NullString{StringVal: username + "@example.com", Valid: true},
		FullName:     username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}))
	return userID
}

// CreateTestProduct inserts a product with the given price and stock.
// An empty price leaves the product unpriced and hidden.
func CreateTestProduct(t *testing.T, client *spanner.Client, name, price string, stock int64) string {
	t.Helper()

	data := &m_product.Data{
		ProductID:   uuid.New().String(),
		Name:        name,
		Description: "Test product description",
		Stock:       stock,
		Visible:     price != "",
	}
	if price != "" {
		amount, err := money.Parse(price)
		require.NoError(t, err)
		data.PriceNumerator, data.PriceDenominator, err = m_product.NullPrice(amount)
		require.NoError(t, err)
	}

	Seed(t, client, m_product.NewModel().InsertMut(data))
	return data.ProductID
}

// GetStock reads the current stock of a product.
func GetStock(t *testing.T, client *spanner.Client, productID string) int64 {
	t.Helper()

	row, err := client.Single().ReadRow(context.Background(), m_product.TableName, spanner.Key{productID}, []string{m_product.Stock})
	require.NoError(t, err, "failed to read product stock")

	var stock int64
	require.NoError(t, row.Columns(&stock))
	return stock
}

// ReservedUnits sums the quantities held in carts for a product.
func ReservedUnits(t *testing.T, client *spanner.Client, productID string) int64 {
	t.Helper()

	stmt := spanner.Statement{
		SQL:    "SELECT COALESCE(SUM(quantity), 0) FROM cart_items WHERE product_id = @productID",
		Params: map[string]interface{}{"productID": productID},
	}
	iter := client.Single().Query(context.Background(), stmt)
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to sum reserved units")

	var units int64
	require.NoError(t, row.Columns(&units))
	return units
}

// AssertOutboxEvent verifies an outbox event exists with the given event type.
func AssertOutboxEvent(t *testing.T, client *spanner.Client, eventType string) {
	t.Helper()

	stmt := spanner.Statement{
		SQL:    "SELECT event_id FROM outbox_events WHERE event_type = @eventType",
		Params: map[string]interface{}{"eventType": eventType},
	}

	iter := client.Single().Query(context.Background(), stmt)
	defer iter.Stop()

	_, err := iter.Next()
	require.NoError(t, err, "outbox event not found for type: %s", eventType)
}
