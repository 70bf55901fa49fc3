package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/Pradipta/lokapasar/internal/config"
	inErrors "github.com/Pradipta/lokapasar/internal/errors"
)

var (
	productKopi      = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	productTeh       = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	productGula      = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	productMadu      = uuid.MustParse("44444444-4444-4444-4444-444444444444")
	seedProductsPath = filepath.Join("..", "..", "..", "seed", "products.seed.sql")
)

func testContext() context.Context {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339Nano}).
		WithContext(context.Background())
}

func TestAddItem(t *testing.T) {
	c := testContext()
	fixture := setup(t, c, seedProductsPath)
	defer fixture.teardown(t)

	userId := uuid.New()

	cart, err := fixture.service.AddItem(c, userId, productKopi)
	assert.NoError(t, err)
	assert.Len(t, cart.CartItems, 1)
	assert.Equal(t, productKopi, cart.CartItems[0].ProductId)
	assert.Equal(t, int32(1), cart.CartItems[0].Quantity)

	cart, err = fixture.service.AddItem(c, userId, productKopi)
	assert.NoError(t, err)
	assert.Len(t, cart.CartItems, 1, "re-adding the same product should merge into one line")
	assert.Equal(t, int32(2), cart.CartItems[0].Quantity)
}

func TestAddItemAtStockCeiling(t *testing.T) {
	c := testContext()
	fixture := setup(t, c, seedProductsPath)
	defer fixture.teardown(t)

	userId := uuid.New()

	// Teh Melati is seeded with a stock of 3.
	cart, err := fixture.service.AddItem(c, userId, productTeh)
	assert.NoError(t, err)
	assert.Len(t, cart.CartItems, 1)

	cart, err = fixture.service.UpdateItemQuantity(c, userId, cart.CartItems[0].ID, 3)
	assert.NoError(t, err)
	assert.Equal(t, int32(3), cart.CartItems[0].Quantity)

	cart, err = fixture.service.AddItem(c, userId, productTeh)
	assert.NoError(t, err, "adding at the stock ceiling should not surface an error")
	assert.Len(t, cart.CartItems, 1)
	assert.Equal(
		t,
		int32(3),
		cart.CartItems[0].Quantity,
		"quantity should stay at the stock ceiling",
	)
}

func TestAddItemOutOfStock(t *testing.T) {
	c := testContext()
	fixture := setup(t, c, seedProductsPath)
	defer fixture.teardown(t)

	userId := uuid.New()

	// Gula Aren is seeded out of stock.
	cart, err := fixture.service.AddItem(c, userId, productGula)
	assert.ErrorIs(t, err, inErrors.ErrOutOfStock)
	assert.Empty(t, cart.CartItems, "failed add should still return the refetched snapshot")
}

func TestAddItemUnknownProduct(t *testing.T) {
	c := testContext()
	fixture := setup(t, c, seedProductsPath)
	defer fixture.teardown(t)

	userId := uuid.New()

	cart, err := fixture.service.AddItem(c, userId, uuid.New())
	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
	assert.Empty(t, cart.CartItems)
}

func TestUpdateItemQuantity(t *testing.T) {
	c := testContext()
	fixture := setup(t, c, seedProductsPath)
	defer fixture.teardown(t)

	userId := uuid.New()

	cart, err := fixture.service.AddItem(c, userId, productKopi)
	assert.NoError(t, err)
	cartItemId := cart.CartItems[0].ID

	cart, err = fixture.service.UpdateItemQuantity(c, userId, cartItemId, 5)
	assert.NoError(t, err)
	assert.Equal(t, int32(5), cart.CartItems[0].Quantity)
}

func TestUpdateItemQuantityBeyondStock(t *testing.T) {
	c := testContext()
	fixture := setup(t, c, seedProductsPath)
	defer fixture.teardown(t)

	userId := uuid.New()

	cart, err := fixture.service.AddItem(c, userId, productTeh)
	assert.NoError(t, err)
	cartItemId := cart.CartItems[0].ID

	cart, err = fixture.service.UpdateItemQuantity(c, userId, cartItemId, 99)
	assert.NoError(t, err, "target beyond stock should not surface an error")
	assert.Equal(
		t,
		int32(1),
		cart.CartItems[0].Quantity,
		"quantity should be left untouched when the target exceeds stock",
	)
}

func TestUpdateItemQuantityToZeroRemovesItem(t *testing.T) {
	c := testContext()
	fixture := setup(t, c, seedProductsPath)
	defer fixture.teardown(t)

	userId := uuid.New()

	cart, err := fixture.service.AddItem(c, userId, productKopi)
	assert.NoError(t, err)
	cartItemId := cart.CartItems[0].ID

	cart, err = fixture.service.UpdateItemQuantity(c, userId, cartItemId, 0)
	assert.NoError(t, err)
	assert.Empty(t, cart.CartItems, "zero quantity should remove the line")
}

func TestUpdateItemQuantityByProductId(t *testing.T) {
	c := testContext()
	fixture := setup(t, c, seedProductsPath)
	defer fixture.teardown(t)

	userId := uuid.New()

	_, err := fixture.service.AddItem(c, userId, productMadu)
	assert.NoError(t, err)

	cart, err := fixture.service.UpdateItemQuantityByProductId(c, userId, productMadu, 4)
	assert.NoError(t, err)
	assert.Len(t, cart.CartItems, 1)
	assert.Equal(t, int32(4), cart.CartItems[0].Quantity)
}

func TestUpdateItemQuantityByProductIdMissingLine(t *testing.T) {
	c := testContext()
	fixture := setup(t, c, seedProductsPath)
	defer fixture.teardown(t)

	userId := uuid.New()

	cart, err := fixture.service.UpdateItemQuantityByProductId(c, userId, productKopi, 2)
	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
	assert.Empty(t, cart.CartItems)
}

func TestRemoveItem(t *testing.T) {
	c := testContext()
	fixture := setup(t, c, seedProductsPath)
	defer fixture.teardown(t)

	userId := uuid.New()

	cart, err := fixture.service.AddItem(c, userId, productKopi)
	assert.NoError(t, err)
	_, err = fixture.service.AddItem(c, userId, productMadu)
	assert.NoError(t, err)

	cart, err = fixture.service.RemoveItem(c, userId, cart.CartItems[0].ID)
	assert.NoError(t, err)
	assert.Len(t, cart.CartItems, 1)
	assert.Equal(t, productMadu, cart.CartItems[0].ProductId)
}

func TestClearCart(t *testing.T) {
	c := testContext()
	fixture := setup(t, c, seedProductsPath)
	defer fixture.teardown(t)

	userId := uuid.New()

	_, err := fixture.service.AddItem(c, userId, productKopi)
	assert.NoError(t, err)
	_, err = fixture.service.AddItem(c, userId, productMadu)
	assert.NoError(t, err)

	cart, err := fixture.service.ClearCart(c, userId)
	assert.NoError(t, err)
	assert.Empty(t, cart.CartItems)

	cart, err = fixture.service.FindCartByUserId(c, userId)
	assert.NoError(t, err)
	assert.Empty(t, cart.CartItems)
}

func TestFindCartByUserIdEmpty(t *testing.T) {
	c := testContext()
	fixture := setup(t, c, seedProductsPath)
	defer fixture.teardown(t)

	cart, err := fixture.service.FindCartByUserId(c, uuid.New())
	assert.NoError(t, err)
	assert.NotNil(t, cart.CartItems, "empty cart should carry an empty slice, not nil")
	assert.Empty(t, cart.CartItems)
}

func TestFindCartByUserIdIdempotent(t *testing.T) {
	c := testContext()
	// Stack image ships the JSON commands, so the second fetch is served
	// from the cache instead of falling back to the store.
	fixture := setupWithRedisImage(t, c, "redis/redis-stack-server:7.4.0-v3", seedProductsPath)
	defer fixture.teardown(t)

	userId := uuid.New()

	_, err := fixture.service.AddItem(c, userId, productKopi)
	assert.NoError(t, err)
	_, err = fixture.service.AddItem(c, userId, productMadu)
	assert.NoError(t, err)

	first, err := fixture.service.FindCartByUserId(c, userId)
	assert.NoError(t, err)
	second, err := fixture.service.FindCartByUserId(c, userId)
	assert.NoError(t, err)

	assert.Len(t, first.CartItems, 2)
	assert.Len(t, second.CartItems, 2)
	for i := range first.CartItems {
		assert.Equal(t, first.CartItems[i].ID, second.CartItems[i].ID,
			"line order should not change between fetches")
	}

	firstJson, err := json.Marshal(first)
	assert.NoError(t, err)
	secondJson, err := json.Marshal(second)
	assert.NoError(t, err)
	assert.JSONEq(
		t,
		string(firstJson),
		string(secondJson),
		"repeated fetch without a mutation should yield an identical snapshot",
	)
}

func TestUpdateItemQuantityUnknownCartItem(t *testing.T) {
	c := testContext()
	fixture := setup(t, c, seedProductsPath)
	defer fixture.teardown(t)

	userId := uuid.New()

	cart, err := fixture.service.UpdateItemQuantity(c, userId, uuid.New(), 2)
	assert.ErrorIs(t, err, inErrors.ErrCartItemNotFound)
	assert.Empty(t, cart.CartItems)
}

func TestCheckoutCart(t *testing.T) {
	c := testContext()
	fixture := setup(t, c, seedProductsPath)
	defer fixture.teardown(t)

	orderEndpoint := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{"message": "order created"})
		}),
	)
	defer orderEndpoint.Close()

	cfg := &config.Config{
		Checkout: config.Checkout{OrderUrl: orderEndpoint.URL, PlatformFee: "1000"},
	}
	checkoutService := NewCartService(fixture.pool, fixture.queries, fixture.cache, cfg)

	userId := uuid.New()
	_, err := checkoutService.AddItem(c, userId, productKopi)
	assert.NoError(t, err)

	cart, err := checkoutService.CheckoutCart(c, &jwt.Token{Raw: "test-token"}, userId)
	assert.NoError(t, err)
	assert.Len(t, cart.CartItems, 1, "checkout should return the pre-checkout snapshot")

	cart, err = checkoutService.FindCartByUserId(c, userId)
	assert.NoError(t, err)
	assert.Empty(t, cart.CartItems, "cart should be cleared once the order is accepted")
}

func TestCheckoutCartGatewayFailure(t *testing.T) {
	c := testContext()
	fixture := setup(t, c, seedProductsPath)
	defer fixture.teardown(t)

	orderEndpoint := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html><body>Bad Gateway</body></html>"))
		}),
	)
	defer orderEndpoint.Close()

	cfg := &config.Config{
		Checkout: config.Checkout{OrderUrl: orderEndpoint.URL, PlatformFee: "1000"},
	}
	checkoutService := NewCartService(fixture.pool, fixture.queries, fixture.cache, cfg)

	userId := uuid.New()
	_, err := checkoutService.AddItem(c, userId, productKopi)
	assert.NoError(t, err)

	_, err = checkoutService.CheckoutCart(c, &jwt.Token{Raw: "test-token"}, userId)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502 Bad Gateway",
		"undecodable body should fall back to the status text")
	assert.NotContains(t, err.Error(), "<nil>")

	cart, err := checkoutService.FindCartByUserId(c, userId)
	assert.NoError(t, err)
	assert.Len(t, cart.CartItems, 1, "failed checkout should leave the cart intact")
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	c := testContext()
	fixture := setup(t, c, seedProductsPath)
	defer fixture.teardown(t)

	userA := uuid.New()
	userB := uuid.New()

	_, err := fixture.service.AddItem(c, userA, productKopi)
	assert.NoError(t, err)

	cart, err := fixture.service.FindCartByUserId(c, userB)
	assert.NoError(t, err)
	assert.Empty(t, cart.CartItems, "another shopper's additions should not leak")
}
