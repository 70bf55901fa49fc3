package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Pradipta/lokapasar/cart/internal/cache"
	"github.com/Pradipta/lokapasar/cart/internal/otel"
	"github.com/Pradipta/lokapasar/cart/pkg/response"
	"github.com/Pradipta/lokapasar/internal/config"
	inErrors "github.com/Pradipta/lokapasar/internal/errors"
	inHttp "github.com/Pradipta/lokapasar/internal/http"
	"github.com/Pradipta/lokapasar/internal/log"
	inOtel "github.com/Pradipta/lokapasar/internal/otel"
	"github.com/Pradipta/lokapasar/internal/repository"
)

type CartService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
	config  *config.Config
}

func NewCartService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
	config *config.Config,
) CartService {
	return CartService{pool: pool, queries: queries, cache: cache, config: config}
}

// FindCartByUserId loads the shopper's full cart snapshot, cache first,
// database on miss.
func (s CartService) FindCartByUserId(
	c context.Context,
	userId uuid.UUID,
) (cart response.Cart, err error) {
	c, span := otel.Tracer.Start(c, "CartService FindCartByUserId")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KEY_CARTS, userId.String())

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FindCartByUserId").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart in cache").Logger()
	logger.Info().Msg("finding cart in cache")
	jsonCache, err := s.cache.JSONGet(c, cacheKey, "$").Result()
	if err != nil || jsonCache == "" {
		logger.Info().Err(err).Msg("cart not in cache, falling back to db")
		c = logger.WithContext(c)
		return s.refetchCart(c, userId)
	}
	logger.Info().Msg("found cart in cache")

	logger = logger.With().Str(log.KeyProcess, "unmarshaling cache").Logger()
	logger.Info().Msg("unmarshaling cache")
	carts := []response.Cart{}
	err = json.Unmarshal([]byte(jsonCache), &carts)
	if err != nil || len(carts) == 0 {
		err = fmt.Errorf("failed unmarshaling cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		c = logger.WithContext(c)
		return s.refetchCart(c, userId)
	}
	logger.Info().Msg("unmarshaled cache")

	return carts[0], nil
}

// refetchCart reads the snapshot straight from the store and repopulates
// the cache. Every mutating operation ends here so the in-memory view
// always reflects the store, even after a failed mutation.
func (s CartService) refetchCart(
	c context.Context,
	userId uuid.UUID,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService refetchCart")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KEY_CARTS, userId.String())

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService refetchCart").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart items in db").Logger()
	logger.Info().Msg("finding cart items in db")
	rows, err := s.queries.FindCartItemsByUserId(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding cart items in db with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{UserId: userId, CartItems: []response.CartItem{}}, err
	}
	logger.Info().Msgf("found %d cart items in db", len(rows))

	cart := repository.CartResponse(userId, rows)

	logger = logger.With().Str(log.KeyProcess, "inserting cart to cache").Logger()
	logger.Info().Msg("inserting cart to cache")
	err = s.cache.JSONSet(c, cacheKey, "$", cart).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting cart to cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return cart, nil
	}
	s.cache.Expire(c, cacheKey, time.Hour)
	logger.Info().Msg("inserted cart to cache")

	return cart, nil
}

func (s CartService) invalidateCart(c context.Context, userId uuid.UUID) {
	cacheKey := fmt.Sprintf(cache.KEY_CARTS, userId.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService invalidateCart").
		Str(log.KeyCacheKey, cacheKey).
		Logger()
	if err := s.cache.Del(c, cacheKey).Err(); err != nil {
		logger.Error().Err(err).Msg("failed deleting cart from cache")
		return
	}
	logger.Info().Msg("deleted cart from cache")
}

// AddItem puts one unit of the product into the shopper's cart. The product
// stock fact is re-read first; an existing line is incremented through the
// update path and silently left alone when it already sits at the stock
// ceiling. The full snapshot is refetched afterward regardless of outcome.
func (s CartService) AddItem(
	c context.Context,
	userId uuid.UUID,
	productId uuid.UUID,
) (response.Cart, error) {
	attrs := trace.WithAttributes(
		attribute.String(log.KeyUserID, userId.String()),
		attribute.String(log.KeyProductID, productId.String()),
	)
	c, span := otel.Tracer.Start(c, "CartService AddItem", attrs)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddItem").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProductID, productId.String()).
		Logger()

	c = logger.WithContext(c)
	mutErr := s.addItem(c, userId, productId)
	if mutErr != nil {
		inOtel.RecordError(mutErr, span)
		logger.Error().Err(mutErr).Msg(mutErr.Error())
	}

	cart, err := s.refetchCart(c, userId)
	if mutErr != nil {
		return cart, mutErr
	}
	return cart, err
}

func (s CartService) addItem(c context.Context, userId, productId uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "CartService addItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService addItem").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product stock fact").Logger()
	logger.Info().Msg("finding product stock fact")
	product, err := s.queries.FindProductById(c, productId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return inErrors.ErrProductNotFound
		}
		return fmt.Errorf("failed finding productId=%s with error=%w", productId.String(), err)
	}
	logger = logger.With().Int32(log.KeyProductQuantity, product.Quantity).Logger()
	logger.Info().Msg("found product stock fact")

	if !product.InStock || product.Quantity <= 0 {
		return inErrors.ErrOutOfStock
	}

	logger = logger.With().Str(log.KeyProcess, "finding existing cart item").Logger()
	logger.Info().Msg("finding existing cart item")
	existing, err := s.queries.FindCartItemByUserIdAndProductId(
		c,
		repository.FindCartItemByUserIdAndProductIdParams{UserID: userId, ProductID: productId},
	)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed finding existing cart item with error=%w", err)
	}

	if err == nil {
		if existing.Quantity >= product.Quantity {
			// Deliberate no-op so rapid taps at the stock ceiling don't
			// surface an error to the shopper.
			span.AddEvent("quantity cap reached")
			logger.Info().
				Int32(log.KeyCartItemQuantity, existing.Quantity).
				Msg("quantity cap reached, leaving cart item untouched")
			return nil
		}
		s.invalidateCart(c, userId)
		logger = logger.With().Str(log.KeyProcess, "incrementing cart item").Logger()
		logger.Info().Msg("incrementing cart item")
		_, err = s.queries.UpdateCartItemQuantity(
			c,
			repository.UpdateCartItemQuantityParams{ID: existing.ID, Quantity: existing.Quantity + 1},
		)
		if err != nil {
			return fmt.Errorf("failed incrementing cart item with error=%w", err)
		}
		logger.Info().Msg("incremented cart item")
		return nil
	}

	s.invalidateCart(c, userId)
	logger = logger.With().Str(log.KeyProcess, "inserting cart item").Logger()
	logger.Info().Msg("inserting cart item")
	_, err = s.queries.InsertCartItem(
		c,
		repository.InsertCartItemParams{
			ID:        uuid.New(),
			UserID:    userId,
			ProductID: productId,
			Quantity:  1,
		},
	)
	if err != nil {
		return fmt.Errorf("failed inserting cart item with error=%w", err)
	}
	logger.Info().Msg("inserted cart item")
	return nil
}

// UpdateItemQuantity sets the line to the target quantity. Zero or negative
// delegates to removal, a target beyond current stock is a silent no-op.
func (s CartService) UpdateItemQuantity(
	c context.Context,
	userId uuid.UUID,
	cartItemId uuid.UUID,
	quantity int32,
) (response.Cart, error) {
	attrs := trace.WithAttributes(
		attribute.String(log.KeyUserID, userId.String()),
		attribute.String(log.KeyCartItemID, cartItemId.String()),
		attribute.Int(log.KeyCartItemQuantity, int(quantity)),
	)
	c, span := otel.Tracer.Start(c, "CartService UpdateItemQuantity", attrs)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateItemQuantity").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyCartItemID, cartItemId.String()).
		Int32(log.KeyCartItemQuantity, quantity).
		Logger()

	c = logger.WithContext(c)
	mutErr := s.updateItemQuantity(c, userId, cartItemId, quantity)
	if mutErr != nil {
		inOtel.RecordError(mutErr, span)
		logger.Error().Err(mutErr).Msg(mutErr.Error())
	}

	cart, err := s.refetchCart(c, userId)
	if mutErr != nil {
		return cart, mutErr
	}
	return cart, err
}

// UpdateItemQuantityByProductId is the same contract as UpdateItemQuantity
// resolved by product id, for callers that only track product identity.
func (s CartService) UpdateItemQuantityByProductId(
	c context.Context,
	userId uuid.UUID,
	productId uuid.UUID,
	quantity int32,
) (response.Cart, error) {
	attrs := trace.WithAttributes(
		attribute.String(log.KeyUserID, userId.String()),
		attribute.String(log.KeyProductID, productId.String()),
		attribute.Int(log.KeyCartItemQuantity, int(quantity)),
	)
	c, span := otel.Tracer.Start(c, "CartService UpdateItemQuantityByProductId", attrs)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateItemQuantityByProductId").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProductID, productId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "resolving cart item by product").Logger()
	logger.Info().Msg("resolving cart item by product")
	c = logger.WithContext(c)
	existing, err := s.queries.FindCartItemByUserIdAndProductId(
		c,
		repository.FindCartItemByUserIdAndProductIdParams{UserID: userId, ProductID: productId},
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.ErrProductNotFound
		} else {
			err = fmt.Errorf("failed resolving cart item by product with error=%w", err)
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		cart, ferr := s.refetchCart(c, userId)
		if ferr != nil {
			return cart, ferr
		}
		return cart, err
	}
	logger.Info().Msgf("resolved cartItemId=%s", existing.ID.String())

	return s.UpdateItemQuantity(c, userId, existing.ID, quantity)
}

func (s CartService) updateItemQuantity(
	c context.Context,
	userId uuid.UUID,
	cartItemId uuid.UUID,
	quantity int32,
) error {
	c, span := otel.Tracer.Start(c, "CartService updateItemQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService updateItemQuantity").
		Logger()

	if quantity <= 0 {
		logger.Info().Msg("target quantity is non-positive, removing cart item")
		c = logger.WithContext(c)
		return s.removeItem(c, userId, cartItemId)
	}

	logger = logger.With().Str(log.KeyProcess, "finding cart item").Logger()
	logger.Info().Msg("finding cart item")
	item, err := s.queries.FindCartItemById(
		c,
		repository.FindCartItemByIdParams{ID: cartItemId, UserID: userId},
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return inErrors.ErrCartItemNotFound
		}
		return fmt.Errorf("failed finding cartItemId=%s with error=%w", cartItemId.String(), err)
	}
	logger.Info().Msg("found cart item")

	logger = logger.With().Str(log.KeyProcess, "finding product stock fact").Logger()
	logger.Info().Msg("finding product stock fact")
	product, err := s.queries.FindProductById(c, item.ProductID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return inErrors.ErrProductNotFound
		}
		return fmt.Errorf("failed finding productId=%s with error=%w", item.ProductID.String(), err)
	}
	logger = logger.With().Int32(log.KeyProductQuantity, product.Quantity).Logger()
	logger.Info().Msg("found product stock fact")

	if !product.InStock || product.Quantity <= 0 {
		return inErrors.ErrOutOfStock
	}

	if quantity > product.Quantity {
		// Same deliberate no-op as the add path, tolerates rapid
		// increment taps at the boundary.
		span.AddEvent("quantity cap reached")
		logger.Info().Msg("target quantity exceeds stock, leaving cart item untouched")
		return nil
	}

	s.invalidateCart(c, userId)
	logger = logger.With().Str(log.KeyProcess, "updating cart item quantity").Logger()
	logger.Info().Msg("updating cart item quantity")
	_, err = s.queries.UpdateCartItemQuantity(
		c,
		repository.UpdateCartItemQuantityParams{ID: cartItemId, Quantity: quantity},
	)
	if err != nil {
		return fmt.Errorf("failed updating cart item quantity with error=%w", err)
	}
	logger.Info().Msg("updated cart item quantity")
	return nil
}

// RemoveItem deletes the line unconditionally and refetches the snapshot.
func (s CartService) RemoveItem(
	c context.Context,
	userId uuid.UUID,
	cartItemId uuid.UUID,
) (response.Cart, error) {
	attrs := trace.WithAttributes(
		attribute.String(log.KeyUserID, userId.String()),
		attribute.String(log.KeyCartItemID, cartItemId.String()),
	)
	c, span := otel.Tracer.Start(c, "CartService RemoveItem", attrs)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveItem").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyCartItemID, cartItemId.String()).
		Logger()

	c = logger.WithContext(c)
	mutErr := s.removeItem(c, userId, cartItemId)
	if mutErr != nil {
		inOtel.RecordError(mutErr, span)
		logger.Error().Err(mutErr).Msg(mutErr.Error())
	}

	cart, err := s.refetchCart(c, userId)
	if mutErr != nil {
		return cart, mutErr
	}
	return cart, err
}

func (s CartService) removeItem(c context.Context, userId, cartItemId uuid.UUID) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService removeItem").
		Str(log.KeyProcess, "deleting cart item").
		Logger()

	s.invalidateCart(c, userId)

	logger.Info().Msg("deleting cart item")
	_, err := s.queries.DeleteCartItemById(
		c,
		repository.DeleteCartItemByIdParams{ID: cartItemId, UserID: userId},
	)
	if err != nil {
		return fmt.Errorf("failed deleting cartItemId=%s with error=%w", cartItemId.String(), err)
	}
	logger.Info().Msg("deleted cart item")
	return nil
}

// ClearCart deletes every line belonging to the shopper, used after an
// order is placed.
func (s CartService) ClearCart(
	c context.Context,
	userId uuid.UUID,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService ClearCart",
		trace.WithAttributes(attribute.String(log.KeyUserID, userId.String())))
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Str(log.KeyUserID, userId.String()).
		Logger()

	s.invalidateCart(c, userId)

	logger = logger.With().Str(log.KeyProcess, "deleting cart items").Logger()
	logger.Info().Msg("deleting cart items")
	deleted, mutErr := s.queries.DeleteCartItemsByUserId(c, userId)
	if mutErr != nil {
		mutErr = fmt.Errorf("failed deleting cart items with error=%w", mutErr)
		inOtel.RecordError(mutErr, span)
		logger.Error().Err(mutErr).Msg(mutErr.Error())
	} else {
		logger.Info().Msgf("deleted %d cart items", deleted)
	}

	c = logger.WithContext(c)
	cart, err := s.refetchCart(c, userId)
	if mutErr != nil {
		return cart, mutErr
	}
	return cart, err
}

// CheckoutCart hands the snapshot to the external order-creation endpoint
// and clears the cart once the order is accepted.
func (s CartService) CheckoutCart(
	c context.Context,
	jwtToken *jwt.Token,
	userId uuid.UUID,
) (response.Cart, error) {
	requestId := log.RequestIDFromContext(c)
	attrs := trace.WithAttributes(
		attribute.String(log.KeyRequestID, requestId),
		attribute.String(log.KeyUserID, userId.String()),
	)
	c, span := otel.Tracer.Start(c, "CartService CheckoutCart", attrs)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService CheckoutCart").
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Info().Msg("finding cart")
	c = logger.WithContext(c)
	cart, err := s.refetchCart(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if len(cart.CartItems) == 0 {
		err = errors.New("cart is empty")
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found cart")

	logger = logger.With().Str(log.KeyProcess, "creating checkout request").Logger()
	logger.Info().Msg("creating checkout request to order endpoint")
	span.AddEvent("creating checkout request to order endpoint")
	cartJson, err := json.Marshal(cart)
	if err != nil {
		err = fmt.Errorf("failed marshaling cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	req, err := http.NewRequestWithContext(
		c,
		http.MethodPost,
		s.config.Checkout.OrderUrl,
		bytes.NewBuffer(cartJson),
	)
	if err != nil {
		err = fmt.Errorf("failed creating request to order endpoint with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	req.Header.Add("Authorization", "Bearer "+jwtToken.Raw)
	req.Header.Add(inHttp.HeaderContentType, inHttp.HeaderValueJson)
	req.Header.Add(inHttp.HeaderRequestID, requestId)
	logger.Info().Msg("created checkout request to order endpoint")

	logger = logger.With().Str(log.KeyProcess, "sending checkout request").Logger()
	logger.Info().Msg("sending checkout request to order endpoint")
	span.AddEvent("sending checkout request to order endpoint")
	resp, err := otelhttp.DefaultClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed checkout cart to order endpoint with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	defer resp.Body.Close()
	span.AddEvent("sent checkout request to order endpoint")
	logger.Info().Msg("sent checkout request to order endpoint")

	respBody := map[string]interface{}{}
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil && resp.StatusCode == http.StatusOK {
		err = fmt.Errorf("failed decoding checkout response with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if resp.StatusCode != http.StatusOK {
		message, ok := respBody["message"]
		if !ok || message == nil {
			message = resp.Status
		}
		err = fmt.Errorf(
			"order endpoint returned status code=%d with message=%v",
			resp.StatusCode,
			message,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	span.AddEvent("cart successfully checked out")
	logger.Info().Msg("cart successfully checked out")

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	c = logger.WithContext(c)
	_, err = s.ClearCart(c, userId)
	if err != nil {
		err = fmt.Errorf("failed clearing cart after checkout with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return cart, err
	}
	logger.Info().Msg("cleared cart")

	return cart, nil
}

// PlatformFee is the flat fee from configuration, applied by callers when
// summarizing the cart. It is never persisted with the cart.
func (s CartService) PlatformFee(c context.Context) decimal.Decimal {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService PlatformFee").
		Logger()

	fee, err := decimal.NewFromString(s.config.Checkout.PlatformFee)
	if err != nil {
		logger.Error().Err(err).Msgf("failed parsing platform fee=%s, using zero", s.config.Checkout.PlatformFee)
		return decimal.Zero
	}
	return fee
}
