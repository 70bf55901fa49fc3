package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	inErrors "github.com/Pradipta/lokapasar/internal/errors"
	"github.com/Pradipta/lokapasar/internal/log"
	inOtel "github.com/Pradipta/lokapasar/internal/otel"
	"github.com/Pradipta/lokapasar/internal/repository"
	"github.com/Pradipta/lokapasar/product/internal/cache"
	"github.com/Pradipta/lokapasar/product/internal/otel"
	"github.com/Pradipta/lokapasar/product/pkg/request"
	"github.com/Pradipta/lokapasar/product/pkg/response"
)

type ProductService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewProductService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) ProductService {
	return ProductService{pool: pool, queries: queries, cache: cache}
}

func (svc ProductService) InsertProduct(
	c context.Context,
	param request.Product,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService InsertProduct").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product in database").Logger()
	logger.Trace().Msg("finding product in database")
	span.AddEvent("finding product in database")
	existing, err := svc.queries.FindProductByName(c, param.Name)
	if err == nil {
		err = errors.New("product already exists")
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return existing.Response(), err
	}
	span.AddEvent("product does not exist in database")
	logger.Info().Msg("product does not exist in database")

	logger = logger.With().Str(log.KeyProcess, "inserting product to database").Logger()
	logger.Trace().Msg("inserting product to database")
	span.AddEvent("inserting product to database")
	product, err := svc.queries.InsertProduct(c, repository.InsertProductParams{
		SellerID: param.SellerId,
		Name:     param.Name,
		ImageUrl: param.ImageUrl,
		Price: pgtype.Numeric{
			Exp:              param.Price.Exponent(),
			InfinityModifier: pgtype.Finite,
			Int:              param.Price.Coefficient(),
			NaN:              false,
			Valid:            true,
		},
		IsFlashSale: param.IsFlashSale,
		FlashPrice: pgtype.Numeric{
			Exp:              param.FlashPrice.Exponent(),
			InfinityModifier: pgtype.Finite,
			Int:              param.FlashPrice.Coefficient(),
			NaN:              false,
			Valid:            true,
		},
		Quantity: param.Quantity,
		InStock:  param.InStock,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	span.AddEvent("inserted product to database")
	logger = logger.With().Any(log.KeyProduct, product).Logger()
	logger.Info().Msg("inserted product to database")

	cacheKey := cache.KEY_PRODUCTS + product.ID.String()
	logger = logger.With().
		Str(log.KeyProcess, "inserting product to cache").
		Str(log.KeyCacheKey, cacheKey).
		Logger()
	logger.Trace().Msg("inserting product to cache")
	span.AddEvent("inserting product to cache")
	err = svc.cache.JSONSet(c, cacheKey, "$", product.Response()).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting product to cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return product.Response(), nil
	}
	svc.cache.Expire(c, cacheKey, time.Hour)
	span.AddEvent("inserted product to cache")
	logger.Info().Msg("inserted product to cache")

	return product.Response(), nil
}

func (svc ProductService) GetProducts(
	c context.Context,
) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService GetProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService GetProducts").
		Str(log.KeyProcess, "finding products in database").
		Logger()

	logger.Trace().Msg("finding products in database")
	span.AddEvent("finding products in database")
	products, err := svc.queries.GetProducts(c)
	if err != nil {
		err = fmt.Errorf("failed finding products in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	span.AddEvent("found products in database")
	logger.Info().Msg("found products in database")

	responses := make([]response.Product, 0, len(products))
	for _, product := range products {
		responses = append(responses, product.Response())
	}
	return responses, nil
}

func (svc ProductService) FindProductsBySellerId(
	c context.Context,
	sellerId uuid.UUID,
) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductsBySellerId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductsBySellerId").
		Str(log.KeySellerID, sellerId.String()).
		Str(log.KeyProcess, "finding products in database").
		Logger()

	logger.Trace().Msg("finding seller products in database")
	span.AddEvent("finding seller products in database")
	products, err := svc.queries.FindProductsBySellerId(c, sellerId)
	if err != nil {
		err = fmt.Errorf("failed finding seller products in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	span.AddEvent("found seller products in database")
	logger.Info().Msg("found seller products in database")

	responses := make([]response.Product, 0, len(products))
	for _, product := range products {
		responses = append(responses, product.Response())
	}
	return responses, nil
}

func (svc ProductService) FindProductById(
	c context.Context,
	id uuid.UUID,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	cacheKey := cache.KEY_PRODUCTS + id.String()
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Str(log.KeyProductID, id.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product in cache").Logger()
	logger.Trace().Msg("finding product in cache")
	jsonCache, err := svc.cache.JSONGet(c, cacheKey, "$").Result()
	if err == nil && jsonCache != "" {
		span.AddEvent("found product in cache")
		logger.Debug().Msg("found product in cache")

		cached := []response.Product{}
		if err := json.Unmarshal([]byte(jsonCache), &cached); err == nil && len(cached) == 1 {
			logger.Info().Msg("found product in cache")
			return cached[0], nil
		}
		logger.Info().Msg("failed unmarshaling cached product, falling back to database")
	}

	logger = logger.With().Str(log.KeyProcess, "finding product in database").Logger()
	logger.Trace().Msg("finding product in database")
	span.AddEvent("finding product in database")
	product, err := svc.queries.FindProductById(c, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.ErrProductNotFound
		}
		err = fmt.Errorf("failed finding product in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	span.AddEvent("found product in database")
	logger = logger.With().Any(log.KeyProduct, product).Logger()

	logger = logger.With().Str(log.KeyProcess, "inserting product to cache").Logger()
	logger.Trace().Msg("inserting product to cache")
	if err := svc.cache.JSONSet(c, cacheKey, "$", product.Response()).Err(); err != nil {
		err = fmt.Errorf("failed inserting product to cache with error=%w", err)
		logger.Info().Err(err).Msg(err.Error())
	} else {
		svc.cache.Expire(c, cacheKey, time.Hour)
	}

	logger.Info().Msg("found product in database")
	return product.Response(), nil
}

// UpdateProductStock replaces the stock quantity and availability flag of
// a product. The cache entry is dropped first so readers never see stale
// stock after the write lands.
func (svc ProductService) UpdateProductStock(
	c context.Context,
	id uuid.UUID,
	param request.UpdateProductStock,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService UpdateProductStock")
	defer span.End()

	cacheKey := cache.KEY_PRODUCTS + id.String()
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService UpdateProductStock").
		Str(log.KeyProductID, id.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "removing product in cache").Logger()
	logger.Trace().Msg("removing product in cache")
	span.AddEvent("removing product in cache")
	if err := svc.cache.Del(c, cacheKey).Err(); err != nil {
		err = fmt.Errorf("failed removing product in cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	span.AddEvent("removed product in cache")
	logger.Info().Msg("removed product in cache")

	logger = logger.With().Str(log.KeyProcess, "updating product stock in database").Logger()
	logger.Trace().Msg("updating product stock in database")
	span.AddEvent("updating product stock in database")
	product, err := svc.queries.UpdateProductStock(c, repository.UpdateProductStockParams{
		ID:       id,
		Quantity: param.Quantity,
		InStock:  param.InStock && param.Quantity > 0,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.ErrProductNotFound
		}
		err = fmt.Errorf("failed updating product stock with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	span.AddEvent("updated product stock in database")
	logger = logger.With().Any(log.KeyProduct, product).Logger()
	logger.Info().Msg("updated product stock in database")

	return product.Response(), nil
}
