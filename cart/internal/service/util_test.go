package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/Pradipta/lokapasar/internal/config"
	"github.com/Pradipta/lokapasar/internal/repository"
)

type testFixture struct {
	cache          *redis.Client
	pool           *pgxpool.Pool
	pgContainer    *postgres.PostgresContainer
	redisContainer *testRedis.RedisContainer
	queries        *repository.Queries
	service        CartService
}

func setup(t *testing.T, c context.Context, seedPaths ...string) testFixture {
	t.Helper()
	return setupWithRedisImage(t, c, "redis:7.4.2-alpine3.21", seedPaths...)
}

// setupWithRedisImage exists so cache-path tests can run against an image
// that ships the JSON commands while the rest stay on plain redis.
func setupWithRedisImage(
	t *testing.T,
	c context.Context,
	redisImage string,
	seedPaths ...string,
) testFixture {
	t.Helper()

	initScripts := append(
		[]string{
			filepath.Join("..", "..", "..", "migrations", "000001_create_products_table.up.sql"),
			filepath.Join("..", "..", "..", "migrations", "000002_create_cart_items_table.up.sql"),
		},
		seedPaths...,
	)

	pgContainer, err := postgres.Run(
		c,
		"postgres:16.6-alpine3.21",
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_DB":       "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_PORT":     "5432",
			"POSTGRES_USER":     "postgres",
		}),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("postgres"),
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(initScripts...),
	)
	if err != nil {
		t.Fatalf("failed running postgres container with error: %s", err)
	}

	pgConnStr, err := pgContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting postgres connection string with error: %s", err)
	}

	pgConfig, err := pgxpool.ParseConfig(pgConnStr)
	if err != nil {
		t.Fatalf("failed parsing pgx config with error: %s", err)
	}

	pool, err := pgxpool.NewWithConfig(c, pgConfig)
	if err != nil {
		t.Fatalf("failed creating postgres pool with error: %s", err)
	}

	if err = pool.Ping(c); err != nil {
		t.Fatalf("failed ping postgres pool with error: %s", err)
	}

	redisContainer, err := testRedis.Run(c, redisImage)
	if err != nil {
		t.Fatalf("failed running redis container with error: %s", err)
	}

	redisConnStr, err := redisContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting redis connection string with error: %s", err)
	}

	redisOpt, err := redis.ParseURL(redisConnStr)
	if err != nil {
		t.Fatalf("failed parsing redis connection string with error: %s", err)
	}

	redisClient := redis.NewClient(redisOpt)
	if err = redisClient.Ping(c).Err(); err != nil {
		t.Fatalf("failed ping redis client with error: %s", err)
	}

	queries := repository.New(pool)
	cfg := &config.Config{Checkout: config.Checkout{PlatformFee: "1000"}}
	cartService := NewCartService(pool, queries, redisClient, cfg)

	return testFixture{
		cache:          redisClient,
		pool:           pool,
		pgContainer:    pgContainer,
		redisContainer: redisContainer,
		queries:        queries,
		service:        cartService,
	}
}

func (f testFixture) teardown(t *testing.T) {
	t.Helper()
	f.cache.Close()
	f.pool.Close()
	if err := testcontainers.TerminateContainer(f.pgContainer); err != nil {
		t.Fatalf("failed to terminate container: %s", err)
	}
	if err := testcontainers.TerminateContainer(f.redisContainer); err != nil {
		t.Fatalf("failed to terminate container: %s", err)
	}
}
