// Package redis caches catalog search results. Entries are keyed by a
// generation counter that every seat change bumps; listings written under an
// older generation are never read again and expire with their TTL.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/royale_boxoffice/internal/core/domain"
	"github.com/srgjo27/royale_boxoffice/internal/core/ports"
	"github.com/srgjo27/royale_boxoffice/internal/platform/logging"
)

const generationKey = "performances:gen"

type CachedCatalog struct {
	next   ports.Catalog
	client *redis.Client
	ttl    time.Duration
}

func NewCachedCatalog(next ports.Catalog, client *redis.Client, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{next: next, client: client, ttl: ttl}
}

func (c *CachedCatalog) FindAll(ctx context.Context) ([]domain.Performance, error) {
	return c.cached(ctx, "all", c.next.FindAll)
}

func (c *CachedCatalog) FindByTitle(ctx context.Context, title string) ([]domain.Performance, error) {
	return c.cached(ctx, "title:"+strings.ToLower(strings.TrimSpace(title)), func(ctx context.Context) ([]domain.Performance, error) {
		return c.next.FindByTitle(ctx, title)
	})
}

func (c *CachedCatalog) FindByDate(ctx context.Context, date time.Time) ([]domain.Performance, error) {
	return c.cached(ctx, "date:"+date.Format(time.DateOnly), func(ctx context.Context) ([]domain.Performance, error) {
		return c.next.FindByDate(ctx, date)
	})
}

// FindByID always reads through; the reconciler needs live counts.
func (c *CachedCatalog) FindByID(ctx context.Context, performanceID int64) (*domain.Performance, error) {
	return c.next.FindByID(ctx, performanceID)
}

func (c *CachedCatalog) DecrementSeats(ctx context.Context, performanceID int64, circle, stall int) (*domain.Performance, error) {
	p, err := c.next.DecrementSeats(ctx, performanceID, circle, stall)
	if err != nil {
		return nil, err
	}

	c.invalidate(ctx)

	return p, nil
}

func (c *CachedCatalog) RestoreSeats(ctx context.Context, performanceID int64, circle, stall int) (*domain.Performance, error) {
	p, err := c.next.RestoreSeats(ctx, performanceID, circle, stall)
	if err != nil {
		return nil, err
	}

	c.invalidate(ctx)

	return p, nil
}

// cached serves a search from redis, falling back to the wrapped catalog on a
// miss or on any redis failure.
func (c *CachedCatalog) cached(ctx context.Context, suffix string, load func(ctx context.Context) ([]domain.Performance, error)) ([]domain.Performance, error) {
	log := logging.FromContext(ctx).WithField("cache_key", suffix)

	gen, err := c.generation(ctx)
	if err != nil {
		log.WithError(err).Warn("Cache unavailable, reading catalog")
		return load(ctx)
	}

	key := fmt.Sprintf("performances:%d:%s", gen, suffix)

	payload, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var out []domain.Performance
		if err := json.Unmarshal([]byte(payload), &out); err == nil {
			return out, nil
		}

		log.Warn("Discarding undecodable cache entry")
	} else if !errors.Is(err, redis.Nil) {
		log.WithError(err).Warn("Cache read failed")
	}

	found, err := load(ctx)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(found)
	if err != nil {
		return found, nil
	}

	if err := c.client.Set(ctx, key, string(encoded), c.ttl).Err(); err != nil {
		log.WithError(err).Warn("Cache write failed")
	}

	return found, nil
}

func (c *CachedCatalog) generation(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, generationKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	if err != nil {
		return 0, err
	}

	return strconv.ParseInt(v, 10, 64)
}

func (c *CachedCatalog) invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		logging.FromContext(ctx).WithError(err).Error("Failed to invalidate performance cache")
	}
}

// NewClient connects and pings with a short timeout, as the API does at startup.
func NewClient(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return client, nil
}
