package carrier

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"parcel/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// CachedClient decorates a CarrierClient with a short-lived Redis cache on
// FetchEvents. It serves the public "where is my parcel" endpoint, where
// repeated lookups for the same code are common and a slightly stale view is
// acceptable; reconciliation must use the undecorated client.
//
// Cache failures degrade to a direct carrier call: Redis being down never
// makes a lookup fail.
type CachedClient struct {
	inner  ports.CarrierClient
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedClient creates the caching decorator. ttl bounds the staleness of
// served events.
func NewCachedClient(inner ports.CarrierClient, redisClient *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedClient {
	return &CachedClient{
		inner:  inner,
		redis:  redisClient,
		ttl:    ttl,
		logger: logger.With("component", "carrier_cache"),
	}
}

// cacheKey namespaces the carrier feed entries in Redis.
func cacheKey(externalTrackingID string) string {
	return "carrier:events:" + externalTrackingID
}

// FetchEvents returns cached events when fresh, otherwise fetches from the
// carrier and stores the result for ttl.
func (c *CachedClient) FetchEvents(ctx context.Context, externalTrackingID string) ([]ports.CarrierEvent, error) {
	key := cacheKey(externalTrackingID)

	cached, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var events []ports.CarrierEvent
		if unmarshalErr := json.Unmarshal(cached, &events); unmarshalErr == nil {
			return events, nil
		}
		// Unreadable entry: fall through to a fresh fetch and overwrite it.
	} else if err != redis.Nil {
		c.logger.WarnContext(ctx, "Carrier cache read failed, querying carrier directly", "error", err)
	}

	events, err := c.inner.FetchEvents(ctx, externalTrackingID)
	if err != nil {
		return nil, err
	}

	if payload, marshalErr := json.Marshal(events); marshalErr == nil {
		if setErr := c.redis.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			c.logger.WarnContext(ctx, "Carrier cache write failed", "error", setErr)
		}
	}

	return events, nil
}

// ListShipments passes through to the carrier; the listing is an admin
// operation and is never cached.
func (c *CachedClient) ListShipments(ctx context.Context) ([]json.RawMessage, error) {
	return c.inner.ListShipments(ctx)
}

// CreateShipment passes through to the carrier. Registering a shipment is a
// mutation and must never be served from cache.
func (c *CachedClient) CreateShipment(ctx context.Context, request ports.ShipmentRequest) (string, error) {
	return c.inner.CreateShipment(ctx, request)
}
