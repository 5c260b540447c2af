// Package redistracker keeps rider positions in Redis. Each position lives
// under its own key with a TTL, so a rider that stops reporting simply
// disappears from tracking instead of serving a stale fix.
package redistracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pharmadispatch/internal/core/domain/model/kernel"
	"pharmadispatch/internal/core/ports"
	"pharmadispatch/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
)

// DefaultPositionTTL is how long a reported position stays valid without a
// newer report.
const DefaultPositionTTL = 5 * time.Minute

type positionDocument struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	ReportedAt time.Time `json:"reported_at"`
}

// RedisLocationTracker implements LocationTracker over a Redis client.
type RedisLocationTracker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLocationTracker creates a tracker over an existing Redis client.
// A non-positive ttl falls back to DefaultPositionTTL.
func NewRedisLocationTracker(client *redis.Client, ttl time.Duration) (*RedisLocationTracker, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	if ttl <= 0 {
		ttl = DefaultPositionTTL
	}

	return &RedisLocationTracker{client: client, ttl: ttl}, nil
}

// Track records the rider's current position, resetting its expiry.
func (t *RedisLocationTracker) Track(ctx context.Context, riderID kernel.UUID, point kernel.GeoPoint) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if err := point.Validate(); err != nil {
		return err
	}

	doc := positionDocument{
		Latitude:   point.Latitude(),
		Longitude:  point.Longitude(),
		ReportedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	return t.client.Set(ctx, positionKey(riderID), payload, t.ttl).Err()
}

// LastKnown returns the rider's most recent unexpired position.
func (t *RedisLocationTracker) LastKnown(ctx context.Context, riderID kernel.UUID) (ports.RiderPosition, error) {
	if err := riderID.Validate(); err != nil {
		return ports.RiderPosition{}, err
	}

	payload, err := t.client.Get(ctx, positionKey(riderID)).Result()
	if errors.Is(err, redis.Nil) {
		return ports.RiderPosition{}, errs.NewObjectNotFoundError("rider position", riderID.String())
	}
	if err != nil {
		return ports.RiderPosition{}, err
	}

	var doc positionDocument
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return ports.RiderPosition{}, err
	}

	point, err := kernel.NewGeoPoint(doc.Latitude, doc.Longitude)
	if err != nil {
		return ports.RiderPosition{}, err
	}

	return ports.RiderPosition{
		RiderID:    riderID,
		Point:      point,
		ReportedAt: doc.ReportedAt,
	}, nil
}

func positionKey(riderID kernel.UUID) string {
	return fmt.Sprintf("rider:position:%s", riderID.String())
}
