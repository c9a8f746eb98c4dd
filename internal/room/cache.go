package room

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const cachePrefix = "rooms"

// Cache stores room list results in redis. A nil *Cache, or one built
// without a client, is a valid disabled cache.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if rdb == nil {
		return nil
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) enabled() bool {
	return c != nil && c.rdb != nil
}

// Entries are keyed by a generation counter so one INCR invalidates them all.
func (c *Cache) key(ctx context.Context, filter Filter) (string, error) {
	gen, err := c.rdb.Get(ctx, cachePrefix+":gen").Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	sum := sha1.Sum([]byte(filter.cacheKey()))
	return fmt.Sprintf("%s:list:%d:%x", cachePrefix, gen, sum[:]), nil
}

func (c *Cache) GetRooms(ctx context.Context, filter Filter) ([]*Room, bool) {
	if !c.enabled() {
		return nil, false
	}
	key, err := c.key(ctx, filter)
	if err != nil {
		log.Printf("room cache: read generation failed: %v", err)
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("room cache: get failed: %v", err)
		}
		return nil, false
	}
	var rooms []*Room
	if err := json.Unmarshal(raw, &rooms); err != nil {
		return nil, false
	}
	return rooms, true
}

func (c *Cache) SetRooms(ctx context.Context, filter Filter, rooms []*Room) {
	if !c.enabled() {
		return
	}
	key, err := c.key(ctx, filter)
	if err != nil {
		return
	}
	raw, err := json.Marshal(rooms)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("room cache: set failed: %v", err)
	}
}

func (c *Cache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.rdb.Incr(ctx, cachePrefix+":gen").Err(); err != nil {
		log.Printf("room cache: invalidate failed: %v", err)
	}
}
