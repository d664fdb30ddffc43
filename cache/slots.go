package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/careslot/booking-app/models"
)

const (
	versionKey = "slots:ver"
	entryTTL   = time.Minute
)

// SlotCache is an optional redis-backed cache of available-slot
// windows. Every key embeds a version counter that is bumped when a
// booking is created, so a cached window can never show a slot that has
// already been booked. A nil *SlotCache is valid and disables caching.
type SlotCache struct {
	client *redis.Client
	ctx    context.Context
}

// New connects to redis at addr. An empty addr or a failed ping
// disables the cache rather than failing startup.
func New(addr string) *SlotCache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 0})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("slot cache disabled, redis unreachable: %v", err)
		return nil
	}
	log.Println("Connected to Redis")
	return &SlotCache{client: client, ctx: ctx}
}

func (c *SlotCache) key(from, to time.Time) string {
	ver, err := c.client.Get(c.ctx, versionKey).Int64()
	if err != nil && err != redis.Nil {
		ver = -1 // unknown version, key will simply miss
	}
	return fmt.Sprintf("slots:%d:%d:%d", ver, from.Unix(), to.Unix())
}

func (c *SlotCache) Get(from, to time.Time) ([]models.Slot, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(c.ctx, c.key(from, to)).Bytes()
	if err != nil {
		return nil, false
	}
	var slots []models.Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) Set(from, to time.Time, slots []models.Slot) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.client.Set(c.ctx, c.key(from, to), raw, entryTTL).Err(); err != nil {
		log.Printf("slot cache set failed: %v", err)
	}
}

// Invalidate bumps the version counter, orphaning every cached window.
// Called after each successful booking insert.
func (c *SlotCache) Invalidate() {
	if c == nil {
		return
	}
	if err := c.client.Incr(c.ctx, versionKey).Err(); err != nil {
		log.Printf("slot cache invalidate failed: %v", err)
	}
}
