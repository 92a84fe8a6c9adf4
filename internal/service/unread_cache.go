package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const unreadCacheTTL = 5 * time.Minute

// UnreadCache caches the per-user unread-conversation badge count in
// redis. The relational store stays authoritative: writers invalidate by
// deleting the key, and a miss just falls through to the database.
type UnreadCache struct {
	client *redis.Client
}

func NewUnreadCache(client *redis.Client) *UnreadCache {
	return &UnreadCache{client: client}
}

func unreadKey(userID uint) string {
	return fmt.Sprintf("unread_conversations:%d", userID)
}

func (c *UnreadCache) Get(ctx context.Context, userID uint) (int64, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	val, err := c.client.Get(ctx, unreadKey(userID)).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}

func (c *UnreadCache) Set(ctx context.Context, userID uint, count int64) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(ctx, unreadKey(userID), count, unreadCacheTTL)
}

func (c *UnreadCache) Invalidate(ctx context.Context, userID uint) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, unreadKey(userID))
}
