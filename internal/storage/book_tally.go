package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// 每张牌桌一个有序集合：成员为玩家 ID，分数为完成的书数
const bookTallyKeyPrefix = "table:books:"

// BookTally 记录每名玩家在一张牌桌上完成的书数
type BookTally struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewBookTally 创建书数统计，ttl 与快照一致
func NewBookTally(client *redis.Client, ttl time.Duration) *BookTally {
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	return &BookTally{redis: client, ttl: ttl}
}

// Record 为玩家加一本书，返回该玩家的新书数
func (bt *BookTally) Record(ctx context.Context, tableID, playerID string) (int, error) {
	key := bookTallyKeyPrefix + tableID
	n, err := bt.redis.ZIncrBy(ctx, key, 1, playerID).Result()
	if err != nil {
		return 0, err
	}
	bt.redis.Expire(ctx, key, bt.ttl)
	return int(n), nil
}

// Reset 清空一张牌桌的统计
func (bt *BookTally) Reset(ctx context.Context, tableID string) error {
	return bt.redis.Del(ctx, bookTallyKeyPrefix+tableID).Err()
}
