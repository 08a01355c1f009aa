// Package storage persists table snapshots and book tallies in Redis.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/go-fish/internal/protocol"
	"github.com/palemoky/go-fish/internal/protocol/encoding"
)

const (
	// Redis key 前缀
	snapshotKeyPrefix = "table:snapshot:"

	// 默认快照过期时间
	defaultSnapshotTTL = 2 * time.Hour
)

// SnapshotStore 牌桌快照存储
type SnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotStore 创建快照存储，ttl <= 0 时使用默认过期时间
func NewSnapshotStore(client *redis.Client, ttl time.Duration) *SnapshotStore {
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	return &SnapshotStore{client: client, ttl: ttl}
}

// Save 保存快照，每次保存都会刷新过期时间
func (s *SnapshotStore) Save(ctx context.Context, tableID string, snap *protocol.TableSnapshot) error {
	if snap == nil {
		return nil
	}
	return s.client.Set(ctx, snapshotKeyPrefix+tableID, encoding.MarshalSnapshot(snap), s.ttl).Err()
}

// Load 加载快照；快照不存在时 found 为 false
func (s *SnapshotStore) Load(ctx context.Context, tableID string) (snap *protocol.TableSnapshot, found bool, err error) {
	data, err := s.client.Get(ctx, snapshotKeyPrefix+tableID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	snap, err = encoding.UnmarshalSnapshot(data)
	if err != nil {
		return nil, false, fmt.Errorf("反序列化快照失败: %w", err)
	}
	return snap, true, nil
}

// Delete 删除快照
func (s *SnapshotStore) Delete(ctx context.Context, tableID string) error {
	return s.client.Del(ctx, snapshotKeyPrefix+tableID).Err()
}
