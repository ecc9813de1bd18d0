package database

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// ReadyStore keeps the set of players that marked themselves ready in a room.
// Sets expire after ttl without a new mark.
type ReadyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewReadyStore(rdb *redis.Client, ttl time.Duration) *ReadyStore {
	return &ReadyStore{rdb: rdb, ttl: ttl}
}

func readyKey(code string) string {
	return "room:" + code + ":ready"
}

// MarkReady adds playerID to the room's ready set and returns the set size.
func (r *ReadyStore) MarkReady(ctx context.Context, code string, playerID int64) (int64, error) {
	key := readyKey(code)
	pipe := r.rdb.TxPipeline()
	pipe.SAdd(ctx, key, playerID)
	pipe.Expire(ctx, key, r.ttl)
	count := pipe.SCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("mark player %d ready in %q: %w", playerID, code, err)
	}
	return count.Val(), nil
}

// ReadyPlayers returns the ready player ids in ascending order.
func (r *ReadyStore) ReadyPlayers(ctx context.Context, code string) ([]int64, error) {
	members, err := r.rdb.SMembers(ctx, readyKey(code)).Result()
	if err != nil {
		return nil, fmt.Errorf("read ready players of %q: %w", code, err)
	}
	ids := make([]int64, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad ready member %q in %q: %w", member, code, err)
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Clear drops the room's ready set.
func (r *ReadyStore) Clear(ctx context.Context, code string) error {
	if err := r.rdb.Del(ctx, readyKey(code)).Err(); err != nil {
		return fmt.Errorf("clear ready players of %q: %w", code, err)
	}
	return nil
}
