package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/furyblack/blog-platform/api"
)

// Redis caches the newest likers of each post. Postgres stays the arbiter:
// every entry here can be rebuilt from the likes table, and a reaction
// write invalidates the post's entry rather than patching it.
type Redis struct {
	cli *redis.Client
}

// Connect connects to the Redis server and pings the server to ensure the
// connection is working.
func Connect(ctx context.Context, addr string) (*Redis, error) {
	cli := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := cli.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{
		cli: cli,
	}, nil
}

func likesSetKey(postID string) string {
	return fmt.Sprintf("post:%s:likes", postID)
}

func likeKey(postID, userID string) string {
	return fmt.Sprintf("post:%s:likes:%s", postID, userID)
}

// NewestLikes returns the cached newest likers of a post, most recent
// first. The bool reports a cache hit; a post that has never been filled
// is a miss, not an error.
func (r *Redis) NewestLikes(ctx context.Context, postID string) ([]api.LikeDetails, bool, error) {
	key := likesSetKey(postID)
	n, err := r.cli.Exists(ctx, key).Result()
	if err != nil {
		return nil, false, fmt.Errorf("exists: %w", err)
	}
	if n == 0 {
		return nil, false, nil
	}

	keys, err := r.cli.ZRevRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, false, fmt.Errorf("zrevrange: %w", err)
	}

	out := make([]api.LikeDetails, 0, len(keys))
	for _, k := range keys {
		var entry likeEntry
		if err := r.cli.HGetAll(ctx, k).Scan(&entry); err != nil {
			return nil, false, fmt.Errorf("hgetall: %w", err)
		}
		out = append(out, entry.APILikeDetails())
	}
	return out, true, nil
}

// SetNewestLikes replaces the cached likers of a post. Each like is stored
// as a hash keyed into a sorted set scored by the time it was added, the
// same layout the listing reads back with ZRevRange.
func (r *Redis) SetNewestLikes(ctx context.Context, postID string, likes []api.LikeDetails) error {
	key := likesSetKey(postID)
	err := r.cli.Watch(ctx, func(tx *redis.Tx) error {
		old, err := tx.ZRange(ctx, key, 0, -1).Result()
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, k := range old {
				pipe.Del(ctx, k)
			}
			pipe.Del(ctx, key)
			for _, l := range likes {
				k := likeKey(postID, l.UserID)
				pipe.HSet(ctx, k, &likeEntry{
					UserID:  l.UserID,
					Login:   l.Login,
					AddedAt: l.AddedAt,
				})
				pipe.ZAdd(ctx, key, redis.Z{
					Score:  float64(l.AddedAt.UnixNano()),
					Member: k,
				})
			}
			return nil
		})
		return err
	}, key)
	if err != nil {
		return fmt.Errorf("set newest likes: %w", err)
	}
	return nil
}

// InvalidateLikes drops a post's cached likers so the next read rebuilds
// them from the database.
func (r *Redis) InvalidateLikes(ctx context.Context, postID string) error {
	key := likesSetKey(postID)
	keys, err := r.cli.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("zrange: %w", err)
	}
	for _, k := range keys {
		if err := r.cli.Del(ctx, k).Err(); err != nil {
			return fmt.Errorf("del: %w", err)
		}
	}
	if err := r.cli.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("del: %w", err)
	}
	return nil
}
