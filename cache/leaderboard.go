package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dbv-club/championship-system/models"
	"github.com/go-redis/redis/v8"
)

const (
	leaderboardKeyPrefix = "leaderboard:"
	rowsSuffix           = ":rows"

	// The cache is rewritten after every sync; the TTL only bounds how
	// long a board can outlive a dead championship.
	leaderboardTTL = 24 * time.Hour
)

// LeaderboardCache keeps a per-championship sorted set of unit ids plus a
// hash of rendered rows. The set score encodes (total desc, unit id asc)
// so ZRange returns units in exactly the order the synchronizer ranked them.
type LeaderboardCache struct {
	client *redis.Client
}

func NewLeaderboardCache(addr, password string) *LeaderboardCache {
	return &LeaderboardCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func (c *LeaderboardCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *LeaderboardCache) Close() error {
	return c.client.Close()
}

func boardKey(championshipID int) string {
	return leaderboardKeyPrefix + strconv.Itoa(championshipID)
}

// rankScore maps a row to a redis sort key: negated total keeps the set
// descending by points, the unit id fraction breaks ties ascending.
func rankScore(row models.LeaderboardRow) float64 {
	return float64(-row.TotalPoints*1_000_000 + row.UnitID)
}

func (c *LeaderboardCache) Rebuild(ctx context.Context, championshipID int, rows []models.LeaderboardRow) error {
	key := boardKey(championshipID)
	rowsKey := key + rowsSuffix

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key, rowsKey)
	for _, row := range rows {
		member := strconv.Itoa(row.UnitID)
		pipe.ZAdd(ctx, key, &redis.Z{Score: rankScore(row), Member: member})

		payload, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to marshal leaderboard row for unit %d: %w", row.UnitID, err)
		}
		pipe.HSet(ctx, rowsKey, member, payload)
	}
	pipe.Expire(ctx, key, leaderboardTTL)
	pipe.Expire(ctx, rowsKey, leaderboardTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Get returns the cached board, or (nil, nil) on a cache miss.
func (c *LeaderboardCache) Get(ctx context.Context, championshipID int) ([]models.LeaderboardRow, error) {
	key := boardKey(championshipID)

	members, err := c.client.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}

	payloads, err := c.client.HMGet(ctx, key+rowsSuffix, members...).Result()
	if err != nil {
		return nil, err
	}

	rows := make([]models.LeaderboardRow, 0, len(members))
	for i, payload := range payloads {
		raw, ok := payload.(string)
		if !ok {
			// Partial hash means the two keys drifted apart; treat as a miss.
			return nil, nil
		}
		var row models.LeaderboardRow
		if err := json.Unmarshal([]byte(raw), &row); err != nil {
			return nil, fmt.Errorf("failed to unmarshal leaderboard row for unit %s: %w", members[i], err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (c *LeaderboardCache) Invalidate(ctx context.Context, championshipID int) error {
	key := boardKey(championshipID)
	return c.client.Del(ctx, key, key+rowsSuffix).Err()
}
