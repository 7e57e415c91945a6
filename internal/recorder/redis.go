package recorder

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	redisPrefix       = "pipsignal:"
	keyHistory        = redisPrefix + "history"
	keyUsers          = redisPrefix + "users"
	keyStats          = redisPrefix + "stats"
	keyPairs          = redisPrefix + "pairs"
	perUserHistoryCap = 100
	dayCounterTTL     = 48 * time.Hour
)

func userHistoryKey(userID int64) string {
	return redisPrefix + "user:" + strconv.FormatInt(userID, 10) + ":history"
}

func userStatsKey(userID int64) string {
	return redisPrefix + "user:" + strconv.FormatInt(userID, 10) + ":stats"
}

func userPairsKey(userID int64) string {
	return redisPrefix + "user:" + strconv.FormatInt(userID, 10) + ":pairs"
}

func dayKey(t time.Time) string {
	return redisPrefix + "day:" + t.Format("2006-01-02")
}

// RedisConfig configures the Redis recorder.
type RedisConfig struct {
	Addr     string // Redis address, e.g. "localhost:6379"
	Password string
	DB       int
}

// RedisRecorder keeps signal history in capped Redis lists and counters in hashes.
type RedisRecorder struct {
	client *goredis.Client
}

// NewRedisRecorder connects and pings the server.
func NewRedisRecorder(cfg RedisConfig) (*RedisRecorder, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	zap.L().Info("redis recorder connected", zap.String("addr", cfg.Addr))
	return &RedisRecorder{client: client}, nil
}

func (r *RedisRecorder) RecordSignal(ctx context.Context, e HistoryEntry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	uid := strconv.FormatInt(e.UserID, 10)

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, keyHistory, data)
	pipe.LPush(ctx, userHistoryKey(e.UserID), data)
	pipe.LTrim(ctx, userHistoryKey(e.UserID), 0, perUserHistoryCap-1)
	pipe.SAdd(ctx, keyUsers, uid)
	pipe.HIncrBy(ctx, keyStats, "count", 1)
	pipe.HIncrBy(ctx, keyStats, "confidence_sum", int64(e.Confidence))
	pipe.HIncrBy(ctx, keyPairs, e.Instrument, 1)
	pipe.HIncrBy(ctx, userStatsKey(e.UserID), "count", 1)
	pipe.HIncrBy(ctx, userStatsKey(e.UserID), "confidence_sum", int64(e.Confidence))
	pipe.HSet(ctx, userStatsKey(e.UserID), "last", e.CreatedAt.Unix())
	pipe.HIncrBy(ctx, userPairsKey(e.UserID), e.Instrument, 1)
	day := dayKey(e.CreatedAt)
	pipe.Incr(ctx, day)
	pipe.Expire(ctx, day, dayCounterTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis record signal: %w", err)
	}
	return nil
}

// RecentSignals returns the user's newest entries first.
func (r *RedisRecorder) RecentSignals(ctx context.Context, userID int64, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	raw, err := r.client.LRange(ctx, userHistoryKey(userID), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis history: %w", err)
	}
	out := make([]HistoryEntry, 0, len(raw))
	for _, s := range raw {
		var e HistoryEntry
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			zap.L().Warn("skip corrupt history entry", zap.Error(err))
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *RedisRecorder) UserStats(ctx context.Context, userID int64) (UserStats, error) {
	vals, err := r.client.HGetAll(ctx, userStatsKey(userID)).Result()
	if err != nil {
		return UserStats{}, fmt.Errorf("redis user stats: %w", err)
	}
	var st UserStats
	st.TotalSignals, st.AverageConfidence = countAndAverage(vals)
	if last, err := strconv.ParseInt(vals["last"], 10, 64); err == nil {
		st.LastSignalAt = time.Unix(last, 0)
	}
	pairs, err := r.client.HGetAll(ctx, userPairsKey(userID)).Result()
	if err != nil {
		return UserStats{}, fmt.Errorf("redis user pairs: %w", err)
	}
	st.FavoritePair = topPair(pairs)
	return st, nil
}

func (r *RedisRecorder) SystemStats(ctx context.Context) (SystemStats, error) {
	vals, err := r.client.HGetAll(ctx, keyStats).Result()
	if err != nil {
		return SystemStats{}, fmt.Errorf("redis stats: %w", err)
	}
	var st SystemStats
	st.TotalSignals, st.AverageConfidence = countAndAverage(vals)

	users, err := r.client.SCard(ctx, keyUsers).Result()
	if err != nil {
		return SystemStats{}, fmt.Errorf("redis users: %w", err)
	}
	st.TotalUsers = int(users)

	today, err := r.client.Get(ctx, dayKey(time.Now())).Int()
	if err != nil && err != goredis.Nil {
		return SystemStats{}, fmt.Errorf("redis day counter: %w", err)
	}
	st.TodaySignals = today

	pairs, err := r.client.HGetAll(ctx, keyPairs).Result()
	if err != nil {
		return SystemStats{}, fmt.Errorf("redis pairs: %w", err)
	}
	st.MostPopularPair = topPair(pairs)
	return st, nil
}

// Prune trims the global history list. Per-user lists are capped on write.
// The stat counters are left alone and keep counting pruned entries.
func (r *RedisRecorder) Prune(ctx context.Context, keep int) (int64, error) {
	before, err := r.client.LLen(ctx, keyHistory).Result()
	if err != nil {
		return 0, fmt.Errorf("redis llen: %w", err)
	}
	if before <= int64(keep) {
		return 0, nil
	}
	if keep <= 0 {
		if err := r.client.Del(ctx, keyHistory).Err(); err != nil {
			return 0, fmt.Errorf("redis del: %w", err)
		}
		return before, nil
	}
	if err := r.client.LTrim(ctx, keyHistory, 0, int64(keep)-1).Err(); err != nil {
		return 0, fmt.Errorf("redis ltrim: %w", err)
	}
	return before - int64(keep), nil
}

func (r *RedisRecorder) Close() error {
	zap.L().Info("closing redis recorder")
	return r.client.Close()
}

func countAndAverage(vals map[string]string) (int, float64) {
	count, _ := strconv.Atoi(vals["count"])
	sum, _ := strconv.ParseFloat(vals["confidence_sum"], 64)
	if count == 0 {
		return 0, 0
	}
	return count, sum / float64(count)
}

// topPair picks the most frequent pair, breaking ties alphabetically.
func topPair(counts map[string]string) string {
	pairs := make([]string, 0, len(counts))
	for p := range counts {
		pairs = append(pairs, p)
	}
	sort.Strings(pairs)
	best, bestN := "", 0
	for _, p := range pairs {
		n, _ := strconv.Atoi(counts[p])
		if n > bestN {
			best, bestN = p, n
		}
	}
	return best
}
