// Package legacy maintains the flat bookmark representation an older
// consumer still reads: one id-set per user plus a denormalized count.
// Writes here are best-effort mirrors of the primary bookmark store;
// they are not transactional with it and a failed mirror write is never
// surfaced to the caller.
package legacy

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"staff-directory/internal/config"
	"staff-directory/internal/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefixSet   = "directory:legacy:bookmarks:"
	keySuffixCount = ":count"
)

func setKey(userID uuid.UUID) string {
	return keyPrefixSet + userID.String()
}

func countKey(userID uuid.UUID) string {
	return setKey(userID) + keySuffixCount
}

type Mirror struct {
	client *redis.Client
	log    logger.Logger

	warnedUnavailable atomic.Bool
}

// NewMirror connects to Redis. When Redis is unreachable the mirror
// degrades to a warn-once no-op, matching the accepted inconsistency of
// the dual write.
func NewMirror(cfg config.RedisConfig, log logger.Logger) *Mirror {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if log != nil {
			log.Warn("legacy mirror unavailable, bookmark mirror writes disabled", zap.Error(err))
		}
		_ = client.Close()
		return &Mirror{client: nil, log: log}
	}

	return &Mirror{client: client, log: log}
}

func (m *Mirror) isUnavailable() bool {
	return m == nil || m.client == nil
}

func (m *Mirror) warnUnavailableOnce(err error) {
	if m == nil || m.log == nil {
		return
	}
	if m.warnedUnavailable.CompareAndSwap(false, true) {
		m.log.Warn("legacy mirror unavailable, skipping mirror writes", zap.Error(err))
	}
}

// Add records the bookmark key in the user's flat set and refreshes the
// denormalized count.
func (m *Mirror) Add(ctx context.Context, userID uuid.UUID, key string) error {
	if m.isUnavailable() {
		return nil
	}
	if err := m.client.SAdd(ctx, setKey(userID), key).Err(); err != nil {
		m.warnUnavailableOnce(err)
		return err
	}
	return m.refreshCount(ctx, userID)
}

// Remove drops the bookmark key from the user's flat set and refreshes
// the denormalized count.
func (m *Mirror) Remove(ctx context.Context, userID uuid.UUID, key string) error {
	if m.isUnavailable() {
		return nil
	}
	if err := m.client.SRem(ctx, setKey(userID), key).Err(); err != nil {
		m.warnUnavailableOnce(err)
		return err
	}
	return m.refreshCount(ctx, userID)
}

// Count reads the denormalized count the legacy consumer sees.
func (m *Mirror) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.isUnavailable() {
		return 0, nil
	}
	raw, err := m.client.Get(ctx, countKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

func (m *Mirror) refreshCount(ctx context.Context, userID uuid.UUID) error {
	n, err := m.client.SCard(ctx, setKey(userID)).Result()
	if err != nil {
		m.warnUnavailableOnce(err)
		return err
	}
	if err := m.client.Set(ctx, countKey(userID), strconv.FormatInt(n, 10), 0).Err(); err != nil {
		m.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (m *Mirror) Close() error {
	if m.isUnavailable() {
		return nil
	}
	return m.client.Close()
}
