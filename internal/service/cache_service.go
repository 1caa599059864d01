package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/ucan-lab/hado-ken/internal/domain"
	"github.com/ucan-lab/hado-ken/pkg/redis"
)

// cacheWriteTimeout bounds fire-and-forget cache writes
const cacheWriteTimeout = 5 * time.Second

// CacheService provides cache-aside reads over the external store. Every
// cache failure falls back to the store; the cache never becomes a source
// of errors for callers.
type CacheService struct {
	redis  *redis.Client
	logger *zap.Logger
}

// NewCacheService creates a new cache service. A nil redis client disables
// caching and every read goes straight to the store.
func NewCacheService(redisClient *redis.Client, logger *zap.Logger) *CacheService {
	return &CacheService{
		redis:  redisClient,
		logger: logger,
	}
}

// GetTeamsWithCache retrieves the team directory with cache-aside pattern
func (c *CacheService) GetTeamsWithCache(ctx context.Context, fallback func(ctx context.Context) ([]domain.Team, error)) ([]domain.Team, error) {
	if c.redis == nil {
		return fallback(ctx)
	}

	cacheKey := c.redis.KeyBuilder.KeyTeamsAll()

	cachedData, err := c.redis.Get(ctx, cacheKey)
	if err == nil && cachedData != "" {
		var teams []domain.Team
		if unmarshalErr := json.Unmarshal([]byte(cachedData), &teams); unmarshalErr == nil {
			c.logger.Debug("Teams cache hit", zap.Int("count", len(teams)))
			return teams, nil
		} else {
			c.logger.Warn("Teams cache corrupted, falling back to store", zap.Error(unmarshalErr))
		}
	} else if err != nil && !redis.IsNil(err) {
		c.logger.Warn("Teams cache error, falling back to store", zap.Error(err))
	}

	teams, err := fallback(ctx)
	if err != nil {
		return nil, err
	}

	go c.cacheJSONAsync(cacheKey, teams, redis.TTLTeams)

	return teams, nil
}

// GetTournamentsWithCache retrieves the tournament calendar with cache-aside
// pattern. Only the calendar snapshot is cached; eligibility itself is
// recomputed on every request.
func (c *CacheService) GetTournamentsWithCache(ctx context.Context, fallback func(ctx context.Context) ([]domain.Tournament, error)) ([]domain.Tournament, error) {
	if c.redis == nil {
		return fallback(ctx)
	}

	cacheKey := c.redis.KeyBuilder.KeyTournamentsAll()

	cachedData, err := c.redis.Get(ctx, cacheKey)
	if err == nil && cachedData != "" {
		var tournaments []domain.Tournament
		if unmarshalErr := json.Unmarshal([]byte(cachedData), &tournaments); unmarshalErr == nil {
			c.logger.Debug("Tournaments cache hit", zap.Int("count", len(tournaments)))
			return tournaments, nil
		} else {
			c.logger.Warn("Tournaments cache corrupted, falling back to store", zap.Error(unmarshalErr))
		}
	} else if err != nil && !redis.IsNil(err) {
		c.logger.Warn("Tournaments cache error, falling back to store", zap.Error(err))
	}

	tournaments, err := fallback(ctx)
	if err != nil {
		return nil, err
	}

	go c.cacheJSONAsync(cacheKey, tournaments, redis.TTLTournaments)

	return tournaments, nil
}

// GetIconURLWithCache resolves a storage path to a fetchable URL, caching
// the resolution keyed by path. Resolution itself never fails; the resolver
// is a pure path mapping.
func (c *CacheService) GetIconURLWithCache(ctx context.Context, iconPath string, resolve func(iconPath string) string) string {
	if c.redis == nil {
		return resolve(iconPath)
	}

	cacheKey := c.redis.KeyBuilder.KeyIconURL(iconPath)

	cachedURL, err := c.redis.Get(ctx, cacheKey)
	if err == nil && cachedURL != "" {
		c.logger.Debug("Icon URL cache hit", zap.String("icon_path", iconPath))
		return cachedURL
	} else if err != nil && !redis.IsNil(err) {
		c.logger.Warn("Icon URL cache error, resolving directly", zap.Error(err))
	}

	url := resolve(iconPath)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
		defer cancel()
		if err := c.redis.Set(ctx, cacheKey, url, redis.TTLIconURL); err != nil {
			c.logger.Debug("Failed to cache icon URL", zap.Error(err))
		}
	}()

	return url
}

// cacheJSONAsync marshals and stores a value fire-and-forget
func (c *CacheService) cacheJSONAsync(key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Debug("Failed to marshal cache value", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
	defer cancel()

	if err := c.redis.Set(ctx, key, data, ttl); err != nil {
		c.logger.Debug("Failed to write cache", zap.Error(err))
	}
}
