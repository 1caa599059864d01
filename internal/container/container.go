package container

import (
	"fmt"
	"time"

	"github.com/ucan-lab/hado-ken/internal/config"
	"github.com/ucan-lab/hado-ken/internal/service"
	"github.com/ucan-lab/hado-ken/pkg/logger"
	"github.com/ucan-lab/hado-ken/pkg/redis"
)

// Container holds shared application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	RedisClient *redis.Client
	Location    *time.Location
	Deadline    service.Deadline
}

// New creates a new dependency injection container
func New(cfg *config.Config, log *logger.Logger) (*Container, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	deadline, err := service.ParseDeadline(cfg.VoteDeadline)
	if err != nil {
		return nil, fmt.Errorf("invalid vote deadline: %w", err)
	}

	// Redis is optional; without it every read goes straight to the store
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	return &Container{
		Config:      cfg,
		Logger:      log,
		RedisClient: redisClient,
		Location:    location,
		Deadline:    deadline,
	}, nil
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetRedisClient returns the Redis client (may be nil if not configured)
func (c *Container) GetRedisClient() *redis.Client {
	return c.RedisClient
}

// HasRedis returns true if a Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}
