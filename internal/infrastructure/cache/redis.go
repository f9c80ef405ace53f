package cache

import (
	"context"
	"fmt"
	"time"

	"medassist/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Token checks run on every authenticated request
const (
	dialTimeout  = 3 * time.Second
	ioTimeout    = time.Second
	pingTimeout  = 5 * time.Second
	maxIdleConns = 10
)

func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
		MaxIdleConns: maxIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", client.Options().Addr, err)
	}

	logrus.WithFields(logrus.Fields{
		"addr": client.Options().Addr,
		"db":   cfg.DB,
	}).Info("Successfully connected to Redis")

	return client, nil
}
