package service

import (
	"context"
	"fmt"
	"time"

	"medassist/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	RedisAccessTokenKeyPrefix  = "access_token:"
	RedisRefreshTokenKeyPrefix = "refresh_token:"

	redisOpTimeout = 5 * time.Second
	scanBatchSize  = 100
)

// TokenStore tracks issued token ids so that a logout revokes them before they expire
type TokenStore interface {
	Store(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) (bool, error)
	Revoke(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) error
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

type redisTokenStore struct {
	log         *logrus.Logger
	redisClient *redis.Client
}

func NewRedisTokenStore(log *logrus.Logger, redisClient *redis.Client) TokenStore {
	return &redisTokenStore{
		log:         log,
		redisClient: redisClient,
	}
}

func tokenKey(userID uuid.UUID, tokenType jwt.TokenType, tokenID string) string {
	prefix := RedisAccessTokenKeyPrefix
	if tokenType == jwt.RefreshToken {
		prefix = RedisRefreshTokenKeyPrefix
	}
	return fmt.Sprintf("%s%s:%s", prefix, userID.String(), tokenID)
}

func (s *redisTokenStore) Store(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	if err := s.redisClient.Set(ctx, tokenKey(userID, tokenType, tokenID), "valid", ttl).Err(); err != nil {
		s.log.Warnf("Failed to store %s token in Redis: %+v", tokenType, err)
		return err
	}
	return nil
}

func (s *redisTokenStore) Exists(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	exists, err := s.redisClient.Exists(ctx, tokenKey(userID, tokenType, tokenID)).Result()
	if err != nil {
		s.log.Warnf("Failed to check %s token in Redis: %+v", tokenType, err)
		return false, err
	}
	return exists > 0, nil
}

func (s *redisTokenStore) Revoke(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) error {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	if err := s.redisClient.Del(ctx, tokenKey(userID, tokenType, tokenID)).Err(); err != nil {
		s.log.Warnf("Failed to delete %s token: %+v", tokenType, err)
		return err
	}
	return nil
}

// RevokeAll removes every access and refresh token of a user
func (s *redisTokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	for _, prefix := range []string{RedisAccessTokenKeyPrefix, RedisRefreshTokenKeyPrefix} {
		pattern := fmt.Sprintf("%s%s:*", prefix, userID.String())
		iter := s.redisClient.Scan(ctx, 0, pattern, scanBatchSize).Iterator()

		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			s.log.Warnf("Failed to scan token keys: %+v", err)
			return err
		}
		if len(keys) == 0 {
			continue
		}
		if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
			s.log.Warnf("Failed to delete tokens: %+v", err)
			return err
		}
	}
	return nil
}
