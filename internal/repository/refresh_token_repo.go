package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshTokenRepository stores one refresh token per member. Tokens expire on
// their own; Delete is best-effort and succeeds when no token is stored.
type RefreshTokenRepository interface {
	Save(ctx context.Context, memberID uint, token string, ttl time.Duration) error
	Delete(ctx context.Context, memberID uint) error
}

type refreshTokenRepository struct {
	client *redis.Client
}

func NewRefreshTokenRepository(client *redis.Client) RefreshTokenRepository {
	return &refreshTokenRepository{client: client}
}

func refreshKey(memberID uint) string {
	return fmt.Sprintf("refresh:%d", memberID)
}

func (r *refreshTokenRepository) Save(ctx context.Context, memberID uint, token string, ttl time.Duration) error {
	return r.client.Set(ctx, refreshKey(memberID), token, ttl).Err()
}

func (r *refreshTokenRepository) Delete(ctx context.Context, memberID uint) error {
	return r.client.Del(ctx, refreshKey(memberID)).Err()
}
