package fetcher

import (
	"context"
	"errors"

	"account-analyze-go/internal/model"
)

var (
	// ErrProfileNotFound 账号不存在
	ErrProfileNotFound = errors.New("profile not found")
	// ErrAccessDenied 被拒绝访问（需要登录、限流等）
	ErrAccessDenied = errors.New("profile access denied")
)

// ProfileFetcher 获取账号公开属性
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, username string) (*model.ProfileAttributes, error)
}

// FetcherFunc 函数适配ProfileFetcher
type FetcherFunc func(ctx context.Context, username string) (*model.ProfileAttributes, error)

// FetchProfile 实现ProfileFetcher
func (f FetcherFunc) FetchProfile(ctx context.Context, username string) (*model.ProfileAttributes, error) {
	return f(ctx, username)
}
