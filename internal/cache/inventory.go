package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostKeyPrefix         = "post:%d"
	CategoryFeedKeyPrefix = "category:%d:feed"
	UserKeyPrefix         = "user:%d"
)

const (
	PostTTL         = 30 * time.Minute
	CategoryFeedTTL = 2 * time.Minute
	UserTTL         = 5 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func CategoryFeedKey(categoryID uint) string {
	return fmt.Sprintf(CategoryFeedKeyPrefix, categoryID)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateCategoryFeed(ctx context.Context, categoryID uint) {
	Invalidate(ctx, CategoryFeedKey(categoryID))
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}
