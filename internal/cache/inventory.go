package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix = "user:%d"
	JobListKey    = "jobs:all"
	EventListKey  = "events:upcoming"
)

const (
	UserTTL      = 5 * time.Minute
	JobListTTL   = 2 * time.Minute
	EventListTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateJobs(ctx context.Context) {
	Invalidate(ctx, JobListKey)
}

func InvalidateEvents(ctx context.Context) {
	Invalidate(ctx, EventListKey)
}
