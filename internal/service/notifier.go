package service

import (
	"context"
	"devcollab_backend/internal/util"
	"devcollab_backend/pkg/logger"
	"devcollab_backend/pkg/monitoring"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	EventAwardGranted     = "award.granted"
	EventProjectCompleted = "project.completed"
	EventMemberAdmitted   = "project.member_admitted"
)

// EngineEvent 推送给通知/时间线服务的事件
type EngineEvent struct {
	Type      string                 `json:"type"`
	UserID    uint                   `json:"userId"`
	ProjectID uint                   `json:"projectId,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	At        time.Time              `json:"at"`
}

// Notifier 通知下游协作方，调用方不依赖其成功
type Notifier interface {
	Notify(ctx context.Context, event EngineEvent) error
}

type NopNotifier struct{}

func (NopNotifier) Notify(ctx context.Context, event EngineEvent) error { return nil }

// RedisNotifier 通过 Redis pub/sub 广播引擎事件
type RedisNotifier struct {
	Redis   *redis.Client
	Channel string
}

func NewRedisNotifier(rdb *redis.Client) *RedisNotifier {
	return &RedisNotifier{Redis: rdb, Channel: util.RedisEngineEventsChannel}
}

func (n *RedisNotifier) Notify(ctx context.Context, event EngineEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return n.Redis.Publish(ctx, n.Channel, payload).Err()
}

// NewNotifier Redis 未启用时返回空实现
func NewNotifier(rdb *redis.Client) Notifier {
	if rdb == nil {
		return NopNotifier{}
	}
	return NewRedisNotifier(rdb)
}

// notifyAsync fire-and-forget，使用独立 context，不受请求取消影响
func notifyAsync(n Notifier, event EngineEvent) {
	if n == nil {
		return
	}
	if event.At.IsZero() {
		event.At = time.Now()
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Log.Error("notifier panicked", zap.Any("panic", r), zap.String("event", event.Type))
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := n.Notify(ctx, event); err != nil {
			logger.Log.Warn("notify failed",
				zap.String("event", event.Type),
				zap.Uint("userId", event.UserID),
				zap.Error(err))
			monitoring.EngineDegradations.WithLabelValues("notify").Inc()
		}
	}()
}
