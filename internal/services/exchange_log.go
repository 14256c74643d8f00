package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"botnest/internal/models"
)

// ExchangeChannel is the Redis Pub/Sub channel exchanges are published on.
const ExchangeChannel = "chat:exchanges"

type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// ExchangeLog writes every relayed exchange to the process log and, when a
// Redis client is configured, publishes it for the live exchange feed.
type ExchangeLog struct {
	redis publisher
}

// NewExchangeLog accepts a nil client; publishing is then skipped.
func NewExchangeLog(redisClient *redis.Client) *ExchangeLog {
	l := &ExchangeLog{}
	if redisClient != nil {
		l.redis = redisClient
	}
	return l
}

func (l *ExchangeLog) Record(ctx context.Context, ex models.Exchange) {
	if ex.Error != "" {
		log.Printf("[%s] %s API Error (status %d, %dms): %s", ex.RequestID, ex.Provider, ex.Status, ex.DurationMS, ex.Error)
	} else {
		log.Printf("[%s] AI reply (%dms): %s", ex.RequestID, ex.DurationMS, ex.Reply)
	}

	if l.redis == nil {
		return
	}

	data, err := json.Marshal(models.WSMessage{Type: models.WSTypeExchange, Payload: ex})
	if err != nil {
		log.Printf("[%s] exchange encode failed: %v", ex.RequestID, err)
		return
	}

	// Diagnostic only; a publish failure never reaches the caller.
	if err := l.redis.Publish(context.WithoutCancel(ctx), ExchangeChannel, string(data)).Err(); err != nil {
		log.Printf("[%s] exchange publish failed: %v", ex.RequestID, err)
	}
}
