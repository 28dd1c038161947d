package wallet

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/team33/casino-gateway/internal/models"
)

// WalletEventsChannel is the Redis pub/sub channel the websocket layer
// subscribes to.
const WalletEventsChannel = "wallet_events"

// Publisher fans out wallet events after successful balance mutations
type Publisher interface {
	PublishWalletEvent(ctx context.Context, event models.WalletEvent)
}

// RedisPublisher publishes onto the shared Redis channel
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) PublishWalletEvent(ctx context.Context, event models.WalletEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("[WALLET] Failed to marshal wallet event: %v", err)
		return
	}
	if err := p.rdb.Publish(ctx, WalletEventsChannel, payload).Err(); err != nil {
		log.Printf("[WALLET] Failed to publish wallet event: %v", err)
	}
}

// NopPublisher is used in tests and memory-store deployments
type NopPublisher struct{}

func (NopPublisher) PublishWalletEvent(context.Context, models.WalletEvent) {}

func (s *Service) publishBalance(ctx context.Context, accountID string, balance float64, txn *models.Transaction) {
	s.events.PublishWalletEvent(ctx, models.WalletEvent{
		Type:        "balance_update",
		AccountID:   accountID,
		Balance:     balance,
		Transaction: txn,
	})
}
