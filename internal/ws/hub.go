package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/team33/casino-gateway/internal/models"
	"github.com/team33/casino-gateway/internal/wallet"
)

// Hub fans wallet events out to connected UI clients, keyed by account
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*websocket.Conn]bool // accountID -> connections
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*websocket.Conn]bool)}
}

func (h *Hub) Register(accountID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[accountID] == nil {
		h.clients[accountID] = make(map[*websocket.Conn]bool)
	}
	h.clients[accountID][conn] = true
	log.Printf("[WS] Client connected for account %s (connections=%d)", accountID, len(h.clients[accountID]))
}

func (h *Hub) Unregister(accountID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[accountID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.clients, accountID)
		}
	}
	conn.Close()
}

// SendToAccount pushes an event to every connection the account holds
func (h *Hub) SendToAccount(accountID string, payload any) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients[accountID]))
	for conn := range h.clients[accountID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(payload); err != nil {
			log.Printf("[WS] Write failed for account %s: %v", accountID, err)
			h.Unregister(accountID, conn)
		}
	}
}

// StartWalletEventSubscriber forwards the Redis wallet_events channel to
// connected clients. Runs until ctx is cancelled.
func (h *Hub) StartWalletEventSubscriber(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		log.Println("[WS] Redis client not set; wallet event subscriber not started")
		return
	}

	pubsub := rdb.Subscribe(ctx, wallet.WalletEventsChannel)
	ch := pubsub.Channel()
	go func() {
		log.Println("[WS] wallet_events subscriber started")
		for msg := range ch {
			var event models.WalletEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("[WS] Invalid wallet event payload: %v", err)
				continue
			}
			if event.AccountID == "" {
				continue
			}
			h.SendToAccount(event.AccountID, event)
		}
	}()
}
