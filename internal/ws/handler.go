package ws

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/team33/casino-gateway/internal/config"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// HandleWalletSocket upgrades the connection and keeps it registered until
// the client goes away. The stream is one-way: reads are discarded.
func HandleWalletSocket(hub *Hub, cfg *config.Config) gin.HandlerFunc {
	upgrader.CheckOrigin = func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return false
		}
		if cfg.Environment == "development" {
			return strings.HasPrefix(origin, "http://localhost:") ||
				strings.HasPrefix(origin, "http://127.0.0.1:")
		}
		return origin == cfg.FrontendURL
	}

	return func(c *gin.Context) {
		accountID := c.Param("accountId")
		if accountID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "account id required"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] Upgrade failed for account %s: %v", accountID, err)
			return
		}

		hub.Register(accountID, conn)
		defer hub.Unregister(accountID, conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
