package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/team33/casino-gateway/internal/games"
)

// ListGames filters and paginates the catalog
func ListGames(svc *games.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := games.Filter{
			Query:    c.Query("q"),
			Provider: c.Query("provider"),
			Category: c.Query("category"),
			Hot:      c.Query("hot") == "true",
			New:      c.Query("new") == "true",
			Page:     intQuery(c, "page", 1),
			Limit:    intQuery(c, "limit", 20),
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": svc.List(c.Request.Context(), filter)})
	}
}

// SearchGames is the quick-search endpoint; under-2-character queries come
// back empty by contract
func SearchGames(svc *games.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := svc.Search(c.Request.Context(), c.Query("q"), intQuery(c, "page", 1), intQuery(c, "limit", 20))
		c.JSON(http.StatusOK, gin.H{"success": true, "data": page})
	}
}

func ListProviders(svc *games.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": svc.Providers(c.Request.Context())})
	}
}

// LaunchGame asks the backend for a playable URL
func LaunchGame(svc *games.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			GameID string `json:"gameId"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "game id required"})
			return
		}
		url, err := svc.Launch(c.Request.Context(), req.GameID)
		if err != nil {
			status := http.StatusBadGateway
			if errors.Is(err, games.ErrNoLaunchAccount) {
				status = http.StatusUnauthorized
			}
			c.JSON(status, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"gameUrl": url}})
	}
}

func intQuery(c *gin.Context, key string, fallback int) int {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}
