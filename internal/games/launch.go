package games

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/team33/casino-gateway/internal/models"
	"github.com/team33/casino-gateway/internal/store"
)

var ErrNoLaunchAccount = errors.New("no account available for game launch")

// Launch asks the backend for a playable game URL. The account comes from
// the persisted user; unauthenticated launches are allowed only when the
// demo account is explicitly enabled in config.
func (s *Service) Launch(ctx context.Context, gameID string) (string, error) {
	if gameID == "" {
		return "", errors.New("game id required")
	}

	accountID := ""
	var user models.User
	if found, _ := s.store.Get(ctx, store.KeyUser, &user); found && user.AccountID != "" {
		accountID = user.AccountID
	} else if s.cfg.AllowDemoGameLaunch {
		accountID = s.cfg.DemoAccountID
		log.Printf("[GAMES] Unauthenticated launch using demo account %s", accountID)
	} else {
		return "", ErrNoLaunchAccount
	}

	res := s.client.ProxyPost(ctx, "/api/games/launch", map[string]string{
		"gameId":    gameID,
		"accountId": accountID,
	})
	if !res.Success {
		return "", errors.New(res.Message)
	}

	url := extractLaunchURL(res.Data)
	if url == "" {
		return "", errors.New("launch response missing game URL")
	}
	return url, nil
}

// extractLaunchURL normalizes the backend's launch shapes. Priority order:
// gameUrl, url, data.gameUrl, data.url.
func extractLaunchURL(raw json.RawMessage) string {
	var payload struct {
		GameURL string `json:"gameUrl"`
		URL     string `json:"url"`
		Data    struct {
			GameURL string `json:"gameUrl"`
			URL     string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	switch {
	case payload.GameURL != "":
		return payload.GameURL
	case payload.URL != "":
		return payload.URL
	case payload.Data.GameURL != "":
		return payload.Data.GameURL
	default:
		return payload.Data.URL
	}
}
