package wallet

import (
	"context"
	"encoding/json"
	"log"

	"github.com/team33/casino-gateway/internal/models"
	"github.com/team33/casino-gateway/internal/store"
)

// Balance sources
const (
	SourceAPI   = "api"
	SourceLocal = "localStorage" // kept verbatim for parity with the web client
)

// BalanceResult tags where the number came from so the UI can surface
// "offline" state.
type BalanceResult struct {
	AccountID string  `json:"accountId"`
	Balance   float64 `json:"balance"`
	Currency  string  `json:"currency"`
	Source    string  `json:"source"`
}

// GetBalance resolves the authoritative balance with cache fallback:
// remote wins and overwrites the cache; on remote failure or a null remote
// balance the cached wallet answers, seeded lazily from the persisted user.
func (s *Service) GetBalance(ctx context.Context, accountID string) (*BalanceResult, error) {
	accountID, err := s.resolveAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	account := ResolveAccount(accountID)
	if !account.IsLocal() {
		if remote, ok := s.fetchRemoteBalance(ctx, account.ID); ok {
			// Remote is authoritative: overwrite cache and user record
			if _, err := s.mutateWallet(ctx, account.ID, func(w *models.Wallet) error {
				w.Balance = remote
				return nil
			}); err != nil {
				log.Printf("[WALLET] Failed to cache remote balance for %s: %v", account.ID, err)
			}
			s.syncUserBalance(ctx, account.ID, remote)
			return &BalanceResult{AccountID: account.ID, Balance: remote, Currency: s.cfg.DefaultCurrency, Source: SourceAPI}, nil
		}
	}

	return s.fallbackBalance(ctx, account.ID)
}

// fetchRemoteBalance returns (balance, true) only for a successful response
// carrying a non-null numeric balance.
func (s *Service) fetchRemoteBalance(ctx context.Context, accountID string) (float64, bool) {
	res := s.client.ProxyGet(ctx, "/api/accounts/"+accountID+"/balance")
	if !res.Success {
		log.Printf("[WALLET] Remote balance fetch failed for %s: %s", accountID, res.Message)
		return 0, false
	}

	var payload struct {
		Balance *float64 `json:"balance"`
	}
	if err := json.Unmarshal(res.Data, &payload); err != nil || payload.Balance == nil {
		// Also accept a bare number body
		var bare float64
		if err := json.Unmarshal(res.Data, &bare); err == nil {
			return bare, true
		}
		log.Printf("[WALLET] Remote balance for %s is null or malformed", accountID)
		return 0, false
	}
	return *payload.Balance, true
}

// fallbackBalance serves the cached wallet, creating it lazily, and never
// lets the cache regress below the last user-visible balance.
func (s *Service) fallbackBalance(ctx context.Context, accountID string) (*BalanceResult, error) {
	w, err := s.mutateWallet(ctx, accountID, func(w *models.Wallet) error {
		if userBalance, ok := s.cachedUserBalance(ctx, accountID); ok && userBalance > w.Balance {
			// A game session may have raised the user record out-of-band
			w.Balance = userBalance
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &BalanceResult{AccountID: accountID, Balance: w.Balance, Currency: w.Currency, Source: SourceLocal}, nil
}

func (s *Service) cachedUserBalance(ctx context.Context, accountID string) (float64, bool) {
	var user models.User
	if found, _ := s.store.Get(ctx, store.KeyUser, &user); found && user.AccountID == accountID {
		return user.Balance, true
	}
	return 0, false
}
