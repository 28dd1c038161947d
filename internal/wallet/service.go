package wallet

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/team33/casino-gateway/internal/adminapi"
	"github.com/team33/casino-gateway/internal/config"
	"github.com/team33/casino-gateway/internal/models"
	"github.com/team33/casino-gateway/internal/store"
)

// maxCachedTransactions caps the per-wallet ledger cache; the oldest entries
// drop off the tail.
const maxCachedTransactions = 100

var ErrNoAccount = errors.New("no account id and no logged-in user")

// InsufficientFundsError carries the current balance so the UI can show it
// without another round trip. Both the local path and re-surfaced server
// rejections use this shape.
type InsufficientFundsError struct {
	Balance float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds (balance %.2f)", e.Balance)
}

// Service owns the wallet cache, the remote ledger calls, and the gamified
// daily rewards. The cache is a best-effort mirror: the remote balance, when
// reachable, always wins.
type Service struct {
	store  store.Store
	client *adminapi.Client
	cfg    *config.Config
	events Publisher
}

func NewService(st store.Store, client *adminapi.Client, cfg *config.Config, events Publisher) *Service {
	if events == nil {
		events = NopPublisher{}
	}
	return &Service{store: st, client: client, cfg: cfg, events: events}
}

// resolveAccountID falls back to the persisted user when the caller passed
// no account ID. Absence of both is a terminal error.
func (s *Service) resolveAccountID(ctx context.Context, accountID string) (string, error) {
	if accountID != "" {
		return accountID, nil
	}
	var user models.User
	if found, _ := s.store.Get(ctx, store.KeyUser, &user); found && user.AccountID != "" {
		return user.AccountID, nil
	}
	return "", ErrNoAccount
}

// mutateWallet runs fn against the account's cached wallet under the wallets
// map lock, creating the wallet lazily from the persisted user's cached
// balance. fn returning an error aborts without persisting anything.
func (s *Service) mutateWallet(ctx context.Context, accountID string, fn func(w *models.Wallet) error) (*models.Wallet, error) {
	var out models.Wallet
	wallets := map[string]models.Wallet{}
	err := store.Update(ctx, s.store, store.KeyWallets, &wallets, func(bool) error {
		w, ok := wallets[accountID]
		if !ok {
			w = s.newWallet(ctx, accountID)
		}
		if err := fn(&w); err != nil {
			return err
		}
		w.UpdatedAt = time.Now()
		wallets[accountID] = w
		out = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// readWallet returns the cached wallet without mutating, or nil if none
func (s *Service) readWallet(ctx context.Context, accountID string) *models.Wallet {
	wallets := map[string]models.Wallet{}
	if found, err := s.store.Get(ctx, store.KeyWallets, &wallets); err != nil || !found {
		return nil
	}
	if w, ok := wallets[accountID]; ok {
		return &w
	}
	return nil
}

func (s *Service) newWallet(ctx context.Context, accountID string) models.Wallet {
	seed := 0.0
	var user models.User
	if found, _ := s.store.Get(ctx, store.KeyUser, &user); found && user.AccountID == accountID {
		seed = user.Balance
	}
	now := time.Now()
	return models.Wallet{
		WalletID:  NewWalletID(),
		AccountID: accountID,
		Balance:   seed,
		Currency:  s.cfg.DefaultCurrency,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// syncUserBalance mirrors a balance onto the persisted user record when it
// belongs to the logged-in account. Best effort.
func (s *Service) syncUserBalance(ctx context.Context, accountID string, balance float64) {
	var user models.User
	err := store.Update(ctx, s.store, store.KeyUser, &user, func(found bool) error {
		if !found || user.AccountID != accountID {
			return errSkipSync
		}
		user.Balance = balance
		return nil
	})
	if err != nil && !errors.Is(err, errSkipSync) {
		log.Printf("[WALLET] Failed to sync user balance for %s: %v", accountID, err)
	}
}

var errSkipSync = errors.New("skip user balance sync")

// appendTransaction prepends newest-first and enforces the cache cap
func appendTransaction(w *models.Wallet, txn models.Transaction) {
	w.Transactions = append([]models.Transaction{txn}, w.Transactions...)
	if len(w.Transactions) > maxCachedTransactions {
		w.Transactions = w.Transactions[:maxCachedTransactions]
	}
}
