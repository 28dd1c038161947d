package wallet

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/team33/casino-gateway/internal/models"
	"github.com/team33/casino-gateway/internal/store"
)

// HistoryFilter narrows the merged transaction list. Page is zero-based.
type HistoryFilter struct {
	Type     models.TransactionType
	Status   string
	Page     int
	PageSize int
}

// HistoryPage is one slice of the merged ledger view
type HistoryPage struct {
	Transactions []models.Transaction `json:"transactions"`
	Page         int                  `json:"page"`
	PageSize     int                  `json:"pageSize"`
	Total        int                  `json:"total"`
}

// Transactions merges remote deposits, remote withdrawals, the local cache
// and unresolved pending entries into one ledger view. Each remote fetch is
// independently best-effort; a failure contributes an empty list and never
// aborts the merge.
func (s *Service) Transactions(ctx context.Context, accountID string, filter HistoryFilter) (*HistoryPage, error) {
	accountID, err := s.resolveAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	account := ResolveAccount(accountID)

	var deposits, withdrawals []models.Transaction
	if !account.IsLocal() {
		// Both remote lists are fetched concurrently and joined before the
		// sequential merge; no shared state is written in flight.
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			deposits = s.fetchRemoteList(ctx, "/api/deposits?accountId="+account.ID)
		}()
		go func() {
			defer wg.Done()
			withdrawals = s.fetchRemoteList(ctx, "/api/withdrawals?accountId="+account.ID)
		}()
		wg.Wait()
	}

	local := s.localTransactions(ctx, account.ID)
	pending := s.pendingAsTransactions(ctx, account.ID)

	s.reconcilePending(ctx, account.ID, deposits, withdrawals)

	// De-duplication: earlier sources win. Remote lists over local cache,
	// local cache over pending.
	merged := dedupe(deposits, withdrawals, local, pending)

	filtered := merged[:0:0]
	for _, txn := range merged {
		if filter.Type != "" && txn.Type != filter.Type {
			continue
		}
		if filter.Status != "" && txn.Status != filter.Status {
			continue
		}
		filtered = append(filtered, txn)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	page := filter.Page
	if page < 0 {
		page = 0
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	start := page * pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return &HistoryPage{
		Transactions: filtered[start:end],
		Page:         page,
		PageSize:     pageSize,
		Total:        len(filtered),
	}, nil
}

func (s *Service) fetchRemoteList(ctx context.Context, path string) []models.Transaction {
	res := s.client.ProxyGet(ctx, path)
	if !res.Success {
		log.Printf("[WALLET] History fetch failed for %s: %s", path, res.Message)
		return nil
	}
	var txns []models.Transaction
	if err := res.Decode(&txns); err != nil {
		log.Printf("[WALLET] History decode failed for %s: %v", path, err)
		return nil
	}
	return txns
}

func (s *Service) localTransactions(ctx context.Context, accountID string) []models.Transaction {
	if w := s.readWallet(ctx, accountID); w != nil {
		return w.Transactions
	}
	return nil
}

// PendingTransactions returns the stored awaiting-approval entries for the
// account.
func (s *Service) PendingTransactions(ctx context.Context, accountID string) ([]models.PendingTransaction, error) {
	accountID, err := s.resolveAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	var all []models.PendingTransaction
	if found, err := s.store.Get(ctx, store.KeyPending, &all); err != nil || !found {
		return nil, nil
	}
	var mine []models.PendingTransaction
	for _, p := range all {
		if p.AccountID == accountID {
			mine = append(mine, p)
		}
	}
	return mine, nil
}

func (s *Service) pendingAsTransactions(ctx context.Context, accountID string) []models.Transaction {
	pending, _ := s.PendingTransactions(ctx, accountID)
	txns := make([]models.Transaction, 0, len(pending))
	for _, p := range pending {
		if p.Status != models.StatusPending {
			continue
		}
		txns = append(txns, models.Transaction{
			ID:          p.ID,
			Type:        p.Type,
			Amount:      p.Amount,
			Description: p.Description,
			Reference:   p.Reference,
			Status:      p.Status,
			CreatedAt:   p.CreatedAt,
		})
	}
	return txns
}

// reconcilePending observes approval decisions by re-fetch: a stored pending
// entry whose reference shows up in a remote list with a different status
// adopts that status. Best effort.
func (s *Service) reconcilePending(ctx context.Context, accountID string, remote ...[]models.Transaction) {
	statusByRef := map[string]string{}
	for _, list := range remote {
		for _, txn := range list {
			if txn.Reference != "" {
				statusByRef[txn.Reference] = txn.Status
			}
			if txn.ID != "" {
				statusByRef[txn.ID] = txn.Status
			}
		}
	}
	if len(statusByRef) == 0 {
		return
	}

	var all []models.PendingTransaction
	err := store.Update(ctx, s.store, store.KeyPending, &all, func(found bool) error {
		changed := false
		for i := range all {
			if all[i].AccountID != accountID || all[i].Status != models.StatusPending {
				continue
			}
			status, ok := statusByRef[all[i].Reference]
			if !ok {
				status, ok = statusByRef[all[i].ID]
			}
			if ok && status != "" && status != models.StatusPending {
				all[i].Status = status
				changed = true
			}
		}
		if !changed {
			return errSkipSync
		}
		return nil
	})
	if err != nil && err != errSkipSync {
		log.Printf("[WALLET] Failed to reconcile pending entries: %v", err)
	}
}

// dedupe keeps the first occurrence of every id/reference across the sources
// in priority order.
func dedupe(sources ...[]models.Transaction) []models.Transaction {
	seen := map[string]bool{}
	var out []models.Transaction
	for _, source := range sources {
		for _, txn := range source {
			if (txn.ID != "" && seen[txn.ID]) || (txn.Reference != "" && seen[txn.Reference]) {
				continue
			}
			if txn.ID != "" {
				seen[txn.ID] = true
			}
			if txn.Reference != "" {
				seen[txn.Reference] = true
			}
			out = append(out, txn)
		}
	}
	return out
}
