package wallet

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/team33/casino-gateway/internal/models"
	"github.com/team33/casino-gateway/internal/store"
)

// historyBackend serves fixed deposit and withdrawal lists
func historyBackend(deposits, withdrawals []models.Transaction) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/deposits":
			json.NewEncoder(w).Encode(map[string]any{"success": true, "data": deposits})
		case "/api/withdrawals":
			json.NewEncoder(w).Encode(map[string]any{"success": true, "data": withdrawals})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func TestHistoryMergeDeduplicatesAcrossSources(t *testing.T) {
	now := time.Now()
	remote := []models.Transaction{
		{ID: "D1", Type: models.TransactionDeposit, Amount: 100, Status: models.StatusCompleted, Reference: "DEP-1", CreatedAt: now},
	}
	svc, st, done := newTestService(t, historyBackend(remote, nil))
	defer done()
	ctx := context.Background()

	// The same transaction also sits in the local cache with a stale status
	wallets := map[string]models.Wallet{
		"REM-42": {
			AccountID: "REM-42",
			Transactions: []models.Transaction{
				{ID: "D1", Type: models.TransactionDeposit, Amount: 100, Status: models.StatusPending, Reference: "DEP-1", CreatedAt: now},
				{ID: "L1", Type: models.TransactionBonus, Amount: 10, Status: models.StatusCompleted, CreatedAt: now.Add(-time.Hour)},
			},
		},
	}
	st.Set(ctx, store.KeyWallets, wallets)

	page, err := svc.Transactions(ctx, "REM-42", HistoryFilter{PageSize: 10})
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 after dedupe, got %d", page.Total)
	}
	// Remote wins: D1 keeps the remote COMPLETED status
	for _, txn := range page.Transactions {
		if txn.ID == "D1" && txn.Status != models.StatusCompleted {
			t.Errorf("remote copy must win, got status %s", txn.Status)
		}
	}
}

func TestHistorySortedNewestFirst(t *testing.T) {
	now := time.Now()
	remote := []models.Transaction{
		{ID: "old", Type: models.TransactionDeposit, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "new", Type: models.TransactionDeposit, CreatedAt: now},
		{ID: "mid", Type: models.TransactionDeposit, CreatedAt: now.Add(-time.Hour)},
	}
	svc, _, done := newTestService(t, historyBackend(remote, nil))
	defer done()

	page, err := svc.Transactions(context.Background(), "REM-42", HistoryFilter{PageSize: 10})
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if page.Transactions[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, page.Transactions[i].ID)
		}
	}
}

func TestHistoryZeroBasedPagination(t *testing.T) {
	now := time.Now()
	var remote []models.Transaction
	for i := 0; i < 5; i++ {
		remote = append(remote, models.Transaction{
			ID:        string(rune('a' + i)),
			Type:      models.TransactionDeposit,
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		})
	}
	svc, _, done := newTestService(t, historyBackend(remote, nil))
	defer done()
	ctx := context.Background()

	first, _ := svc.Transactions(ctx, "REM-42", HistoryFilter{Page: 0, PageSize: 2})
	if len(first.Transactions) != 2 || first.Transactions[0].ID != "a" {
		t.Errorf("page 0 wrong: %+v", first.Transactions)
	}
	second, _ := svc.Transactions(ctx, "REM-42", HistoryFilter{Page: 1, PageSize: 2})
	if len(second.Transactions) != 2 || second.Transactions[0].ID != "c" {
		t.Errorf("page 1 wrong: %+v", second.Transactions)
	}
	last, _ := svc.Transactions(ctx, "REM-42", HistoryFilter{Page: 2, PageSize: 2})
	if len(last.Transactions) != 1 {
		t.Errorf("final partial page wrong: %+v", last.Transactions)
	}
	beyond, _ := svc.Transactions(ctx, "REM-42", HistoryFilter{Page: 9, PageSize: 2})
	if len(beyond.Transactions) != 0 || beyond.Total != 5 {
		t.Errorf("out-of-range page must be empty with total intact: %+v", beyond)
	}
}

func TestHistoryFiltersByTypeAndStatus(t *testing.T) {
	now := time.Now()
	deposits := []models.Transaction{
		{ID: "d1", Type: models.TransactionDeposit, Status: models.StatusCompleted, CreatedAt: now},
	}
	withdrawals := []models.Transaction{
		{ID: "w1", Type: models.TransactionWithdrawal, Status: models.StatusPending, CreatedAt: now},
		{ID: "w2", Type: models.TransactionWithdrawal, Status: models.StatusCompleted, CreatedAt: now},
	}
	svc, _, done := newTestService(t, historyBackend(deposits, withdrawals))
	defer done()
	ctx := context.Background()

	byType, _ := svc.Transactions(ctx, "REM-42", HistoryFilter{Type: models.TransactionWithdrawal, PageSize: 10})
	if byType.Total != 2 {
		t.Errorf("type filter: expected 2, got %d", byType.Total)
	}
	byBoth, _ := svc.Transactions(ctx, "REM-42", HistoryFilter{Type: models.TransactionWithdrawal, Status: models.StatusPending, PageSize: 10})
	if byBoth.Total != 1 || byBoth.Transactions[0].ID != "w1" {
		t.Errorf("combined filter wrong: %+v", byBoth.Transactions)
	}
}

func TestHistoryLocalAccountSkipsRemoteFetch(t *testing.T) {
	svc, _, done := newTestService(t, unreachableBackend(t))
	defer done()
	ctx := context.Background()

	svc.Deposit(ctx, "local_u1", 100, "")
	page, err := svc.Transactions(ctx, "local_u1", HistoryFilter{PageSize: 10})
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if page.Total != 1 {
		t.Errorf("expected the cached deposit only, got %d", page.Total)
	}
}

func TestReconcilePendingAdoptsRemoteStatus(t *testing.T) {
	now := time.Now()
	remote := []models.Transaction{
		{ID: "srv-9", Type: models.TransactionWithdrawal, Status: models.StatusApproved, Reference: "WD-9", CreatedAt: now},
	}
	svc, st, done := newTestService(t, historyBackend(nil, remote))
	defer done()
	ctx := context.Background()

	st.Set(ctx, store.KeyPending, []models.PendingTransaction{
		{ID: "srv-9", AccountID: "REM-42", Type: models.TransactionWithdrawal, Status: models.StatusPending, Reference: "WD-9", CreatedAt: now},
	})

	if _, err := svc.Transactions(ctx, "REM-42", HistoryFilter{PageSize: 10}); err != nil {
		t.Fatalf("Transactions: %v", err)
	}

	pending, _ := svc.PendingTransactions(ctx, "REM-42")
	if len(pending) != 1 || pending[0].Status != models.StatusApproved {
		t.Errorf("pending entry should adopt the remote status: %+v", pending)
	}
}
