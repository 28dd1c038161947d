package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/team33/casino-gateway/internal/models"
	"github.com/team33/casino-gateway/internal/store"
)

func TestLocalDepositRecordsExactBalances(t *testing.T) {
	svc, _, done := newTestService(t, unreachableBackend(t))
	defer done()
	ctx := context.Background()

	first, err := svc.Deposit(ctx, "local_u1", 100, "first top-up")
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if first.Transaction.BalanceBefore != 0 || first.Transaction.BalanceAfter != 100 {
		t.Errorf("first deposit balances wrong: before=%.2f after=%.2f",
			first.Transaction.BalanceBefore, first.Transaction.BalanceAfter)
	}

	second, err := svc.Deposit(ctx, "local_u1", 50, "")
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if second.Transaction.BalanceBefore != 100 || second.NewBalance != 150 {
		t.Errorf("second deposit balances wrong: before=%.2f new=%.2f",
			second.Transaction.BalanceBefore, second.NewBalance)
	}
	if second.Transaction.Type != models.TransactionDeposit {
		t.Errorf("unexpected type %s", second.Transaction.Type)
	}
	if second.Transaction.Status != models.StatusCompleted {
		t.Errorf("local deposits complete immediately, got %s", second.Transaction.Status)
	}
}

func TestDepositAmountLimits(t *testing.T) {
	svc, _, done := newTestService(t, unreachableBackend(t))
	defer done()
	ctx := context.Background()

	if _, err := svc.Deposit(ctx, "local_u1", 5, ""); err == nil {
		t.Error("deposit below minimum must fail")
	}
	if _, err := svc.Deposit(ctx, "local_u1", 200000, ""); err == nil {
		t.Error("deposit above maximum must fail")
	}
}

func TestLocalWithdrawInsufficientFundsMutatesNothing(t *testing.T) {
	svc, _, done := newTestService(t, unreachableBackend(t))
	defer done()
	ctx := context.Background()

	svc.Deposit(ctx, "local_u1", 100, "")

	_, err := svc.Withdraw(ctx, "local_u1", WithdrawRequest{Amount: 500})
	var insufficient *InsufficientFundsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientFundsError, got %v", err)
	}
	if insufficient.Balance != 100 {
		t.Errorf("error must carry the current balance, got %.2f", insufficient.Balance)
	}

	// The failed withdrawal must leave no trace
	result, err := svc.GetBalance(ctx, "local_u1")
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if result.Balance != 100 {
		t.Errorf("balance changed after rejected withdrawal: %.2f", result.Balance)
	}
	page, _ := svc.Transactions(ctx, "local_u1", HistoryFilter{PageSize: 10})
	for _, txn := range page.Transactions {
		if txn.Type == models.TransactionWithdrawal {
			t.Error("rejected withdrawal must not be recorded")
		}
	}
}

func TestLocalWithdrawNeedsNoBankDetails(t *testing.T) {
	svc, _, done := newTestService(t, unreachableBackend(t))
	defer done()
	ctx := context.Background()

	svc.Deposit(ctx, "local_u1", 100, "")
	result, err := svc.Withdraw(ctx, "local_u1", WithdrawRequest{Amount: 40})
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if result.NewBalance != 60 {
		t.Errorf("expected balance 60, got %.2f", result.NewBalance)
	}
}

func TestRemoteWithdrawRequiresBankDetails(t *testing.T) {
	svc, _, done := newTestService(t, unreachableBackend(t))
	defer done()

	_, err := svc.Withdraw(context.Background(), "REM-42", WithdrawRequest{Amount: 40})
	if err == nil {
		t.Fatal("remote withdrawal without bank details must fail")
	}
}

func TestRemoteDepositMirrorsConfirmedBalance(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/deposits" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"id":           "srv-1",
				"type":         "DEPOSIT",
				"amount":       body["amount"],
				"balanceAfter": 600.0,
				"status":       "COMPLETED",
				"reference":    body["reference"],
			},
		})
	})
	svc, st, done := newTestService(t, handler)
	defer done()
	ctx := context.Background()

	st.Set(ctx, store.KeyUser, models.User{AccountID: "REM-42", Balance: 500})

	result, err := svc.Deposit(ctx, "REM-42", 100, "")
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if result.NewBalance != 600 {
		t.Errorf("expected server balance 600, got %.2f", result.NewBalance)
	}
	if result.Pending {
		t.Error("completed deposit must not be pending")
	}

	// The confirmed balance lands in both caches
	var user models.User
	st.Get(ctx, store.KeyUser, &user)
	if user.Balance != 600 {
		t.Errorf("user record not synced, got %.2f", user.Balance)
	}
}

func TestRemoteWithdrawPendingIsTracked(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"id":     "srv-9",
				"status": "PENDING",
			},
		})
	})
	svc, _, done := newTestService(t, handler)
	defer done()
	ctx := context.Background()

	result, err := svc.Withdraw(ctx, "REM-42", WithdrawRequest{Amount: 50, BankAccount: "111", BankName: "Test Bank"})
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if !result.Pending {
		t.Fatal("expected pending result")
	}

	pending, err := svc.PendingTransactions(ctx, "REM-42")
	if err != nil {
		t.Fatalf("PendingTransactions: %v", err)
	}
	if len(pending) != 1 || pending[0].Status != models.StatusPending {
		t.Errorf("expected one pending entry, got %+v", pending)
	}
}

func TestRemoteInsufficientFundsCarriesServerBalance(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Insufficient funds",
			"data":    map[string]any{"balance": 37.5},
		})
	})
	svc, _, done := newTestService(t, handler)
	defer done()

	_, err := svc.Withdraw(context.Background(), "REM-42", WithdrawRequest{Amount: 50, BankAccount: "111"})
	var insufficient *InsufficientFundsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientFundsError, got %v", err)
	}
	if insufficient.Balance != 37.5 {
		t.Errorf("expected server-reported balance 37.5, got %.2f", insufficient.Balance)
	}
}
