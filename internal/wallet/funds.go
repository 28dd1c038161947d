package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/team33/casino-gateway/internal/models"
	"github.com/team33/casino-gateway/internal/store"
)

// WithdrawRequest carries the caller-supplied withdrawal details. Bank
// details are required on the remote path, where a human pays the money out.
type WithdrawRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
	BankAccount string  `json:"bankAccount,omitempty"`
	BankName    string  `json:"bankName,omitempty"`
}

// TransactionResult is the uniform shape both execution paths resolve to
type TransactionResult struct {
	Transaction models.Transaction `json:"transaction"`
	NewBalance  float64            `json:"newBalance"`
	Pending     bool               `json:"pending,omitempty"`
}

// Deposit credits an account. Validation happens before any network call;
// the path is picked by the resolved account variant.
func (s *Service) Deposit(ctx context.Context, accountID string, amount float64, description string) (*TransactionResult, error) {
	accountID, err := s.resolveAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if amount < s.cfg.MinDepositAmount || amount > s.cfg.MaxDepositAmount {
		return nil, fmt.Errorf("deposit amount must be between %.2f and %.2f",
			s.cfg.MinDepositAmount, s.cfg.MaxDepositAmount)
	}
	if description == "" {
		description = "Deposit"
	}

	account := ResolveAccount(accountID)
	if account.IsLocal() {
		return s.applyLocal(ctx, account.ID, amount, models.TransactionDeposit, description, NewReference("DEP"))
	}
	return s.remoteDeposit(ctx, account.ID, amount, description)
}

// Withdraw debits an account. The local path never lets the balance go
// negative; a too-large request mutates nothing and reports the current
// balance.
func (s *Service) Withdraw(ctx context.Context, accountID string, req WithdrawRequest) (*TransactionResult, error) {
	accountID, err := s.resolveAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if req.Amount < s.cfg.MinWithdrawAmount || req.Amount > s.cfg.MaxWithdrawAmount {
		return nil, fmt.Errorf("withdrawal amount must be between %.2f and %.2f",
			s.cfg.MinWithdrawAmount, s.cfg.MaxWithdrawAmount)
	}
	if req.Description == "" {
		req.Description = "Withdrawal"
	}

	account := ResolveAccount(accountID)
	if account.IsLocal() {
		return s.applyLocal(ctx, account.ID, -req.Amount, models.TransactionWithdrawal, req.Description, NewReference("WD"))
	}
	if req.BankAccount == "" {
		return nil, errors.New("bank details are required for withdrawals")
	}
	return s.remoteWithdraw(ctx, account.ID, req)
}

// applyLocal runs the cache-only ledger path: read-or-create wallet, apply
// the signed delta, prepend the transaction, persist. delta < 0 requires
// sufficient funds.
func (s *Service) applyLocal(ctx context.Context, accountID string, delta float64, txType models.TransactionType, description, reference string) (*TransactionResult, error) {
	var txn models.Transaction
	w, err := s.mutateWallet(ctx, accountID, func(w *models.Wallet) error {
		if delta < 0 && w.Balance < -delta {
			return &InsufficientFundsError{Balance: w.Balance}
		}
		before := w.Balance
		w.Balance += delta

		txn = models.Transaction{
			ID:            NewTransactionID(),
			Type:          txType,
			Amount:        abs(delta),
			BalanceBefore: before,
			BalanceAfter:  w.Balance,
			Description:   description,
			Reference:     reference,
			Status:        models.StatusCompleted,
			CreatedAt:     time.Now(),
		}
		appendTransaction(w, txn)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.syncUserBalance(ctx, accountID, w.Balance)
	s.publishBalance(ctx, accountID, w.Balance, &txn)

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"amount":     txn.Amount,
		"type":       txn.Type,
		"reference":  reference,
		"path":       "local",
	}).Info("Wallet transaction")

	return &TransactionResult{Transaction: txn, NewBalance: w.Balance}, nil
}

func (s *Service) remoteDeposit(ctx context.Context, accountID string, amount float64, description string) (*TransactionResult, error) {
	reference := NewReference("DEP")
	res := s.client.ProxyPost(ctx, "/api/deposits", map[string]any{
		"accountId":   accountID,
		"amount":      amount,
		"description": description,
		"reference":   reference,
	})
	if !res.Success {
		return nil, errors.New(res.Message)
	}
	return s.finishRemote(ctx, accountID, amount, models.TransactionDeposit, description, reference, res.Data)
}

func (s *Service) remoteWithdraw(ctx context.Context, accountID string, req WithdrawRequest) (*TransactionResult, error) {
	reference := NewReference("WD")
	res := s.client.ProxyPost(ctx, "/api/withdrawals", map[string]any{
		"accountId":   accountID,
		"amount":      req.Amount,
		"description": req.Description,
		"reference":   reference,
		"bankAccount": req.BankAccount,
		"bankName":    req.BankName,
	})
	if !res.Success {
		// Server-side insufficient funds comes back in the local path's shape
		if strings.Contains(strings.ToLower(res.Message), "insufficient") {
			balance := s.bestKnownBalance(ctx, accountID, res.Data)
			return nil, &InsufficientFundsError{Balance: balance}
		}
		return nil, errors.New(res.Message)
	}
	return s.finishRemote(ctx, accountID, req.Amount, models.TransactionWithdrawal, req.Description, reference, res.Data)
}

// finishRemote normalizes the server's transaction, tracks admin-approval
// pending entries, and mirrors the confirmed balance into the cache.
func (s *Service) finishRemote(ctx context.Context, accountID string, amount float64, txType models.TransactionType, description, reference string, data json.RawMessage) (*TransactionResult, error) {
	txn := parseRemoteTransaction(data)
	if txn.ID == "" {
		txn.ID = NewTransactionID()
	}
	if txn.Reference == "" {
		txn.Reference = reference
	}
	if txn.Amount == 0 {
		txn.Amount = amount
	}
	if txn.Type == "" {
		txn.Type = txType
	}
	if txn.Status == "" {
		txn.Status = models.StatusCompleted
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}

	pending := txn.Status == models.StatusPending
	if pending {
		s.trackPending(ctx, accountID, txn)
	} else {
		// Mirror the confirmed balance into the fallback cache
		if _, err := s.mutateWallet(ctx, accountID, func(w *models.Wallet) error {
			w.Balance = txn.BalanceAfter
			appendTransaction(w, txn)
			return nil
		}); err != nil {
			log.Printf("[WALLET] Failed to mirror remote transaction for %s: %v", accountID, err)
		}
		s.syncUserBalance(ctx, accountID, txn.BalanceAfter)
		s.publishBalance(ctx, accountID, txn.BalanceAfter, &txn)
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"amount":     txn.Amount,
		"type":       txn.Type,
		"reference":  txn.Reference,
		"status":     txn.Status,
		"path":       "remote",
	}).Info("Wallet transaction")

	return &TransactionResult{Transaction: txn, NewBalance: txn.BalanceAfter, Pending: pending}, nil
}

// trackPending persists an awaiting-approval entry; resolution is observed
// only by re-fetch.
func (s *Service) trackPending(ctx context.Context, accountID string, txn models.Transaction) {
	var pending []models.PendingTransaction
	err := store.Update(ctx, s.store, store.KeyPending, &pending, func(bool) error {
		pending = append(pending, models.PendingTransaction{
			ID:          txn.ID,
			AccountID:   accountID,
			Type:        txn.Type,
			Amount:      txn.Amount,
			Status:      models.StatusPending,
			Reference:   txn.Reference,
			Description: txn.Description,
			CreatedAt:   txn.CreatedAt,
		})
		return nil
	})
	if err != nil {
		log.Printf("[WALLET] Failed to track pending transaction %s: %v", txn.ID, err)
	}
}

func (s *Service) bestKnownBalance(ctx context.Context, accountID string, data json.RawMessage) float64 {
	var payload struct {
		Balance *float64 `json:"balance"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Balance != nil {
		return *payload.Balance
	}
	if w := s.readWallet(ctx, accountID); w != nil {
		return w.Balance
	}
	if balance, ok := s.cachedUserBalance(ctx, accountID); ok {
		return balance
	}
	return 0
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
