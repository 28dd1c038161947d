package wallet

import (
	"encoding/json"
	"time"

	"github.com/team33/casino-gateway/internal/models"
)

// The ledger endpoints answer in two shapes: the transaction nested under
// "transaction" or as the payload itself, with IDs as strings or numbers.
// parseRemoteTransaction flattens them into one canonical record; callers
// backfill anything still missing.
func parseRemoteTransaction(raw json.RawMessage) models.Transaction {
	if len(raw) == 0 {
		return models.Transaction{}
	}

	var wrapper struct {
		Transaction json.RawMessage `json:"transaction"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil && len(wrapper.Transaction) > 0 {
		raw = wrapper.Transaction
	}

	var wire struct {
		ID            json.RawMessage `json:"id"`
		Type          string          `json:"type"`
		Amount        float64         `json:"amount"`
		BalanceBefore float64         `json:"balanceBefore"`
		BalanceAfter  float64         `json:"balanceAfter"`
		NewBalance    *float64        `json:"newBalance"`
		Description   string          `json:"description"`
		Reference     string          `json:"reference"`
		Status        string          `json:"status"`
		CreatedAt     string          `json:"createdAt"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return models.Transaction{}
	}

	txn := models.Transaction{
		ID:            flexibleID(wire.ID),
		Type:          models.TransactionType(wire.Type),
		Amount:        wire.Amount,
		BalanceBefore: wire.BalanceBefore,
		BalanceAfter:  wire.BalanceAfter,
		Description:   wire.Description,
		Reference:     wire.Reference,
		Status:        wire.Status,
	}
	if txn.BalanceAfter == 0 && wire.NewBalance != nil {
		txn.BalanceAfter = *wire.NewBalance
	}
	if wire.CreatedAt != "" {
		if ts, err := time.Parse(time.RFC3339, wire.CreatedAt); err == nil {
			txn.CreatedAt = ts
		}
	}
	return txn
}

// flexibleID accepts string or numeric JSON IDs
func flexibleID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
