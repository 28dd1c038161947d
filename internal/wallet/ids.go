package wallet

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const idCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewTransactionID returns a generic ledger entry ID:
// TXN-<epoch-ms>-<6-char-uppercase-random>
func NewTransactionID() string {
	return fmt.Sprintf("TXN-%d-%s", time.Now().UnixMilli(), randomUpper(6))
}

// NewReference returns a typed reference like DEP-<epoch-ms>. Prefixes in
// use: DEP (deposits), WD (withdrawals), BONUS (check-in and spin credits).
func NewReference(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixMilli())
}

// NewWalletID identifies a lazily created local wallet
func NewWalletID() string {
	return "WAL-" + randomUpper(8)
}

func randomUpper(length int) string {
	result := make([]byte, length)
	for i := range result {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(idCharset))))
		result[i] = idCharset[n.Int64()]
	}
	return string(result)
}
