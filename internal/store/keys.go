package store

// Keys mirror the browser client's localStorage namespace so that records
// survive a migration between the two service layers unchanged.
const (
	KeyUser         = "team33_user"
	KeyToken        = "team33_token"
	KeyWallets      = "team33_wallets"
	KeyPending      = "team33_pending_transactions"
	KeyDemoAccounts = "team33_demo_accounts"
)

// CheckInKey is the per-account daily check-in record
func CheckInKey(accountID string) string {
	return "team33_checkin_" + accountID
}

// LastSpinKey is the per-account last spin-wheel marker
func LastSpinKey(accountID string) string {
	return "team33_last_spin_" + accountID
}
