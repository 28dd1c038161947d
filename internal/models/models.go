package models

import "time"

// User is the cached mirror of the admin backend's user record.
// Balance here is best-effort; the remote balance is authoritative.
type User struct {
	ID        string  `json:"id"`
	AccountID string  `json:"accountId"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone,omitempty"`
	Balance   float64 `json:"balance"`
}

// TransactionType enumerates ledger entry kinds
type TransactionType string

const (
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
	TransactionGameWin    TransactionType = "GAME_WIN"
	TransactionGameLoss   TransactionType = "GAME_LOSS"
	TransactionBonus      TransactionType = "BONUS"
)

// Transaction statuses
const (
	StatusCompleted = "COMPLETED"
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
)

// Transaction is an immutable ledger entry. Local wallets keep the 100
// most recent entries, newest first.
type Transaction struct {
	ID            string          `json:"id"`
	Type          TransactionType `json:"type"`
	Amount        float64         `json:"amount"`
	BalanceBefore float64         `json:"balanceBefore"`
	BalanceAfter  float64         `json:"balanceAfter"`
	Description   string          `json:"description,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Wallet is the local fallback cache of an account's balance and recent
// transactions. One per account, created lazily.
type Wallet struct {
	WalletID     string        `json:"walletId"`
	AccountID    string        `json:"accountId"`
	Balance      float64       `json:"balance"`
	Currency     string        `json:"currency"`
	Transactions []Transaction `json:"transactions"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// PendingTransaction is a deposit or withdrawal awaiting admin approval.
// Status transitions PENDING -> APPROVED/REJECTED happen on the backend and
// are observed only by re-fetch.
type PendingTransaction struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"accountId"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Status      string          `json:"status"`
	Reference   string          `json:"reference,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// CheckInRecord tracks the 7-day reward cycle for one account
type CheckInRecord struct {
	AccountID     string    `json:"accountId"`
	CurrentDay    int       `json:"currentDay"`    // 1..7
	CurrentStreak int       `json:"currentStreak"` // consecutive days
	CheckedDays   []int     `json:"checkedDays"`   // days claimed this cycle
	LastCheckIn   time.Time `json:"lastCheckIn"`
}

// Game is one catalog entry. Display fields are filled by the enhancement
// step when upstream data omits them.
type Game struct {
	ID        string   `json:"id"`
	Slug      string   `json:"slug"`
	Name      string   `json:"name"`
	Provider  string   `json:"provider"`
	Category  string   `json:"category"`
	IsHot     bool     `json:"isHot"`
	IsNew     bool     `json:"isNew"`
	Thumbnail string   `json:"thumbnail,omitempty"`
	BannerURL string   `json:"bannerUrl,omitempty"`
	Rating    float64  `json:"rating,omitempty"`
	RTP       float64  `json:"rtp,omitempty"`
	PlayCount int      `json:"playCount,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// Promotion mirrors the admin backend's promotion record
type Promotion struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	StartsAt    time.Time `json:"startsAt,omitempty"`
	EndsAt      time.Time `json:"endsAt,omitempty"`
	Claimed     bool      `json:"claimed,omitempty"`
}

// DemoAccount is a gateway-only account whose ledger lives solely in the
// cache store. Password is a bcrypt hash.
type DemoAccount struct {
	AccountID    string    `json:"accountId"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// WalletEvent is published after every successful balance mutation and
// forwarded to connected UI clients over the websocket stream.
type WalletEvent struct {
	Type        string       `json:"type"` // balance_update
	AccountID   string       `json:"accountId"`
	Balance     float64      `json:"balance"`
	Transaction *Transaction `json:"transaction,omitempty"`
}
