package wallet

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/team33/casino-gateway/internal/models"
	"github.com/team33/casino-gateway/internal/store"
)

// rewardSchedule is the fixed 7-day credit table, indexed by day-1
var rewardSchedule = [7]float64{10, 20, 30, 50, 75, 100, 200}

var ErrAlreadyCheckedIn = errors.New("already checked in today")

// CheckInStatus is the UI-facing view of the cycle
type CheckInStatus struct {
	AccountID     string     `json:"accountId"`
	CurrentDay    int        `json:"currentDay"`
	CurrentStreak int        `json:"currentStreak"`
	CheckedDays   []int      `json:"checkedDays"`
	CanCheckIn    bool       `json:"canCheckIn"`
	NextReward    float64    `json:"nextReward"`
	LastCheckIn   *time.Time `json:"lastCheckIn,omitempty"`
}

// CheckInResult reports one successful claim
type CheckInResult struct {
	Day        int     `json:"day"`
	Reward     float64 `json:"reward"`
	Streak     int     `json:"streak"`
	NewBalance float64 `json:"newBalance"`
	NextDay    int     `json:"nextDay"`
}

// GetCheckInStatus reports the cycle as the next check-in would see it:
// the streak-break rule is applied to the view so the UI never promises a
// reward the claim would not pay.
func (s *Service) GetCheckInStatus(ctx context.Context, accountID string) (*CheckInStatus, error) {
	accountID, err := s.resolveAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	record := s.loadCheckIn(ctx, accountID)
	now := time.Now()
	applyStreakBreak(&record, now)

	status := &CheckInStatus{
		AccountID:     accountID,
		CurrentDay:    record.CurrentDay,
		CurrentStreak: record.CurrentStreak,
		CheckedDays:   record.CheckedDays,
		CanCheckIn:    !sameLocalDay(record.LastCheckIn, now),
		NextReward:    rewardForDay(record.CurrentDay),
	}
	if !record.LastCheckIn.IsZero() {
		t := record.LastCheckIn
		status.LastCheckIn = &t
	}
	return status, nil
}

// CheckIn claims today's reward. Allowed once per calendar day; a gap of
// more than one full day resets the cycle before the reward is computed.
func (s *Service) CheckIn(ctx context.Context, accountID string) (*CheckInResult, error) {
	accountID, err := s.resolveAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var result *CheckInResult
	record := models.CheckInRecord{}
	err = store.Update(ctx, s.store, store.CheckInKey(accountID), &record, func(found bool) error {
		if !found {
			record = newCheckInRecord(accountID)
		}
		if sameLocalDay(record.LastCheckIn, now) {
			return ErrAlreadyCheckedIn
		}
		applyStreakBreak(&record, now)

		claimedDay := record.CurrentDay
		reward := rewardForDay(claimedDay)

		newBalance, err := s.creditBonus(ctx, accountID, reward, "Daily check-in reward")
		if err != nil {
			return err
		}

		// Advance the cycle: day 7 wraps to 1 and clears the claimed set
		if claimedDay >= 7 {
			record.CurrentDay = 1
			record.CheckedDays = []int{}
		} else {
			record.CurrentDay = claimedDay + 1
			record.CheckedDays = append(record.CheckedDays, claimedDay)
		}
		record.CurrentStreak++
		record.LastCheckIn = now

		result = &CheckInResult{
			Day:        claimedDay,
			Reward:     reward,
			Streak:     record.CurrentStreak,
			NewBalance: newBalance,
			NextDay:    record.CurrentDay,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"day":        result.Day,
		"reward":     result.Reward,
		"streak":     result.Streak,
	}).Info("Daily check-in claimed")

	return result, nil
}

// creditBonus pushes a reward through the deposit path for the account's
// kind, falling back to a direct balance overwrite when that fails. Either
// way a bonus transaction lands in the cache.
func (s *Service) creditBonus(ctx context.Context, accountID string, amount float64, description string) (float64, error) {
	account := ResolveAccount(accountID)
	reference := NewReference("BONUS")

	if !account.IsLocal() {
		res := s.client.ProxyPost(ctx, "/api/deposits", map[string]any{
			"accountId":   account.ID,
			"amount":      amount,
			"description": description,
			"reference":   reference,
		})
		if res.Success {
			txn := parseRemoteTransaction(res.Data)
			if txn.BalanceAfter > 0 {
				if txn.ID == "" {
					txn.ID = NewTransactionID()
				}
				if txn.Reference == "" {
					txn.Reference = reference
				}
				if txn.Type == "" {
					txn.Type = models.TransactionBonus
				}
				if txn.Amount == 0 {
					txn.Amount = amount
				}
				if txn.Status == "" {
					txn.Status = models.StatusCompleted
				}
				if txn.CreatedAt.IsZero() {
					txn.CreatedAt = time.Now()
				}
				// Mirror the confirmed bonus into the fallback cache
				if _, err := s.mutateWallet(ctx, account.ID, func(w *models.Wallet) error {
					w.Balance = txn.BalanceAfter
					appendTransaction(w, txn)
					return nil
				}); err != nil {
					log.Printf("[WALLET] Failed to mirror bonus transaction for %s: %v", account.ID, err)
				}
				s.syncUserBalance(ctx, account.ID, txn.BalanceAfter)
				s.publishBalance(ctx, account.ID, txn.BalanceAfter, &txn)
				return txn.BalanceAfter, nil
			}
		}
		log.Printf("[WALLET] Bonus deposit failed for %s, crediting cache directly", account.ID)
	}

	// Local account, or remote deposit failed: credit the cache directly
	var txn models.Transaction
	w, err := s.mutateWallet(ctx, account.ID, func(w *models.Wallet) error {
		before := w.Balance
		w.Balance += amount
		txn = models.Transaction{
			ID:            NewTransactionID(),
			Type:          models.TransactionBonus,
			Amount:        amount,
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
		return 0, err
	}
	s.syncUserBalance(ctx, account.ID, w.Balance)
	s.publishBalance(ctx, account.ID, w.Balance, &txn)
	return w.Balance, nil
}

func (s *Service) loadCheckIn(ctx context.Context, accountID string) models.CheckInRecord {
	record := models.CheckInRecord{}
	if found, err := s.store.Get(ctx, store.CheckInKey(accountID), &record); err != nil || !found {
		return newCheckInRecord(accountID)
	}
	return record
}

func newCheckInRecord(accountID string) models.CheckInRecord {
	return models.CheckInRecord{
		AccountID:   accountID,
		CurrentDay:  1,
		CheckedDays: []int{},
	}
}

// applyStreakBreak resets the cycle when more than one full day has elapsed
// since the last check-in.
func applyStreakBreak(record *models.CheckInRecord, now time.Time) {
	if record.LastCheckIn.IsZero() {
		return
	}
	if localDaysBetween(record.LastCheckIn, now) > 1 {
		record.CurrentDay = 1
		record.CurrentStreak = 0
		record.CheckedDays = []int{}
	}
}

func rewardForDay(day int) float64 {
	idx := day - 1
	if idx < 0 {
		idx = 0
	}
	if idx > 6 {
		idx = 6
	}
	return rewardSchedule[idx]
}

// sameLocalDay compares by local calendar date, not elapsed hours
func sameLocalDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	return a.Local().Format("2006-01-02") == b.Local().Format("2006-01-02")
}

// localDaysBetween counts whole calendar days from a to b in local time
func localDaysBetween(a, b time.Time) int {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.Local)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.Local)
	return int(end.Sub(start) / (24 * time.Hour))
}
