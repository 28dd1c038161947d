package wallet

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/team33/casino-gateway/internal/store"
)

var ErrAlreadySpun = errors.New("already spun the wheel today")

const spinDateLayout = "2006-01-02"

// SpinResult reports one successful spin credit
type SpinResult struct {
	Prize      float64 `json:"prize"`
	NewBalance float64 `json:"newBalance"`
}

// CanSpinToday reports whether the daily spin gate is open. The gate is a
// per-account marker holding the local date string of the last spin.
func (s *Service) CanSpinToday(ctx context.Context, accountID string) (bool, error) {
	accountID, err := s.resolveAccountID(ctx, accountID)
	if err != nil {
		return false, err
	}
	var lastSpin string
	found, err := s.store.Get(ctx, store.LastSpinKey(accountID), &lastSpin)
	if err != nil || !found {
		return true, nil
	}
	return lastSpin != time.Now().Local().Format(spinDateLayout), nil
}

// SpinWheel credits an externally supplied prize through the same
// deposit-or-direct-credit fallback as check-in. One spin per calendar day,
// gated through the marker key's update lock so concurrent spins cannot
// both pass the check.
func (s *Service) SpinWheel(ctx context.Context, accountID string, prize float64) (*SpinResult, error) {
	accountID, err := s.resolveAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if prize <= 0 {
		return nil, errors.New("prize amount must be positive")
	}

	today := time.Now().Local().Format(spinDateLayout)
	var result *SpinResult
	var lastSpin string
	err = store.Update(ctx, s.store, store.LastSpinKey(accountID), &lastSpin, func(found bool) error {
		if found && lastSpin == today {
			return ErrAlreadySpun
		}
		newBalance, err := s.creditBonus(ctx, accountID, prize, "Spin wheel prize")
		if err != nil {
			return err
		}
		result = &SpinResult{Prize: prize, NewBalance: newBalance}
		lastSpin = today
		return nil
	})
	if err != nil {
		if result == nil {
			return nil, err
		}
		// Marker write failed after the credit; the credit stands, the
		// gate reopens early
		logrus.WithField("account_id", accountID).Warnf("Failed to persist spin marker: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"prize":      prize,
	}).Info("Spin wheel prize credited")

	return result, nil
}
