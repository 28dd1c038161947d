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

func seedCheckIn(t *testing.T, st store.Store, record models.CheckInRecord) {
	t.Helper()
	if err := st.Set(context.Background(), store.CheckInKey(record.AccountID), record); err != nil {
		t.Fatalf("seed check-in record: %v", err)
	}
}

func TestFirstCheckInPaysDayOne(t *testing.T) {
	svc, _, done := newTestService(t, unreachableBackend(t))
	defer done()

	result, err := svc.CheckIn(context.Background(), "local_u1")
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if result.Day != 1 || result.Reward != 10 {
		t.Errorf("expected day 1 reward 10, got day %d reward %.0f", result.Day, result.Reward)
	}
	if result.Streak != 1 || result.NextDay != 2 {
		t.Errorf("expected streak 1 next day 2, got %d/%d", result.Streak, result.NextDay)
	}
	if result.NewBalance != 10 {
		t.Errorf("reward not credited: %.2f", result.NewBalance)
	}
}

func TestSecondCheckInSameDayRejected(t *testing.T) {
	svc, _, done := newTestService(t, unreachableBackend(t))
	defer done()
	ctx := context.Background()

	if _, err := svc.CheckIn(ctx, "local_u1"); err != nil {
		t.Fatalf("first CheckIn: %v", err)
	}
	if _, err := svc.CheckIn(ctx, "local_u1"); err != ErrAlreadyCheckedIn {
		t.Fatalf("expected ErrAlreadyCheckedIn, got %v", err)
	}
}

func TestConsecutiveDayAdvancesCycle(t *testing.T) {
	svc, st, done := newTestService(t, unreachableBackend(t))
	defer done()

	seedCheckIn(t, st, models.CheckInRecord{
		AccountID:     "local_u1",
		CurrentDay:    3,
		CurrentStreak: 2,
		CheckedDays:   []int{1, 2},
		LastCheckIn:   time.Now().AddDate(0, 0, -1),
	})

	result, err := svc.CheckIn(context.Background(), "local_u1")
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if result.Day != 3 || result.Reward != 30 {
		t.Errorf("expected day 3 reward 30, got day %d reward %.0f", result.Day, result.Reward)
	}
	if result.Streak != 3 || result.NextDay != 4 {
		t.Errorf("expected streak 3 next day 4, got %d/%d", result.Streak, result.NextDay)
	}
}

func TestGapOverOneDayResetsCycle(t *testing.T) {
	svc, st, done := newTestService(t, unreachableBackend(t))
	defer done()

	seedCheckIn(t, st, models.CheckInRecord{
		AccountID:     "local_u1",
		CurrentDay:    5,
		CurrentStreak: 4,
		CheckedDays:   []int{1, 2, 3, 4},
		LastCheckIn:   time.Now().AddDate(0, 0, -3),
	})

	result, err := svc.CheckIn(context.Background(), "local_u1")
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if result.Day != 1 || result.Reward != 10 {
		t.Errorf("streak break must restart at day 1, got day %d reward %.0f", result.Day, result.Reward)
	}
	if result.Streak != 1 {
		t.Errorf("streak must restart at 1, got %d", result.Streak)
	}
}

func TestDaySevenWrapsToDayOne(t *testing.T) {
	svc, st, done := newTestService(t, unreachableBackend(t))
	defer done()
	ctx := context.Background()

	seedCheckIn(t, st, models.CheckInRecord{
		AccountID:     "local_u1",
		CurrentDay:    7,
		CurrentStreak: 6,
		CheckedDays:   []int{1, 2, 3, 4, 5, 6},
		LastCheckIn:   time.Now().AddDate(0, 0, -1),
	})

	result, err := svc.CheckIn(ctx, "local_u1")
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if result.Day != 7 || result.Reward != 200 {
		t.Errorf("expected day 7 reward 200, got day %d reward %.0f", result.Day, result.Reward)
	}
	if result.NextDay != 1 {
		t.Errorf("day 7 must wrap to 1, got %d", result.NextDay)
	}
	// Streak survives the wrap
	if result.Streak != 7 {
		t.Errorf("streak must continue across the wrap, got %d", result.Streak)
	}

	status, err := svc.GetCheckInStatus(ctx, "local_u1")
	if err != nil {
		t.Fatalf("GetCheckInStatus: %v", err)
	}
	if len(status.CheckedDays) != 0 {
		t.Errorf("wrap must clear the claimed set, got %v", status.CheckedDays)
	}
}

func TestRemoteCheckInMirrorsBonusIntoCache(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/deposits" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"id":           "srv-7",
				"balanceAfter": 510.0,
			},
		})
	})
	svc, st, done := newTestService(t, handler)
	defer done()
	ctx := context.Background()

	result, err := svc.CheckIn(ctx, "REM-42")
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if result.NewBalance != 510 {
		t.Errorf("expected server balance 510, got %.2f", result.NewBalance)
	}

	wallets := map[string]models.Wallet{}
	st.Get(ctx, store.KeyWallets, &wallets)
	w, ok := wallets["REM-42"]
	if !ok {
		t.Fatal("bonus must land in the wallet cache")
	}
	if w.Balance != 510 {
		t.Errorf("cached balance not mirrored, got %.2f", w.Balance)
	}
	if len(w.Transactions) != 1 {
		t.Fatalf("expected one cached transaction, got %d", len(w.Transactions))
	}
	txn := w.Transactions[0]
	if txn.Type != models.TransactionBonus || txn.Amount != 10 {
		t.Errorf("unexpected cached transaction %+v", txn)
	}
}

func TestStatusShowsBreakBeforeClaim(t *testing.T) {
	svc, st, done := newTestService(t, unreachableBackend(t))
	defer done()

	seedCheckIn(t, st, models.CheckInRecord{
		AccountID:     "local_u1",
		CurrentDay:    6,
		CurrentStreak: 5,
		CheckedDays:   []int{1, 2, 3, 4, 5},
		LastCheckIn:   time.Now().AddDate(0, 0, -4),
	})

	status, err := svc.GetCheckInStatus(context.Background(), "local_u1")
	if err != nil {
		t.Fatalf("GetCheckInStatus: %v", err)
	}
	// The view applies the break so the promised reward matches the claim
	if status.CurrentDay != 1 || status.NextReward != 10 {
		t.Errorf("status must reflect the break: day %d reward %.0f", status.CurrentDay, status.NextReward)
	}
	if !status.CanCheckIn {
		t.Error("check-in should be open after a gap")
	}
}

func TestStatusAfterTodayClaim(t *testing.T) {
	svc, _, done := newTestService(t, unreachableBackend(t))
	defer done()
	ctx := context.Background()

	svc.CheckIn(ctx, "local_u1")
	status, err := svc.GetCheckInStatus(ctx, "local_u1")
	if err != nil {
		t.Fatalf("GetCheckInStatus: %v", err)
	}
	if status.CanCheckIn {
		t.Error("gate must close for the rest of the day")
	}
	if status.CurrentDay != 2 || status.NextReward != 20 {
		t.Errorf("expected next day 2 reward 20, got %d/%.0f", status.CurrentDay, status.NextReward)
	}
}

func TestRewardForDayClamps(t *testing.T) {
	cases := []struct {
		day  int
		want float64
	}{
		{0, 10}, {1, 10}, {4, 50}, {7, 200}, {12, 200},
	}
	for _, tc := range cases {
		if got := rewardForDay(tc.day); got != tc.want {
			t.Errorf("rewardForDay(%d) = %.0f, want %.0f", tc.day, got, tc.want)
		}
	}
}

func TestLocalDaysBetween(t *testing.T) {
	base := time.Date(2026, 3, 10, 23, 50, 0, 0, time.Local)
	nextMorning := time.Date(2026, 3, 11, 0, 5, 0, 0, time.Local)
	if got := localDaysBetween(base, nextMorning); got != 1 {
		t.Errorf("calendar day boundary must count as 1, got %d", got)
	}
	sameDay := time.Date(2026, 3, 10, 1, 0, 0, 0, time.Local)
	if got := localDaysBetween(sameDay, base); got != 0 {
		t.Errorf("same calendar day must be 0, got %d", got)
	}
}
