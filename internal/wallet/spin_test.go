package wallet

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/team33/casino-gateway/internal/store"
)

func TestSpinGateOpensOnceADay(t *testing.T) {
	svc, _, done := newTestService(t, unreachableBackend(t))
	defer done()
	ctx := context.Background()

	ok, err := svc.CanSpinToday(ctx, "local_u1")
	if err != nil || !ok {
		t.Fatalf("fresh account must be allowed to spin: ok=%v err=%v", ok, err)
	}

	result, err := svc.SpinWheel(ctx, "local_u1", 25)
	if err != nil {
		t.Fatalf("SpinWheel: %v", err)
	}
	if result.Prize != 25 || result.NewBalance != 25 {
		t.Errorf("unexpected result %+v", result)
	}

	ok, _ = svc.CanSpinToday(ctx, "local_u1")
	if ok {
		t.Error("gate must close after a spin")
	}
	if _, err := svc.SpinWheel(ctx, "local_u1", 10); err != ErrAlreadySpun {
		t.Errorf("expected ErrAlreadySpun, got %v", err)
	}
}

func TestSpinRejectsNonPositivePrize(t *testing.T) {
	svc, _, done := newTestService(t, unreachableBackend(t))
	defer done()

	if _, err := svc.SpinWheel(context.Background(), "local_u1", 0); err == nil {
		t.Error("zero prize must fail")
	}
	if _, err := svc.SpinWheel(context.Background(), "local_u1", -5); err == nil {
		t.Error("negative prize must fail")
	}
}

func TestConcurrentSpinsCreditOnce(t *testing.T) {
	svc, _, done := newTestService(t, unreachableBackend(t))
	defer done()
	ctx := context.Background()

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SpinWheel(ctx, "local_u1", 25)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	won := 0
	for err := range errs {
		switch err {
		case nil:
			won++
		case ErrAlreadySpun:
		default:
			t.Errorf("unexpected spin error: %v", err)
		}
	}
	if won != 1 {
		t.Errorf("expected exactly one winning spin, got %d", won)
	}

	balance, err := svc.GetBalance(ctx, "local_u1")
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if balance.Balance != 25 {
		t.Errorf("expected a single 25 credit, balance is %v", balance.Balance)
	}
}

func TestSpinGateReopensNextDay(t *testing.T) {
	svc, st, done := newTestService(t, unreachableBackend(t))
	defer done()
	ctx := context.Background()

	yesterday := time.Now().AddDate(0, 0, -1).Local().Format(spinDateLayout)
	st.Set(ctx, store.LastSpinKey("local_u1"), yesterday)

	ok, err := svc.CanSpinToday(ctx, "local_u1")
	if err != nil || !ok {
		t.Errorf("yesterday's marker must not block today: ok=%v err=%v", ok, err)
	}
}
