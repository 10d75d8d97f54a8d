package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"marketplace_webapp/internal/domain"
)

type stubRecords struct {
	addresses []string
	resets    int
}

func (s *stubRecords) ListAddresses(_ context.Context, limit int, afterID int64) ([]string, int64, error) {
	start := int(afterID)
	if start >= len(s.addresses) {
		return nil, afterID, nil
	}
	end := start + limit
	if end > len(s.addresses) {
		end = len(s.addresses)
	}
	return s.addresses[start:end], int64(end), nil
}

func (s *stubRecords) ResetMonthlyVolume(context.Context) (int64, error) {
	s.resets++
	return int64(len(s.addresses)), nil
}

type stubUpdater struct {
	mu        sync.Mutex
	refreshed []string
	claimUpd  int
	depUpd    int
	failFor   string
}

func (s *stubUpdater) Refresh(_ context.Context, address string) (domain.Tier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if address == s.failFor {
		return "", errors.New("chain unavailable")
	}
	s.refreshed = append(s.refreshed, address)
	return domain.TierRustic, nil
}

func (s *stubUpdater) UpdateClaimEligibility(_ context.Context, _ string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claimUpd++
	return true, nil
}

func (s *stubUpdater) UpdateDepositEligibility(_ context.Context, _ string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.depUpd++
	return true, nil
}

func TestSweepVisitsEveryAddress(t *testing.T) {
	records := &stubRecords{addresses: []string{"0xa", "0xb", "0xc", "0xd", "0xe"}}
	upd := &stubUpdater{}

	s := New(records, upd, upd, time.Hour, 2, false) // batch of 2 forces paging
	s.Sweep(context.Background())

	if len(upd.refreshed) != 5 {
		t.Errorf("refreshed %d addresses, want 5", len(upd.refreshed))
	}
	if upd.claimUpd != 5 || upd.depUpd != 5 {
		t.Errorf("eligibility updates = %d/%d, want 5/5", upd.claimUpd, upd.depUpd)
	}
}

func TestSweepContinuesPastFailures(t *testing.T) {
	records := &stubRecords{addresses: []string{"0xa", "0xbad", "0xc"}}
	upd := &stubUpdater{failFor: "0xbad"}

	s := New(records, upd, upd, time.Hour, 10, false)
	s.Sweep(context.Background())

	if len(upd.refreshed) != 2 {
		t.Errorf("refreshed %d addresses, want 2 (failure must not abort sweep)", len(upd.refreshed))
	}
}

func TestStartStop(t *testing.T) {
	records := &stubRecords{}
	upd := &stubUpdater{}

	s := New(records, upd, upd, 10*time.Millisecond, 10, false)
	s.Start()
	time.Sleep(30 * time.Millisecond)
	s.Stop() // must not hang or panic
}
