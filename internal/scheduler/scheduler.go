package scheduler

import (
	"context"
	"time"

	"marketplace_webapp/internal/domain"
	"marketplace_webapp/internal/logger"
)

// Records pages addresses for sweeps and resets monthly counters.
type Records interface {
	ListAddresses(ctx context.Context, limit int, afterID int64) ([]string, int64, error)
	ResetMonthlyVolume(ctx context.Context) (int64, error)
}

// TierRefresher recomputes one address's tier from live counters.
type TierRefresher interface {
	Refresh(ctx context.Context, address string) (domain.Tier, error)
}

// EligibilityUpdater recomputes the claim/deposit gates for an address.
type EligibilityUpdater interface {
	UpdateClaimEligibility(ctx context.Context, address string) (bool, error)
	UpdateDepositEligibility(ctx context.Context, address string) (bool, error)
}

// Scheduler runs the periodic tier sweep and the monthly volume reset.
type Scheduler struct {
	records     Records
	tiers       TierRefresher
	eligibility EligibilityUpdater

	interval    time.Duration
	batchSize   int
	volumeReset bool

	stop chan struct{}
	done chan struct{}
}

func New(records Records, tiers TierRefresher, eligibility EligibilityUpdater, interval time.Duration, batchSize int, volumeReset bool) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Scheduler{
		records:     records,
		tiers:       tiers,
		eligibility: eligibility,
		interval:    interval,
		batchSize:   batchSize,
		volumeReset: volumeReset,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	go s.run()
}

func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Scheduler) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	lastResetMonth := time.Now().UTC().Month()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), s.interval)
			s.Sweep(ctx)

			if s.volumeReset {
				if month := time.Now().UTC().Month(); month != lastResetMonth {
					if n, err := s.records.ResetMonthlyVolume(ctx); err != nil {
						logger.Error("monthly volume reset failed", "error", err)
					} else {
						logger.Info("monthly volume reset", "records", n)
						lastResetMonth = month
					}
				}
			}
			cancel()
		}
	}
}

// Sweep walks every known address and recomputes its tier and gates.
// Failures are logged per address and never abort the sweep.
func (s *Scheduler) Sweep(ctx context.Context) {
	var afterID int64
	var swept, failed int

	for {
		addresses, lastID, err := s.records.ListAddresses(ctx, s.batchSize, afterID)
		if err != nil {
			logger.Error("tier sweep page failed", "after_id", afterID, "error", err)
			return
		}
		if len(addresses) == 0 {
			break
		}

		for _, addr := range addresses {
			if err := s.refreshOne(ctx, addr); err != nil {
				logger.WithAddress(addr).Warn("tier sweep refresh failed", "error", err)
				failed++
			} else {
				swept++
			}

			select {
			case <-ctx.Done():
				logger.Warn("tier sweep aborted", "swept", swept, "failed", failed)
				return
			default:
			}
		}
		afterID = lastID
	}

	logger.Info("tier sweep finished", "swept", swept, "failed", failed)
}

func (s *Scheduler) refreshOne(ctx context.Context, address string) error {
	if _, err := s.tiers.Refresh(ctx, address); err != nil {
		return err
	}
	if _, err := s.eligibility.UpdateClaimEligibility(ctx, address); err != nil {
		return err
	}
	_, err := s.eligibility.UpdateDepositEligibility(ctx, address)
	return err
}
