package repository

import (
	"context"
	"errors"
	"strings"

	"marketplace_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrStaleRecord = errors.New("record changed since it was read")
)

type TierRecordRepository struct {
	db *pgxpool.Pool
}

func NewTierRecordRepository(db *pgxpool.Pool) *TierRecordRepository {
	return &TierRecordRepository{db: db}
}

const tierRecordColumns = `id, address, web_app_tier, monthly_trading_volume, total_trading_volume,
	total_xres_claimed, total_xrec_claimed, total_res_deposited, total_rec_deposited,
	last_xres_claim_time, last_xrec_claim_time, can_claim, can_deposit,
	COALESCE(player_account_id, ''), created_at, updated_at`

func scanTierRecord(row pgx.Row) (*domain.TierRecord, error) {
	var rec domain.TierRecord
	err := row.Scan(
		&rec.ID,
		&rec.Address,
		&rec.WebAppTier,
		&rec.MonthlyTradingVolume,
		&rec.TotalTradingVolume,
		&rec.TotalXRESClaimed,
		&rec.TotalXRECClaimed,
		&rec.TotalRESDeposited,
		&rec.TotalRECDeposited,
		&rec.LastXRESClaimTime,
		&rec.LastXRECClaimTime,
		&rec.CanClaim,
		&rec.CanDeposit,
		&rec.PlayerAccountID,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *TierRecordRepository) GetByAddress(ctx context.Context, address string) (*domain.TierRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+tierRecordColumns+` FROM tier_records WHERE address = $1`,
		address,
	)
	return scanTierRecord(row)
}

func (r *TierRecordRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.TierRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+tierRecordColumns+` FROM tier_records WHERE player_account_id = $1`,
		accountID,
	)
	return scanTierRecord(row)
}

// Create inserts a fresh record for an address on first webapp interaction.
func (r *TierRecordRepository) Create(ctx context.Context, rec *domain.TierRecord) error {
	if rec.WebAppTier == "" {
		rec.WebAppTier = domain.TierNewcomer
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO tier_records (address, web_app_tier, player_account_id)
		 VALUES ($1, $2, NULLIF($3, ''))
		 RETURNING id, created_at, updated_at`,
		rec.Address, rec.WebAppTier, rec.PlayerAccountID,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
}

func (r *TierRecordRepository) UpdateTier(ctx context.Context, address string, tier domain.Tier) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tier_records SET web_app_tier = $1, updated_at = now() WHERE address = $2`,
		tier, address,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TierRecordRepository) SetClaimEligibility(ctx context.Context, address string, can bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tier_records SET can_claim = $1, updated_at = now() WHERE address = $2`,
		can, address,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TierRecordRepository) SetDepositEligibility(ctx context.Context, address string, can bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tier_records SET can_deposit = $1, updated_at = now() WHERE address = $2`,
		can, address,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordClaim stamps a successful claim: bumps the cumulative counter and
// moves the last-claim time, but only if the stored last-claim time still
// matches what the caller read. A stale guard means a concurrent claim won
// the race and the caller must not double-count.
func (r *TierRecordRepository) RecordClaim(ctx context.Context, address, currency string, amount float64, claimTime, expectedLastClaim int64) error {
	var query string
	switch strings.ToLower(currency) {
	case "xres":
		query = `UPDATE tier_records
			 SET last_xres_claim_time = $1, total_xres_claimed = total_xres_claimed + $2, updated_at = now()
			 WHERE address = $3 AND last_xres_claim_time = $4`
	case "xrec":
		query = `UPDATE tier_records
			 SET last_xrec_claim_time = $1, total_xrec_claimed = total_xrec_claimed + $2, updated_at = now()
			 WHERE address = $3 AND last_xrec_claim_time = $4`
	default:
		return errors.New("unknown currency: " + currency)
	}

	tag, err := r.db.Exec(ctx, query, claimTime, amount, address, expectedLastClaim)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStaleRecord
	}
	return nil
}

// RecordDeposit bumps the cumulative deposited counter.
func (r *TierRecordRepository) RecordDeposit(ctx context.Context, address string, amount float64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tier_records
		 SET total_res_deposited = total_res_deposited + $1, updated_at = now()
		 WHERE address = $2`,
		amount, address,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddTradingVolume accumulates marketplace volume into both the monthly
// and lifetime counters.
func (r *TierRecordRepository) AddTradingVolume(ctx context.Context, address string, amount float64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tier_records
		 SET monthly_trading_volume = monthly_trading_volume + $1,
		     total_trading_volume = total_trading_volume + $1,
		     updated_at = now()
		 WHERE address = $2`,
		amount, address,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetMonthlyVolume zeroes every monthly counter. Called by the monthly
// scheduler sweep.
func (r *TierRecordRepository) ResetMonthlyVolume(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE tier_records SET monthly_trading_volume = 0, updated_at = now()
		 WHERE monthly_trading_volume <> 0`,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListAddresses pages through known addresses for scheduled sweeps.
func (r *TierRecordRepository) ListAddresses(ctx context.Context, limit int, afterID int64) ([]string, int64, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, address FROM tier_records WHERE id > $1 ORDER BY id LIMIT $2`,
		afterID, limit,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		addresses []string
		lastID    int64
	)
	for rows.Next() {
		var id int64
		var addr string
		if err := rows.Scan(&id, &addr); err != nil {
			return nil, 0, err
		}
		addresses = append(addresses, addr)
		lastID = id
	}
	return addresses, lastID, rows.Err()
}
