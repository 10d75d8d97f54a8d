package claim

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace_webapp/internal/chain"
	"marketplace_webapp/internal/domain"
	"marketplace_webapp/internal/lock"
	"marketplace_webapp/internal/logger"
	"marketplace_webapp/internal/tier"
)

var (
	ErrUnknownCurrency       = errors.New("unknown claim currency")
	ErrNotEligible           = errors.New("address is not eligible")
	ErrOnCooldown            = errors.New("claim is on cooldown")
	ErrOutsideLimits         = errors.New("amount is outside the tier's claim limits")
	ErrNoLinkedAccount       = errors.New("no game account linked to address")
	ErrInsufficientBalance   = errors.New("off-chain balance is too low")
	ErrInsufficientAllowance = errors.New("custodian allowance is too low")
	ErrMintNotReflected      = errors.New("minted tokens not reflected in on-chain balance")
	ErrTransferNotReflected  = errors.New("transferred tokens not reflected in custodian balance")
)

// Records is the persistence surface the claim flow needs.
type Records interface {
	GetByAddress(ctx context.Context, address string) (*domain.TierRecord, error)
	SetClaimEligibility(ctx context.Context, address string, can bool) error
	SetDepositEligibility(ctx context.Context, address string, can bool) error
	RecordClaim(ctx context.Context, address, currency string, amount float64, claimTime, expectedLastClaim int64) error
	RecordDeposit(ctx context.Context, address string, amount float64) error
}

// Profiles reads in-game progression for newcomer eligibility checks.
type Profiles interface {
	GetByAddress(ctx context.Context, address string) (*domain.GameProfile, error)
}

// Ledger is the custodial signer surface used to move reward tokens.
type Ledger interface {
	RewardBalanceOf(ctx context.Context, address string) (float64, error)
	NFTBalanceOf(ctx context.Context, address string) (int, error)
	Allowance(ctx context.Context, owner, spender string) (float64, error)
	Mint(ctx context.Context, to string, amount float64) (string, error)
	TransferFrom(ctx context.Context, from, to string, amount float64) (string, error)
	WaitForConfirmation(ctx context.Context, hash string, timeout time.Duration) (*chain.Transaction, error)
}

// PlayerStore is the game-backend surface holding off-chain balances.
type PlayerStore interface {
	Balance(ctx context.Context, accountID, currencyKey string) (float64, error)
	SetBalance(ctx context.Context, accountID, currencyKey string, value float64) error
	ChainAddress(ctx context.Context, accountID string) (string, error)
}

// Activities records feed events. May be nil.
type Activities interface {
	Create(ctx context.Context, a *domain.Activity) error
}

// offchainKeys maps the public currency names to the game backend's
// virtual currency keys.
var offchainKeys = map[string]string{
	"xres": "xRES",
	"xrec": "xREC",
}

type Service struct {
	records    Records
	profiles   Profiles
	ledger     Ledger
	players    PlayerStore
	activities Activities
	scope      lock.Scope

	custodian      string
	confirmTimeout time.Duration
}

func NewService(records Records, profiles Profiles, ledger Ledger, players PlayerStore, activities Activities, scope lock.Scope, custodian string) *Service {
	return &Service{
		records:        records,
		profiles:       profiles,
		ledger:         ledger,
		players:        players,
		activities:     activities,
		scope:          scope,
		custodian:      custodian,
		confirmTimeout: 60 * time.Second,
	}
}

// ClaimResult summarises a completed claim.
type ClaimResult struct {
	TxHash          string  `json:"tx_hash"`
	Amount          float64 `json:"amount"`
	UserShare       float64 `json:"user_share"`
	Fee             float64 `json:"fee"`
	OffchainBalance float64 `json:"offchain_balance"`

	// FeeDone resolves when the fee-share mint has been confirmed (or
	// failed, carrying the error). Callers may await it or discard it.
	FeeDone <-chan error `json:"-"`
}

// ClaimCurrency converts an off-chain balance into on-chain reward tokens.
// The user's share is minted and confirmed before the off-chain debit, so a
// failed mint costs the caller nothing. Claims for the same address and
// currency are serialised by the lock scope.
func (s *Service) ClaimCurrency(ctx context.Context, address, currency string, amount float64) (*ClaimResult, error) {
	currency = strings.ToLower(currency)
	key, ok := offchainKeys[currency]
	if !ok {
		return nil, ErrUnknownCurrency
	}

	release, err := s.scope.Acquire(ctx, "claim:"+currency+":"+address)
	if err != nil {
		return nil, err
	}
	defer release()

	rec, err := s.records.GetByAddress(ctx, address)
	if err != nil {
		return nil, err
	}

	benefits, err := tier.BenefitsFor(rec.WebAppTier)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	chk := Check(rec, benefits, currency, amount, now)
	switch {
	case !chk.Claimable:
		return nil, ErrNotEligible
	case chk.OnCooldown:
		return nil, fmt.Errorf("%w: %ds remaining", ErrOnCooldown, chk.CooldownRemaining)
	case !chk.WithinLimits:
		return nil, ErrOutsideLimits
	}

	if rec.PlayerAccountID == "" {
		return nil, ErrNoLinkedAccount
	}

	balance, err := s.players.Balance(ctx, rec.PlayerAccountID, key)
	if err != nil {
		return nil, err
	}
	if balance < amount {
		return nil, ErrInsufficientBalance
	}

	fee := amount * benefits.ClaimFeePercent / 100
	userShare := amount - fee

	before, err := s.ledger.RewardBalanceOf(ctx, address)
	if err != nil {
		return nil, err
	}

	hash, err := s.ledger.Mint(ctx, address, userShare)
	if err != nil {
		return nil, fmt.Errorf("mint user share: %w", err)
	}
	if _, err := s.ledger.WaitForConfirmation(ctx, hash, s.confirmTimeout); err != nil {
		return nil, fmt.Errorf("confirm user mint %s: %w", hash, err)
	}

	// The fee mint to the custodian does not block the user's claim. It
	// runs to confirmation in the background; callers that care can await
	// the result on FeeDone, everyone else gets it logged.
	feeDone := make(chan error, 1)
	go func(ctx context.Context) {
		feeDone <- s.mintFee(ctx, address, fee)
	}(context.WithoutCancel(ctx))

	after, err := s.ledger.RewardBalanceOf(ctx, address)
	if err != nil {
		return nil, err
	}
	if after <= before {
		return nil, ErrMintNotReflected
	}

	// The on-chain side succeeded; only now touch the off-chain balance.
	newBalance := balance - amount
	if err := s.players.SetBalance(ctx, rec.PlayerAccountID, key, newBalance); err != nil {
		return nil, fmt.Errorf("debit off-chain balance: %w", err)
	}

	if err := s.records.RecordClaim(ctx, address, currency, amount, now, rec.LastClaimTime(currency)); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, &domain.Activity{
		Address:  address,
		Kind:     domain.ActivityClaim,
		Currency: currency,
		Amount:   amount,
		Meta:     map[string]interface{}{"tx_hash": hash, "fee": fee},
	})

	logger.WithAddress(address).Info("claim completed",
		"currency", currency, "amount", amount, "fee", fee, "tx_hash", hash)

	return &ClaimResult{
		TxHash:          hash,
		Amount:          amount,
		UserShare:       userShare,
		Fee:             fee,
		OffchainBalance: newBalance,
		FeeDone:         feeDone,
	}, nil
}

func (s *Service) mintFee(ctx context.Context, address string, fee float64) error {
	if fee <= 0 {
		return nil
	}
	hash, err := s.ledger.Mint(ctx, s.custodian, fee)
	if err != nil {
		logger.WithAddress(address).Error("fee mint failed", "fee", fee, "error", err)
		return fmt.Errorf("fee mint: %w", err)
	}
	if _, err := s.ledger.WaitForConfirmation(ctx, hash, s.confirmTimeout); err != nil {
		logger.WithAddress(address).Error("fee mint unconfirmed", "tx_hash", hash, "error", err)
		return fmt.Errorf("confirm fee mint %s: %w", hash, err)
	}
	logger.WithAddress(address).Debug("fee mint confirmed", "tx_hash", hash, "fee", fee)
	return nil
}

// DepositResult summarises a completed deposit.
type DepositResult struct {
	TxHash          string  `json:"tx_hash"`
	Amount          float64 `json:"amount"`
	OffchainBalance float64 `json:"offchain_balance"`
}

// DepositCurrency moves on-chain reward tokens into the custodian wallet
// and credits the off-chain balance. The caller must have approved the
// custodian for at least the deposited amount beforehand.
func (s *Service) DepositCurrency(ctx context.Context, address string, amount float64) (*DepositResult, error) {
	if amount <= 0 {
		return nil, ErrOutsideLimits
	}

	release, err := s.scope.Acquire(ctx, "deposit:"+address)
	if err != nil {
		return nil, err
	}
	defer release()

	rec, err := s.records.GetByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	if !rec.CanDeposit {
		return nil, ErrNotEligible
	}
	if rec.PlayerAccountID == "" {
		return nil, ErrNoLinkedAccount
	}

	allowance, err := s.ledger.Allowance(ctx, address, s.custodian)
	if err != nil {
		return nil, err
	}
	if allowance < amount {
		return nil, ErrInsufficientAllowance
	}

	before, err := s.ledger.RewardBalanceOf(ctx, s.custodian)
	if err != nil {
		return nil, err
	}

	hash, err := s.ledger.TransferFrom(ctx, address, s.custodian, amount)
	if err != nil {
		return nil, fmt.Errorf("transfer deposit: %w", err)
	}
	if _, err := s.ledger.WaitForConfirmation(ctx, hash, s.confirmTimeout); err != nil {
		return nil, fmt.Errorf("confirm deposit %s: %w", hash, err)
	}

	after, err := s.ledger.RewardBalanceOf(ctx, s.custodian)
	if err != nil {
		return nil, err
	}
	if after <= before {
		return nil, ErrTransferNotReflected
	}

	balance, err := s.players.Balance(ctx, rec.PlayerAccountID, offchainKeys["xres"])
	if err != nil {
		return nil, err
	}
	newBalance := balance + amount
	if err := s.players.SetBalance(ctx, rec.PlayerAccountID, offchainKeys["xres"], newBalance); err != nil {
		return nil, fmt.Errorf("credit off-chain balance: %w", err)
	}

	if err := s.records.RecordDeposit(ctx, address, amount); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, &domain.Activity{
		Address:  address,
		Kind:     domain.ActivityDeposit,
		Currency: "xres",
		Amount:   amount,
		Meta:     map[string]interface{}{"tx_hash": hash},
	})

	logger.WithAddress(address).Info("deposit completed", "amount", amount, "tx_hash", hash)

	return &DepositResult{TxHash: hash, Amount: amount, OffchainBalance: newBalance}, nil
}

// CheckClaim runs the claim gates without moving anything. Used by the
// cooldown and preview endpoints.
func (s *Service) CheckClaim(ctx context.Context, address, currency string, amount float64) (ClaimingCheck, error) {
	currency = strings.ToLower(currency)
	if _, ok := offchainKeys[currency]; !ok {
		return ClaimingCheck{}, ErrUnknownCurrency
	}

	rec, err := s.records.GetByAddress(ctx, address)
	if err != nil {
		return ClaimingCheck{}, err
	}
	benefits, err := tier.BenefitsFor(rec.WebAppTier)
	if err != nil {
		return ClaimingCheck{}, err
	}
	return Check(rec, benefits, currency, amount, time.Now().Unix()), nil
}

// Overview holds the live balance snapshot the webapp dashboard shows.
type Overview struct {
	OnchainBalance   float64            `json:"onchain_balance"`
	Allowance        float64            `json:"allowance"`
	OwnedNFTs        int                `json:"owned_nfts"`
	OffchainBalances map[string]float64 `json:"offchain_balances"`
}

// BalanceOverview reads the on-chain balances and, when a player account
// is linked, the off-chain balances for an address. Off-chain read
// failures degrade to missing entries rather than failing the snapshot.
func (s *Service) BalanceOverview(ctx context.Context, address string) (*Overview, error) {
	rec, err := s.records.GetByAddress(ctx, address)
	if err != nil {
		return nil, err
	}

	onchain, err := s.ledger.RewardBalanceOf(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("reward balance: %w", err)
	}
	allowance, err := s.ledger.Allowance(ctx, address, s.custodian)
	if err != nil {
		return nil, fmt.Errorf("allowance: %w", err)
	}
	nfts, err := s.ledger.NFTBalanceOf(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("nft balance: %w", err)
	}

	out := &Overview{
		OnchainBalance:   onchain,
		Allowance:        allowance,
		OwnedNFTs:        nfts,
		OffchainBalances: map[string]float64{},
	}

	if rec.PlayerAccountID != "" {
		for currency, key := range offchainKeys {
			bal, err := s.players.Balance(ctx, rec.PlayerAccountID, key)
			if err != nil {
				logger.WithAddress(address).Warn("off-chain balance read failed",
					"currency", currency, "error", err)
				continue
			}
			out.OffchainBalances[currency] = bal
		}
	}

	return out, nil
}

func (s *Service) recordActivity(ctx context.Context, a *domain.Activity) {
	if s.activities == nil {
		return
	}
	if err := s.activities.Create(ctx, a); err != nil {
		logger.WithAddress(a.Address).Warn("activity write failed", "kind", a.Kind, "error", err)
	}
}
