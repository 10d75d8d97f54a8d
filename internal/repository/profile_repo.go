package repository

import (
	"context"
	"errors"

	"marketplace_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByAddress(ctx context.Context, address string) (*domain.GameProfile, error) {
	var p domain.GameProfile
	err := r.db.QueryRow(ctx,
		`SELECT id, address, account_level, quests_completed, pvp_rating
		 FROM game_profiles WHERE address = $1`,
		address,
	).Scan(&p.ID, &p.Address, &p.AccountLevel, &p.QuestsCompleted, &p.PvPRating)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Upsert mirrors the latest progression snapshot pulled from the game
// backend so eligibility checks do not need a live round trip every time.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.GameProfile) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO game_profiles (address, account_level, quests_completed, pvp_rating)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (address) DO UPDATE SET
		   account_level = EXCLUDED.account_level,
		   quests_completed = EXCLUDED.quests_completed,
		   pvp_rating = EXCLUDED.pvp_rating
		 RETURNING id`,
		p.Address, p.AccountLevel, p.QuestsCompleted, p.PvPRating,
	).Scan(&p.ID)
}
