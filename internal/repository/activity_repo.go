package repository

import (
	"context"
	"encoding/json"

	"marketplace_webapp/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ActivityRepository struct {
	db *pgxpool.Pool
}

func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, a *domain.Activity) error {
	var meta []byte
	if a.Meta != nil {
		b, err := json.Marshal(a.Meta)
		if err != nil {
			return err
		}
		meta = b
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO activities (address, kind, currency, amount, meta)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5)
		 RETURNING id, created_at`,
		a.Address, a.Kind, a.Currency, a.Amount, meta,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *ActivityRepository) GetRecent(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, address, kind, COALESCE(currency, ''), amount, meta, created_at
		 FROM activities ORDER BY id DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Activity
	for rows.Next() {
		var a domain.Activity
		var meta []byte
		if err := rows.Scan(&a.ID, &a.Address, &a.Kind, &a.Currency, &a.Amount, &meta, &a.CreatedAt); err != nil {
			return nil, err
		}
		if len(meta) > 0 {
			_ = json.Unmarshal(meta, &a.Meta)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
