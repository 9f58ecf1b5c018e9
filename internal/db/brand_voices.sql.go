package db

import (
	"context"
	"time"
)

const brandVoiceColumns = `key, product_name, tone, guide, version, created_at, updated_at`

func scanBrandVoice(row interface{ Scan(...interface{}) error }) (BrandVoice, error) {
	var i BrandVoice
	err := row.Scan(
		&i.Key,
		&i.ProductName,
		&i.Tone,
		&i.Guide,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertBrandVoice = `-- name: UpsertBrandVoice :one
INSERT INTO brand_voices (key, product_name, tone, guide, version, created_at, updated_at)
VALUES (?1, ?2, ?3, ?4, 1, ?5, ?5)
ON CONFLICT(key) DO UPDATE SET
    product_name = excluded.product_name,
    tone = excluded.tone,
    guide = excluded.guide,
    version = brand_voices.version + 1,
    updated_at = excluded.updated_at`

type UpsertBrandVoiceParams struct {
	Key         string
	ProductName string
	Tone        string
	Guide       string
}

// UpsertBrandVoice inserts a voice at version 1 or replaces the stored
// guide and bumps its version.
func (q *Queries) UpsertBrandVoice(ctx context.Context, arg UpsertBrandVoiceParams) (BrandVoice, error) {
	_, err := q.db.ExecContext(ctx, upsertBrandVoice,
		arg.Key,
		arg.ProductName,
		arg.Tone,
		arg.Guide,
		time.Now().UTC(),
	)
	if err != nil {
		return BrandVoice{}, err
	}
	return q.GetBrandVoice(ctx, arg.Key)
}

const getBrandVoice = `-- name: GetBrandVoice :one
SELECT ` + brandVoiceColumns + ` FROM brand_voices WHERE key = ?`

func (q *Queries) GetBrandVoice(ctx context.Context, key string) (BrandVoice, error) {
	i, err := scanBrandVoice(q.db.QueryRowContext(ctx, getBrandVoice, key))
	return i, notFound(err)
}

const listBrandVoices = `-- name: ListBrandVoices :many
SELECT ` + brandVoiceColumns + ` FROM brand_voices ORDER BY product_name`

func (q *Queries) ListBrandVoices(ctx context.Context) ([]BrandVoice, error) {
	rows, err := q.db.QueryContext(ctx, listBrandVoices)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []BrandVoice
	for rows.Next() {
		i, err := scanBrandVoice(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countBrandVoices = `-- name: CountBrandVoices :one
SELECT COUNT(*) FROM brand_voices`

func (q *Queries) CountBrandVoices(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countBrandVoices).Scan(&count)
	return count, err
}
