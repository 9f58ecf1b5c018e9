package db

import (
	"context"
	"database/sql"
	"time"
)

const adColumns = `id, brief_id, parent_id, ad_type, variations, brand_voice, failed_count, created_at`

func scanAd(row interface{ Scan(...interface{}) error }) (Ad, error) {
	var i Ad
	err := row.Scan(
		&i.ID,
		&i.BriefID,
		&i.ParentID,
		&i.AdType,
		&i.Variations,
		&i.BrandVoice,
		&i.FailedCount,
		&i.CreatedAt,
	)
	return i, err
}

const createAd = `-- name: CreateAd :one
INSERT INTO ads (id, brief_id, parent_id, ad_type, variations, brand_voice, failed_count, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

type CreateAdParams struct {
	ID          string
	BriefID     string
	ParentID    sql.NullString
	AdType      string
	Variations  string
	BrandVoice  string
	FailedCount int64
}

func (q *Queries) CreateAd(ctx context.Context, arg CreateAdParams) (Ad, error) {
	_, err := q.db.ExecContext(ctx, createAd,
		arg.ID,
		arg.BriefID,
		arg.ParentID,
		arg.AdType,
		arg.Variations,
		arg.BrandVoice,
		arg.FailedCount,
		time.Now().UTC(),
	)
	if err != nil {
		return Ad{}, err
	}
	return q.GetAd(ctx, arg.ID)
}

const getAd = `-- name: GetAd :one
SELECT ` + adColumns + ` FROM ads WHERE id = ?`

func (q *Queries) GetAd(ctx context.Context, id string) (Ad, error) {
	i, err := scanAd(q.db.QueryRowContext(ctx, getAd, id))
	return i, notFound(err)
}

const listAdsForBrief = `-- name: ListAdsForBrief :many
SELECT ` + adColumns + ` FROM ads
WHERE brief_id = ?
ORDER BY created_at, rowid`

func (q *Queries) ListAdsForBrief(ctx context.Context, briefID string) ([]Ad, error) {
	return q.listAds(ctx, listAdsForBrief, briefID)
}

const listAdRevisions = `-- name: ListAdRevisions :many
SELECT ` + adColumns + ` FROM ads
WHERE parent_id = ?
ORDER BY created_at, rowid`

// ListAdRevisions returns the ads regenerated from parentID.
func (q *Queries) ListAdRevisions(ctx context.Context, parentID string) ([]Ad, error) {
	return q.listAds(ctx, listAdRevisions, parentID)
}

func (q *Queries) listAds(ctx context.Context, query string, args ...interface{}) ([]Ad, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Ad
	for rows.Next() {
		i, err := scanAd(rows)
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

const countAds = `-- name: CountAds :one
SELECT COUNT(*) FROM ads`

func (q *Queries) CountAds(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countAds).Scan(&count)
	return count, err
}

const countAdsByType = `-- name: CountAdsByType :many
SELECT ad_type, COUNT(*) AS count FROM ads
GROUP BY ad_type
ORDER BY count DESC, ad_type`

type CountAdsByTypeRow struct {
	AdType string `json:"ad_type"`
	Count  int64  `json:"count"`
}

func (q *Queries) CountAdsByType(ctx context.Context) ([]CountAdsByTypeRow, error) {
	rows, err := q.db.QueryContext(ctx, countAdsByType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CountAdsByTypeRow
	for rows.Next() {
		var i CountAdsByTypeRow
		if err := rows.Scan(&i.AdType, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const sumFailedVariations = `-- name: SumFailedVariations :one
SELECT COALESCE(SUM(failed_count), 0) FROM ads`

// SumFailedVariations counts sentinel slots across all stored ads.
func (q *Queries) SumFailedVariations(ctx context.Context) (int64, error) {
	var total int64
	err := q.db.QueryRowContext(ctx, sumFailedVariations).Scan(&total)
	return total, err
}
