package db

import (
	"context"
	"database/sql"
	"time"
)

const briefColumns = `id, product_name, description, target_audience, campaign_goals, tone, key_selling_points, platform, additional_notes, created_at`

func scanBrief(row interface{ Scan(...interface{}) error }) (Brief, error) {
	var i Brief
	err := row.Scan(
		&i.ID,
		&i.ProductName,
		&i.Description,
		&i.TargetAudience,
		&i.CampaignGoals,
		&i.Tone,
		&i.KeySellingPoints,
		&i.Platform,
		&i.AdditionalNotes,
		&i.CreatedAt,
	)
	return i, err
}

const createBrief = `-- name: CreateBrief :one
INSERT INTO briefs (
    id, product_name, description, target_audience, campaign_goals,
    tone, key_selling_points, platform, additional_notes, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type CreateBriefParams struct {
	ID               string
	ProductName      string
	Description      string
	TargetAudience   string
	CampaignGoals    string
	Tone             string
	KeySellingPoints string
	Platform         sql.NullString
	AdditionalNotes  sql.NullString
}

func (q *Queries) CreateBrief(ctx context.Context, arg CreateBriefParams) (Brief, error) {
	_, err := q.db.ExecContext(ctx, createBrief,
		arg.ID,
		arg.ProductName,
		arg.Description,
		arg.TargetAudience,
		arg.CampaignGoals,
		arg.Tone,
		arg.KeySellingPoints,
		arg.Platform,
		arg.AdditionalNotes,
		time.Now().UTC(),
	)
	if err != nil {
		return Brief{}, err
	}
	return q.GetBrief(ctx, arg.ID)
}

const getBrief = `-- name: GetBrief :one
SELECT ` + briefColumns + ` FROM briefs WHERE id = ?`

func (q *Queries) GetBrief(ctx context.Context, id string) (Brief, error) {
	i, err := scanBrief(q.db.QueryRowContext(ctx, getBrief, id))
	return i, notFound(err)
}

const listBriefs = `-- name: ListBriefs :many
SELECT ` + briefColumns + ` FROM briefs
ORDER BY created_at DESC, rowid DESC
LIMIT ?`

func (q *Queries) ListBriefs(ctx context.Context, limit int64) ([]Brief, error) {
	rows, err := q.db.QueryContext(ctx, listBriefs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Brief
	for rows.Next() {
		i, err := scanBrief(rows)
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

const countBriefs = `-- name: CountBriefs :one
SELECT COUNT(*) FROM briefs`

func (q *Queries) CountBriefs(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countBriefs).Scan(&count)
	return count, err
}
