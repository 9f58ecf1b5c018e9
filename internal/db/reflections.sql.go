package db

import (
	"context"
	"time"
)

const reflectionColumns = `id, feedback_id, ad_id, brief_id, reflection, insights, created_at`

func scanReflection(row interface{ Scan(...interface{}) error }) (Reflection, error) {
	var i Reflection
	err := row.Scan(
		&i.ID,
		&i.FeedbackID,
		&i.AdID,
		&i.BriefID,
		&i.Reflection,
		&i.Insights,
		&i.CreatedAt,
	)
	return i, err
}

const createReflection = `-- name: CreateReflection :one
INSERT INTO reflections (id, feedback_id, ad_id, brief_id, reflection, insights, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`

type CreateReflectionParams struct {
	ID         string
	FeedbackID string
	AdID       string
	BriefID    string
	Reflection string
	Insights   string
}

func (q *Queries) CreateReflection(ctx context.Context, arg CreateReflectionParams) (Reflection, error) {
	_, err := q.db.ExecContext(ctx, createReflection,
		arg.ID,
		arg.FeedbackID,
		arg.AdID,
		arg.BriefID,
		arg.Reflection,
		arg.Insights,
		time.Now().UTC(),
	)
	if err != nil {
		return Reflection{}, err
	}
	return q.GetReflection(ctx, arg.ID)
}

const getReflection = `-- name: GetReflection :one
SELECT ` + reflectionColumns + ` FROM reflections WHERE id = ?`

func (q *Queries) GetReflection(ctx context.Context, id string) (Reflection, error) {
	i, err := scanReflection(q.db.QueryRowContext(ctx, getReflection, id))
	return i, notFound(err)
}

const listReflectionsForBrief = `-- name: ListReflectionsForBrief :many
SELECT ` + reflectionColumns + ` FROM reflections
WHERE brief_id = ?
ORDER BY created_at, rowid`

func (q *Queries) ListReflectionsForBrief(ctx context.Context, briefID string) ([]Reflection, error) {
	rows, err := q.db.QueryContext(ctx, listReflectionsForBrief, briefID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Reflection
	for rows.Next() {
		i, err := scanReflection(rows)
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

const countReflections = `-- name: CountReflections :one
SELECT COUNT(*) FROM reflections`

func (q *Queries) CountReflections(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countReflections).Scan(&count)
	return count, err
}
