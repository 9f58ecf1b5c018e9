package db

import (
	"context"
	"database/sql"
	"time"
)

const feedbackColumns = `id, ad_id, brief_id, feedback, score, processed, created_at`

func scanFeedback(row interface{ Scan(...interface{}) error }) (Feedback, error) {
	var i Feedback
	err := row.Scan(
		&i.ID,
		&i.AdID,
		&i.BriefID,
		&i.Feedback,
		&i.Score,
		&i.Processed,
		&i.CreatedAt,
	)
	return i, err
}

const createFeedback = `-- name: CreateFeedback :one
INSERT INTO feedback (id, ad_id, brief_id, feedback, score, processed, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`

type CreateFeedbackParams struct {
	ID        string
	AdID      string
	BriefID   string
	Feedback  string
	Score     sql.NullInt64
	Processed string
}

func (q *Queries) CreateFeedback(ctx context.Context, arg CreateFeedbackParams) (Feedback, error) {
	_, err := q.db.ExecContext(ctx, createFeedback,
		arg.ID,
		arg.AdID,
		arg.BriefID,
		arg.Feedback,
		arg.Score,
		arg.Processed,
		time.Now().UTC(),
	)
	if err != nil {
		return Feedback{}, err
	}
	return q.GetFeedback(ctx, arg.ID)
}

const getFeedback = `-- name: GetFeedback :one
SELECT ` + feedbackColumns + ` FROM feedback WHERE id = ?`

func (q *Queries) GetFeedback(ctx context.Context, id string) (Feedback, error) {
	i, err := scanFeedback(q.db.QueryRowContext(ctx, getFeedback, id))
	return i, notFound(err)
}

const latestFeedbackForAd = `-- name: LatestFeedbackForAd :one
SELECT ` + feedbackColumns + ` FROM feedback
WHERE ad_id = ?
ORDER BY created_at DESC, rowid DESC
LIMIT 1`

func (q *Queries) LatestFeedbackForAd(ctx context.Context, adID string) (Feedback, error) {
	i, err := scanFeedback(q.db.QueryRowContext(ctx, latestFeedbackForAd, adID))
	return i, notFound(err)
}

const listFeedbackForAd = `-- name: ListFeedbackForAd :many
SELECT ` + feedbackColumns + ` FROM feedback
WHERE ad_id = ?
ORDER BY created_at, rowid`

func (q *Queries) ListFeedbackForAd(ctx context.Context, adID string) ([]Feedback, error) {
	rows, err := q.db.QueryContext(ctx, listFeedbackForAd, adID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Feedback
	for rows.Next() {
		i, err := scanFeedback(rows)
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

const countFeedback = `-- name: CountFeedback :one
SELECT COUNT(*) FROM feedback`

func (q *Queries) CountFeedback(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countFeedback).Scan(&count)
	return count, err
}

const averageScore = `-- name: AverageScore :one
SELECT AVG(score) FROM feedback WHERE score IS NOT NULL`

// AverageScore is the mean feedback score; Valid is false with no scores.
func (q *Queries) AverageScore(ctx context.Context) (sql.NullFloat64, error) {
	var avg sql.NullFloat64
	err := q.db.QueryRowContext(ctx, averageScore).Scan(&avg)
	return avg, err
}
