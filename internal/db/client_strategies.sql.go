package db

import (
	"context"
	"time"
)

const clientStrategyColumns = `brief_id, strategy, update_count, created_at, updated_at`

func scanClientStrategy(row interface{ Scan(...interface{}) error }) (ClientStrategy, error) {
	var i ClientStrategy
	err := row.Scan(
		&i.BriefID,
		&i.Strategy,
		&i.UpdateCount,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertClientStrategy = `-- name: UpsertClientStrategy :one
INSERT INTO client_strategies (brief_id, strategy, update_count, created_at, updated_at)
VALUES (?1, ?2, 1, ?3, ?3)
ON CONFLICT(brief_id) DO UPDATE SET
    strategy = excluded.strategy,
    update_count = client_strategies.update_count + 1,
    updated_at = excluded.updated_at`

type UpsertClientStrategyParams struct {
	BriefID  string
	Strategy string
}

// UpsertClientStrategy stores a brief's strategy, counting every update.
func (q *Queries) UpsertClientStrategy(ctx context.Context, arg UpsertClientStrategyParams) (ClientStrategy, error) {
	_, err := q.db.ExecContext(ctx, upsertClientStrategy,
		arg.BriefID,
		arg.Strategy,
		time.Now().UTC(),
	)
	if err != nil {
		return ClientStrategy{}, err
	}
	return q.GetClientStrategy(ctx, arg.BriefID)
}

const getClientStrategy = `-- name: GetClientStrategy :one
SELECT ` + clientStrategyColumns + ` FROM client_strategies WHERE brief_id = ?`

func (q *Queries) GetClientStrategy(ctx context.Context, briefID string) (ClientStrategy, error) {
	i, err := scanClientStrategy(q.db.QueryRowContext(ctx, getClientStrategy, briefID))
	return i, notFound(err)
}
