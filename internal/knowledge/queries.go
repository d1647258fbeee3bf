package knowledge

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool the queries need. *pgxpool.Pool and
// pgx.Tx both satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries implements Querier against PostgreSQL with pgvector.
type Queries struct {
	db DBTX
}

// NewQueries wraps a database handle.
func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

const upsertChunkSQL = `
INSERT INTO chunks (id, content, url, embedding)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET
    content    = EXCLUDED.content,
    url        = EXCLUDED.url,
    embedding  = EXCLUDED.embedding,
    created_at = now()
`

// UpsertChunk inserts or replaces a chunk.
func (q *Queries) UpsertChunk(ctx context.Context, arg UpsertChunkParams) error {
	_, err := q.db.Exec(ctx, upsertChunkSQL, arg.ID, arg.Content, arg.URL, arg.Embedding)
	return err
}

const searchChunksSQL = `
SELECT id, content, url, created_at,
       1 - (embedding <=> $1) AS similarity
FROM chunks
ORDER BY embedding <=> $1
LIMIT $2
`

// SearchChunks returns the nearest chunks by cosine distance.
func (q *Queries) SearchChunks(ctx context.Context, arg SearchChunksParams) ([]SearchChunksRow, error) {
	rows, err := q.db.Query(ctx, searchChunksSQL, arg.QueryEmbedding, arg.ResultLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SearchChunksRow
	for rows.Next() {
		var row SearchChunksRow
		if err := rows.Scan(&row.ID, &row.Content, &row.URL, &row.CreatedAt, &row.Similarity); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CountChunks counts all stored chunks.
func (q *Queries) CountChunks(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM chunks`).Scan(&count)
	return count, err
}

// DeleteAllChunks empties the collection.
func (q *Queries) DeleteAllChunks(ctx context.Context) error {
	_, err := q.db.Exec(ctx, `DELETE FROM chunks`)
	return err
}
