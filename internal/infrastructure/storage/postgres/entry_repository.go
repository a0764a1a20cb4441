package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"carnet/internal/domain/entry"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

// EntryRepository keeps each collection in its own table of
// (id, user_id, data jsonb) rows.
type EntryRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewEntryRepository(pool *pgxpool.Pool, log *slog.Logger) *EntryRepository {
	return &EntryRepository{
		pool: pool,
		log:  log.With("component", "entry_repository"),
	}
}

func (r *EntryRepository) Find(ctx context.Context, collection string, filter entry.Filter, limit int) ([]entry.Record, error) {
	table, err := tableName(collection)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > entry.MaxList {
		limit = entry.MaxList
	}

	query := "SELECT id, user_id, data FROM " + table + " WHERE user_id = $1"
	args := []any{filter.UserID}
	if filter.ID != "" {
		query += " AND id = $2"
		args = append(args, filter.ID)
	}
	query += fmt.Sprintf(" ORDER BY seq LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list entries", "collection", collection, "user_id", filter.UserID, "error", err)
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	defer rows.Close()

	recs := make([]entry.Record, 0)
	for rows.Next() {
		var rec entry.Record
		var data []byte
		if err := rows.Scan(&rec.ID, &rec.UserID, &data); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		rec.Data = json.RawMessage(data)
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

func (r *EntryRepository) InsertOne(ctx context.Context, collection string, rec entry.Record) error {
	table, err := tableName(collection)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx,
		"INSERT INTO "+table+" (id, user_id, data) VALUES ($1, $2, $3)",
		rec.ID, rec.UserID, string(rec.Data))
	if err != nil {
		r.log.Error("failed to insert entry", "collection", collection, "user_id", rec.UserID, "error", err)
		return fmt.Errorf("insert %s: %w", collection, err)
	}
	return nil
}

func (r *EntryRepository) UpdateOne(ctx context.Context, collection string, filter entry.Filter, data json.RawMessage) (bool, error) {
	table, err := tableName(collection)
	if err != nil {
		return false, err
	}

	tag, err := r.pool.Exec(ctx,
		"UPDATE "+table+" SET data = $1 WHERE id = $2 AND user_id = $3",
		string(data), filter.ID, filter.UserID)
	if err != nil {
		r.log.Error("failed to update entry", "collection", collection, "entry_id", filter.ID, "error", err)
		return false, fmt.Errorf("update %s: %w", collection, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *EntryRepository) DeleteOne(ctx context.Context, collection string, filter entry.Filter) (bool, error) {
	table, err := tableName(collection)
	if err != nil {
		return false, err
	}

	tag, err := r.pool.Exec(ctx,
		"DELETE FROM "+table+" WHERE id = $1 AND user_id = $2",
		filter.ID, filter.UserID)
	if err != nil {
		r.log.Error("failed to delete entry", "collection", collection, "entry_id", filter.ID, "error", err)
		return false, fmt.Errorf("delete %s: %w", collection, err)
	}
	return tag.RowsAffected() > 0, nil
}

// tableName only lets known collections reach the query text.
func tableName(collection string) (string, error) {
	if _, ok := entry.Lookup(collection); !ok {
		return "", fmt.Errorf("%w: %q", entry.ErrUnknownCollection, collection)
	}
	return pgx.Identifier{collection}.Sanitize(), nil
}
