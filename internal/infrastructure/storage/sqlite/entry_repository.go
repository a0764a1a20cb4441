package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"carnet/internal/domain/entry"

	"golang.org/x/exp/slog"
)

type EntryRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewEntryRepository(db *sql.DB, log *slog.Logger) *EntryRepository {
	return &EntryRepository{
		db:  db,
		log: log.With("component", "entry_repository"),
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

	query := "SELECT id, user_id, data FROM " + table + " WHERE user_id = ?"
	args := []any{filter.UserID}
	if filter.ID != "" {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	query += " ORDER BY rowid LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list entries", "collection", collection, "user_id", filter.UserID, "error", err)
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	defer rows.Close()

	recs := make([]entry.Record, 0)
	for rows.Next() {
		var rec entry.Record
		var data string
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

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO "+table+" (id, user_id, data) VALUES (?, ?, ?)",
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

	res, err := r.db.ExecContext(ctx,
		"UPDATE "+table+" SET data = ? WHERE id = ? AND user_id = ?",
		string(data), filter.ID, filter.UserID)
	if err != nil {
		r.log.Error("failed to update entry", "collection", collection, "entry_id", filter.ID, "error", err)
		return false, fmt.Errorf("update %s: %w", collection, err)
	}
	return affected(res)
}

func (r *EntryRepository) DeleteOne(ctx context.Context, collection string, filter entry.Filter) (bool, error) {
	table, err := tableName(collection)
	if err != nil {
		return false, err
	}

	res, err := r.db.ExecContext(ctx,
		"DELETE FROM "+table+" WHERE id = ? AND user_id = ?",
		filter.ID, filter.UserID)
	if err != nil {
		r.log.Error("failed to delete entry", "collection", collection, "entry_id", filter.ID, "error", err)
		return false, fmt.Errorf("delete %s: %w", collection, err)
	}
	return affected(res)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// tableName only lets known collections reach the query text. Names are
// plain lowercase words, so double quotes are enough.
func tableName(collection string) (string, error) {
	if _, ok := entry.Lookup(collection); !ok {
		return "", fmt.Errorf("%w: %q", entry.ErrUnknownCollection, collection)
	}
	return `"` + collection + `"`, nil
}
