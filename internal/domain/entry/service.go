package entry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Defaulter is implemented by shapes whose absent optional fields default
// to something other than the zero value.
type Defaulter interface {
	ApplyDefaults()
}

type Servicer[T any] interface {
	Collection() Collection
	List(ctx context.Context, userID string) ([]Entry[T], error)
	Create(ctx context.Context, userID string, fields T) (Entry[T], error)
	Update(ctx context.Context, userID, id string, fields T) error
	Delete(ctx context.Context, userID, id string) error
}

// Service runs the owner-scoped operations of one collection against the store.
type Service[T any] struct {
	coll  Collection
	store Store
	log   *slog.Logger
	newID func() string
}

func NewService[T any](coll Collection, store Store, log *slog.Logger) *Service[T] {
	return &Service[T]{
		coll:  coll,
		store: store,
		log: log.With(
			slog.String("component", "entry_service"),
			slog.String("collection", coll.Name),
		),
		newID: uuid.NewString,
	}
}

func (s *Service[T]) Collection() Collection {
	return s.coll
}

// List returns the caller's entries in store order, at most MaxList of them.
func (s *Service[T]) List(ctx context.Context, userID string) ([]Entry[T], error) {
	if userID == "" {
		return nil, ErrNoOwner
	}

	recs, err := s.store.Find(ctx, s.coll.Name, Filter{UserID: userID}, MaxList)
	if err != nil {
		s.log.Error("failed to list entries", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list %s: %w", s.coll.Name, err)
	}

	entries := make([]Entry[T], 0, len(recs))
	for _, rec := range recs {
		e, err := decode[T](rec)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func (s *Service[T]) Create(ctx context.Context, userID string, fields T) (Entry[T], error) {
	if userID == "" {
		return Entry[T]{}, ErrNoOwner
	}

	data, err := s.prepare(&fields)
	if err != nil {
		return Entry[T]{}, err
	}

	rec := Record{ID: s.newID(), UserID: userID, Data: data}
	if err := s.store.InsertOne(ctx, s.coll.Name, rec); err != nil {
		s.log.Error("failed to create entry", "user_id", userID, "error", err)
		return Entry[T]{}, fmt.Errorf("create %s: %w", s.coll.Name, err)
	}

	s.log.Debug("entry created", "entry_id", rec.ID, "user_id", userID)

	return Entry[T]{ID: rec.ID, UserID: userID, Fields: fields}, nil
}

// Update replaces every variant field of the entry matching id and owner.
// A miss is not an error: the caller cannot tell a foreign id from a
// nonexistent one.
func (s *Service[T]) Update(ctx context.Context, userID, id string, fields T) error {
	if !s.coll.Updatable {
		return ErrNotUpdatable
	}
	if userID == "" {
		return ErrNoOwner
	}

	data, err := s.prepare(&fields)
	if err != nil {
		return err
	}

	matched, err := s.store.UpdateOne(ctx, s.coll.Name, Filter{ID: id, UserID: userID}, data)
	if err != nil {
		s.log.Error("failed to update entry", "entry_id", id, "user_id", userID, "error", err)
		return fmt.Errorf("update %s: %w", s.coll.Name, err)
	}
	if !matched {
		s.log.Debug("update matched no entry", "entry_id", id, "user_id", userID)
	}

	return nil
}

// Delete removes the entry matching id and owner, with the same miss policy as Update.
func (s *Service[T]) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrNoOwner
	}

	matched, err := s.store.DeleteOne(ctx, s.coll.Name, Filter{ID: id, UserID: userID})
	if err != nil {
		s.log.Error("failed to delete entry", "entry_id", id, "user_id", userID, "error", err)
		return fmt.Errorf("delete %s: %w", s.coll.Name, err)
	}
	if !matched {
		s.log.Debug("delete matched no entry", "entry_id", id, "user_id", userID)
	}

	return nil
}

func (s *Service[T]) prepare(fields *T) (json.RawMessage, error) {
	if d, ok := any(fields).(Defaulter); ok {
		d.ApplyDefaults()
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return data, nil
}
