package entry

import (
	"context"
	"encoding/json"
)

// MaxList caps how many entries a single list call returns.
const MaxList = 1000

// Filter scopes a store call. UserID is always applied; ID narrows the call
// to a single entry when set.
type Filter struct {
	ID     string
	UserID string
}

// Record is an entry as the store sees it: id, owner and the variant fields
// as raw JSON.
type Record struct {
	ID     string
	UserID string
	Data   json.RawMessage
}

// Store is the document repository every collection is kept in. Each call is
// a single round trip; UpdateOne and DeleteOne report whether a document
// matched.
type Store interface {
	Find(ctx context.Context, collection string, filter Filter, limit int) ([]Record, error)
	InsertOne(ctx context.Context, collection string, rec Record) error
	UpdateOne(ctx context.Context, collection string, filter Filter, data json.RawMessage) (bool, error)
	DeleteOne(ctx context.Context, collection string, filter Filter) (bool, error)
}
