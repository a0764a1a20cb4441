package entry

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/danielgtaylor/huma/v2"
)

// Entry is a stored entry of shape T. On the wire the variant fields sit next
// to "_id" and "user_id" in a single flat object.
type Entry[T any] struct {
	ID     string
	UserID string
	Fields T
}

func (e Entry[T]) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(e.Fields)
	if err != nil {
		return nil, err
	}

	out := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("entry fields must encode as an object: %w", err)
	}

	id, _ := json.Marshal(e.ID)
	owner, _ := json.Marshal(e.UserID)
	out["_id"] = id
	out["user_id"] = owner

	return json.Marshal(out)
}

func (e *Entry[T]) UnmarshalJSON(data []byte) error {
	var keys struct {
		ID     string `json:"_id"`
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	var fields T
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	e.ID, e.UserID, e.Fields = keys.ID, keys.UserID, fields
	return nil
}

// Schema describes the flattened object in the OpenAPI document.
func (Entry[T]) Schema(r huma.Registry) *huma.Schema {
	var zero T
	base := r.Schema(reflect.TypeOf(zero), false, "")

	s := *base
	s.Properties = make(map[string]*huma.Schema, len(base.Properties)+2)
	for name, prop := range base.Properties {
		s.Properties[name] = prop
	}
	s.Properties["_id"] = &huma.Schema{Type: huma.TypeString, Description: "Entry ID"}
	s.Properties["user_id"] = &huma.Schema{Type: huma.TypeString, Description: "Owner ID"}
	s.Required = append([]string{"_id", "user_id"}, base.Required...)

	return &s
}

func decode[T any](rec Record) (Entry[T], error) {
	var fields T
	if err := json.Unmarshal(rec.Data, &fields); err != nil {
		return Entry[T]{}, fmt.Errorf("decode entry %s: %w", rec.ID, err)
	}
	return Entry[T]{ID: rec.ID, UserID: rec.UserID, Fields: fields}, nil
}
