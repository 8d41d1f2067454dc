// Package docstore is the schema-less document store the admin API reads and writes through.
// Collections hold documents addressed by a string id; the id is the storage key and is also
// written into the document body as "id".
package docstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when the addressed document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrAlreadyExists is returned by Create when the id is taken.
	ErrAlreadyExists = errors.New("document already exists")
)

// Document is a stored record. DataTo decodes the body into a struct pointer or a
// *map[string]interface{}.
type Document interface {
	ID() string
	DataTo(v interface{}) error
}

// Store is implemented by the Mongo, Firestore and in-memory backends.
//
// Field maps passed to Merge, Update and UpdateMany use dotted paths ("workingHours.start").
// No method spans more than one document atomically: UpdateMany issues one round trip but a
// failure part way through leaves the documents already written as they are.
type Store interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	List(ctx context.Context, collection string) ([]Document, error)
	Create(ctx context.Context, collection, id string, doc interface{}) error
	// Set overwrites the whole document, creating it when missing.
	Set(ctx context.Context, collection, id string, doc interface{}) error
	// Merge writes the given fields, creating the document when missing.
	Merge(ctx context.Context, collection, id string, fields map[string]interface{}) error
	// Update writes the given fields of an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error
	UpdateMany(ctx context.Context, collection string, updates map[string]map[string]interface{}) error
	Delete(ctx context.Context, collection, id string) error
	// Exists reports whether the collection holds at least one document.
	Exists(ctx context.Context, collection string) (bool, error)
	// Watch signals on the returned channel after every change to the collection. The channel
	// is closed when ctx ends or the underlying stream fails.
	Watch(ctx context.Context, collection string) (<-chan struct{}, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// BoolField reads a boolean field, returning def when it is missing or not a boolean.
// Documents written by the booking widget often omit "active".
func BoolField(doc Document, field string, def bool) bool {
	var m map[string]interface{}
	if err := doc.DataTo(&m); err != nil {
		return def
	}
	if b, ok := m[field].(bool); ok {
		return b
	}
	return def
}

// notify performs a non-blocking send; a pending signal already covers the new change.
func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
