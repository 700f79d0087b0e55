package store

import (
	"context"
	"errors"

	"gopkg.in/mgo.v2/bson"
)

// ErrNotFound is returned when no document matches the given id.
var ErrNotFound = errors.New("document has not been found by given criteria")

// ErrDuplicate is returned when inserting a document whose id already exists.
var ErrDuplicate = errors.New("document with the same id already exists")

// Store gives access to named collections of schemaless documents.
type Store interface {
	C(name string) Collection
	Close()
}

// Collection is the set of operations the board packages perform on documents.
// Documents are bson-tagged structs carrying their own "_id" string.
type Collection interface {
	FindId(ctx context.Context, id string, out interface{}) error
	Find(ctx context.Context, q Query, out interface{}) error
	Count(ctx context.Context, q Query) (int, error)
	Insert(ctx context.Context, doc interface{}) error
	Put(ctx context.Context, id string, doc interface{}) error
	Update(ctx context.Context, id string, u Update) error
	UpdateAll(ctx context.Context, q Query, u Update) (int, error)
	RemoveId(ctx context.Context, id string) error
	RemoveAll(ctx context.Context, q Query) (int, error)
}

// Update holds field assignments and numeric increments applied together.
type Update struct {
	Set bson.M
	Inc bson.M
}

// Set builds an update assigning a single field.
func Set(field string, value interface{}) Update {
	return Update{Set: bson.M{field: value}}
}

// Inc builds an update incrementing a single numeric field.
func Inc(field string, delta int) Update {
	return Update{Inc: bson.M{field: delta}}
}

func (u Update) bson() bson.M {
	m := bson.M{}
	if len(u.Set) > 0 {
		m["$set"] = u.Set
	}
	if len(u.Inc) > 0 {
		m["$inc"] = u.Inc
	}
	return m
}

// NewID mints a document id.
func NewID() string {
	return bson.NewObjectId().Hex()
}
