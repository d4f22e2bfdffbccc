// Package store provides persistence for named graph documents.
//
// This package defines the Store interface with implementations for
// different backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI applications
//   - mongo: MongoDB-backed storage for server deployments
//
// # Usage
//
// Create a store and save a graph:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// CLI
//	st, err := store.NewFileStore("")  // Uses ~/.config/caugraph/graphs/
//
//	// Server
//	st, err := store.NewMongoStore(ctx, "mongodb://localhost:27017", "caugraph")
//
//	doc := graphio.FromDAG(g)
//	rec := store.NewRecord("smoking-study", doc)
//	if err := st.Save(ctx, rec); err != nil {
//	    return err
//	}
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/caugraph/caugraph/pkg/graphio"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Record is a stored graph document with identity and timestamps.
type Record struct {
	ID        string           `json:"id" bson:"_id"`
	Name      string           `json:"name" bson:"name"`
	Document  graphio.Document `json:"document" bson:"document"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" bson:"updated_at"`
}

// NewRecord creates a record with a fresh UUID and creation timestamp.
func NewRecord(name string, doc graphio.Document) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:        uuid.NewString(),
		Name:      name,
		Document:  doc,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Store is the interface for graph document storage backends.
type Store interface {
	// Save stores a record, overwriting any existing record with the same ID.
	// A record with an empty ID is assigned a fresh UUID.
	Save(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID.
	// Returns ErrNotFound if no record with that ID exists.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns all records sorted by name.
	List(ctx context.Context) ([]*Record, error)

	// Delete removes a record.
	// Returns ErrNotFound if no record with that ID exists.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// prepare assigns identity and bumps the update timestamp before a save.
func prepare(rec *Record) {
	now := time.Now().UTC()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
}
