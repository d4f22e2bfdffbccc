package store

import (
	"context"

	"github.com/caugraph/caugraph/pkg/observability"
)

// instrumented wraps a store and reports operations to the store hooks.
type instrumented struct {
	inner Store
}

// Instrument wraps a store so that Save, Get, and Delete emit observability
// store hooks. List and Close pass through unobserved.
func Instrument(s Store) Store {
	return &instrumented{inner: s}
}

func (s *instrumented) Save(ctx context.Context, rec *Record) error {
	err := s.inner.Save(ctx, rec)
	observability.Store().OnSave(ctx, rec.ID, err)
	return err
}

func (s *instrumented) Get(ctx context.Context, id string) (*Record, error) {
	rec, err := s.inner.Get(ctx, id)
	observability.Store().OnLoad(ctx, id, err)
	return rec, err
}

func (s *instrumented) List(ctx context.Context) ([]*Record, error) {
	return s.inner.List(ctx)
}

func (s *instrumented) Delete(ctx context.Context, id string) error {
	err := s.inner.Delete(ctx, id)
	observability.Store().OnDelete(ctx, id, err)
	return err
}

func (s *instrumented) Close(ctx context.Context) error {
	return s.inner.Close(ctx)
}

var _ Store = (*instrumented)(nil)
