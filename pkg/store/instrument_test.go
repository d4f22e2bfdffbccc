package store

import (
	"context"
	"errors"
	"testing"

	"github.com/caugraph/caugraph/pkg/observability"
)

type recordingStoreHooks struct {
	observability.NoopStoreHooks
	saves, loads, deletes int
	lastErr               error
}

func (h *recordingStoreHooks) OnSave(_ context.Context, _ string, err error) {
	h.saves++
	h.lastErr = err
}

func (h *recordingStoreHooks) OnLoad(_ context.Context, _ string, err error) {
	h.loads++
	h.lastErr = err
}

func (h *recordingStoreHooks) OnDelete(_ context.Context, _ string, err error) {
	h.deletes++
	h.lastErr = err
}

func TestInstrumentEmitsHooks(t *testing.T) {
	hooks := &recordingStoreHooks{}
	observability.SetStoreHooks(hooks)
	t.Cleanup(observability.Reset)

	ctx := context.Background()
	st := Instrument(NewMemoryStore())

	rec := NewRecord("g", chainDoc(t))
	if err := st.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if hooks.saves != 1 || hooks.lastErr != nil {
		t.Errorf("saves = %d, lastErr = %v", hooks.saves, hooks.lastErr)
	}

	if _, err := st.Get(ctx, rec.ID); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if hooks.loads != 1 {
		t.Errorf("loads = %d, want 1", hooks.loads)
	}

	if _, err := st.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}
	if hooks.loads != 2 || !errors.Is(hooks.lastErr, ErrNotFound) {
		t.Errorf("loads = %d, lastErr = %v", hooks.loads, hooks.lastErr)
	}

	if err := st.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if hooks.deletes != 1 {
		t.Errorf("deletes = %d, want 1", hooks.deletes)
	}
}

func TestInstrumentPassesSuite(t *testing.T) {
	runStoreSuite(t, Instrument(NewMemoryStore()))
}
