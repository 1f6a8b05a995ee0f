package store

import (
	"context"
	"time"

	"github.com/matzehuels/isostack/pkg/observability"
)

// Observed wraps s so every call is reported to observability.Store().
func Observed(s Store, backend string) Store {
	return &observedStore{inner: s, backend: backend}
}

type observedStore struct {
	inner   Store
	backend string
}

func (o *observedStore) report(ctx context.Context, op string, start time.Time, err error) {
	observability.Store().OnStoreOp(ctx, o.backend, op, time.Since(start), err)
}

func (o *observedStore) Save(ctx context.Context, key, text string) error {
	start := time.Now()
	err := o.inner.Save(ctx, key, text)
	o.report(ctx, "save", start, err)
	return err
}

func (o *observedStore) Load(ctx context.Context, key string) (string, error) {
	start := time.Now()
	text, err := o.inner.Load(ctx, key)
	o.report(ctx, "load", start, err)
	return text, err
}

func (o *observedStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := o.inner.Delete(ctx, key)
	o.report(ctx, "delete", start, err)
	return err
}

func (o *observedStore) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	keys, err := o.inner.List(ctx)
	o.report(ctx, "list", start, err)
	return keys, err
}

func (o *observedStore) Close() error {
	return o.inner.Close()
}
