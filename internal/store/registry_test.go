// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-diff-sync/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seqIDs struct {
	n atomic.Int64
}

func (s *seqIDs) Generate() string {
	return fmt.Sprintf("client-%d", s.n.Add(1))
}

func TestRegistry_OpenGetClose(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRegistry(&seqIDs{}, logger.Nop())

	_, err := r.Get("db1")
	assert.ErrorIs(t, err, ErrDatabaseNotOpen)

	require.NoError(t, r.Open(ctx, "db1"))
	first, err := r.Get("db1")
	require.NoError(t, err)

	// second open keeps the existing replica
	require.NoError(t, r.Open(ctx, "db1"))
	second, err := r.Get("db1")
	require.NoError(t, err)
	assert.Same(t, first, second)

	require.NoError(t, r.Close(ctx, "db1"))
	_, err = r.Get("db1")
	assert.ErrorIs(t, err, ErrDatabaseNotOpen)
	assert.ErrorIs(t, r.Close(ctx, "db1"), ErrDatabaseNotOpen)
}

func TestRegistry_InvalidNames(t *testing.T) {
	r := NewMemoryRegistry(&seqIDs{}, logger.Nop())

	for _, name := range []string{"", "  ", ".", "..", "a/b", `a\b`, "../etc", "a\x00b"} {
		assert.ErrorIs(t, r.Open(context.Background(), name), ErrInvalidDatabaseName, "name %q", name)
	}
}

func TestRegistry_CurrentStateDescriptor(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRegistry(&seqIDs{}, logger.Nop())

	_, err := r.CurrentStateDescriptor(ctx, "db1")
	assert.ErrorIs(t, err, ErrDatabaseNotOpen)

	require.NoError(t, r.Open(ctx, "db1"))
	require.NoError(t, r.Open(ctx, "db2"))

	s1, err := r.Get("db1")
	require.NoError(t, err)
	require.NoError(t, s1.Put(ctx, "k", json.RawMessage(`1`)))

	d1, err := r.CurrentStateDescriptor(ctx, "db1")
	require.NoError(t, err)
	d2, err := r.CurrentStateDescriptor(ctx, "db2")
	require.NoError(t, err)

	assert.NotEqual(t, d1.ClientID, d2.ClientID)
	assert.NotEqual(t, d1.Checksum, d2.Checksum)
}

func TestRegistry_CloseAll(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRegistry(&seqIDs{}, logger.Nop())
	require.NoError(t, r.Open(ctx, "db1"))
	require.NoError(t, r.Open(ctx, "db2"))

	require.NoError(t, r.CloseAll())

	_, err := r.Get("db1")
	assert.ErrorIs(t, err, ErrDatabaseNotOpen)
	_, err = r.Get("db2")
	assert.ErrorIs(t, err, ErrDatabaseNotOpen)
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRegistry(&seqIDs{}, logger.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("db%d", i%3)
			assert.NoError(t, r.Open(ctx, name))
			s, err := r.Get(name)
			if assert.NoError(t, err) {
				assert.NoError(t, s.Put(ctx, fmt.Sprintf("k%d", i), json.RawMessage(`1`)))
			}
		}(i)
	}
	wg.Wait()

	total := 0
	for i := 0; i < 3; i++ {
		s, err := r.Get(fmt.Sprintf("db%d", i))
		require.NoError(t, err)
		entries, err := s.Scan(ctx, "", 0)
		require.NoError(t, err)
		total += len(entries)
	}
	assert.Equal(t, 10, total)
}

// gatedOpener opens memory replicas; names in gated block until release is
// closed.
type gatedOpener struct {
	gated   map[string]bool
	release chan struct{}
	started chan string
	calls   atomic.Int32
}

func (g *gatedOpener) open(_ context.Context, dbName string) (LocalStore, error) {
	g.calls.Add(1)
	if g.gated[dbName] {
		g.started <- dbName
		<-g.release
	}
	return newMemoryStore("client-" + dbName), nil
}

func TestRegistry_SlowOpenDoesNotBlockOtherDatabases(t *testing.T) {
	ctx := context.Background()
	g := &gatedOpener{
		gated:   map[string]bool{"slow": true},
		release: make(chan struct{}),
		started: make(chan string, 1),
	}
	r := newRegistry(g.open, logger.Nop())
	require.NoError(t, r.Open(ctx, "fast"))

	openDone := make(chan error, 1)
	go func() { openDone <- r.Open(ctx, "slow") }()
	<-g.started

	descDone := make(chan error, 1)
	go func() {
		_, err := r.CurrentStateDescriptor(ctx, "fast")
		descDone <- err
	}()

	select {
	case err := <-descDone:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("CurrentStateDescriptor blocked behind an unrelated Open")
	}

	close(g.release)
	require.NoError(t, <-openDone)
	_, err := r.Get("slow")
	assert.NoError(t, err)
}

func TestRegistry_ConcurrentOpenOfSameNameOpensOnce(t *testing.T) {
	ctx := context.Background()
	g := &gatedOpener{
		gated:   map[string]bool{"db": true},
		release: make(chan struct{}),
		started: make(chan string, 1),
	}
	r := newRegistry(g.open, logger.Nop())

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- r.Open(ctx, "db")
		}()
	}

	<-g.started
	close(g.release)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	// callers arriving after the first open finished find it in the map
	assert.Equal(t, int32(1), g.calls.Load())
}
