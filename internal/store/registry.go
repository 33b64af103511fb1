package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-diff-sync/internal/logger"
	"github.com/MKhiriev/go-diff-sync/models"
	"golang.org/x/sync/singleflight"
)

// opener creates a replica for a validated database name.
type opener func(ctx context.Context, dbName string) (LocalStore, error)

type registry struct {
	open opener
	// opening collapses concurrent opens of the same name into one opener
	// call; the opener runs outside mu.
	opening singleflight.Group

	mu     sync.RWMutex
	stores map[string]LocalStore

	logger *logger.Logger
}

func newRegistry(open opener, logger *logger.Logger) *registry {
	return &registry{
		open:   open,
		stores: make(map[string]LocalStore),
		logger: logger,
	}
}

// NewMemoryRegistry returns a [Registry] of in-memory replicas. Content is
// lost when a replica is closed.
func NewMemoryRegistry(ids IDGenerator, logger *logger.Logger) Registry {
	return newRegistry(func(_ context.Context, _ string) (LocalStore, error) {
		return newMemoryStore(ids.Generate()), nil
	}, logger)
}

// Open implements [Registry].
func (r *registry) Open(ctx context.Context, dbName string) error {
	if err := validateDatabaseName(dbName); err != nil {
		return err
	}

	_, err, _ := r.opening.Do(dbName, func() (any, error) {
		if r.isOpen(dbName) {
			return nil, nil
		}

		s, err := r.open(ctx, dbName)
		if err != nil {
			r.logger.Err(err).Str("func", "registry.Open").Str("db", dbName).Msg("failed to open replica")
			return nil, fmt.Errorf("open database %q: %w", dbName, err)
		}

		r.mu.Lock()
		r.stores[dbName] = s
		r.mu.Unlock()
		r.logger.Debug().Str("db", dbName).Msg("replica opened")

		return nil, nil
	})

	return err
}

func (r *registry) isOpen(dbName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.stores[dbName]
	return ok
}

// Close implements [Registry].
func (r *registry) Close(_ context.Context, dbName string) error {
	r.mu.Lock()
	s, ok := r.stores[dbName]
	delete(r.stores, dbName)
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrDatabaseNotOpen, dbName)
	}
	if err := s.Close(); err != nil {
		return fmt.Errorf("close database %q: %w", dbName, err)
	}
	r.logger.Debug().Str("db", dbName).Msg("replica closed")

	return nil
}

// Get implements [Registry].
func (r *registry) Get(dbName string) (LocalStore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.stores[dbName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDatabaseNotOpen, dbName)
	}

	return s, nil
}

// CurrentStateDescriptor implements [Registry].
func (r *registry) CurrentStateDescriptor(ctx context.Context, dbName string) (models.StateDescriptor, error) {
	s, err := r.Get(dbName)
	if err != nil {
		return models.StateDescriptor{}, err
	}

	return s.CurrentStateDescriptor(ctx)
}

// CloseAll implements [Registry].
func (r *registry) CloseAll() error {
	r.mu.Lock()
	stores := r.stores
	r.stores = make(map[string]LocalStore)
	r.mu.Unlock()

	var errs []error
	for name, s := range stores {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database %q: %w", name, err))
		}
	}

	return errors.Join(errs...)
}
