//go:build !(js && wasm)

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-diff-sync/internal/config"
	"github.com/MKhiriev/go-diff-sync/internal/logger"
	"github.com/MKhiriev/go-diff-sync/migrations"
	"github.com/MKhiriev/go-diff-sync/models"
)

const (
	kvTable   = "kv"
	metaTable = "meta"

	metaClientID    = "client_id"
	metaBaseStateID = "base_state_id"
)

type sqliteStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewSQLiteRegistry returns a [Registry] that keeps each replica in its own
// SQLite file named <dbName>.db under cfg.Dir.
func NewSQLiteRegistry(cfg config.ClientStorage, ids IDGenerator, logger *logger.Logger) (Registry, error) {
	logger.Info().Str("dir", cfg.Dir).Msg("creating sqlite registry...")

	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	return newRegistry(func(ctx context.Context, dbName string) (LocalStore, error) {
		return openSQLiteStore(ctx, filepath.Join(cfg.Dir, dbName+".db"), ids, logger)
	}, logger), nil
}

func openSQLiteStore(ctx context.Context, path string, ids IDGenerator, log *logger.Logger) (LocalStore, error) {
	conn, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		log.Err(err).Str("func", "openSQLiteStore").Msg("error opening database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		log.Err(err).Str("func", "openSQLiteStore").Msg("error connecting database (ping)")
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err = migrations.Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}

	s := newSQLiteStore(conn, log)
	if err = s.ensureClientID(ctx, ids.Generate()); err != nil {
		conn.Close()
		return nil, err
	}

	return s, nil
}

func newSQLiteStore(db *sql.DB, logger *logger.Logger) *sqliteStore {
	return &sqliteStore{db: db, logger: logger}
}

// ensureClientID stores clientID unless the replica already has one.
func (s *sqliteStore) ensureClientID(ctx context.Context, clientID string) error {
	query, args, err := sq.Insert(metaTable).
		Options("OR IGNORE").
		Columns("key", "value").
		Values(metaClientID, clientID).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: store client id: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteStore) Has(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.Get(ctx, key)
	return ok, err
}

func (s *sqliteStore) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	query, args, err := sq.Select("value").From(kvTable).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		s.logger.Err(err).Str("func", "sqliteStore.Get").Str("key", key).Msg("failed to read key")
		return nil, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return json.RawMessage(value), true, nil
}

func (s *sqliteStore) Put(ctx context.Context, key string, value json.RawMessage) error {
	if key == "" {
		return ErrEmptyKey
	}
	if !json.Valid(value) {
		return ErrInvalidValue
	}

	query, args, err := sq.Replace(kvTable).Columns("key", "value").Values(key, string(value)).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "sqliteStore.Put").Str("key", key).Msg("failed to write key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteStore) Del(ctx context.Context, key string) (bool, error) {
	query, args, err := sq.Delete(kvTable).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		s.logger.Err(err).Str("func", "sqliteStore.Del").Str("key", key).Msg("failed to delete key")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return n > 0, nil
}

// Scan reads keys >= prefix in key order and stops at the first key that no
// longer has the prefix. SQLite's default BINARY collation orders TEXT the
// same way Go orders strings.
func (s *sqliteStore) Scan(ctx context.Context, prefix string, limit int) ([]models.KeyValue, error) {
	query, args, err := sq.Select("key", "value").
		From(kvTable).
		Where(sq.GtOrEq{"key": prefix}).
		OrderBy("key").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Err(err).Str("func", "sqliteStore.Scan").Str("prefix", prefix).Msg("failed to scan keys")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.KeyValue, 0)
	for rows.Next() {
		var key, value string
		if err = rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if !strings.HasPrefix(key, prefix) {
			break
		}
		entries = append(entries, models.KeyValue{Key: key, Value: json.RawMessage(value)})
		if limit > 0 && len(entries) == limit {
			break
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

func (s *sqliteStore) CurrentStateDescriptor(ctx context.Context) (models.StateDescriptor, error) {
	meta, err := s.readMeta(ctx)
	if err != nil {
		return models.StateDescriptor{}, err
	}

	entries, err := s.Scan(ctx, "", 0)
	if err != nil {
		return models.StateDescriptor{}, err
	}

	return models.StateDescriptor{
		ClientID:    meta[metaClientID],
		BaseStateID: meta[metaBaseStateID],
		Checksum:    computeChecksum(entries),
	}, nil
}

func (s *sqliteStore) readMeta(ctx context.Context) (map[string]string, error) {
	query, args, err := sq.Select("key", "value").
		From(metaTable).
		Where(sq.Eq{"key": []string{metaClientID, metaBaseStateID}}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	meta := make(map[string]string, 2)
	for rows.Next() {
		var key, value string
		if err = rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		meta[key] = value
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return meta, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
