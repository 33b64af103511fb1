//go:build !(js && wasm)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-diff-sync/internal/config"
	"github.com/MKhiriev/go-diff-sync/internal/logger"
	"github.com/MKhiriev/go-diff-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockSQLiteStore(t *testing.T) (*sqliteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return newSQLiteStore(db, logger.Nop()), mock
}

// ── Get / Has ────────────────────────────────────────────────────────────────

func TestSQLiteStore_Get_Found(t *testing.T) {
	s, mock := newMockSQLiteStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv WHERE key = ?")).
		WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"a":1}`))

	v, ok, err := s.Get(context.Background(), "k")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(v))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_Has_Missing(t *testing.T) {
	s, mock := newMockSQLiteStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv WHERE key = ?")).
		WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	ok, err := s.Has(context.Background(), "k")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_Get_QueryError(t *testing.T) {
	s, mock := newMockSQLiteStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv WHERE key = ?")).
		WithArgs("k").
		WillReturnError(errors.New("disk I/O error"))

	_, _, err := s.Get(context.Background(), "k")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

// ── Put / Del ────────────────────────────────────────────────────────────────

func TestSQLiteStore_Put(t *testing.T) {
	s, mock := newMockSQLiteStore(t)

	mock.ExpectExec(regexp.QuoteMeta("REPLACE INTO kv (key,value) VALUES (?,?)")).
		WithArgs("k", `[1,2]`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.Put(context.Background(), "k", json.RawMessage(`[1,2]`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_Put_Validation(t *testing.T) {
	s, mock := newMockSQLiteStore(t)

	assert.ErrorIs(t, s.Put(context.Background(), "", json.RawMessage(`1`)), ErrEmptyKey)
	assert.ErrorIs(t, s.Put(context.Background(), "k", json.RawMessage(`nope`)), ErrInvalidValue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_Put_ExecError(t *testing.T) {
	s, mock := newMockSQLiteStore(t)

	mock.ExpectExec(regexp.QuoteMeta("REPLACE INTO kv")).
		WillReturnError(errors.New("database is locked"))

	err := s.Put(context.Background(), "k", json.RawMessage(`1`))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestSQLiteStore_Del(t *testing.T) {
	s, mock := newMockSQLiteStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv WHERE key = ?")).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv WHERE key = ?")).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 0))

	existed, err := s.Del(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = s.Del(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, existed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── Scan / state ─────────────────────────────────────────────────────────────

func TestSQLiteStore_Scan_StopsAtPrefixEnd(t *testing.T) {
	s, mock := newMockSQLiteStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT key, value FROM kv WHERE key >= ? ORDER BY key")).
		WithArgs("user/").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("user/1", `1`).
			AddRow("user/2", `2`).
			AddRow("users", `3`).
			AddRow("zzz", `4`))

	entries, err := s.Scan(context.Background(), "user/", 0)

	require.NoError(t, err)
	assert.Equal(t, []string{"user/1", "user/2"}, keysOf(entries))
}

func TestSQLiteStore_Scan_Limit(t *testing.T) {
	s, mock := newMockSQLiteStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT key, value FROM kv WHERE key >= ? ORDER BY key")).
		WithArgs("").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("a", `1`).
			AddRow("b", `2`).
			AddRow("c", `3`))

	entries, err := s.Scan(context.Background(), "", 2)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keysOf(entries))
}

func TestSQLiteStore_CurrentStateDescriptor(t *testing.T) {
	s, mock := newMockSQLiteStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT key, value FROM meta WHERE key IN (?,?)")).
		WithArgs(metaClientID, metaBaseStateID).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow(metaClientID, "client-7").
			AddRow(metaBaseStateID, "state-3"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT key, value FROM kv WHERE key >= ? ORDER BY key")).
		WithArgs("").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).AddRow("a", `1`))

	d, err := s.CurrentStateDescriptor(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "client-7", d.ClientID)
	assert.Equal(t, "state-3", d.BaseStateID)
	assert.Equal(t, computeChecksum(mustEntries(`a`, `1`)), d.Checksum)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_EnsureClientID(t *testing.T) {
	s, mock := newMockSQLiteStore(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT OR IGNORE INTO meta (key,value) VALUES (?,?)")).
		WithArgs(metaClientID, "client-1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.ensureClientID(context.Background(), "client-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── real sqlite ──────────────────────────────────────────────────────────────

func TestSQLiteRegistry_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	ids := &seqIDs{}

	r, err := NewSQLiteRegistry(config.ClientStorage{Dir: dir}, ids, logger.Nop())
	require.NoError(t, err)

	if err = r.Open(ctx, "todo"); err != nil && strings.Contains(err.Error(), "CGO_ENABLED=0") {
		t.Skip("sqlite3 driver needs cgo")
	}
	require.NoError(t, err)

	s, err := r.Get("todo")
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "k1", json.RawMessage(`{"title":"milk"}`)))
	before, err := r.CurrentStateDescriptor(ctx, "todo")
	require.NoError(t, err)
	require.NoError(t, r.Close(ctx, "todo"))

	require.NoError(t, r.Open(ctx, "todo"))
	defer r.CloseAll()

	after, err := r.CurrentStateDescriptor(ctx, "todo")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, "client-1", after.ClientID)

	s, err = r.Get("todo")
	require.NoError(t, err)
	v, ok, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"title":"milk"}`, string(v))
}

func mustEntries(kv ...string) []models.KeyValue {
	entries := make([]models.KeyValue, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		entries = append(entries, models.KeyValue{Key: kv[i], Value: json.RawMessage(kv[i+1])})
	}
	return entries
}
