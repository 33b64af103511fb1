// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package gateway is the single dispatch boundary hosts call into.
//
// A call names a database, an operation selector and a JSON argument
// document, and yields a JSON result document or a [*HostError]. The
// selector is resolved before anything else runs, so an unknown selector
// never touches a store or the network.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"

	"github.com/MKhiriev/go-diff-sync/internal/logger"
	"github.com/MKhiriev/go-diff-sync/internal/service"
	"github.com/MKhiriev/go-diff-sync/internal/store"
	"github.com/MKhiriev/go-diff-sync/internal/utils"
	"github.com/MKhiriev/go-diff-sync/models"
)

type handlerFunc func(ctx context.Context, dbName string, args []byte) (any, error)

// Gateway routes dispatch calls to the store registry and the sync service.
// It keeps no per-call state and is safe for concurrent use.
type Gateway struct {
	stores   store.Registry
	sync     service.SyncService
	handlers [operationCount]handlerFunc
	logger   *logger.Logger
}

// New returns a Gateway over stores and sync.
func New(stores store.Registry, sync service.SyncService, logger *logger.Logger) *Gateway {
	g := &Gateway{
		stores: stores,
		sync:   sync,
		logger: logger,
	}

	g.handlers = [operationCount]handlerFunc{
		OpOpen:      g.open,
		OpClose:     g.close,
		OpHas:       g.has,
		OpGet:       g.get,
		OpScan:      g.scan,
		OpPut:       g.put,
		OpDel:       g.del,
		OpBeginSync: g.beginSync,
	}

	return g
}

// Dispatch runs the operation selected by rpc against database dbName.
// Every returned error is a *HostError.
func (g *Gateway) Dispatch(ctx context.Context, dbName string, rpc uint8, args []byte) (result []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error().
				Str("func", "Gateway.Dispatch").
				Str("db", dbName).
				Uint8("rpc", rpc).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("recovered from panic")
			result, err = nil, &HostError{Code: CodeInternal, Message: fmt.Sprintf("panic: %v", r)}
		}
	}()

	op, err := ParseOperation(rpc)
	if err != nil {
		g.logger.Warn().Str("func", "Gateway.Dispatch").Str("db", dbName).Uint8("rpc", rpc).Msg("rejected selector")
		return nil, toHostError(err)
	}

	log := g.logger.With().Str("db", dbName).Stringer("op", op).Logger()
	log.Debug().Msg("dispatching")

	res, err := g.handlers[op](ctx, dbName, args)
	if err != nil {
		hostErr := toHostError(err)
		log.Err(err).Str("code", string(hostErr.Code)).Msg("dispatch failed")
		return nil, hostErr
	}

	out, err := json.Marshal(res)
	if err != nil {
		log.Err(err).Msg("failed to encode result")
		return nil, &HostError{Code: CodeInternal, Message: err.Error(), err: err}
	}

	return out, nil
}

func (g *Gateway) open(ctx context.Context, dbName string, args []byte) (any, error) {
	if _, err := decodeArgs[models.OpenRequest](args); err != nil {
		return nil, err
	}
	if err := g.stores.Open(ctx, dbName); err != nil {
		return nil, err
	}
	return models.OpenResponse{}, nil
}

func (g *Gateway) close(ctx context.Context, dbName string, args []byte) (any, error) {
	if _, err := decodeArgs[models.CloseRequest](args); err != nil {
		return nil, err
	}
	if err := g.stores.Close(ctx, dbName); err != nil {
		return nil, err
	}
	return models.CloseResponse{}, nil
}

func (g *Gateway) has(ctx context.Context, dbName string, args []byte) (any, error) {
	req, err := decodeArgs[models.HasRequest](args)
	if err != nil {
		return nil, err
	}
	s, err := g.stores.Get(dbName)
	if err != nil {
		return nil, err
	}

	ok, err := s.Has(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	return models.HasResponse{Has: ok}, nil
}

func (g *Gateway) get(ctx context.Context, dbName string, args []byte) (any, error) {
	req, err := decodeArgs[models.GetRequest](args)
	if err != nil {
		return nil, err
	}
	s, err := g.stores.Get(dbName)
	if err != nil {
		return nil, err
	}

	value, ok, err := s.Get(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	return models.GetResponse{Has: ok, Value: value}, nil
}

func (g *Gateway) scan(ctx context.Context, dbName string, args []byte) (any, error) {
	req, err := decodeArgs[models.ScanRequest](args)
	if err != nil {
		return nil, err
	}
	if req.Limit < 0 {
		return nil, fmt.Errorf("%w: negative limit %d", ErrInvalidArgs, req.Limit)
	}
	s, err := g.stores.Get(dbName)
	if err != nil {
		return nil, err
	}

	entries, err := s.Scan(ctx, req.Prefix, req.Limit)
	if err != nil {
		return nil, err
	}
	return models.ScanResponse{Entries: entries}, nil
}

func (g *Gateway) put(ctx context.Context, dbName string, args []byte) (any, error) {
	req, err := decodeArgs[models.PutRequest](args)
	if err != nil {
		return nil, err
	}
	if len(req.Value) == 0 {
		return nil, fmt.Errorf("%w: value is required", ErrInvalidArgs)
	}
	s, err := g.stores.Get(dbName)
	if err != nil {
		return nil, err
	}

	if err = s.Put(ctx, req.Key, req.Value); err != nil {
		return nil, err
	}
	return models.PutResponse{}, nil
}

func (g *Gateway) del(ctx context.Context, dbName string, args []byte) (any, error) {
	req, err := decodeArgs[models.DelRequest](args)
	if err != nil {
		return nil, err
	}
	s, err := g.stores.Get(dbName)
	if err != nil {
		return nil, err
	}

	existed, err := s.Del(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	return models.DelResponse{OK: existed}, nil
}

func (g *Gateway) beginSync(ctx context.Context, dbName string, args []byte) (any, error) {
	session, err := decodeArgs[models.SyncSession](args)
	if err != nil {
		return nil, err
	}
	session.DatabaseName = dbName

	return g.sync.BeginSync(ctx, session)
}

// decodeArgs decodes a single JSON document into T, rejecting unknown
// fields, keys that match a field only in case, and trailing data. Empty args and null decode to the zero T.
func decodeArgs[T any](args []byte) (T, error) {
	var v T

	trimmed := bytes.TrimSpace(args)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return v, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("%w: %w", ErrInvalidArgs, err)
	}
	if dec.More() {
		return v, fmt.Errorf("%w: trailing data after arguments", ErrInvalidArgs)
	}
	if err := utils.CheckExactKeys(trimmed, v); err != nil {
		return v, fmt.Errorf("%w: %w", ErrInvalidArgs, err)
	}

	return v, nil
}
