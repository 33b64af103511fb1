//go:build js && wasm

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command wasm exposes the dispatch gateway to JavaScript as a global
// dispatch(dbName, rpc, args) function returning a Promise.
package main

import (
	"context"
	"errors"
	"fmt"
	"syscall/js"
	"time"

	"github.com/MKhiriev/go-diff-sync/internal/client"
	"github.com/MKhiriev/go-diff-sync/internal/config"
	"github.com/MKhiriev/go-diff-sync/internal/gateway"
	"github.com/MKhiriev/go-diff-sync/internal/logger"
	"github.com/MKhiriev/go-diff-sync/internal/store"
	"github.com/MKhiriev/go-diff-sync/internal/utils"
)

const requestTimeout = 30 * time.Second

func main() {
	log := logger.NewLogger("diffsync-wasm")

	cfg := &config.ClientConfig{
		Adapter: config.ClientAdapter{RequestTimeout: requestTimeout},
	}
	stores := store.NewMemoryRegistry(utils.NewUUIDGenerator(), log)

	app, err := client.NewApp(cfg, stores, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	js.Global().Set("dispatch", js.FuncOf(func(_ js.Value, args []js.Value) any {
		return dispatch(app, args)
	}))

	log.Info().Msg("dispatch registered")
	select {}
}

// dispatch decodes the JS arguments synchronously and settles the returned
// Promise from a goroutine, since the transport blocks on fetch().
func dispatch(d gateway.Dispatcher, args []js.Value) js.Value {
	dbName, rpc, payload, argErr := decodeCall(args)

	executor := js.FuncOf(func(_ js.Value, p []js.Value) any {
		resolve, reject := p[0], p[1]
		if argErr != nil {
			reject.Invoke(toJSError(argErr))
			return nil
		}

		go func() {
			out, err := d.Dispatch(context.Background(), dbName, rpc, payload)
			if err != nil {
				reject.Invoke(toJSError(err))
				return
			}
			resolve.Invoke(js.Global().Get("JSON").Call("parse", string(out)))
		}()
		return nil
	})
	defer executor.Release()

	return js.Global().Get("Promise").New(executor)
}

func decodeCall(args []js.Value) (string, uint8, []byte, error) {
	if len(args) < 2 {
		return "", 0, nil, &gateway.HostError{
			Code:    gateway.CodeInvalidArgs,
			Message: "dispatch expects (dbName, rpc, args)",
		}
	}
	if args[0].Type() != js.TypeString {
		return "", 0, nil, &gateway.HostError{
			Code:    gateway.CodeInvalidArgs,
			Message: "dbName must be a string",
		}
	}

	if args[1].Type() != js.TypeNumber {
		return "", 0, nil, &gateway.HostError{
			Code:    gateway.CodeInvalidRPC,
			Message: fmt.Sprintf("%v: %s", gateway.ErrInvalidRPC, args[1].String()),
		}
	}
	rpc, err := gateway.SelectorFromNumber(args[1].Float())
	if err != nil {
		return "", 0, nil, &gateway.HostError{Code: gateway.CodeInvalidRPC, Message: err.Error()}
	}

	var payload []byte
	if len(args) > 2 && !args[2].IsUndefined() {
		payload = []byte(js.Global().Get("JSON").Call("stringify", args[2]).String())
	}

	return args[0].String(), rpc, payload, nil
}

func toJSError(err error) js.Value {
	var hostErr *gateway.HostError
	if !errors.As(err, &hostErr) {
		hostErr = &gateway.HostError{Code: gateway.CodeInternal, Message: err.Error()}
	}

	jsErr := js.Global().Get("Error").New(hostErr.Message)
	jsErr.Set("code", string(hostErr.Code))
	if hostErr.Status != 0 {
		jsErr.Set("status", hostErr.Status)
	}
	return jsErr
}
