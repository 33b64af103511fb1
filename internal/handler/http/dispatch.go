// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-diff-sync/internal/gateway"
	"github.com/MKhiriev/go-diff-sync/internal/logger"
	"github.com/MKhiriev/go-diff-sync/internal/utils"
)

// maxArgsSize caps the request body of one dispatch.
const maxArgsSize = 8 << 20

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	dbName := chi.URLParam(r, "db")
	op, err := gateway.LookupOperation(chi.URLParam(r, "rpc"))
	if err != nil {
		h.writeError(w, r, &gateway.HostError{Code: gateway.CodeInvalidRPC, Message: err.Error()})
		return
	}

	args, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxArgsSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		log.Err(err).Str("func", "*Handler.dispatch").Msg("failed to read request body")
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	result, err := h.dispatcher.Dispatch(r.Context(), dbName, uint8(op), args)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Debug().Str("db", dbName).Stringer("op", op).Msg("dispatch succeeded")
	if _, err = utils.WriteRawJSON(w, result, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.dispatch").Msg("failed to write response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var hostErr *gateway.HostError
	if !errors.As(err, &hostErr) {
		hostErr = &gateway.HostError{Code: gateway.CodeInternal, Message: err.Error()}
	}

	logger.FromRequest(r).Warn().
		Str("code", string(hostErr.Code)).
		Str("message", hostErr.Message).
		Msg("dispatch failed")

	if _, werr := utils.WriteJSON(w, hostErr, statusFromCode(hostErr.Code)); werr != nil {
		logger.FromRequest(r).Err(werr).Str("func", "*Handler.writeError").Msg("failed to write error response")
	}
}
