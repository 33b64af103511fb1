// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncSession holds the parameters of one sync attempt. It is owned by the
// caller and is never persisted.
type SyncSession struct {
	// DatabaseName selects the local replica the sync is performed for.
	// It is filled by the dispatcher, not decoded from the host payload.
	DatabaseName string `json:"-"`

	// DataLayerAuth authorizes the client view on the data layer. It is sent
	// as PullRequest.ClientViewAuth.
	DataLayerAuth string `json:"dataLayerAuth"`

	// DiffServerURL is the absolute URL pulls are POSTed to.
	DiffServerURL string `json:"diffServerURL"`

	// DiffServerAuth is sent verbatim in the Authorization header.
	DiffServerAuth string `json:"diffServerAuth"`
}

// BeginSyncResponse is returned by a successful begin-sync. It carries no
// data yet.
type BeginSyncResponse struct{}
