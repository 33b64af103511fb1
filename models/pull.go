// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// PullRequest is the body of a pull sent to the diff server. It describes
// the state the client currently believes it has, plus the credential the
// data layer needs to authorize a client view.
//
// All four fields are always serialized; an empty string is a valid value.
type PullRequest struct {
	// ClientViewAuth is forwarded by the diff server to the data layer.
	ClientViewAuth string `json:"clientViewAuth"`

	// ClientID identifies the local replica.
	ClientID string `json:"clientID"`

	// BaseStateID is the state the client last synchronized to.
	BaseStateID string `json:"baseStateID"`

	// Checksum fingerprints the local state at BaseStateID.
	Checksum string `json:"checksum"`
}

// PullResponse describes the authoritative state returned by the diff
// server on a successful pull.
type PullResponse struct {
	StateID        string `json:"stateID"`
	LastMutationID string `json:"lastMutationID"`
	Checksum       string `json:"checksum"`

	// Patch is reserved. It is kept verbatim and not applied yet.
	Patch json.RawMessage `json:"patch,omitempty"`

	// ClientViewInfo is reserved and kept verbatim.
	ClientViewInfo json.RawMessage `json:"clientViewInfo,omitempty"`
}

// StateDescriptor is what the local store reports about its current state
// before a pull is issued.
type StateDescriptor struct {
	ClientID    string `json:"clientID"`
	BaseStateID string `json:"baseStateID"`
	Checksum    string `json:"checksum"`
}
