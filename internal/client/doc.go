// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync client runtime.
//
// It wires the local store registry, the pull transport, the client
// services and the dispatch gateway into one [App] that the command line,
// the network hosts and the wasm host all drive.
package client
