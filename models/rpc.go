package models

import "encoding/json"

// Argument and result payloads of the key-value operations exposed through
// the dispatch gateway. Values are arbitrary JSON documents.
type (
	OpenRequest  struct{}
	OpenResponse struct{}

	CloseRequest  struct{}
	CloseResponse struct{}

	HasRequest struct {
		Key string `json:"key"`
	}
	HasResponse struct {
		Has bool `json:"has"`
	}

	GetRequest struct {
		Key string `json:"key"`
	}
	GetResponse struct {
		Has   bool            `json:"has"`
		Value json.RawMessage `json:"value,omitempty"`
	}

	ScanRequest struct {
		Prefix string `json:"prefix"`
		Limit  int    `json:"limit"`
	}
	ScanResponse struct {
		Entries []KeyValue `json:"entries"`
	}

	PutRequest struct {
		Key   string          `json:"key"`
		Value json.RawMessage `json:"value"`
	}
	PutResponse struct{}

	DelRequest struct {
		Key string `json:"key"`
	}
	DelResponse struct {
		OK bool `json:"ok"`
	}
)

// KeyValue is a single stored entry.
type KeyValue struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}
