//go:build !(js && wasm)

package adapter

import (
	"context"

	"github.com/MKhiriev/go-diff-sync/internal/logger"
	"github.com/MKhiriev/go-diff-sync/internal/utils"
	"github.com/MKhiriev/go-diff-sync/models"
)

type nativeTransport struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewTransport returns the native [Transport]. The client is shared by all
// pulls and owned by the caller; connection pooling is its own concern.
// A nil client is accepted here and reported as [ErrNoHTTPClient] on every
// call to Perform.
func NewTransport(client *utils.HTTPClient, logger *logger.Logger) Transport {
	return &nativeTransport{client: client, logger: logger}
}

// Perform implements [Transport] using the resty client.
func (n *nativeTransport) Perform(ctx context.Context, req models.RequestEnvelope) (models.ResponseEnvelope, error) {
	if n.client == nil || n.client.Client == nil {
		return models.ResponseEnvelope{}, ErrNoHTTPClient
	}

	r := n.client.R().
		SetContext(ctx).
		SetBody(req.Body)
	for name, values := range req.Header {
		for _, v := range values {
			r.Header.Add(name, v)
		}
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		n.logger.Err(err).
			Str("func", "nativeTransport.Perform").
			Str("url", req.URL).
			Str("sync_id", utils.SyncIDFromContext(ctx)).
			Msg("http exchange failed")
		return models.ResponseEnvelope{}, newFetchError(err)
	}

	return models.ResponseEnvelope{
		StatusCode: resp.StatusCode(),
		Body:       resp.String(),
	}, nil
}
