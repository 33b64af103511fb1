//go:build js && wasm

package adapter

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-diff-sync/internal/logger"
	"github.com/MKhiriev/go-diff-sync/internal/utils"
	"github.com/MKhiriev/go-diff-sync/models"
)

// fetchTransport goes through net/http's js/wasm RoundTripper, which is a
// bridge to the browser's fetch(). The sandbox owns pooling.
type fetchTransport struct {
	roundTripper http.RoundTripper
	logger       *logger.Logger
}

// NewTransport returns the browser fetch [Transport]. The client argument is
// ignored: the sandboxed host provides the network primitive.
func NewTransport(_ *utils.HTTPClient, logger *logger.Logger) Transport {
	return &fetchTransport{roundTripper: http.DefaultTransport, logger: logger}
}

// Perform implements [Transport].
func (f *fetchTransport) Perform(ctx context.Context, req models.RequestEnvelope) (models.ResponseEnvelope, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, strings.NewReader(req.Body))
	if err != nil {
		return models.ResponseEnvelope{}, newFetchError(err)
	}
	httpReq.Header = req.Header.Clone()

	resp, err := f.roundTripper.RoundTrip(httpReq)
	if err != nil {
		f.logger.Err(err).Str("func", "fetchTransport.Perform").Str("url", req.URL).Str("sync_id", utils.SyncIDFromContext(ctx)).Msg("fetch failed")
		return models.ResponseEnvelope{}, newFetchError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ResponseEnvelope{}, newFetchError(err)
	}

	return models.ResponseEnvelope{StatusCode: resp.StatusCode, Body: string(body)}, nil
}
