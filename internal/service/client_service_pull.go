package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-diff-sync/internal/adapter"
	"github.com/MKhiriev/go-diff-sync/internal/logger"
	"github.com/MKhiriev/go-diff-sync/internal/utils"
	"github.com/MKhiriev/go-diff-sync/models"
	"golang.org/x/net/http/httpguts"
)

// HeaderSyncID carries the identifier of one sync attempt.
const HeaderSyncID = "X-Replicache-SyncID"

type pullService struct {
	transport adapter.Transport
	states    StateProvider
	ids       IDGenerator

	logger *logger.Logger
}

// NewPullService constructs a [PullService] that talks to the diff server
// through transport, reads the replica state from states and tags every pull
// with a fresh id from ids.
func NewPullService(transport adapter.Transport, states StateProvider, ids IDGenerator, logger *logger.Logger) PullService {
	return &pullService{
		transport: transport,
		states:    states,
		ids:       ids,
		logger:    logger,
	}
}

// Pull implements [PullService].
//
// The steps run strictly in order: build request, build envelope, perform,
// check status, decode body. Only a 200 body is ever decoded.
func (p *pullService) Pull(ctx context.Context, session models.SyncSession) (models.PullResponse, error) {
	log := p.logger.With().
		Str("func", "pullService.Pull").
		Str("db", session.DatabaseName).
		Logger()

	state, err := p.states.CurrentStateDescriptor(ctx, session.DatabaseName)
	if err != nil {
		log.Err(err).Msg("failed to read local state descriptor")
		return models.PullResponse{}, fmt.Errorf("%w: %w", ErrLocalState, err)
	}

	pullReq := models.PullRequest{
		ClientViewAuth: session.DataLayerAuth,
		ClientID:       state.ClientID,
		BaseStateID:    state.BaseStateID,
		Checksum:       state.Checksum,
	}

	syncID := p.ids.Generate()
	envelope, err := NewPullRequestEnvelope(pullReq, session.DiffServerURL, session.DiffServerAuth, syncID)
	if err != nil {
		log.Err(err).Msg("failed to build pull request")
		return models.PullResponse{}, err
	}

	log.Debug().
		Str("sync_id", syncID).
		Str("url", envelope.URL).
		Str("base_state_id", pullReq.BaseStateID).
		Msg("sending pull request")

	resp, err := p.transport.Perform(utils.WithSyncID(ctx, syncID), envelope)
	if err != nil {
		if errors.Is(err, adapter.ErrNoHTTPClient) {
			return models.PullResponse{}, ErrNoHTTPClient
		}
		log.Err(err).Str("sync_id", syncID).Msg("pull exchange failed")
		return models.PullResponse{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Warn().Str("sync_id", syncID).Int("status", resp.StatusCode).Msg("diff server rejected pull")
		return models.PullResponse{}, &FetchNotOKError{StatusCode: resp.StatusCode}
	}

	pullResp, err := decodePullResponse(resp.Body)
	if err != nil {
		log.Err(err).Str("sync_id", syncID).Msg("failed to decode pull response")
		return models.PullResponse{}, err
	}

	log.Debug().
		Str("sync_id", syncID).
		Str("state_id", pullResp.StateID).
		Str("last_mutation_id", pullResp.LastMutationID).
		Msg("pull completed")

	return pullResp, nil
}

// NewPullRequestEnvelope builds the POST sent to the diff server. It is pure:
// it fails only when the URL is not an absolute http(s) URL or a header
// value contains characters not allowed in HTTP field values.
func NewPullRequestEnvelope(pullReq models.PullRequest, diffServerURL, diffServerAuth, syncID string) (models.RequestEnvelope, error) {
	body, err := json.Marshal(pullReq)
	if err != nil {
		return models.RequestEnvelope{}, fmt.Errorf("%w: encode body: %w", ErrInvalidRequest, err)
	}

	if err = validateDiffServerURL(diffServerURL); err != nil {
		return models.RequestEnvelope{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	header := make(http.Header, 3)
	for _, h := range []struct{ name, value string }{
		{"Content-type", "application/json"},
		{"Authorization", diffServerAuth},
		{HeaderSyncID, syncID},
	} {
		if !httpguts.ValidHeaderFieldValue(h.value) {
			return models.RequestEnvelope{}, fmt.Errorf("%w: invalid value for header %s", ErrInvalidRequest, h.name)
		}
		header.Set(h.name, h.value)
	}

	return models.RequestEnvelope{
		Method: http.MethodPost,
		URL:    diffServerURL,
		Header: header,
		Body:   string(body),
	}, nil
}

func validateDiffServerURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse diff server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("diff server url must use http or https, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("diff server url must include host, got %q", raw)
	}

	return nil
}

// pullResponseWire mirrors [models.PullResponse] with pointer fields so that
// absent required keys can be told apart from empty strings.
type pullResponseWire struct {
	StateID        *string         `json:"stateID"`
	LastMutationID *string         `json:"lastMutationID"`
	Checksum       *string         `json:"checksum"`
	Patch          json.RawMessage `json:"patch"`
	ClientViewInfo json.RawMessage `json:"clientViewInfo"`
}

func decodePullResponse(body string) (models.PullResponse, error) {
	var wire pullResponseWire
	if err := json.Unmarshal([]byte(body), &wire); err != nil {
		return models.PullResponse{}, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	// only the exact key names count as present
	if err := utils.CheckExactKeys([]byte(body), wire); err != nil {
		return models.PullResponse{}, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	for _, f := range []struct {
		name  string
		value *string
	}{
		{"stateID", wire.StateID},
		{"lastMutationID", wire.LastMutationID},
		{"checksum", wire.Checksum},
	} {
		if f.value == nil {
			return models.PullResponse{}, fmt.Errorf("%w: missing field %q", ErrInvalidResponse, f.name)
		}
	}

	return models.PullResponse{
		StateID:        *wire.StateID,
		LastMutationID: *wire.LastMutationID,
		Checksum:       *wire.Checksum,
		Patch:          wire.Patch,
		ClientViewInfo: wire.ClientViewInfo,
	}, nil
}
