//go:build !(js && wasm)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-diff-sync/internal/logger"
	"github.com/MKhiriev/go-diff-sync/internal/utils"
	"github.com/MKhiriev/go-diff-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransport(t *testing.T, client *utils.HTTPClient) Transport {
	t.Helper()
	return NewTransport(client, logger.Nop())
}

func TestNativeTransport_ForwardsRequestUnchanged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/pull", r.URL.Path)
		assert.Equal(t, "a=1&b=2", r.URL.RawQuery)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		assert.Equal(t, "sync-1", r.Header.Get("X-Replicache-SyncID"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, `{"clientID":"c"}`, string(body))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"stateID":"s"}`))
	}))
	defer srv.Close()

	header := http.Header{}
	header.Set("Content-type", "application/json")
	header.Set("Authorization", "secret")
	header.Set("X-Replicache-SyncID", "sync-1")

	tr := newTestTransport(t, utils.NewHTTPClient(5*time.Second))
	resp, err := tr.Perform(context.Background(), models.RequestEnvelope{
		Method: http.MethodPost,
		URL:    srv.URL + "/pull?a=1&b=2",
		Header: header,
		Body:   `{"clientID":"c"}`,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"stateID":"s"}`, resp.Body)
}

func TestNativeTransport_NonOKIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("try later"))
	}))
	defer srv.Close()

	tr := newTestTransport(t, utils.NewHTTPClient(5*time.Second))
	resp, err := tr.Perform(context.Background(), models.RequestEnvelope{Method: http.MethodPost, URL: srv.URL})

	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "try later", resp.Body)
}

func TestNativeTransport_NoClient(t *testing.T) {
	for name, client := range map[string]*utils.HTTPClient{
		"nil client":       nil,
		"nil resty client": {},
	} {
		t.Run(name, func(t *testing.T) {
			tr := newTestTransport(t, client)
			_, err := tr.Perform(context.Background(), models.RequestEnvelope{Method: http.MethodPost, URL: "http://127.0.0.1:1"})

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNoHTTPClient)
		})
	}
}

func TestNativeTransport_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	tr := newTestTransport(t, utils.NewHTTPClient(time.Second))
	_, err := tr.Perform(context.Background(), models.RequestEnvelope{Method: http.MethodPost, URL: url})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetch)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.NotEmpty(t, fetchErr.Cause)
}

func TestNativeTransport_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	tr := newTestTransport(t, utils.NewHTTPClient(50*time.Millisecond))
	_, err := tr.Perform(context.Background(), models.RequestEnvelope{Method: http.MethodPost, URL: srv.URL})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestNativeTransport_AbandonedRequestDoesNotBreakClient(t *testing.T) {
	slow := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			select {
			case <-slow:
			case <-r.Context().Done():
			}
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()
	defer close(slow)

	client := utils.NewHTTPClient(5 * time.Second)
	tr := newTestTransport(t, client)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := tr.Perform(ctx, models.RequestEnvelope{Method: http.MethodPost, URL: srv.URL + "/slow"})
		done <- err
	}()
	cancel()
	assert.ErrorIs(t, <-done, ErrFetch)

	resp, err := tr.Perform(context.Background(), models.RequestEnvelope{Method: http.MethodPost, URL: srv.URL + "/fast"})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Body)
}

func TestNativeTransport_ConcurrentUse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	tr := newTestTransport(t, utils.NewHTTPClient(5*time.Second))

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := string(rune('a' + i))
			resp, err := tr.Perform(context.Background(), models.RequestEnvelope{Method: http.MethodPost, URL: srv.URL, Body: body})
			if err != nil {
				errs <- err
				return
			}
			if resp.Body != body {
				errs <- assert.AnError
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent perform: %v", err)
	}
}
