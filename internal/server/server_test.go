package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-diff-sync/internal/config"
	"github.com/MKhiriev/go-diff-sync/internal/gateway"
	"github.com/MKhiriev/go-diff-sync/internal/handler"
	myGRPC "github.com/MKhiriev/go-diff-sync/internal/handler/grpc"
	"github.com/MKhiriev/go-diff-sync/internal/logger"
	"github.com/MKhiriev/go-diff-sync/internal/store"
	"github.com/MKhiriev/go-diff-sync/internal/utils"
	"github.com/MKhiriev/go-diff-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func newTestServer(t *testing.T, cfg config.ClientServer) *server {
	t.Helper()

	stores := store.NewMemoryRegistry(utils.NewUUIDGenerator(), logger.Nop())
	g := gateway.New(stores, nil, logger.Nop())

	handlers, err := handler.NewHandlers(g, models.AppBuildInfo{}, cfg, logger.Nop())
	require.NoError(t, err)

	srv, err := NewServer(handlers, cfg, logger.Nop())
	require.NoError(t, err)

	return srv.(*server)
}

func waitReady(t *testing.T, s *server) {
	t.Helper()
	select {
	case <-s.ready:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start listening")
	}
}

func TestNewServer_NoServers(t *testing.T) {
	srv, err := NewServer(&handler.Handlers{}, config.ClientServer{HTTPAddress: "127.0.0.1:0"}, logger.Nop())

	assert.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, srv)
}

func TestRunServer_ServesBothHostsAndStopsOnCancel(t *testing.T) {
	s := newTestServer(t, config.ClientServer{
		HTTPAddress: "127.0.0.1:0",
		GRPCAddress: "127.0.0.1:0",
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.RunServer(ctx) }()
	waitReady(t, s)

	// HTTP host
	httpURL := "http://" + s.httpServer.listener.Addr().String()
	resp, err := http.Post(httpURL+"/api/dispatch/todo/open", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{}`, string(body))

	// gRPC host shares the same gateway, so the database is already open
	conn, err := grpc.NewClient(s.gRPCServer.listener.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	out, err := myGRPC.NewGatewayClient(conn).Dispatch(ctx, &myGRPC.DispatchRequest{
		DB:   "todo",
		RPC:  uint8(gateway.OpHas),
		Args: json.RawMessage(`{"key":"k"}`),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"has":false}`, string(out.Result))

	cancel()
	select {
	case err = <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunServer_ListenError(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	s := newTestServer(t, config.ClientServer{HTTPAddress: busy.Addr().String()})

	err = s.RunServer(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http listen")
}

func TestShutdown_Idempotent(t *testing.T) {
	s := newTestServer(t, config.ClientServer{HTTPAddress: "127.0.0.1:0"})

	assert.NotPanics(t, func() {
		s.Shutdown()
		s.Shutdown()
	})
}
