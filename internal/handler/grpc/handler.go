package grpc

import (
	"context"
	"encoding/json"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-diff-sync/internal/gateway"
	"github.com/MKhiriev/go-diff-sync/internal/logger"
)

// Handler is the root gRPC transport handler. It serves
// diffsync.v1.Gateway by delegating every call to the dispatcher.
type Handler struct {
	dispatcher gateway.Dispatcher

	logger *logger.Logger
}

var _ GatewayServer = (*Handler)(nil)

// NewHandler constructs a [Handler] over dispatcher.
func NewHandler(dispatcher gateway.Dispatcher, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Register attaches the gateway service to s.
func (h *Handler) Register(s *grpc.Server) {
	RegisterGatewayServer(s, h)
}

// Dispatch implements [GatewayServer]. A failed dispatch is returned as a
// status whose message is the HostError JSON document.
func (h *Handler) Dispatch(ctx context.Context, req *DispatchRequest) (*DispatchResponse, error) {
	result, err := h.dispatcher.Dispatch(ctx, req.DB, req.RPC, req.Args)
	if err != nil {
		return nil, statusFromError(err)
	}

	return &DispatchResponse{Result: result}, nil
}

var codeStatusMap = map[gateway.Code]codes.Code{
	gateway.CodeInvalidRPC:      codes.Unimplemented,
	gateway.CodeInvalidArgs:     codes.InvalidArgument,
	gateway.CodeInvalidRequest:  codes.InvalidArgument,
	gateway.CodeDatabaseNotOpen: codes.FailedPrecondition,
	gateway.CodeNoHTTPClient:    codes.Internal,
	gateway.CodeFetchFailed:     codes.Unavailable,
	gateway.CodeFetchNotOK:      codes.Unavailable,
	gateway.CodeInvalidResponse: codes.DataLoss,
	gateway.CodeStoreError:      codes.Internal,
	gateway.CodeInternal:        codes.Internal,
}

func statusFromError(err error) error {
	var hostErr *gateway.HostError
	if !errors.As(err, &hostErr) {
		hostErr = &gateway.HostError{Code: gateway.CodeInternal, Message: err.Error()}
	}

	code, ok := codeStatusMap[hostErr.Code]
	if !ok {
		code = codes.Internal
	}

	msg, mErr := json.Marshal(hostErr)
	if mErr != nil {
		return status.Error(code, hostErr.Message)
	}

	return status.Error(code, string(msg))
}

// HostErrorFromStatus recovers the HostError carried by a status returned
// from Dispatch. ok is false for statuses produced elsewhere.
func HostErrorFromStatus(err error) (hostErr *gateway.HostError, ok bool) {
	st, isStatus := status.FromError(err)
	if !isStatus {
		return nil, false
	}

	hostErr = new(gateway.HostError)
	if json.Unmarshal([]byte(st.Message()), hostErr) != nil || hostErr.Code == "" {
		return nil, false
	}

	return hostErr, true
}
