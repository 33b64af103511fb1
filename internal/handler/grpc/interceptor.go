package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-diff-sync/internal/logger"
)

const traceIDMetadataKey = "x-trace-id"

// LoggingInterceptor attaches a child logger carrying the trace id to the
// call context and logs every call with its status and duration.
func LoggingInterceptor(log *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		traceID := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get(traceIDMetadataKey); len(v) > 0 {
				traceID = v[0]
			}
		}
		if traceID == "" {
			traceID = uuid.NewString()
		}

		l := log.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})
		ctx = l.WithContext(ctx)

		start := time.Now()
		resp, err := handler(ctx, req)

		l.Info().
			Str("method", info.FullMethod).
			Str("code", status.Code(err).String()).
			Dur("duration", time.Since(start)).
			Send()

		return resp, err
	}
}
