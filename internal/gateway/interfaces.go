package gateway

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/gateway_mock.go -package=mock

// Dispatcher is the dispatch boundary as seen by hosts. [*Gateway]
// implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, dbName string, rpc uint8, args []byte) ([]byte, error)
}

var _ Dispatcher = (*Gateway)(nil)
