// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
)

// DispatchMethod is the full method name of the unary dispatch call.
const DispatchMethod = "/diffsync.v1.Gateway/Dispatch"

// DispatchRequest is the gRPC form of one dispatch call.
type DispatchRequest struct {
	DB   string          `json:"db"`
	RPC  uint8           `json:"rpc"`
	Args json.RawMessage `json:"args,omitempty"`
}

// DispatchResponse carries the JSON result document.
type DispatchResponse struct {
	Result json.RawMessage `json:"result"`
}

// GatewayServer is the server API of diffsync.v1.Gateway.
type GatewayServer interface {
	Dispatch(ctx context.Context, req *DispatchRequest) (*DispatchResponse, error)
}

var gatewayServiceDesc = grpc.ServiceDesc{
	ServiceName: "diffsync.v1.Gateway",
	HandlerType: (*GatewayServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Dispatch",
			Handler:    dispatchHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "diffsync/v1/gateway",
}

func dispatchHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DispatchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GatewayServer).Dispatch(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: DispatchMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(GatewayServer).Dispatch(ctx, req.(*DispatchRequest))
	}

	return interceptor(ctx, in, info, handler)
}

// RegisterGatewayServer registers srv on s.
func RegisterGatewayServer(s grpc.ServiceRegistrar, srv GatewayServer) {
	s.RegisterService(&gatewayServiceDesc, srv)
}

// GatewayClient calls diffsync.v1.Gateway over cc using the JSON codec.
type GatewayClient struct {
	cc grpc.ClientConnInterface
}

func NewGatewayClient(cc grpc.ClientConnInterface) *GatewayClient {
	return &GatewayClient{cc: cc}
}

func (c *GatewayClient) Dispatch(ctx context.Context, in *DispatchRequest, opts ...grpc.CallOption) (*DispatchResponse, error) {
	out := new(DispatchResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, DispatchMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
