package grpc

// Hand-written service descriptor for creditrisk.v1.RiskService. Messages are
// plain structs carried by the "json" codec registered in json_codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	riskServiceName      = "creditrisk.v1.RiskService"
	evaluateRiskFullName = "/" + riskServiceName + "/EvaluateRisk"
)

// RiskServiceServer is the server API for RiskService.
type RiskServiceServer interface {
	EvaluateRisk(context.Context, *EvaluateRiskRequest) (*EvaluateRiskResponse, error)
	mustEmbedUnimplementedRiskServiceServer()
}

// UnimplementedRiskServiceServer provides forward-compatible default implementations.
type UnimplementedRiskServiceServer struct{}

func (UnimplementedRiskServiceServer) EvaluateRisk(context.Context, *EvaluateRiskRequest) (*EvaluateRiskResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EvaluateRisk not implemented")
}
func (UnimplementedRiskServiceServer) mustEmbedUnimplementedRiskServiceServer() {}

// RegisterRiskServiceServer registers the RiskServiceServer with the gRPC server.
func RegisterRiskServiceServer(s grpclib.ServiceRegistrar, srv RiskServiceServer) {
	s.RegisterService(&_RiskService_serviceDesc, srv)
}

var _RiskService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: riskServiceName,
	HandlerType: (*RiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "EvaluateRisk", Handler: _RiskService_EvaluateRisk_Handler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "creditrisk/v1/risk.proto",
}

func _RiskService_EvaluateRisk_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(EvaluateRiskRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RiskServiceServer).EvaluateRisk(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: evaluateRiskFullName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RiskServiceServer).EvaluateRisk(ctx, req.(*EvaluateRiskRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// RiskServiceClient is the client API for RiskService.
type RiskServiceClient interface {
	EvaluateRisk(ctx context.Context, in *EvaluateRiskRequest, opts ...grpclib.CallOption) (*EvaluateRiskResponse, error)
}

type riskServiceClient struct {
	cc grpclib.ClientConnInterface
}

// NewRiskServiceClient creates a client that speaks the json codec.
func NewRiskServiceClient(cc grpclib.ClientConnInterface) RiskServiceClient {
	return &riskServiceClient{cc: cc}
}

func (c *riskServiceClient) EvaluateRisk(ctx context.Context, in *EvaluateRiskRequest, opts ...grpclib.CallOption) (*EvaluateRiskResponse, error) {
	out := new(EvaluateRiskResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, evaluateRiskFullName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
