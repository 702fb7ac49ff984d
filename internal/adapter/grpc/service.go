package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "companystats.v1.CompanyStatsService"

// Full method names
const (
	ListCompaniesMethod            = "/" + ServiceName + "/ListCompanies"
	CountryMeanMethod              = "/" + ServiceName + "/CountryMean"
	CountryStandardDeviationMethod = "/" + ServiceName + "/CountryStandardDeviation"
)

// CompanyStatsServer is the server API for CompanyStatsService.
// Requests and responses are google.protobuf.Struct messages whose keys
// mirror the HTTP query parameters and JSON bodies.
type CompanyStatsServer interface {
	ListCompanies(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	CountryMean(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	CountryStandardDeviation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes CompanyStatsService for grpc.Server.RegisterService
// The service has no .proto source, so Metadata is left empty
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CompanyStatsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListCompanies",
			Handler:    unaryHandler(ListCompaniesMethod, CompanyStatsServer.ListCompanies),
		},
		{
			MethodName: "CountryMean",
			Handler:    unaryHandler(CountryMeanMethod, CompanyStatsServer.CountryMean),
		},
		{
			MethodName: "CountryStandardDeviation",
			Handler:    unaryHandler(CountryStandardDeviationMethod, CompanyStatsServer.CountryStandardDeviation),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "",
}

// RegisterCompanyStatsServer registers srv on s
func RegisterCompanyStatsServer(s grpc.ServiceRegistrar, srv CompanyStatsServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type unaryMethod func(CompanyStatsServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CompanyStatsServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CompanyStatsServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Client calls CompanyStatsService over a client connection
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a Client
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// ListCompanies calls CompanyStatsService.ListCompanies
func (c *Client) ListCompanies(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ListCompaniesMethod, req, opts...)
}

// CountryMean calls CompanyStatsService.CountryMean
func (c *Client) CountryMean(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CountryMeanMethod, req, opts...)
}

// CountryStandardDeviation calls CompanyStatsService.CountryStandardDeviation
func (c *Client) CountryStandardDeviation(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CountryStandardDeviationMethod, req, opts...)
}

func (c *Client) invoke(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
