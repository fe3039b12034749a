package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// SalesServiceServer is the server API for omnipos.sales.v1.SalesService.
// Requests and responses travel as well-known Struct messages so the
// service needs no generated stubs.
type SalesServiceServer interface {
	GetSales(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSalesSummary(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetFilterOptions(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

const (
	SalesServiceName                             = "omnipos.sales.v1.SalesService"
	SalesService_GetSales_FullMethodName         ="/" + SalesServiceName + "/GetSales"
	SalesService_GetSalesSummary_FullMethodName  = "/" + SalesServiceName + "/GetSalesSummary"
	SalesService_GetFilterOptions_FullMethodName = "/" + SalesServiceName + "/GetFilterOptions"
)

func RegisterSalesServiceServer(s grpc.ServiceRegistrar, srv SalesServiceServer) {
	s.RegisterService(&SalesService_ServiceDesc, srv)
}

func _SalesService_GetSales_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SalesServiceServer).GetSales(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SalesService_GetSales_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SalesServiceServer).GetSales(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _SalesService_GetSalesSummary_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SalesServiceServer).GetSalesSummary(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SalesService_GetSalesSummary_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SalesServiceServer).GetSalesSummary(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _SalesService_GetFilterOptions_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SalesServiceServer).GetFilterOptions(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SalesService_GetFilterOptions_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SalesServiceServer).GetFilterOptions(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

var SalesService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: SalesServiceName,
	HandlerType: (*SalesServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetSales", Handler: _SalesService_GetSales_Handler},
		{MethodName: "GetSalesSummary", Handler: _SalesService_GetSalesSummary_Handler},
		{MethodName: "GetFilterOptions", Handler: _SalesService_GetFilterOptions_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sales/v1/sales.proto",
}

// SalesServiceClient is the client API for omnipos.sales.v1.SalesService.
type SalesServiceClient interface {
	GetSales(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetSalesSummary(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetFilterOptions(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type salesServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSalesServiceClient(cc grpc.ClientConnInterface) SalesServiceClient {
	return &salesServiceClient{cc}
}

func (c *salesServiceClient) GetSales(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SalesService_GetSales_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *salesServiceClient) GetSalesSummary(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SalesService_GetSalesSummary_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *salesServiceClient) GetFilterOptions(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SalesService_GetFilterOptions_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
