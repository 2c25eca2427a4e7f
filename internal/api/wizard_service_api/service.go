package wizard_service_api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "resortbooking.v1.WizardService"

// WizardServiceServer carries JSON-shaped payloads as google.protobuf.Struct,
// so the wire messages follow the HTTP API's field names.
type WizardServiceServer interface {
	StartSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Dispatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	EndSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type structCall func(srv WizardServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call structCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(WizardServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(WizardServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var WizardService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*WizardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "StartSession", Handler: unaryHandler("StartSession", WizardServiceServer.StartSession)},
		{MethodName: "GetSession", Handler: unaryHandler("GetSession", WizardServiceServer.GetSession)},
		{MethodName: "Dispatch", Handler: unaryHandler("Dispatch", WizardServiceServer.Dispatch)},
		{MethodName: "EndSession", Handler: unaryHandler("EndSession", WizardServiceServer.EndSession)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "resortbooking/v1/wizard.proto",
}

func RegisterWizardServiceServer(s grpc.ServiceRegistrar, srv WizardServiceServer) {
	s.RegisterService(&WizardService_ServiceDesc, srv)
}

// WizardServiceClient is the client side of WizardService.
type WizardServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewWizardServiceClient(cc grpc.ClientConnInterface) *WizardServiceClient {
	return &WizardServiceClient{cc: cc}
}

func (c *WizardServiceClient) StartSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "StartSession", in, opts...)
}

func (c *WizardServiceClient) GetSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetSession", in, opts...)
}

func (c *WizardServiceClient) Dispatch(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Dispatch", in, opts...)
}

func (c *WizardServiceClient) EndSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "EndSession", in, opts...)
}

func (c *WizardServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
