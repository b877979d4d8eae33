package sensorpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ServiceName              = "iot.SensorService"
	SendSensorDataFullMethod = "/iot.SensorService/SendSensorData"
)

type SensorServiceClient interface {
	SendSensorData(ctx context.Context, in *SensorRequest, opts ...grpc.CallOption) (*SensorResponse, error)
}

type sensorServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSensorServiceClient(cc grpc.ClientConnInterface) SensorServiceClient {
	return &sensorServiceClient{cc}
}

func (c *sensorServiceClient) SendSensorData(ctx context.Context, in *SensorRequest, opts ...grpc.CallOption) (*SensorResponse, error) {
	out := new(SensorResponse)
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	if err := c.cc.Invoke(ctx, SendSensorDataFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// SensorServiceServer is the server half of the contract. Servers built on it
// must be created with grpc.ForceServerCodec(Codec{}).
type SensorServiceServer interface {
	SendSensorData(context.Context, *SensorRequest) (*SensorResponse, error)
}

// UnimplementedSensorServiceServer answers every call with codes.Unimplemented.
type UnimplementedSensorServiceServer struct{}

func (UnimplementedSensorServiceServer) SendSensorData(context.Context, *SensorRequest) (*SensorResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SendSensorData not implemented")
}

func RegisterSensorServiceServer(s grpc.ServiceRegistrar, srv SensorServiceServer) {
	s.RegisterService(&SensorService_ServiceDesc, srv)
}

func sendSensorDataHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SensorRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SensorServiceServer).SendSensorData(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SendSensorDataFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SensorServiceServer).SendSensorData(ctx, req.(*SensorRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var SensorService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SensorServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SendSensorData",
			Handler:    sendSensorDataHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/sensor.proto",
}
