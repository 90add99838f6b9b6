package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// EmployeeServiceName は gRPC のサービス名です。
const EmployeeServiceName = "employee.v1.EmployeeService"

// EmployeeServiceServer は employee.v1.EmployeeService のサーバー側インターフェースです。
// メッセージには protobuf の well-known types を用います。
type EmployeeServiceServer interface {
	CreateEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetEmployee(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	ListEmployees(*emptypb.Empty, grpc.ServerStreamingServer[structpb.Struct]) error
	UpdateEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteEmployee(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
}

var _ EmployeeServiceServer = (*EmployeeGrpcHandler)(nil)

// EmployeeServiceDesc は employee.v1.EmployeeService のサービス記述です。
var EmployeeServiceDesc = grpc.ServiceDesc{
	ServiceName: EmployeeServiceName,
	HandlerType: (*EmployeeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateEmployee",
			Handler:    unaryHandler("CreateEmployee", EmployeeServiceServer.CreateEmployee),
		},
		{
			MethodName: "GetEmployee",
			Handler:    unaryHandler("GetEmployee", EmployeeServiceServer.GetEmployee),
		},
		{
			MethodName: "UpdateEmployee",
			Handler:    unaryHandler("UpdateEmployee", EmployeeServiceServer.UpdateEmployee),
		},
		{
			MethodName: "DeleteEmployee",
			Handler:    unaryHandler("DeleteEmployee", EmployeeServiceServer.DeleteEmployee),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "ListEmployees",
			Handler:       listEmployeesHandler,
			ServerStreams: true,
		},
	},
	Metadata: "employee/v1/employee.proto",
}

// RegisterEmployeeServiceServer はサービスをサーバーに登録します。
func RegisterEmployeeServiceServer(s grpc.ServiceRegistrar, srv EmployeeServiceServer) {
	s.RegisterService(&EmployeeServiceDesc, srv)
}

// FullMethod は "/employee.v1.EmployeeService/<method>" 形式のメソッド名を返します。
func FullMethod(method string) string {
	return "/" + EmployeeServiceName + "/" + method
}

func unaryHandler[Req, Res any](method string, call func(EmployeeServiceServer, context.Context, *Req) (*Res, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(EmployeeServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(EmployeeServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func listEmployeesHandler(srv any, stream grpc.ServerStream) error {
	in := new(emptypb.Empty)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(EmployeeServiceServer).ListEmployees(in, &grpc.GenericServerStream[emptypb.Empty, structpb.Struct]{ServerStream: stream})
}
