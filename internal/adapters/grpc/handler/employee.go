package handler

import (
	"context"
	"fmt"

	"github.com/ogurasousui/codex-employee-service/internal/core/employee"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	fieldID        = "id"
	fieldFirstName = "firstName"
	fieldLastName  = "lastName"
	fieldEmail     = "email"
)

// EmployeeGrpcHandler は EmployeeService の gRPC 実装です。
type EmployeeGrpcHandler struct {
	svc employee.UseCase
}

// NewEmployeeGrpcHandler は EmployeeGrpcHandler を生成します。
func NewEmployeeGrpcHandler(svc employee.UseCase) *EmployeeGrpcHandler {
	return &EmployeeGrpcHandler{svc: svc}
}

// CreateEmployee は社員を作成します。
func (h *EmployeeGrpcHandler) CreateEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	dto, err := dtoFromStruct(req)
	if err != nil {
		return nil, err
	}

	created, err := h.svc.CreateEmployee(ctx, dto)
	if err != nil {
		return nil, toStatusError(err)
	}
	return dtoToStruct(created), nil
}

// GetEmployee は社員を取得します。
func (h *EmployeeGrpcHandler) GetEmployee(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	found, err := h.svc.GetEmployee(ctx, employee.GetEmployeeInput{ID: req.GetValue()})
	if err != nil {
		return nil, toStatusError(err)
	}
	return dtoToStruct(found), nil
}

// ListEmployees は全社員をストリームで返します。
func (h *EmployeeGrpcHandler) ListEmployees(_ *emptypb.Empty, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	for dto, err := range h.svc.ListEmployees(stream.Context()) {
		if err != nil {
			return toStatusError(err)
		}
		if err := stream.Send(dtoToStruct(dto)); err != nil {
			return err
		}
	}
	return nil
}

// UpdateEmployee はリクエストの "id" で指定した社員を更新します。
func (h *EmployeeGrpcHandler) UpdateEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	dto, err := dtoFromStruct(req)
	if err != nil {
		return nil, err
	}

	updated, err := h.svc.UpdateEmployee(ctx, employee.UpdateEmployeeInput{ID: dto.ID, Employee: dto})
	if err != nil {
		return nil, toStatusError(err)
	}
	return dtoToStruct(updated), nil
}

// DeleteEmployee は社員を削除します。
func (h *EmployeeGrpcHandler) DeleteEmployee(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if err := h.svc.DeleteEmployee(ctx, employee.DeleteEmployeeInput{ID: req.GetValue()}); err != nil {
		return nil, toStatusError(err)
	}
	return &emptypb.Empty{}, nil
}

func dtoToStruct(dto *employee.Dto) *structpb.Struct {
	if dto == nil {
		return &structpb.Struct{}
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldID:        structpb.NewStringValue(dto.ID),
		fieldFirstName: structpb.NewStringValue(dto.FirstName),
		fieldLastName:  structpb.NewStringValue(dto.LastName),
		fieldEmail:     structpb.NewStringValue(dto.Email),
	}}
}

func dtoFromStruct(s *structpb.Struct) (employee.Dto, error) {
	var dto employee.Dto
	targets := map[string]*string{
		fieldID:        &dto.ID,
		fieldFirstName: &dto.FirstName,
		fieldLastName:  &dto.LastName,
		fieldEmail:     &dto.Email,
	}

	for name, value := range s.GetFields() {
		target, ok := targets[name]
		if !ok {
			continue
		}
		switch kind := value.GetKind().(type) {
		case *structpb.Value_StringValue:
			*target = kind.StringValue
		case *structpb.Value_NullValue:
			*target = ""
		default:
			return employee.Dto{}, status.Error(codes.InvalidArgument, fmt.Sprintf("%s must be a string", name))
		}
	}

	return dto, nil
}
