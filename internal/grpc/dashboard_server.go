package grpcserver

import (
	"context"
	"encoding/json"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"feedbackManagement/internal/apperr"
	"feedbackManagement/internal/auth"
	"feedbackManagement/internal/service"
)

const dashboardServiceName = "feedback.v1.DashboardService"

// DashboardService is the read-only reporting surface. Responses are the same
// JSON documents the REST API returns, carried as google.protobuf.Struct.
type DashboardService interface {
	ManagerOverview(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	SentimentTrends(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	TeamMemberStats(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	EmployeeTimeline(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// DashboardServer implements DashboardService on top of the feedback service.
type DashboardServer struct {
	Svc *service.Service
}

var _ DashboardService = (*DashboardServer)(nil)

func (s *DashboardServer) ManagerOverview(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	ov, err := s.Svc.ManagerOverview(ctx, caller(ctx))
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(ov)
}

func (s *DashboardServer) SentimentTrends(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	trend, err := s.Svc.SentimentTrends(ctx, caller(ctx))
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(map[string]any{"sentiment_trends": trend})
}

func (s *DashboardServer) TeamMemberStats(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	if req == nil || req.GetValue() <= 0 {
		return nil, status.Error(codes.InvalidArgument, "employee id is required")
	}
	st, err := s.Svc.TeamMemberStats(ctx, caller(ctx), req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(st)
}

func (s *DashboardServer) EmployeeTimeline(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	list, err := s.Svc.EmployeeTimeline(ctx, caller(ctx))
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(map[string]any{"feedback": list})
}

func caller(ctx context.Context) auth.Identity {
	id, _ := auth.FromContext(ctx)
	return id
}

// toStatus maps application error kinds onto gRPC codes.
func toStatus(err error) error {
	code := codes.Internal
	switch {
	case errors.Is(err, apperr.ErrInvalidCredentials):
		code = codes.Unauthenticated
	case errors.Is(err, apperr.ErrForbidden):
		code = codes.PermissionDenied
	case errors.Is(err, apperr.ErrNotFoundOrForbidden), errors.Is(err, apperr.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, apperr.ErrValidation):
		code = codes.InvalidArgument
	case errors.Is(err, apperr.ErrConflict):
		code = codes.FailedPrecondition
	}
	if code == codes.Internal {
		return status.Error(code, "internal error")
	}
	return status.Error(code, apperr.Detail(err))
}

// toStruct converts v through its JSON form so field names match the REST API.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

// RegisterDashboardService registers srv on s.
func RegisterDashboardService(s grpc.ServiceRegistrar, srv DashboardService) {
	s.RegisterService(&dashboardServiceDesc, srv)
}

var dashboardServiceDesc = grpc.ServiceDesc{
	ServiceName: dashboardServiceName,
	HandlerType: (*DashboardService)(nil),
	Methods: []grpc.MethodDesc{
		unary("ManagerOverview", DashboardService.ManagerOverview),
		unary("SentimentTrends", DashboardService.SentimentTrends),
		unary("TeamMemberStats", DashboardService.TeamMemberStats),
		unary("EmployeeTimeline", DashboardService.EmployeeTimeline),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "feedback/v1/dashboard.proto",
}

func unary[Req any](name string, call func(DashboardService, context.Context, *Req) (*structpb.Struct, error)) grpc.MethodDesc {
	fullMethod := "/" + dashboardServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(DashboardService), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(DashboardService), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// DashboardClient calls DashboardService over a client connection.
type DashboardClient struct {
	cc grpc.ClientConnInterface
}

func NewDashboardClient(cc grpc.ClientConnInterface) *DashboardClient {
	return &DashboardClient{cc: cc}
}

func (c *DashboardClient) invoke(ctx context.Context, method string, in any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+dashboardServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DashboardClient) ManagerOverview(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "ManagerOverview", &emptypb.Empty{}, opts...)
}

func (c *DashboardClient) SentimentTrends(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "SentimentTrends", &emptypb.Empty{}, opts...)
}

func (c *DashboardClient) TeamMemberStats(ctx context.Context, employeeID int64, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "TeamMemberStats", wrapperspb.Int64(employeeID), opts...)
}

func (c *DashboardClient) EmployeeTimeline(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "EmployeeTimeline", &emptypb.Empty{}, opts...)
}
