package auth

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"feedbackManagement/internal/apperr"
)

// NewUnaryAuthInterceptor returns a gRPC unary interceptor that resolves the
// bearer token in incoming metadata and injects the Identity into the context.
// Methods listed in allowUnauthenticated bypass authentication (e.g., health checks).
func NewUnaryAuthInterceptor(gate *Gate, allowUnauthenticated ...string) grpc.UnaryServerInterceptor {
	allow := make(map[string]struct{}, len(allowUnauthenticated))
	for _, m := range allowUnauthenticated {
		allow[strings.TrimSpace(m)] = struct{}{}
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := allow[info.FullMethod]; ok {
			return handler(ctx, req)
		}
		header, err := authorizationFromMD(ctx)
		if err != nil {
			return nil, status.Errorf(codes.Unauthenticated, "auth error: %v", err)
		}
		id, err := gate.ResolveHeader(ctx, header)
		if err != nil {
			if errors.Is(err, apperr.ErrInvalidCredentials) {
				return nil, status.Errorf(codes.Unauthenticated, "auth error: %v", err)
			}
			return nil, status.Errorf(codes.Internal, "auth error: %v", err)
		}
		return handler(WithIdentity(ctx, id), req)
	}
}

func authorizationFromMD(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", errors.New("missing metadata")
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return "", errors.New("missing authorization")
	}
	return vals[0], nil
}
