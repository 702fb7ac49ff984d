package grpc

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestIDKey is the metadata key carrying the request ID
const RequestIDKey = "x-request-id"

// AuthInterceptor returns a gRPC unary server interceptor that validates
// the authorization token from request metadata.
// The token may be sent bare or as "Bearer <token>".
// If the token is missing or invalid, it returns status.Unauthenticated.
func AuthInterceptor(validToken string) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing authorization header")
		}

		token := strings.TrimPrefix(authHeaders[0], "Bearer ")
		if subtle.ConstantTimeCompare([]byte(token), []byte(validToken)) != 1 {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		return handler(ctx, req)
	}
}

// LoggingInterceptor logs every unary call with its request ID, code and latency
func LoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		requestID := requestIDFromContext(ctx)

		// Echo the request ID so clients can correlate logs
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDKey, requestID))

		resp, err := handler(ctx, req)

		code := status.Code(err)
		level := slog.LevelInfo
		switch code {
		case codes.OK, codes.InvalidArgument, codes.NotFound, codes.Unauthenticated:
		default:
			level = slog.LevelError
		}

		attrs := []any{
			"request_id", requestID,
			"method", info.FullMethod,
			"code", code.String(),
			"latency", time.Since(start),
		}
		if err != nil {
			attrs = append(attrs, "error", err)
		}
		logger.Log(ctx, level, "grpc request", attrs...)

		return resp, err
	}
}

func requestIDFromContext(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(RequestIDKey); len(ids) > 0 && ids[0] != "" {
			return ids[0]
		}
	}
	return uuid.NewString()
}

// ServerInterceptors returns the unary interceptor chain: logging first, then
// authentication when token is non-empty
func ServerInterceptors(token string, logger *slog.Logger) []grpc.UnaryServerInterceptor {
	interceptors := []grpc.UnaryServerInterceptor{LoggingInterceptor(logger)}
	if token != "" {
		interceptors = append(interceptors, AuthInterceptor(token))
	}
	return interceptors
}
