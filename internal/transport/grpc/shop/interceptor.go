package shop

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	shopv1 "github.com/light-bringer/backoffice-service/api/shop/v1"
	"github.com/light-bringer/backoffice-service/internal/pkg/session"
)

// TokenVerifier resolves a bearer token to its principal.
type TokenVerifier interface {
	Verify(token string) (*session.Principal, error)
}

// methodRoles lists the roles allowed on each protected method. Methods not
// listed here are public.
var methodRoles = map[string][]string{
	shopv1.CartService_AddToCart_FullMethodName:      {"customer"},
	shopv1.CartService_UpdateCartItem_FullMethodName: {"customer"},
	shopv1.CartService_RemoveCartItem_FullMethodName: {"customer"},
	shopv1.CartService_GetCart_FullMethodName:        {"customer"},
	shopv1.CartService_Checkout_FullMethodName:       {"customer"},
}

// AuthInterceptor authenticates the bearer token in the "authorization"
// metadata and checks the caller's role before the handler runs.
func AuthInterceptor(verifier TokenVerifier) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		roles, protected := methodRoles[info.FullMethod]
		if !protected {
			return handler(ctx, req)
		}

		token := bearerToken(ctx)
		if token == "" {
			return nil, status.Error(codes.Unauthenticated, "missing bearer token")
		}
		principal, err := verifier.Verify(token)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}
		if !slices.Contains(roles, principal.Role) {
			return nil, status.Errorf(codes.PermissionDenied, "role %s may not call %s", principal.Role, info.FullMethod)
		}

		return handler(session.WithPrincipal(ctx, principal), req)
	}
}

// LoggingInterceptor logs one line per call.
func LoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		level := slog.LevelInfo
		if code == codes.Internal || code == codes.Unknown {
			level = slog.LevelError
		}
		logger.Log(ctx, level, "grpc call",
			"method", info.FullMethod,
			"code", code.String(),
			"duration", time.Since(start),
		)
		return resp, err
	}
}

func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get("authorization")
	if len(values) == 0 {
		return ""
	}
	const prefix = "bearer "
	v := strings.TrimSpace(values[0])
	if len(v) <= len(prefix) || !strings.EqualFold(v[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(v[len(prefix):])
}
