package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/dtroode/auth-service/internal/logger"
)

// VerifyFullMethod is the full gRPC method name of token verification.
const VerifyFullMethod = "/auth.TokenVerifier/Verify"

// TokenVerifier checks session tokens without mutating state.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) error
}

// TokenVerifierServer is the server API for the auth.TokenVerifier service.
type TokenVerifierServer interface {
	Verify(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error)
}

// Verifier handles gRPC token verification for other services.
type Verifier struct {
	tokenVerifier TokenVerifier
	logger        *logger.Logger
}

var _ TokenVerifierServer = (*Verifier)(nil)

// NewVerifier creates a new Verifier handler.
func NewVerifier(tokenVerifier TokenVerifier, logger *logger.Logger) *Verifier {
	return &Verifier{
		tokenVerifier: tokenVerifier,
		logger:        logger,
	}
}

// Verify returns Empty for a valid token, Unauthenticated for an invalid one
// and InvalidArgument for an empty one.
func (h *Verifier) Verify(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	h.logger.Debug("Verifier handler: processing verify request")

	if err := h.tokenVerifier.VerifyToken(ctx, req.GetValue()); err != nil {
		h.logger.Info("Verifier handler: token rejected",
			"error", err.Error())
		return nil, handleError(err)
	}

	return &emptypb.Empty{}, nil
}

// RegisterTokenVerifierServer registers srv on s.
func RegisterTokenVerifierServer(s grpc.ServiceRegistrar, srv TokenVerifierServer) {
	s.RegisterService(&TokenVerifierServiceDesc, srv)
}

// TokenVerifierServiceDesc describes auth.TokenVerifier using well-known
// protobuf types for request and response.
var TokenVerifierServiceDesc = grpc.ServiceDesc{
	ServiceName: "auth.TokenVerifier",
	HandlerType: (*TokenVerifierServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Verify",
			Handler:    verifyHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "auth/token_verifier.proto",
}

func verifyHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TokenVerifierServer).Verify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: VerifyFullMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TokenVerifierServer).Verify(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// TokenVerifierClient calls auth.TokenVerifier on a remote auth service.
type TokenVerifierClient struct {
	conn grpc.ClientConnInterface
}

func NewTokenVerifierClient(conn grpc.ClientConnInterface) *TokenVerifierClient {
	return &TokenVerifierClient{conn: conn}
}

// Verify returns nil if the remote service accepts token.
func (c *TokenVerifierClient) Verify(ctx context.Context, token string, opts ...grpc.CallOption) error {
	return c.conn.Invoke(ctx, VerifyFullMethod, wrapperspb.String(token), new(emptypb.Empty), opts...)
}
