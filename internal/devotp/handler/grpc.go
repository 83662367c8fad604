// Package handler implements the dev-only gRPC DevService.
package handler

import (
	"context"

	devv1 "github.com/Rollin-123/belafrica-node-sub000/api/dev/v1"
	"github.com/Rollin-123/belafrica-node-sub000/internal/devotp"
	"github.com/Rollin-123/belafrica-node-sub000/internal/platform/apperr"
	"github.com/Rollin-123/belafrica-node-sub000/internal/platform/validation"
)

const devOTPNote = "DEV MODE ONLY"

// Server implements DevService. Only registered when dev OTP delivery is enabled outside production.
type Server struct {
	devv1.UnimplementedDevServiceServer
	store    devotp.Store
	validate *validation.Validator
}

// NewServer returns a DevService server reading codes from store.
func NewServer(store devotp.Store) *Server {
	return &Server{store: store, validate: validation.New()}
}

// GetOTP returns the latest plain code delivered to the phone number.
func (s *Server) GetOTP(ctx context.Context, req *devv1.GetOTPRequest) (*devv1.GetOTPResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	code, exp, ok := s.store.Get(ctx, req.PhoneNumber)
	if !ok {
		return nil, apperr.NotFound("OTP not found or expired")
	}
	return &devv1.GetOTPResponse{Code: code, ExpiresAt: exp, Note: devOTPNote}, nil
}
