package handler

import (
	"google.golang.org/grpc/status"

	"github.com/dtroode/auth-service/internal/apierrors"
)

func handleError(err error) error {
	apiErr := apierrors.From(err)
	return status.Error(apiErr.GRPCCode, apiErr.Message)
}
