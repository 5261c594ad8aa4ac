package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vinculopei/vinculo-server/internal/apierror"
	"github.com/vinculopei/vinculo-server/internal/model"
)

func handleError(err error) error {
	if _, ok := apierror.As(err); !ok && errors.Is(err, model.ErrNotFound) {
		return status.Error(codes.NotFound, "record not found")
	}
	return apierror.Status(err)
}
