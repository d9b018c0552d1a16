package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	commonerrors "github.com/syncroapp/syncro-backend/internal/common/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs validator tags on a request DTO and folds failures
// into a single VALIDATION_FAILED domain error.
func ValidateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return commonerrors.ErrValidationFailed.WithCause(err)
	}
	return nil
}

func ValidateUUID(s string) error {
	if s == "" {
		return commonerrors.ErrEmptyUUID
	}
	if _, err := uuid.Parse(s); err != nil {
		return commonerrors.ErrInvalidPayload.WithCause(err)
	}
	return nil
}
