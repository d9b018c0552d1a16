package service

import (
	"regexp"

	"github.com/syncroapp/syncro-backend/internal/common/constants"
	commonerrors "github.com/syncroapp/syncro-backend/internal/common/errors"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func validateRegistration(input RegisterInput) error {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return commonerrors.ErrMissingFields
	}

	if len(input.Name) > constants.NameMaxLength {
		return commonerrors.ErrValidationFailed
	}

	if len(input.Password) < constants.PasswordMinLength || len(input.Password) > constants.PasswordMaxLength {
		return commonerrors.ErrValidationFailed
	}

	// Avatar is a pair of hex colors; anything else falls back server-side.
	if len(input.Avatar) != 0 {
		if len(input.Avatar) != 2 {
			return commonerrors.ErrValidationFailed
		}
		for _, color := range input.Avatar {
			if !hexColorRegex.MatchString(color) {
				return commonerrors.ErrValidationFailed
			}
		}
	}

	return nil
}
