package identity

import (
	"errors"

	identityerrors "github.com/Yadlapure/health-care/internal/identity/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error, role Role) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundFor(role)
	}

	return err
}

func notFoundFor(role Role) error {
	switch role {
	case RoleClient:
		return identityerrors.ErrClientNotFound
	case RoleEmployee:
		return identityerrors.ErrEmployeeNotFound
	case RoleAdmin:
		return identityerrors.ErrAdminNotFound
	default:
		return identityerrors.ErrUserNotFound
	}
}
