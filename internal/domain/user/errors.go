package user

import "errors"

var (
	ErrAdminAccessRequired = errors.New("company admin or super admin role required")
)
