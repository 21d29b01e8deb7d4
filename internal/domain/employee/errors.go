package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee record not found, please contact HR")
	ErrEmployeeInactive = errors.New("employee is not active")
)
