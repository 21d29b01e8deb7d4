package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is provisioned by HR onboarding and owned by the identity
// provider; the attendance subsystem treats it as a read-only reference.
type Employee struct {
	ID               string
	UserID           *string
	CompanyID        string
	EmployeeCode     string
	FullName         string
	PositionName     *string
	EmploymentStatus EmploymentStatus
	BaseSalary       *decimal.Decimal
	HireDate         time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "active"
	EmploymentStatusResigned EmploymentStatus = "resigned"
)
