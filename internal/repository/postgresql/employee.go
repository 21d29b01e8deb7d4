package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/employee"
	"github.com/developnetgeometry/unity-hrms-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates a PostgreSQL-backed employee repository.
func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, user_id, company_id, employee_code, full_name, position_name,
	employment_status, base_salary, hire_date, created_at, updated_at, deleted_at`

func scanEmployee(row pgx.Row, emp *employee.Employee) error {
	return row.Scan(
		&emp.ID, &emp.UserID, &emp.CompanyID, &emp.EmployeeCode, &emp.FullName, &emp.PositionName,
		&emp.EmploymentStatus, &emp.BaseSalary, &emp.HireDate, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1
		  AND company_id = $2
		  AND deleted_at IS NULL
	`

	var emp employee.Employee
	if err := scanEmployee(q.QueryRow(ctx, query, id, companyID), &emp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByUserID(ctx context.Context, userID string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE user_id = $1
		  AND company_id = $2
		  AND deleted_at IS NULL
	`

	var emp employee.Employee
	if err := scanEmployee(q.QueryRow(ctx, query, userID, companyID), &emp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by user: %w", err)
	}

	return emp, nil
}

// ListActiveByCompany implements employee.EmployeeRepository.
func (r *employeeRepository) ListActiveByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1
		  AND employment_status = 'active'
		  AND deleted_at IS NULL
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := scanEmployee(rows, &emp); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// ListCompanyIDs implements employee.EmployeeRepository.
func (r *employeeRepository) ListCompanyIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT company_id
		FROM employees
		WHERE employment_status = 'active'
		  AND deleted_at IS NULL
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list company ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan company id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate company ids: %w", err)
	}

	return ids, nil
}

// GetAdminUserIDs implements employee.EmployeeRepository.
func (r *employeeRepository) GetAdminUserIDs(ctx context.Context, companyID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id
		FROM users
		WHERE company_id = $1
		  AND role IN ('company_admin', 'super_admin')
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan admin user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate admin users: %w", err)
	}

	return ids, nil
}
