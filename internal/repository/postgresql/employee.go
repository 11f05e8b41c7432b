package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

// GetByID implements attendance.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT u.id::text, COALESCE(u.employee_code, ''),
			TRIM(CONCAT_WS(' ', u.first_name, u.last_name)),
			COALESCE(r.name, ''), u.department_id::text, u.city
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		WHERE u.id::text = $1 AND u.deleted_at IS NULL
	`

	var emp attendance.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.EmployeeCode,
		&emp.FullName,
		&emp.RoleName, &emp.DepartmentID, &emp.Location,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Employee{}, attendance.ErrEmployeeNotFound
		}
		return attendance.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}

	return emp, nil
}

func NewEmployeeRepository(db *database.DB) attendance.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}
