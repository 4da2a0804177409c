package persistence

import (
	"database/sql"
	"fmt"
	"time"

	"kyarte_server/core/domain"

	"github.com/jmoiron/sqlx"
)

// EmployeeAdapter implements domain.EmployeeRepository using PostgreSQL.
type EmployeeAdapter struct {
	db *sqlx.DB
}

func NewEmployeeAdapter(db *sqlx.DB) *EmployeeAdapter {
	return &EmployeeAdapter{db: db}
}

// employeeRow represents the database row for employees.
type employeeRow struct {
	ID         int64          `db:"id"`
	LastName   string         `db:"last_name"`
	FirstName  string         `db:"first_name"`
	BirthDate  sql.NullTime   `db:"birth_date"`
	Department sql.NullString `db:"department"`
	Position   sql.NullString `db:"position"`
	HireDate   sql.NullTime   `db:"hire_date"`
	Email      sql.NullString `db:"email"`
	Phone      sql.NullString `db:"phone"`
	Notes      string         `db:"notes"`
	FolderID   sql.NullInt64  `db:"folder_id"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func (r *employeeRow) toEntity() *domain.Employee {
	employee := &domain.Employee{
		ID:        r.ID,
		LastName:  r.LastName,
		FirstName: r.FirstName,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.BirthDate.Valid {
		employee.BirthDate = &r.BirthDate.Time
	}
	if r.Department.Valid {
		employee.Department = &r.Department.String
	}
	if r.Position.Valid {
		employee.Position = &r.Position.String
	}
	if r.HireDate.Valid {
		employee.HireDate = &r.HireDate.Time
	}
	if r.Email.Valid {
		employee.Email = &r.Email.String
	}
	if r.Phone.Valid {
		employee.Phone = &r.Phone.String
	}
	if r.FolderID.Valid {
		employee.FolderID = &r.FolderID.Int64
	}
	return employee
}

func employeeParams(e *domain.Employee) (birthDate, hireDate sql.NullTime, department, position, email, phone sql.NullString, folderID sql.NullInt64) {
	if e.BirthDate != nil {
		birthDate = sql.NullTime{Time: *e.BirthDate, Valid: true}
	}
	if e.HireDate != nil {
		hireDate = sql.NullTime{Time: *e.HireDate, Valid: true}
	}
	if e.Department != nil {
		department = sql.NullString{String: *e.Department, Valid: true}
	}
	if e.Position != nil {
		position = sql.NullString{String: *e.Position, Valid: true}
	}
	if e.Email != nil {
		email = sql.NullString{String: *e.Email, Valid: true}
	}
	if e.Phone != nil {
		phone = sql.NullString{String: *e.Phone, Valid: true}
	}
	if e.FolderID != nil {
		folderID = sql.NullInt64{Int64: *e.FolderID, Valid: true}
	}
	return
}

// GetByID retrieves an employee. Returns nil when nobody matches.
func (a *EmployeeAdapter) GetByID(id int64) (*domain.Employee, error) {
	var row employeeRow
	query := `SELECT * FROM employees WHERE id = $1`

	if err := a.db.Get(&row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return row.toEntity(), nil
}

// List retrieves all employees ordered by surname.
func (a *EmployeeAdapter) List() ([]*domain.Employee, error) {
	query := `SELECT * FROM employees ORDER BY last_name ASC, first_name ASC`
	return a.selectEmployees(query)
}

// ListByFolder retrieves employees assigned to a folder.
func (a *EmployeeAdapter) ListByFolder(folderID int64) ([]*domain.Employee, error) {
	query := `SELECT * FROM employees WHERE folder_id = $1 ORDER BY last_name ASC, first_name ASC`
	return a.selectEmployees(query, folderID)
}

// ListWithoutFolder retrieves employees with no folder assignment.
func (a *EmployeeAdapter) ListWithoutFolder() ([]*domain.Employee, error) {
	query := `SELECT * FROM employees WHERE folder_id IS NULL ORDER BY last_name ASC, first_name ASC`
	return a.selectEmployees(query)
}

// SearchByName finds employees whose last or first name contains name.
func (a *EmployeeAdapter) SearchByName(name string) ([]*domain.Employee, error) {
	query := `
		SELECT * FROM employees
		WHERE last_name LIKE '%' || $1 || '%' OR first_name LIKE '%' || $1 || '%'
		ORDER BY last_name ASC, first_name ASC`
	return a.selectEmployees(query, name)
}

// SearchByNameWithin finds employees whose surname appears inside text.
// This resolves search terms like 佐藤太郎 to the employee 佐藤.
func (a *EmployeeAdapter) SearchByNameWithin(text string) ([]*domain.Employee, error) {
	query := `
		SELECT * FROM employees
		WHERE last_name <> '' AND $1 LIKE '%' || last_name || '%'
		ORDER BY LENGTH(last_name) DESC, last_name ASC`
	return a.selectEmployees(query, text)
}

func (a *EmployeeAdapter) selectEmployees(query string, args ...interface{}) ([]*domain.Employee, error) {
	var rows []employeeRow
	if err := a.db.Select(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	employees := make([]*domain.Employee, len(rows))
	for i, row := range rows {
		employees[i] = row.toEntity()
	}
	return employees, nil
}

// CountByFolder counts employees assigned to a folder.
func (a *EmployeeAdapter) CountByFolder(folderID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM employees WHERE folder_id = $1`
	if err := a.db.Get(&count, query, folderID); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return count, nil
}

// Count counts all employees.
func (a *EmployeeAdapter) Count() (int, error) {
	var count int
	if err := a.db.Get(&count, `SELECT COUNT(*) FROM employees`); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return count, nil
}

// Create inserts an employee and fills the generated fields.
func (a *EmployeeAdapter) Create(employee *domain.Employee) error {
	query := `
		INSERT INTO employees (last_name, first_name, birth_date, department, position, hire_date, email, phone, notes, folder_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	birthDate, hireDate, department, position, email, phone, folderID := employeeParams(employee)

	err := a.db.QueryRow(
		query,
		employee.LastName,
		employee.FirstName,
		birthDate,
		department,
		position,
		hireDate,
		email,
		phone,
		employee.Notes,
		folderID,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

// Update updates an employee.
func (a *EmployeeAdapter) Update(employee *domain.Employee) error {
	query := `
		UPDATE employees
		SET last_name = $2, first_name = $3, birth_date = $4, department = $5,
		    position = $6, hire_date = $7, email = $8, phone = $9, notes = $10,
		    folder_id = $11, updated_at = NOW()
		WHERE id = $1`

	birthDate, hireDate, department, position, email, phone, folderID := employeeParams(employee)

	result, err := a.db.Exec(
		query,
		employee.ID,
		employee.LastName,
		employee.FirstName,
		birthDate,
		department,
		position,
		hireDate,
		email,
		phone,
		employee.Notes,
		folderID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("employee not found: %d", employee.ID)
	}
	return nil
}

// Delete removes an employee.
func (a *EmployeeAdapter) Delete(id int64) error {
	result, err := a.db.Exec(`DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("employee not found: %d", id)
	}
	return nil
}
