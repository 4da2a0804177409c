// Package employee implements employee record management.
package employee

import (
	"regexp"
	"strings"

	"kyarte_server/core/domain"
	"kyarte_server/pkg/apperr"
)

// Service handles employee CRUD and name resolution.
type Service struct {
	employees domain.EmployeeRepository
	folders   domain.FolderRepository
}

func NewService(employees domain.EmployeeRepository, folders domain.FolderRepository) *Service {
	return &Service{employees: employees, folders: folders}
}

func (s *Service) Get(id int64) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperr.NotFound("employee")
	}
	return employee, nil
}

func (s *Service) List() ([]*domain.Employee, error) {
	return s.employees.List()
}

func (s *Service) ListByFolder(folderID int64) ([]*domain.Employee, error) {
	return s.employees.ListByFolder(folderID)
}

func (s *Service) ListWithoutFolder() ([]*domain.Employee, error) {
	return s.employees.ListWithoutFolder()
}

func (s *Service) Count() (int, error) {
	return s.employees.Count()
}

func (s *Service) Create(employee *domain.Employee) error {
	if strings.TrimSpace(employee.LastName) == "" {
		return apperr.InvalidInput("last_name", "must not be empty")
	}
	if employee.FolderID != nil {
		if err := s.requireFolder(*employee.FolderID); err != nil {
			return err
		}
	}
	return s.employees.Create(employee)
}

func (s *Service) Update(employee *domain.Employee) error {
	if strings.TrimSpace(employee.LastName) == "" {
		return apperr.InvalidInput("last_name", "must not be empty")
	}
	if employee.FolderID != nil {
		if err := s.requireFolder(*employee.FolderID); err != nil {
			return err
		}
	}
	return s.employees.Update(employee)
}

func (s *Service) Delete(id int64) error {
	return s.employees.Delete(id)
}

// AssignFolder moves an employee into a folder; a nil folderID removes
// the assignment.
func (s *Service) AssignFolder(employeeID int64, folderID *int64) error {
	employee, err := s.Get(employeeID)
	if err != nil {
		return err
	}
	if folderID != nil {
		if err := s.requireFolder(*folderID); err != nil {
			return err
		}
	}
	employee.FolderID = folderID
	return s.employees.Update(employee)
}

func (s *Service) requireFolder(folderID int64) error {
	folder, err := s.folders.GetByID(folderID)
	if err != nil {
		return err
	}
	if folder == nil {
		return apperr.NotFound("folder")
	}
	return nil
}

var honorificSuffix = regexp.MustCompile(`(さん|氏|様)$`)

// NormalizeName strips trailing honorifics and all spaces, including
// full-width ones, from a search term.
func NormalizeName(name string) string {
	normalized := honorificSuffix.ReplaceAllString(strings.TrimSpace(name), "")
	return strings.NewReplacer(" ", "", "　", "").Replace(normalized)
}

// Search finds employees by name. It tries a partial match on last and
// first name first; when that finds nothing, it falls back to matching
// employees whose surname is contained in the normalized search text,
// so "佐藤太郎さん" still resolves to 佐藤.
func (s *Service) Search(name string) ([]*domain.Employee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	matches, err := s.employees.SearchByName(name)
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		return matches, nil
	}

	normalized := NormalizeName(name)
	if normalized == "" {
		return nil, nil
	}
	return s.employees.SearchByNameWithin(normalized)
}

const autoCreatedNotes = "自動解析により作成された従業員データ"

// FindOrCreate resolves a surname to an existing employee, creating a
// minimal record when nobody matches.
func (s *Service) FindOrCreate(surname string) (*domain.Employee, error) {
	matches, err := s.Search(surname)
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		return matches[0], nil
	}

	employee := &domain.Employee{
		LastName:  surname,
		FirstName: "",
		Notes:     autoCreatedNotes,
	}
	if err := s.employees.Create(employee); err != nil {
		return nil, err
	}
	return employee, nil
}
