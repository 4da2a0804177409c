package domain

import (
	"strings"
	"time"
)

// Employee represents an HR record for a single employee.
type Employee struct {
	ID         int64      `json:"id"`
	LastName   string     `json:"last_name"`
	FirstName  string     `json:"first_name"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	Department *string    `json:"department,omitempty"`
	Position   *string    `json:"position,omitempty"`
	HireDate   *time.Time `json:"hire_date,omitempty"`
	Email      *string    `json:"email,omitempty"`
	Phone      *string    `json:"phone,omitempty"`
	Notes      string     `json:"notes"`
	FolderID   *int64     `json:"folder_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// FullName returns "姓 名", or just the surname when the given name is empty.
func (e *Employee) FullName() string {
	if e.FirstName == "" {
		return e.LastName
	}
	return e.LastName + " " + e.FirstName
}

// AppendNote adds a note line, separated from existing notes by a blank line.
func (e *Employee) AppendNote(line string) {
	if strings.TrimSpace(e.Notes) == "" {
		e.Notes = line
		return
	}
	e.Notes += "\n\n" + line
}

// EmployeeRepository interface for employee persistence
type EmployeeRepository interface {
	GetByID(id int64) (*Employee, error)
	List() ([]*Employee, error)
	ListByFolder(folderID int64) ([]*Employee, error)
	ListWithoutFolder() ([]*Employee, error)
	// SearchByName returns employees whose last or first name contains name.
	SearchByName(name string) ([]*Employee, error)
	// SearchByNameWithin returns employees whose last name is contained in text.
	SearchByNameWithin(text string) ([]*Employee, error)
	CountByFolder(folderID int64) (int, error)
	Count() (int, error)
	Create(employee *Employee) error
	Update(employee *Employee) error
	Delete(id int64) error
}
