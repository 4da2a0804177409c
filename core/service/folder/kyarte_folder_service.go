// Package folder implements employee folder management.
package folder

import (
	"strings"

	"kyarte_server/core/domain"
	"kyarte_server/pkg/apperr"
)

// Service handles folder CRUD. Deleting a folder is refused while it
// still contains employees.
type Service struct {
	folders   domain.FolderRepository
	employees domain.EmployeeRepository
}

func NewService(folders domain.FolderRepository, employees domain.EmployeeRepository) *Service {
	return &Service{folders: folders, employees: employees}
}

func (s *Service) Get(id int64) (*domain.Folder, error) {
	folder, err := s.folders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, apperr.NotFound("folder")
	}
	return folder, nil
}

func (s *Service) List() ([]*domain.Folder, error) {
	return s.folders.List()
}

func (s *Service) Create(folder *domain.Folder) error {
	if strings.TrimSpace(folder.Name) == "" {
		return apperr.InvalidInput("name", "must not be empty")
	}
	return s.folders.Create(folder)
}

func (s *Service) Update(folder *domain.Folder) error {
	if strings.TrimSpace(folder.Name) == "" {
		return apperr.InvalidInput("name", "must not be empty")
	}
	return s.folders.Update(folder)
}

func (s *Service) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	count, err := s.employees.CountByFolder(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("folder still contains employees")
	}
	return s.folders.Delete(id)
}
