package folder

import (
	"testing"

	"kyarte_server/core/domain"
	"kyarte_server/pkg/apperr"
)

type memFolderRepo struct {
	nextID  int64
	folders map[int64]*domain.Folder
}

func newMemFolderRepo(folders ...*domain.Folder) *memFolderRepo {
	repo := &memFolderRepo{nextID: 1, folders: make(map[int64]*domain.Folder)}
	for _, f := range folders {
		repo.Create(f)
	}
	return repo
}

func (r *memFolderRepo) GetByID(id int64) (*domain.Folder, error) { return r.folders[id], nil }

func (r *memFolderRepo) List() ([]*domain.Folder, error) {
	list := make([]*domain.Folder, 0, len(r.folders))
	for _, f := range r.folders {
		list = append(list, f)
	}
	return list, nil
}

func (r *memFolderRepo) Create(f *domain.Folder) error {
	f.ID = r.nextID
	r.nextID++
	r.folders[f.ID] = f
	return nil
}

func (r *memFolderRepo) Update(f *domain.Folder) error {
	r.folders[f.ID] = f
	return nil
}

func (r *memFolderRepo) Delete(id int64) error {
	delete(r.folders, id)
	return nil
}

type countingEmployeeRepo struct {
	domain.EmployeeRepository
	countByFolder map[int64]int
}

func (r *countingEmployeeRepo) CountByFolder(folderID int64) (int, error) {
	return r.countByFolder[folderID], nil
}

func TestFolderDelete(t *testing.T) {
	repo := newMemFolderRepo(
		&domain.Folder{Name: "営業部"},
		&domain.Folder{Name: "空のフォルダ"},
	)
	employees := &countingEmployeeRepo{countByFolder: map[int64]int{1: 3}}
	svc := NewService(repo, employees)

	t.Run("refused while employees remain", func(t *testing.T) {
		if err := svc.Delete(1); !apperr.Is(err, apperr.CodeConflict) {
			t.Errorf("Delete(non-empty) error = %v, want conflict", err)
		}
	})

	t.Run("empty folder is deleted", func(t *testing.T) {
		if err := svc.Delete(2); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := svc.Get(2); !apperr.Is(err, apperr.CodeNotFound) {
			t.Errorf("Get(deleted) error = %v, want not found", err)
		}
	})

	t.Run("missing folder", func(t *testing.T) {
		if err := svc.Delete(99); !apperr.Is(err, apperr.CodeNotFound) {
			t.Errorf("Delete(missing) error = %v, want not found", err)
		}
	})
}

func TestFolderCreateValidation(t *testing.T) {
	svc := NewService(newMemFolderRepo(), &countingEmployeeRepo{})

	if err := svc.Create(&domain.Folder{Name: "  "}); !apperr.Is(err, apperr.CodeInvalidInput) {
		t.Errorf("Create(blank name) error = %v, want invalid input", err)
	}
	if err := svc.Create(&domain.Folder{Name: "開発部"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
}
