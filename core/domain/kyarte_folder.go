package domain

import "time"

// Folder groups employees, e.g. by department or office.
type Folder struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FolderRepository interface for folder persistence
type FolderRepository interface {
	GetByID(id int64) (*Folder, error)
	List() ([]*Folder, error)
	Create(folder *Folder) error
	Update(folder *Folder) error
	Delete(id int64) error
}
