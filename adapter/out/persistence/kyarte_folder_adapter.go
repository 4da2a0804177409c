// Package persistence provides database adapters implementing the
// domain repository interfaces.
package persistence

import (
	"database/sql"
	"fmt"
	"time"

	"kyarte_server/core/domain"

	"github.com/jmoiron/sqlx"
)

// FolderAdapter implements domain.FolderRepository using PostgreSQL.
type FolderAdapter struct {
	db *sqlx.DB
}

func NewFolderAdapter(db *sqlx.DB) *FolderAdapter {
	return &FolderAdapter{db: db}
}

// folderRow represents the database row for folders.
type folderRow struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r *folderRow) toEntity() *domain.Folder {
	folder := &domain.Folder{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Description.Valid {
		folder.Description = &r.Description.String
	}
	return folder
}

// GetByID retrieves a folder. Returns nil when no folder matches.
func (a *FolderAdapter) GetByID(id int64) (*domain.Folder, error) {
	var row folderRow
	query := `SELECT * FROM folders WHERE id = $1`

	if err := a.db.Get(&row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}
	return row.toEntity(), nil
}

// List retrieves all folders ordered by name.
func (a *FolderAdapter) List() ([]*domain.Folder, error) {
	var rows []folderRow
	query := `SELECT * FROM folders ORDER BY name ASC`

	if err := a.db.Select(&rows, query); err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}

	folders := make([]*domain.Folder, len(rows))
	for i, row := range rows {
		folders[i] = row.toEntity()
	}
	return folders, nil
}

// Create inserts a folder and fills the generated fields.
func (a *FolderAdapter) Create(folder *domain.Folder) error {
	query := `
		INSERT INTO folders (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	var description sql.NullString
	if folder.Description != nil {
		description = sql.NullString{String: *folder.Description, Valid: true}
	}

	err := a.db.QueryRow(query, folder.Name, description).
		Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}
	return nil
}

// Update updates a folder.
func (a *FolderAdapter) Update(folder *domain.Folder) error {
	query := `
		UPDATE folders
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1`

	var description sql.NullString
	if folder.Description != nil {
		description = sql.NullString{String: *folder.Description, Valid: true}
	}

	result, err := a.db.Exec(query, folder.ID, folder.Name, description)
	if err != nil {
		return fmt.Errorf("failed to update folder: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("folder not found: %d", folder.ID)
	}
	return nil
}

// Delete removes a folder.
func (a *FolderAdapter) Delete(id int64) error {
	result, err := a.db.Exec(`DELETE FROM folders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("folder not found: %d", id)
	}
	return nil
}
