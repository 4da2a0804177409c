package persistence

import (
	"database/sql"
	"fmt"
	"time"

	"kyarte_server/core/domain"

	"github.com/jmoiron/sqlx"
)

// NoteAdapter implements domain.NoteRepository using PostgreSQL.
type NoteAdapter struct {
	db *sqlx.DB
}

func NewNoteAdapter(db *sqlx.DB) *NoteAdapter {
	return &NoteAdapter{db: db}
}

// noteRow represents the database row for free notes.
type noteRow struct {
	ID          int64        `db:"id"`
	Content     string       `db:"content"`
	InputType   string       `db:"input_type"`
	Processed   bool         `db:"processed"`
	ProcessedAt sql.NullTime `db:"processed_at"`
	CreatedAt   time.Time    `db:"created_at"`
}

func (r *noteRow) toEntity() *domain.FreeNote {
	note := &domain.FreeNote{
		ID:        r.ID,
		Content:   r.Content,
		InputType: domain.NoteInputType(r.InputType),
		Processed: r.Processed,
		CreatedAt: r.CreatedAt,
	}
	if r.ProcessedAt.Valid {
		note.ProcessedAt = &r.ProcessedAt.Time
	}
	return note
}

// GetByID retrieves a note. Returns nil when no note matches.
func (a *NoteAdapter) GetByID(id int64) (*domain.FreeNote, error) {
	var row noteRow
	query := `SELECT * FROM free_notes WHERE id = $1`

	if err := a.db.Get(&row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return row.toEntity(), nil
}

// Recent retrieves the newest notes first.
func (a *NoteAdapter) Recent(limit int) ([]*domain.FreeNote, error) {
	var rows []noteRow
	query := `SELECT * FROM free_notes ORDER BY created_at DESC LIMIT $1`

	if err := a.db.Select(&rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return rowsToNotes(rows), nil
}

// ListUnprocessed retrieves notes awaiting analysis, oldest first.
func (a *NoteAdapter) ListUnprocessed() ([]*domain.FreeNote, error) {
	var rows []noteRow
	query := `SELECT * FROM free_notes WHERE processed = FALSE ORDER BY created_at ASC`

	if err := a.db.Select(&rows, query); err != nil {
		return nil, fmt.Errorf("failed to list unprocessed notes: %w", err)
	}
	return rowsToNotes(rows), nil
}

func rowsToNotes(rows []noteRow) []*domain.FreeNote {
	notes := make([]*domain.FreeNote, len(rows))
	for i, row := range rows {
		notes[i] = row.toEntity()
	}
	return notes
}

// Create inserts a note and fills the generated fields.
func (a *NoteAdapter) Create(note *domain.FreeNote) error {
	query := `
		INSERT INTO free_notes (content, input_type)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := a.db.QueryRow(query, note.Content, string(note.InputType)).
		Scan(&note.ID, &note.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

// Update updates a note's processing state.
func (a *NoteAdapter) Update(note *domain.FreeNote) error {
	query := `
		UPDATE free_notes
		SET content = $2, processed = $3, processed_at = $4
		WHERE id = $1`

	var processedAt sql.NullTime
	if note.ProcessedAt != nil {
		processedAt = sql.NullTime{Time: *note.ProcessedAt, Valid: true}
	}

	result, err := a.db.Exec(query, note.ID, note.Content, note.Processed, processedAt)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("note not found: %d", note.ID)
	}
	return nil
}

// Delete removes a note.
func (a *NoteAdapter) Delete(id int64) error {
	result, err := a.db.Exec(`DELETE FROM free_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("note not found: %d", id)
	}
	return nil
}
