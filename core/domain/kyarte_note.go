package domain

import "time"

// NoteInputType indicates how a free note was captured.
type NoteInputType string

const (
	NoteInputText  NoteInputType = "text"
	NoteInputVoice NoteInputType = "voice"
)

// FreeNote is an unstructured memo waiting to be analyzed and routed
// to employee records and the calendar.
type FreeNote struct {
	ID          int64         `json:"id"`
	Content     string        `json:"content"`
	InputType   NoteInputType `json:"input_type"`
	Processed   bool          `json:"processed"`
	ProcessedAt *time.Time    `json:"processed_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// NoteRepository interface for free note persistence
type NoteRepository interface {
	GetByID(id int64) (*FreeNote, error)
	Recent(limit int) ([]*FreeNote, error)
	ListUnprocessed() ([]*FreeNote, error)
	Create(note *FreeNote) error
	Update(note *FreeNote) error
	Delete(id int64) error
}
