package note

import (
	"context"
	"strings"

	"kyarte_server/core/domain"
	"kyarte_server/pkg/apperr"
)

const maxNoteLength = 2000

// Service handles free note intake. Submission triggers analysis
// synchronously; analysis failures never fail the submission itself.
type Service struct {
	notes     domain.NoteRepository
	processor *Processor
}

func NewService(notes domain.NoteRepository, processor *Processor) *Service {
	return &Service{notes: notes, processor: processor}
}

// Submit stores a note and runs it through analysis.
func (s *Service) Submit(ctx context.Context, content string, inputType domain.NoteInputType) (*domain.FreeNote, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.InvalidInput("content", "must not be empty")
	}
	if len([]rune(content)) > maxNoteLength {
		return nil, apperr.InvalidInput("content", "too long")
	}
	if inputType != domain.NoteInputVoice {
		inputType = domain.NoteInputText
	}

	note := &domain.FreeNote{Content: content, InputType: inputType}
	if err := s.notes.Create(note); err != nil {
		return nil, err
	}

	s.processor.Process(ctx, note)
	return note, nil
}

func (s *Service) Get(id int64) (*domain.FreeNote, error) {
	note, err := s.notes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperr.NotFound("note")
	}
	return note, nil
}

func (s *Service) Recent(limit int) ([]*domain.FreeNote, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.notes.Recent(limit)
}

func (s *Service) Unprocessed() ([]*domain.FreeNote, error) {
	return s.notes.ListUnprocessed()
}

func (s *Service) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.notes.Delete(id)
}
