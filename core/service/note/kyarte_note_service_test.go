package note

import (
	"context"
	"strings"
	"testing"

	"kyarte_server/core/domain"
	"kyarte_server/core/service/analysis"
	"kyarte_server/pkg/apperr"
)

func newTestNoteService() (*Service, *processorFixture) {
	f := newProcessorFixture(analysis.NewRuleEngine())
	return NewService(f.notes, f.processor), f
}

func TestSubmit(t *testing.T) {
	t.Run("stores and analyzes synchronously", func(t *testing.T) {
		svc, f := newTestNoteService()

		note, err := svc.Submit(context.Background(), "田中さんが有給を取りたい", domain.NoteInputText)
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		if note.ID == 0 {
			t.Error("note has no ID")
		}
		if !note.Processed {
			t.Error("note must come back processed")
		}
		if count, _ := f.employees.Count(); count != 1 {
			t.Errorf("got %d employees, want 1", count)
		}
	})

	t.Run("blank content is rejected", func(t *testing.T) {
		svc, _ := newTestNoteService()

		_, err := svc.Submit(context.Background(), "   ", domain.NoteInputText)
		if !apperr.Is(err, apperr.CodeInvalidInput) {
			t.Errorf("Submit(blank) error = %v, want invalid input", err)
		}
	})

	t.Run("oversized content is rejected", func(t *testing.T) {
		svc, _ := newTestNoteService()

		_, err := svc.Submit(context.Background(), strings.Repeat("あ", maxNoteLength+1), domain.NoteInputText)
		if !apperr.Is(err, apperr.CodeInvalidInput) {
			t.Errorf("Submit(oversized) error = %v, want invalid input", err)
		}
	})

	t.Run("unknown input type defaults to text", func(t *testing.T) {
		svc, _ := newTestNoteService()

		note, err := svc.Submit(context.Background(), "メモ", domain.NoteInputType("fax"))
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		if note.InputType != domain.NoteInputText {
			t.Errorf("InputType = %q, want text", note.InputType)
		}
	})

	t.Run("voice input type is kept", func(t *testing.T) {
		svc, _ := newTestNoteService()

		note, err := svc.Submit(context.Background(), "メモ", domain.NoteInputVoice)
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		if note.InputType != domain.NoteInputVoice {
			t.Errorf("InputType = %q, want voice", note.InputType)
		}
	})
}

func TestGetMissingNote(t *testing.T) {
	svc, _ := newTestNoteService()

	_, err := svc.Get(42)
	if !apperr.Is(err, apperr.CodeNotFound) {
		t.Errorf("Get(42) error = %v, want not found", err)
	}
}

func TestRecentLimitClamping(t *testing.T) {
	svc, f := newTestNoteService()
	for i := 0; i < 3; i++ {
		f.notes.Create(&domain.FreeNote{Content: "メモ"})
	}

	notes, err := svc.Recent(-5)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(notes) != 3 {
		t.Errorf("got %d notes, want 3", len(notes))
	}

	notes, err = svc.Recent(2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(notes) != 2 {
		t.Errorf("got %d notes, want 2", len(notes))
	}
}
