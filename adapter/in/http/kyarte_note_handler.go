package http

import (
	"kyarte_server/core/domain"
	"kyarte_server/core/port/out"
	"kyarte_server/core/service/note"
	"kyarte_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NoteHandler handles free note HTTP requests. Submitting a note runs
// analysis synchronously; the response carries the processed note.
type NoteHandler struct {
	notes *note.Service
	audit out.AnalysisAuditStore // optional
}

func NewNoteHandler(notes *note.Service, audit out.AnalysisAuditStore) *NoteHandler {
	return &NoteHandler{notes: notes, audit: audit}
}

// RegisterRoutes registers note routes.
func (h *NoteHandler) RegisterRoutes(app fiber.Router) {
	notes := app.Group("/notes")
	notes.Get("/", h.ListNotes)
	notes.Post("/", h.SubmitNote)
	notes.Get("/unprocessed", h.ListUnprocessed)
	notes.Get("/:id", h.GetNote)
	notes.Delete("/:id", h.DeleteNote)
	notes.Get("/:id/analysis", h.GetNoteAnalysis)
}

// ListNotes returns recent notes, newest first.
func (h *NoteHandler) ListNotes(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	notes, err := h.notes.Recent(limit)
	if err != nil {
		return err
	}
	return response.OKWithMeta(c, notes, &response.Meta{Total: len(notes), Limit: limit})
}

// SubmitNote stores a note and runs it through analysis.
func (h *NoteHandler) SubmitNote(c *fiber.Ctx) error {
	var req struct {
		Content   string `json:"content"`
		InputType string `json:"input_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	n, err := h.notes.Submit(c.Context(), req.Content, domain.NoteInputType(req.InputType))
	if err != nil {
		return err
	}
	return response.Created(c, n)
}

// ListUnprocessed returns notes still awaiting analysis.
func (h *NoteHandler) ListUnprocessed(c *fiber.Ctx) error {
	notes, err := h.notes.Unprocessed()
	if err != nil {
		return err
	}
	return response.OKWithMeta(c, notes, &response.Meta{Total: len(notes)})
}

// GetNote returns a single note.
func (h *NoteHandler) GetNote(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	n, err := h.notes.Get(id)
	if err != nil {
		return err
	}
	return response.OK(c, n)
}

// DeleteNote deletes a note.
func (h *NoteHandler) DeleteNote(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.notes.Delete(id); err != nil {
		return err
	}
	return response.NoContent(c)
}

// GetNoteAnalysis returns the stored analysis trace for a note.
func (h *NoteHandler) GetNoteAnalysis(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.notes.Get(id); err != nil {
		return err
	}
	if h.audit == nil {
		return response.OKWithMeta(c, []any{}, &response.Meta{Total: 0})
	}
	records, err := h.audit.RecentByNote(c.Context(), id, c.QueryInt("limit", 20))
	if err != nil {
		return err
	}
	return response.OKWithMeta(c, records, &response.Meta{Total: len(records)})
}
