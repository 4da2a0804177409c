// Package note handles free note intake and the analysis-driven routing
// of results into employee records and the calendar.
package note

import (
	"context"
	"strings"
	"time"

	"kyarte_server/core/domain"
	"kyarte_server/core/port/out"
	"kyarte_server/core/service/analysis"
	"kyarte_server/core/service/employee"
	"kyarte_server/pkg/logger"
)

// Processor routes analysis results: it resolves or creates employees,
// appends formatted notes to their records, and creates calendar
// events for schedule and birthday statements.
type Processor struct {
	engine    analysis.Engine
	employees *employee.Service
	calendar  domain.CalendarRepository
	notes     domain.NoteRepository
	extractor *analysis.EventAttributeExtractor
	audit     out.AnalysisAuditStore // optional
}

func NewProcessor(
	engine analysis.Engine,
	employees *employee.Service,
	calendar domain.CalendarRepository,
	notes domain.NoteRepository,
	extractor *analysis.EventAttributeExtractor,
	audit out.AnalysisAuditStore,
) *Processor {
	return &Processor{
		engine:    engine,
		employees: employees,
		calendar:  calendar,
		notes:     notes,
		extractor: extractor,
		audit:     audit,
	}
}

// Process analyzes a note and applies every result. The note is marked
// processed no matter what happens, so a note that fails analysis is
// never retried forever; its content stays available for manual review.
func (p *Processor) Process(ctx context.Context, note *domain.FreeNote) {
	defer p.markProcessed(note)

	results, err := p.engine.AnalyzeMultipleContent(ctx, note.Content)
	if err != nil {
		logger.WithError(err).WithField("note_id", note.ID).Error("note analysis failed")
		return
	}

	for _, result := range results {
		if err := p.applyResult(ctx, note, result); err != nil {
			logger.WithError(err).WithFields(map[string]any{
				"note_id":  note.ID,
				"category": string(result.Category),
			}).Error("failed to apply analysis result")
		}
		p.recordAudit(ctx, note, result)
	}
}

// ProcessUnprocessed drains the backlog of unprocessed notes and
// returns how many were handled.
func (p *Processor) ProcessUnprocessed(ctx context.Context) (int, error) {
	notes, err := p.notes.ListUnprocessed()
	if err != nil {
		return 0, err
	}
	for _, note := range notes {
		p.Process(ctx, note)
	}
	return len(notes), nil
}

func (p *Processor) markProcessed(note *domain.FreeNote) {
	now := time.Now()
	note.Processed = true
	note.ProcessedAt = &now
	if err := p.notes.Update(note); err != nil {
		logger.WithError(err).WithField("note_id", note.ID).Error("failed to mark note processed")
	}
}

func (p *Processor) applyResult(ctx context.Context, note *domain.FreeNote, result *domain.AnalysisResult) error {
	if result.EmployeeName == "" {
		// Schedule statements still matter without a resolvable person.
		if result.Category == domain.CategorySchedule {
			return p.createEvent(ctx, result, nil, "")
		}
		return nil
	}

	emp, err := p.employees.FindOrCreate(result.EmployeeName)
	if err != nil {
		return err
	}

	if err := p.appendNote(emp, result, note); err != nil {
		return err
	}

	switch result.Category {
	case domain.CategorySchedule:
		return p.createEvent(ctx, result, &emp.ID, emp.LastName)
	case domain.CategoryPersonal:
		if analysis.HasBirthdayKeyword(result.Content) {
			return p.createBirthdayEvent(ctx, result, emp)
		}
	}
	return nil
}

func (p *Processor) appendNote(emp *domain.Employee, result *domain.AnalysisResult, note *domain.FreeNote) error {
	emp.AppendNote(p.formatNote(result, note))
	return p.employees.Update(emp)
}

// formatNote renders the line appended to the employee record:
// 【category】 content (AI解析: engine) - yyyy/MM/dd HH:mm, with a low
// confidence marker when applicable.
func (p *Processor) formatNote(result *domain.AnalysisResult, note *domain.FreeNote) string {
	var b strings.Builder
	b.WriteString("【")
	b.WriteString(string(result.Category))
	b.WriteString("】 ")
	b.WriteString(result.Content)
	b.WriteString(" (AI解析: ")
	b.WriteString(p.engine.Name())
	b.WriteString(") - ")
	b.WriteString(note.CreatedAt.Format("2006/01/02 15:04"))
	if result.Confidence == domain.ConfidenceLow {
		b.WriteString(" [信頼度: 低]")
	}
	return b.String()
}

func (p *Processor) createEvent(ctx context.Context, result *domain.AnalysisResult, employeeID *int64, surname string) error {
	attrs := p.extractor.Extract(result.Content, surname)
	return p.calendar.Create(&domain.CalendarEvent{
		Title:       attrs.Title,
		Description: result.Content,
		StartTime:   attrs.StartTime,
		EndTime:     attrs.EndTime,
		Location:    attrs.Location,
		Attendees:   attrs.Attendees,
		EventType:   attrs.EventType,
		EmployeeID:  employeeID,
		IsPrivate:   attrs.IsPrivate,
	})
}

func (p *Processor) createBirthdayEvent(ctx context.Context, result *domain.AnalysisResult, emp *domain.Employee) error {
	attrs := p.extractor.ExtractBirthday(result.Content, emp.LastName)
	return p.calendar.Create(&domain.CalendarEvent{
		Title:       attrs.Title,
		Description: result.Content,
		StartTime:   attrs.StartTime,
		EndTime:     attrs.EndTime,
		Location:    attrs.Location,
		Attendees:   attrs.Attendees,
		EventType:   attrs.EventType,
		EmployeeID:  &emp.ID,
		IsPrivate:   attrs.IsPrivate,
	})
}

func (p *Processor) recordAudit(ctx context.Context, note *domain.FreeNote, result *domain.AnalysisResult) {
	if p.audit == nil {
		return
	}
	record := &domain.AnalysisAuditRecord{
		NoteID:       note.ID,
		Engine:       p.engine.Name(),
		EmployeeName: result.EmployeeName,
		Category:     result.Category,
		Confidence:   result.Confidence,
		Content:      result.Content,
		RawResponse:  result.RawResponse,
		CreatedAt:    time.Now(),
	}
	if err := p.audit.Save(ctx, record); err != nil {
		logger.WithError(err).WithField("note_id", note.ID).Warn("failed to store analysis audit record")
	}
}
