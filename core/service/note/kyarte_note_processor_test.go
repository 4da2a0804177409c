package note

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"kyarte_server/core/domain"
	"kyarte_server/core/service/analysis"
	"kyarte_server/core/service/employee"
)

type memEmployeeRepo struct {
	nextID    int64
	employees map[int64]*domain.Employee
}

func newMemEmployeeRepo() *memEmployeeRepo {
	return &memEmployeeRepo{nextID: 1, employees: make(map[int64]*domain.Employee)}
}

func (r *memEmployeeRepo) GetByID(id int64) (*domain.Employee, error) {
	return r.employees[id], nil
}

func (r *memEmployeeRepo) List() ([]*domain.Employee, error) {
	list := make([]*domain.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *memEmployeeRepo) ListByFolder(int64) ([]*domain.Employee, error) { return nil, nil }
func (r *memEmployeeRepo) ListWithoutFolder() ([]*domain.Employee, error) { return nil, nil }
func (r *memEmployeeRepo) CountByFolder(int64) (int, error)               { return 0, nil }
func (r *memEmployeeRepo) Count() (int, error)                            { return len(r.employees), nil }

func (r *memEmployeeRepo) SearchByName(name string) ([]*domain.Employee, error) {
	var list []*domain.Employee
	for _, e := range r.employees {
		if strings.Contains(e.LastName, name) || strings.Contains(e.FirstName, name) {
			list = append(list, e)
		}
	}
	return list, nil
}

func (r *memEmployeeRepo) SearchByNameWithin(text string) ([]*domain.Employee, error) {
	var list []*domain.Employee
	for _, e := range r.employees {
		if e.LastName != "" && strings.Contains(text, e.LastName) {
			list = append(list, e)
		}
	}
	return list, nil
}

func (r *memEmployeeRepo) Create(e *domain.Employee) error {
	e.ID = r.nextID
	r.nextID++
	r.employees[e.ID] = e
	return nil
}

func (r *memEmployeeRepo) Update(e *domain.Employee) error {
	r.employees[e.ID] = e
	return nil
}

func (r *memEmployeeRepo) Delete(id int64) error {
	delete(r.employees, id)
	return nil
}

type memFolderRepo struct{}

func (r *memFolderRepo) GetByID(int64) (*domain.Folder, error) { return nil, nil }
func (r *memFolderRepo) List() ([]*domain.Folder, error)       { return nil, nil }
func (r *memFolderRepo) Create(*domain.Folder) error           { return nil }
func (r *memFolderRepo) Update(*domain.Folder) error           { return nil }
func (r *memFolderRepo) Delete(int64) error                    { return nil }

type memNoteRepo struct {
	nextID int64
	notes  map[int64]*domain.FreeNote
}

func newMemNoteRepo() *memNoteRepo {
	return &memNoteRepo{nextID: 1, notes: make(map[int64]*domain.FreeNote)}
}

func (r *memNoteRepo) GetByID(id int64) (*domain.FreeNote, error) { return r.notes[id], nil }

func (r *memNoteRepo) Recent(limit int) ([]*domain.FreeNote, error) {
	list := make([]*domain.FreeNote, 0, len(r.notes))
	for _, n := range r.notes {
		list = append(list, n)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *memNoteRepo) ListUnprocessed() ([]*domain.FreeNote, error) {
	var list []*domain.FreeNote
	for _, n := range r.notes {
		if !n.Processed {
			list = append(list, n)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *memNoteRepo) Create(n *domain.FreeNote) error {
	n.ID = r.nextID
	n.CreatedAt = time.Now()
	r.nextID++
	r.notes[n.ID] = n
	return nil
}

func (r *memNoteRepo) Update(n *domain.FreeNote) error {
	r.notes[n.ID] = n
	return nil
}

func (r *memNoteRepo) Delete(id int64) error {
	delete(r.notes, id)
	return nil
}

type memCalendarRepo struct {
	nextID int64
	events []*domain.CalendarEvent
}

func (r *memCalendarRepo) GetByID(int64) (*domain.CalendarEvent, error) { return nil, nil }
func (r *memCalendarRepo) List() ([]*domain.CalendarEvent, error)       { return r.events, nil }
func (r *memCalendarRepo) ListBetween(start, end time.Time) ([]*domain.CalendarEvent, error) {
	return nil, nil
}
func (r *memCalendarRepo) ListByType(domain.EventType) ([]*domain.CalendarEvent, error) {
	return nil, nil
}
func (r *memCalendarRepo) ListByEmployee(int64) ([]*domain.CalendarEvent, error) { return nil, nil }
func (r *memCalendarRepo) ListUnsynced() ([]*domain.CalendarEvent, error)        { return nil, nil }

func (r *memCalendarRepo) Create(event *domain.CalendarEvent) error {
	r.nextID++
	event.ID = r.nextID
	r.events = append(r.events, event)
	return nil
}

func (r *memCalendarRepo) Update(*domain.CalendarEvent) error { return nil }
func (r *memCalendarRepo) MarkSynced(int64, string) error     { return nil }
func (r *memCalendarRepo) Delete(int64) error                 { return nil }

type memAuditStore struct {
	records []*domain.AnalysisAuditRecord
}

func (s *memAuditStore) Save(_ context.Context, record *domain.AnalysisAuditRecord) error {
	s.records = append(s.records, record)
	return nil
}

func (s *memAuditStore) RecentByNote(_ context.Context, noteID int64, _ int) ([]*domain.AnalysisAuditRecord, error) {
	var list []*domain.AnalysisAuditRecord
	for _, r := range s.records {
		if r.NoteID == noteID {
			list = append(list, r)
		}
	}
	return list, nil
}

// failingEngine always errors, exercising the mark-processed guarantee.
type failingEngine struct{}

func (e *failingEngine) Name() string { return "failing" }

func (e *failingEngine) AnalyzeContent(context.Context, string) (*domain.AnalysisResult, error) {
	return nil, errors.New("engine down")
}

func (e *failingEngine) AnalyzeMultipleContent(context.Context, string) ([]*domain.AnalysisResult, error) {
	return nil, errors.New("engine down")
}

// staticEngine returns fixed results regardless of input.
type staticEngine struct {
	results []*domain.AnalysisResult
}

func (e *staticEngine) Name() string { return "static" }

func (e *staticEngine) AnalyzeContent(context.Context, string) (*domain.AnalysisResult, error) {
	return e.results[0], nil
}

func (e *staticEngine) AnalyzeMultipleContent(context.Context, string) ([]*domain.AnalysisResult, error) {
	return e.results, nil
}

type processorFixture struct {
	processor *Processor
	employees *memEmployeeRepo
	notes     *memNoteRepo
	calendar  *memCalendarRepo
	audit     *memAuditStore
}

func newProcessorFixture(engine analysis.Engine) *processorFixture {
	employeeRepo := newMemEmployeeRepo()
	noteRepo := newMemNoteRepo()
	calendarRepo := &memCalendarRepo{}
	audit := &memAuditStore{}

	employeeService := employee.NewService(employeeRepo, &memFolderRepo{})
	extractor := analysis.NewEventAttributeExtractor(employeeRepo, analysis.DefaultEventDefaults())

	return &processorFixture{
		processor: NewProcessor(engine, employeeService, calendarRepo, noteRepo, extractor, audit),
		employees: employeeRepo,
		notes:     noteRepo,
		calendar:  calendarRepo,
		audit:     audit,
	}
}

func (f *processorFixture) submit(t *testing.T, content string) *domain.FreeNote {
	t.Helper()
	note := &domain.FreeNote{Content: content, InputType: domain.NoteInputText}
	if err := f.notes.Create(note); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	f.processor.Process(context.Background(), note)
	return note
}

func TestProcessVacationNote(t *testing.T) {
	f := newProcessorFixture(analysis.NewRuleEngine())
	note := f.submit(t, "田中さんが有給を取りたいと言っていた")

	if !note.Processed || note.ProcessedAt == nil {
		t.Error("note not marked processed")
	}

	employees, _ := f.employees.List()
	if len(employees) != 1 {
		t.Fatalf("got %d employees, want 1 auto-created", len(employees))
	}
	emp := employees[0]
	if emp.LastName != "田中" {
		t.Errorf("LastName = %q, want 田中", emp.LastName)
	}
	if !strings.Contains(emp.Notes, "【vacation】 田中さんが有給を取りたいと言っていた") {
		t.Errorf("Notes = %q, missing the formatted analysis line", emp.Notes)
	}
	if !strings.Contains(emp.Notes, "(AI解析: rule-based)") {
		t.Errorf("Notes = %q, missing the engine marker", emp.Notes)
	}

	if len(f.calendar.events) != 0 {
		t.Errorf("got %d events, want 0 for a vacation note", len(f.calendar.events))
	}
}

func TestProcessScheduleNoteCreatesLinkedEvent(t *testing.T) {
	f := newProcessorFixture(analysis.NewRuleEngine())
	f.submit(t, "鈴木さんと明日会議 @会議室A")

	employees, _ := f.employees.List()
	if len(employees) != 1 || employees[0].LastName != "鈴木" {
		t.Fatalf("employees = %v, want one 鈴木 record", employees)
	}

	if len(f.calendar.events) != 1 {
		t.Fatalf("got %d events, want 1", len(f.calendar.events))
	}
	event := f.calendar.events[0]
	if event.Title != "会議" || event.EventType != domain.EventTypeMeeting {
		t.Errorf("event = %q/%q, want 会議/meeting", event.Title, event.EventType)
	}
	if event.EmployeeID == nil || *event.EmployeeID != employees[0].ID {
		t.Errorf("EmployeeID = %v, want %d", event.EmployeeID, employees[0].ID)
	}
	if event.Location != "会議室A" {
		t.Errorf("Location = %q, want 会議室A", event.Location)
	}
	if !strings.Contains(event.Attendees, "鈴木") {
		t.Errorf("Attendees = %q, want 鈴木 included", event.Attendees)
	}
}

func TestProcessAnonymousScheduleNote(t *testing.T) {
	f := newProcessorFixture(analysis.NewRuleEngine())
	f.submit(t, "明日会議 @会議室A")

	if count, _ := f.employees.Count(); count != 0 {
		t.Errorf("got %d employees, want 0 for an anonymous note", count)
	}
	if len(f.calendar.events) != 1 {
		t.Fatalf("got %d events, want 1 general event", len(f.calendar.events))
	}
	if f.calendar.events[0].EmployeeID != nil {
		t.Errorf("EmployeeID = %v, want nil", f.calendar.events[0].EmployeeID)
	}
}

func TestProcessAnonymousUncategorizedNoteIsSkipped(t *testing.T) {
	f := newProcessorFixture(analysis.NewRuleEngine())
	note := f.submit(t, "とても疲れた")

	if count, _ := f.employees.Count(); count != 0 {
		t.Errorf("got %d employees, want 0", count)
	}
	if len(f.calendar.events) != 0 {
		t.Errorf("got %d events, want 0", len(f.calendar.events))
	}
	if !note.Processed {
		t.Error("skipped note must still be marked processed")
	}
}

func TestProcessBirthdayNote(t *testing.T) {
	f := newProcessorFixture(analysis.NewRuleEngine())
	f.submit(t, "佐藤さんの家族の誕生日を祝った")

	if len(f.calendar.events) != 1 {
		t.Fatalf("got %d events, want 1 birthday event", len(f.calendar.events))
	}
	event := f.calendar.events[0]
	if event.Title != "誕生日" || event.EventType != domain.EventTypeBirthday {
		t.Errorf("event = %q/%q, want 誕生日/birthday", event.Title, event.EventType)
	}
	if event.EmployeeID == nil {
		t.Error("birthday event must be linked to the employee")
	}
}

func TestProcessMultiStatementNote(t *testing.T) {
	f := newProcessorFixture(analysis.NewRuleEngine())
	f.submit(t, "田中さんが有給を取りたい。鈴木さんの体調が悪そうだった。")

	employees, _ := f.employees.List()
	if len(employees) != 2 {
		t.Fatalf("got %d employees, want 2", len(employees))
	}
	if employees[0].LastName != "田中" || employees[1].LastName != "鈴木" {
		t.Errorf("employees = %q/%q, want 田中/鈴木", employees[0].LastName, employees[1].LastName)
	}
}

func TestProcessMarksProcessedOnEngineFailure(t *testing.T) {
	f := newProcessorFixture(&failingEngine{})
	note := f.submit(t, "田中さんが有給を取りたい")

	if !note.Processed {
		t.Error("note must be marked processed even when analysis fails")
	}
	if count, _ := f.employees.Count(); count != 0 {
		t.Errorf("got %d employees, want 0", count)
	}
}

func TestProcessLowConfidenceMarker(t *testing.T) {
	f := newProcessorFixture(&staticEngine{results: []*domain.AnalysisResult{{
		EmployeeName: "田中",
		Action:       domain.ActionAddNote,
		Content:      "田中さんの様子が気になる",
		Category:     domain.CategoryUncategorized,
		Confidence:   domain.ConfidenceLow,
	}}})
	f.submit(t, "田中さんの様子が気になる")

	employees, _ := f.employees.List()
	if len(employees) != 1 {
		t.Fatalf("got %d employees, want 1", len(employees))
	}
	if !strings.Contains(employees[0].Notes, "[信頼度: 低]") {
		t.Errorf("Notes = %q, missing the low confidence marker", employees[0].Notes)
	}
}

func TestProcessRecordsAudit(t *testing.T) {
	f := newProcessorFixture(analysis.NewRuleEngine())
	note := f.submit(t, "田中さんが有給を取りたい。鈴木さんの体調が悪い。")

	records, err := f.audit.RecentByNote(context.Background(), note.ID, 10)
	if err != nil {
		t.Fatalf("RecentByNote() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d audit records, want 2", len(records))
	}
	if records[0].Engine != "rule-based" {
		t.Errorf("Engine = %q, want rule-based", records[0].Engine)
	}
}

func TestProcessUnprocessedDrainsBacklog(t *testing.T) {
	f := newProcessorFixture(analysis.NewRuleEngine())
	for _, content := range []string{"田中さんが休む", "鈴木さんは会議"} {
		if err := f.notes.Create(&domain.FreeNote{Content: content}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	handled, err := f.processor.ProcessUnprocessed(context.Background())
	if err != nil {
		t.Fatalf("ProcessUnprocessed() error = %v", err)
	}
	if handled != 2 {
		t.Errorf("handled = %d, want 2", handled)
	}

	remaining, _ := f.notes.ListUnprocessed()
	if len(remaining) != 0 {
		t.Errorf("got %d unprocessed notes, want 0", len(remaining))
	}
}

func TestAppendNoteSeparatesEntries(t *testing.T) {
	f := newProcessorFixture(analysis.NewRuleEngine())
	f.submit(t, "田中さんが有給を取りたい")
	f.submit(t, "田中さんの体調が悪そうだった")

	employees, _ := f.employees.List()
	if len(employees) != 1 {
		t.Fatalf("got %d employees, want 1 reused record", len(employees))
	}

	// Auto-created records start with a marker note, so the two
	// appended entries make three blank-line separated blocks.
	parts := strings.Split(employees[0].Notes, "\n\n")
	if len(parts) != 3 {
		t.Fatalf("Notes has %d blank-line separated entries, want 3: %q", len(parts), employees[0].Notes)
	}
	if !strings.Contains(parts[1], "【vacation】") {
		t.Errorf("first appended entry = %q, want vacation line", parts[1])
	}
	if !strings.Contains(parts[2], "【health】") {
		t.Errorf("second appended entry = %q, want health line", parts[2])
	}
}
