package analysis

import (
	"regexp"
	"strings"
	"time"

	"kyarte_server/core/domain"
)

// EventDefaults controls how underspecified statements map to concrete
// event times.
type EventDefaults struct {
	// Hour of day every extracted event starts at.
	Hour int
	// DayOffset is applied when the statement names no day at all.
	DayOffset int
	// Duration of every extracted event.
	Duration time.Duration
}

// DefaultEventDefaults returns the standard settings: tomorrow at
// 09:00, one hour long.
func DefaultEventDefaults() EventDefaults {
	return EventDefaults{Hour: 9, DayOffset: 1, Duration: time.Hour}
}

// EmployeeLister is the slice of the employee repository the attendee
// scan needs.
type EmployeeLister interface {
	List() ([]*domain.Employee, error)
}

// EventAttributes holds everything extracted from a schedule statement.
type EventAttributes struct {
	Title     string
	EventType domain.EventType
	StartTime time.Time
	EndTime   time.Time
	Location  string
	Attendees string
	IsPrivate bool
}

// EventAttributeExtractor derives calendar attributes from statement
// text using keyword and pattern heuristics.
type EventAttributeExtractor struct {
	employees EmployeeLister
	defaults  EventDefaults
	now       func() time.Time
}

func NewEventAttributeExtractor(employees EmployeeLister, defaults EventDefaults) *EventAttributeExtractor {
	return &EventAttributeExtractor{
		employees: employees,
		defaults:  defaults,
		now:       time.Now,
	}
}

var (
	atLocation       = regexp.MustCompile(`@(\S+)`)
	labeledLocation  = regexp.MustCompile(`場所\s*[:：]\s*(.+)`)
	labeledAttendees = regexp.MustCompile(`参加者\s*[:：]\s*(.+)`)
	withAttendees    = regexp.MustCompile(`(?i)with\s+(.+)`)

	birthdayKeywords = []string{"誕生日", "バースデー", "birthday"}
)

// HasBirthdayKeyword reports whether the statement mentions a birthday.
func HasBirthdayKeyword(statement string) bool {
	lowered := strings.ToLower(statement)
	for _, keyword := range birthdayKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// Extract derives event attributes from a schedule statement.
// subjectSurname, when non-empty, is always included in the attendees.
func (x *EventAttributeExtractor) Extract(statement, subjectSurname string) *EventAttributes {
	attrs := &EventAttributes{
		Title:     extractTitle(statement),
		EventType: extractEventType(statement),
		Location:  extractLocation(statement),
		Attendees: x.extractAttendees(statement, subjectSurname),
		IsPrivate: extractPrivacy(statement),
	}
	attrs.StartTime = x.extractStartTime(statement)
	attrs.EndTime = attrs.StartTime.Add(x.defaults.Duration)
	return attrs
}

// ExtractBirthday is Extract with the title and type pinned to a
// birthday event.
func (x *EventAttributeExtractor) ExtractBirthday(statement, subjectSurname string) *EventAttributes {
	attrs := x.Extract(statement, subjectSurname)
	attrs.Title = "誕生日"
	attrs.EventType = domain.EventTypeBirthday
	return attrs
}

func extractTitle(statement string) string {
	switch {
	case strings.Contains(statement, "会議"):
		return "会議"
	case strings.Contains(statement, "有給"), strings.Contains(statement, "休暇"):
		return "有給休暇"
	case strings.Contains(statement, "締切"), strings.Contains(statement, "期限"):
		return "締切"
	case strings.Contains(statement, "予定"):
		return "予定"
	default:
		return "その他の予定"
	}
}

func extractEventType(statement string) domain.EventType {
	switch {
	case strings.Contains(statement, "会議"):
		return domain.EventTypeMeeting
	case strings.Contains(statement, "有給"), strings.Contains(statement, "休暇"):
		return domain.EventTypeVacation
	case strings.Contains(statement, "締切"), strings.Contains(statement, "期限"):
		return domain.EventTypeDeadline
	default:
		return domain.EventTypeOther
	}
}

func (x *EventAttributeExtractor) extractStartTime(statement string) time.Time {
	base := x.now()
	at := func(day time.Time) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), x.defaults.Hour, 0, 0, 0, day.Location())
	}
	switch {
	case strings.Contains(statement, "今日"):
		return at(base)
	case strings.Contains(statement, "明日"):
		return at(base.AddDate(0, 0, 1))
	case strings.Contains(statement, "来週"):
		return at(base.AddDate(0, 0, 7))
	default:
		return at(base.AddDate(0, 0, x.defaults.DayOffset))
	}
}

func extractLocation(statement string) string {
	if m := atLocation.FindStringSubmatch(statement); m != nil {
		return m[1]
	}
	if m := labeledLocation.FindStringSubmatch(statement); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// extractAttendees resolves attendees with explicit markers taking
// priority over a scan of known employee names. The result is a comma
// separated, deduplicated list in first-mention order.
func (x *EventAttributeExtractor) extractAttendees(statement, subjectSurname string) string {
	var names []string
	if m := labeledAttendees.FindStringSubmatch(statement); m != nil {
		names = splitAttendeeList(m[1])
	} else if m := withAttendees.FindStringSubmatch(statement); m != nil {
		names = splitAttendeeList(m[1])
	} else if x.employees != nil {
		if employees, err := x.employees.List(); err == nil {
			for _, employee := range employees {
				switch {
				case employee.LastName != "" && strings.Contains(statement, employee.LastName):
					names = append(names, employee.LastName)
				case employee.FirstName != "" && strings.Contains(statement, employee.FirstName):
					names = append(names, employee.FirstName)
				}
			}
		}
	}

	seen := make(map[string]struct{}, len(names)+1)
	unique := make([]string, 0, len(names)+1)
	for _, name := range names {
		if _, dup := seen[name]; dup || name == "" {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}
	if subjectSurname != "" {
		if _, dup := seen[subjectSurname]; !dup {
			unique = append(unique, subjectSurname)
		}
	}
	return strings.Join(unique, ",")
}

func splitAttendeeList(raw string) []string {
	normalized := strings.NewReplacer("・", ",", "、", ",").Replace(raw)
	parts := strings.Split(normalized, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

// extractPrivacy checks private markers before public ones so 非公開
// is not shadowed by its 公開 substring.
func extractPrivacy(statement string) bool {
	lowered := strings.ToLower(statement)
	for _, keyword := range []string{"非公開", "private", "confidential"} {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
