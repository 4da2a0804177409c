package domain

import "time"

// Category classifies what an analyzed statement is about.
type Category string

const (
	CategoryVacation      Category = "vacation"
	CategoryHealth        Category = "health"
	CategorySchedule      Category = "schedule"
	CategoryPerformance   Category = "performance"
	CategoryPersonal      Category = "personal"
	CategoryUncategorized Category = "uncategorized"
)

// ParseCategory maps a raw category string to a known Category.
// Unknown or empty values become CategoryUncategorized.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryVacation, CategoryHealth, CategorySchedule, CategoryPerformance, CategoryPersonal:
		return Category(s)
	default:
		return CategoryUncategorized
	}
}

// Confidence expresses how much an analysis result can be trusted.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ParseConfidence maps a raw confidence string to a known Confidence,
// defaulting to medium.
func ParseConfidence(s string) Confidence {
	switch Confidence(s) {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return Confidence(s)
	default:
		return ConfidenceMedium
	}
}

// ActionAddNote is the only routing action emitted by analysis today.
const ActionAddNote = "add_note"

// AnalysisResult is one per-statement outcome of note analysis.
// EmployeeName is empty when no plausible surname was found.
type AnalysisResult struct {
	EmployeeName string     `json:"employee_name,omitempty"`
	Action       string     `json:"action"`
	Content      string     `json:"content"`
	Category     Category   `json:"category"`
	Confidence   Confidence `json:"confidence"`
	// RawResponse is the unparsed engine output, kept for diagnostics.
	RawResponse string `json:"raw_response,omitempty"`
}

// AnalysisAuditRecord is the stored trace of a single analysis result.
type AnalysisAuditRecord struct {
	NoteID       int64      `bson:"note_id" json:"note_id"`
	Engine       string     `bson:"engine" json:"engine"`
	EmployeeName string     `bson:"employee_name,omitempty" json:"employee_name,omitempty"`
	Category     Category   `bson:"category" json:"category"`
	Confidence   Confidence `bson:"confidence" json:"confidence"`
	Content      string     `bson:"content" json:"content"`
	RawResponse  string     `bson:"raw_response,omitempty" json:"raw_response,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
}
