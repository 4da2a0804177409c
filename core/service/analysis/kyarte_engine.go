package analysis

import (
	"context"

	"kyarte_server/core/domain"
	"kyarte_server/core/port/out"
)

// Engine is a pluggable note analysis strategy.
type Engine interface {
	// Name identifies the engine in notes and audit records.
	Name() string
	// AnalyzeContent produces a single result for the note. Multi
	// statement notes are reduced to their first statement.
	AnalyzeContent(ctx context.Context, content string) (*domain.AnalysisResult, error)
	// AnalyzeMultipleContent produces one result per statement.
	AnalyzeMultipleContent(ctx context.Context, content string) ([]*domain.AnalysisResult, error)
}

// SelectEngine picks the strategy once at startup: the remote engine
// when a text generator is configured, the rule-based engine otherwise.
func SelectEngine(generator out.TextGenerator, rule *RuleEngine) Engine {
	if generator != nil {
		return NewLLMEngine(generator, rule)
	}
	return rule
}
