package analysis

import (
	"context"

	"kyarte_server/core/domain"
)

const (
	ruleEngineName  = "rule-based"
	ruleRawResponse = "ルールベース解析"
)

// RuleEngine analyzes notes with the local heuristics only. It never
// fails and never blocks, which makes it the fallback for every other
// engine.
type RuleEngine struct{}

func NewRuleEngine() *RuleEngine {
	return &RuleEngine{}
}

func (e *RuleEngine) Name() string {
	return ruleEngineName
}

// AnalyzeContent returns a single result. A one-statement note is
// analyzed as-is; a multi-statement note is reduced to its first
// statement.
func (e *RuleEngine) AnalyzeContent(_ context.Context, content string) (*domain.AnalysisResult, error) {
	statements := SplitStatements(content)
	if len(statements) == 1 {
		return e.analyzeStatement(content), nil
	}
	return e.analyzeStatement(statements[0]), nil
}

// AnalyzeMultipleContent returns one result per statement.
func (e *RuleEngine) AnalyzeMultipleContent(_ context.Context, content string) ([]*domain.AnalysisResult, error) {
	statements := SplitStatements(content)
	results := make([]*domain.AnalysisResult, 0, len(statements))
	for _, statement := range statements {
		results = append(results, e.analyzeStatement(statement))
	}
	return results, nil
}

func (e *RuleEngine) analyzeStatement(statement string) *domain.AnalysisResult {
	return &domain.AnalysisResult{
		EmployeeName: ExtractName(statement),
		Action:       domain.ActionAddNote,
		Content:      statement,
		Category:     Categorize(statement),
		Confidence:   domain.ConfidenceMedium,
		RawResponse:  ruleRawResponse,
	}
}
