// Package analysis turns free-form Japanese notes into structured
// per-statement results: who the statement is about, what category it
// falls into, and any calendar attributes it carries.
package analysis

import (
	"regexp"
	"strings"
)

var statementDelimiter = regexp.MustCompile(`[。\n\r]+`)

// SplitStatements splits note content into individual statements on
// the ideographic full stop and line breaks. Blank fragments are
// dropped. When nothing survives (e.g. "。。。"), the original content
// is returned as the single statement so downstream stages always have
// input.
func SplitStatements(content string) []string {
	parts := statementDelimiter.Split(content, -1)
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			statements = append(statements, trimmed)
		}
	}
	if len(statements) == 0 {
		return []string{content}
	}
	return statements
}
