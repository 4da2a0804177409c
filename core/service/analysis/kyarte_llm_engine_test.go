package analysis

import (
	"context"
	"errors"
	"testing"

	"kyarte_server/core/domain"
)

type staticGenerator struct {
	response string
	err      error
}

func (g *staticGenerator) Generate(_ context.Context, _ string) (string, error) {
	return g.response, g.err
}

func TestLLMEngineAnalyzeContent(t *testing.T) {
	content := "田中さんが有給を取りたいと言っていた"

	t.Run("parses a plain JSON object", func(t *testing.T) {
		engine := NewLLMEngine(&staticGenerator{
			response: `{"employeeName":"田中","action":"add_note","content":"田中さんが有給を取りたい","category":"vacation","confidence":"high"}`,
		}, nil)

		result, err := engine.AnalyzeContent(context.Background(), content)
		if err != nil {
			t.Fatalf("AnalyzeContent() error = %v", err)
		}
		if result.EmployeeName != "田中" {
			t.Errorf("EmployeeName = %q, want 田中", result.EmployeeName)
		}
		if result.Content != content {
			t.Errorf("Content = %q, want the original note text", result.Content)
		}
		if result.Category != domain.CategoryVacation {
			t.Errorf("Category = %q, want vacation", result.Category)
		}
		if result.Confidence != domain.ConfidenceHigh {
			t.Errorf("Confidence = %q, want high", result.Confidence)
		}
	})

	t.Run("unwraps fenced code blocks", func(t *testing.T) {
		engine := NewLLMEngine(&staticGenerator{
			response: "```json\n{\"employeeName\":\"鈴木\",\"category\":\"health\",\"confidence\":\"medium\"}\n```",
		}, nil)

		result, err := engine.AnalyzeContent(context.Background(), content)
		if err != nil {
			t.Fatalf("AnalyzeContent() error = %v", err)
		}
		if result.EmployeeName != "鈴木" {
			t.Errorf("EmployeeName = %q, want 鈴木", result.EmployeeName)
		}
		if result.Category != domain.CategoryHealth {
			t.Errorf("Category = %q, want health", result.Category)
		}
	})

	t.Run("unknown category and confidence get defaults", func(t *testing.T) {
		engine := NewLLMEngine(&staticGenerator{
			response: `{"employeeName":"田中","category":"nonsense","confidence":"???"}`,
		}, nil)

		result, err := engine.AnalyzeContent(context.Background(), content)
		if err != nil {
			t.Fatalf("AnalyzeContent() error = %v", err)
		}
		if result.Category != domain.CategoryUncategorized {
			t.Errorf("Category = %q, want uncategorized", result.Category)
		}
		if result.Confidence != domain.ConfidenceMedium {
			t.Errorf("Confidence = %q, want medium", result.Confidence)
		}
	})

	t.Run("generator error falls back to rules", func(t *testing.T) {
		engine := NewLLMEngine(&staticGenerator{err: errors.New("api down")}, nil)

		result, err := engine.AnalyzeContent(context.Background(), content)
		if err != nil {
			t.Fatalf("AnalyzeContent() error = %v", err)
		}
		if result.RawResponse != ruleRawResponse {
			t.Errorf("RawResponse = %q, want the rule engine marker", result.RawResponse)
		}
		if result.EmployeeName != "田中" {
			t.Errorf("EmployeeName = %q, want 田中 from rule fallback", result.EmployeeName)
		}
	})

	t.Run("unparsable response falls back to rules", func(t *testing.T) {
		engine := NewLLMEngine(&staticGenerator{response: "すみません、解析できませんでした"}, nil)

		result, err := engine.AnalyzeContent(context.Background(), content)
		if err != nil {
			t.Fatalf("AnalyzeContent() error = %v", err)
		}
		if result.RawResponse != ruleRawResponse {
			t.Errorf("RawResponse = %q, want the rule engine marker", result.RawResponse)
		}
	})

	t.Run("nil generator uses rules directly", func(t *testing.T) {
		engine := NewLLMEngine(nil, nil)

		result, err := engine.AnalyzeContent(context.Background(), content)
		if err != nil {
			t.Fatalf("AnalyzeContent() error = %v", err)
		}
		if result.RawResponse != ruleRawResponse {
			t.Errorf("RawResponse = %q, want the rule engine marker", result.RawResponse)
		}
	})
}

func TestLLMEngineAnalyzeMultipleContent(t *testing.T) {
	content := "田中さんが休む。鈴木さんの体調が悪い。"

	t.Run("parses a JSON array", func(t *testing.T) {
		engine := NewLLMEngine(&staticGenerator{
			response: `[{"employeeName":"田中","content":"田中さんが休む","category":"vacation","confidence":"high"},
				{"employeeName":"鈴木","content":"鈴木さんの体調が悪い","category":"health","confidence":"medium"}]`,
		}, nil)

		results, err := engine.AnalyzeMultipleContent(context.Background(), content)
		if err != nil {
			t.Fatalf("AnalyzeMultipleContent() error = %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("got %d results, want 2", len(results))
		}
		if results[0].EmployeeName != "田中" || results[0].Content != "田中さんが休む" {
			t.Errorf("results[0] = %q/%q", results[0].EmployeeName, results[0].Content)
		}
		if results[1].Category != domain.CategoryHealth {
			t.Errorf("results[1].Category = %q, want health", results[1].Category)
		}
	})

	t.Run("bare object is accepted as a one-element array", func(t *testing.T) {
		engine := NewLLMEngine(&staticGenerator{
			response: `{"employeeName":"田中","content":"田中さんが休む","category":"vacation","confidence":"high"}`,
		}, nil)

		results, err := engine.AnalyzeMultipleContent(context.Background(), content)
		if err != nil {
			t.Fatalf("AnalyzeMultipleContent() error = %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("got %d results, want 1", len(results))
		}
		if results[0].EmployeeName != "田中" {
			t.Errorf("EmployeeName = %q, want 田中", results[0].EmployeeName)
		}
	})

	t.Run("empty array yields a single uncategorized result", func(t *testing.T) {
		engine := NewLLMEngine(&staticGenerator{response: `[]`}, nil)

		results, err := engine.AnalyzeMultipleContent(context.Background(), content)
		if err != nil {
			t.Fatalf("AnalyzeMultipleContent() error = %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("got %d results, want 1", len(results))
		}
		if results[0].Category != domain.CategoryUncategorized {
			t.Errorf("Category = %q, want uncategorized", results[0].Category)
		}
		if results[0].Confidence != domain.ConfidenceLow {
			t.Errorf("Confidence = %q, want low", results[0].Confidence)
		}
		if results[0].Content != content {
			t.Errorf("Content = %q, want the original note text", results[0].Content)
		}
	})

	t.Run("blank item content falls back to the original note", func(t *testing.T) {
		engine := NewLLMEngine(&staticGenerator{
			response: `[{"employeeName":"田中","category":"vacation","confidence":"low"}]`,
		}, nil)

		results, err := engine.AnalyzeMultipleContent(context.Background(), content)
		if err != nil {
			t.Fatalf("AnalyzeMultipleContent() error = %v", err)
		}
		if results[0].Content != content {
			t.Errorf("Content = %q, want the original note text", results[0].Content)
		}
	})
}

func TestExtractJSONPayload(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		preferArray bool
		want        string
	}{
		{"bare object", `{"a":1}`, false, `{"a":1}`},
		{"object in prose", `結果は次の通りです: {"a":1} 以上`, false, `{"a":1}`},
		{"fenced block", "```json\n{\"a\":1}\n```", false, `{"a":1}`},
		{"nested braces", `{"a":{"b":2}}`, false, `{"a":{"b":2}}`},
		{"array preferred", `[{"a":1}]`, true, `[{"a":1}]`},
		{"object accepted when no array", `{"a":1}`, true, `{"a":1}`},
		{"no payload", "解析できません", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSONPayload(tt.text, tt.preferArray); got != tt.want {
				t.Errorf("extractJSONPayload(%q, %v) = %q, want %q", tt.text, tt.preferArray, got, tt.want)
			}
		})
	}
}
