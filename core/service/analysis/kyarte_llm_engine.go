package analysis

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"kyarte_server/core/domain"
	"kyarte_server/core/port/out"
	"kyarte_server/pkg/logger"

	"github.com/goccy/go-json"
)

const llmEngineName = "openai"

// LLMEngine asks a remote text-generation service to analyze notes and
// falls back to the rule-based engine whenever the remote path fails:
// transport errors, empty responses, or unparsable output all degrade
// silently to local heuristics.
type LLMEngine struct {
	generator out.TextGenerator
	fallback  *RuleEngine
}

func NewLLMEngine(generator out.TextGenerator, fallback *RuleEngine) *LLMEngine {
	if fallback == nil {
		fallback = NewRuleEngine()
	}
	return &LLMEngine{generator: generator, fallback: fallback}
}

func (e *LLMEngine) Name() string {
	return llmEngineName
}

// AnalyzeContent analyzes the note as a single statement.
func (e *LLMEngine) AnalyzeContent(ctx context.Context, content string) (*domain.AnalysisResult, error) {
	if e.generator == nil {
		return e.fallback.AnalyzeContent(ctx, content)
	}

	response, err := e.generator.Generate(ctx, singleAnalysisPrompt(content))
	if err != nil || strings.TrimSpace(response) == "" {
		logger.WithError(err).Warn("remote analysis failed, using rule-based fallback")
		return e.fallback.AnalyzeContent(ctx, content)
	}

	result, ok := e.parseSingleResponse(response, content)
	if !ok {
		logger.WithField("response_size", len(response)).Warn("unparsable remote analysis response, using rule-based fallback")
		return e.fallback.AnalyzeContent(ctx, content)
	}
	return result, nil
}

// AnalyzeMultipleContent analyzes every statement in the note.
func (e *LLMEngine) AnalyzeMultipleContent(ctx context.Context, content string) ([]*domain.AnalysisResult, error) {
	if e.generator == nil {
		return e.fallback.AnalyzeMultipleContent(ctx, content)
	}

	response, err := e.generator.Generate(ctx, multipleAnalysisPrompt(content))
	if err != nil || strings.TrimSpace(response) == "" {
		logger.WithError(err).Warn("remote analysis failed, using rule-based fallback")
		return e.fallback.AnalyzeMultipleContent(ctx, content)
	}

	results, ok := e.parseMultipleResponse(response, content)
	if !ok {
		logger.WithField("response_size", len(response)).Warn("unparsable remote analysis response, using rule-based fallback")
		return e.fallback.AnalyzeMultipleContent(ctx, content)
	}
	return results, nil
}

// llmResult mirrors the JSON shape the prompts request.
type llmResult struct {
	EmployeeName string `json:"employeeName"`
	Action       string `json:"action"`
	Content      string `json:"content"`
	Category     string `json:"category"`
	Confidence   string `json:"confidence"`
}

func (e *LLMEngine) parseSingleResponse(response, original string) (*domain.AnalysisResult, bool) {
	payload := extractJSONPayload(response, false)
	if payload == "" {
		return nil, false
	}
	var item llmResult
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		return nil, false
	}
	return &domain.AnalysisResult{
		EmployeeName: strings.TrimSpace(item.EmployeeName),
		Action:       domain.ActionAddNote,
		Content:      original,
		Category:     domain.ParseCategory(item.Category),
		Confidence:   domain.ParseConfidence(item.Confidence),
		RawResponse:  response,
	}, true
}

func (e *LLMEngine) parseMultipleResponse(response, original string) ([]*domain.AnalysisResult, bool) {
	payload := extractJSONPayload(response, true)
	if payload == "" {
		return nil, false
	}

	var items []llmResult
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		// Some models return a bare object even when asked for an array.
		var single llmResult
		if err := json.Unmarshal([]byte(payload), &single); err != nil {
			return nil, false
		}
		items = []llmResult{single}
	}

	if len(items) == 0 {
		return []*domain.AnalysisResult{{
			Action:      domain.ActionAddNote,
			Content:     original,
			Category:    domain.CategoryUncategorized,
			Confidence:  domain.ConfidenceLow,
			RawResponse: response,
		}}, true
	}

	results := make([]*domain.AnalysisResult, 0, len(items))
	for _, item := range items {
		content := strings.TrimSpace(item.Content)
		if content == "" {
			content = original
		}
		results = append(results, &domain.AnalysisResult{
			EmployeeName: strings.TrimSpace(item.EmployeeName),
			Action:       domain.ActionAddNote,
			Content:      content,
			Category:     domain.ParseCategory(item.Category),
			Confidence:   domain.ParseConfidence(item.Confidence),
			RawResponse:  response,
		})
	}
	return results, true
}

var fencedBlock = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*\\n?(.*?)\\n?```")

// extractJSONPayload digs the JSON document out of a model response
// that may wrap it in prose or a fenced code block. preferArray
// controls which bracket kind is scanned for first.
func extractJSONPayload(text string, preferArray bool) string {
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	text = strings.TrimSpace(text)

	first, second := "{}", "[]"
	if preferArray {
		first, second = "[]", "{}"
	}
	if payload := extractBalanced(text, rune(first[0]), rune(first[1])); payload != "" {
		return payload
	}
	return extractBalanced(text, rune(second[0]), rune(second[1]))
}

// extractBalanced returns the first balanced open...close span in text.
func extractBalanced(text string, open, close rune) string {
	depth := 0
	start := -1
	for i, r := range text {
		switch r {
		case open:
			if depth == 0 {
				start = i
			}
			depth++
		case close:
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : i+len(string(close))]
			}
		}
	}
	return ""
}

const categoryCriteria = `カテゴリの判定基準：
- vacation: 有給、休暇、休み関連
- health: 体調、健康、病気関連
- schedule: 会議、予定、打ち合わせ関連
- performance: 評価、成果、成績関連
- personal: 家族、結婚など個人的な情報
- uncategorized: 上記に該当しない場合`

func singleAnalysisPrompt(content string) string {
	return fmt.Sprintf(`以下のテキストから従業員に関する情報を抽出してください。

入力テキスト: %s

以下のJSONオブジェクトのみを出力してください。説明文やマークダウンは一切含めないでください：
{
  "employeeName": "従業員の姓（特定できない場合は空文字）",
  "action": "add_note",
  "content": "該当する元テキスト",
  "category": "vacation|health|schedule|performance|personal|uncategorized",
  "confidence": "high|medium|low"
}

%s`, content, categoryCriteria)
}

func multipleAnalysisPrompt(content string) string {
	return fmt.Sprintf(`以下のテキストを文ごとに分割し、各文から従業員に関する情報を抽出してください。

入力テキスト: %s

以下の形式のJSON配列のみを出力してください。説明文やマークダウンは一切含めないでください：
[
  {
    "employeeName": "従業員の姓（特定できない場合は空文字）",
    "action": "add_note",
    "content": "該当する文",
    "category": "vacation|health|schedule|performance|personal|uncategorized",
    "confidence": "high|medium|low"
  }
]

%s`, content, categoryCriteria)
}
