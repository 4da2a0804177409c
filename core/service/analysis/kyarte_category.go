package analysis

import (
	"strings"

	"kyarte_server/core/domain"
)

// categoryKeywords is scanned in order; the first group with a keyword
// hit wins, so vacation outranks health, health outranks schedule, and
// so on. "休みで体調不良" is therefore vacation, not health.
var categoryKeywords = []struct {
	category domain.Category
	keywords []string
}{
	{domain.CategoryVacation, []string{"有給", "休暇", "休み", "休む"}},
	{domain.CategoryHealth, []string{"体調", "健康", "病気", "風邪", "具合", "調子"}},
	{domain.CategorySchedule, []string{"会議", "予定", "打ち合わせ", "ミーティング"}},
	{domain.CategoryPerformance, []string{"評価", "成果", "成績", "実績"}},
	{domain.CategoryPersonal, []string{"家族", "結婚", "引っ越し", "転勤"}},
}

// Categorize assigns a statement to one of the fixed categories by
// keyword lookup. Statements with no keyword are uncategorized.
func Categorize(statement string) domain.Category {
	lowered := strings.ToLower(statement)
	for _, group := range categoryKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(lowered, keyword) {
				return group.category
			}
		}
	}
	return domain.CategoryUncategorized
}
