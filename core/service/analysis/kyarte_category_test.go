package analysis

import (
	"testing"

	"kyarte_server/core/domain"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		want      domain.Category
	}{
		{"vacation keyword", "田中さんが有給を取りたい", domain.CategoryVacation},
		{"health keyword", "鈴木さんの体調が悪そうだった", domain.CategoryHealth},
		{"schedule keyword", "来週の打ち合わせを設定する", domain.CategorySchedule},
		{"performance keyword", "今期の評価面談を実施", domain.CategoryPerformance},
		{"personal keyword", "佐藤さんが結婚するらしい", domain.CategoryPersonal},
		{"no keyword", "特に変わったことはない", domain.CategoryUncategorized},
		{"vacation outranks health", "休みで体調不良", domain.CategoryVacation},
		{"health outranks schedule", "風邪気味なので会議を欠席", domain.CategoryHealth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.statement); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.statement, got, tt.want)
			}
		})
	}
}
