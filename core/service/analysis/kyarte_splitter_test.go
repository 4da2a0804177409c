package analysis

import (
	"reflect"
	"testing"
)

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "single statement without delimiter",
			content: "田中さんが有給を取りたいと言っていた",
			want:    []string{"田中さんが有給を取りたいと言っていた"},
		},
		{
			name:    "full stop separates statements",
			content: "田中さんが休む。佐藤は会議に出る。",
			want:    []string{"田中さんが休む", "佐藤は会議に出る"},
		},
		{
			name:    "newlines separate statements",
			content: "鈴木さんの体調が悪い\n高橋さんは来週会議",
			want:    []string{"鈴木さんの体調が悪い", "高橋さんは来週会議"},
		},
		{
			name:    "mixed delimiters and surrounding whitespace",
			content: " 田中さんが休む 。\r\n 佐藤は出張 ",
			want:    []string{"田中さんが休む", "佐藤は出張"},
		},
		{
			name:    "delimiter-only content falls back to the original",
			content: "。。。",
			want:    []string{"。。。"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitStatements(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitStatements(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}
