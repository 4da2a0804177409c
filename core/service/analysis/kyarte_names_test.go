package analysis

import "testing"

func TestExtractName(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		want      string
	}{
		{
			name:      "さん honorific",
			statement: "田中さんが有給を取りたいと言っていた",
			want:      "田中",
		},
		{
			name:      "氏 honorific",
			statement: "山田氏の評価面談を行う",
			want:      "山田",
		},
		{
			name:      "surname before topic particle",
			statement: "佐藤は明日休む",
			want:      "佐藤",
		},
		{
			name:      "known surname before broad particle",
			statement: "鈴木で相談する",
			want:      "鈴木",
		},
		{
			name:      "statement-initial surname with no particle",
			statement: "佐藤来週有給",
			want:      "佐藤",
		},
		{
			name:      "longest dictionary prefix wins",
			statement: "高橋明日から出張",
			want:      "高橋",
		},
		{
			name:      "katakana surname at statement head",
			statement: "スミスさんと面談する",
			want:      "スミス",
		},
		{
			name:      "no name present",
			statement: "めっちゃ疲れた",
			want:      "",
		},
		{
			name:      "empty statement",
			statement: "",
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractName(tt.statement); got != tt.want {
				t.Errorf("ExtractName(%q) = %q, want %q", tt.statement, got, tt.want)
			}
		})
	}
}

func TestIsKnownSurname(t *testing.T) {
	for _, surname := range []string{"田中", "佐藤", "佐々木", "スミス"} {
		if !IsKnownSurname(surname) {
			t.Errorf("IsKnownSurname(%q) = false, want true", surname)
		}
	}
	if IsKnownSurname("存在しない") {
		t.Error("IsKnownSurname(存在しない) = true, want false")
	}
}
