package analysis

import (
	_ "embed"
	"strings"
)

//go:embed surnames.txt
var surnameData string

var knownSurnames = loadSurnames(surnameData)

func loadSurnames(data string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[line] = struct{}{}
	}
	return set
}

// IsKnownSurname reports whether name is in the bundled dictionary of
// common Japanese and katakana surnames.
func IsKnownSurname(name string) bool {
	_, ok := knownSurnames[name]
	return ok
}
