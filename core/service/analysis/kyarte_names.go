package analysis

import "regexp"

// Name extraction patterns, tried in priority order. Honorifics are the
// strongest signal, then particle boundaries, then a dictionary-gated
// scan of the statement head.
var (
	// 田中さん
	honorificSan = regexp.MustCompile(`([\x{4e00}-\x{9fa5}]+)さん`)
	// 田中氏
	honorificShi = regexp.MustCompile(`([\x{4e00}-\x{9fa5}]+)氏`)
	// 2-4 kanji followed by a topic/case particle: 田中が, 佐藤は, ...
	particleName = regexp.MustCompile(`([\x{4e00}-\x{9fa5}]{2,4})(さん|氏|が|は|の|に|を|も|と|や|など|ら|たち|達)`)
	// 1-3 kanji before a broader particle set; only accepted when the
	// candidate is a known surname, since short matches are noisy.
	broadParticleName = regexp.MustCompile(`([\x{4e00}-\x{9fa5}]{1,3})(が|は|の|に|を|も|と|や|など|ら|たち|達|で|から|まで|より|へ|または|及び|並びに)`)
	// Statement-initial run of kanji, katakana or hiragana.
	leadingName = regexp.MustCompile(`^([\x{4e00}-\x{9fa5}\x{30a0}-\x{30ff}\x{3040}-\x{309f}]{1,4})`)
)

// ExtractName pulls the most plausible employee surname out of a single
// statement. It returns "" when no pattern matches, which callers treat
// as "statement is not about a specific person".
func ExtractName(statement string) string {
	if m := honorificSan.FindStringSubmatch(statement); m != nil {
		return m[1]
	}
	if m := honorificShi.FindStringSubmatch(statement); m != nil {
		return m[1]
	}
	if m := particleName.FindStringSubmatch(statement); m != nil {
		return m[1]
	}
	if m := broadParticleName.FindStringSubmatch(statement); m != nil && IsKnownSurname(m[1]) {
		return m[1]
	}
	if m := leadingName.FindStringSubmatch(statement); m != nil {
		// Longest dictionary hit wins: 佐々木さん before 佐々.
		runes := []rune(m[1])
		for length := len(runes); length >= 1; length-- {
			if candidate := string(runes[:length]); IsKnownSurname(candidate) {
				return candidate
			}
		}
	}
	return ""
}
