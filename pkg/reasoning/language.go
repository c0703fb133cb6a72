package reasoning

import (
	"unicode"

	"golang.org/x/text/language"
)

// scriptTags maps a detected dominant script to the BCP-47 tag used in the
// language instruction, per SPEC_FULL §4.6. This is a local, pre-gateway
// heuristic over the prompt's own runes — it never consults the LLM and
// never bypasses the gateway (the Open Question in §9 only concerns Brief
// generation itself, which always goes through the gateway here).
var scriptTags = []struct {
	in  *unicode.RangeTable
	tag string
}{
	{unicode.Han, "zh"},
	{unicode.Hiragana, "ja"},
	{unicode.Katakana, "ja"},
	{unicode.Hangul, "ko"},
	{unicode.Arabic, "ar"},
	{unicode.Hebrew, "he"},
}

// DetectLanguage returns a canonical BCP-47 tag for prompt's dominant
// script, falling back to English when the text is ambiguous (all-Latin,
// or too short to have a majority script).
func DetectLanguage(prompt string) string {
	counts := make(map[string]int, len(scriptTags))
	var total int
	for _, r := range prompt {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsDigit(r) {
			continue
		}
		total++
		for _, st := range scriptTags {
			if unicode.Is(st.in, r) {
				counts[st.tag]++
				break
			}
		}
	}

	best := "en"
	bestN := 0
	for tag, n := range counts {
		if n > bestN {
			best, bestN = tag, n
		}
	}
	if total == 0 || bestN*2 < total {
		best = "en"
	}

	return language.Make(best).String()
}
