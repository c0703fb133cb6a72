package measure

import (
	"strings"

	"github.com/infogen/core/pkg/units"
)

// maxTruncatedChars bounds the fallback single line returned when nothing
// fits even at the minimum size (§4.1).
const maxTruncatedChars = 30

// Fit scans font sizes from maxSizePt down to minSizePt (in whole points)
// and returns the MeasuredText for the largest size that fits text inside
// maxWidthIn, wrapping onto up to three lines. If no size fits, it returns
// a truncated single line at minSizePt with Fits=false.
func Fit(text string, maxWidthIn float64, family string, minSizePt, maxSizePt float64, bold bool) MeasuredText {
	effectiveWidth := maxWidthIn - 2*units.TextPaddingIn
	if effectiveWidth <= 0 {
		effectiveWidth = maxWidthIn
	}

	words := strings.Fields(text)

	for size := maxSizePt; size >= minSizePt; size-- {
		if mt, ok := tryFitAtSize(text, words, effectiveWidth, family, size, bold); ok {
			return mt
		}
	}

	return truncate(text, family, minSizePt, bold)
}

// tryFitAtSize attempts, in order, a single-line fit, a two-line word-split
// fit, and (for small enough sizes with enough words) an equal-thirds
// three-line fit, all at the given size.
func tryFitAtSize(text string, words []string, effectiveWidth float64, family string, size float64, bold bool) (MeasuredText, bool) {
	if w, _ := Measure(text, family, size, bold); w <= effectiveWidth {
		_, lineH := Measure(text, family, size, bold)
		return MeasuredText{
			Original:   text,
			Lines:      []string{text},
			FontSizePt: size,
			HeightIn:   lineH * 1.3,
			Fits:       true,
		}, true
	}

	if len(words) >= 2 {
		if lines, ok := splitTwoLines(words, effectiveWidth, family, size, bold); ok {
			_, lineH := Measure(text, family, size, bold)
			return MeasuredText{
				Original:   text,
				Lines:      lines,
				FontSizePt: size,
				HeightIn:   lineH * 1.3 * float64(len(lines)),
				Fits:       true,
			}, true
		}
	}

	if size <= 14 && len(words) >= 3 {
		if lines, ok := splitThreeLines(words, effectiveWidth, family, size, bold); ok {
			_, lineH := Measure(text, family, size, bold)
			return MeasuredText{
				Original:   text,
				Lines:      lines,
				FontSizePt: size,
				HeightIn:   lineH * 1.3 * float64(len(lines)),
				Fits:       true,
			}, true
		}
	}

	return MeasuredText{}, false
}

// splitTwoLines searches split points word-by-word, starting from the
// midpoint and expanding outward, for the first split where both halves
// fit within effectiveWidth.
func splitTwoLines(words []string, effectiveWidth float64, family string, size float64, bold bool) ([]string, bool) {
	mid := len(words) / 2
	for offset := 0; offset < len(words); offset++ {
		for _, idx := range []int{mid + offset, mid - offset} {
			if idx <= 0 || idx >= len(words) {
				continue
			}
			first := strings.Join(words[:idx], " ")
			second := strings.Join(words[idx:], " ")
			w1, _ := Measure(first, family, size, bold)
			w2, _ := Measure(second, family, size, bold)
			if w1 <= effectiveWidth && w2 <= effectiveWidth {
				return []string{first, second}, true
			}
		}
	}
	return nil, false
}

// splitThreeLines partitions words into three roughly equal groups by word
// count and checks each group fits within effectiveWidth.
func splitThreeLines(words []string, effectiveWidth float64, family string, size float64, bold bool) ([]string, bool) {
	n := len(words)
	per := (n + 2) / 3 // ceil(n/3)
	var lines []string
	for i := 0; i < n; i += per {
		end := i + per
		if end > n {
			end = n
		}
		lines = append(lines, strings.Join(words[i:end], " "))
	}
	if len(lines) != 3 {
		return nil, false
	}
	for _, line := range lines {
		if w, _ := Measure(line, family, size, bold); w > effectiveWidth {
			return nil, false
		}
	}
	return lines, true
}

// truncate builds the fits=false fallback: a single line capped at
// maxTruncatedChars plus an ellipsis, measured at minSizePt.
func truncate(text string, family string, minSizePt float64, bold bool) MeasuredText {
	runes := []rune(text)
	line := text
	if len(runes) > maxTruncatedChars {
		line = string(runes[:maxTruncatedChars]) + "..."
	}
	_, lineH := Measure(line, family, minSizePt, bold)
	return MeasuredText{
		Original:   text,
		Lines:      []string{line},
		FontSizePt: minSizePt,
		HeightIn:   lineH * 1.3,
		Fits:       false,
	}
}
