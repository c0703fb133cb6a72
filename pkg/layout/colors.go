package layout

import (
	"fmt"
	"math"

	"github.com/infogen/core/pkg/brief"
)

// FillForEmphasis maps an entity's emphasis to a theme role, per §4.3:
// primary/secondary/accent take the matching theme color directly; normal
// takes a subdued tint of the primary color (+20% lightness).
func FillForEmphasis(e brief.Emphasis, theme brief.Theme) string {
	switch e {
	case brief.EmphasisPrimary:
		return theme.Primary
	case brief.EmphasisSecondary:
		return theme.Secondary
	case brief.EmphasisAccent:
		return theme.Accent
	default:
		return Lighten(theme.Primary, 0.2)
	}
}

// Lighten returns hex with its HSL lightness increased by delta (0..1),
// clamped to 1.0.
func Lighten(hex string, delta float64) string {
	r, g, b := hexToRGB(hex)
	h, s, l := rgbToHSL(r, g, b)
	l = math.Min(1, l+delta)
	r, g, b = hslToRGB(h, s, l)
	return rgbToHex(r, g, b)
}

// ContrastText chooses white ("ffffff") text for fills whose WCAG relative
// luminance is below the 0.5 threshold named in §4.3, and near-black
// ("1a1a1a") otherwise. theme is not consulted.
func ContrastText(fill string, theme brief.Theme) string {
	if relativeLuminance(fill) < 0.5 {
		return "ffffff"
	}
	return "1a1a1a"
}

func relativeLuminance(hex string) float64 {
	r, g, b := hexToRGB(hex)
	lin := func(c float64) float64 {
		c /= 255
		if c <= 0.03928 {
			return c / 12.92
		}
		return math.Pow((c+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(float64(r)) + 0.7152*lin(float64(g)) + 0.0722*lin(float64(b))
}

func hexToRGB(hex string) (r, g, b int) {
	if len(hex) != 6 {
		return 0, 0, 0
	}
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return
}

func rgbToHex(r, g, b int) string {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return v
	}
	return fmt.Sprintf("%02x%02x%02x", clamp(r), clamp(g), clamp(b))
}

func rgbToHSL(r, g, b int) (h, s, l float64) {
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	l = (max + min) / 2
	if max == min {
		return 0, 0, l
	}
	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}
	switch max {
	case rf:
		h = (gf - bf) / d
		if gf < bf {
			h += 6
		}
	case gf:
		h = (bf-rf)/d + 2
	case bf:
		h = (rf-gf)/d + 4
	}
	h *= 60
	return h, s, l
}

func hslToRGB(h, s, l float64) (r, g, b int) {
	if s == 0 {
		v := int(math.Round(l * 255))
		return v, v, v
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	hk := h / 360
	toRGB := func(t float64) float64 {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		switch {
		case t < 1.0/6:
			return p + (q-p)*6*t
		case t < 1.0/2:
			return q
		case t < 2.0/3:
			return p + (q-p)*(2.0/3-t)*6
		default:
			return p
		}
	}
	r = int(math.Round(toRGB(hk+1.0/3) * 255))
	g = int(math.Round(toRGB(hk) * 255))
	b = int(math.Round(toRGB(hk-1.0/3) * 255))
	return
}
