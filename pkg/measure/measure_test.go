package measure

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestMeasure_MonotoneInSize(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[A-Za-z ]{1,40}`).Draw(t, "text")
		small := rapid.Float64Range(8, 28).Draw(t, "small")
		large := rapid.Float64Range(28, 48).Draw(t, "large")
		w1, _ := Measure(text, RoleLatin, small, false)
		w2, _ := Measure(text, RoleLatin, large, false)
		if w2 < w1 {
			t.Fatalf("width not monotone: size %v -> %v, size %v -> %v", small, w1, large, w2)
		}
	})
}

func TestMeasure_CJKWidensText(t *testing.T) {
	latin, _ := Measure("hello world", RoleLatin, 18, false)
	cjk, _ := Measure("日本語のテキスト", RoleLatin, 18, false)
	if cjk <= 0 || latin <= 0 {
		t.Fatalf("expected positive widths, got latin=%v cjk=%v", latin, cjk)
	}
	if cjk <= latin {
		t.Errorf("expected CJK text to measure wider than Latin text, got latin=%v cjk=%v", latin, cjk)
	}
}

func TestMeasure_EmptyText(t *testing.T) {
	w, h := Measure("", RoleLatin, 18, false)
	if w != 0 {
		t.Errorf("expected zero width for empty text, got %v", w)
	}
	if h <= 0 {
		t.Errorf("expected positive height even for empty text, got %v", h)
	}
}

func TestFit_SingleLineFits(t *testing.T) {
	mt := Fit("OK", 3.5, RoleLatin, 10, 24, true)
	if !mt.Fits {
		t.Fatalf("expected short text to fit")
	}
	if len(mt.Lines) != 1 {
		t.Errorf("expected 1 line, got %d", len(mt.Lines))
	}
	if err := mt.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestFit_WrapsToTwoLines(t *testing.T) {
	mt := Fit("Enterprise Resource Planning Platform", 2.0, RoleLatin, 10, 24, true)
	if err := mt.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if !mt.Fits {
		t.Fatalf("expected the label to fit on two lines")
	}
	if len(mt.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(mt.Lines))
	}
}

func TestFit_NarrowFiveWordLabelValidates(t *testing.T) {
	mt := Fit("Customer Relationship Management Integration Hub", 1.2, RoleLatin, 8, 14, true)
	if err := mt.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestFit_NothingFitsTruncates(t *testing.T) {
	text := strings.Repeat("supercalifragilisticexpialidocious ", 10)
	mt := Fit(text, 0.3, RoleLatin, 10, 10, true)
	if mt.Fits {
		t.Fatalf("expected fits=false for impossible width")
	}
	if len(mt.Lines) != 1 {
		t.Fatalf("expected single truncated line, got %d", len(mt.Lines))
	}
	runeLen := len([]rune(mt.Lines[0]))
	if runeLen > maxTruncatedChars+3 {
		t.Errorf("truncated line too long: %d runes", runeLen)
	}
}

func TestIsRTL(t *testing.T) {
	if !IsRTL("مرحبا") {
		t.Errorf("expected Arabic text to be RTL")
	}
	if !IsRTL("שלום") {
		t.Errorf("expected Hebrew text to be RTL")
	}
	if IsRTL("hello") {
		t.Errorf("expected Latin text to not be RTL")
	}
}
