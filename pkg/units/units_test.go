package units

import "testing"

func TestInchesToEMU(t *testing.T) {
	cases := []struct {
		inches float64
		want   int64
	}{
		{0, 0},
		{1, 914400},
		{SlideWidthIn, 12191695}, // 13.333 * 914400 rounded
		{0.1, 91440},
	}
	for _, c := range cases {
		if got := InchesToEMU(c.inches); got != c.want {
			t.Errorf("InchesToEMU(%v) = %d, want %d", c.inches, got, c.want)
		}
	}
}

func TestPointsToEMU(t *testing.T) {
	if got := PointsToEMU(1); got != EMUPerPoint {
		t.Errorf("PointsToEMU(1) = %d, want %d", got, EMUPerPoint)
	}
	if got := PointsToEMU(10); got != 10*EMUPerPoint {
		t.Errorf("PointsToEMU(10) = %d, want %d", got, 10*EMUPerPoint)
	}
}

func TestEMUToInches_RoundTrip(t *testing.T) {
	for _, in := range []float64{0.5, 1.0, 3.333, 7.5} {
		emu := InchesToEMU(in)
		back := EMUToInches(emu)
		if diff := back - in; diff > 0.0001 || diff < -0.0001 {
			t.Errorf("round trip for %v: got %v", in, back)
		}
	}
}

func TestContentDimensions(t *testing.T) {
	if w := ContentWidth(); w <= 0 || w >= SlideWidthIn {
		t.Errorf("ContentWidth() = %v, want in (0, %v)", w, SlideWidthIn)
	}
	if h := ContentHeight(); h <= 0 || h >= SlideHeightIn {
		t.Errorf("ContentHeight() = %v, want in (0, %v)", h, SlideHeightIn)
	}
}
