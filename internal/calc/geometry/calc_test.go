package geometry

import (
	"math"
	"testing"
)

func TestDegenerateDistance(t *testing.T) {
	for _, dist := range []float64{0, -1, -5.2} {
		res, err := Calculate(Input{AltitudeDiffFt: 2350, HorizontalDistanceNm: dist})
		if err != nil {
			t.Fatalf("distance %v: unexpected error %v", dist, err)
		}
		if res.AngleDeg != 0 || res.GradientPercent != 0 || res.GradientFtPerNm != 0 {
			t.Errorf("distance %v: expected zero geometry, got %+v", dist, res)
		}
	}
}

func TestGlidePathAngle(t *testing.T) {
	res, err := Calculate(Input{AltitudeDiffFt: 2350, HorizontalDistanceNm: 5.2})
	if err != nil {
		t.Fatal(err)
	}

	wantAngle := math.Atan(2350/(5.2*FeetPerNm)) * 180 / math.Pi
	if math.Abs(res.AngleDeg-wantAngle) > 1e-9 {
		t.Errorf("angle %v; expected %v", res.AngleDeg, wantAngle)
	}
	if math.Abs(res.AngleDeg-4.25) > 0.05 {
		t.Errorf("angle %v; expected about 4.25 deg", res.AngleDeg)
	}
	if math.Abs(res.GradientPercent-7.44) > 0.05 {
		t.Errorf("gradient %v; expected about 7.44%%", res.GradientPercent)
	}
	if math.Abs(res.GradientFtPerNm-2350/5.2) > 1e-9 {
		t.Errorf("gradient %v ft/NM; expected %v", res.GradientFtPerNm, 2350/5.2)
	}
}

func TestSlantRangeCorrection(t *testing.T) {
	horizontal, _ := Calculate(Input{AltitudeDiffFt: 2350, HorizontalDistanceNm: 5.2})
	slant, err := Calculate(Input{
		AltitudeDiffFt:       2350,
		HorizontalDistanceNm: 5.2,
		SlantRange:           true,
		VerticalOffsetFt:     1000,
	})
	if err != nil {
		t.Fatal(err)
	}
	if slant.AngleDeg <= 0 || slant.AngleDeg >= horizontal.AngleDeg {
		t.Errorf("slant angle %v should be positive and below horizontal angle %v",
			slant.AngleDeg, horizontal.AngleDeg)
	}
}

func TestNonFiniteInput(t *testing.T) {
	for _, in := range []Input{
		{AltitudeDiffFt: math.NaN(), HorizontalDistanceNm: 5.2},
		{AltitudeDiffFt: 2350, HorizontalDistanceNm: math.Inf(1)},
	} {
		if _, err := Calculate(in); err == nil {
			t.Errorf("expected error for non-finite input %+v", in)
		}
	}
}
