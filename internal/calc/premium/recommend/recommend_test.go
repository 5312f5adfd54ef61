package recommend

import (
	"math"
	"testing"
)

func TestAngleAdvisory(t *testing.T) {
	res, err := AngleAdvisory(AngleAdvisoryInput{
		MdaFt:          800,
		FafAltitudeFt:  2233, // about a 3 degree leg
		FafDistanceNm:  5.2,
		MaptDistanceNm: 0.7,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.InWindow {
		t.Errorf("angle %v should be inside the window", res.AngleDeg)
	}

	// MDA + tan(3 deg) * 4.5 NM, rounded to whole feet.
	want := math.Round(800 + math.Tan(3.0*math.Pi/180)*4.5*6076.12)
	if res.NominalFafAltitudeFt != want {
		t.Errorf("nominal FAF altitude %v; expected %v", res.NominalFafAltitudeFt, want)
	}
}

func TestAngleOutsideWindow(t *testing.T) {
	res, err := AngleAdvisory(AngleAdvisoryInput{
		MdaFt:          800,
		FafAltitudeFt:  4500, // steep leg
		FafDistanceNm:  5.2,
		MaptDistanceNm: 0.7,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.InWindow {
		t.Errorf("angle %v should be outside the window", res.AngleDeg)
	}
}

func TestAdvisoryInvalidInput(t *testing.T) {
	bad := []AngleAdvisoryInput{
		{MdaFt: 800, FafAltitudeFt: 3000, FafDistanceNm: 0.7, MaptDistanceNm: 5.2},
		{MdaFt: 800, FafAltitudeFt: 700, FafDistanceNm: 5.2, MaptDistanceNm: 0.7},
	}
	for _, in := range bad {
		if _, err := AngleAdvisory(in); err == nil {
			t.Errorf("expected error for %+v", in)
		}
	}
}
