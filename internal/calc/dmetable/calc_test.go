package dmetable

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func baseInput() Input {
	return Input{
		ThresholdElevationFt: 50,
		MdaFt:                800,
		FafAltitudeFt:        3000,
		FafDistanceNm:        5.2,
		MaptDistanceNm:       0.7,
		ThresholdDistanceNm:  0.2,
	}
}

func TestTwoAnchorInterpolation(t *testing.T) {
	res, err := Calculate(baseInput())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Fixes) != MaxRows {
		t.Fatalf("got %d rows; expected %d", len(res.Fixes), MaxRows)
	}
	if res.Fixes[0].Label != "FAF" || res.Fixes[0].AltitudeFt != 3000 {
		t.Errorf("first row %+v; expected FAF at 3000 ft", res.Fixes[0])
	}
	last := res.Fixes[len(res.Fixes)-1]
	if last.Label != "MAPt" || last.AltitudeFt != 800 {
		t.Errorf("last row %+v; expected MAPt at 800 ft", last)
	}
	for _, f := range res.Fixes[1 : len(res.Fixes)-1] {
		if f.Label != "" {
			t.Errorf("interpolated row at %.2f NM has label %q", f.DistanceNm, f.Label)
		}
	}
	for i := 1; i < len(res.Fixes); i++ {
		if res.Fixes[i].DistanceNm >= res.Fixes[i-1].DistanceNm {
			t.Errorf("distances not strictly decreasing at row %d", i)
		}
		if res.Fixes[i].AltitudeFt > res.Fixes[i-1].AltitudeFt {
			t.Errorf("altitudes climb at row %d", i)
		}
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestToleranceMerge(t *testing.T) {
	in := baseInput()
	in.FafDistanceNm = 5.0
	in.MatchToleranceNm = 0.05
	in.StepDownFixes = []StepDownFix{
		{DistanceNm: 3.00, AltitudeFt: 2000},
		{DistanceNm: 3.04, AltitudeFt: 1900},
	}
	res, err := Calculate(in)
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, f := range res.Fixes {
		if math.Abs(f.DistanceNm-3.00) < 0.001 {
			t.Errorf("anchor at 3.00 NM should have been replaced: %+v", f)
		}
		if math.Abs(f.DistanceNm-3.04) < 0.001 {
			found = true
			if f.AltitudeFt != 1900 || f.Label != "SDF2" {
				t.Errorf("merged fix %+v; expected SDF2 at 1900 ft", f)
			}
		}
	}
	if !found {
		t.Error("merged fix at 3.04 NM missing")
	}
}

func TestToleranceChainMerge(t *testing.T) {
	// Three step-down fixes where the last is within tolerance of both
	// earlier ones, but the earlier two are not within tolerance of each
	// other. All three must collapse to the last-defined fix; a pairwise
	// merge that stops at the first match would leave SDF2 and SDF3
	// 0.09 NM apart and a climbing segment between them.
	in := baseInput()
	in.MatchToleranceNm = 0.10
	in.StepDownFixes = []StepDownFix{
		{DistanceNm: 3.00, AltitudeFt: 2100},
		{DistanceNm: 3.18, AltitudeFt: 2000},
		{DistanceNm: 3.09, AltitudeFt: 2050},
	}
	res, err := Calculate(in)
	if err != nil {
		t.Fatal(err)
	}

	var sdfs []Fix
	for _, f := range res.Fixes {
		if strings.HasPrefix(f.Label, "SDF") {
			sdfs = append(sdfs, f)
		}
	}
	if len(sdfs) != 1 || sdfs[0].Label != "SDF3" ||
		sdfs[0].DistanceNm != 3.09 || sdfs[0].AltitudeFt != 2050 {
		t.Errorf("step-down fixes %+v; expected only SDF3 at 3.09 NM / 2050 ft", sdfs)
	}

	for i := 1; i < len(res.Fixes); i++ {
		gap := res.Fixes[i-1].DistanceNm - res.Fixes[i].DistanceNm
		if gap <= in.MatchToleranceNm {
			t.Errorf("rows %d/%d within tolerance: %+v vs %+v",
				i-1, i, res.Fixes[i-1], res.Fixes[i])
		}
	}
	for _, warn := range res.Warnings {
		if strings.Contains(warn, "climbs") {
			t.Errorf("unexpected climb warning: %v", warn)
		}
	}
}

func TestOverflowDropsInnermostStepDown(t *testing.T) {
	in := Input{
		ThresholdElevationFt: 50,
		MdaFt:                900,
		FafAltitudeFt:        3400,
		FafDistanceNm:        6.0,
		MaptDistanceNm:       0.8,
		ThresholdDistanceNm:  0.2,
		IncludeThreshold:     true,
		StepDownFixes: []StepDownFix{
			{5.0, 3000}, {4.4, 2700}, {3.8, 2400},
			{3.2, 2100}, {2.6, 1800}, {2.0, 1500},
		},
	}
	res, err := Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Fixes) != MaxRows {
		t.Fatalf("got %d rows; expected %d", len(res.Fixes), MaxRows)
	}
	for _, f := range res.Fixes {
		if f.Label == "SDF6" {
			t.Error("innermost step-down fix should have been dropped")
		}
	}
	if res.Fixes[len(res.Fixes)-1].Label != "THR" {
		t.Errorf("last row %+v; expected THR", res.Fixes[len(res.Fixes)-1])
	}
	overflowWarned := false
	for _, warn := range res.Warnings {
		if strings.Contains(warn, "SDF6") {
			overflowWarned = true
		}
	}
	if !overflowWarned {
		t.Errorf("expected overflow warning naming SDF6, got %v", res.Warnings)
	}
}

func TestMdaClamp(t *testing.T) {
	in := baseInput()
	in.FafDistanceNm = 5.0
	in.MaptDistanceNm = 1.0
	in.MdaFt = 900
	in.StepDownFixes = []StepDownFix{{DistanceNm: 2.0, AltitudeFt: 700}}
	res, err := Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range res.Fixes {
		if f.DistanceNm >= in.MaptDistanceNm && f.AltitudeFt < in.MdaFt {
			t.Errorf("altitude %v ft at %.2f NM below MDA", f.AltitudeFt, f.DistanceNm)
		}
	}
	if len(res.Warnings) == 0 {
		t.Error("expected a below-MDA warning")
	}
}

func TestThresholdKeepsElevation(t *testing.T) {
	in := baseInput()
	in.IncludeThreshold = true
	res, err := Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	last := res.Fixes[len(res.Fixes)-1]
	if last.Label != "THR" || last.AltitudeFt != 50 {
		t.Errorf("threshold row %+v; expected THR at 50 ft", last)
	}
}

func TestIdempotent(t *testing.T) {
	in := baseInput()
	in.StepDownFixes = []StepDownFix{{DistanceNm: 3.1, AltitudeFt: 2100}}
	first, err := Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical input produced different output")
	}
}

func TestEndpointRoundTrip(t *testing.T) {
	res, err := Calculate(baseInput())
	if err != nil {
		t.Fatal(err)
	}
	first, last := res.Fixes[0], res.Fixes[len(res.Fixes)-1]

	again, err := Calculate(Input{
		MdaFt:          last.AltitudeFt,
		FafAltitudeFt:  first.AltitudeFt,
		FafDistanceNm:  first.DistanceNm,
		MaptDistanceNm: last.DistanceNm,
	})
	if err != nil {
		t.Fatal(err)
	}
	if again.Fixes[0].AltitudeFt != first.AltitudeFt {
		t.Errorf("FAF altitude %v; expected %v", again.Fixes[0].AltitudeFt, first.AltitudeFt)
	}
	if again.Fixes[len(again.Fixes)-1].AltitudeFt != last.AltitudeFt {
		t.Errorf("MAPt altitude %v; expected %v",
			again.Fixes[len(again.Fixes)-1].AltitudeFt, last.AltitudeFt)
	}
}

func TestInvalidInput(t *testing.T) {
	bad := []Input{
		{MdaFt: math.NaN(), FafAltitudeFt: 3000, FafDistanceNm: 5},
		{MdaFt: 800, FafAltitudeFt: -3000, FafDistanceNm: 5},
		{MdaFt: 800, FafAltitudeFt: 3000, FafDistanceNm: 0},
	}
	for _, in := range bad {
		if _, err := Calculate(in); err == nil {
			t.Errorf("expected error for %+v", in)
		}
	}

	in := baseInput()
	in.StepDownFixes = make([]StepDownFix, MaxStepDownFixes+1)
	for i := range in.StepDownFixes {
		in.StepDownFixes[i] = StepDownFix{DistanceNm: float64(i) + 1, AltitudeFt: 1000}
	}
	if _, err := Calculate(in); err == nil {
		t.Error("expected error for too many step-down fixes")
	}
}
