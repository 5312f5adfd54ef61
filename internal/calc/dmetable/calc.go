package dmetable

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	// MaxRows is the chart convention for DME/altitude tables.
	MaxRows = 8
	// MaxStepDownFixes is the most SDFs a procedure form accepts.
	MaxStepDownFixes = 6

	DefaultToleranceNm = 0.10
	MinToleranceNm     = 0.05
	MaxToleranceNm     = 0.15
)

type StepDownFix struct {
	DistanceNm float64 `json:"distance_nm"`
	AltitudeFt float64 `json:"altitude_ft"`
}

type Input struct {
	ThresholdElevationFt float64       `json:"threshold_elevation_ft"`
	MdaFt                float64       `json:"mda_ft"`
	FafAltitudeFt        float64       `json:"faf_altitude_ft"`
	FafDistanceNm        float64       `json:"faf_distance_nm"`
	MaptDistanceNm       float64       `json:"mapt_distance_nm"`
	ThresholdDistanceNm  float64       `json:"threshold_distance_nm"`
	IncludeThreshold     bool          `json:"include_threshold"`
	StepDownFixes        []StepDownFix `json:"step_down_fixes"`
	MatchToleranceNm     float64       `json:"match_tolerance_nm"`
}

// Fix is one row of the DME table. Altitude is rounded to whole feet.
// Interpolated rows carry an empty label.
type Fix struct {
	DistanceNm float64 `json:"distance_nm"`
	AltitudeFt float64 `json:"altitude_ft"`
	Label      string  `json:"label"`
}

type Result struct {
	Fixes    []Fix    `json:"fixes"`
	Warnings []string `json:"warnings,omitempty"`
	Notes    string   `json:"notes"`
}

// Calculate builds the ordered DME/altitude table: FAF, MAPt, optional THR
// and the step-down fixes are merged as anchors, deduplicated within the
// match tolerance (last-defined wins), sorted by decreasing distance, padded
// to MaxRows with interpolated rows, and clamped to MDA on the FAF-MAPt
// segment. Input validation proper (range checks, coercion) belongs to the
// form; only negative or non-finite values are rejected here. A profile
// that climbs toward the MAPt is reported as a warning, not repaired.
func Calculate(in Input) (Result, error) {
	if err := checkInput(in); err != nil {
		return Result{}, err
	}
	tol := in.MatchToleranceNm
	if tol <= 0 {
		tol = DefaultToleranceNm
	}
	tol = math.Min(math.Max(tol, MinToleranceNm), MaxToleranceNm)

	anchors := []Fix{
		{DistanceNm: in.FafDistanceNm, AltitudeFt: in.FafAltitudeFt, Label: "FAF"},
		{DistanceNm: in.MaptDistanceNm, AltitudeFt: in.MdaFt, Label: "MAPt"},
	}
	if in.IncludeThreshold {
		anchors = append(anchors, Fix{
			DistanceNm: in.ThresholdDistanceNm,
			AltitudeFt: in.ThresholdElevationFt,
			Label:      "THR",
		})
	}
	for i, sdf := range in.StepDownFixes {
		anchors = append(anchors, Fix{
			DistanceNm: sdf.DistanceNm,
			AltitudeFt: sdf.AltitudeFt,
			Label:      fmt.Sprintf("SDF%d", i+1),
		})
	}

	merged := dedupe(anchors, tol)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].DistanceNm > merged[j].DistanceNm
	})

	var warnings []string
	merged, warnings = truncate(merged, warnings)
	fixes := interpolate(merged, tol)

	// MDA is a hard floor from the FAF down to the MAPt. A THR row inside
	// the MAPt belongs to the visual segment and keeps its elevation.
	for i := range fixes {
		if fixes[i].DistanceNm >= in.MaptDistanceNm-tol && fixes[i].AltitudeFt < in.MdaFt {
			warnings = append(warnings, fmt.Sprintf(
				"altitude %d ft at %.2f NM is below MDA %d ft; clamped",
				int(math.Round(fixes[i].AltitudeFt)), fixes[i].DistanceNm, int(math.Round(in.MdaFt))))
			fixes[i].AltitudeFt = in.MdaFt
		}
	}

	for i := range fixes {
		fixes[i].AltitudeFt = math.Round(fixes[i].AltitudeFt)
	}

	for i := 1; i < len(fixes); i++ {
		if fixes[i].AltitudeFt > fixes[i-1].AltitudeFt {
			warnings = append(warnings, fmt.Sprintf(
				"profile climbs between %.2f NM and %.2f NM",
				fixes[i-1].DistanceNm, fixes[i].DistanceNm))
		}
	}

	return Result{
		Fixes:    fixes,
		Warnings: warnings,
		Notes:    "DME/altitude table, descending distance, interpolated rows unlabeled.",
	}, nil
}

func checkInput(in Input) error {
	vals := []float64{
		in.ThresholdElevationFt, in.MdaFt, in.FafAltitudeFt,
		in.FafDistanceNm, in.MaptDistanceNm, in.ThresholdDistanceNm,
		in.MatchToleranceNm,
	}
	for _, sdf := range in.StepDownFixes {
		vals = append(vals, sdf.DistanceNm, sdf.AltitudeFt)
	}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite input")
		}
		if v < 0 {
			return fmt.Errorf("negative input")
		}
	}
	if in.MdaFt <= 0 || in.FafAltitudeFt <= 0 || in.FafDistanceNm <= 0 {
		return fmt.Errorf("invalid input")
	}
	if len(in.StepDownFixes) > MaxStepDownFixes {
		return fmt.Errorf("too many step-down fixes (max %d)", MaxStepDownFixes)
	}
	return nil
}

// dedupe collapses anchors whose distances match within tol. The
// later-defined anchor wins and absorbs every earlier anchor within
// tolerance of it, not just the first, so chained near-matches still
// collapse to one canonical row. Kept rows are pairwise further than tol
// apart after every step.
func dedupe(anchors []Fix, tol float64) []Fix {
	var out []Fix
	for _, a := range anchors {
		kept := out[:0]
		for _, f := range out {
			if math.Abs(f.DistanceNm-a.DistanceNm) > tol {
				kept = append(kept, f)
			}
		}
		out = append(kept, a)
	}
	return out
}

// truncate enforces the MaxRows cap on anchors sorted by descending
// distance. Endpoints are never dropped; interior step-down fixes go
// first, innermost first, each with a warning naming the dropped fix.
func truncate(fixes []Fix, warnings []string) ([]Fix, []string) {
	for len(fixes) > MaxRows {
		drop := -1
		for i := len(fixes) - 2; i >= 1; i-- {
			if strings.HasPrefix(fixes[i].Label, "SDF") {
				drop = i
				break
			}
		}
		if drop < 0 {
			drop = len(fixes) - 2
		}
		warnings = append(warnings, fmt.Sprintf(
			"fix table overflow: dropped %s at %.2f NM",
			fixes[drop].Label, fixes[drop].DistanceNm))
		fixes = append(fixes[:drop], fixes[drop+1:]...)
	}
	return fixes, warnings
}

// interpolate pads the anchor list to MaxRows with unlabeled rows at evenly
// spaced distances, altitude linearly interpolated between the bracketing
// anchors. Candidate distances that land within tol of an anchor are
// skipped, so the result may stay short of MaxRows.
func interpolate(anchors []Fix, tol float64) []Fix {
	if len(anchors) < 2 || len(anchors) >= MaxRows {
		return anchors
	}
	first, last := anchors[0], anchors[len(anchors)-1]
	step := (first.DistanceNm - last.DistanceNm) / float64(MaxRows-1)
	if step <= 0 {
		return anchors
	}

	out := make([]Fix, len(anchors))
	copy(out, anchors)
	for k := 1; k < MaxRows-1 && len(out) < MaxRows; k++ {
		d := first.DistanceNm - float64(k)*step
		conflict := false
		for _, f := range out {
			if math.Abs(f.DistanceNm-d) <= tol {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}
		out = append(out, Fix{DistanceNm: d, AltitudeFt: altitudeAt(anchors, d)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceNm > out[j].DistanceNm
	})
	return out
}

// altitudeAt linearly interpolates between the two anchors bracketing d.
// anchors must be sorted by descending distance.
func altitudeAt(anchors []Fix, d float64) float64 {
	for i := 1; i < len(anchors); i++ {
		hi, lo := anchors[i-1], anchors[i]
		if d <= hi.DistanceNm && d >= lo.DistanceNm {
			span := hi.DistanceNm - lo.DistanceNm
			if span == 0 {
				return lo.AltitudeFt
			}
			t := (d - lo.DistanceNm) / span
			return lo.AltitudeFt + t*(hi.AltitudeFt-lo.AltitudeFt)
		}
	}
	if d > anchors[0].DistanceNm {
		return anchors[0].AltitudeFt
	}
	return anchors[len(anchors)-1].AltitudeFt
}
