package autodesign

import (
	"fmt"
	"math"

	cdfa "Glidepath/internal/calc/cdfa"
	dmetable "Glidepath/internal/calc/dmetable"
	geometry "Glidepath/internal/calc/geometry"
)

// ProfileAutoInput is a snapshot without a FAF altitude: the altitude is
// derived from the target glide-path angle, then the full profile is
// computed as usual.
type ProfileAutoInput struct {
	TargetAngleDeg       float64                `json:"target_angle_deg"`
	ThresholdElevationFt float64                `json:"threshold_elevation_ft"`
	MdaFt                float64                `json:"mda_ft"`
	FafDistanceNm        float64                `json:"faf_distance_nm"`
	MaptDistanceNm       float64                `json:"mapt_distance_nm"`
	ThresholdDistanceNm  float64                `json:"threshold_distance_nm"`
	IncludeThreshold     bool                   `json:"include_threshold"`
	StepDownFixes        []dmetable.StepDownFix `json:"step_down_fixes"`
}

type ProfileAutoResult struct {
	FafAltitudeFt float64     `json:"faf_altitude_ft"`
	Profile       cdfa.Result `json:"profile"`
	Notes         string      `json:"notes"`
}

// Profile sizes the FAF altitude for the target angle over the FAF-MAPt
// leg and runs the full profile computation with it.
func Profile(in ProfileAutoInput) (ProfileAutoResult, error) {
	leg := in.FafDistanceNm - in.MaptDistanceNm
	if leg <= 0 || in.MdaFt <= 0 {
		return ProfileAutoResult{}, fmt.Errorf("invalid input")
	}
	angle := in.TargetAngleDeg
	if angle <= 0 {
		angle = 3.0
	}

	fafAlt := math.Round(in.MdaFt + math.Tan(angle*math.Pi/180.0)*leg*geometry.FeetPerNm)

	profile, err := cdfa.Calculate(cdfa.Input{
		Input: dmetable.Input{
			ThresholdElevationFt: in.ThresholdElevationFt,
			MdaFt:                in.MdaFt,
			FafAltitudeFt:        fafAlt,
			FafDistanceNm:        in.FafDistanceNm,
			MaptDistanceNm:       in.MaptDistanceNm,
			ThresholdDistanceNm:  in.ThresholdDistanceNm,
			IncludeThreshold:     in.IncludeThreshold,
			StepDownFixes:        in.StepDownFixes,
		},
	})
	if err != nil {
		return ProfileAutoResult{}, err
	}

	return ProfileAutoResult{
		FafAltitudeFt: fafAlt,
		Profile:       profile,
		Notes:         fmt.Sprintf("FAF altitude sized for a %.2f deg glide path.", angle),
	}, nil
}
