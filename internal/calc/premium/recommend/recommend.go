package recommend

import (
	"fmt"
	"math"

	geometry "Glidepath/internal/calc/geometry"
)

// CDFA design window per common procedure-design practice.
const (
	NominalAngleDeg = 3.0
	MinAngleDeg     = 2.5
	MaxAngleDeg     = 3.77
)

type AngleAdvisoryInput struct {
	MdaFt          float64 `json:"mda_ft"`
	FafAltitudeFt  float64 `json:"faf_altitude_ft"`
	FafDistanceNm  float64 `json:"faf_distance_nm"`
	MaptDistanceNm float64 `json:"mapt_distance_nm"`
}

type AngleAdvisoryResult struct {
	AngleDeg             float64 `json:"angle_deg"`
	InWindow             bool    `json:"in_window"`
	NominalFafAltitudeFt float64 `json:"nominal_faf_altitude_ft"`
	Notes                string  `json:"notes"`
}

// AngleAdvisory checks the glide-path angle of the FAF-MAPt leg against the
// CDFA design window and reports the FAF altitude that would put the leg on
// the nominal angle at the same distances.
func AngleAdvisory(in AngleAdvisoryInput) (AngleAdvisoryResult, error) {
	leg := in.FafDistanceNm - in.MaptDistanceNm
	if leg <= 0 || in.MdaFt <= 0 || in.FafAltitudeFt <= in.MdaFt {
		return AngleAdvisoryResult{}, fmt.Errorf("invalid input")
	}

	geo, err := geometry.Calculate(geometry.Input{
		AltitudeDiffFt:       in.FafAltitudeFt - in.MdaFt,
		HorizontalDistanceNm: leg,
	})
	if err != nil {
		return AngleAdvisoryResult{}, err
	}

	nominalFaf := in.MdaFt + math.Tan(NominalAngleDeg*math.Pi/180.0)*leg*geometry.FeetPerNm
	inWindow := geo.AngleDeg >= MinAngleDeg && geo.AngleDeg <= MaxAngleDeg

	notes := fmt.Sprintf("Angle within the %.1f-%.2f deg CDFA window.", MinAngleDeg, MaxAngleDeg)
	if !inWindow {
		notes = fmt.Sprintf("Angle outside the %.1f-%.2f deg CDFA window; adjust FAF altitude or distance.",
			MinAngleDeg, MaxAngleDeg)
	}

	return AngleAdvisoryResult{
		AngleDeg:             geo.AngleDeg,
		InWindow:             inWindow,
		NominalFafAltitudeFt: math.Round(nominalFaf),
		Notes:                notes,
	}, nil
}
