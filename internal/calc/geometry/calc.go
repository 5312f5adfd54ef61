package geometry

import (
	"fmt"
	"math"
)

// FeetPerNm converts nautical miles to feet.
const FeetPerNm = 6076.12

type Input struct {
	AltitudeDiffFt       float64 `json:"altitude_diff_ft"`
	HorizontalDistanceNm float64 `json:"horizontal_distance_nm"`
	SlantRange           bool    `json:"slant_range"`
	VerticalOffsetFt     float64 `json:"vertical_offset_ft"`
}

type Result struct {
	AngleDeg        float64 `json:"angle_deg"`
	GradientPercent float64 `json:"gradient_percent"`
	GradientFtPerNm float64 `json:"gradient_ft_per_nm"`
	Notes           string  `json:"notes"`
}

// Calculate derives the glide-path angle and descent gradient from an
// altitude difference and a DME distance. A distance <= 0 is degenerate
// geometry (the caller has not supplied valid distances yet) and yields
// zeros rather than an error. Non-finite inputs are rejected.
func Calculate(in Input) (Result, error) {
	for _, v := range []float64{in.AltitudeDiffFt, in.HorizontalDistanceNm, in.VerticalOffsetFt} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, fmt.Errorf("non-finite input")
		}
	}

	if in.HorizontalDistanceNm <= 0 {
		return Result{Notes: "degenerate geometry: distance <= 0"}, nil
	}

	dist := in.HorizontalDistanceNm
	notes := "Glide path from horizontal DME distance."
	if in.SlantRange {
		// DME reads slant range; recover it from the horizontal distance
		// and the station vertical offset before taking the angle.
		vNm := in.VerticalOffsetFt / FeetPerNm
		dist = math.Sqrt(dist*dist + vNm*vNm)
		notes = "Glide path from slant-corrected DME distance."
	}

	ratio := in.AltitudeDiffFt / (dist * FeetPerNm)
	return Result{
		AngleDeg:        math.Atan(ratio) * 180.0 / math.Pi,
		GradientPercent: ratio * 100.0,
		GradientFtPerNm: in.AltitudeDiffFt / dist,
		Notes:           notes,
	}, nil
}
