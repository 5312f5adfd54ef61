package cdfa

import (
	"fmt"

	dmetable "Glidepath/internal/calc/dmetable"
	geometry "Glidepath/internal/calc/geometry"
	rod "Glidepath/internal/calc/rod"
)

// Input is one descent-parameter snapshot. The embedded table input carries
// the altitude set, the DME distances and the step-down fixes; the extra
// fields select the geometry and ROD policies.
type Input struct {
	dmetable.Input
	SlantRange       bool     `json:"slant_range"`
	VerticalOffsetFt float64  `json:"vertical_offset_ft"`
	RodMode          rod.Mode `json:"rod_mode"`
}

type Result struct {
	Geometry geometry.Result `json:"geometry"`
	DmeTable dmetable.Result `json:"dme_table"`
	RodTable rod.Result      `json:"rod_table"`
	Warnings []string        `json:"warnings,omitempty"`
	Notes    string          `json:"notes"`
}

// Calculate runs the full profile computation for one snapshot: glide-path
// geometry over the FAF-MAPt leg, the DME/altitude table, and the ROD table.
// One call, one deterministic result; nothing is shared between calls.
func Calculate(in Input) (Result, error) {
	altitudeDrop := in.FafAltitudeFt - in.MdaFt
	legDistance := in.FafDistanceNm - in.MaptDistanceNm

	geo, err := geometry.Calculate(geometry.Input{
		AltitudeDiffFt:       altitudeDrop,
		HorizontalDistanceNm: legDistance,
		SlantRange:           in.SlantRange,
		VerticalOffsetFt:     in.VerticalOffsetFt,
	})
	if err != nil {
		return Result{}, fmt.Errorf("geometry: %w", err)
	}

	table, err := dmetable.Calculate(in.Input)
	if err != nil {
		return Result{}, fmt.Errorf("dme table: %w", err)
	}

	rodRes, err := rod.Calculate(rod.Input{
		AltitudeDropFt:      altitudeDrop,
		FafToMaptDistanceNm: legDistance,
		GlidePathAngleDeg:   geo.AngleDeg,
		Mode:                in.RodMode,
	})
	if err != nil {
		return Result{}, fmt.Errorf("rod table: %w", err)
	}

	var warnings []string
	if legDistance <= 0 {
		warnings = append(warnings, "FAF is not outside the MAPt; degenerate leg geometry")
	}
	if altitudeDrop < 0 {
		warnings = append(warnings, "FAF altitude is below MDA; inverted profile")
	}
	warnings = append(warnings, table.Warnings...)

	return Result{
		Geometry: geo,
		DmeTable: table,
		RodTable: rodRes,
		Warnings: warnings,
		Notes:    "CDFA profile for one parameter snapshot.",
	}, nil
}
