package rod

import (
	"fmt"
	"math"
)

// GroundSpeedsKt is the standard ground-speed column set of ROD tables.
var GroundSpeedsKt = []float64{80, 100, 120, 140, 160}

// RodPerKnotPerDeg is the ft/min per knot per degree approximation used
// by standard descent-rate tables.
const RodPerKnotPerDeg = 101.3

type Mode string

const (
	// ModeTime derives ROD from the altitude drop over the FAF-MAPt leg time.
	ModeTime Mode = "time"
	// ModeAngle derives ROD from the glide-path angle.
	ModeAngle Mode = "angle"
)

type Input struct {
	AltitudeDropFt      float64 `json:"altitude_drop_ft"`
	FafToMaptDistanceNm float64 `json:"faf_to_mapt_distance_nm"`
	GlidePathAngleDeg   float64 `json:"glide_path_angle_deg"`
	Mode                Mode    `json:"mode"`
}

type Row struct {
	GroundSpeedKt         float64 `json:"ground_speed_kt"`
	RateOfDescentFtPerMin float64 `json:"rate_of_descent_ft_per_min"`
	TimeMinFafToMapt      float64 `json:"time_min_faf_to_mapt"`
}

type Result struct {
	Rows     []Row  `json:"rows"`
	ModeUsed Mode   `json:"mode_used"`
	Notes    string `json:"notes"`
}

// Calculate builds one ROD row per standard ground speed. When no mode is
// requested, the angle mode is used if an angle was supplied, otherwise the
// time mode. ROD is rounded to the nearest 10 ft/min, leg time kept at two
// decimals. Zero distance yields zero rows' values, never a failure.
func Calculate(in Input) (Result, error) {
	for _, v := range []float64{in.AltitudeDropFt, in.FafToMaptDistanceNm, in.GlidePathAngleDeg} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, fmt.Errorf("non-finite input")
		}
	}

	mode := in.Mode
	switch mode {
	case ModeTime, ModeAngle:
	case "":
		if in.GlidePathAngleDeg > 0 {
			mode = ModeAngle
		} else {
			mode = ModeTime
		}
	default:
		return Result{}, fmt.Errorf("unknown mode %q", in.Mode)
	}

	rows := make([]Row, 0, len(GroundSpeedsKt))
	for _, gs := range GroundSpeedsKt {
		timeMin := 0.0
		if gs > 0 {
			timeMin = in.FafToMaptDistanceNm / gs * 60.0
		}

		var rate float64
		switch mode {
		case ModeAngle:
			rate = gs * RodPerKnotPerDeg * math.Tan(in.GlidePathAngleDeg*math.Pi/180.0)
		default:
			if timeMin > 0 {
				rate = in.AltitudeDropFt / timeMin * 60.0
			}
		}

		rows = append(rows, Row{
			GroundSpeedKt:         gs,
			RateOfDescentFtPerMin: math.Round(rate/10.0) * 10.0,
			TimeMinFafToMapt:      math.Round(timeMin*100.0) / 100.0,
		})
	}

	return Result{
		Rows:     rows,
		ModeUsed: mode,
		Notes:    "ROD rounded to the nearest 10 ft/min, leg time to 0.01 min.",
	}, nil
}
