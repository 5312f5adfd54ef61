package importer

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	cdfa "Glidepath/internal/calc/cdfa"
	dmetable "Glidepath/internal/calc/dmetable"
)

type Handler struct{}

type ProfileImportResult struct {
	Count   int           `json:"count"`
	Results []cdfa.Result `json:"results"`
}

// Profiles computes one CDFA profile per spreadsheet row. Malformed rows
// are skipped, matching the form's role of filtering bad input.
func (h *Handler) Profiles(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	var results []cdfa.Result
	for i := 1; i < len(rows); i++ {
		input, err := parseProfileRow(rows[i])
		if err != nil {
			continue
		}
		res, err := cdfa.Calculate(input)
		if err != nil {
			continue
		}
		results = append(results, res)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ProfileImportResult{Count: len(results), Results: results})
}

// parseProfileRow reads one approach per row:
// thr_elev, mda, faf_alt, faf_dist, mapt_dist, thr_dist, then up to six
// SDF distance/altitude pairs. Trailing SDF cells may be absent.
func parseProfileRow(row []string) (cdfa.Input, error) {
	if len(row) < 5 {
		return cdfa.Input{}, fmt.Errorf("bad row")
	}
	thrElev, err := toFloat(row[0])
	if err != nil {
		return cdfa.Input{}, err
	}
	mda, err := toFloat(row[1])
	if err != nil {
		return cdfa.Input{}, err
	}
	fafAlt, err := toFloat(row[2])
	if err != nil {
		return cdfa.Input{}, err
	}
	fafDist, err := toFloat(row[3])
	if err != nil {
		return cdfa.Input{}, err
	}
	maptDist, err := toFloat(row[4])
	if err != nil {
		return cdfa.Input{}, err
	}
	thrDist := 0.0
	if len(row) > 5 && row[5] != "" {
		thrDist, _ = toFloat(row[5])
	}

	var sdfs []dmetable.StepDownFix
	for c := 6; c+1 < len(row) && len(sdfs) < dmetable.MaxStepDownFixes; c += 2 {
		if row[c] == "" || row[c+1] == "" {
			continue
		}
		d, err := toFloat(row[c])
		if err != nil {
			continue
		}
		a, err := toFloat(row[c+1])
		if err != nil {
			continue
		}
		sdfs = append(sdfs, dmetable.StepDownFix{DistanceNm: d, AltitudeFt: a})
	}

	return cdfa.Input{
		Input: dmetable.Input{
			ThresholdElevationFt: thrElev,
			MdaFt:                mda,
			FafAltitudeFt:        fafAlt,
			FafDistanceNm:        fafDist,
			MaptDistanceNm:       maptDist,
			ThresholdDistanceNm:  thrDist,
			IncludeThreshold:     thrDist > 0,
			StepDownFixes:        sdfs,
		},
	}, nil
}

func toFloat(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(s, "%f", &v)
	return v, err
}
