package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	cdfa "Glidepath/internal/calc/cdfa"
)

// DmeRecords flattens the DME table to CSV-shaped records, header first.
func DmeRecords(res cdfa.Result) [][]string {
	records := [][]string{{"fix", "dme_nm", "altitude_ft"}}
	for _, f := range res.DmeTable.Fixes {
		records = append(records, []string{
			f.Label,
			fmt.Sprintf("%.2f", f.DistanceNm),
			fmt.Sprintf("%.0f", f.AltitudeFt),
		})
	}
	return records
}

// RodRecords flattens the ROD table to CSV-shaped records, header first.
func RodRecords(res cdfa.Result) [][]string {
	records := [][]string{{"ground_speed_kt", "rod_ft_min", "time_min"}}
	for _, row := range res.RodTable.Rows {
		records = append(records, []string{
			fmt.Sprintf("%.0f", row.GroundSpeedKt),
			fmt.Sprintf("%.0f", row.RateOfDescentFtPerMin),
			fmt.Sprintf("%.2f", row.TimeMinFafToMapt),
		})
	}
	return records
}

// WriteCsv writes the geometry scalars and both tables as one flat CSV
// stream: two geometry lines, the DME records, then the ROD records.
func WriteCsv(w io.Writer, res cdfa.Result) error {
	records := [][]string{
		{"glide_path_angle_deg", fmt.Sprintf("%.2f", res.Geometry.AngleDeg)},
		{"gradient_percent", fmt.Sprintf("%.2f", res.Geometry.GradientPercent)},
	}
	records = append(records, DmeRecords(res)...)
	records = append(records, RodRecords(res)...)

	cw := csv.NewWriter(w)
	for _, rec := range records {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXlsx writes DME and ROD tables as two sheets of a workbook.
// Numeric columns are written as float64 so the cells stay numbers in
// Excel instead of preformatted text.
func WriteXlsx(w io.Writer, res cdfa.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	const dmeSheet = "DME Table"
	f.SetSheetName(f.GetSheetName(0), dmeSheet)
	if err := setRow(f, dmeSheet, 1, "fix", "dme_nm", "altitude_ft"); err != nil {
		return err
	}
	for i, fix := range res.DmeTable.Fixes {
		if err := setRow(f, dmeSheet, i+2, fix.Label, fix.DistanceNm, fix.AltitudeFt); err != nil {
			return err
		}
	}

	const rodSheet = "ROD Table"
	if _, err := f.NewSheet(rodSheet); err != nil {
		return err
	}
	if err := setRow(f, rodSheet, 1, "ground_speed_kt", "rod_ft_min", "time_min"); err != nil {
		return err
	}
	for i, row := range res.RodTable.Rows {
		if err := setRow(f, rodSheet, i+2,
			row.GroundSpeedKt, row.RateOfDescentFtPerMin, row.TimeMinFafToMapt); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
