package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/phpdave11/gofpdf"

	cdfa "Glidepath/internal/calc/cdfa"
	dmetable "Glidepath/internal/calc/dmetable"
	rod "Glidepath/internal/calc/rod"
)

type Input struct {
	Procedure string     `json:"procedure"`
	Designer  string     `json:"designer"`
	Title     string     `json:"title"`
	Params    cdfa.Input `json:"params"`
}

type Handler struct{}

// Generate renders the CDFA report: parameter echo, glide-path geometry,
// DME and ROD tables and a profile-view plot. The core is invoked exactly
// once; everything after that is serialization of the one result.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "CDFA Descent Profile"
	}

	res, err := cdfa.Calculate(input.Params)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}

	pdf := Build(input, res)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"cdfa-report.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

// Build lays out the report document from an already-computed result.
func Build(input Input, res cdfa.Result) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	writeHeader(pdf, input)
	writeGeometry(pdf, res)
	writeDmeTable(pdf, res.DmeTable)
	writeRodTable(pdf, res.RodTable)
	drawProfile(pdf, res.DmeTable.Fixes, input.Params.MdaFt)
	writeWarnings(pdf, res.Warnings)
	return pdf
}

func writeHeader(pdf *gofpdf.Fpdf, input Input) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Procedure: %s", input.Procedure))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Designer: %s", input.Designer))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)
}

func writeGeometry(pdf *gofpdf.Fpdf, res cdfa.Result) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Glide Path")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Angle: %.2f deg    Gradient: %.2f %%    %.0f ft/NM",
		res.Geometry.AngleDeg, res.Geometry.GradientPercent, res.Geometry.GradientFtPerNm))
	pdf.Ln(10)
}

func writeDmeTable(pdf *gofpdf.Fpdf, table dmetable.Result) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "DME / Altitude")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(30, 7, "Fix", "1", 0, "C", false, 0, "")
	for _, f := range table.Fixes {
		pdf.CellFormat(18, 7, f.Label, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(30, 7, "DME (NM)", "1", 0, "C", false, 0, "")
	for _, f := range table.Fixes {
		pdf.CellFormat(18, 7, fmt.Sprintf("%.1f", f.DistanceNm), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.CellFormat(30, 7, "Altitude (ft)", "1", 0, "C", false, 0, "")
	for _, f := range table.Fixes {
		pdf.CellFormat(18, 7, fmt.Sprintf("%.0f", f.AltitudeFt), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(12)
}

func writeRodTable(pdf *gofpdf.Fpdf, table rod.Result) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Rate of Descent")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(36, 7, "GS (kt)", "1", 0, "C", false, 0, "")
	for _, row := range table.Rows {
		pdf.CellFormat(24, 7, fmt.Sprintf("%.0f", row.GroundSpeedKt), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(36, 7, "ROD (ft/min)", "1", 0, "C", false, 0, "")
	for _, row := range table.Rows {
		pdf.CellFormat(24, 7, fmt.Sprintf("%.0f", row.RateOfDescentFtPerMin), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.CellFormat(36, 7, "Time (min)", "1", 0, "C", false, 0, "")
	for _, row := range table.Rows {
		pdf.CellFormat(24, 7, fmt.Sprintf("%.2f", row.TimeMinFafToMapt), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(12)
}

// drawProfile plots the table in profile view: DME distance decreasing
// left to right, altitude decreasing top to bottom, MDA as a dashed
// reference line. The FAF sits at the top left.
func drawProfile(pdf *gofpdf.Fpdf, fixes []dmetable.Fix, mdaFt float64) {
	if len(fixes) < 2 {
		return
	}
	const (
		boxX = 20.0
		boxW = 170.0
		boxH = 60.0
	)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Profile View")
	pdf.Ln(8)
	boxY := pdf.GetY() + 2

	dMax, dMin := fixes[0].DistanceNm, fixes[len(fixes)-1].DistanceNm
	aMax, aMin := fixes[0].AltitudeFt, fixes[len(fixes)-1].AltitudeFt
	if mdaFt < aMin {
		aMin = mdaFt
	}
	if dMax <= dMin || aMax <= aMin {
		return
	}

	x := func(d float64) float64 { return boxX + (dMax-d)/(dMax-dMin)*boxW }
	y := func(a float64) float64 { return boxY + (aMax-a)/(aMax-aMin)*boxH }

	pdf.SetDrawColor(160, 160, 160)
	pdf.SetLineWidth(0.2)
	pdf.Rect(boxX, boxY, boxW, boxH, "D")

	pdf.SetDrawColor(200, 40, 40)
	pdf.SetDashPattern([]float64{2, 2}, 0)
	pdf.Line(boxX, y(mdaFt), boxX+boxW, y(mdaFt))
	pdf.SetDashPattern([]float64{}, 0)
	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(boxX+boxW-16, y(mdaFt)-1, fmt.Sprintf("MDA %.0f", mdaFt))

	pdf.SetDrawColor(40, 40, 200)
	pdf.SetLineWidth(0.4)
	for i := 1; i < len(fixes); i++ {
		pdf.Line(x(fixes[i-1].DistanceNm), y(fixes[i-1].AltitudeFt),
			x(fixes[i].DistanceNm), y(fixes[i].AltitudeFt))
	}
	for _, f := range fixes {
		pdf.Circle(x(f.DistanceNm), y(f.AltitudeFt), 0.8, "D")
		if f.Label != "" {
			pdf.Text(x(f.DistanceNm)-3, y(f.AltitudeFt)-2, f.Label)
		}
	}

	pdf.SetY(boxY + boxH + 8)
}

func writeWarnings(pdf *gofpdf.Fpdf, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 8, "Warnings")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 9)
	for _, warn := range warnings {
		pdf.MultiCell(0, 5, "- "+warn, "", "L", false)
	}
}
