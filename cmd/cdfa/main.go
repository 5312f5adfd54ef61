package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	cdfa "Glidepath/internal/calc/cdfa"
	export "Glidepath/internal/calc/export"
	report "Glidepath/internal/calc/report"
)

// Single-shot profile computation: one parameter snapshot in, tables on
// stdout, optional PDF/CSV/XLSX artifacts on disk.
func main() {
	inputPath := flag.String("input", "", "parameter snapshot JSON file")
	pdfPath := flag.String("pdf", "", "write PDF report to this path")
	csvPath := flag.String("csv", "", "write CSV export to this path")
	xlsxPath := flag.String("xlsx", "", "write Excel export to this path")
	title := flag.String("title", "CDFA Descent Profile", "report title")
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatal(err)
	}
	var params cdfa.Input
	if err := json.Unmarshal(data, &params); err != nil {
		log.Fatal("invalid parameter snapshot:", err)
	}

	res, err := cdfa.Calculate(params)
	if err != nil {
		log.Fatal("calculation error:", err)
	}

	printResult(res)

	if *pdfPath != "" {
		pdf := report.Build(report.Input{Title: *title, Params: params}, res)
		if err := pdf.OutputFileAndClose(*pdfPath); err != nil {
			log.Fatal("pdf:", err)
		}
		log.Println("wrote", *pdfPath)
	}
	if *csvPath != "" {
		writeFile(*csvPath, func(f *os.File) error { return export.WriteCsv(f, res) })
	}
	if *xlsxPath != "" {
		writeFile(*xlsxPath, func(f *os.File) error { return export.WriteXlsx(f, res) })
	}
}

func writeFile(path string, write func(*os.File) error) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		log.Fatal(path, ": ", err)
	}
	log.Println("wrote", path)
}

func printResult(res cdfa.Result) {
	fmt.Printf("Glide path: %.2f deg  (%.2f %%, %.0f ft/NM)\n\n",
		res.Geometry.AngleDeg, res.Geometry.GradientPercent, res.Geometry.GradientFtPerNm)

	fmt.Println("DME table:")
	fmt.Printf("  %-6s %10s %14s\n", "fix", "DME (NM)", "altitude (ft)")
	for _, f := range res.DmeTable.Fixes {
		fmt.Printf("  %-6s %10.2f %14.0f\n", f.Label, f.DistanceNm, f.AltitudeFt)
	}

	fmt.Println("\nROD table:")
	fmt.Printf("  %-8s %14s %12s\n", "GS (kt)", "ROD (ft/min)", "time (min)")
	for _, row := range res.RodTable.Rows {
		fmt.Printf("  %-8.0f %14.0f %12.2f\n",
			row.GroundSpeedKt, row.RateOfDescentFtPerMin, row.TimeMinFafToMapt)
	}

	for _, warn := range res.Warnings {
		fmt.Println("\nwarning:", warn)
	}
}
