package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	cdfa "Glidepath/internal/calc/cdfa"
	dmetable "Glidepath/internal/calc/dmetable"
)

func testResult(t *testing.T) cdfa.Result {
	t.Helper()
	res, err := cdfa.Calculate(cdfa.Input{
		Input: dmetable.Input{
			MdaFt:          800,
			FafAltitudeFt:  3000,
			FafDistanceNm:  5.2,
			MaptDistanceNm: 0.7,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestCsvExport(t *testing.T) {
	res := testResult(t)

	var buf bytes.Buffer
	if err := WriteCsv(&buf, res); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"glide_path_angle_deg",
		"fix,dme_nm,altitude_ft",
		"FAF,5.20,3000",
		"MAPt,0.70,800",
		"ground_speed_kt,rod_ft_min,time_min",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("CSV missing %q:\n%s", want, out)
		}
	}
}

func TestRecordsMatchTables(t *testing.T) {
	res := testResult(t)

	dme := DmeRecords(res)
	if len(dme) != len(res.DmeTable.Fixes)+1 {
		t.Errorf("got %d DME records; expected %d rows plus header",
			len(dme), len(res.DmeTable.Fixes))
	}
	rod := RodRecords(res)
	if len(rod) != len(res.RodTable.Rows)+1 {
		t.Errorf("got %d ROD records; expected %d rows plus header",
			len(rod), len(res.RodTable.Rows))
	}
}

func TestXlsxExportNumericCells(t *testing.T) {
	res := testResult(t)

	var buf bytes.Buffer
	if err := WriteXlsx(&buf, res); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if label, _ := f.GetCellValue("DME Table", "A2"); label != "FAF" {
		t.Errorf("label cell %q; expected FAF", label)
	}
	if alt, _ := f.GetCellValue("DME Table", "C2"); alt != "3000" {
		t.Errorf("altitude cell %q; expected 3000", alt)
	}
	if gs, _ := f.GetCellValue("ROD Table", "A2"); gs != "80" {
		t.Errorf("ground-speed cell %q; expected 80", gs)
	}

	// Numeric columns must land as numbers, not preformatted text.
	for _, cell := range []struct{ sheet, ref string }{
		{"DME Table", "B2"},
		{"DME Table", "C2"},
		{"ROD Table", "B2"},
		{"ROD Table", "C2"},
	} {
		ct, err := f.GetCellType(cell.sheet, cell.ref)
		if err != nil {
			t.Fatal(err)
		}
		if ct == excelize.CellTypeSharedString || ct == excelize.CellTypeInlineString {
			t.Errorf("%s!%s stored as text", cell.sheet, cell.ref)
		}
	}
}
