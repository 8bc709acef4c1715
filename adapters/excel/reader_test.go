package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "samples.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestReadCSVWithHeader(t *testing.T) {
	path := writeTempCSV(t, "latitude,longitude\n10.5,-20.25\n-45,170\n")

	samples, err := NewSampleReader(path).Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if samples.Len() != 2 {
		t.Fatalf("read %d samples, want 2", samples.Len())
	}
	if samples.Lats[0] != 10.5 || samples.Lons[0] != -20.25 {
		t.Errorf("first sample = (%g, %g), want (10.5, -20.25)", samples.Lats[0], samples.Lons[0])
	}
}

func TestReadCSVHeadless(t *testing.T) {
	path := writeTempCSV(t, "0,0\n0,90\n0,180\n0,270\n")

	samples, err := NewSampleReader(path).Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if samples.Len() != 4 {
		t.Fatalf("read %d samples, want 4", samples.Len())
	}
	if samples.Lons[3] != 270 {
		t.Errorf("last longitude = %g, want 270", samples.Lons[3])
	}
}

func TestReadCSVSwappedHeaderColumns(t *testing.T) {
	path := writeTempCSV(t, "lon,lat\n30,60\n")

	samples, err := NewSampleReader(path).Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if samples.Lats[0] != 60 || samples.Lons[0] != 30 {
		t.Errorf("sample = (%g, %g), want (60, 30)", samples.Lats[0], samples.Lons[0])
	}
}

func TestReadCSVMalformed(t *testing.T) {
	path := writeTempCSV(t, "lat,lon\nabc,def\n")

	if _, err := NewSampleReader(path).Read(); err == nil {
		t.Fatal("expected malformed record error")
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := NewSampleReader("/nonexistent/samples.csv").Read(); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadExcelMatchesCSV(t *testing.T) {
	dir := t.TempDir()
	xlsxPath := filepath.Join(dir, "samples.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"lat", "lon"},
		{12.5, -30.0},
		{-60.0, 145.5},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(xlsxPath); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}
	f.Close()

	csvPath := writeTempCSV(t, "lat,lon\n12.5,-30\n-60,145.5\n")

	fromExcel, err := NewSampleReader(xlsxPath).Read()
	if err != nil {
		t.Fatalf("read xlsx: %v", err)
	}
	fromCSV, err := NewSampleReader(csvPath).Read()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	if fromExcel.Len() != fromCSV.Len() {
		t.Fatalf("xlsx read %d samples, csv read %d", fromExcel.Len(), fromCSV.Len())
	}
	for i := range fromExcel.Lats {
		if fromExcel.Lats[i] != fromCSV.Lats[i] || fromExcel.Lons[i] != fromCSV.Lons[i] {
			t.Errorf("sample %d differs: xlsx (%g, %g) vs csv (%g, %g)",
				i, fromExcel.Lats[i], fromExcel.Lons[i], fromCSV.Lats[i], fromCSV.Lons[i])
		}
	}
}
