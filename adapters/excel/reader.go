package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"geospec/domain/core"
	"geospec/internal/errors"
)

// Samples is a paired set of observation coordinates in degrees.
type Samples struct {
	Lats []float64
	Lons []float64
}

// Len returns the number of sample points.
func (s Samples) Len() int { return len(s.Lats) }

// SampleReader reads (latitude, longitude) sample points from Excel or CSV
// field-data files.
type SampleReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewSampleReader creates a reader that dispatches on the file extension.
func NewSampleReader(filePath string) *SampleReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &SampleReader{filePath: filePath, fileType: fileType}
}

// Read loads the sample points. Excel files are read from Sheet1. An
// optional header row naming latitude/longitude columns is honored;
// otherwise the first two columns are taken as latitude then longitude.
func (r *SampleReader) Read() (Samples, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return Samples{}, errors.IOError(fmt.Sprintf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath), err)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return Samples{}, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, r.fileType)
	}
}

func (r *SampleReader) readExcel() (Samples, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return Samples{}, errors.IOError("failed to open Excel file", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return Samples{}, errors.IOError("failed to read Sheet1", err)
	}
	return parseRows(rows)
}

func (r *SampleReader) readCSV() (Samples, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return Samples{}, errors.IOError("failed to open CSV file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return Samples{}, errors.IOError("failed to read CSV file", err)
	}
	return parseRows(records)
}

func parseRows(rows [][]string) (Samples, error) {
	latCol, lonCol := 0, 1
	start := 0
	if len(rows) > 0 && isHeader(rows[0]) {
		latCol, lonCol = headerColumns(rows[0])
		start = 1
	}

	samples := Samples{}
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}
		if len(row) <= latCol || len(row) <= lonCol {
			return Samples{}, core.NewMalformedRecordError(i+1, fmt.Errorf("row has %d columns", len(row)))
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(row[latCol]), 64)
		if err != nil {
			return Samples{}, core.NewMalformedRecordError(i+1, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(row[lonCol]), 64)
		if err != nil {
			return Samples{}, core.NewMalformedRecordError(i+1, err)
		}
		samples.Lats = append(samples.Lats, lat)
		samples.Lons = append(samples.Lons, lon)
	}
	return samples, nil
}

// isHeader reports whether the first row names its columns instead of
// holding numbers.
func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
	return err != nil
}

func headerColumns(header []string) (latCol, lonCol int) {
	latCol, lonCol = 0, 1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "lat", "latitude":
			latCol = i
		case "lon", "long", "lng", "longitude":
			lonCol = i
		}
	}
	return latCol, lonCol
}
