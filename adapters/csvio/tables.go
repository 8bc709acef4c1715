// Package csvio persists the analysis tables as delimited text: comma
// separated, no header row, no index column. It is a pass-through
// collaborator; nothing here transforms the numbers.
package csvio

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"geospec/domain/core"
	"geospec/domain/spherical"
	"geospec/internal/errors"
)

// WriteCoefficients writes rows of deg,ord,clm,slm.
func WriteCoefficients(w io.Writer, t spherical.CoefficientTable) error {
	cw := csv.NewWriter(w)
	for _, row := range t.Rows {
		record := []string{
			strconv.Itoa(row.Degree),
			strconv.Itoa(row.Order),
			formatFloat(row.C),
			formatFloat(row.S),
		}
		if err := cw.Write(record); err != nil {
			return errors.IOError("write coefficient row", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePower writes rows of degree,power.
func WritePower(w io.Writer, t spherical.PowerTable) error {
	cw := csv.NewWriter(w)
	for _, row := range t.Rows {
		if err := cw.Write([]string{strconv.Itoa(row.Degree), formatFloat(row.Power)}); err != nil {
			return errors.IOError("write power row", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCorrelation writes rows of deg,r followed by a min,max pair per
// confidence level in the table's level order.
func WriteCorrelation(w io.Writer, t spherical.CorrelationTable) error {
	cw := csv.NewWriter(w)
	for _, row := range t.Rows {
		record := make([]string, 0, 2+2*len(row.Bounds))
		record = append(record, strconv.Itoa(row.Degree), formatFloat(row.R))
		for _, bound := range row.Bounds {
			record = append(record, formatFloat(bound.Lower), formatFloat(bound.Upper))
		}
		if err := cw.Write(record); err != nil {
			return errors.IOError("write correlation row", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCoefficients parses a headerless deg,ord,clm,slm file. The maximum
// degree is inferred from the rows read.
func ReadCoefficients(r io.Reader) (spherical.CoefficientTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 4

	table := spherical.CoefficientTable{}
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return spherical.CoefficientTable{}, core.NewMalformedRecordError(line, err)
		}

		deg, err := strconv.Atoi(record[0])
		if err != nil {
			return spherical.CoefficientTable{}, core.NewMalformedRecordError(line, err)
		}
		ord, err := strconv.Atoi(record[1])
		if err != nil {
			return spherical.CoefficientTable{}, core.NewMalformedRecordError(line, err)
		}
		clm, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return spherical.CoefficientTable{}, core.NewMalformedRecordError(line, err)
		}
		slm, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return spherical.CoefficientTable{}, core.NewMalformedRecordError(line, err)
		}

		table.Rows = append(table.Rows, spherical.Coefficient{Degree: deg, Order: ord, C: clm, S: slm})
		if deg > table.MaxDegree {
			table.MaxDegree = deg
		}
	}
	return table, nil
}

// ReadPower parses a headerless degree,power file.
func ReadPower(r io.Reader) (spherical.PowerTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	table := spherical.PowerTable{}
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return spherical.PowerTable{}, core.NewMalformedRecordError(line, err)
		}
		deg, err := strconv.Atoi(record[0])
		if err != nil {
			return spherical.PowerTable{}, core.NewMalformedRecordError(line, err)
		}
		power, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return spherical.PowerTable{}, core.NewMalformedRecordError(line, err)
		}
		table.Rows = append(table.Rows, spherical.PowerRow{Degree: deg, Power: power})
		if deg > table.MaxDegree {
			table.MaxDegree = deg
		}
	}
	return table, nil
}

// ReadPowerFile reads a power table from path.
func ReadPowerFile(path string) (spherical.PowerTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return spherical.PowerTable{}, errors.IOError("open power file", err)
	}
	defer f.Close()
	return ReadPower(f)
}

// WriteCoefficientsFile writes the coefficient table to path.
func WriteCoefficientsFile(path string, t spherical.CoefficientTable) error {
	return writeFile(path, func(w io.Writer) error { return WriteCoefficients(w, t) })
}

// WritePowerFile writes the power table to path.
func WritePowerFile(path string, t spherical.PowerTable) error {
	return writeFile(path, func(w io.Writer) error { return WritePower(w, t) })
}

// WriteCorrelationFile writes the correlation table to path.
func WriteCorrelationFile(path string, t spherical.CorrelationTable) error {
	return writeFile(path, func(w io.Writer) error { return WriteCorrelation(w, t) })
}

// ReadCoefficientsFile reads a coefficient table from path.
func ReadCoefficientsFile(path string) (spherical.CoefficientTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return spherical.CoefficientTable{}, errors.IOError("open coefficient file", err)
	}
	defer f.Close()
	return ReadCoefficients(f)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.IOError("create output file", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
