// Package dataio reads and writes half-images. A half-image is stored with
// one profile per record, column 0 first.
package dataio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/hammal/abel/gonumExtensions"
	"github.com/hammal/abel/hansenlaw"
	"gonum.org/v1/gonum/mat"
)

// LoadExt reads a half-image from fname, choosing the format by extension.
// Files ending in ".tsv" or ".txt" are whitespace or tab separated, every
// other file is comma separated.
func LoadExt(fname string) (*mat.Dense, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	switch strings.ToLower(path.Ext(fname)) {
	case ".tsv", ".txt":
		return DecodeText(file)
	default:
		return DecodeCSV(file)
	}
}

// SaveExt writes m to fname, choosing the format by extension like LoadExt.
func SaveExt(fname string, m mat.Matrix) error {
	file, err := os.Create(fname)
	if err != nil {
		return err
	}
	switch strings.ToLower(path.Ext(fname)) {
	case ".tsv", ".txt":
		err = EncodeText(file, m)
	default:
		err = EncodeCSV(file, m)
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}

// EncodeCSV writes one record per row of m.
func EncodeCSV(w io.Writer, m mat.Matrix) error {
	ww := csv.NewWriter(w)
	rows, cols := m.Dims()
	rec := make([]string, cols)
	for row := 0; row < rows; row++ {
		for col := range rec {
			rec[col] = strconv.FormatFloat(m.At(row, col), 'g', -1, 64)
		}
		if err := ww.Write(rec); err != nil {
			return err
		}
	}
	ww.Flush()
	return ww.Error()
}

// DecodeCSV reads a half-image written by EncodeCSV. Lines starting with
// '#' are comments. All records must have the same number of fields.
func DecodeCSV(r io.Reader) (*mat.Dense, error) {
	rr := csv.NewReader(r)
	rr.Comment = '#'
	rr.TrimLeadingSpace = true
	var rows [][]float64
	for {
		rec, err := rr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row, err := parseRecord(rec, len(rows))
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return finite(rows)
}

// EncodeText writes one tab separated line per row of m.
func EncodeText(w io.Writer, m mat.Matrix) error {
	rows, cols := m.Dims()
	fields := make([]string, cols)
	for row := 0; row < rows; row++ {
		for col := range fields {
			fields[col] = strconv.FormatFloat(m.At(row, col), 'g', -1, 64)
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, "\t")); err != nil {
			return err
		}
	}
	return nil
}

// DecodeText reads whitespace separated rows, skipping blank lines and
// '#' comments.
func DecodeText(r io.Reader) (*mat.Dense, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var rows [][]float64
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		row, err := parseRecord(strings.Fields(line), len(rows))
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return finite(rows)
}

// finite builds the half-image and rejects the NaN and Inf samples that
// strconv.ParseFloat accepts.
func finite(rows [][]float64) (*mat.Dense, error) {
	m, err := gonumExtensions.FromRows(rows)
	if err != nil {
		return nil, err
	}
	if row, col, found := gonumExtensions.NonFinite(m); found {
		return nil, fmt.Errorf("%w: row %d, column %d is %v", hansenlaw.ErrInvalidArgument, row, col, m.At(row, col))
	}
	return m, nil
}

func parseRecord(rec []string, index int) ([]float64, error) {
	row := make([]float64, len(rec))
	for col, field := range rec {
		x, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d, column %d: %w", index, col, err)
		}
		row[col] = x
	}
	return row, nil
}
