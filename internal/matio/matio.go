// Package matio reads and writes the CSV representations of coupling
// matrices, state vectors, and trajectories used by the CLI.
package matio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/coherent-lab/cimsim/internal/trajectory"
)

// ReadMatrix reads an N×N matrix from a CSV file, one row per record.
func ReadMatrix(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("matio: opening matrix file: %w", err)
	}
	defer f.Close()

	rows, err := readRows(f)
	if err != nil {
		return nil, fmt.Errorf("matio: reading %s: %w", path, err)
	}
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("matio: matrix file %s is empty", path)
	}
	data := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("matio: matrix file %s: row %d has %d columns, want %d", path, i, len(row), n)
		}
		data = append(data, row...)
	}
	return mat.NewDense(n, n, data), nil
}

// ReadVector reads a length-N vector from a CSV file. Both layouts are
// accepted: a single record of N fields, or N records of one field.
func ReadVector(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("matio: opening vector file: %w", err)
	}
	defer f.Close()

	rows, err := readRows(f)
	if err != nil {
		return nil, fmt.Errorf("matio: reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("matio: vector file %s is empty", path)
	}
	if len(rows) == 1 {
		return rows[0], nil
	}
	v := make([]float64, 0, len(rows))
	for i, row := range rows {
		if len(row) != 1 {
			return nil, fmt.Errorf("matio: vector file %s: row %d has %d columns, want 1", path, i, len(row))
		}
		v = append(v, row[0])
	}
	return v, nil
}

// WriteVector writes a vector as a single CSV record.
func WriteVector(path string, v []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("matio: creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(formatRow(v)); err != nil {
		return fmt.Errorf("matio: writing %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}

// WriteTrajectory writes a trajectory as CSV, one record per recorded
// state, in step order.
func WriteTrajectory(path string, tr *trajectory.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("matio: creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for k := 0; k < tr.Len(); k++ {
		if err := w.Write(formatRow(tr.At(k))); err != nil {
			return fmt.Errorf("matio: writing %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

func readRows(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	var rows [][]float64
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		row := make([]float64, len(record))
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing %q: %w", field, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
}

func formatRow(v []float64) []string {
	out := make([]string, len(v))
	for i, x := range v {
		out[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return out
}
