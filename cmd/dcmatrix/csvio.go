package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/nozzle/dcor"
	"github.com/nozzle/dcor/sample"
	"gonum.org/v1/gonum/mat"
)

func loadCSVFile(filename string, header bool) (*sample.Matrix, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return loadCSV(file, header)
}

// loadCSV reads a column-oriented sample. Empty, NA and NaN cells are
// missing; a column with any other non-numeric cell is categorical.
func loadCSV(r io.Reader, header bool) (*sample.Matrix, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var names []string
	if header && len(records) > 0 {
		names = records[0]
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	p := len(records[0])
	cols := make([]sample.Column, p)
	for j := range p {
		raw := make([]string, len(records))
		for i, rec := range records {
			raw[i] = strings.TrimSpace(rec[j])
		}
		name := strconv.Itoa(j + 1)
		if j < len(names) && names[j] != "" {
			name = names[j]
		}
		cols[j] = parseColumn(name, raw)
	}
	return sample.NewMatrix(cols...)
}

func parseColumn(name string, raw []string) sample.Column {
	vals := make([]float64, len(raw))
	for i, s := range raw {
		if sample.IsNA(s) {
			vals[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return sample.Categorical(name, raw)
		}
		vals[i] = f
	}
	return sample.Numeric(name, vals)
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return strconv.FormatFloat(v, 'g', 10, 64)
}

// writeResult writes every computed matrix as a CSV block: a title row,
// a header row of column labels, then one labelled row per matrix row.
// Blocks are separated by an empty line.
func writeResult(w io.Writer, res *dcor.Result) error {
	type block struct {
		title      string
		m          *mat.Dense
		rows, cols []string
	}
	colLabels := res.LabelsY
	corrCols := res.ColumnsY
	blocks := []block{
		{"dcov", res.DCov, res.LabelsX, colLabels},
		{"dcor", res.DCor, res.LabelsX, colLabels},
		{"pvalue", res.PValue, res.LabelsX, colLabels},
		{"pvalue.adj", res.AdjPValue, res.LabelsX, colLabels},
		{"cor", res.Corr, res.ColumnsX, corrCols},
		{"cor.pvalue", res.CorrPValue, res.ColumnsX, corrCols},
	}

	writer := csv.NewWriter(w)
	first := true
	for _, b := range blocks {
		if b.m == nil {
			continue
		}
		if !first {
			if err := writer.Write(nil); err != nil {
				return err
			}
		}
		first = false
		if err := writer.Write([]string{b.title}); err != nil {
			return err
		}
		if err := writer.Write(append([]string{""}, b.cols...)); err != nil {
			return err
		}
		r, c := b.m.Dims()
		for i := range r {
			record := make([]string, c+1)
			record[0] = b.rows[i]
			for j := range c {
				record[j+1] = formatCell(b.m.At(i, j))
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
