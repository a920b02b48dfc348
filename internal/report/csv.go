package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"petrofind/internal/petro"
)

var csvHeader = []string{
	"ID", "PETROSIANPIX", "PETROSIANKPC", "PIXCENTERX", "PIXCENTERY", "REDSHIFT", "STATUS",
}

// Row is one results line, as written to and read back from the
// results CSV. NaN fields round-trip as empty cells.
type Row struct {
	ID       string
	PetroPix float64
	PetroKpc float64
	CenterX  float64
	CenterY  float64
	Redshift float64
	Status   string
}

// RowsFrom converts processed records to result rows, converting the
// pixel radius to kpc where a redshift is known. Failed records keep a
// zero radius so partial batches still report every target.
func RowsFrom(records []*petro.SourceRecord, cos Cosmology) []Row {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, Row{
			ID:       rec.ID,
			PetroPix: rec.PetroR,
			PetroKpc: cos.Kpc(rec.PetroR, rec.Redshift),
			CenterX:  rec.Position.X,
			CenterY:  rec.Position.Y,
			Redshift: rec.Redshift,
			Status:   rec.Status.String(),
		})
	}
	return rows
}

// WriteCSV writes the result rows to path.
func WriteCSV(path string, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	defer file.Close()

	if err := Write(file, rows); err != nil {
		return err
	}
	return file.Close()
}

// Write emits the header and rows to w.
func Write(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write results header: %w", err)
	}
	for _, row := range rows {
		rec := []string{
			row.ID,
			formatFloat(row.PetroPix),
			formatFloat(row.PetroKpc),
			formatFloat(row.CenterX),
			formatFloat(row.CenterY),
			formatFloat(row.Redshift),
			row.Status,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write results row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV loads a results file back in, for the viewer.
func ReadCSV(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}
	defer file.Close()
	return Read(file)
}

// Read parses result rows from r.
func Read(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("results file is empty")
	}

	var rows []Row
	for i, rec := range records[1:] {
		if len(rec) < len(csvHeader) {
			return nil, fmt.Errorf("results line %d: expected %d fields, got %d", i+2, len(csvHeader), len(rec))
		}
		row := Row{ID: rec[0], Status: rec[6]}
		for _, f := range []struct {
			dst *float64
			s   string
		}{
			{&row.PetroPix, rec[1]},
			{&row.PetroKpc, rec[2]},
			{&row.CenterX, rec[3]},
			{&row.CenterY, rec[4]},
			{&row.Redshift, rec[5]},
		} {
			*f.dst, err = parseFloat(f.s)
			if err != nil {
				return nil, fmt.Errorf("results line %d: %w", i+2, err)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
