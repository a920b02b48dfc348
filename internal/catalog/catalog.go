// Package catalog reads target lists and matches them against detected
// sources to produce the records the measurement pipeline runs on.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"petrofind/pkg/geometry"
)

// Target is one externally catalogued galaxy: its identifier, expected
// pixel position on the frame, and redshift. A negative redshift marks
// it unknown.
type Target struct {
	ID string
	X  float64
	Y  float64
	Z  float64
}

// Position returns the expected pixel position.
func (t Target) Position() geometry.Point2D {
	return geometry.Point2D{X: t.X, Y: t.Y}
}

// Load reads a target catalog from a CSV file with an
// id,x,y,z header. Rows with a blank id are skipped.
func Load(path string) ([]Target, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer file.Close()
	return Read(file)
}

// Read parses a target catalog from r. The first row must be the
// id,x,y,z header.
func Read(r io.Reader) ([]Target, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}
	cols, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var targets []Target
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog row: %w", err)
		}
		line++

		id := strings.TrimSpace(row[cols.id])
		if id == "" {
			continue
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(row[cols.x]), 64)
		if err != nil {
			return nil, fmt.Errorf("catalog line %d: bad x: %w", line, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(row[cols.y]), 64)
		if err != nil {
			return nil, fmt.Errorf("catalog line %d: bad y: %w", line, err)
		}
		z := -1.0
		if cols.z >= 0 && cols.z < len(row) {
			zs := strings.TrimSpace(row[cols.z])
			if zs != "" {
				z, err = strconv.ParseFloat(zs, 64)
				if err != nil {
					return nil, fmt.Errorf("catalog line %d: bad z: %w", line, err)
				}
			}
		}
		targets = append(targets, Target{ID: id, X: x, Y: y, Z: z})
	}
	return targets, nil
}

type columns struct {
	id, x, y, z int
}

func headerIndex(header []string) (columns, error) {
	cols := columns{id: -1, x: -1, y: -1, z: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "id":
			cols.id = i
		case "x":
			cols.x = i
		case "y":
			cols.y = i
		case "z":
			cols.z = i
		}
	}
	if cols.id < 0 || cols.x < 0 || cols.y < 0 {
		return cols, fmt.Errorf("catalog header must contain id, x and y columns, got %v", header)
	}
	return cols, nil
}
