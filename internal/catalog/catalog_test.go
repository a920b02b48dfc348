package catalog

import (
	"math"
	"strings"
	"testing"

	"petrofind/internal/detect"
	"petrofind/pkg/geometry"
)

func TestReadCatalog(t *testing.T) {
	in := strings.NewReader(`id,x,y,z
g1,100.5,200.25,1.9
g2, 300, 400,
,1,2,3
g3,50,60,0.5
`)
	targets, err := Read(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(targets) != 3 {
		t.Fatalf("expected 3 targets (blank id skipped), got %d", len(targets))
	}
	if targets[0].ID != "g1" || targets[0].X != 100.5 || targets[0].Y != 200.25 || targets[0].Z != 1.9 {
		t.Fatalf("bad first target: %+v", targets[0])
	}
	if targets[1].Z != -1 {
		t.Fatalf("empty redshift must read as -1, got %v", targets[1].Z)
	}
}

func TestReadCatalogColumnOrder(t *testing.T) {
	// Header names, not positions, bind the columns.
	in := strings.NewReader("z,y,x,id\n2.0,20,10,g1\n")
	targets, err := Read(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if targets[0].X != 10 || targets[0].Y != 20 || targets[0].Z != 2.0 {
		t.Fatalf("columns bound by position, not name: %+v", targets[0])
	}
}

func TestReadCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing id column", "x,y,z\n1,2,3\n"},
		{"bad x", "id,x,y,z\ng1,abc,2,3\n"},
		{"bad z", "id,x,y,z\ng1,1,2,zzz\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.in)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func sourceAt(x, y float64) detect.Source {
	c := geometry.NewPoint2D(x, y)
	return detect.Source{
		Center:   c,
		Aperture: geometry.Ellipse{Center: c, SemiMajor: 12},
	}
}

func TestMatchNearestInBox(t *testing.T) {
	sources := []detect.Source{
		sourceAt(100, 100),
		sourceAt(104, 104),
		sourceAt(500, 500),
	}
	targets := []Target{
		{ID: "g1", X: 103, Y: 103, Z: 1.5},
		{ID: "far", X: 300, Y: 300, Z: 1.0},
	}

	records := Match(targets, sources, 10)
	if len(records) != 1 {
		t.Fatalf("expected 1 matched record, got %d", len(records))
	}
	rec := records[0]
	if rec.ID != "g1" {
		t.Fatalf("matched wrong target: %s", rec.ID)
	}
	// Both in-box sources qualify; the nearer one (104,104) wins.
	if rec.Position.X != 104 || rec.Position.Y != 104 {
		t.Fatalf("expected nearest source at (104,104), got %v", rec.Position)
	}
	if rec.Redshift != 1.5 {
		t.Fatalf("redshift not carried over: %v", rec.Redshift)
	}
	if rec.Aperture.SemiMajor != 12 {
		t.Fatalf("aperture not carried over: %+v", rec.Aperture)
	}
}

func TestMatchDuplicateIDKeepsFirst(t *testing.T) {
	sources := []detect.Source{sourceAt(10, 10), sourceAt(200, 200)}
	targets := []Target{
		{ID: "g1", X: 10, Y: 10, Z: 1},
		{ID: "g1", X: 200, Y: 200, Z: 2},
	}

	records := Match(targets, sources, 5)
	if len(records) != 1 {
		t.Fatalf("expected 1 record for a duplicated id, got %d", len(records))
	}
	if records[0].Redshift != 1 {
		t.Fatalf("expected the first occurrence kept, got z=%v", records[0].Redshift)
	}
}

func TestMatchUnknownRedshift(t *testing.T) {
	sources := []detect.Source{sourceAt(10, 10)}
	targets := []Target{{ID: "g1", X: 10, Y: 10, Z: -1}}

	records := Match(targets, sources, 5)
	if len(records) != 1 {
		t.Fatal("expected a match")
	}
	if !math.IsNaN(records[0].Redshift) {
		t.Fatalf("negative catalog redshift must become NaN, got %v", records[0].Redshift)
	}
	if records[0].HasRedshift() {
		t.Fatal("record must report no redshift")
	}
}
