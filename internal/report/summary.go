package report

import (
	"fmt"
	"io"
	"math"

	"github.com/olekukonko/tablewriter"

	"petrofind/internal/petro"
)

// PrintSummary renders the per-target results and the batch success
// rate as a table on w.
func PrintSummary(w io.Writer, rows []Row, sum petro.Summary) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "R (pix)", "R (kpc)", "Status")
	for _, row := range rows {
		kpc := "-"
		if !math.IsNaN(row.PetroKpc) && row.PetroKpc > 0 {
			kpc = fmt.Sprintf("%.3f", row.PetroKpc)
		}
		pix := "-"
		if row.PetroPix > 0 {
			pix = fmt.Sprintf("%.3f", row.PetroPix)
		}
		if err := table.Append([]string{row.ID, pix, kpc, row.Status}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%d/%d determined (%.1f%% success)\n",
		sum.Done, sum.Total, sum.SuccessRate())
	return err
}
