package fields

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"comfort_calc/comfort"
)

// ResultRow is one row of comfort.csv.
type ResultRow struct {
	Cell       int     `csv:"cell"`
	RH         float64 `csv:"RH"`
	Tu         float64 `csv:"Tu"`
	DR         float64 `csv:"DR"`
	PMV        float64 `csv:"PMV"`
	PPD        float64 `csv:"PPD"`
	TOp        float64 `csv:"TOp"`
	TCL        float64 `csv:"TCL"`
	Converged  bool    `csv:"converged"`
	Iterations int     `csv:"iterations"`
}

/*
Write the per-cell comfort fields of one time to <time>/comfort.csv.

	Args:
		snap: the snapshot that was solved
		res: its result; res.Cells is parallel to snap.Cells

	Returns:
		path of the written file
*/
func (c *Case) WriteResults(snap *comfort.Snapshot, res *comfort.SnapshotResult) (string, error) {
	if len(snap.Cells) != len(res.Cells) {
		return "", fmt.Errorf("time %s: %d cells but %d results", snap.Time, len(snap.Cells), len(res.Cells))
	}

	rows := make([]*ResultRow, len(res.Cells))
	for i, r := range res.Cells {
		rows[i] = &ResultRow{
			Cell:       snap.Cells[i].Index,
			RH:         r.RH,
			Tu:         r.Tu,
			DR:         r.DR,
			PMV:        r.PMV,
			PPD:        r.PPD,
			TOp:        r.TOp,
			TCL:        r.TCL,
			Converged:  r.Converged,
			Iterations: r.Iterations,
		}
	}

	path := filepath.Join(c.timeDir(snap.Time), ResultsFile)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("time %s: %w", snap.Time, err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return "", fmt.Errorf("time %s: write %s: %w", snap.Time, path, err)
	}
	return path, file.Close()
}
