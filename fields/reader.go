package fields

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/spatial/r3"

	"comfort_calc/comfort"
)

// CellRow is one row of cells.csv.
type CellRow struct {
	Cell   int     `csv:"cell"`
	Volume float64 `csv:"volume"`
	T      float64 `csv:"T"`
	Ux     float64 `csv:"Ux"`
	Uy     float64 `csv:"Uy"`
	Uz     float64 `csv:"Uz"`
	PRgh   float64 `csv:"p_rgh"`
	W      float64 `csv:"w"`
}

// FaceRow is one row of patches.csv.
type FaceRow struct {
	Patch string  `csv:"patch"`
	Type  string  `csv:"type"`
	Area  float64 `csv:"area"`
	T     float64 `csv:"T"`
	Qr    float64 `csv:"Qr"`
}

var (
	cellColumns  = []string{"cell", "volume", "T", "Ux", "Uy", "Uz", "p_rgh"}
	patchColumns = []string{"patch", "type", "area", "T"}
)

const (
	humidityColumn = "w"
	heatFluxColumn = "Qr"
)

/*
Read the field solution of one time.

	Args:
		time: name of the time directory

	Returns:
		snapshot with the optional humidity and heat-flux flags set from the file headers

	Notes:
		A missing patches.csv means a case without boundary patches.
*/
func (c *Case) ReadSnapshot(time string) (*comfort.Snapshot, error) {
	dir := c.timeDir(time)

	cellRows, cellHeader, err := readRows[CellRow](filepath.Join(dir, CellsFile), cellColumns)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("time %s: %w: %v", time, comfort.ErrMissingField, err)
	case err != nil:
		return nil, fmt.Errorf("time %s: %w", time, err)
	}

	snap := &comfort.Snapshot{
		Time:        time,
		Cells:       make([]comfort.Cell, len(cellRows)),
		HasHumidity: cellHeader[humidityColumn],
	}
	for i, row := range cellRows {
		snap.Cells[i] = comfort.Cell{
			Index:  row.Cell,
			Volume: row.Volume,
			T:      row.T,
			U:      r3.Vec{X: row.Ux, Y: row.Uy, Z: row.Uz},
			PRgh:   row.PRgh,
			W:      row.W,
		}
	}

	faceRows, faceHeader, err := readRows[FaceRow](filepath.Join(dir, PatchesFile), patchColumns)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return snap, nil
	case err != nil:
		return nil, fmt.Errorf("time %s: %w", time, err)
	}

	snap.HasHeatFlux = faceHeader[heatFluxColumn]
	snap.Patches = groupPatches(faceRows)
	return snap, nil
}

// groupPatches collects faces by patch name, keeping the order in which patches first appear.
func groupPatches(rows []*FaceRow) []comfort.BoundaryPatch {
	var patches []comfort.BoundaryPatch
	index := make(map[string]int)

	for _, row := range rows {
		i, ok := index[row.Patch]
		if !ok {
			i = len(patches)
			index[row.Patch] = i
			patches = append(patches, comfort.BoundaryPatch{
				Name: row.Patch,
				Type: comfort.PatchType(strings.TrimSpace(row.Type)),
			})
		}
		patches[i].Faces = append(patches[i].Faces, comfort.Face{Area: row.Area, T: row.T, Qr: row.Qr})
	}
	return patches
}

/*
Read a csv file into rows of T.

	Args:
		path: file path
		required: columns that must be present in the header

	Returns:
		rows, set of header columns
*/
func readRows[T any](path string, required []string) ([]*T, map[string]bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	header, err := csv.NewReader(file).Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: read header: %w", path, err)
	}
	columns := make(map[string]bool, len(header))
	for _, h := range header {
		columns[strings.TrimSpace(h)] = true
	}
	for _, col := range required {
		if !columns[col] {
			return nil, nil, fmt.Errorf("%s: column %q: %w", path, col, comfort.ErrMissingField)
		}
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, nil, err
	}

	var rows []*T
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, columns, nil
}
