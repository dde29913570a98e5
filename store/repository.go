package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"comfort_calc/comfort"
)

//go:embed sql/upsert-snapshot.sql
var upsertSnapshotSQL string

//go:embed sql/delete-cell-results.sql
var deleteCellResultsSQL string

//go:embed sql/insert-cell-result.sql
var insertCellResultSQL string

//go:embed sql/get-snapshots.sql
var getSnapshotsSQL string

//go:embed sql/get-snapshot.sql
var getSnapshotSQL string

//go:embed sql/get-cell-results.sql
var getCellResultsSQL string

// ErrNotFound is returned when no snapshot is stored under the requested time.
var ErrNotFound = errors.New("snapshot not found")

// SnapshotRecord is a stored snapshot aggregate.
type SnapshotRecord struct {
	Time               string
	Cells              int
	Volume             float64
	PMV                float64
	PPD                float64
	DR                 float64
	TOp                float64
	RH                 float64
	Turbulence         float64
	VapourPressure     float64
	Velocity           float64
	Temperature        float64
	RadiantTemperature float64
	HeatFlowSum        *float64 // set only for snapshots with a heat-flux field
	NonConverged       int
	Category           comfort.Category
}

// CellRecord is a stored cell result.
type CellRecord struct {
	Cell   int
	Result comfort.CellResult
}

type ResultRepository interface {
	SaveSnapshot(ctx context.Context, snap *comfort.Snapshot, res *comfort.SnapshotResult) error
	GetSnapshots(ctx context.Context) ([]SnapshotRecord, error)
	GetSnapshot(ctx context.Context, time string) (SnapshotRecord, error)
	GetCellResults(ctx context.Context, time string) ([]CellRecord, error)
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) ResultRepository {
	return &repositoryImpl{db: db}
}

/*
Store the aggregate and cell results of one snapshot.

	Args:
		snap: the solved snapshot, for cell indices
		res: its result

	Notes:
		A snapshot already stored under the same time is replaced together with its cells.
*/
func (r *repositoryImpl) SaveSnapshot(ctx context.Context, snap *comfort.Snapshot, res *comfort.SnapshotResult) (err error) {
	if len(snap.Cells) != len(res.Cells) {
		return fmt.Errorf("time %s: %d cells but %d results", snap.Time, len(snap.Cells), len(res.Cells))
	}

	timeValue, err := strconv.ParseFloat(res.Time, 64)
	if err != nil {
		return fmt.Errorf("time %s: %w", res.Time, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	agg := res.Aggregate
	var heatFlowSum sql.NullFloat64
	if agg.Radiant.FromHeatFlux {
		heatFlowSum = sql.NullFloat64{Float64: agg.Radiant.HeatFlowSum, Valid: true}
	}

	if _, err = tx.ExecContext(ctx, upsertSnapshotSQL,
		res.Time, timeValue, agg.Cells, agg.Volume,
		agg.PMV, agg.PPD, agg.DR, agg.TOp, agg.RH, agg.Turbulence,
		agg.VapourPressure, agg.Velocity, agg.Temperature, agg.Radiant.STemp, heatFlowSum,
		agg.NonConverged, string(agg.Category),
	); err != nil {
		return fmt.Errorf("upsert snapshot %s: %w", res.Time, err)
	}

	if _, err = tx.ExecContext(ctx, deleteCellResultsSQL, res.Time); err != nil {
		return fmt.Errorf("delete cell results %s: %w", res.Time, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertCellResultSQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, c := range res.Cells {
		if _, err = stmt.ExecContext(ctx, res.Time, snap.Cells[i].Index,
			c.RH, c.Tu, c.DR, c.PMV, c.PPD, c.TOp, c.TCL, c.Converged, c.Iterations,
		); err != nil {
			return fmt.Errorf("insert cell %d of %s: %w", snap.Cells[i].Index, res.Time, err)
		}
	}

	return tx.Commit()
}

func (r *repositoryImpl) GetSnapshots(ctx context.Context) ([]SnapshotRecord, error) {
	rows, err := r.db.QueryContext(ctx, getSnapshotsSQL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logrus.WithError(err).Error("close snapshots rows")
		}
	}()

	var out []SnapshotRecord
	for rows.Next() {
		rec, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) GetSnapshot(ctx context.Context, time string) (SnapshotRecord, error) {
	rec, err := scanSnapshot(r.db.QueryRowContext(ctx, getSnapshotSQL, time))
	if errors.Is(err, sql.ErrNoRows) {
		return SnapshotRecord{}, fmt.Errorf("time %s: %w", time, ErrNotFound)
	}
	return rec, err
}

func (r *repositoryImpl) GetCellResults(ctx context.Context, time string) ([]CellRecord, error) {
	rows, err := r.db.QueryContext(ctx, getCellResultsSQL, time)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logrus.WithError(err).Error("close cell result rows")
		}
	}()

	var out []CellRecord
	for rows.Next() {
		var rec CellRecord
		c := &rec.Result
		if err := rows.Scan(&rec.Cell, &c.RH, &c.Tu, &c.DR, &c.PMV, &c.PPD, &c.TOp, &c.TCL, &c.Converged, &c.Iterations); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(s scanner) (SnapshotRecord, error) {
	var rec SnapshotRecord
	var heatFlowSum sql.NullFloat64
	var category string
	if err := s.Scan(&rec.Time, &rec.Cells, &rec.Volume,
		&rec.PMV, &rec.PPD, &rec.DR, &rec.TOp, &rec.RH, &rec.Turbulence,
		&rec.VapourPressure, &rec.Velocity, &rec.Temperature, &rec.RadiantTemperature, &heatFlowSum,
		&rec.NonConverged, &category,
	); err != nil {
		return SnapshotRecord{}, err
	}
	if heatFlowSum.Valid {
		v := heatFlowSum.Float64
		rec.HeatFlowSum = &v
	}
	rec.Category = comfort.Category(category)
	return rec, nil
}
