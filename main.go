package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"comfort_calc/comfort"
	"comfort_calc/fields"
	"comfort_calc/observability"
	"comfort_calc/store"
)

// runOptions are the command line settings of one run.
type runOptions struct {
	CaseDir  string
	DictPath string // empty for <case>/constant/comfortDict.ini
	Times    string
	Latest   bool
	NoZero   bool
	Workers  int // overrides [solver] workers when > 0
}

// sinks are the optional outputs of a run.
type sinks struct {
	repo    store.ResultRepository
	db      *sql.DB
	metrics *observability.Metrics
	path    string
}

func (s *sinks) close(log logrus.FieldLogger) {
	if s.metrics != nil {
		if err := s.metrics.WriteTextfile(s.path); err != nil {
			log.WithError(err).Error("metrics textfile")
		} else {
			log.WithField("path", s.path).Info("metrics written")
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			log.WithError(err).Error("close results database")
		}
	}
}

/*
Compute the comfort indices of every selected time of a case.

	Args:
		ctx: cancels the run between and inside snapshots
		opts: command line settings
		clock: source of the snapshot and run timings
		log: logger
		stdout: destination of the per-snapshot report

	Notes:
		The first failing snapshot stops the run.
*/
func run(ctx context.Context, opts runOptions, clock clockwork.Clock, log logrus.FieldLogger, stdout io.Writer) error {
	start := clock.Now()

	// ---- setup ----

	c, err := fields.Open(opts.CaseDir)
	if err != nil {
		return err
	}

	dictPath := opts.DictPath
	if dictPath == "" {
		dictPath = c.DictPath()
	}
	log.WithField("path", dictPath).Info("reading comfort dictionary")
	cfg, err := loadConfig(dictPath)
	if err != nil {
		return err
	}
	if opts.Workers > 0 {
		cfg.Solver.Workers = opts.Workers
	}

	solver, err := comfort.NewSolver(cfg.Params, cfg.Solver, log)
	if err != nil {
		return err
	}

	sel, err := fields.ParseSelection(opts.Times, opts.Latest, opts.NoZero)
	if err != nil {
		return err
	}
	all, err := c.Times()
	if err != nil {
		return err
	}
	times := sel.Select(all)
	if len(times) == 0 {
		return fmt.Errorf("no times selected in %s", c.Dir)
	}

	log.WithFields(logrus.Fields{
		"clo":         cfg.Params.Clo,
		"met":         cfg.Params.Met,
		"wme":         cfg.Params.Wme,
		"RH":          cfg.Params.RH,
		"workers":     cfg.Solver.Workers,
		"formulation": cfg.Solver.Formulation,
		"pmvBand":     cfg.Solver.PMVBand,
		"times":       len(times),
	}).Info("comfort run")

	var out sinks
	defer out.close(log)

	if cfg.SQLitePath != "" {
		db, err := store.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return err
		}
		out.db = db
		out.repo = store.NewRepository(db)
	}
	if cfg.MetricsPath != "" {
		out.metrics = observability.NewMetrics(prometheus.NewRegistry())
		out.path = cfg.MetricsPath
	}

	// ---- snapshots ----

	r := &snapshotRunner{c: c, solver: solver, cfg: cfg, out: &out, clock: clock, log: log, stdout: stdout}
	for _, t := range times {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.run(ctx, t); err != nil {
			if out.metrics != nil {
				out.metrics.ObserveError()
			}
			return err
		}
	}

	log.Infof("elapsed_time: %v [sec]", clock.Since(start).Seconds())
	return nil
}

// snapshotRunner processes single snapshots of a run.
type snapshotRunner struct {
	c      *fields.Case
	solver *comfort.Solver
	cfg    Config
	out    *sinks
	clock  clockwork.Clock
	log    logrus.FieldLogger
	stdout io.Writer
}

func (r *snapshotRunner) run(ctx context.Context, t string) error {
	start := r.clock.Now()

	snap, err := r.c.ReadSnapshot(t)
	if err != nil {
		return err
	}

	res, err := r.solver.Solve(ctx, snap)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(r.stdout, "Time = %s\n", t); err != nil {
		return err
	}
	if err := comfort.WriteReport(r.stdout, res.Aggregate); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(r.stdout); err != nil {
		return err
	}

	if r.cfg.WriteFields {
		path, err := r.c.WriteResults(snap, res)
		if err != nil {
			return err
		}
		r.log.WithField("path", path).Debug("fields written")
	}
	if r.out.repo != nil {
		if err := r.out.repo.SaveSnapshot(ctx, snap, res); err != nil {
			return fmt.Errorf("time %s: %w", t, err)
		}
	}

	elapsed := r.clock.Since(start)
	if r.out.metrics != nil {
		r.out.metrics.ObserveSnapshot(res, elapsed)
	}

	r.log.WithFields(logrus.Fields{
		"snapshot":     t,
		"cells":        res.Aggregate.Cells,
		"stemp":        res.Aggregate.Radiant.STemp,
		"PMV":          res.Aggregate.PMV,
		"category":     res.Aggregate.Category,
		"nonConverged": res.Aggregate.NonConverged,
		"elapsed":      elapsed,
	}).Info("snapshot solved")
	return nil
}

/*
Create the command logger.

	Args:
		level: logrus level name
		format: text or json
		w: output
*/
func newLogger(level, format string, w io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)

	switch format {
	case "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return log, nil
}

func main() {
	var opts runOptions
	flag.StringVar(&opts.CaseDir, "case", ".", "case directory")
	flag.StringVar(&opts.DictPath, "dict", "", "comfort dictionary (Default=<case>/constant/comfortDict.ini)")
	flag.StringVar(&opts.Times, "time", "", "times to process, e.g. 0.5,100:200")
	flag.BoolVar(&opts.Latest, "latestTime", false, "process the latest time only")
	flag.BoolVar(&opts.NoZero, "noZero", false, "exclude time 0")
	flag.IntVar(&opts.Workers, "workers", 0, "cell partitions solved concurrently, overrides [solver] workers")

	var logLevel string
	flag.StringVar(&logLevel, "log", "info", "log level (Default=info)")

	var logFormat string
	flag.StringVar(&logFormat, "logFormat", "text", "log format, text | json")

	flag.Parse()

	log, err := newLogger(logLevel, logFormat, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, clockwork.NewRealClock(), log, os.Stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("interrupted")
		}
		stop()
		log.Fatal(err)
	}
}
