package main

import (
	"fmt"

	"gopkg.in/ini.v1"

	"comfort_calc/comfort"
)

// Config is the content of the comfort dictionary.
type Config struct {
	Params comfort.Parameters
	Solver comfort.Options

	WriteFields bool   // write <time>/comfort.csv
	SQLitePath  string // results database, empty to skip
	MetricsPath string // Prometheus textfile, empty to skip
}

const (
	sectionComfort = "comfort"
	sectionSolver  = "solver"
	sectionOutput  = "output"
)

func loadConfig(path string) (Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("comfort dictionary: %w", err)
	}
	return parseConfig(file)
}

/*
Read the comfort dictionary.

	Args:
		file: loaded ini file

	Returns:
		configuration

	Notes:
		clo, met, wme and RH are required; every other key has a default.
*/
func parseConfig(file *ini.File) (Config, error) {
	var cfg Config

	sec := file.Section(sectionComfort)
	required := []struct {
		key string
		dst *float64
	}{
		{"clo", &cfg.Params.Clo},
		{"met", &cfg.Params.Met},
		{"wme", &cfg.Params.Wme},
		{"RH", &cfg.Params.RH},
	}
	for _, r := range required {
		if !sec.HasKey(r.key) {
			return Config{}, fmt.Errorf("%w: [%s] %s is not set", comfort.ErrInvalidParameter, sectionComfort, r.key)
		}
		v, err := sec.Key(r.key).Float64()
		if err != nil {
			return Config{}, fmt.Errorf("%w: [%s] %s: %v", comfort.ErrInvalidParameter, sectionComfort, r.key, err)
		}
		*r.dst = v
	}
	if err := cfg.Params.Validate(); err != nil {
		return Config{}, err
	}

	solver := file.Section(sectionSolver)
	cfg.Solver.Workers = solver.Key("workers").MustInt(1)

	formulation, err := comfort.FormulationFromString(solver.Key("formulation").MustString(comfort.FormulationLegacy.String()))
	if err != nil {
		return Config{}, err
	}
	cfg.Solver.Formulation = formulation

	band, err := comfort.PMVBandFromString(solver.Key("pmv_band").MustString(comfort.PMVBandLiteral.String()))
	if err != nil {
		return Config{}, err
	}
	cfg.Solver.PMVBand = band

	output := file.Section(sectionOutput)
	cfg.WriteFields = output.Key("write_fields").MustBool(true)
	cfg.SQLitePath = output.Key("sqlite").String()
	cfg.MetricsPath = output.Key("metrics").String()

	return cfg, nil
}
