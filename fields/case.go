package fields

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// Case is a case directory holding one sub directory per time snapshot.
//
//	<case>/constant/comfortDict.ini
//	<case>/<time>/cells.csv
//	<case>/<time>/patches.csv
//	<case>/<time>/comfort.csv   (written)
type Case struct {
	Dir string
}

const (
	CellsFile   = "cells.csv"
	PatchesFile = "patches.csv"
	ResultsFile = "comfort.csv"
	DictFile    = "comfortDict.ini"
)

func Open(dir string) (*Case, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("case %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("case `%s` is not a directory", dir)
	}
	return &Case{Dir: dir}, nil
}

// DictPath is the default location of the comfort dictionary.
func (c *Case) DictPath() string {
	return filepath.Join(c.Dir, "constant", DictFile)
}

func (c *Case) timeDir(time string) string {
	return filepath.Join(c.Dir, time)
}

/*
Time directories of the case.

	Returns:
		names of the sub directories that parse as a number, ascending by value
*/
func (c *Case) Times() ([]string, error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("list times: %w", err)
	}

	type timeDir struct {
		name  string
		value float64
	}
	var dirs []timeDir
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		v, err := strconv.ParseFloat(e.Name(), 64)
		if err != nil {
			continue
		}
		dirs = append(dirs, timeDir{name: e.Name(), value: v})
	}

	sort.SliceStable(dirs, func(i, j int) bool { return dirs[i].value < dirs[j].value })

	times := make([]string, len(dirs))
	for i, d := range dirs {
		times[i] = d.name
	}
	return times, nil
}
