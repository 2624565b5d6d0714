// Package rblog persists a batch run's summary and per-IVP outcomes to
// disk: a JSON metadata document plus a CSV of per-IVP results, one run
// per directory.
package rblog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/radaubatch/internal/batch"
	"github.com/san-kum/radaubatch/internal/ivp"
)

// Store persists batch run results under baseDir, one subdirectory per
// run.
type Store struct {
	baseDir string
}

// New returns a Store rooted at baseDir. Call Init before Save.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Init creates baseDir if it doesn't already exist.
func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes a batch run's configuration, persisted as
// metadata.json alongside the per-IVP CSV.
type RunMetadata struct {
	ID        string    `json:"id"`
	Problem   string    `json:"problem"`
	Timestamp time.Time `json:"timestamp"`
	Workers   int       `json:"workers"`
	Mode      string    `json:"mode"`
	Method    string    `json:"method"`
	Atol      float64   `json:"atol"`
	Rtol      float64   `json:"rtol"`
	NumIVPs   int       `json:"num_ivps"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
}

// Save writes metadata.json and outcomes.csv for a completed batch run
// and returns the run's generated ID.
func (s *Store) Save(problem string, opts batch.Options, outcomes []ivp.Outcome) (string, error) {
	runID := fmt.Sprintf("%s_%d", problem, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	succeeded := 0
	for _, o := range outcomes {
		if o.Code == ivp.Success {
			succeeded++
		}
	}

	meta := RunMetadata{
		ID:        runID,
		Problem:   problem,
		Timestamp: time.Now(),
		Workers:   opts.Workers,
		Mode:      opts.Mode.String(),
		Atol:      opts.Solver.Atol,
		Rtol:      opts.Solver.Rtol,
		NumIVPs:   len(outcomes),
		Succeeded: succeeded,
		Failed:    len(outcomes) - succeeded,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeOutcomesCSV(filepath.Join(runDir, "outcomes.csv"), outcomes); err != nil {
		return "", err
	}

	return runID, nil
}

func writeOutcomesCSV(path string, outcomes []ivp.Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if len(outcomes) == 0 {
		return nil
	}

	header := []string{"index", "t_final", "code", "steps", "accepted", "rejected", "lu_factors"}
	n := len(outcomes[0].Y)
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, o := range outcomes {
		row := []string{
			strconv.Itoa(o.Index),
			strconv.FormatFloat(o.T, 'f', 8, 64),
			o.Code.String(),
			strconv.Itoa(o.Counters.Steps),
			strconv.Itoa(o.Counters.Accepted),
			strconv.Itoa(o.Counters.Rejected),
			strconv.Itoa(o.Counters.LUFactors),
		}
		for _, v := range o.Y {
			row = append(row, strconv.FormatFloat(v, 'f', 8, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List returns the metadata of every run persisted under baseDir, in
// run-directory name order (problem, then Unix timestamp), so runs of one
// problem come oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}
