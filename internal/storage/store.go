// Package storage persists sweep results as per-sweep directories holding
// a metadata document and one CSV concentration table per scenario.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Pain0430/lead-network-toxicology/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type ScenarioMeta struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	Reason        string `json:"reason,omitempty"`
	StepsAccepted int    `json:"steps_accepted"`
	StepsRejected int    `json:"steps_rejected"`
	RateEvals     int    `json:"rate_evals"`
	Clamped       int    `json:"clamped"`
}

type SweepMetadata struct {
	ID        string         `json:"id"`
	Model     string         `json:"model"`
	Timestamp time.Time      `json:"timestamp"`
	T0        float64        `json:"t0"`
	TF        float64        `json:"tf"`
	AbsTol    float64        `json:"abs_tol"`
	RelTol    float64        `json:"rel_tol"`
	Scenarios []ScenarioMeta `json:"scenarios"`
}

// Save writes one sweep's metadata and per-scenario concentration tables
// under a fresh run directory and returns its ID.
func (s *Store) Save(cfg sim.RunConfig, result *sim.SweepResult) (string, error) {
	runID := fmt.Sprintf("%s_%d", result.Model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := SweepMetadata{
		ID:        runID,
		Model:     result.Model,
		Timestamp: time.Now(),
		T0:        cfg.T0,
		TF:        cfg.TF,
		AbsTol:    cfg.AbsTol,
		RelTol:    cfg.RelTol,
	}

	for _, id := range result.IDs() {
		o := result.Outcomes[id]
		meta.Scenarios = append(meta.Scenarios, ScenarioMeta{
			ID:            id,
			Status:        o.Status.String(),
			Reason:        o.Reason,
			StepsAccepted: o.Stats.StepsAccepted,
			StepsRejected: o.Stats.StepsRejected,
			RateEvals:     o.Stats.RateEvals,
			Clamped:       o.Stats.Clamped,
		})
		if o.Status != sim.StatusCompleted {
			continue
		}
		if err := writeSeries(filepath.Join(runDir, seriesFile(id)), o.Series); err != nil {
			return "", err
		}
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	return runID, nil
}

func writeSeries(path string, ts *sim.TimeSeries) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := append([]string{"time"}, ts.SpeciesIDs...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i, t := range ts.Times {
		row := make([]string, 0, len(ts.SpeciesIDs)+1)
		row = append(row, strconv.FormatFloat(t, 'f', 6, 64))
		for _, v := range ts.Values[i] {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func seriesFile(scenarioID string) string {
	return "scenario_" + sanitize(scenarioID) + ".csv"
}

// sanitize maps a scenario ID onto a filesystem-safe name.
func sanitize(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, id)
}

func (s *Store) List() ([]SweepMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SweepMetadata{}, nil
		}
		return nil, err
	}

	sweeps := make([]SweepMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		sweeps = append(sweeps, *meta)
	}

	return sweeps, nil
}

func (s *Store) Load(runID string) (*SweepMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta SweepMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads one scenario's concentration table back into a
// TimeSeries.
func (s *Store) LoadSeries(runID, scenarioID string) (*sim.TimeSeries, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile(scenarioID)))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 || len(records[0]) < 2 {
		return nil, fmt.Errorf("storage: malformed series table for %s/%s", runID, scenarioID)
	}

	ts := &sim.TimeSeries{SpeciesIDs: records[0][1:]}
	for _, record := range records[1:] {
		if len(record) != len(records[0]) {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		row := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, err
			}
			row = append(row, v)
		}
		ts.Times = append(ts.Times, t)
		ts.Values = append(ts.Values, row)
	}

	return ts, nil
}
