// Package store exports sweep results in the tabular forms downstream
// plotting and statistical tooling consume.
package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/Pain0430/lead-network-toxicology/internal/sim"
)

// ExportData is the JSON document form of a sweep result.
type ExportData struct {
	Model     string           `json:"model"`
	T0        float64          `json:"t0"`
	TF        float64          `json:"tf"`
	Scenarios []ScenarioExport `json:"scenarios"`
}

type ScenarioExport struct {
	ID      string      `json:"id"`
	Status  string      `json:"status"`
	Reason  string      `json:"reason,omitempty"`
	Species []string    `json:"species,omitempty"`
	Times   []float64   `json:"times,omitempty"`
	Values  [][]float64 `json:"values,omitempty"`
}

func exportData(cfg sim.RunConfig, result *sim.SweepResult) ExportData {
	data := ExportData{Model: result.Model, T0: cfg.T0, TF: cfg.TF}
	for _, id := range result.IDs() {
		o := result.Outcomes[id]
		se := ScenarioExport{ID: id, Status: o.Status.String(), Reason: o.Reason}
		if o.Status == sim.StatusCompleted {
			se.Species = o.Series.SpeciesIDs
			se.Times = o.Series.Times
			se.Values = o.Series.Values
		}
		data.Scenarios = append(data.Scenarios, se)
	}
	return data
}

func ExportJSON(w io.Writer, cfg sim.RunConfig, result *sim.SweepResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData(cfg, result))
}

func ExportJSONFile(path string, cfg sim.RunConfig, result *sim.SweepResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ExportJSON(f, cfg, result)
}

// ExportCSV writes the long-format table keyed by (scenario, time, species),
// one concentration per row, covering every completed scenario.
func ExportCSV(w io.Writer, result *sim.SweepResult) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"scenario", "time", "species", "concentration"}); err != nil {
		return err
	}
	for _, id := range result.IDs(sim.StatusCompleted) {
		ts := result.Outcomes[id].Series
		for i, t := range ts.Times {
			for k, sp := range ts.SpeciesIDs {
				row := []string{
					id,
					strconv.FormatFloat(t, 'f', 6, 64),
					sp,
					strconv.FormatFloat(ts.Values[i][k], 'f', 6, 64),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
	}
	return cw.Error()
}

func ExportCSVFile(path string, result *sim.SweepResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ExportCSV(f, result)
}
