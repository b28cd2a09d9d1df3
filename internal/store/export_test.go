package store

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/Pain0430/lead-network-toxicology/internal/sim"
)

func fixtureResult() (sim.RunConfig, *sim.SweepResult) {
	cfg := sim.DefaultRunConfig()
	cfg.TF = 2

	series := &sim.TimeSeries{
		SpeciesIDs: []string{"Lead", "ROS"},
		Times:      []float64{0, 1, 2},
		Values:     [][]float64{{10, 1}, {9, 1.5}, {8.1, 1.9}},
	}
	return cfg, &sim.SweepResult{
		Model: "oxidative_core",
		Outcomes: map[string]*sim.Outcome{
			"Lead_10": {
				Scenario: sim.Scenario{ID: "Lead_10", InitialOverrides: map[string]float64{"Lead": 10}},
				Status:   sim.StatusCompleted,
				Series:   series,
			},
			"stiff": {
				Scenario: sim.Scenario{ID: "stiff"},
				Status:   sim.StatusFailed,
				Reason:   "step budget exhausted",
			},
		},
	}
}

func TestExportJSON(t *testing.T) {
	cfg, result := fixtureResult()

	var buf bytes.Buffer
	if err := ExportJSON(&buf, cfg, result); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if data.Model != "oxidative_core" || data.TF != 2 {
		t.Errorf("header = %+v", data)
	}
	if len(data.Scenarios) != 2 {
		t.Fatalf("got %d scenarios, want 2", len(data.Scenarios))
	}

	// IDs() sorts, so Lead_10 precedes stiff.
	completed, failed := data.Scenarios[0], data.Scenarios[1]
	if completed.ID != "Lead_10" || completed.Status != "completed" {
		t.Errorf("completed entry = %+v", completed)
	}
	if len(completed.Times) != 3 || len(completed.Values) != 3 || len(completed.Species) != 2 {
		t.Errorf("series payload = %+v", completed)
	}
	if failed.ID != "stiff" || failed.Status != "failed" || failed.Reason == "" {
		t.Errorf("failed entry = %+v", failed)
	}
	if failed.Times != nil || failed.Values != nil {
		t.Errorf("failed entry carries series data: %+v", failed)
	}
}

func TestExportCSV(t *testing.T) {
	_, result := fixtureResult()

	var buf bytes.Buffer
	if err := ExportCSV(&buf, result); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	// Header plus one row per (time, species) of the completed scenario;
	// the failed scenario contributes nothing.
	if want := 1 + 3*2; len(records) != want {
		t.Fatalf("got %d rows, want %d", len(records), want)
	}
	header := records[0]
	if header[0] != "scenario" || header[3] != "concentration" {
		t.Errorf("header = %v", header)
	}
	first := records[1]
	if first[0] != "Lead_10" || first[2] != "Lead" || first[1] != "0.000000" {
		t.Errorf("first row = %v", first)
	}
	for _, rec := range records[1:] {
		if rec[0] == "stiff" {
			t.Fatal("failed scenario leaked into the table")
		}
	}
}
