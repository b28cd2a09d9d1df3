package export

import (
	"strings"
	"testing"

	"github.com/Pain0430/lead-network-toxicology/internal/analysis"
	"github.com/Pain0430/lead-network-toxicology/internal/sim"
)

func sampleSeries() *sim.TimeSeries {
	return &sim.TimeSeries{
		SpeciesIDs: []string{"Lead", "ROS"},
		Times:      []float64{0, 1, 2, 3},
		Values:     [][]float64{{10, 1}, {9, 1.5}, {8.1, 1.8}, {7.3, 2}},
	}
}

func TestTimeSeriesSVG(t *testing.T) {
	svg := TimeSeriesSVG(sampleSeries(), []string{"Lead", "ROS"}, 640, 400)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("output is not a standalone SVG document")
	}
	if !strings.Contains(svg, `width="640" height="400"`) {
		t.Error("requested dimensions missing")
	}
	if got := strings.Count(svg, "<path "); got != 2 {
		t.Errorf("got %d paths, want one per species", got)
	}
	for _, id := range []string{"Lead", "ROS"} {
		if !strings.Contains(svg, ">"+id+"</text>") {
			t.Errorf("legend entry for %s missing", id)
		}
	}
}

func TestTimeSeriesSVG_SkipsUnknownSpecies(t *testing.T) {
	svg := TimeSeriesSVG(sampleSeries(), []string{"Lead", "Unobtainium"}, 640, 400)
	if got := strings.Count(svg, "<path "); got != 1 {
		t.Errorf("got %d paths, want the unknown species skipped", got)
	}
}

func TestTimeSeriesSVG_Degenerate(t *testing.T) {
	if svg := TimeSeriesSVG(&sim.TimeSeries{}, []string{"A"}, 640, 400); svg != "" {
		t.Error("empty series produced output")
	}
	one := &sim.TimeSeries{SpeciesIDs: []string{"A"}, Times: []float64{0}, Values: [][]float64{{1}}}
	if svg := TimeSeriesSVG(one, []string{"A"}, 640, 400); svg != "" {
		t.Error("single-sample series produced output")
	}
	if svg := TimeSeriesSVG(sampleSeries(), []string{"Unobtainium"}, 640, 400); svg != "" {
		t.Error("output with no resolvable species")
	}
}

func TestDoseResponseSVG(t *testing.T) {
	points := []analysis.ResponsePoint{
		{Dose: 0, Value: 0.1}, {Dose: 5, Value: 2}, {Dose: 10, Value: 3},
	}
	svg := DoseResponseSVG(points, 640, 400)

	if !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("output is not a closed SVG document")
	}
	if got := strings.Count(svg, "<circle "); got != 3 {
		t.Errorf("got %d markers, want one per point", got)
	}
	if got := strings.Count(svg, "<path "); got != 1 {
		t.Errorf("got %d paths, want a single curve", got)
	}
}

func TestDoseResponseSVG_TooFewPoints(t *testing.T) {
	if svg := DoseResponseSVG([]analysis.ResponsePoint{{Dose: 1, Value: 1}}, 640, 400); svg != "" {
		t.Error("single point produced output")
	}
}
