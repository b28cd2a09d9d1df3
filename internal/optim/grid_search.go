// Package optim calibrates rate parameters against observed response
// values by exhaustive grid search.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Pain0430/lead-network-toxicology/internal/analysis"
	"github.com/Pain0430/lead-network-toxicology/internal/kinetics"
	"github.com/Pain0430/lead-network-toxicology/internal/sim"
)

// Objective scores one candidate parameter assignment; lower is better.
// Candidates whose evaluation fails are skipped.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

type GridSearch struct {
	paramIDs []string
	ranges   [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramIDs: params, ranges: ranges}
}

// Search evaluates every point of the parameter grid and returns the best
// assignment with its score.
func (g *GridSearch) Search(ctx context.Context, eval Objective) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	if err := g.searchRecursive(ctx, 0, make(map[string]float64), eval, &best, &bestParams); err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, errors.New("optim: no candidate completed")
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	eval Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramIDs) {
		val, err := eval(ctx, current)
		if err != nil {
			return nil
		}
		if val < *best {
			*best = val
			copied := make(map[string]float64, len(current))
			for k, v := range current {
				copied[k] = v
			}
			*bestParams = copied
		}
		return nil
	}

	id := g.paramIDs[depth]
	for _, val := range g.ranges[depth] {
		current[id] = val
		if err := g.searchRecursive(ctx, depth+1, current, eval, best, bestParams); err != nil {
			return err
		}
	}
	delete(current, id)
	return nil
}

// Range returns n evenly spaced values spanning [lo, hi].
func Range(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// FitMetric builds an objective scoring the squared deviation of a target
// species' summary metric from an observed value, with the candidate
// parameters layered over the base scenario.
func FitMetric(model *kinetics.Model, cfg sim.RunConfig, base sim.Scenario, target, metric string, observed float64) Objective {
	return func(ctx context.Context, params map[string]float64) (float64, error) {
		sc := base
		merged := make(map[string]float64, len(base.ParamOverrides)+len(params))
		for k, v := range base.ParamOverrides {
			merged[k] = v
		}
		for k, v := range params {
			merged[k] = v
		}
		sc.ParamOverrides = merged

		out := sim.RunOne(ctx, model, cfg, sc)
		if out.Status != sim.StatusCompleted {
			return 0, errors.New(out.Reason)
		}
		series, ok := out.Series.Series(target)
		if !ok {
			return 0, fmt.Errorf("unknown species: %s", target)
		}
		val, err := analysis.SummarizeSeries(out.Series.Times, series).Metric(metric)
		if err != nil {
			return 0, err
		}
		d := val - observed
		return d * d, nil
	}
}
