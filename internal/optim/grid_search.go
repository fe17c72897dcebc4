// Package optim searches effect parameters for the tuning that scores
// best on a gesture.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/kinetic/internal/frame"
	"github.com/san-kum/kinetic/internal/metrics"
	"github.com/san-kum/kinetic/internal/scroll"
)

// Score rates a run; lower is better. ok=false rejects the candidate.
type Score func(r *frame.Result) (score float64, ok bool)

// ByMetric scores a run by one of the standard metrics. Negative values
// mean "never happened" (a run that did not settle) and are rejected.
func ByMetric(name string) Score {
	return func(r *frame.Result) (float64, bool) {
		v, found := r.Metrics[name]
		if !found || v < 0 {
			return 0, false
		}
		return v, true
	}
}

// Best is the winning point of a search.
type Best struct {
	Params scroll.Params
	Values map[string]float64
	Score  float64
	Tried  int
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search plays input against every combination of the grid on top of
// base and returns the lowest score. Combinations that fail validation
// are skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	build func(p scroll.Params) (*scroll.Effect, error),
	base scroll.Params,
	input frame.Input,
	stepper frame.Stepper,
	cfg frame.Config,
	score Score,
) (*Best, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, fmt.Errorf("grid has %d names but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := &Best{Score: math.Inf(1)}
	err := g.searchRecursive(ctx, 0, base, map[string]float64{}, func(p scroll.Params, values map[string]float64) error {
		e, err := build(p)
		if err != nil {
			return nil
		}
		d := frame.New(stepper)
		for _, m := range metrics.Standard() {
			d.AddMetric(m)
		}
		result, err := d.Run(ctx, e, input, cfg)
		if err != nil {
			return err
		}
		best.Tried++

		s, ok := score(result)
		if ok && s < best.Score {
			best.Score = s
			best.Params = p
			best.Values = make(map[string]float64, len(values))
			for k, v := range values {
				best.Values[k] = v
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if best.Values == nil {
		return nil, fmt.Errorf("no candidate in the grid was accepted (%d tried)", best.Tried)
	}
	return best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current scroll.Params,
	values map[string]float64,
	visit func(scroll.Params, map[string]float64) error,
) error {
	if depth == len(g.paramNames) {
		return visit(current, values)
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		if err := ctx.Err(); err != nil {
			return err
		}
		next, err := current.With(name, val)
		if errors.Is(err, scroll.ErrUnknownParam) {
			return err
		}
		if err != nil {
			continue
		}
		values[name] = val
		if err := g.searchRecursive(ctx, depth+1, next, values, visit); err != nil {
			return err
		}
	}
	delete(values, name)
	return nil
}
