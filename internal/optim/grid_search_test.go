package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/kinetic/internal/frame"
	"github.com/san-kum/kinetic/internal/scroll"
)

func buildPulled(p scroll.Params) (*scroll.Effect, error) {
	e, err := scroll.New(scroll.ModeDamped, p)
	if err != nil {
		return nil, err
	}
	e.SetBounds(0, 1000)
	e.SetValue(-100)
	return e, nil
}

var recoverCfg = frame.Config{Dt: 1.0 / 60, Duration: 20, StopWhenIdle: true}

func TestGridSearchPicksStiffestSpring(t *testing.T) {
	g := NewGridSearch(
		[]string{"spring_constant", "edge_damping"},
		[][]float64{{-1, 0.5, 2, 4}, {0.25}},
	)

	best, err := g.Search(context.Background(), buildPulled, scroll.DefaultParams(), nil, frame.NewSingle(), recoverCfg, ByMetric("settle_time"))
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if best.Tried != 3 {
		t.Errorf("expected the invalid spring to be skipped, tried %d", best.Tried)
	}
	if best.Values["spring_constant"] != 4 {
		t.Errorf("expected spring 4 to win, got %v", best.Values)
	}
	if best.Params.SpringConstant != 4 || best.Params.EdgeDamping != 0.25 {
		t.Errorf("unexpected winning params: %+v", best.Params)
	}
	if best.Score <= 0 || best.Score > 1 {
		t.Errorf("expected a sub-second settle, got %f", best.Score)
	}
}

func TestGridSearchUnknownParam(t *testing.T) {
	g := NewGridSearch([]string{"gravity"}, [][]float64{{1}})
	_, err := g.Search(context.Background(), buildPulled, scroll.DefaultParams(), nil, nil, recoverCfg, ByMetric("settle_time"))
	if !errors.Is(err, scroll.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestGridSearchNothingAccepted(t *testing.T) {
	g := NewGridSearch([]string{"spring_constant"}, [][]float64{{2}})
	_, err := g.Search(context.Background(), buildPulled, scroll.DefaultParams(), nil, nil, recoverCfg, ByMetric("no_such_metric"))
	if err == nil {
		t.Error("expected an error when every candidate is rejected")
	}
}

func TestGridSearchMismatchedGrid(t *testing.T) {
	g := NewGridSearch([]string{"spring_constant", "edge_damping"}, [][]float64{{2}})
	if _, err := g.Search(context.Background(), buildPulled, scroll.DefaultParams(), nil, nil, recoverCfg, ByMetric("settle_time")); err == nil {
		t.Error("expected an error for a mismatched grid")
	}
}

func TestGridSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGridSearch([]string{"spring_constant"}, [][]float64{{2, 4}})
	if _, err := g.Search(ctx, buildPulled, scroll.DefaultParams(), nil, nil, recoverCfg, ByMetric("settle_time")); err == nil {
		t.Error("expected cancellation to stop the search")
	}
}
