// Package dispatcher runs one analysis end to end: it resolves request
// parameters from the active dataset, fetches the result from the analytics
// service, normalizes it into the chart model and publishes it as the
// displayed chart.
package dispatcher

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/Bgoodwin24/insightforge/internal/catalog"
	"github.com/Bgoodwin24/insightforge/internal/logger"
	"github.com/Bgoodwin24/insightforge/internal/models"
	"github.com/Bgoodwin24/insightforge/internal/transform"
)

// Fetcher retrieves one raw analytics result
type Fetcher interface {
	Fetch(ctx context.Context, group, method string, query url.Values) ([]byte, error)
}

// Request selects one analysis against a dataset
type Request struct {
	Group     string         `json:"group"`
	Method    string         `json:"method"`
	SubMethod string         `json:"sub_method,omitempty"`
	FillValue string         `json:"fill_value,omitempty"`
	Dataset   models.Dataset `json:"dataset"`
}

// Dispatcher owns the displayed chart state. It is safe for concurrent use;
// only the most recently started Run may publish its result.
type Dispatcher struct {
	fetcher  Fetcher
	defaults Defaults
	log      *logger.Logger

	seq atomic.Uint64

	mu      sync.RWMutex
	current models.ChartState
	shown   bool
}

// New creates a dispatcher that fetches through f
func New(f Fetcher, defaults Defaults) *Dispatcher {
	return &Dispatcher{
		fetcher:  f,
		defaults: defaults,
		log:      logger.WithComponent("dispatcher"),
	}
}

// Current returns the displayed chart state, if any analysis has completed
func (d *Dispatcher) Current() (models.ChartState, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current, d.shown
}

// Run executes req and publishes the result. A run superseded by a newer
// one returns ErrStaleCompletion whatever its own outcome, and the displayed
// state is only ever replaced by a successful, current run.
func (d *Dispatcher) Run(ctx context.Context, req Request) (models.ChartState, error) {
	token := d.seq.Add(1)
	log := d.log.With(map[string]interface{}{"token": token, "method": req.Method})
	start := time.Now()

	if req.Group == "" {
		if m, ok := catalog.Lookup(req.Method); ok {
			req.Group = m.Group
		}
	}
	chart, archetype, err := d.execute(ctx, req, log)

	d.mu.Lock()
	defer d.mu.Unlock()

	if token != d.seq.Load() {
		log.Debug("discarding stale completion", map[string]interface{}{"latest": d.seq.Load()})
		return models.ChartState{}, ErrStaleCompletion
	}
	if err != nil {
		log.Warn("analysis failed", map[string]interface{}{"error": err.Error()})
		return models.ChartState{}, err
	}

	d.current = models.ChartState{
		Token:     token,
		Group:     req.Group,
		Method:    req.Method,
		Archetype: archetype,
		Chart:     chart,
	}
	d.shown = true

	log.Info("analysis applied", map[string]interface{}{
		"archetype":   string(archetype),
		"series":      len(chart.Datasets),
		"points":      chart.PointCount(),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return d.current, nil
}

func (d *Dispatcher) execute(ctx context.Context, req Request, log *logger.Logger) (models.ChartModel, models.Archetype, error) {
	method, ok := catalog.Lookup(req.Method)
	if !ok {
		return models.ChartModel{}, "", fmt.Errorf("%w: %q", ErrUnknownMethod, req.Method)
	}
	if req.Group != method.Group {
		return models.ChartModel{}, "", fmt.Errorf("%w: %q is not in group %q", ErrUnknownMethod, req.Method, req.Group)
	}
	if _, ok := transform.For(req.Method); !ok {
		return models.ChartModel{}, "", fmt.Errorf("%w: %q has no transformer", ErrUnknownMethod, req.Method)
	}
	archetype, ok := catalog.ResolveArchetype(req.Method)
	if !ok {
		return models.ChartModel{}, "", fmt.Errorf("%w: %q", ErrUnsupportedChart, req.Method)
	}

	params, err := d.defaults.resolve(req, method.Requirements)
	if err != nil {
		log.Info("request not sent", map[string]interface{}{"reason": err.Error()})
		return models.ChartModel{}, "", err
	}

	in := transform.Input{
		Method:     req.Method,
		SubMethod:  req.SubMethod,
		ColumnData: params.columnData(req.Dataset),
		Headers:    req.Dataset.Columns,
	}

	if method.IsPaired() {
		rows, err := d.fetchPaired(ctx, *method.Pair, params.query)
		if err != nil {
			return models.ChartModel{}, "", err
		}
		in.Paired = rows
	} else {
		body, err := d.fetcher.Fetch(ctx, req.Group, req.Method, params.query)
		if err != nil {
			return models.ChartModel{}, "", fmt.Errorf("%s: %w", req.Method, err)
		}
		in.Payload = gjson.ParseBytes(body)
	}

	chart, ok := transform.Apply(in)
	if !ok {
		return models.ChartModel{}, "", fmt.Errorf("%w: %q", ErrUnknownMethod, req.Method)
	}
	return chart, archetype, nil
}

// fetchPaired issues both grouped requests of a paired method concurrently
// with identical parameters. Either failure fails the whole operation.
func (d *Dispatcher) fetchPaired(ctx context.Context, pair catalog.Pair, query url.Values) ([]transform.PairedRow, error) {
	var left, right []byte
	g, gctx := errgroup.WithContext(ctx)

	fetch := func(name string, dst *[]byte) func() error {
		return func() error {
			m, ok := catalog.Lookup(name)
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownMethod, name)
			}
			body, err := d.fetcher.Fetch(gctx, m.Group, m.Name, query)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*dst = body
			return nil
		}
	}
	g.Go(fetch(pair.Left, &left))
	g.Go(fetch(pair.Right, &right))

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPartialJoin, err)
	}
	return joinPaired(gjson.ParseBytes(left), gjson.ParseBytes(right))
}
