// Package scanner walks an address range one host at a time and aggregates the results.
package scanner

import (
	"context"
	"iter"

	"github.com/user/lanscan/internal/iprange"
	"github.com/user/lanscan/internal/model"
	"github.com/user/lanscan/internal/util"
)

// Prober probes a single address. Implementations must not fail; faults belong
// in the returned result.
type Prober interface {
	Probe(ctx context.Context, addr iprange.IPv4) model.ScanResult
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(ctx context.Context, addr iprange.IPv4) model.ScanResult

// Probe calls f.
func (f ProberFunc) Probe(ctx context.Context, addr iprange.IPv4) model.ScanResult {
	return f(ctx, addr)
}

// Engine runs sequential scans.
type Engine struct {
	prober Prober
}

// NewEngine creates a new scan engine.
func NewEngine(prober Prober) *Engine {
	return &Engine{prober: prober}
}

// Scan returns the results for r in ascending host-octet order. Addresses take
// local's first three octets. Each address is probed only when the consumer asks
// for the next result, and the scan stops once ctx is done; a probe in flight is
// never interrupted.
func (e *Engine) Scan(ctx context.Context, r iprange.Range, local iprange.IPv4) iter.Seq[model.ScanResult] {
	return func(yield func(model.ScanResult) bool) {
		targets := r.Targets(local)
		util.Debug("Scanning %d addresses (%s) from %s", len(targets), r, local)

		for i, addr := range targets {
			if err := ctx.Err(); err != nil {
				util.Info("Scan stopped after %d of %d addresses: %v", i, len(targets), err)
				return
			}
			if !yield(e.prober.Probe(ctx, addr)) {
				return
			}
		}
	}
}

// Run scans r to completion (or cancellation), passing every result to emit
// before collecting it.
func (e *Engine) Run(ctx context.Context, r iprange.Range, local iprange.IPv4, emit func(model.ScanResult)) []model.ScanResult {
	results := make([]model.ScanResult, 0, r.Count())
	for res := range e.Scan(ctx, r, local) {
		if emit != nil {
			emit(res)
		}
		results = append(results, res)
	}
	return results
}
