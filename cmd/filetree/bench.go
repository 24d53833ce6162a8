// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/cockroachdb/crlib/crhumanize"
	"github.com/cockroachdb/crlib/crtime"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/filetree"
	"github.com/cockroachdb/tokenbucket"
	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	minLatency = 10 * time.Nanosecond
	maxLatency = 10 * time.Second

	maxPlotWidth = 120
)

var benchConfig struct {
	concurrency int
	ops         int
	rate        float64
	missPercent float64
	plotHeight  int
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "benchmark searches with every traversal strategy",
	Long: `
Runs --ops searches per traversal strategy against the tree, for keys drawn at
random from the tree (plus --miss-percent keys that are absent), and reports
latency percentiles and nodes visited.
`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

type benchResult struct {
	strategy filetree.Strategy
	ops      int64
	found    int64
	visited  int64
	elapsed  time.Duration
	hist     *hdrhistogram.Histogram
}

func clampLatency(d time.Duration) time.Duration {
	return min(max(d, minLatency), maxLatency)
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchConfig.concurrency < 1 {
		return errors.Newf("--concurrency must be >= 1, got %d", benchConfig.concurrency)
	}
	if benchConfig.missPercent < 0 || benchConfig.missPercent > 100 {
		return errors.Newf("--miss-percent must be in [0, 100], got %.1f", benchConfig.missPercent)
	}
	opts, err := makeOptions()
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	opts.Metrics = filetree.NewMetrics()
	for _, c := range opts.Metrics.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	t, err := loadTree(cmd.InOrStdin(), opts)
	if err != nil {
		return err
	}
	defer t.Release()
	if t.Len() == 0 {
		return errors.New("bench: no records to search")
	}

	stdout := cmd.OutOrStdout()
	fmt.Fprintf(stdout, "%s records, height %d, %s searches per strategy\n",
		crhumanize.Count(int64(t.Len()), crhumanize.Compact), t.Height(),
		crhumanize.Count(int64(benchConfig.ops), crhumanize.Compact))

	targets := benchTargets(t, opts, benchConfig.ops, benchConfig.missPercent, loadConfig.seed)
	ctx := context.Background()
	var results []benchResult
	for _, s := range filetree.Strategies {
		r, err := benchStrategy(ctx, t, s, targets)
		if err != nil {
			return err
		}
		results = append(results, r)
	}
	writeBenchTable(stdout, results)

	if benchConfig.plotHeight > 0 {
		for _, s := range filetree.Strategies {
			fmt.Fprintf(stdout, "\n%s: nodes visited by in-order position\n", s)
			fmt.Fprintln(stdout, asciigraph.Plot(visitProfile(t, s), asciigraph.Height(benchConfig.plotHeight)))
		}
	}
	return writeMetricsSummary(stdout, reg)
}

// benchTargets returns n targets. Hits carry the name key of a random record;
// misses carry a key derived from a name that is not a record name.
func benchTargets(
	t *filetree.Tree, opts *filetree.Options, n int, missPercent float64, seed uint64,
) []filetree.Target {
	var records []*filetree.Record
	names := make(map[string]struct{}, t.Len())
	for nd := range t.Walk(filetree.InOrder) {
		records = append(records, nd.Record())
		names[nd.Record().Name()] = struct{}{}
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	targets := make([]filetree.Target, n)
	for i := range targets {
		if rng.Float64()*100 < missPercent {
			miss := fmt.Sprintf("missing-%d", i)
			if _, ok := names[miss]; !ok {
				targets[i] = filetree.NameTarget(opts.KeyFunc(miss))
				continue
			}
		}
		targets[i] = filetree.NameTarget(records[rng.IntN(len(records))].NameKey())
	}
	return targets
}

func benchStrategy(
	ctx context.Context, t *filetree.Tree, s filetree.Strategy, targets []filetree.Target,
) (benchResult, error) {
	r := benchResult{
		strategy: s,
		hist:     hdrhistogram.New(minLatency.Nanoseconds(), maxLatency.Nanoseconds(), 2),
	}
	var mu sync.Mutex
	var found, visited, ops atomic.Int64

	var limiter *tokenbucket.TokenBucket
	if benchConfig.rate > 0 {
		limiter = &tokenbucket.TokenBucket{}
		rate := tokenbucket.TokensPerSecond(benchConfig.rate)
		limiter.Init(rate, tokenbucket.Tokens(max(1, benchConfig.rate*0.1)))
	}

	start := crtime.NowMono()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(benchConfig.concurrency)
	for i := range targets {
		// The limiter is only touched from this goroutine.
		if limiter != nil {
			if err := limiter.WaitCtx(gctx, 1); err != nil {
				break
			}
		}
		g.Go(func() error {
			res := t.Find(s, targets[i])
			ops.Add(1)
			visited.Add(int64(res.Visited))
			if res.Found() {
				found.Add(1)
			}
			mu.Lock()
			err := r.hist.RecordValue(clampLatency(res.Elapsed).Nanoseconds())
			mu.Unlock()
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return benchResult{}, errors.Wrapf(err, "bench %s", s)
	}
	r.elapsed = start.Elapsed()
	r.ops, r.found, r.visited = ops.Load(), found.Load(), visited.Load()
	return r, nil
}

func writeBenchTable(w io.Writer, results []benchResult) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetAutoWrapText(false)
	tbl.SetHeader([]string{"Strategy", "Ops", "Found", "Visited/op", "p50", "p95", "p99", "pMax", "ops/sec"})
	for _, r := range results {
		var visitedPerOp, opsPerSec float64
		if r.ops > 0 {
			visitedPerOp = float64(r.visited) / float64(r.ops)
		}
		if r.elapsed > 0 {
			opsPerSec = float64(r.ops) / r.elapsed.Seconds()
		}
		tbl.Append([]string{
			r.strategy.String(),
			string(crhumanize.Count(r.ops, crhumanize.Compact)),
			string(crhumanize.Count(r.found, crhumanize.Compact)),
			fmt.Sprintf("%.1f", visitedPerOp),
			time.Duration(r.hist.ValueAtQuantile(50)).String(),
			time.Duration(r.hist.ValueAtQuantile(95)).String(),
			time.Duration(r.hist.ValueAtQuantile(99)).String(),
			time.Duration(r.hist.Max()).String(),
			string(crhumanize.Count(int64(opsPerSec), crhumanize.Compact)),
		})
	}
	tbl.Render()
}

// visitProfile returns, for each record in in-order position, the number of
// nodes s visits to find it. Large trees are sampled down to maxPlotWidth
// points.
func visitProfile(t *filetree.Tree, s filetree.Strategy) []float64 {
	step := max(1, (t.Len()+maxPlotWidth-1)/maxPlotWidth)
	var values []float64
	i := 0
	for n := range t.Walk(filetree.InOrder) {
		if i%step == 0 {
			res := filetree.Find(t.Root(), s, filetree.PathTarget(n.Record().PathKey()))
			values = append(values, float64(res.Visited))
		}
		i++
	}
	return values
}

// writeMetricsSummary prints the search counters gathered from reg.
func writeMetricsSummary(w io.Writer, reg *prometheus.Registry) error {
	mfs, err := reg.Gather()
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	for _, mf := range mfs {
		if mf.GetName() != "filetree_searches_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			fmt.Fprintf(w, "%s{%s} %s\n", mf.GetName(), strings.Join(labels, ","),
				crhumanize.Count(int64(m.GetCounter().GetValue()), crhumanize.Compact))
		}
	}
	return nil
}
