// Command simulate plays many settlements with a scripted policy and
// summarises how they turned out.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"

	"github.com/mcweebus/quietcurrent/internal/chronicle"
	"github.com/mcweebus/quietcurrent/internal/config"
	"github.com/mcweebus/quietcurrent/internal/game"
)

// runSummary is one settlement's end state.
type runSummary struct {
	Seed        int64  `csv:"seed"`
	Variant     string `csv:"variant"`
	Actions     int    `csv:"actions"`
	ConnectedAt int    `csv:"connected_at"`
	Power       int    `csv:"power"`
	Scrap       int    `csv:"scrap"`
	Water       int    `csv:"water"`
	Seeds       int    `csv:"seeds"`
	Residents   int    `csv:"residents"`
	Active      int    `csv:"active_cells"`
	Buildings   int    `csv:"buildings"`
	Fragments   int    `csv:"fragments"`
}

func main() {
	configPath := flag.String("config", "", "YAML config overlay (empty = defaults)")
	seeds := flag.Int("seeds", 20, "number of settlements to play")
	actions := flag.Int("actions", 1500, "actions per settlement")
	variantFlag := flag.String("variant", "", "garden variant (crops or network, empty = config)")
	chroniclePath := flag.String("chronicle", "", "CSV path for every action (empty = config chronicle.path)")
	summaryPath := flag.String("summary", "", "CSV path for per-seed results (empty = skip)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := cfg.Log.Logger(os.Stderr)
	slog.SetDefault(logger)

	variantName := cfg.Game.Variant
	if *variantFlag != "" {
		variantName = *variantFlag
	}
	variant, err := game.ParseVariant(variantName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *chroniclePath == "" {
		*chroniclePath = cfg.Chronicle.Path
	}
	writer, err := chronicle.OpenWriter(*chroniclePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer writer.Close()

	var sink chronicle.Sink
	if writer != nil {
		sink = writer
	}
	results := make([]runSummary, 0, *seeds)
	for i := 0; i < *seeds; i++ {
		seed := int64(i*1000 + 42)
		res, err := simulate(seed, variant, *actions, sink)
		if err != nil {
			logger.Error("simulation failed", "seed", seed, "err", err)
			os.Exit(1)
		}
		logger.Info("settlement finished", "seed", seed, "connected_at", res.ConnectedAt, "residents", res.Residents)
		results = append(results, res)
	}

	if *summaryPath != "" {
		if err := writeSummary(*summaryPath, results); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	printStats(results)
}

// simulate plays one settlement for n actions. Every ticked action goes to
// sink when it is set.
func simulate(seed int64, variant game.Variant, n int, sink chronicle.Sink) (runSummary, error) {
	w := game.NewWorld("sim-"+strconv.FormatInt(seed, 10), variant, seed)
	s := game.NewSession(w, nil)
	out := runSummary{Seed: seed, Variant: string(variant), ConnectedAt: -1}

	batch := make([]chronicle.Entry, 0, 64)
	flush := func() error {
		if sink == nil || len(batch) == 0 {
			batch = batch[:0]
			return nil
		}
		err := sink.Write(batch...)
		batch = batch[:0]
		return err
	}

	for step := 0; w.ActionCount < n && step < n*4; step++ {
		cmd := nextCommand(s, step)
		res := s.Execute(cmd)
		if !res.Ticked {
			// The policy asked for something the world refused; let time pass.
			cmd = "wait"
			res = s.Execute(cmd)
		}
		if out.ConnectedAt < 0 && w.PanelState == game.PanelConnected {
			out.ConnectedAt = w.ActionCount
		}
		batch = append(batch, chronicle.Snapshot(s, cmd, res))
		if len(batch) == cap(batch) {
			if err := flush(); err != nil {
				return out, err
			}
		}
	}
	if err := flush(); err != nil {
		return out, err
	}

	out.Actions = w.ActionCount
	out.Power = w.Power
	out.Scrap = w.Scrap
	out.Water = w.Water
	out.Seeds = w.Seeds
	out.Residents = len(w.Residents)
	out.Active = game.ActiveCells(w, s.Rules)
	out.Fragments = w.AncestralRevealed
	for _, b := range game.Buildings() {
		if w.Has(b.Key) {
			out.Buildings++
		}
	}
	return out, nil
}

func writeSummary(path string, results []runSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating summary: %w", err)
	}
	defer f.Close()
	if err := gocsv.Marshal(results, f); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

type metricStats struct {
	Name   string
	Mean   float64
	StdDev float64
	Median float64
	Min    float64
	Max    float64
}

func metric(name string, results []runSummary, pick func(runSummary) int) metricStats {
	xs := make([]float64, 0, len(results))
	for _, r := range results {
		if v := pick(r); v >= 0 {
			xs = append(xs, float64(v))
		}
	}
	m := metricStats{Name: name}
	if len(xs) == 0 {
		return m
	}
	sort.Float64s(xs)
	m.Mean, m.StdDev = stat.MeanStdDev(xs, nil)
	m.Median = stat.Quantile(0.5, stat.Empirical, xs, nil)
	m.Min, m.Max = xs[0], xs[len(xs)-1]
	return m
}

func summarize(results []runSummary) []metricStats {
	return []metricStats{
		metric("connected_at", results, func(r runSummary) int { return r.ConnectedAt }),
		metric("power", results, func(r runSummary) int { return r.Power }),
		metric("scrap", results, func(r runSummary) int { return r.Scrap }),
		metric("residents", results, func(r runSummary) int { return r.Residents }),
		metric("active_cells", results, func(r runSummary) int { return r.Active }),
		metric("buildings", results, func(r runSummary) int { return r.Buildings }),
		metric("fragments", results, func(r runSummary) int { return r.Fragments }),
	}
}

func printStats(results []runSummary) {
	fmt.Printf("%d settlements\n", len(results))
	fmt.Printf("%-14s %9s %9s %9s %7s %7s\n", "metric", "mean", "stddev", "median", "min", "max")
	for _, m := range summarize(results) {
		fmt.Printf("%-14s %9.2f %9.2f %9.2f %7.0f %7.0f\n", m.Name, m.Mean, m.StdDev, m.Median, m.Min, m.Max)
	}
}

func itoa(n int) string { return strconv.Itoa(n) }
