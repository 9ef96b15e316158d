package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/physlab/internal/analysis"
	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/logging"
	"github.com/san-kum/physlab/internal/sim"
	"github.com/san-kum/physlab/internal/sink"
	"github.com/san-kum/physlab/internal/storage"
	"github.com/san-kum/physlab/internal/viz"
)

// loadConfig layers the config file, the preset and the flags the user
// set, in that order.
func loadConfig(cmd *cobra.Command, name string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if name != "" {
		cfg.Scenario = name
	}

	if preset != "" {
		p := config.GetPreset(cfg.Scenario, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Scenario))
		}
		cfg.Apply(p)
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("tmax") {
		cfg.TMax = tmax
	}
	if flags.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if flags.Changed("capture-every") {
		cfg.CaptureEvery = captureEvery
	}
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("rate") {
		cfg.Rate = pace
	}
	if flags.Changed("csv") {
		cfg.Output.CSV = csvPath
	}
	if flags.Changed("png") {
		cfg.Output.PNGDir = pngDir
	}
	if flags.Changed("frames") {
		cfg.Output.Frames = framesDir
	}
	if flags.Changed("frame-prefix") {
		cfg.Output.FramePrefix = framePrefix
	}
	if flags.Changed("ascii") {
		cfg.Output.ASCII = asciiPlot
	}
	if flags.Changed("log-level") || cfg.Log.Level == "" {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") || cfg.Log.Format == "" {
		cfg.Log.Format = logFormat
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}

	overrides, err := parseParams(params)
	if err != nil {
		return nil, err
	}
	for k, v := range overrides {
		cfg.SetParam(k, v)
	}
	return cfg, cfg.Validate()
}

func parseParams(args []string) (map[string]float64, error) {
	out := make(map[string]float64, len(args))
	for _, a := range args {
		name, value, ok := strings.Cut(a, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("param %q: want name=value", a)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", a, err)
		}
		out[name] = v
	}
	return out, nil
}

func scenarioArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func openStore() *storage.Store { return storage.New(dataDir) }

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

type outputs struct {
	sinks  sim.Sinks
	rec    *sink.Recorder
	csv    *sink.CSVPlot
	ascii  *sink.ASCIIPlot
	png    *sink.PNGPlot
	closer io.Closer
}

func newOutputs(cfg *config.Config) (*outputs, error) {
	o := &outputs{rec: sink.NewRecorder()}
	plots := []sink.Plot{o.rec}

	switch cfg.Output.CSV {
	case "":
	case "-":
		o.csv = sink.NewCSVPlot(os.Stdout)
	default:
		f, err := os.Create(cfg.Output.CSV)
		if err != nil {
			return nil, err
		}
		o.closer = f
		o.csv = sink.NewCSVPlot(f)
	}
	if o.csv != nil {
		plots = append(plots, o.csv)
	}
	if cfg.Output.ASCII {
		o.ascii = sink.NewASCIIPlot(70, 12)
		plots = append(plots, o.ascii)
	}
	if cfg.Output.PNGDir != "" {
		o.png = sink.NewPNGPlot(cfg.Output.PNGDir)
		plots = append(plots, o.png)
	}

	o.sinks = sim.Sinks{Plot: sink.Plots(plots...), Pacer: sink.Pace(cfg.Rate)}
	if cfg.Output.Frames != "" {
		frames := sink.NewFrameCapture(cfg.Output.Frames, cfg.Output.FramePrefix)
		o.sinks.Render = frames
		o.sinks.Capture = frames
	}
	return o, nil
}

// finish flushes every file output.
func (o *outputs) finish(logger *zap.Logger) error {
	if o.csv != nil {
		if err := o.csv.Flush(); err != nil {
			return err
		}
	}
	if o.closer != nil {
		if err := o.closer.Close(); err != nil {
			return err
		}
	}
	if o.png != nil {
		files, err := o.png.Save()
		if err != nil {
			return err
		}
		for _, f := range files {
			logger.Info("wrote plot", zap.String("path", f))
		}
	}
	if o.ascii != nil {
		return o.ascii.Render(os.Stdout)
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, scenarioArg(args))
	if err != nil {
		return err
	}
	logger := logging.InitializeLogger(cfg.Log)
	defer logging.Sync()

	s, err := registry.Configure(cfg.Scenario, cfg.Params)
	if err != nil {
		return err
	}
	out, err := newOutputs(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	runner := sim.NewRunner(sim.WithLogger(logger), sim.WithSinks(out.sinks))
	result, runErr := runner.Run(ctx, s, cfg.Sim())
	if result == nil {
		return runErr
	}
	if err := out.finish(logger); err != nil {
		return err
	}

	if !noSave {
		st := openStore()
		if err := st.Init(); err != nil {
			return err
		}
		if _, err := st.Save(result, cfg.Mode, s.GetParams(), out.rec.AllSeries()); err != nil {
			return err
		}
	}

	report := os.Stdout
	if cfg.Output.CSV == "-" {
		report = os.Stderr
	}
	printResult(report, result)
	return runErr
}

func printResult(w io.Writer, r *sim.Result) {
	fmt.Fprintf(w, "run id:   %s\n", r.RunID)
	fmt.Fprintf(w, "scenario: %s\n", r.Scenario)
	fmt.Fprintf(w, "ended:    %s at t=%.4g after %s steps (%v)\n", r.Reason, r.Time, humanize.Comma(int64(r.Steps)), r.Elapsed.Round(time.Millisecond))
	if r.Snapshots > 0 {
		fmt.Fprintf(w, "frames:   %d\n", r.Snapshots)
	}
	fmt.Fprintln(w, "\nmetrics:")
	names := make([]string, 0, len(r.Metrics))
	for name := range r.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6g\n", name, r.Metrics[name])
	}
}

func listScenarios(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tPARAMETERS")
	for _, name := range registry.Names() {
		s, err := registry.Get(name)
		if err != nil {
			return err
		}
		ps := s.GetParams()
		keys := make([]string, 0, len(ps))
		for k := range ps {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = fmt.Sprintf("%s=%g", k, ps[k])
		}
		fmt.Fprintf(w, "%s\t%s\n", name, strings.Join(pairs, " "))
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := openStore().List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tWHEN\tSTEPS\tREASON\tDRIFT")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.3g\n",
			r.ID, r.Scenario, humanize.Time(r.Timestamp), humanize.Comma(int64(r.Steps)), r.Reason, r.EnergyDrift)
	}
	return w.Flush()
}

func converge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, scenarioArg(args))
	if err != nil {
		return err
	}
	logger := logging.InitializeLogger(cfg.Log)
	defer logging.Sync()

	s, err := registry.Configure(cfg.Scenario, cfg.Params)
	if err != nil {
		return err
	}
	base := cfg.Dt
	if base == 0 {
		m, err := s.Build()
		if err != nil {
			return err
		}
		base = m.Defaults.Dt
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := sim.NewEnsemble(s, logger).Run(ctx, cfg.Sim(), sim.Halving(base, levels))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSTEPS\tDRIFT")
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%s\t%.4g\n", r.Dt, humanize.Comma(int64(r.Steps)), r.EnergyDrift)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	order, err := sim.DriftOrder(results)
	if err != nil {
		return err
	}
	fmt.Printf("\nempirical order: %.3f\n", order)
	return nil
}

func pickSeries(all []sink.RecordedSeries, label string) (sink.RecordedSeries, error) {
	if len(all) == 0 {
		return sink.RecordedSeries{}, fmt.Errorf("no series recorded")
	}
	if label == "" {
		return all[0], nil
	}
	for _, s := range all {
		if s.Label == label {
			return s, nil
		}
	}
	labels := make([]string, len(all))
	for i, s := range all {
		labels[i] = s.Label
	}
	return sink.RecordedSeries{}, fmt.Errorf("unknown series: %s (available: %v)", label, labels)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	all, err := openStore().LoadSeries(args[0])
	if err != nil {
		return err
	}
	s, err := pickSeries(all, seriesName)
	if err != nil {
		return err
	}

	fmt.Printf("series: %s (%d samples)\n", s.Label, len(s.Points))
	if f, err := analysis.DominantFrequency(s.Points); err == nil {
		fmt.Printf("dominant frequency: %.6g (period %.6g)\n", f, 1/f)
	} else {
		fmt.Printf("dominant frequency: %v\n", err)
	}
	if p, err := analysis.Period(s.Points); err == nil {
		fmt.Printf("mean-crossing period: %.6g\n", p)
	}

	fmt.Println("\nphase portrait:")
	fmt.Print(analysis.PortraitASCII(analysis.Portrait(s.Points), 60, 20))
	return nil
}

// record runs s to the end and returns one of its series.
func record(ctx context.Context, s sim.Scenario, cfg sim.Config, label string) (sink.RecordedSeries, error) {
	rec := sink.NewRecorder()
	runner := sim.NewRunner(sim.WithSinks(sim.Sinks{Plot: rec}))
	if _, err := runner.Run(ctx, s, cfg); err != nil {
		return sink.RecordedSeries{}, err
	}
	return pickSeries(rec.AllSeries(), label)
}

func sweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	points, err := analysis.Sweep(ctx, analysis.Linspace(sweepFrom, sweepTo, sweepN), func(ctx context.Context, v float64) (float64, error) {
		ps := map[string]float64{sweepParam: v}
		for k, pv := range cfg.Params {
			if k != sweepParam {
				ps[k] = pv
			}
		}
		s, err := registry.Configure(cfg.Scenario, ps)
		if err != nil {
			return 0, err
		}
		series, err := record(ctx, s, cfg.Sim(), seriesName)
		if err != nil {
			return 0, err
		}
		return analysis.Period(series.Points)
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPERIOD\n", strings.ToUpper(sweepParam))
	for _, p := range points {
		fmt.Fprintf(w, "%g\t%.6g\n", p.Param, p.Value)
	}
	return w.Flush()
}

func chaos(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	name := args[1]
	base, err := registry.Configure(cfg.Scenario, cfg.Params)
	if err != nil {
		return err
	}
	v, ok := base.GetParams()[name]
	if !ok {
		return fmt.Errorf("unknown param: %s", name)
	}

	ctx, cancel := signalContext()
	defer cancel()

	var runs [2]sink.RecordedSeries
	for i, pv := range []float64{v, v + delta} {
		s, err := registry.Configure(cfg.Scenario, cfg.Params)
		if err != nil {
			return err
		}
		if err := s.SetParam(name, pv); err != nil {
			return err
		}
		if runs[i], err = record(ctx, s, cfg.Sim(), seriesName); err != nil {
			return err
		}
	}

	lambda, err := analysis.Divergence(runs[0].Points, runs[1].Points)
	if err != nil {
		return err
	}
	fmt.Printf("series: %s\n", runs[0].Label)
	fmt.Printf("separation growth rate: %.4g per unit time\n", lambda)
	if lambda > 0 {
		fmt.Printf("nearby runs diverge: e-folding time %.4g\n", 1/lambda)
	} else {
		fmt.Println("nearby runs stay together")
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, scenarioArg(args))
	if err != nil {
		return err
	}
	logger := liveLogger(cfg)
	defer logging.Sync()

	if len(args) == 0 {
		return viz.RunPicker(registry.Names(), lookup, cfg.Sim(), logger)
	}
	s, err := registry.Configure(cfg.Scenario, cfg.Params)
	if err != nil {
		return err
	}
	return viz.Run(s, cfg.Sim(), logger)
}
