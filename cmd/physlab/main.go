package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/logging"
	"github.com/san-kum/physlab/internal/scenario"
	"github.com/san-kum/physlab/internal/sim"
	"github.com/san-kum/physlab/internal/viz"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	logFormat  string
	logFile    string

	dt           float64
	tmax         float64
	sampleEvery  int
	captureEvery float64
	mode         string
	pace         float64
	params       []string
	preset       string

	csvPath     string
	pngDir      string
	framesDir   string
	framePrefix string
	asciiPlot   bool
	noSave      bool

	levels     int
	seriesName string
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepN     int
	delta      float64
)

var registry = scenario.NewRegistry()

func main() {
	rootCmd := &cobra.Command{
		Use:          "physlab",
		Short:        "classical mechanics and electromagnetism lab",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, "")
			if err != nil {
				return err
			}
			return viz.RunPicker(registry.Names(), lookup, cfg.Sim(), liveLogger(cfg))
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".physlab", "data directory for saved runs")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLevel, "log level")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", config.DefaultFormat, "log format (console or json)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also log json to this file")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario to completion",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addRunFlags(runCmd)
	runCmd.Flags().Float64Var(&pace, "rate", 0, "steps per wall-clock second (0 runs unthrottled)")
	runCmd.Flags().StringVar(&csvPath, "csv", "", "stream plot samples as csv to this file (- for stdout)")
	runCmd.Flags().StringVar(&pngDir, "png", "", "write one png per graph to this directory")
	runCmd.Flags().StringVar(&framesDir, "frames", "", "write frame captures to this directory")
	runCmd.Flags().StringVar(&framePrefix, "frame-prefix", "frame", "file prefix for frame captures")
	runCmd.Flags().BoolVar(&asciiPlot, "ascii", false, "print the graphs in the terminal")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not save the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list scenarios and their parameters",
		RunE:  listScenarios,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return openStore().Export(args[0], os.Stdout)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	convergeCmd := &cobra.Command{
		Use:   "converge [scenario]",
		Short: "measure energy drift as dt halves",
		Args:  cobra.MaximumNArgs(1),
		RunE:  converge,
	}
	addRunFlags(convergeCmd)
	convergeCmd.Flags().IntVar(&levels, "levels", 4, "number of step sizes")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a saved series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&seriesName, "series", "", "series label (defaults to the first)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "measure the period of a series across a parameter range",
		Args:  cobra.ExactArgs(1),
		RunE:  sweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&seriesName, "series", "", "series label (defaults to the first)")
	sweepCmd.Flags().StringVar(&sweepParam, "sweep", "", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepN, "n", 5, "number of values")
	sweepCmd.MarkFlagRequired("sweep")

	chaosCmd := &cobra.Command{
		Use:   "chaos [scenario] [param]",
		Short: "estimate how fast two nearby runs separate",
		Args:  cobra.ExactArgs(2),
		RunE:  chaos,
	}
	addRunFlags(chaosCmd)
	chaosCmd.Flags().StringVar(&seriesName, "series", "", "series label (defaults to the first)")
	chaosCmd.Flags().Float64Var(&delta, "delta", 1e-6, "perturbation of the parameter")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a scenario with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	rootCmd.AddCommand(runCmd, listCmd, runsCmd, exportCmd, presetsCmd, convergeCmd, analyzeCmd, sweepCmd, chaosCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep (0 uses the scenario default)")
	cmd.Flags().Float64Var(&tmax, "tmax", 0, "simulated duration (0 uses the scenario default)")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", 0, "steps between plot samples")
	cmd.Flags().Float64Var(&captureEvery, "capture-every", 0, "simulated seconds between frame captures")
	cmd.Flags().StringVar(&mode, "mode", "", "integration mode: semi-implicit, explicit or midpoint")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "scenario parameter as name=value (repeatable)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func lookup(name string) (sim.Scenario, error) { return registry.Get(name) }

// liveLogger keeps the terminal clear for the live view.
func liveLogger(cfg *config.Config) *zap.Logger {
	if cfg.Log.File == "" {
		return zap.NewNop()
	}
	lc := cfg.Log
	lc.Format = "json"
	return logging.Initialize(lc, discardSyncer{}, false)
}

type discardSyncer struct{}

func (discardSyncer) Write(p []byte) (int, error) { return len(p), nil }
func (discardSyncer) Sync() error                 { return nil }
