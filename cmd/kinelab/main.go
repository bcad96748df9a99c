package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/kinelab/internal/calc"
	"github.com/san-kum/kinelab/internal/config"
	"github.com/san-kum/kinelab/internal/experiment"
	"github.com/san-kum/kinelab/internal/export"
	"github.com/san-kum/kinelab/internal/sim"
	"github.com/san-kum/kinelab/internal/storage"
	"github.com/san-kum/kinelab/internal/telemetry"
	"github.com/san-kum/kinelab/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	envFile    string
	debug      bool

	height   float64
	velocity float64
	start    float64
	target   float64
	duration float64
	variant  string
	preset   string
	realtime bool
	live     bool

	output string
	scene  bool
)

func main() {
	motions := experiment.NewRegistry().ListMotions()

	rootCmd := &cobra.Command{
		Use:          "kinelab",
		Short:        "free fall and uniform motion lab",
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default "+config.DefaultDataDir+")")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file with KINELAB_* overrides")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write a debug log to kinelab.log")

	runCmd := &cobra.Command{
		Use:       "run [freefall|uniform]",
		Short:     "run a simulation headless and store it",
		Args:      cobra.ExactArgs(1),
		ValidArgs: motions,
		RunE:      runSimulation,
	}
	addRunFlags(runCmd)

	calcCmd := &cobra.Command{
		Use:   "calc",
		Short: "one-shot kinematics calculators",
	}

	groundCmd := &cobra.Command{
		Use:   "ground",
		Short: "time for a falling object to reach the ground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, v := floatFlag(cmd, "height"), floatFlag(cmd, "velocity")
			if _, err := calc.TimeToGround(h, v); err != nil && !calc.IsNoSolution(err) {
				return err
			}
			fmt.Println(calc.DescribeGround(h, v))
			return nil
		},
	}
	groundCmd.Flags().Float64("height", config.DefaultHeight, "initial height in m")
	groundCmd.Flags().Float64("velocity", 0, "initial velocity in m/s, + is downward")

	reachCmd := &cobra.Command{
		Use:   "reach",
		Short: "time to reach a position at constant velocity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			x0, xf, v := floatFlag(cmd, "start"), floatFlag(cmd, "target"), floatFlag(cmd, "velocity")
			if _, err := calc.TimeToReach(x0, xf, v); err != nil && !calc.IsNoSolution(err) {
				return err
			}
			fmt.Println(calc.DescribeReach(x0, xf, v))
			return nil
		},
	}
	reachCmd.Flags().Float64("start", config.DefaultStart, "initial position in m")
	reachCmd.Flags().Float64("target", 0, "target position in m")
	reachCmd.Flags().Float64("velocity", config.DefaultSpeed, "velocity in m/s")

	velocityCmd := &cobra.Command{
		Use:   "velocity",
		Short: "velocity needed to cover a distance in a given time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			x0, xf, d := floatFlag(cmd, "start"), floatFlag(cmd, "target"), floatFlag(cmd, "duration")
			if _, err := calc.RequiredVelocity(x0, xf, d); err != nil {
				return err
			}
			fmt.Println(calc.DescribeVelocity(x0, xf, d))
			return nil
		},
	}
	velocityCmd.Flags().Float64("start", config.DefaultStart, "initial position in m")
	velocityCmd.Flags().Float64("target", 0, "target position in m")
	velocityCmd.Flags().Float64("duration", config.DefaultDuration, "duration in s")

	calcCmd.AddCommand(groundCmd, reachCmd, velocityCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot position and velocity of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run telemetry to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <run_id>.csv)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().BoolVar(&scene, "scene", false, "draw the braille scene instead of the position graph")

	presetsCmd := &cobra.Command{
		Use:   "presets [motion]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := motions
			if len(args) == 1 {
				names = args
			}
			for _, m := range names {
				presets := config.ListPresets(m)
				if len(presets) == 0 {
					fmt.Printf("no presets for motion: %s\n", m)
					continue
				}
				fmt.Printf("presets for %s:\n", m)
				for _, p := range presets {
					fmt.Printf("  %s\n", p)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, calcCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "initial height in m (freefall)")
	cmd.Flags().Float64Var(&velocity, "velocity", 0, "initial velocity in m/s, + is downward for freefall")
	cmd.Flags().Float64Var(&start, "start", config.DefaultStart, "initial position in m (uniform)")
	cmd.Flags().Float64Var(&target, "target", 0, "target position in m (uniform)")
	cmd.Flags().Float64Var(&duration, "duration", config.DefaultDuration, "duration in s (uniform)")
	cmd.Flags().StringVar(&variant, "variant", config.DefaultVariant, "sprite variant (ball, parachute)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().BoolVar(&realtime, "realtime", false, "tick at the animation cadence instead of as fast as possible")
	cmd.Flags().BoolVar(&live, "live", false, "print every snapshot as it is published")
}

// loadConfig builds the effective configuration: defaults, then the config
// file, then the env overlay, then the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.LoadEnv(envFile); err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = debug
	}
	return cfg, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Debug {
		f, err := tea.LogToFile("kinelab.log", "kinelab")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	return viz.Run(cfg)
}

// applyRunFlags layers the preset and the explicitly set run flags onto cfg.
// A preset overrides the config file; flags override both.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config, motion string) error {
	if preset != "" {
		p := config.GetPreset(motion, preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(motion))
		}
		cfg.Apply(p)
	}
	cfg.Motion = motion

	flags := cmd.Flags()
	if flags.Changed("variant") {
		cfg.Variant = variant
	}
	if flags.Changed("realtime") {
		cfg.Realtime = realtime
	}
	switch telemetry.Motion(motion) {
	case telemetry.FreeFall:
		if flags.Changed("height") {
			cfg.FreeFall.Height = height
		}
		if flags.Changed("velocity") {
			cfg.FreeFall.Velocity = velocity
		}
	case telemetry.Uniform:
		if flags.Changed("start") {
			cfg.Uniform.Start = start
		}
		if flags.Changed("velocity") {
			cfg.Uniform.Velocity = velocity
		}
		if flags.Changed("target") {
			t := target
			cfg.Uniform.Target = &t
		}
		if flags.Changed("duration") {
			cfg.Uniform.Duration = duration
		}
	}
	return cfg.Validate()
}

func runSimulation(cmd *cobra.Command, args []string) error {
	motion := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyRunFlags(cmd, cfg, motion); err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	pace := sim.Immediate
	if cfg.Realtime {
		pace = sim.Realtime
	}
	exp := experiment.New(experiment.Config{
		Motion:   telemetry.Motion(cfg.Motion),
		Variant:  cfg.Variant,
		FreeFall: cfg.FreeFallParams(),
		Uniform:  cfg.UniformParams(),
		Viewport: cfg.ViewportSize(),
		Pace:     pace,
	})
	if live {
		exp.Observe(telemetry.SinkFunc(printSnapshot))
	}
	if err := exp.Setup(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	fmt.Printf("running %s simulation...\n", motion)
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	runID, err := st.Save(storage.Run{
		Motion:    result.Motion,
		Variant:   cfg.Variant,
		Params:    result.Params,
		Metrics:   result.Metrics,
		Snapshots: result.Snapshots,
	})
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Wall)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.Snapshots))
	if n := len(result.Snapshots); n > 0 {
		fmt.Printf("status: %s\n", result.Snapshots[n-1].Status)
	}
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
}

func printSnapshot(s telemetry.Snapshot) {
	if s.Motion == telemetry.FreeFall {
		fmt.Printf("t=%s  h=%s  v=%s  remaining=%s  %s\n",
			telemetry.Seconds(s.Elapsed), telemetry.Meters(s.Position),
			telemetry.Speed(s.Motion, s.Velocity), telemetry.Remaining(s.TimeRemaining),
			telemetry.Percent(s.Progress))
		return
	}
	fmt.Printf("t=%s  x=%s  v=%s  final=%s  %s\n",
		telemetry.Seconds(s.Elapsed), telemetry.Meters(s.Position),
		telemetry.Speed(s.Motion, s.Velocity), telemetry.Meters(s.FinalPosition),
		telemetry.Percent(s.Progress))
}

// floatFlag reads a flag registered without a bound variable.
func floatFlag(cmd *cobra.Command, name string) float64 {
	v, _ := cmd.Flags().GetFloat64(name)
	return v
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMOTION\tVARIANT\tTIME\tSAMPLES\tSTATUS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			run.ID,
			run.Motion,
			run.Variant,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Samples,
			run.Status,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	snaps, err := st.LoadTelemetry(runID)
	if err != nil {
		return err
	}

	if len(snaps) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("motion: %s\n", meta.Motion)
	fmt.Printf("samples: %d\n\n", len(snaps))

	position := make([]float64, len(snaps))
	speed := make([]float64, len(snaps))
	for i, s := range snaps {
		position[i] = s.Position
		speed[i] = s.Velocity
	}

	positionCaption := "position (m)"
	if meta.Motion == telemetry.FreeFall {
		positionCaption = "height (m)"
	}

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{position, positionCaption},
		{speed, "velocity (m/s)"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openStore(cmd)
	if err != nil {
		return err
	}

	path := output
	if path == "" {
		path = runID + ".csv"
	}
	if err := st.ExportCSV(path, runID); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	return st.ExportJSON(os.Stdout, args[0])
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	snaps, err := st.LoadTelemetry(runID)
	if err != nil {
		return err
	}

	if output == "" {
		return export.Write(os.Stdout, snaps, scene, meta.Variant)
	}

	file, err := os.Create(output)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := export.Write(file, snaps, scene, meta.Variant); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", output)
	return nil
}
