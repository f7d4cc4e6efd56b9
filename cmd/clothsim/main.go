package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/tombanker/clothsim/internal/analysis"
	"github.com/tombanker/clothsim/internal/cloth"
	"github.com/tombanker/clothsim/internal/config"
	"github.com/tombanker/clothsim/internal/export"
	"github.com/tombanker/clothsim/internal/gui"
	"github.com/tombanker/clothsim/internal/metrics"
	"github.com/tombanker/clothsim/internal/sim"
	"github.com/tombanker/clothsim/internal/storage"
	"github.com/tombanker/clothsim/internal/sweep"
	"github.com/tombanker/clothsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	rows     int
	cols     int
	spacing  float64
	dt       float64
	duration float64

	windOn      bool
	sphereOn    bool
	selfCollide bool

	frameRate   int
	recordEvery int

	// export-svg
	svgWidth  int
	svgHeight int
	svgOut    string
	svgTraj   bool

	// sweep
	sweepParams []string
	sweepMetric string

	// analyze
	analyzeAxis string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clothsim",
		Short: "real-time mass-spring cloth simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the 3D GUI when no command given.
			return runGUI(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".clothsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and record the result",
		RunE:  runSimulation,
	}
	addSceneFlags(runCmd)
	runCmd.Flags().IntVar(&recordEvery, "record-every", 1, "record one frame out of every n")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live terminal visualization",
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run simulation in the 3D window",
		RunE:  runGUI,
	}
	addSceneFlags(guiCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the tracked particle",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&analyzeAxis, "axis", "z", "tracked axis to analyze (x, y, z)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "run the configured scene and export an SVG snapshot",
		RunE:  exportSVG,
	}
	addSceneFlags(exportSVGCmd)
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "cloth.svg", "output file")
	exportSVGCmd.Flags().BoolVar(&svgTraj, "trajectory", false, "plot the tracked particle trajectory instead of the mesh")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search over cloth parameters",
		RunE:  runSweep,
	}
	addSceneFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "parameter values as name=v1,v2,... (repeatable)")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "max_stretch", "metric to minimize (max_stretch, energy_drift, pin_drift)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark grid sizes",
		RunE:  benchGrids,
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, analyzeCmd,
		exportCSVCmd, exportSVGCmd, presetsCmd, sweepCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "grid rows")
	cmd.Flags().IntVar(&cols, "cols", config.DefaultCols, "grid columns")
	cmd.Flags().Float64Var(&spacing, "spacing", config.DefaultSpacing, "rest distance between neighbors")
	cmd.Flags().Float64Var(&dt, "dt", cloth.DefaultTimestep, "timestep")
	cmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	cmd.Flags().BoolVar(&windOn, "wind", false, "enable wind")
	cmd.Flags().BoolVar(&sphereOn, "sphere", false, "enable collision sphere")
	cmd.Flags().BoolVar(&selfCollide, "self-collide", false, "enable cloth self-collision")
}

// loadConfig resolves the scene: preset, then config file, then flags that
// were explicitly set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("rows") {
		cfg.Rows = rows
	}
	if cmd.Flags().Changed("cols") {
		cfg.Cols = cols
	}
	if cmd.Flags().Changed("spacing") {
		cfg.Spacing = spacing
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("wind") {
		cfg.Wind.Enabled = windOn
	}
	if cmd.Flags().Changed("sphere") {
		cfg.Collision.Sphere = sphereOn
	}
	if cmd.Flags().Changed("self-collide") {
		cfg.Collision.Self = selfCollide
	}

	return cfg, nil
}

func buildScene(cmd *cobra.Command) (*cloth.Cloth, sim.Config, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, sim.Config{}, nil, err
	}

	c, err := cfg.Build()
	if err != nil {
		return nil, sim.Config{}, nil, err
	}

	runCfg := sim.DefaultConfig(c)
	runCfg.Dt = cfg.Dt
	runCfg.Duration = cfg.Duration
	runCfg.SelfCollide = cfg.Collision.Self
	if cfg.Collision.Sphere {
		runCfg.Sphere = sim.SphereScene{
			Enabled: true,
			Center:  cfg.SphereCenter(),
			Radius:  cfg.Collision.SphereRadius,
		}
	}

	return c, runCfg, cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	c, runCfg, cfg, err := buildScene(cmd)
	if err != nil {
		return err
	}
	runCfg.RecordEvery = recordEvery

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.New(c)
	runner.AddMetric(metrics.NewEnergyDrift())
	runner.AddMetric(metrics.NewMaxStretch())
	runner.AddMetric(metrics.NewPinDrift())

	fmt.Printf("running %dx%d cloth for %.1fs...\n", cfg.Rows, cfg.Cols, cfg.Duration)
	start := time.Now()

	result, err := runner.Run(context.Background(), runCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(preset, cfg.Rows, cfg.Cols, cfg.Spacing, cfg.Dt, cfg.Duration, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, runErr := range result.Errors {
		fmt.Printf("warning: %v\n", runErr)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	c, runCfg, _, err := buildScene(cmd)
	if err != nil {
		return err
	}
	return viz.Run(c, runCfg, frameRate)
}

func runGUI(cmd *cobra.Command, args []string) error {
	c, runCfg, _, err := buildScene(cmd)
	if err != nil {
		return err
	}
	gui.NewApp(c, runCfg).Run()
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tGRID\tDURATION\tDT\tSTEPS")

	for _, run := range runs {
		presetName := run.Preset
		if presetName == "" {
			presetName = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			presetName,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Rows,
			run.Cols,
			run.Duration,
			run.Dt,
			run.Steps,
		)
	}

	return w.Flush()
}

// frames.csv column order: time, track_x, track_y, track_z, energy, max_stretch.
const (
	colTime = iota
	colTrackX
	colTrackY
	colTrackZ
	colEnergy
	colMaxStretch
)

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d\n", meta.Rows, meta.Cols)
	fmt.Printf("samples: %d\n\n", len(frames))

	plots := []struct {
		col     int
		caption string
	}{
		{colTrackY, "tracked particle height"},
		{colTrackZ, "tracked particle sway"},
		{colEnergy, "total energy"},
		{colMaxStretch, "max stretch ratio"},
	}

	for _, p := range plots {
		data := make([]float64, len(frames))
		for i := range frames {
			if p.col < len(frames[i]) {
				data[i] = frames[i][p.col]
			}
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data")
	}

	col := colTrackZ
	switch analyzeAxis {
	case "x":
		col = colTrackX
	case "y":
		col = colTrackY
	case "z":
		col = colTrackZ
	default:
		return fmt.Errorf("unknown axis %q (want x, y, or z)", analyzeAxis)
	}

	data := make([]float64, len(frames))
	for i := range frames {
		if col < len(frames[i]) {
			data[i] = frames[i][col]
		}
	}

	fmt.Printf("frequency analysis: %s (track_%s)\n\n", meta.ID, analyzeAxis)

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:len(ps)/4]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "track_x", "track_y", "track_z", "energy", "max_stretch"}); err != nil {
		return err
	}
	for _, frame := range frames {
		row := make([]string, len(frame))
		for i, v := range frame {
			row[i] = strconv.FormatFloat(v, 'f', 6, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	c, runCfg, cfg, err := buildScene(cmd)
	if err != nil {
		return err
	}

	runner := sim.New(c)
	result, err := runner.Run(context.Background(), runCfg)
	if err != nil {
		return err
	}

	var svg string
	if svgTraj {
		xs := make([]float64, len(result.Frames))
		ys := make([]float64, len(result.Frames))
		for i, f := range result.Frames {
			xs[i] = f.Time
			ys[i] = f.Tracked.Y()
		}
		svg = export.TrajectoryToSVG(xs, ys, svgWidth, svgHeight, "#00ff88")
	} else {
		svg = export.ClothToSVG(c, svgWidth, svgHeight)
	}
	if svg == "" {
		return fmt.Errorf("nothing to export")
	}

	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d cloth after %.1fs)\n", svgOut, cfg.Rows, cfg.Cols, cfg.Duration)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	if len(sweepParams) == 0 {
		return fmt.Errorf("at least one --param name=v1,v2,... is required")
	}

	names := make([]string, 0, len(sweepParams))
	values := make([][]float64, 0, len(sweepParams))
	for _, spec := range sweepParams {
		name, list, ok := strings.Cut(spec, "=")
		if !ok {
			return fmt.Errorf("bad --param %q (want name=v1,v2,...)", spec)
		}
		fields := strings.Split(list, ",")
		vals := make([]float64, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return fmt.Errorf("bad value in --param %q: %w", spec, err)
			}
			vals = append(vals, v)
		}
		names = append(names, name)
		values = append(values, vals)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	gs, err := sweep.NewGridSearch(names, values)
	if err != nil {
		return err
	}

	combos := 1
	for _, v := range values {
		combos *= len(v)
	}
	fmt.Printf("sweeping %d combinations, minimizing %s...\n", combos, sweepMetric)
	start := time.Now()

	best, score, err := gs.Search(context.Background(), cfg, sweepMetric)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))
	fmt.Printf("best %s: %.6f\n", sweepMetric, score)
	for name, val := range best {
		fmt.Printf("  %s = %g\n", name, val)
	}

	return nil
}

func benchGrids(cmd *cobra.Command, args []string) error {
	grids := []struct{ rows, cols int }{
		{10, 10},
		{20, 20},
		{40, 40},
	}
	durations := []float64{1.0, 5.0}

	fmt.Println("benchmarking cloth update")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tDURATION\tSTEPS\tTIME\tSTEPS/SEC")

	for _, g := range grids {
		for _, dur := range durations {
			c, err := cloth.New(g.rows, g.cols, config.DefaultSpacing)
			if err != nil {
				return err
			}

			runner := sim.New(c)
			cfg := sim.DefaultConfig(c)
			cfg.Duration = dur
			cfg.RecordEvery = 0x7fffffff
			cfg.ValidateState = false

			start := time.Now()
			result, err := runner.Run(context.Background(), cfg)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%dx%d\t%.1fs\t%d\t%v\t%.0f\n",
				g.rows, g.cols, dur, result.StepsTaken, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}
