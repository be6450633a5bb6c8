package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/raytracer/internal/canvas"
	"github.com/san-kum/raytracer/internal/color"
	"github.com/san-kum/raytracer/internal/config"
	"github.com/san-kum/raytracer/internal/export"
	"github.com/san-kum/raytracer/internal/metrics"
	"github.com/san-kum/raytracer/internal/optim"
	"github.com/san-kum/raytracer/internal/ppm"
	"github.com/san-kum/raytracer/internal/projectile"
	"github.com/san-kum/raytracer/internal/storage"
	"github.com/san-kum/raytracer/internal/viz"
)

var (
	dataDir string
	// Scenario selection
	preset     string
	configFile string
	// Scenario overrides
	width    int
	height   int
	speed    float64
	gravity  float64
	wind     float64
	maxTicks int
	paint    string
	output   string
	noSave   bool
	// Display and export
	previewCols int
	previewRows int
	frameRate   int
	svgWidth    int
	svgHeight   int
	svgPixels   bool
	svgScale    float64
	svgOut      string
	// Launch search
	angleMin  float64
	angleMax  float64
	speedMin  float64
	speedMax  float64
	steps     int
	objective string
	minimize  bool
)

// main registers the raytracer commands and runs the root command, exiting
// with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "raytracer",
		Short:        "software renderer toolkit",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".raytracer", "data directory")

	projectileCmd := &cobra.Command{
		Use:   "projectile",
		Short: "fly a projectile and write its path as a PPM image",
		Args:  cobra.NoArgs,
		RunE:  runProjectile,
	}
	addScenarioFlags(projectileCmd)
	projectileCmd.Flags().StringVar(&output, "out", "", "output PPM path (default from scenario)")
	projectileCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run in the data directory")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a projectile fly in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot height over ticks",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	previewCmd := &cobra.Command{
		Use:   "preview [run_id]",
		Short: "show a saved image in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  previewRun,
	}
	previewCmd.Flags().IntVar(&previewCols, "cols", 80, "preview width in characters")
	previewCmd.Flags().IntVar(&previewRows, "rows", 24, "preview height in characters")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "svg width for trajectory export")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 500, "svg height for trajectory export")
	exportSVGCmd.Flags().BoolVar(&svgPixels, "pixels", false, "export the raster image instead of the trajectory path")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 1, "pixel size for --pixels")
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCANVAS\tSPEED\tGRAVITY\tWIND")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%dx%d\t%.2f\t%.3f\t%.3f\n",
					name, p.Canvas.Width, p.Canvas.Height,
					p.Projectile.Speed, p.Environment.Gravity.Y, p.Environment.Wind.X)
			}
			return w.Flush()
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "grid search launch angle and speed for the best flight metric",
		Args:  cobra.NoArgs,
		RunE:  searchLaunch,
	}
	addScenarioFlags(searchCmd)
	searchCmd.Flags().Float64Var(&angleMin, "angle-min", 10, "lowest elevation in degrees")
	searchCmd.Flags().Float64Var(&angleMax, "angle-max", 80, "highest elevation in degrees")
	searchCmd.Flags().Float64Var(&speedMin, "speed-min", 5, "lowest launch speed")
	searchCmd.Flags().Float64Var(&speedMax, "speed-max", 15, "highest launch speed")
	searchCmd.Flags().IntVar(&steps, "steps", 8, "grid points per axis")
	searchCmd.Flags().StringVar(&objective, "metric", "range", "metric to optimize (apex, range, flight_ticks, peak_speed)")
	searchCmd.Flags().BoolVar(&minimize, "minimize", false, "minimize instead of maximize the metric")

	rootCmd.AddCommand(projectileCmd, liveCmd, listCmd, plotCmd, previewCmd, exportSVGCmd, presetsCmd, searchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use a built-in scenario")
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "canvas width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "canvas height")
	cmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "launch speed")
	cmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravity, "vertical gravity per tick")
	cmd.Flags().Float64Var(&wind, "wind", config.DefaultWind, "horizontal wind per tick")
	cmd.Flags().IntVar(&maxTicks, "max-ticks", config.DefaultMaxTicks, "stop a flight that has not landed after this many ticks")
	cmd.Flags().StringVar(&paint, "paint", "#ff0000", "trajectory color (#rrggbb)")
}

// loadScenario resolves the scenario: preset, then config file, then flags
// the user actually set.
func loadScenario(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("width") {
		cfg.Canvas.Width = width
	}
	if cmd.Flags().Changed("height") {
		cfg.Canvas.Height = height
	}
	if cmd.Flags().Changed("speed") {
		cfg.Projectile.Speed = speed
	}
	if cmd.Flags().Changed("gravity") {
		cfg.Environment.Gravity.Y = gravity
	}
	if cmd.Flags().Changed("wind") {
		cfg.Environment.Wind.X = wind
	}
	if cmd.Flags().Changed("max-ticks") {
		cfg.MaxTicks = maxTicks
	}
	if cmd.Flags().Changed("paint") {
		col, err := color.ParseHex(paint)
		if err != nil {
			return nil, fmt.Errorf("invalid --paint: %w", err)
		}
		cfg.Canvas.Paint = config.RGB{R: col.Red, G: col.Green, B: col.Blue}
	}
	if cmd.Flags().Changed("out") {
		cfg.Canvas.Output = output
	}

	return cfg, nil
}

func runProjectile(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	sc, err := cfg.Scenario()
	if err != nil {
		return err
	}

	fmt.Printf("flying %s...\n", sc.Name)
	start := time.Now()

	c, result, err := projectile.Trace(context.Background(), sc, metrics.Default()...)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	if err := writePPM(cfg.Canvas.Output, c); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("ticks: %d (plotted %d)\n", result.Ticks, result.Plotted)
	fmt.Printf("image: %s\n", viz.StatusOK.Render(cfg.Canvas.Output))

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.RunMetadata{
			Scenario: sc.Name,
			Paint:    sc.Config.Paint.Hex(),
			Ticks:    result.Ticks,
			Plotted:  result.Plotted,
			Metrics:  result.Metrics,
		}, c, result.Trajectory)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", viz.Title.Render(runID))
	}

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
}

func writePPM(path string, c *canvas.Canvas) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("couldn't create %s: %w", path, err)
	}
	if err := ppm.Write(f, c); err != nil {
		f.Close()
		return fmt.Errorf("couldn't write to %s: %w", path, err)
	}
	return f.Close()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	sc, err := cfg.Scenario()
	if err != nil {
		return err
	}

	final, err := viz.RunLive(sc, frameRate)
	if err != nil {
		return err
	}
	return final.Err()
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tCANVAS\tTICKS\tPLOTTED\tPAINT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width,
			run.Height,
			run.Ticks,
			run.Plotted,
			run.Paint,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	points, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	if len(points) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("ticks: %d\n\n", len(points))

	heights := make([]float64, len(points))
	for i, p := range points {
		heights[i] = p.Y
	}

	graph := asciigraph.Plot(heights,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("height (y) per tick"),
	)
	fmt.Println(graph)

	return nil
}

func previewRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	c, err := st.LoadImage(runID)
	if err != nil {
		return err
	}

	fmt.Println(viz.Preview(c, previewCols, previewRows, runID))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)

	var svg string
	if svgPixels {
		c, err := st.LoadImage(runID)
		if err != nil {
			return err
		}
		svg = export.CanvasToSVG(c, svgScale)
	} else {
		meta, err := st.Load(runID)
		if err != nil {
			return err
		}
		points, err := st.LoadTrajectory(runID)
		if err != nil {
			return err
		}
		c, err := st.LoadImage(runID)
		if err != nil {
			return err
		}
		svg = export.TrajectoryToSVG(points, svgWidth, svgHeight, viz.DominantColor(c))
		if svg == "" {
			return fmt.Errorf("run %s has fewer than two positions", meta.ID)
		}
	}

	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(svgOut, []byte(svg), 0644)
}

func searchLaunch(cmd *cobra.Command, args []string) error {
	base, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	g := optim.NewGridSearch(
		optim.Axis{Name: "angle", Values: optim.Linspace(angleMin, angleMax, steps)},
		optim.Axis{Name: "speed", Values: optim.Linspace(speedMin, speedMax, steps)},
	)

	build := func(params map[string]float64) (projectile.Scenario, error) {
		cfg := *base
		rad := params["angle"] * math.Pi / 180
		cfg.Projectile.Direction = config.Vec3{X: math.Cos(rad), Y: math.Sin(rad)}
		cfg.Projectile.Speed = params["speed"]
		return cfg.Scenario()
	}

	fmt.Printf("searching %d launches of %s...\n", steps*steps, base.Name)
	best, evaluated, err := g.Search(context.Background(), build, optim.Objective{Metric: objective, Maximize: !minimize})
	if err != nil {
		return err
	}

	fmt.Printf("landed: %d\n", evaluated)
	fmt.Println(viz.Field("angle", fmt.Sprintf("%.2f°", best.Params["angle"])))
	fmt.Println(viz.Field("speed", fmt.Sprintf("%.3f", best.Params["speed"])))
	fmt.Println(viz.Field(objective, fmt.Sprintf("%.6f", best.Value)))
	return nil
}
