package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/escapetime/internal/config"
	"github.com/san-kum/escapetime/internal/mandel"
	"github.com/san-kum/escapetime/internal/metrics"
	"github.com/san-kum/escapetime/internal/render"
	"github.com/san-kum/escapetime/internal/storage"
	"github.com/san-kum/escapetime/internal/viz"
)

const thumbnailCols = 64

var (
	outDir        string
	width         int
	height        int
	xMin          float64
	xMax          float64
	yMin          float64
	yMax          float64
	xCenter       float64
	maxIterations int
	configFile    string
	preset        string
	showProgress  bool
	// stats
	buckets   int
	thumbnail bool
	// list
	asJSON bool
)

// main registers the commands and runs the root command. Without a
// subcommand it renders the default image into the current directory.
func main() {
	rootCmd := &cobra.Command{
		Use:   "mandel",
		Short: "escape-time Mandelbrot renderer",
		Args:  cobra.NoArgs,
		RunE:  renderImage,
	}

	rootCmd.PersistentFlags().StringVar(&outDir, "out", config.DefaultOutDir, "output directory")
	addParamFlags(rootCmd)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render an image to a P6 file",
		Args:  cobra.NoArgs,
		RunE:  renderImage,
	}
	addParamFlags(renderCmd)
	renderCmd.Flags().BoolVar(&showProgress, "progress", false, "show a progress view while rendering")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "plot the escape-count distribution without writing a file",
		Args:  cobra.NoArgs,
		RunE:  escapeStats,
	}
	addParamFlags(statsCmd)
	statsCmd.Flags().IntVar(&buckets, "buckets", 64, "histogram buckets")
	statsCmd.Flags().BoolVar(&thumbnail, "thumbnail", false, "print a braille outline of the set")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time renders of increasing size",
		Args:  cobra.NoArgs,
		RunE:  benchRender,
	}
	benchCmd.Flags().IntVar(&maxIterations, "max-iter", mandel.DefaultMaxIterations, "iteration budget")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list renders in the output directory",
		Args:  cobra.NoArgs,
		RunE:  listRenders,
	}
	listCmd.Flags().BoolVar(&asJSON, "json", false, "print entries as JSON")

	inspectCmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "check a rendered file against its name and header",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectRender,
	}

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "delete truncated or mismatched renders",
		Args:  cobra.NoArgs,
		RunE:  pruneRenders,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file with the default or preset parameters",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	rootCmd.AddCommand(renderCmd, statsCmd, benchCmd, listCmd, inspectCmd, pruneCmd, presetsCmd, initCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// cobra has already printed the error.
		stop()
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&width, "width", mandel.DefaultWidth, "image width in pixels")
	f.IntVar(&height, "height", mandel.DefaultHeight, "image height in pixels")
	f.Float64Var(&xMin, "x-min", mandel.DefaultXMin, "real-axis minimum")
	f.Float64Var(&xMax, "x-max", mandel.DefaultXMax, "real-axis maximum")
	f.Float64Var(&yMin, "y-min", mandel.DefaultYMin, "imaginary-axis minimum")
	f.Float64Var(&yMax, "y-max", mandel.DefaultYMax, "imaginary-axis maximum")
	f.Float64Var(&xCenter, "x-center", 0, "derive x bounds from this center and the aspect ratio")
	f.IntVar(&maxIterations, "max-iter", mandel.DefaultMaxIterations, "iteration budget (1-255)")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers the preset, the config file and explicit flags, in
// that order, over the compiled-in defaults.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("x-min") {
		cfg.XMin = xMin
		cfg.XCenter = nil
	}
	if flags.Changed("x-max") {
		cfg.XMax = xMax
		cfg.XCenter = nil
	}
	if flags.Changed("y-min") {
		cfg.YMin = yMin
	}
	if flags.Changed("y-max") {
		cfg.YMax = yMax
	}
	if flags.Changed("x-center") {
		c := xCenter
		cfg.XCenter = &c
	}
	if flags.Changed("max-iter") {
		cfg.MaxIterations = maxIterations
	}
	if flags.Changed("out") || cfg.OutDir == "" {
		cfg.OutDir = outDir
	}

	return cfg, nil
}

func renderImage(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	params := cfg.Params()
	if err := params.Validate(); err != nil {
		return err
	}

	// Usage is only useful for flag mistakes, which are behind us now.
	cmd.SilenceUsage = true

	st := storage.New(cfg.OutDir)
	if err := st.Init(); err != nil {
		return err
	}
	path := st.Path(params)

	r := render.New(params)
	for _, m := range metrics.Default(params.MaxIterations) {
		r.AddMetric(m)
	}

	var result *render.Result
	if showProgress {
		result, err = viz.RunWithProgress(cmd.Context(), r, path)
	} else {
		fmt.Printf("rendering %s...\n", path)
		result, err = r.RenderFile(cmd.Context(), path)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}

	fmt.Println(viz.Summary(result))
	return nil
}

func escapeStats(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	params := cfg.Params()
	if err := params.Validate(); err != nil {
		return err
	}
	cmd.SilenceUsage = true

	hist := metrics.NewHistogram(params.MaxIterations)
	r := render.New(params)
	r.AddMetric(hist)
	for _, m := range metrics.Default(params.MaxIterations) {
		r.AddMetric(m)
	}

	var thumb *viz.Thumbnail
	if thumbnail {
		cols := thumbnailCols
		rows := (cols*2*params.Height/params.Width + 3) / 4
		if rows < 1 {
			rows = 1
		}
		thumb = viz.NewThumbnail(cols, rows, params.Width, params.Height, params.MaxIterations)
		r.AddMetric(thumb)
	}

	result, err := r.Render(cmd.Context(), io.Discard)
	if err != nil {
		return err
	}

	data := hist.Buckets(buckets)
	if len(data) == 0 {
		return fmt.Errorf("no histogram buckets")
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("escaped pixels per iteration bucket (%d buckets)", len(data))),
	)
	fmt.Println(viz.Title.Render(params.Filename()))
	fmt.Println(graph)
	fmt.Println()
	if thumb != nil {
		fmt.Print(thumb.String())
		fmt.Println()
	}
	fmt.Println(viz.Summary(result))

	return nil
}

func benchRender(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	sizes := []int{64, 128, 256, 512}

	fmt.Printf("benchmarking max-iter=%d\n\n", maxIterations)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tPIXELS\tIN SET\tTIME\tPIXELS/SEC")

	for _, size := range sizes {
		params := mandel.DefaultParams()
		params.Width, params.Height = size, size
		params.MaxIterations = maxIterations

		start := time.Now()
		result, err := render.New(params).Render(cmd.Context(), io.Discard)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%dx%d\t%d\t%d\t%v\t%.0f\n",
			size, size, result.Pixels, result.InSet, elapsed.Round(time.Microsecond),
			float64(result.Pixels)/elapsed.Seconds())
	}

	return w.Flush()
}

func listRenders(cmd *cobra.Command, args []string) error {
	st := storage.New(outDir)
	entries, err := st.List()
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("no renders found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tITER\tBYTES\tMODIFIED\tSTATUS")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%d\t%s\t%s\n",
			e.Name,
			e.Params.Width, e.Params.Height,
			e.Params.MaxIterations,
			e.Size,
			e.Timestamp.Format("2006-01-02 15:04:05"),
			viz.EntryStatus(e),
		)
	}

	return w.Flush()
}

func inspectRender(cmd *cobra.Command, args []string) error {
	st := storage.New(outDir)
	entry, err := st.Inspect(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entry); err != nil {
		return err
	}
	if !entry.Complete {
		cmd.SilenceUsage = true
		return fmt.Errorf("%s: %s", entry.Name, entry.Problem)
	}
	return nil
}

func pruneRenders(cmd *cobra.Command, args []string) error {
	st := storage.New(outDir)
	removed, err := st.Prune()
	for _, name := range removed {
		fmt.Printf("removed %s\n", name)
	}
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		fmt.Println("nothing to prune")
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tFILE")
	for _, name := range config.ListPresets() {
		fmt.Fprintf(w, "%s\t%s\n", name, config.GetPreset(name).Params().Filename())
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
