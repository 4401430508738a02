package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"barswing/internal/config"
	"barswing/internal/server"
	"barswing/internal/sim"
	"barswing/internal/storage"
	"barswing/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	dt        float64
	duration  float64
	seed      int64
	direction int
	forceFrom float64
	forceTo   float64
	releaseAt float64

	addr      string
	staticDir string
	frameRate int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "barswing",
		Short: "high-bar swing mini-game: server, headless runs and a terminal play mode",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".barswing", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "named preset configuration")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the browser game",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address")
	serveCmd.Flags().StringVar(&staticDir, "static", "", "static bundle directory (embedded page if empty)")
	serveCmd.Flags().IntVar(&frameRate, "fps", 0, "snapshot frames per second")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scripted headless session and record it",
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0.016, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", 5.0, "duration")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().IntVar(&direction, "dir", 1, "pump direction (+1 or -1)")
	runCmd.Flags().Float64Var(&forceFrom, "force-from", 0, "start of the pump window")
	runCmd.Flags().Float64Var(&forceTo, "force-until", 1.0, "end of the pump window")
	runCmd.Flags().Float64Var(&releaseAt, "release-at", 1.0, "release time (0 = never)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "play in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	liveCmd.Flags().IntVar(&frameRate, "fps", 0, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportCSV(args[0], os.Stdout)
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(args[0], os.Stdout)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(serveCmd, runCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves preset, config file and defaults, in that order of
// increasing precedence.
func loadConfig() (*config.Config, error) {
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
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if staticDir != "" {
		cfg.StaticDir = staticDir
	}
	if frameRate > 0 {
		cfg.FrameRate = frameRate
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, nil).Run(ctx)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Seed = seed

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	session := cfg.NewSession()
	runner := sim.NewRunner(session)
	rec := &sim.Recorder{}
	runner.AddObserver(rec)

	runCfg := sim.Config{
		Dt:       dt,
		Duration: duration,
		Script: &sim.Script{
			Direction:  direction,
			ForceFrom:  forceFrom,
			ForceUntil: forceTo,
			ReleaseAt:  releaseAt,
		},
	}

	start := time.Now()
	if err := runner.Run(context.Background(), runCfg); err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(seed, dt, duration, preset, &rec.Result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", len(rec.Result.Snapshots))
	fmt.Printf("final mode: %s\n", session.Gymnast.Mode)
	fmt.Printf("final score: %d\n", session.Score)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Seed = seed
	if frameRate > 0 {
		cfg.FrameRate = frameRate
	}

	m := viz.NewModel(cfg.NewSession(), cfg.FrameRate)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tDT\tSEED\tSCORE\tMODE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%.4fs\t%d\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Seed,
			run.FinalScore,
			run.FinalMode,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(frames))
	fmt.Println(viz.PlotRun(frames))
	return nil
}
