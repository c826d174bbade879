package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"doodlebox/internal/audio"
	"doodlebox/internal/canvas"
	"doodlebox/internal/config"
	"doodlebox/internal/engine"
	"doodlebox/internal/engine/wasm"
	"doodlebox/internal/export"
	"doodlebox/internal/gui"
	"doodlebox/internal/metrics"
	"doodlebox/internal/param"
	"doodlebox/internal/tui"
)

// stepWindow is how many step-time samples the hosts chart, two seconds
// at the default frame rate.
const stepWindow = 120

var (
	enginePath string
	levelFile  string
	preset     string
	width      int
	height     int
	fps        int
	withAudio  bool
	theme      string
	outFile    string
)

func main() {
	host, err := config.LoadHost()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "doodlebox [level]",
		Short: "interactive physics sketchpad",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	rootCmd.PersistentFlags().StringVar(&enginePath, "engine", host.Engine, "engine wasm module")

	guiCmd := &cobra.Command{
		Use:   "gui [level]",
		Short: "open a level in the window host",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui [level]",
		Short: "open a level in the terminal host",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", host.Theme, "color theme")

	for _, c := range []*cobra.Command{rootCmd, guiCmd, tuiCmd} {
		c.Flags().StringVar(&levelFile, "level", "", "level yaml file")
		c.Flags().StringVar(&preset, "preset", "", "built-in level name")
		c.Flags().BoolVar(&withAudio, "audio", host.Audio, "sway gravity with microphone bass")
	}
	for _, c := range []*cobra.Command{rootCmd, guiCmd} {
		c.Flags().IntVar(&width, "width", host.WindowWidth, "window width")
		c.Flags().IntVar(&height, "height", host.WindowHeight, "window height")
		c.Flags().IntVar(&fps, "fps", host.TargetFPS, "target frame rate")
	}

	levelsCmd := &cobra.Command{
		Use:   "levels",
		Short: "inspect built-in and file levels",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list built-in levels",
		RunE:  listLevels,
	}

	showCmd := &cobra.Command{
		Use:   "show [level]",
		Short: "print a level as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  showLevel,
	}

	exportCmd := &cobra.Command{
		Use:   "export [level]",
		Short: "render a level to svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportLevel,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <level>.svg)")

	levelsCmd.AddCommand(listCmd, showCmd, exportCmd)

	checkCmd := &cobra.Command{
		Use:   "check [level]",
		Short: "load the engine, run one iteration, report",
		Args:  cobra.MaximumNArgs(1),
		RunE:  checkEngine,
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, levelsCmd, checkCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runGUI(cmd *cobra.Command, args []string) error {
	lvl, name, err := resolveLevel(args)
	if err != nil {
		return err
	}

	// The scene lives in backing pixels; size it to the canvas area the
	// window opens with.
	ctrl, binder, steps, err := buildController(lvl, width-gui.PanelWidth, height)
	if err != nil {
		return err
	}

	gui.Run(ctrl, binder, steps, startAudio(binder), name, width, height, fps)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	lvl, name, err := resolveLevel(args)
	if err != nil {
		return err
	}
	tui.SetTheme(theme)

	dw, dh := tui.DefaultDotSize()
	ctrl, binder, steps, err := buildController(lvl, dw, dh)
	if err != nil {
		return err
	}

	return tui.Run(ctrl, binder, steps, startAudio(binder), name)
}

// checkEngine is a smoke test for an engine artifact: create a scene, step
// it once, report what came back.
func checkEngine(cmd *cobra.Command, args []string) error {
	lvl, name, err := resolveLevel(args)
	if err != nil {
		return err
	}

	bridge, err := wasm.Load(context.Background(), enginePath, lvl.EngineConfig())
	if err != nil {
		return fmt.Errorf("load engine: %w", err)
	}
	handle := engine.NewHandle(bridge)
	defer handle.Destroy()

	start := time.Now()
	snap, ok := handle.RunIteration(16 * time.Millisecond)
	if !ok {
		return fmt.Errorf("engine refused the iteration")
	}
	if err := bridge.Err(); err != nil {
		return fmt.Errorf("engine fault: %w", err)
	}

	fmt.Printf("%s: ok (%s, level %s)\n", enginePath, time.Since(start).Round(time.Microsecond), name)
	fmt.Printf("  polygons %d  circles %d  flags %d  anchors %d\n",
		len(snap.Polygons), len(snap.Circles), len(snap.Flags),
		len(snap.RigidBindings)+len(snap.Hinges)+len(snap.UnboundRigid)+len(snap.UnboundHinges))
	return nil
}

// buildController creates the engine for a level scaled to the host's
// canvas size and wires the frame controller and parameter binder to it.
func buildController(lvl *config.Level, bw, bh int) (*canvas.Controller, *param.Binder, *metrics.StepTime, error) {
	cfg := lvl.EngineConfig().Scale(float64(bw)/config.LevelWidth, float64(bh)/config.LevelHeight)

	bridge, err := wasm.Load(context.Background(), enginePath, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load engine: %w", err)
	}

	handle := engine.NewHandle(bridge)
	steps := metrics.NewStepTime(stepWindow)
	ctrl := canvas.NewController(handle, steps)
	binder := param.NewBinder(handle)
	binder.PushAll()
	return ctrl, binder, steps, nil
}

// startAudio opens the microphone drive when asked. Audio is an extra, so
// a device failure degrades to a silent session instead of aborting.
func startAudio(binder *param.Binder) *audio.Drive {
	if !withAudio {
		return nil
	}
	drive := audio.NewDrive(binder)
	if err := drive.Start(); err != nil {
		fmt.Printf("audio unavailable: %v\n", err)
		return nil
	}
	return drive
}

// resolveLevel picks the level for a session: positional argument first,
// then --level file, then --preset, then the default sandbox.
func resolveLevel(args []string) (*config.Level, string, error) {
	switch {
	case len(args) > 0:
		return loadLevel(args[0])
	case levelFile != "":
		return loadLevel(levelFile)
	case preset != "":
		if lvl := config.GetPreset(preset); lvl != nil {
			return lvl, preset, nil
		}
		return nil, "", fmt.Errorf("unknown preset %q (have: %s)",
			preset, strings.Join(config.ListPresets(), ", "))
	default:
		return config.DefaultLevel(), "sandbox", nil
	}
}

// loadLevel resolves a level name: built-in presets first, then a yaml
// file path.
func loadLevel(name string) (*config.Level, string, error) {
	if lvl := config.GetPreset(name); lvl != nil {
		return lvl, name, nil
	}
	lvl, err := config.Load(name)
	if err != nil {
		return nil, "", fmt.Errorf("unknown level %q (presets: %s): %w",
			name, strings.Join(config.ListPresets(), ", "), err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, "", fmt.Errorf("level %s: %w", name, err)
	}
	label := lvl.Name
	if label == "" {
		label = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	return lvl, label, nil
}

func listLevels(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCIRCLES\tPOLYGONS\tFLAGS")
	row := func(name string, lvl *config.Level) {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", name, len(lvl.Circles), len(lvl.Polygons), len(lvl.Flags))
	}
	row("sandbox", config.DefaultLevel())
	for _, name := range config.ListPresets() {
		row(name, config.GetPreset(name))
	}
	return w.Flush()
}

func showLevel(cmd *cobra.Command, args []string) error {
	lvl, _, err := loadLevel(args[0])
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(lvl)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func exportLevel(cmd *cobra.Command, args []string) error {
	lvl, name, err := loadLevel(args[0])
	if err != nil {
		return err
	}
	out := outFile
	if out == "" {
		out = name + ".svg"
	}
	if err := os.WriteFile(out, []byte(export.LevelSVG(lvl)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}
