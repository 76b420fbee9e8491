package main

import (
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"os"
	"os/signal"

	"github.com/philipparndt/gocam/internal/config"
	"github.com/philipparndt/gocam/internal/logging"
	"github.com/philipparndt/gocam/internal/sim"
	"github.com/philipparndt/gocam/pkg/rig"
	"github.com/philipparndt/gocam/pkg/scene"
	"github.com/philipparndt/gocam/pkg/viewer"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	simJSON   bool
	simEvery  int
	simScene  string
	simZUp    bool
	simFrame  string
	simWidth  int
	simHeight int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <script>",
	Short: "Play a scripted input sequence through the rig",
	Long: `Play a YAML or TOML script of input events through the rig and print the rig
state after every tick. With --scene the obstruction checks run against the
scene. With --frame the final camera view is rendered to a PNG image.`,
	Example: `  gocam simulate flyby.yaml
  gocam simulate flyby.yaml --scene town.stl --json
  gocam simulate flyby.toml --config rig.toml --frame last.png`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().BoolVar(&simJSON, "json", false, "print one JSON object per tick")
	simulateCmd.Flags().IntVar(&simEvery, "every", 1, "print every n-th tick")
	simulateCmd.Flags().StringVarP(&simScene, "scene", "s", "", "STL or OpenSCAD scene used for obstruction checks")
	simulateCmd.Flags().BoolVar(&simZUp, "zup", false, "the scene is modelled with Z up")
	simulateCmd.Flags().StringVar(&simFrame, "frame", "", "render the final view to this PNG file")
	simulateCmd.Flags().IntVar(&simWidth, "width", 640, "frame width in pixels")
	simulateCmd.Flags().IntVar(&simHeight, "height", 480, "frame height in pixels")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if simEvery < 1 {
		return fmt.Errorf("--every must be at least 1, got %d", simEvery)
	}

	logger, err := logging.New(verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	script, err := sim.LoadScript(args[0])
	if err != nil {
		return err
	}

	var opts []rig.Option
	var mesh *scene.Mesh
	if simScene != "" {
		mesh, err = scene.Load(ctx, simScene, scene.LoadOptions{ZUp: simZUp})
		if err != nil {
			return err
		}
		opts = append(opts, rig.WithScene(mesh))
		logger.Debug("scene loaded", zap.String("path", simScene), zap.Int("triangles", mesh.TriangleCount()))
	}

	player, err := sim.NewPlayer(script, cfg, logger, opts...)
	if err != nil {
		return err
	}
	defer player.Close()

	emit := printText
	if simJSON {
		emit = printJSON(json.NewEncoder(cmd.OutOrStdout()))
	}

	out := cmd.OutOrStdout()
	last := player.Controller().State()
	err = player.Run(ctx, func(s rig.Snapshot) error {
		last = s
		if (s.Tick-1)%uint64(simEvery) != 0 {
			return nil
		}
		return emit(out, s)
	})
	if err != nil {
		return err
	}

	if simFrame != "" {
		return writeFrame(simFrame, last, mesh, player)
	}
	return nil
}

func printText(w io.Writer, s rig.Snapshot) error {
	_, err := fmt.Fprintf(w, "%5d  pos (%8.3f, %8.3f, %8.3f)  yaw %8.2f  pitch %6.2f  zoom %6.2f  %-9s%s\n",
		s.Tick, s.Position.X, s.Position.Y, s.Position.Z, s.Yaw, s.Pitch, s.Zoom, s.Follow, obstructionLabel(s.Obstruction))
	return err
}

func printJSON(enc *json.Encoder) func(io.Writer, rig.Snapshot) error {
	return func(_ io.Writer, s rig.Snapshot) error {
		return enc.Encode(s)
	}
}

func obstructionLabel(o rig.Obstruction) string {
	if !o.Any() {
		return ""
	}
	label := "  obstructed"
	if o.Inward {
		label += " in"
	}
	if o.Outward {
		label += " out"
	}
	if o.Close {
		label += " close"
	}
	return label
}

// writeFrame renders the rig view of s with the scene and live targets
func writeFrame(path string, s rig.Snapshot, mesh *scene.Mesh, player *sim.Player) error {
	frame := viewer.NewFrame(s, simWidth, simHeight)
	if mesh != nil {
		frame.Triangles = mesh.Triangles()
	}
	for _, t := range player.Targets() {
		frame.Markers = append(frame.Markers, viewer.Marker{Position: t, Color: viewer.TargetColor})
	}
	frame.Caption = []string{
		fmt.Sprintf("tick %d", s.Tick),
		fmt.Sprintf("yaw %.1f pitch %.1f zoom %.2f", s.Yaw, s.Pitch, s.Zoom),
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create frame: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, frame.Render()); err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	return f.Close()
}

