package main

import (
	"context"
	"fmt"
	"os"

	"github.com/philipparndt/gocam/internal/config"
	"github.com/philipparndt/gocam/internal/logging"
	"github.com/philipparndt/gocam/pkg/geometry"
	"github.com/philipparndt/gocam/pkg/scene"
	"github.com/philipparndt/gocam/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	zUp        bool
	targets    []string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "gocam-gui [scene]",
	Short: "Camera rig viewer with live tuning controls",
	Long: `gocam-gui shows a wireframe-free software rendering of the scene through the
rig camera next to sliders for the rig speeds and zoom limits. Changes made with
the sliders are applied to the running rig immediately.`,
	Version: version.GetFullVersion(),
	Args:    cobra.MaximumNArgs(1),
	RunE:    run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "rig config file (.yaml or .toml)")
	rootCmd.Flags().BoolVar(&zUp, "zup", false, "the scene is modelled with Z up")
	rootCmd.Flags().StringArrayVarP(&targets, "target", "t", nil, "follow target as x,z (repeatable)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var points []geometry.Vector3
	for _, t := range targets {
		p, err := geometry.ParseGroundPoint(t)
		if err != nil {
			return err
		}
		points = append(points, p)
	}

	var mesh *scene.Mesh
	scenePath := ""
	if len(args) == 1 {
		scenePath = args[0]
		mesh, err = scene.Load(context.Background(), scenePath, scene.LoadOptions{ZUp: zUp})
		if err != nil {
			return err
		}
		logger.Info("scene loaded", zap.String("path", scenePath), zap.Int("triangles", mesh.TriangleCount()))
	}

	g, err := newGUI(cfg, mesh, points, logger)
	if err != nil {
		return err
	}
	g.watch(configPath, scenePath, scene.LoadOptions{ZUp: zUp})
	g.run()
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
