package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/philipparndt/gocam/internal/app"
	"github.com/philipparndt/gocam/internal/logging"
	"github.com/philipparndt/gocam/pkg/geometry"
	"github.com/philipparndt/gocam/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	zUp        bool
	targets    []string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "gocam-view [scene]",
	Short: "Interactive camera rig viewer",
	Long: `gocam-view flies a camera rig over an STL or OpenSCAD scene.

The rig moves with WASD or the arrow keys, orbits with Q/E or a right drag, zooms
with Z/X or the wheel and pans with a left drag on the ground. F1..F3 follow the
targets given with --target, Escape stops following. The scene and the config
file are reloaded when they change on disk.`,
	Version: version.GetFullVersion(),
	Args:    cobra.MaximumNArgs(1),
	RunE:    runView,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "rig config file (.yaml or .toml)")
	rootCmd.Flags().BoolVar(&zUp, "zup", false, "the scene is modelled with Z up")
	rootCmd.Flags().StringArrayVarP(&targets, "target", "t", nil, "follow target as x,z (repeatable)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func runView(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	opts := app.Options{
		ConfigPath: configPath,
		ZUp:        zUp,
		Logger:     logger,
	}
	if len(args) == 1 {
		opts.ScenePath = args[0]
	}
	for _, t := range targets {
		p, err := geometry.ParseGroundPoint(t)
		if err != nil {
			return err
		}
		opts.Targets = append(opts.Targets, p)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	viewer, err := app.New(ctx, opts)
	if err != nil {
		return err
	}
	return viewer.Run(ctx)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
