package main

import (
	"context"
	"fmt"

	"github.com/philipparndt/gocam/internal/config"
	"github.com/philipparndt/gocam/pkg/geometry"
	"github.com/philipparndt/gocam/pkg/scene"
	"github.com/spf13/cobra"
)

var (
	infoFormat string
	infoScene  string
	infoZUp    bool
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the effective rig configuration and scene statistics",
	Long: `Print the configuration after defaults, the config file and GOCAM_ environment
overrides are applied. With --scene the scene is loaded and summarized as well.`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().StringVarP(&infoFormat, "format", "f", string(config.YAML), "output format (yaml or toml)")
	infoCmd.Flags().StringVarP(&infoScene, "scene", "s", "", "STL or OpenSCAD scene to summarize")
	infoCmd.Flags().BoolVar(&infoZUp, "zup", false, "the scene is modelled with Z up")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Rig Configuration")
	fmt.Fprintln(out, "=================")
	if configPath != "" {
		fmt.Fprintf(out, "# from %s\n", configPath)
	}
	if err := config.Encode(out, config.Format(infoFormat), cfg); err != nil {
		return err
	}

	if infoScene == "" {
		return nil
	}

	mesh, err := scene.Load(context.Background(), infoScene, scene.LoadOptions{ZUp: infoZUp})
	if err != nil {
		return err
	}
	stats := scene.Summarize(mesh)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Scene")
	fmt.Fprintln(out, "=====")
	if stats.Name != "" {
		fmt.Fprintf(out, "Name: %s\n", stats.Name)
	}
	fmt.Fprintf(out, "File: %s\n", infoScene)
	fmt.Fprintf(out, "Triangles: %d\n", stats.TriangleCount)
	fmt.Fprintf(out, "Surface Area: %.3f\n", stats.SurfaceArea)
	fmt.Fprintf(out, "Min: %s\n", formatVector(stats.Bounds.Min))
	fmt.Fprintf(out, "Max: %s\n", formatVector(stats.Bounds.Max))
	fmt.Fprintf(out, "Dimensions: %s\n", formatVector(stats.Dimensions))

	b := cfg.Bounds
	if stats.Bounds.Min.X < b.MinX || stats.Bounds.Max.X > b.MaxX ||
		stats.Bounds.Min.Z < b.MinZ || stats.Bounds.Max.Z > b.MaxZ {
		fmt.Fprintln(out, "Note: the scene extends beyond the rig bounds")
	}
	return nil
}

func formatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
