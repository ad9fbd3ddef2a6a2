package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"brain-atlas/internal/asset"
	"brain-atlas/internal/resolver"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [asset]",
	Short: "Load, normalize and resolve an asset without opening a window",
	Long: `Prints the canonical transform of the asset and, for every mesh part, its
canonical center and the region it resolved to, with the tier that decided it
(name, spatial or fallback).

Example:
  brainmap inspect assets/models/brain.glb`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := cfg.AssetPath
	if len(args) > 0 {
		path = args[0]
	}
	model, err := asset.LoadAndNormalize(path, cfg.CharacteristicSize)
	if err != nil {
		return err
	}
	assignments, err := resolver.ResolveAll(model.Primitives, cat, resolver.Options{
		MatchThreshold: cfg.MatchThreshold,
		Logger:         log.Logger,
	})
	if err != nil {
		return err
	}
	return writeInspect(cmd.OutOrStdout(), model, assignments)
}

func writeInspect(w io.Writer, m *asset.Model, as []resolver.Assignment) error {
	fmt.Fprintf(w, "source:      %s\n", m.Source)
	fmt.Fprintf(w, "primitives:  %d\n", len(m.Primitives))
	fmt.Fprintf(w, "translation: %s\n", formatVec(m.Transform.Translation))
	fmt.Fprintf(w, "scale:       %.6g", m.Transform.Scale)
	if m.Degenerate {
		fmt.Fprint(w, " (degenerate bounds)")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tCENTER\tREGION\tTIER\tDISTANCE")
	for i, p := range m.Primitives {
		a := as[i]
		dist := "-"
		if !math.IsNaN(a.Distance) && a.Tier == resolver.TierSpatial {
			dist = fmt.Sprintf("%.3f", a.Distance)
		}
		name := p.SourceName
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", p.Index, name, formatVec(p.Center), a.RegionID, a.Tier, dist)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := resolver.Summarize(as)
	_, err := fmt.Fprintf(w, "\nby name: %d  by anchor: %d  fallback: %d\n", s.Name, s.Spatial, s.Fallback)
	return err
}

func formatVec(v r3.Vec) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
