package main

import (
	"fmt"
	"strconv"

	"brain-atlas/internal/pointer"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve x y z",
	Short: "Report the region at a canonical-space point",
	Long: `Runs pointer resolution for one point in canonical space (the model centered at
the origin and scaled to the characteristic size), exactly as hovering would.

Flags must come before the coordinates; everything after the first coordinate is read as
a number, so negative values need no quoting. Put -- before a negative first coordinate.

Example:
  brainmap resolve 0 0.1 -0.85
  brainmap resolve -- -0.4 0.2 0`,
	Args: cobra.ExactArgs(3),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().SetInterspersed(false)
}

func runResolve(cmd *cobra.Command, args []string) error {
	var xyz [3]float64
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("coordinate %d: %w", i+1, err)
		}
		xyz[i] = v
	}
	eng := pointer.New(cat, cfg.HoverThreshold)
	r, ok := eng.Resolve(r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	out := cmd.OutOrStdout()
	if !ok {
		_, err := fmt.Fprintf(out, "no region within %.3g\n", eng.Threshold())
		return err
	}
	_, err := fmt.Fprintf(out, "%s\t%s\n", r.ID, r.Name)
	return err
}
