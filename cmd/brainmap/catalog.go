package main

import (
	"fmt"
	"text/tabwriter"

	"brain-atlas/internal/catalog"

	"github.com/spf13/cobra"
)

var catalogYAML bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the regions in catalog order",
	Long: `Lists every region with its kind, color and anchor. With --yaml the catalog is
printed in the file format accepted by --catalog, which is a convenient starting
point for a custom atlas.`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogYAML, "yaml", false, "print as a catalog YAML file")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if catalogYAML {
		data, err := catalog.Marshal(cat)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tKIND\tPARENT\tCOLOR\tANCHOR")
	for _, r := range cat.Regions() {
		parent := r.Parent
		if parent == "" {
			parent = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Kind, parent, r.Color, formatVec(r.Anchor))
	}
	return tw.Flush()
}
