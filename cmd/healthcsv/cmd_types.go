package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jriceoh2020/applehealthexport/internal/healthxml"
)

// typesCmd lists the built-in type name mappings
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List built-in HealthKit type name mappings",
	Long: `Lists the built-in mapping from HealthKit type identifiers to
output file names. Identifiers not listed fall back to a snake_case
conversion of the identifier. Mappings can be overridden per identifier
via type_names in the config file.`,
	Run: runTypes,
}

func runTypes(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()

	ids := make([]string, 0, len(healthxml.TypeNames))
	for id := range healthxml.TypeNames {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintln(out, titleStyle.Render("Built-in type mappings"))
	for _, id := range ids {
		fmt.Fprintf(out, "  %s  %s\n",
			labelStyle.Render(fmt.Sprintf("%-55s", id)),
			healthxml.TypeNames[id]+".csv")
	}
}
