package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List the content modules by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		if e.pack.Version != "" {
			fmt.Fprintf(out, "Content version %s\n\n", e.pack.Version)
		}
		for _, cat := range e.pack.Catalog() {
			fmt.Fprintf(out, "%s (%d)\n", cat.Name, cat.Total())
			fmt.Fprintln(out, strings.Repeat("─", 60))
			for _, m := range cat.Modules {
				flag := ""
				if m.Jakarta {
					flag = " [JKT]"
				}
				fmt.Fprintf(out, "  %-40s %3d words  %3d sentences%s\n",
					truncate(m.Name, 40), m.Words, m.Sentences, flag)
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%d modules, %d items\n", len(e.pack.Modules), len(e.pack.Items))
		return nil
	},
}
