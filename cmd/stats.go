package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/kartu/internal/content"
	"github.com/abhisek/kartu/internal/rank"
	"github.com/abhisek/kartu/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show rank, lifetime and module statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctrl, err := e.controller(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		r := rank.Compute(ctrl.Items())
		fmt.Fprintf(out, "Rank:      %s (%d points over %d concepts)\n", r.Rank, r.Total, r.Concepts)
		if next := r.ToNext(); next > 0 {
			fmt.Fprintf(out, "Next rank: %d points to go\n", next)
		}

		lt := ctrl.Lifetime()
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Lifetime (%s)\n", ctrl.Mode())
		fmt.Fprintln(out, strings.Repeat("─", 40))
		fmt.Fprintf(out, "%-16s %d\n", "Cards", lt.Total)
		fmt.Fprintf(out, "%-16s %d\n", "Correct", lt.Complete)
		fmt.Fprintf(out, "%-16s %d\n", "Failed", lt.Failed)
		fmt.Fprintf(out, "%-16s %d\n", "Best streak", lt.BestStreak)
		fmt.Fprintf(out, "%-16s %.1f\n", "Average streak", lt.AverageStreak)
		fmt.Fprintf(out, "%-16s %s\n", "Words", formatTally(lt.Words))
		fmt.Fprintf(out, "%-16s %s\n", "Sentences", formatTally(lt.Sentences))

		printModuleStats(out, e.pack, ctrl.ModuleStats())
		return nil
	},
}

func formatTally(t store.Tally) string {
	if t.Total == 0 {
		return "-"
	}
	return fmt.Sprintf("%d/%d (%.0f%%)", t.Correct, t.Total, float64(t.Correct)/float64(t.Total)*100)
}

func printModuleStats(out io.Writer, pack *content.Pack, stats map[string]store.ModuleStats) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Modules")
	fmt.Fprintln(out, strings.Repeat("─", 72))
	if len(stats) == 0 {
		fmt.Fprintln(out, "No module practiced yet.")
		return
	}
	fmt.Fprintf(out, "%-36s  %8s  %8s  %6s  %6s\n", "Module", "Tried", "Correct", "Acc", "Best")
	for _, name := range pack.ModuleNames() {
		ms, ok := stats[name]
		if !ok {
			continue
		}
		fmt.Fprintf(out, "%-36s  %8d  %8d  %5.0f%%  %6d\n",
			truncate(name, 36), ms.Attempted, ms.Correct, ms.Accuracy()*100, ms.BestStreak)
	}
}
