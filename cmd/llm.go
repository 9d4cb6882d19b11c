package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/kartu/internal/llm"
	"github.com/abhisek/kartu/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect logged LLM requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := e.store.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM events found.")
			return nil
		}
		printEvents(out, events)
		return nil
	},
}

func printEvents(out io.Writer, events []store.LLMRequestEvent) {
	fmt.Fprintf(out, "%-5s  %-19s  %-13s  %-24s  %-6s  %-6s  %-7s  %-9s  %s\n",
		"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "Cost", "OK")
	fmt.Fprintln(out, strings.Repeat("─", 108))

	for _, ev := range events {
		ok := "✓"
		if !ev.Success {
			ok = "✗"
		}
		cost := "?"
		if c := llm.LookupCost(ev.Model); c != nil {
			cost = formatCost(c.Cost(ev.InputTokens, ev.OutputTokens))
		}
		fmt.Fprintf(out, "%-5d  %-19s  %-13s  %-24s  %-6d  %-6d  %-7d  %-9s  %s\n",
			ev.ID,
			ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
			truncate(ev.Purpose, 13),
			truncate(ev.Model, 24),
			ev.InputTokens,
			ev.OutputTokens,
			ev.LatencyMs,
			cost,
			ok,
		)
	}
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the full request and response of an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ev, err := e.store.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if ev == nil {
			return fmt.Errorf("event %d not found", id)
		}
		printEvent(cmd.OutOrStdout(), ev)
		return nil
	},
}

func printEvent(out io.Writer, ev *store.LLMRequestEvent) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintf(out, "ID:        %d\n", ev.ID)
	fmt.Fprintf(out, "Time:      %s\n", ev.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Session:   %s\n", ev.SessionID)
	fmt.Fprintf(out, "Provider:  %s\n", ev.Provider)
	fmt.Fprintf(out, "Model:     %s\n", ev.Model)
	fmt.Fprintf(out, "Purpose:   %s\n", ev.Purpose)
	fmt.Fprintf(out, "Tokens:    %d in / %d out\n", ev.InputTokens, ev.OutputTokens)
	if c := llm.LookupCost(ev.Model); c != nil {
		fmt.Fprintf(out, "Cost:      %s\n", formatCost(c.Cost(ev.InputTokens, ev.OutputTokens)))
	}
	fmt.Fprintf(out, "Latency:   %dms\n", ev.LatencyMs)
	fmt.Fprintf(out, "Success:   %v\n", ev.Success)
	if ev.ErrorMessage != "" {
		fmt.Fprintf(out, "Error:     %s\n", ev.ErrorMessage)
	}

	for _, part := range []struct{ title, body string }{
		{"REQUEST", ev.RequestBody},
		{"RESPONSE", ev.ResponseBody},
	} {
		fmt.Fprintln(out)
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, part.title)
		fmt.Fprintln(out, sep)
		if part.body == "" {
			fmt.Fprintln(out, "(not captured)")
			continue
		}
		fmt.Fprintln(out, part.body)
	}
}

// modelUsage is the token total of one model.
type modelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

func usageByModel(events []store.LLMRequestEvent) []modelUsage {
	grouped := lo.GroupBy(events, func(ev store.LLMRequestEvent) string { return ev.Model })
	out := lo.MapToSlice(grouped, func(model string, evs []store.LLMRequestEvent) modelUsage {
		return modelUsage{
			Model:        model,
			Calls:        len(evs),
			InputTokens:  lo.SumBy(evs, func(ev store.LLMRequestEvent) int { return ev.InputTokens }),
			OutputTokens: lo.SumBy(evs, func(ev store.LLMRequestEvent) int { return ev.OutputTokens }),
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Model < out[j].Model })
	return out
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := e.store.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}
		printUsage(out, usageByModel(events))
		return nil
	},
}

func printUsage(out io.Writer, usage []modelUsage) {
	fmt.Fprintln(out, "Estimated Cost (USD)")
	fmt.Fprintln(out, strings.Repeat("─", 72))
	fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
	fmt.Fprintln(out, strings.Repeat("─", 72))

	var totalCost float64
	var unknown []string
	for _, mu := range usage {
		cost := llm.LookupCost(mu.Model)
		if cost == nil {
			unknown = append(unknown, mu.Model)
			fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %10s\n",
				truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, "?")
			continue
		}
		c := cost.Cost(mu.InputTokens, mu.OutputTokens)
		totalCost += c
		fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %10s\n",
			truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, formatCost(c))
	}

	fmt.Fprintln(out, strings.Repeat("─", 72))
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(totalCost))
	if len(unknown) > 0 {
		fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (chat, chat-opening)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
