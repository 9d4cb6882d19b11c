package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/kartu/internal/grader"
	"github.com/abhisek/kartu/internal/normalize"
)

var checkCmd = &cobra.Command{
	Use:   "check EXPECTED ANSWER",
	Short: "Grade an answer against an expected phrase",
	Long: "Runs the grader without a session. EXPECTED may use the content " +
		"notation: slashes for alternatives, brackets for optional words.",
	Example: `  kartu check "Saya (sedang) makan" "saya makan"
  kartu check "hello / hi" "hi"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		expected, answer := args[0], args[1]
		out := cmd.OutOrStdout()

		lang := grader.InferLang(expected)
		fmt.Fprintf(out, "Expected:  %s (%s)\n", expected, lang)
		for _, v := range grader.SplitVariants(expected) {
			fmt.Fprintf(out, "  variant: %s\n", v)
			for _, form := range normalize.Expand(v, lang) {
				fmt.Fprintf(out, "    form:  %s\n", form)
			}
		}
		fmt.Fprintf(out, "Answer:    %s\n", normalize.Normalize(answer, lang))

		res := grader.Grade(answer, expected)
		if !res.Correct {
			fmt.Fprintln(out, "Result:    ✗ incorrect")
			return nil
		}
		fmt.Fprintf(out, "Result:    ✓ correct (variant %q, %s)\n", res.Variant, res.Lang)
		return nil
	},
}
