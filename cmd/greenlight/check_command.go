package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"greenlight/internal/produced"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var yearContext int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check <title>",
		Short: "Check whether a screenplay title was produced as a film",
		Long: `Check looks up a title against TMDB and reports the verdict through
the exit status: 0 when not produced, 1 when produced, 2 when the
lookup could not complete.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checker, err := ctx.checker()
			if err != nil {
				return err
			}
			title := strings.Join(args, " ")

			decision, err := checker.Check(cmd.Context(), title, yearContext)
			if err != nil {
				// Lookup errors mean no verdict; report indeterminate.
				return &exitCodeError{
					code:    produced.OutcomeIndeterminate.ExitCode(),
					message: fmt.Sprintf("check %q: %v", title, err),
				}
			}

			if jsonOutput {
				if err := writeJSON(cmd, checkResult{
					Title:   title,
					Outcome: decision.Outcome.String(),
					Reason:  decision.Reason,
					Cached:  decision.Cached,
					Details: decision.Details,
				}); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				line := decision.Reason
				if decision.Cached {
					colorized := shouldColorize(out)
					line = paint(ansiBlue, line, colorized)
				}
				fmt.Fprintln(out, line)
			}

			if code := decision.Outcome.ExitCode(); code != 0 {
				return &exitCodeError{code: code}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&yearContext, "year-context", 0, "Collection year; releases strictly before it are ignored")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the verdict as JSON")
	return cmd
}

type checkResult struct {
	Title   string `json:"title"`
	Outcome string `json:"outcome"`
	Reason  string `json:"reason"`
	Cached  bool   `json:"cached"`
	Details any    `json:"details"`
}
