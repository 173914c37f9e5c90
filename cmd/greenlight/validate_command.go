package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"greenlight/internal/dashboard"
	"greenlight/internal/logging"
	"greenlight/internal/produced"
	"greenlight/internal/report"
	"greenlight/internal/services"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var collection string
	var dryRun bool
	var reportOnly bool
	var noDelay bool
	var recheck bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate every analysis file against TMDB",
		Long: `Validate scans the configured collections for analysis files, checks
each screenplay title against TMDB, and writes the verdict back into
the file under the tmdb_status key. Files that already carry a verdict
are skipped unless --recheck is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			checker, err := ctx.checker()
			if err != nil {
				return err
			}

			scanner := dashboard.NewScanner(cfg.Dashboard.DataDir, cfg.Dashboard.AnalysisSuffix, cfg.Dashboard.Collections, logger)
			files, err := scanner.Scan(collection)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No analysis files found")
				return nil
			}

			out := cmd.OutOrStdout()
			colorized := shouldColorize(out)
			apiDelay := time.Duration(cfg.Dashboard.APIDelaySeconds) * time.Second
			rep := report.NewWriter()

			runCtx := services.WithRunID(cmd.Context(), rep.RunID())
			logger.Info("validation run started",
				logging.String("run_id", rep.RunID()),
				logging.Int("files", len(files)))

			var producedCount, notProducedCount, indeterminate, existing, failed int
			for i, file := range files {
				label := fmt.Sprintf("[%d/%d] %s/%s", i+1, len(files), file.Collection, file.Name)

				if file.Existing != nil && !recheck {
					existing++
					fmt.Fprintf(out, "%s: %s\n", label, paint(ansiBlue, "EXISTING: already validated", colorized))
					continue
				}

				decision, err := checker.Check(runCtx, file.Title, file.YearContext)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s: %s\n", label, paint(ansiYellow, fmt.Sprintf("FAILED: %v", err), colorized))
					rep.Add(report.Row{
						Collection: file.Collection,
						Title:      file.Title,
						Filename:   file.Name,
						Reason:     fmt.Sprintf("check failed: %v", err),
					})
					continue
				}

				switch decision.Outcome {
				case produced.OutcomeProduced:
					producedCount++
				case produced.OutcomeNotProduced:
					notProducedCount++
				default:
					indeterminate++
				}

				color := verdictColor(decision.IsProduced())
				if decision.Outcome == produced.OutcomeIndeterminate {
					color = ansiYellow
				}
				fmt.Fprintf(out, "%s: %s\n", label, paint(color, decision.Reason, colorized))

				rep.Add(report.Row{
					Collection:  file.Collection,
					Title:       file.Title,
					Filename:    file.Name,
					IsProduced:  decision.IsProduced(),
					TMDBTitle:   decision.Details.MatchedTitle,
					TMDBID:      decision.Details.TMDBID,
					ReleaseDate: decision.Details.ReleaseDate,
					Status:      decision.Details.Status,
					Confidence:  decision.Details.Confidence,
					Reason:      decision.Reason,
				})

				// Indeterminate verdicts are never persisted; the next run
				// retries them.
				if decision.Outcome != produced.OutcomeIndeterminate && !dryRun && !reportOnly {
					if err := dashboard.ApplyVerdict(file.Path, verdictFromDecision(decision)); err != nil {
						return fmt.Errorf("update %s: %w", file.Name, err)
					}
				}

				// Rate limit only real API traffic; cached verdicts are free.
				if !decision.Cached && !noDelay && apiDelay > 0 && i < len(files)-1 {
					if err := sleepCtx(cmd.Context(), apiDelay); err != nil {
						return err
					}
				}
			}

			if !dryRun && rep.Len() > 0 {
				reportPath, err := rep.Flush(cfg.Paths.LogDir)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\nReport written to %s\n", reportPath)
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, renderTable(
				[]string{"Result", "Count"},
				[][]string{
					{"Produced", strconv.Itoa(producedCount)},
					{"Not produced", strconv.Itoa(notProducedCount)},
					{"Indeterminate", strconv.Itoa(indeterminate)},
					{"Already validated", strconv.Itoa(existing)},
					{"Failed", strconv.Itoa(failed)},
				},
				2,
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&collection, "collection", "", "Only validate collections whose name contains this value")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Check titles but write nothing")
	cmd.Flags().BoolVar(&reportOnly, "report-only", false, "Write the CSV report but leave analysis files untouched")
	cmd.Flags().BoolVar(&noDelay, "no-delay", false, "Skip the delay between TMDB requests")
	cmd.Flags().BoolVar(&recheck, "recheck", false, "Re-validate files that already carry a verdict")
	return cmd
}

func verdictFromDecision(decision produced.Decision) dashboard.Verdict {
	verdict := dashboard.Verdict{
		IsProduced:  decision.IsProduced(),
		TMDBID:      decision.Details.TMDBID,
		TMDBTitle:   decision.Details.MatchedTitle,
		ReleaseDate: decision.Details.ReleaseDate,
		Status:      decision.Details.Status,
		Confidence:  decision.Details.Confidence,
	}
	if !decision.Details.CheckedAt.IsZero() {
		verdict.CheckedAt = decision.Details.CheckedAt.UTC().Format(time.RFC3339)
	}
	return verdict
}

func sleepCtx(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
