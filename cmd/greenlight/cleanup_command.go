package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"greenlight/internal/dashboard"
)

func newCleanupCommand(ctx *commandContext) *cobra.Command {
	var collection string
	var dryRun bool
	var execute bool

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove analysis files for produced screenplays",
		Long: `Cleanup finds analysis files whose embedded verdict marks the
screenplay as produced, backs each one up, deletes the original, and
rewrites the collection's index.json. It refuses to run without an
explicit --dry-run or --execute.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun == execute {
				return fmt.Errorf("pass exactly one of --dry-run or --execute")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}

			scanner := dashboard.NewScanner(cfg.Dashboard.DataDir, cfg.Dashboard.AnalysisSuffix, cfg.Dashboard.Collections, logger)
			files, err := scanner.Scan(collection)
			if err != nil {
				return err
			}

			var candidates []dashboard.File
			for _, file := range files {
				if file.Existing != nil && file.Existing.IsProduced {
					candidates = append(candidates, file)
				}
			}

			out := cmd.OutOrStdout()
			if len(candidates) == 0 {
				fmt.Fprintln(out, "No produced screenplays to clean up")
				return nil
			}

			rows := make([][]string, 0, len(candidates))
			for _, file := range candidates {
				rows = append(rows, []string{
					file.Collection,
					file.Title,
					file.Existing.TMDBTitle,
					file.Existing.ReleaseDate,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Collection", "Title", "TMDB Title", "Released"},
				rows,
			))

			if dryRun {
				fmt.Fprintf(out, "\nDry run: %d file(s) would be removed (backups go to %s)\n",
					len(candidates), cfg.Paths.BackupDir)
				return nil
			}

			cleaner := dashboard.NewCleaner(cfg.Paths.BackupDir, cfg.Dashboard.AnalysisSuffix, logger)
			touched := make(map[string]bool)
			for _, file := range candidates {
				if err := cleaner.Remove(file); err != nil {
					return err
				}
				touched[filepath.Dir(file.Path)] = true
			}
			for dir := range touched {
				if _, err := cleaner.RewriteIndex(dir); err != nil {
					return err
				}
			}

			fmt.Fprintf(out, "\nRemoved %d file(s); backups in %s\n", len(candidates), cfg.Paths.BackupDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&collection, "collection", "", "Only clean collections whose name contains this value")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be removed without touching anything")
	cmd.Flags().BoolVar(&execute, "execute", false, "Actually back up and remove the files")
	return cmd
}
