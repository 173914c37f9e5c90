package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the verdict cache",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCachePruneCommand(ctx))
	cacheCmd.AddCommand(newCacheRemoveCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached verdicts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.cache()
			if err != nil {
				return err
			}
			entries := cache.List()

			if jsonOutput {
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Cache is empty")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				age := "fresh"
				if cache.Expired(entry) {
					age = "expired"
				}
				rows = append(rows, []string{
					entry.Title,
					yesNo(entry.IsProduced),
					formatTMDBID(entry.TMDBID),
					entry.Status,
					entry.Confidence,
					entry.CheckedAt.Format("2006-01-02"),
					age,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Title", "Produced", "TMDB ID", "Status", "Confidence", "Checked", "Age"},
				rows,
				3,
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit entries as JSON")
	return cmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache size and freshness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cache, err := ctx.cache()
			if err != nil {
				return err
			}

			var producedCount, expired int
			entries := cache.List()
			for _, entry := range entries {
				if entry.IsProduced {
					producedCount++
				}
				if cache.Expired(entry) {
					expired++
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Stat", "Value"},
				[][]string{
					{"Cache file", cfg.Paths.CacheFile},
					{"Entries", strconv.Itoa(len(entries))},
					{"Produced", strconv.Itoa(producedCount)},
					{"Not produced", strconv.Itoa(len(entries) - producedCount)},
					{"Expired", strconv.Itoa(expired)},
					{"TTL days", strconv.Itoa(cfg.Cache.TTLDays)},
				},
			))
			return nil
		},
	}
}

func newCachePruneCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Drop expired entries from the cache file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.cache()
			if err != nil {
				return err
			}
			removed, err := cache.Prune()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d expired entr%s\n", removed, plural(removed, "y", "ies"))
			return nil
		},
	}
}

func newCacheRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <title>",
		Short: "Remove one title's cached verdict",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.cache()
			if err != nil {
				return err
			}
			title := strings.Join(args, " ")
			if err := cache.Remove(title); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed cached verdict for %q\n", title)
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached verdict",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to clear the cache without --yes")
			}
			cache, err := ctx.cache()
			if err != nil {
				return err
			}
			if err := cache.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm clearing the cache")
	return cmd
}

func formatTMDBID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
