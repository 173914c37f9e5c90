package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"greenlight/internal/overrides"
)

func newOverridesCommand(ctx *commandContext) *cobra.Command {
	overridesCmd := &cobra.Command{
		Use:   "overrides",
		Short: "Manage manual force-analyze and force-skip lists",
	}

	overridesCmd.AddCommand(newOverridesListCommand(ctx))
	overridesCmd.AddCommand(newOverridesCheckCommand(ctx))
	overridesCmd.AddCommand(newOverridesAddCommand(ctx))
	overridesCmd.AddCommand(newOverridesRemoveCommand(ctx))

	return overridesCmd
}

func newOverridesListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := ctx.registry()
			if err != nil {
				return err
			}
			analyze, skip, err := registry.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(analyze) == 0 && len(skip) == 0 {
				fmt.Fprintln(out, "No overrides configured")
				return nil
			}

			rows := make([][]string, 0, len(analyze)+len(skip))
			for _, title := range skip {
				rows = append(rows, []string{title, overrides.ActionForceSkip.String()})
			}
			for _, title := range analyze {
				rows = append(rows, []string{title, overrides.ActionForceAnalyze.String()})
			}
			fmt.Fprintln(out, renderTable([]string{"Title", "Action"}, rows))
			return nil
		},
	}
}

func newOverridesCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check <title>",
		Short: "Show which override, if any, applies to a title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := ctx.registry()
			if err != nil {
				return err
			}
			title := strings.Join(args, " ")
			action, err := registry.Lookup(title)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if action == overrides.ActionNone {
				fmt.Fprintf(out, "No override for %q\n", title)
				return nil
			}
			fmt.Fprintf(out, "%q: %s\n", title, action)
			return nil
		},
	}
}

func newOverridesAddCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <force-analyze|force-skip> <title>",
		Short: "Add a title to an override list",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := parseOverrideAction(args[0])
			if err != nil {
				return err
			}
			registry, err := ctx.registry()
			if err != nil {
				return err
			}
			title := strings.Join(args[1:], " ")
			if err := registry.Add(action, title); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q to %s\n", title, action)
			return nil
		},
	}
	return cmd
}

func newOverridesRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <title>",
		Short: "Remove a title from both override lists",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := ctx.registry()
			if err != nil {
				return err
			}
			title := strings.Join(args, " ")
			if err := registry.Remove(title); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed overrides for %q\n", title)
			return nil
		},
	}
}

func parseOverrideAction(value string) (overrides.Action, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "force-analyze", "force_analyze", "analyze":
		return overrides.ActionForceAnalyze, nil
	case "force-skip", "force_skip", "skip":
		return overrides.ActionForceSkip, nil
	default:
		return overrides.ActionNone, fmt.Errorf("unknown override action %q (expected force-analyze or force-skip)", value)
	}
}
