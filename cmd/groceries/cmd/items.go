package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/groceries/internal/config"
)

func addCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "add <name>",
		Short:       "Add an item to the grocery list",
		Example:     `  groceries add apples`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{setupAnnotation: setupFull},
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := a.repository().Create(cmd.Context(), name); err != nil {
				a.logger.Debug("add failed", "name", name, "error", err)
				return fail(cmd, fmt.Sprintf("Unable to add %s to the list.", name), err)
			}
			return nil
		}),
	}
}

func buyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "buy <name>",
		Short: "Mark an item on the grocery list as bought",
		Long: "Mark the first item whose name matches exactly as bought.\n" +
			"Names are case sensitive.",
		Example:     `  groceries buy apples`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{setupAnnotation: setupFull},
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := a.repository().MarkPurchased(cmd.Context(), name); err != nil {
				a.logger.Debug("buy failed", "name", name, "error", err)
				return fail(cmd, notOnList(name), err)
			}
			return nil
		}),
	}
}

func listCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the items on the grocery list",
		Example: `  groceries list
  groceries list --output json`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{setupAnnotation: setupFull},
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			items, err := a.repository().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing items: %w", err)
			}
			if a.settings.Output == config.OutputJSON {
				return outputJSON(cmd.OutOrStdout(), items)
			}
			return printItemNames(cmd.OutOrStdout(), items)
		}),
	}
}

func removeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "remove <name>",
		Short:       "Remove an item from the grocery list",
		Example:     `  groceries remove apples`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{setupAnnotation: setupFull},
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := a.repository().Delete(cmd.Context(), name); err != nil {
				a.logger.Debug("remove failed", "name", name, "error", err)
				return fail(cmd, notOnList(name), err)
			}
			return nil
		}),
	}
}

func notOnList(name string) string {
	return fmt.Sprintf("Unable to find %s on the list.", name)
}
