package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/caderno/internal/cli"
)

func yearsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "years",
		Short: "List or switch yearly data partitions",
		Long: `Each school year is its own data partition. Switching the year replaces
the whole working set, it does not filter the current one.`,
	}

	cmd.AddCommand(listYearsCmd())
	cmd.AddCommand(switchYearCmd())

	return cmd
}

func listYearsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the stored partitions for this user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			keys, err := store.Partitions(ctx)
			if err != nil {
				return fmt.Errorf("failed to list partitions: %w", err)
			}

			active := store.ActiveYear()
			for _, key := range keys {
				marker := " "
				if key == fmt.Sprintf("%s_%d", store.User(), active) {
					marker = cli.SuccessStyle.Render("*")
				}
				fmt.Printf("%s %s\n", marker, key)
			}
			return nil
		},
	}
}

func switchYearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <year>",
		Short: "Switch to another year's partition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}

			ctx := cmd.Context()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.SwitchPartition(ctx, year); err != nil {
				return fmt.Errorf("failed to switch year: %w", err)
			}

			// Remember the choice across invocations.
			viper.Set("year", year)
			if err := viper.WriteConfig(); err != nil {
				if err = viper.SafeWriteConfig(); err != nil {
					slog.Warn("could not persist year to config", "error", err)
				}
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Now working in %d", year)))
			return nil
		},
	}
}
