package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/caderno/internal/cli"
	"github.com/Veraticus/caderno/internal/model"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the grading configuration",
	}

	cmd.AddCommand(showSettingsCmd())
	cmd.AddCommand(setSettingsCmd())

	return cmd
}

func showSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			s := store.Snapshot().Settings
			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Settings: %s / %d", store.User(), s.CurrentYear)))
			fmt.Printf("Passing grade:      %.1f\n", s.PassingGrade)
			fmt.Printf("Grading system:     %s\n", s.GradingSystem)
			fmt.Printf("Final grade method: %s\n", s.GradeCalcMethod)
			return nil
		},
	}
}

func setSettingsCmd() *cobra.Command {
	var (
		passingGrade float64
		system       string
		method       string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			settings := store.Snapshot().Settings
			if cmd.Flags().Changed("passing-grade") {
				settings.PassingGrade = passingGrade
			}
			if cmd.Flags().Changed("system") {
				settings.GradingSystem = model.GradingSystem(system)
			}
			if cmd.Flags().Changed("method") {
				settings.GradeCalcMethod = model.GradeCalcMethod(method)
			}

			if err := store.UpdateSettings(ctx, settings); err != nil {
				return fmt.Errorf("failed to update settings: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Settings updated"))
			return nil
		},
	}

	cmd.Flags().Float64Var(&passingGrade, "passing-grade", 6.0, "grade needed to pass (0-10)")
	cmd.Flags().StringVar(&system, "system", "", "grading system (average, sum, manual)")
	cmd.Flags().StringVar(&method, "method", "", "final grade method (running, absolute)")

	return cmd
}
