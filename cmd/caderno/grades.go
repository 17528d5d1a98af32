package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/caderno/internal/cli"
	"github.com/Veraticus/caderno/internal/grades"
	"github.com/Veraticus/caderno/internal/model"
)

func gradesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grades",
		Short: "Manage assessments and grade reports",
	}

	cmd.AddCommand(listAssessmentsCmd())
	cmd.AddCommand(addAssessmentCmd())
	cmd.AddCommand(editAssessmentCmd())
	cmd.AddCommand(removeAssessmentCmd())

	return cmd
}

func listAssessmentsCmd() *cobra.Command {
	var subjectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assessments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			snap := store.Snapshot()
			var shown int

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Subject"),
				cli.HeaderStyle.Render("Trimester"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Value"),
				cli.HeaderStyle.Render("Weight"),
				cli.HeaderStyle.Render("Extra"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 8), strings.Repeat("-", 16), strings.Repeat("-", 9),
				strings.Repeat("-", 16), strings.Repeat("-", 6), strings.Repeat("-", 6),
				strings.Repeat("-", 5))

			for _, a := range snap.Assessments {
				if subjectID != "" && a.SubjectID != subjectID {
					continue
				}
				shown++

				name := a.SubjectID
				if subject := snap.SubjectByID(a.SubjectID); subject != nil {
					name = subject.Name
				}
				extra := ""
				if a.IsExtra {
					extra = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%.1f\t%.1f\t%s\n",
					a.ID, name, a.Trimester, a.Name, a.Value, a.Weight, extra)
			}

			if shown == 0 {
				fmt.Println(cli.SubtleStyle.Render("No assessments found."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&subjectID, "subject", "", "filter by subject id")

	return cmd
}

func addAssessmentCmd() *cobra.Command {
	var (
		trimester int
		value     float64
		weight    float64
		date      string
		isExtra   bool
	)

	cmd := &cobra.Command{
		Use:   "add <subject-id> <name>",
		Short: "Add an assessment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			a := model.Assessment{
				SubjectID: args[0],
				Trimester: trimester,
				Name:      args[1],
				Value:     value,
				Weight:    weight,
				Date:      date,
				IsExtra:   isExtra,
			}
			if err := store.AddAssessment(a); err != nil {
				return fmt.Errorf("failed to add assessment: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Added %q (%.1f) to trimester %d", args[1], value, trimester)))
			return nil
		},
	}

	cmd.Flags().IntVar(&trimester, "trimester", 1, "trimester (1-3)")
	cmd.Flags().Float64Var(&value, "value", 0, "grade value (0-10)")
	cmd.Flags().Float64Var(&weight, "weight", 1, "weight in the weighted average")
	cmd.Flags().StringVar(&date, "date", "", "assessment date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&isExtra, "extra", false, "bonus points, added after the base average")

	return cmd
}

func editAssessmentCmd() *cobra.Command {
	var (
		name    string
		value   float64
		weight  float64
		isExtra bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an assessment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			var existing *model.Assessment
			for _, a := range store.Snapshot().Assessments {
				if a.ID == args[0] {
					existing = &a
					break
				}
			}
			if existing == nil {
				return fmt.Errorf("assessment %q not found", args[0])
			}

			a := *existing
			if cmd.Flags().Changed("name") {
				a.Name = name
			}
			if cmd.Flags().Changed("value") {
				a.Value = value
			}
			if cmd.Flags().Changed("weight") {
				a.Weight = weight
			}
			if cmd.Flags().Changed("extra") {
				a.IsExtra = isExtra
			}

			if err := store.UpdateAssessment(a); err != nil {
				return fmt.Errorf("failed to update assessment: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Updated assessment %q", a.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "assessment name")
	cmd.Flags().Float64Var(&value, "value", 0, "grade value (0-10)")
	cmd.Flags().Float64Var(&weight, "weight", 1, "weight")
	cmd.Flags().BoolVar(&isExtra, "extra", false, "bonus points flag")

	return cmd
}

func removeAssessmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an assessment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.RemoveAssessment(args[0]); err != nil {
				return fmt.Errorf("failed to remove assessment: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Assessment removed"))
			return nil
		},
	}
}

// formatTrimester renders a trimester cell: "-" when no assessments exist,
// the clamped average otherwise.
func formatTrimester(res grades.TrimesterResult) string {
	if !res.HasAssessments {
		return cli.SubtleStyle.Render("-")
	}
	return fmt.Sprintf("%.2f", res.Average)
}
