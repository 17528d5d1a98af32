package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/caderno/internal/cli"
	"github.com/Veraticus/caderno/internal/model"
)

func subjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subjects",
		Short: "Manage subjects",
		Long:  `List, add, edit, and delete the subjects tracked by the planner.`,
	}

	cmd.AddCommand(listSubjectsCmd())
	cmd.AddCommand(addSubjectCmd())
	cmd.AddCommand(editSubjectCmd())
	cmd.AddCommand(removeSubjectCmd())

	return cmd
}

func listSubjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all subjects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			subjects := store.Snapshot().Subjects
			if len(subjects) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No subjects yet. Use 'caderno subjects add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Type"),
				cli.HeaderStyle.Render("Teacher"),
				cli.HeaderStyle.Render("Annual classes"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 8),
				strings.Repeat("-", 20),
				strings.Repeat("-", 10),
				strings.Repeat("-", 14),
				strings.Repeat("-", 14),
				strings.Repeat("-", 14))

			for _, s := range subjects {
				teacher := s.Teacher
				if teacher == "" {
					teacher = cli.SubtleStyle.Render("-")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
					s.ID, s.Name, s.Category, s.Type, teacher, s.TotalClasses)
			}

			return nil
		},
	}
}

func addSubjectCmd() *cobra.Command {
	var (
		category     string
		subjectType  string
		teacher      string
		totalClasses int
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			subject := model.Subject{
				Name:         args[0],
				Category:     model.SubjectCategory(category),
				Type:         model.SubjectType(subjectType),
				Teacher:      teacher,
				TotalClasses: totalClasses,
			}
			if err := store.AddSubject(subject); err != nil {
				return fmt.Errorf("failed to add subject: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Added subject %q", args[0])))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", string(model.CategoryOther), "category (exact, human, languages, arts, sports, other)")
	cmd.Flags().StringVar(&subjectType, "type", string(model.SubjectNormal), "type (NORMAL, ORGANIZATIONAL, EXTENSION)")
	cmd.Flags().StringVar(&teacher, "teacher", "", "assigned teacher name")
	cmd.Flags().IntVar(&totalClasses, "total-classes", 0, "annual contracted session count (sets the absence ceiling)")

	return cmd
}

func editSubjectCmd() *cobra.Command {
	var (
		name         string
		category     string
		subjectType  string
		teacher      string
		totalClasses int
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			existing := store.Snapshot().SubjectByID(args[0])
			if existing == nil {
				return fmt.Errorf("subject %q not found", args[0])
			}

			subject := *existing
			if cmd.Flags().Changed("name") {
				subject.Name = name
			}
			if cmd.Flags().Changed("category") {
				subject.Category = model.SubjectCategory(category)
			}
			if cmd.Flags().Changed("type") {
				subject.Type = model.SubjectType(subjectType)
			}
			if cmd.Flags().Changed("teacher") {
				subject.Teacher = teacher
			}
			if cmd.Flags().Changed("total-classes") {
				subject.TotalClasses = totalClasses
			}

			if err := store.UpdateSubject(subject); err != nil {
				return fmt.Errorf("failed to update subject: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Updated subject %q", subject.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().StringVar(&subjectType, "type", "", "type")
	cmd.Flags().StringVar(&teacher, "teacher", "", "assigned teacher name")
	cmd.Flags().IntVar(&totalClasses, "total-classes", 0, "annual contracted session count")

	return cmd
}

func removeSubjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a subject and its schedule slots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.RemoveSubject(args[0]); err != nil {
				return fmt.Errorf("failed to remove subject: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Removed subject %q and its schedule slots", args[0])))
			return nil
		},
	}
}
