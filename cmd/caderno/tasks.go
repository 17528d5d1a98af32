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

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks and notes",
	}

	cmd.AddCommand(listTasksCmd())
	cmd.AddCommand(addTaskCmd())
	cmd.AddCommand(doneTaskCmd())
	cmd.AddCommand(removeTaskCmd())

	return cmd
}

func listTasksCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open tasks",
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

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Title"),
				cli.HeaderStyle.Render("Subject"),
				cli.HeaderStyle.Render("Due"),
				cli.HeaderStyle.Render("Done"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 8), strings.Repeat("-", 24),
				strings.Repeat("-", 16), strings.Repeat("-", 10), strings.Repeat("-", 4))

			for _, t := range snap.Tasks {
				if t.Done && !all {
					continue
				}
				shown++

				subject := cli.SubtleStyle.Render("-")
				if s := snap.SubjectByID(t.SubjectID); s != nil {
					subject = s.Name
				}
				done := ""
				if t.Done {
					done = cli.SuccessStyle.Render("✓")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, subject, t.DueDate, done)
			}

			if shown == 0 {
				fmt.Println(cli.SubtleStyle.Render("Nothing to do."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include completed tasks")

	return cmd
}

func addTaskCmd() *cobra.Command {
	var (
		description string
		subjectID   string
		dueDate     string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			t := model.Task{
				Title:       args[0],
				Description: description,
				SubjectID:   subjectID,
				DueDate:     dueDate,
			}
			if err := store.AddTask(t); err != nil {
				return fmt.Errorf("failed to add task: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Added task %q", args[0])))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "longer note")
	cmd.Flags().StringVar(&subjectID, "subject", "", "related subject id")
	cmd.Flags().StringVar(&dueDate, "due", "", "due date (YYYY-MM-DD)")

	return cmd
}

func doneTaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			var task *model.Task
			for _, t := range store.Snapshot().Tasks {
				if t.ID == args[0] {
					task = &t
					break
				}
			}
			if task == nil {
				return fmt.Errorf("task %q not found", args[0])
			}

			task.Done = true
			if err := store.UpdateTask(*task); err != nil {
				return fmt.Errorf("failed to update task: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Completed %q", task.Title)))
			return nil
		},
	}
}

func removeTaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.DeleteTask(args[0]); err != nil {
				return fmt.Errorf("failed to delete task: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Task deleted"))
			return nil
		},
	}
}
