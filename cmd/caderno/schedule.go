package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/caderno/internal/cli"
	"github.com/Veraticus/caderno/internal/model"
)

var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage the weekly timetable",
		Long:  `Show the recurring weekly schedule or replace it wholesale from a JSON file.`,
	}

	cmd.AddCommand(listScheduleCmd())
	cmd.AddCommand(setScheduleCmd())
	cmd.AddCommand(addSlotCmd())

	return cmd
}

func listScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the weekly schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			snap := store.Snapshot()
			if len(snap.Schedule) == 0 {
				fmt.Println(cli.SubtleStyle.Render("Empty schedule. Use 'caderno schedule add' to create slots."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Day"),
				cli.HeaderStyle.Render("Time"),
				cli.HeaderStyle.Render("Subject"),
				cli.HeaderStyle.Render("Slot ID"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 10), strings.Repeat("-", 12),
				strings.Repeat("-", 20), strings.Repeat("-", 8))

			for _, slot := range snap.Schedule {
				name := cli.SubtleStyle.Render("(deleted subject)")
				if subject := snap.SubjectByID(slot.SubjectID); subject != nil {
					name = subject.Name
				}
				fmt.Fprintf(w, "%s\t%s-%s\t%s\t%s\n",
					weekdayNames[slot.Weekday], slot.StartTime, slot.EndTime, name, slot.ID)
			}

			return nil
		},
	}
}

func setScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <file.json>",
		Short: "Replace the whole weekly schedule from a JSON slot list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read schedule file: %w", err)
			}

			var slots []model.ScheduleSlot
			if err := json.Unmarshal(data, &slots); err != nil {
				return fmt.Errorf("failed to parse schedule file: %w", err)
			}

			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.UpdateSchedule(slots); err != nil {
				return fmt.Errorf("failed to update schedule: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Schedule replaced with %d slots", len(slots))))
			return nil
		},
	}
}

func addSlotCmd() *cobra.Command {
	var (
		weekday int
		start   string
		end     string
	)

	cmd := &cobra.Command{
		Use:   "add <subject-id>",
		Short: "Append one slot to the weekly schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			slots := append([]model.ScheduleSlot(nil), store.Snapshot().Schedule...)
			slots = append(slots, model.ScheduleSlot{
				Weekday:   weekday,
				StartTime: start,
				EndTime:   end,
				SubjectID: args[0],
			})

			if err := store.UpdateSchedule(slots); err != nil {
				return fmt.Errorf("failed to update schedule: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Slot added"))
			return nil
		},
	}

	cmd.Flags().IntVar(&weekday, "weekday", 1, "day of week (0=Sunday..6=Saturday)")
	cmd.Flags().StringVar(&start, "start", "07:00", "start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "07:50", "end time (HH:MM)")

	return cmd
}

func specialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "special",
		Short: "Manage special days",
		Long:  `Calendar-date exceptions with their own slot list, e.g. an extra Saturday of classes.`,
	}

	cmd.AddCommand(listSpecialCmd())
	cmd.AddCommand(addSpecialCmd())
	cmd.AddCommand(removeSpecialCmd())

	return cmd
}

func listSpecialCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List special days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			days := store.Snapshot().SpecialDays
			if len(days) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No special days."))
				return nil
			}

			for _, sd := range days {
				fmt.Printf("%s  %s (%d slots)\n",
					cli.HeaderStyle.Render(sd.Date), sd.Description, len(sd.CustomSlots))
			}
			return nil
		},
	}
}

func addSpecialCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <date> <slots.json>",
		Short: "Add or replace a special day from a JSON slot list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(args[0])
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read slots file: %w", err)
			}
			var slots []model.ScheduleSlot
			if err := json.Unmarshal(data, &slots); err != nil {
				return fmt.Errorf("failed to parse slots file: %w", err)
			}

			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			day := model.SpecialDay{Date: date, Description: description, CustomSlots: slots}
			if err := store.AddSpecialDay(day); err != nil {
				return fmt.Errorf("failed to add special day: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Special day %s saved", date)))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "what makes this day special")

	return cmd
}

func removeSpecialCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <date>",
		Short: "Remove a special day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(args[0])
			if err != nil {
				return err
			}

			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.RemoveSpecialDay(date); err != nil {
				return fmt.Errorf("failed to remove special day: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Special day %s removed", date)))
			return nil
		},
	}
}
