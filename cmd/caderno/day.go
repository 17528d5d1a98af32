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

func dayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Manage one day of classes",
		Long: `Start a day to unlock attendance logging for it, then log statuses,
cycle them, or substitute subjects slot by slot.`,
	}

	cmd.AddCommand(startDayCmd())
	cmd.AddCommand(unstartDayCmd())
	cmd.AddCommand(showDayCmd())
	cmd.AddCommand(logDayCmd())
	cmd.AddCommand(cycleDayCmd())
	cmd.AddCommand(substituteCmd())

	return cmd
}

func startDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <date>",
		Short: "Start a day, unlocking attendance logging",
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

			if err := store.ValidateDay(date); err != nil {
				return fmt.Errorf("failed to start day: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Day %s started", date)))
			return nil
		},
	}
}

func unstartDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unstart <date>",
		Short: "Undo starting a day; its sessions stop counting",
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

			if err := store.InvalidateDay(date); err != nil {
				return fmt.Errorf("failed to unstart day: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Day %s unstarted", date)))
			return nil
		},
	}
}

func showDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <date>",
		Short: "Show the resolved sessions for a date",
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

			snap := store.Snapshot()
			slots := model.SlotsForDate(snap.Schedule, snap.SpecialDays, date)
			if len(slots) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No classes scheduled for " + date))
				return nil
			}

			if snap.DayValidated(date) {
				fmt.Println(cli.TitleStyle.Render(date + " (started)"))
			} else {
				fmt.Println(cli.TitleStyle.Render(date) + cli.WarningStyle.Render("  day not started"))
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Time"),
				cli.HeaderStyle.Render("Subject"),
				cli.HeaderStyle.Render("Status"),
				cli.HeaderStyle.Render("Slot ID"),
				cli.HeaderStyle.Render("Note"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 12), strings.Repeat("-", 20),
				strings.Repeat("-", 10), strings.Repeat("-", 8), strings.Repeat("-", 16))

			for _, slot := range slots {
				log := snap.LogFor(date, slot.ID)
				subjectID := model.ResolveSubject(slot, log)
				name := cli.SubtleStyle.Render("(deleted subject)")
				if subject := snap.SubjectByID(subjectID); subject != nil {
					name = subject.Name
				}
				if subjectID != slot.SubjectID {
					name += cli.SubtleStyle.Render(" (substituted)")
				}

				status := string(model.ResolveStatus(log))
				note := ""
				if log != nil {
					note = log.Note
				}
				fmt.Fprintf(w, "%s-%s\t%s\t%s\t%s\t%s\n",
					slot.StartTime, slot.EndTime, name, renderStatus(status), slot.ID, note)
			}

			return nil
		},
	}
}

func renderStatus(status string) string {
	switch model.ClassStatus(status) {
	case model.StatusAbsent:
		return cli.ErrorStyle.Render(status)
	case model.StatusCanceled:
		return cli.SubtleStyle.Render(status)
	case model.StatusSubstituted:
		return cli.WarningStyle.Render(status)
	default:
		return cli.SuccessStyle.Render(status)
	}
}

func logDayCmd() *cobra.Command {
	var (
		status string
		note   string
	)

	cmd := &cobra.Command{
		Use:   "log <date> <slot-id>",
		Short: "Set the attendance status for one slot",
		Args:  cobra.ExactArgs(2),
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

			log := model.ClassLog{
				Date:   date,
				SlotID: args[1],
				Status: model.ClassStatus(strings.ToUpper(status)),
				Note:   note,
			}
			if err := store.LogClass(log); err != nil {
				return fmt.Errorf("failed to log class: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Logged %s for slot %s on %s", strings.ToUpper(status), args[1], date)))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", string(model.StatusPresent), "status (PRESENT, ABSENT, CANCELED)")
	cmd.Flags().StringVar(&note, "note", "", "free-form note for the session")

	return cmd
}

func cycleDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cycle <date> <slot-id>",
		Short: "Advance the status cycle PRESENT → ABSENT → CANCELED",
		Args:  cobra.ExactArgs(2),
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

			if err := store.CycleStatus(date, args[1]); err != nil {
				return fmt.Errorf("failed to cycle status: %w", err)
			}

			log := store.Snapshot().LogFor(date, args[1])
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Slot %s on %s is now %s", args[1], date, log.Status)))
			return nil
		},
	}
}

func substituteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "substitute <date> <slot-id> <subject-id>",
		Short: "Swap the subject taught in a slot",
		Long: `Record that a different subject was taught in a slot. Substituting to
"vago" cancels the session; any other target resets the status to PRESENT.`,
		Args: cobra.ExactArgs(3),
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

			if err := store.Substitute(date, args[1], args[2]); err != nil {
				return fmt.Errorf("failed to substitute: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Slot %s on %s now runs %s", args[1], date, args[2])))
			return nil
		},
	}
}
