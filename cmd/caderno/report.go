package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/caderno/internal/cli"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Attendance, grade, and summary reports",
	}

	cmd.AddCommand(attendanceReportCmd())
	cmd.AddCommand(gradesReportCmd())
	cmd.AddCommand(kpisReportCmd())

	return cmd
}

func attendanceReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attendance",
		Short: "Per-subject attendance and absence bank",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			stats := store.AttendanceStats()
			if len(stats) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No subjects count toward attendance yet."))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render("Attendance"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Subject"),
				cli.HeaderStyle.Render("Held"),
				cli.HeaderStyle.Render("Present"),
				cli.HeaderStyle.Render("Absences"),
				cli.HeaderStyle.Render("Limit"),
				cli.HeaderStyle.Render("Bank"),
				cli.HeaderStyle.Render("Frequency"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 20), strings.Repeat("-", 5), strings.Repeat("-", 7),
				strings.Repeat("-", 8), strings.Repeat("-", 5), strings.Repeat("-", 5),
				strings.Repeat("-", 9))

			for _, st := range stats {
				bank := fmt.Sprintf("%d", st.Bank)
				switch {
				case st.Bank < 0:
					bank = cli.ErrorStyle.Render(bank + " (over limit)")
				case st.IsRiskAbsence:
					bank = cli.WarningStyle.Render(bank)
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\t%.1f%%\n",
					st.Name, st.ClassesHeld, st.ClassesPresent, st.Absences, st.Limit, bank, st.FrequencyPercent)
			}

			return nil
		},
	}
}

func gradesReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grades",
		Short: "Per-subject trimester and final averages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			snap := store.Snapshot()
			stats := store.GradeStats()
			if len(stats) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No subjects count toward grades yet."))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf(
				"Grades (%s system, %s final)", snap.Settings.GradingSystem, snap.Settings.GradeCalcMethod)))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Subject"),
				cli.HeaderStyle.Render("T1"),
				cli.HeaderStyle.Render("T2"),
				cli.HeaderStyle.Render("T3"),
				cli.HeaderStyle.Render("Final"),
				cli.HeaderStyle.Render("Needed to pass"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 20), strings.Repeat("-", 5), strings.Repeat("-", 5),
				strings.Repeat("-", 5), strings.Repeat("-", 5), strings.Repeat("-", 14))

			for _, sg := range stats {
				finalStr := fmt.Sprintf("%.2f", sg.Final)
				if sg.Final < snap.Settings.PassingGrade {
					finalStr = cli.WarningStyle.Render(finalStr)
				} else {
					finalStr = cli.SuccessStyle.Render(finalStr)
				}

				needed := cli.SubtleStyle.Render("-")
				if sg.NeededKnown {
					needed = fmt.Sprintf("%.2f", sg.Needed)
				}

				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					sg.Name,
					formatTrimester(sg.Trimesters[0]),
					formatTrimester(sg.Trimesters[1]),
					formatTrimester(sg.Trimesters[2]),
					finalStr, needed)
			}

			return nil
		},
	}
}

func kpisReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kpis",
		Short: "Global indicators for the active year",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			sum := store.KPIs()

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Year %d", store.ActiveYear())))
			fmt.Printf("Global average:    %.2f\n", sum.GlobalAverage)
			fmt.Printf("Global frequency:  %.1f%%\n", sum.GlobalFrequency)

			risk := fmt.Sprintf("%d", sum.AtRiskCount)
			if sum.AtRiskCount > 0 {
				risk = cli.WarningStyle.Render(risk)
			}
			fmt.Printf("Subjects at risk:  %s\n", risk)

			best := sum.BestSubject
			if best == "" {
				best = cli.SubtleStyle.Render("(no grades yet)")
			}
			fmt.Printf("Best subject:      %s\n", best)
			return nil
		},
	}
}
