package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/lifecompass/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect saved assessment reports",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reports, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		records, err := s.ReportRepo().List(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query reports: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No saved reports.")
			return nil
		}

		rows := make([][]string, len(records))
		for i, r := range records {
			rows[i] = []string{
				strconv.Itoa(r.ID),
				r.Timestamp.Local().Format(timeLayout),
				formatScores(r.Top),
			}
		}
		fmt.Fprintln(out, renderTable([]string{"ID", "Time", "Top"}, rows, 0))
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show every category score of a saved report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := s.ReportRepo().Get(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get report: %w", err)
		}
		if r == nil {
			return fmt.Errorf("report %d not found", id)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:        %d\n", r.ID)
		fmt.Fprintf(out, "Time:      %s\n", r.Timestamp.Local().Format(timeLayout))
		fmt.Fprintf(out, "Session:   %s\n", r.SessionID)
		fmt.Fprintf(out, "Bank:      %s\n", r.BankID)
		fmt.Fprintf(out, "Top:       %s\n", formatScores(r.Top))

		fmt.Fprintln(out)
		labelWidth := 0
		for _, sc := range r.Scores {
			labelWidth = max(labelWidth, lipgloss.Width(sc.Label))
		}
		for _, sc := range r.Scores {
			fmt.Fprintf(out, "  %s  %.2f\n", padRight(sc.Label, labelWidth), sc.Score)
		}

		if r.Insight != "" {
			sep := strings.Repeat("─", 60)
			fmt.Fprintln(out)
			fmt.Fprintln(out, sep)
			fmt.Fprintln(out, r.Insight)
		}
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ok, err := s.ReportRepo().Delete(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("delete report: %w", err)
		}
		if !ok {
			return fmt.Errorf("report %d not found", id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted report %d.\n", id)
		return nil
	},
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID %q", arg)
	}
	return id, nil
}

func formatScores(scores []store.CategoryScoreData) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = fmt.Sprintf("%s %.2f", s.Label, s.Score)
	}
	return strings.Join(parts, ", ")
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of reports to show")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyViewCmd)
	historyCmd.AddCommand(historyDeleteCmd)
}
