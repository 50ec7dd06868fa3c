package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lifecompass/internal/assessment"
	"github.com/abhisek/lifecompass/internal/bank"
	"github.com/abhisek/lifecompass/internal/insight"
	"github.com/abhisek/lifecompass/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a full set of answers without the interactive UI",
	Long: `Score a full set of answers without the interactive UI.

Answers are given in statement order as integers on the bank's scale,
separated by commas or whitespace, either with --answers or on stdin:

  lifecompass score --answers 3,4,5,...
  echo "3 4 5 ..." | lifecompass score --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		b, err := loadBank(cmd)
		if err != nil {
			return err
		}

		raw, _ := cmd.Flags().GetString("answers")
		if raw == "" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read answers: %w", err)
			}
			raw = string(data)
		}
		responses, err := parseAnswers(raw)
		if err != nil {
			return err
		}
		if len(responses) != b.Len() {
			return fmt.Errorf("got %d answers, the bank has %d statements", len(responses), b.Len())
		}

		s, err := assessment.FromResponses(b, responses)
		if err != nil {
			return err
		}
		if err := s.Submit(); err != nil {
			return err
		}
		top, _ := cmd.Flags().GetInt("top")
		report, err := s.Report(top)
		if err != nil {
			return err
		}

		var in *insight.Insight
		if withInsight, _ := cmd.Flags().GetBool("insight"); withInsight {
			svc := newInsightService(ctx, nil, false)
			in = svc.Generate(ctx, insight.Input{Bank: b, Scores: report.Scores, Top: report.Top})
		}

		if save, _ := cmd.Flags().GetBool("save"); save {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			id, err := st.ReportRepo().Save(ctx, report.Record(in.Text()))
			if err != nil {
				return fmt.Errorf("save report: %w", err)
			}
			logger.Info("report saved", zap.Int("id", id), zap.String("session", report.SessionID))
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				*assessment.Report
				Insight *insight.Insight `json:"insight,omitempty"`
			}{report, in})
		}

		printReport(out, b, report, in)
		return nil
	},
}

// parseAnswers splits on commas and whitespace.
func parseAnswers(raw string) ([]int, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) == 0 {
		return nil, errors.New("no answers given; use --answers or pipe them on stdin")
	}
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("answer %d: %q is not a number", i+1, f)
		}
		out[i] = v
	}
	return out, nil
}

func printReport(w io.Writer, b *bank.Bank, r *assessment.Report, in *insight.Insight) {
	top := make(map[int]bool, len(r.Top))
	for _, t := range r.Top {
		top[t.Category.Index] = true
	}

	labelWidth := 0
	for _, cs := range r.Scores {
		labelWidth = max(labelWidth, lipgloss.Width(cs.Category.Label))
	}

	fmt.Fprintln(w, b.Title)
	fmt.Fprintln(w, strings.Repeat("─", labelWidth+36))
	for _, cs := range r.Scores {
		mark := "  "
		if top[cs.Category.Index] {
			mark = "★ "
		}
		fmt.Fprintf(w, "%s%s  %s %.2f\n", mark, padRight(cs.Category.Label, labelWidth), bar(cs.Score, b.Scale, 24), cs.Score)
	}
	fmt.Fprintln(w, strings.Repeat("─", labelWidth+36))

	names := make([]string, len(r.Top))
	for i, t := range r.Top {
		names[i] = fmt.Sprintf("%s (%.2f)", t.Category.Label, t.Score)
	}
	fmt.Fprintf(w, "Top %d: %s\n", len(r.Top), strings.Join(names, ", "))

	if text := in.Text(); text != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, text)
	}
}

func bar(score float64, scale bank.Scale, width int) string {
	filled := int(score / float64(scale.Max) * float64(width))
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func padRight(s string, width int) string {
	return s + strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
}

func init() {
	scoreCmd.Flags().StringP("answers", "a", "", "Comma-separated answers in statement order (reads stdin when empty)")
	scoreCmd.Flags().IntP("top", "k", scoring.DefaultTopK, "Number of categories to highlight")
	scoreCmd.Flags().Bool("json", false, "Print the report as JSON")
	scoreCmd.Flags().Bool("insight", false, "Add a written interpretation (uses the configured LLM provider)")
	scoreCmd.Flags().Bool("save", false, "Save the report to local history")
}
