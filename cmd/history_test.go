package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lifecompass/internal/store"
)

// runRoot executes the root command with args and returns stdout.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// seedStore creates a database file holding two reports and two LLM calls.
func seedStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lifecompass.db")
	s, err := store.Open(path)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	for _, top := range []string{"人际连接力", "视觉与想象力"} {
		_, err := s.ReportRepo().Save(ctx, store.ReportData{
			SessionID: "s-" + top,
			BankID:    "potential-v1",
			Scores:    []store.CategoryScoreData{{Index: 0, Label: top, Score: 4.6}},
			Top:       []store.CategoryScoreData{{Index: 0, Label: top, Score: 4.6}},
			Insight:   "你在" + top + "方面表现突出。",
		})
		require.NoError(t, err)
	}
	events := []store.LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "insight", InputTokens: 200_000, OutputTokens: 100_000, Success: true, RequestBody: "## user\nscores"},
		{Provider: "mock", Model: "mock", Purpose: "insight", Success: false, ErrorMessage: "llm provider unavailable"},
	}
	for _, e := range events {
		require.NoError(t, s.EventRepo().AppendLLMRequest(ctx, e))
	}
	return path
}

func TestHistoryList(t *testing.T) {
	db := seedStore(t)

	out, err := runRoot(t, "history", "list", "--db", db)
	require.NoError(t, err)

	newest := strings.Index(out, "视觉与想象力 4.60")
	oldest := strings.Index(out, "人际连接力 4.60")
	require.NotEqual(t, -1, newest, out)
	require.NotEqual(t, -1, oldest, out)
	assert.Less(t, newest, oldest, "newest first")
	assert.Contains(t, out, "Time")
}

func TestHistoryViewAndDelete(t *testing.T) {
	db := seedStore(t)

	out, err := runRoot(t, "history", "view", "1", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Session:   s-人际连接力")
	assert.Contains(t, out, "你在人际连接力方面表现突出。")

	out, err = runRoot(t, "history", "delete", "1", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted report 1.")

	_, err = runRoot(t, "history", "view", "1", "--db", db)
	assert.ErrorContains(t, err, "report 1 not found")

	_, err = runRoot(t, "history", "view", "zero", "--db", db)
	assert.ErrorContains(t, err, `invalid ID "zero"`)
}

func TestLLMList_FiltersByPurpose(t *testing.T) {
	db := seedStore(t)

	out, err := runRoot(t, "llm", "list", "--db", db, "--purpose", "insight")
	require.NoError(t, err)
	assert.Contains(t, out, "gpt-4o-mini")
	assert.Contains(t, out, "failed")

	out, err = runRoot(t, "llm", "list", "--db", db, "--purpose", "nothing")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM calls recorded.")
}

func TestLLMStats_Cost(t *testing.T) {
	db := seedStore(t)

	out, err := runRoot(t, "llm", "stats", "--db", db)
	require.NoError(t, err)
	// gpt-4o-mini: 0.2M input at $0.15 plus 0.1M output at $0.60.
	assert.Contains(t, out, "$0.09")
	assert.Contains(t, out, "total (partial)")
	assert.Contains(t, out, "No pricing for: mock")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "gpt-4o", truncate("gpt-4o", 10))
	assert.Equal(t, "google/ge…", truncate("google/gemini-2.0-flash-001", 10))
	assert.Equal(t, "表达与…", truncate("表达与沟通力", 4))
}
