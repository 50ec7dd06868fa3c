package report

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lifecompass/internal/assessment"
	"github.com/abhisek/lifecompass/internal/bank"
	"github.com/abhisek/lifecompass/internal/insight"
	"github.com/abhisek/lifecompass/internal/llm"
	"github.com/abhisek/lifecompass/internal/router"
	"github.com/abhisek/lifecompass/internal/screens/placeholder"
	"github.com/abhisek/lifecompass/internal/store"
)

// mockReportRepo implements store.ReportRepo for testing.
type mockReportRepo struct {
	saved []store.ReportData
}

func (m *mockReportRepo) Save(_ context.Context, data store.ReportData) (int, error) {
	m.saved = append(m.saved, data)
	return len(m.saved), nil
}
func (m *mockReportRepo) Get(context.Context, int) (*store.ReportRecord, error) { return nil, nil }
func (m *mockReportRepo) List(context.Context, store.QueryOpts) ([]store.ReportRecord, error) {
	return nil, nil
}
func (m *mockReportRepo) Delete(context.Context, int) (bool, error) { return false, nil }
func (m *mockReportRepo) Count(context.Context) (int, error)        { return len(m.saved), nil }

// mockPublisher implements publish.Publisher for testing.
type mockPublisher struct {
	reports []*assessment.Report
}

func (m *mockPublisher) PublishReport(_ context.Context, r *assessment.Report) error {
	m.reports = append(m.reports, r)
	return nil
}
func (m *mockPublisher) Close() error { return nil }

func testReport(t *testing.T) (*bank.Bank, *assessment.Report) {
	t.Helper()
	b := bank.Default()
	resp := b.DefaultResponses()
	for i := 5; i < 10; i++ {
		resp[i] = 5 // 人际连接力
	}
	for i := 40; i < 45; i++ {
		resp[i] = 4 // 人生意义思考力
	}
	s, err := assessment.FromResponses(b, resp)
	if err != nil {
		t.Fatalf("FromResponses: %v", err)
	}
	if err := s.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	r, err := s.Report(2)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	return b, r
}

// runCmd executes cmd, expanding batches, and feeds each message back into
// the screen.
func runCmd(t *testing.T, s *ReportScreen, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			runCmd(t, s, c)
		}
		return
	}
	_, next := s.Update(msg)
	runCmd(t, s, next)
}

func TestReportScreen_StaticInsightSavesAndPublishes(t *testing.T) {
	b, r := testReport(t)
	repo := &mockReportRepo{}
	pub := &mockPublisher{}
	s := New(b, r, repo, nil, pub, nil)

	runCmd(t, s, s.Init())

	if s.Insight() == nil || s.Insight().Source != insight.SourceStatic {
		t.Fatalf("expected static insight, got %+v", s.Insight())
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected 1 saved report, got %d", len(repo.saved))
	}
	if repo.saved[0].SessionID != r.SessionID {
		t.Errorf("saved session = %q, want %q", repo.saved[0].SessionID, r.SessionID)
	}
	if !strings.Contains(repo.saved[0].Insight, "人际连接力") {
		t.Errorf("saved insight should mention top category: %q", repo.saved[0].Insight)
	}
	if len(pub.reports) != 1 {
		t.Errorf("expected 1 published report, got %d", len(pub.reports))
	}
	if s.savedID != 1 {
		t.Errorf("savedID = %d, want 1", s.savedID)
	}
}

// gatedProvider holds every completion until release is closed.
type gatedProvider struct {
	release chan struct{}
}

func (g *gatedProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	select {
	case <-g.release:
		return &llm.Response{Content: json.RawMessage(`{"summary":"你擅长与人连接。","highlights":[]}`)}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *gatedProvider) ModelID() string { return "gated" }
func (g *gatedProvider) Name() string    { return "gated" }

func TestReportScreen_LLMInsightResolvesAndSaves(t *testing.T) {
	b, r := testReport(t)
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"summary":"你擅长与人连接。","highlights":[{"category":"人际连接力","note":"朋友多。"}]}`),
	})
	svc := insight.NewService(mock, insight.DefaultConfig(), nil)
	repo := &mockReportRepo{}
	s := New(b, r, repo, svc, nil, nil)

	runCmd(t, s, s.Init())

	if s.Insight() == nil || s.Insight().Source != insight.SourceLLM {
		t.Fatalf("expected LLM insight, got %+v", s.Insight())
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected report saved once insight arrived, got %d", len(repo.saved))
	}
	if !strings.Contains(repo.saved[0].Insight, "你擅长与人连接。") {
		t.Errorf("saved insight = %q", repo.saved[0].Insight)
	}
	if s.savedID != 1 {
		t.Errorf("savedID = %d, want 1", s.savedID)
	}
	if !strings.Contains(s.View(120, 60), "你擅长与人连接。") {
		t.Error("view should show the summary")
	}
}

func TestReportScreen_SlowInsightFallsBack(t *testing.T) {
	b, r := testReport(t)
	gate := &gatedProvider{release: make(chan struct{})}
	t.Cleanup(func() { close(gate.release) })
	svc := insight.NewService(gate, insight.DefaultConfig(), nil)
	repo := &mockReportRepo{}
	s := New(b, r, repo, svc, nil, nil)
	s.wait = 20 * time.Millisecond

	runCmd(t, s, s.Init())

	if s.Insight() == nil || s.Insight().Source != insight.SourceStatic {
		t.Fatalf("expected static fallback, got %+v", s.Insight())
	}
	if len(repo.saved) != 1 {
		t.Errorf("expected 1 saved report, got %d", len(repo.saved))
	}
}

// routeCmd runs cmd the way the app does once the screen may have left:
// every resulting message goes to whatever screen r has on top.
func routeCmd(r *router.Router, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			routeCmd(r, c)
		}
		return
	}
	routeCmd(r, r.Update(msg))
}

func TestReportScreen_LeavingEarlyStillSaves(t *testing.T) {
	b, rep := testReport(t)
	gate := &gatedProvider{release: make(chan struct{})}
	svc := insight.NewService(gate, insight.DefaultConfig(), nil)
	repo := &mockReportRepo{}

	r := router.New(placeholder.New("Home", "home"))
	initCmd := r.Push(New(b, rep, repo, svc, nil, nil))

	// Leave before the interpretation is written.
	routeCmd(r, r.Update(tea.KeyPressMsg{Code: tea.KeyEnter}))
	if r.Depth() != 1 {
		t.Fatalf("depth = %d, want 1 after leaving the report", r.Depth())
	}

	close(gate.release)
	routeCmd(r, initCmd)

	if len(repo.saved) != 1 {
		t.Fatalf("saved %d reports, want exactly 1", len(repo.saved))
	}
	if repo.saved[0].SessionID != rep.SessionID {
		t.Errorf("saved session = %q, want %q", repo.saved[0].SessionID, rep.SessionID)
	}
	if !strings.Contains(repo.saved[0].Insight, "你擅长与人连接。") {
		t.Errorf("saved insight = %q, want the written interpretation", repo.saved[0].Insight)
	}
	if _, ok := svc.Consume(); ok {
		t.Error("interpretation left pending in the shared service")
	}
}

func TestReportScreen_View(t *testing.T) {
	b, r := testReport(t)
	s := New(b, r, nil, nil, nil, nil)
	runCmd(t, s, s.Init())

	view := s.View(140, 80)
	for _, want := range []string{"你的特质方向概况", "人际连接力", "人生意义思考力", "5.00", "4.00", b.Closing} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestReportScreen_EnterGoesHome(t *testing.T) {
	b, r := testReport(t)
	s := New(b, r, nil, nil, nil, nil)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
