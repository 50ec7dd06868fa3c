package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/lifecompass/internal/bank"
	"github.com/abhisek/lifecompass/internal/insight"
	"github.com/abhisek/lifecompass/internal/publish"
	"github.com/abhisek/lifecompass/internal/router"
	"github.com/abhisek/lifecompass/internal/screen"
	"github.com/abhisek/lifecompass/internal/screens/home"
	"github.com/abhisek/lifecompass/internal/screens/welcome"
	"github.com/abhisek/lifecompass/internal/selfupdate"
	"github.com/abhisek/lifecompass/internal/store"
	"github.com/abhisek/lifecompass/internal/ui/layout"
)

// Options holds the dependencies the TUI runs with. Only Bank is required.
type Options struct {
	Bank      *bank.Bank
	Reports   store.ReportRepo
	Insight   *insight.Service
	Publisher publish.Publisher
	Logger    *zap.Logger
	Version   string

	// SkipUpdateCheck disables the background release check.
	SkipUpdateCheck bool
}

// updateAvailableMsg carries the newest release tag when it is newer than
// the running build.
type updateAvailableMsg struct {
	Latest string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router    *router.Router
	opts      Options
	updateTag string
	width     int
	height    int
}

// newAppModel creates a new AppModel starting at the welcome screen.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Publisher == nil {
		opts.Publisher = publish.Nop{}
	}

	homeFactory := func() screen.Screen {
		return home.New(opts.Bank, opts.Reports, opts.Insight, opts.Publisher, opts.Logger)
	}
	return AppModel{
		router: router.New(welcome.New(homeFactory)),
		opts:   opts,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.checkUpdate())
}

func (m AppModel) checkUpdate() tea.Cmd {
	if m.opts.SkipUpdateCheck || m.opts.Version == "" || m.opts.Version == "(devel)" {
		return nil
	}
	version := m.opts.Version
	logger := m.opts.Logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		result, err := selfupdate.NewChecker().Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil {
			logger.Debug("update check failed", zap.Error(err))
			return nil
		}
		if !result.UpdateAvailable {
			return nil
		}
		return updateAvailableMsg{Latest: result.LatestVersion}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case updateAvailableMsg:
		m.updateTag = msg.Latest
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	f := layout.Frame{Hints: defaultHints(m.router.Depth())}
	if active := m.router.Active(); active != nil {
		f.Title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			f.Status = sp.Status()
		}
		if kp, ok := active.(screen.KeyHintProvider); ok {
			f.Hints = kp.KeyHints()
		}
	}
	if f.Status == "" && m.updateTag != "" {
		f.Status = fmt.Sprintf("%s available · lifecompass update", m.updateTag)
	}

	v.SetContent(f.Render(m.width, m.height, m.router.View))
	return v
}

// defaultHints is the footer for screens that do not supply their own.
func defaultHints(depth int) []layout.KeyHint {
	if depth > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
