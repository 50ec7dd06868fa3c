package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lifecompass/internal/app"
	"github.com/abhisek/lifecompass/internal/insight"
	"github.com/abhisek/lifecompass/internal/llm"
	"github.com/abhisek/lifecompass/internal/publish"
	"github.com/abhisek/lifecompass/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	b, err := loadBank(cmd)
	if err != nil {
		return err
	}

	opts := app.Options{
		Bank:    b,
		Logger:  logger,
		Version: version,
	}

	var eventRepo store.EventRepo
	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		opts.Reports = st.ReportRepo()
		eventRepo = st.EventRepo()
	}

	opts.Insight = newInsightService(ctx, eventRepo, true)

	pub, err := publish.FromEnv(logger)
	if err != nil {
		return fmt.Errorf("connect publisher: %w", err)
	}
	defer pub.Close()
	opts.Publisher = pub

	return app.Run(opts)
}

// newInsightService builds the insight service. Without a configured LLM
// provider the service still works and serves the static interpretation.
func newInsightService(ctx context.Context, eventRepo store.EventRepo, warn bool) *insight.Service {
	cfg, ok := llm.Resolve()
	if !ok {
		logger.Info("no LLM provider configured, using static interpretation")
		return insight.NewService(nil, insight.DefaultConfig(), logger)
	}

	provider, err := llm.NewProvider(ctx, cfg, eventRepo, logger)
	if err != nil {
		if warn {
			if errors.Is(err, llm.ErrNotConfigured) {
				fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			} else {
				fmt.Fprintln(os.Stderr, "LLM provider failed to start:", err)
			}
			fmt.Fprintln(os.Stderr, "The static interpretation will be shown instead.")
		}
		logger.Warn("LLM provider unavailable", zap.Error(err))
		return insight.NewService(nil, insight.DefaultConfig(), logger)
	}

	logger.Info("LLM provider ready", zap.String("provider", provider.Name()), zap.String("model", provider.ModelID()))
	icfg := insight.DefaultConfig()
	if cfg.Timeout > 0 {
		icfg.Timeout = cfg.Timeout
	}
	return insight.NewService(provider, icfg, logger)
}
