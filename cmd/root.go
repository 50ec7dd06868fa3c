package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lifecompass/internal/bank"
	"github.com/abhisek/lifecompass/internal/logging"
	"github.com/abhisek/lifecompass/internal/store"
)

// logger is built in PersistentPreRunE and shared by all commands.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "lifecompass",
	Short: "Likert self-assessment with trait scoring",
	Long:  "LifeCompass — answer 45 statements on a 1-5 scale and see which life directions score highest.",
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Assigned here rather than in the rootCmd literal: setupLogger reads
	// rootCmd, which would otherwise form an initialization cycle.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; anything else is worth reporting.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			fmt.Fprintln(os.Stderr, "Warning: could not load .env:", err)
		}
		return setupLogger(cmd)
	}

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LIFECOMPASS_DB env var)")
	rootCmd.PersistentFlags().String("bank", "", "Path to a YAML or JSON question bank (defaults to the built-in bank)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().Bool("no-history", false, "Do not read or write the local history database")

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogger builds the shared logger. The TUI owns the terminal, so the
// root command logs to a file next to the database instead of stderr.
func setupLogger(cmd *cobra.Command) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	opts := logging.Options{Verbose: verbose}

	if cmd == rootCmd {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		opts.File = logging.FileNextTo(dbPath)
	}

	l, err := logging.New(opts)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LIFECOMPASS_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// loadBank returns the bank named by --bank, or the built-in one.
func loadBank(cmd *cobra.Command) (*bank.Bank, error) {
	path, _ := cmd.Flags().GetString("bank")
	if path == "" {
		return bank.Default(), nil
	}
	b, err := bank.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load bank %s: %w", path, err)
	}
	logger.Info("loaded question bank", zap.String("path", path), zap.String("id", b.ID), zap.Int("statements", b.Len()))
	return b, nil
}
