package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/lifecompass/internal/api"
	"github.com/abhisek/lifecompass/internal/publish"
	"github.com/abhisek/lifecompass/internal/scoring"
	"github.com/abhisek/lifecompass/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP scoring API",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if env := os.Getenv("LIFECOMPASS_ADDR"); env != "" && !cmd.Flags().Changed("addr") {
			addr = env
		}
		origins, _ := cmd.Flags().GetStringSlice("allow-origin")
		if env := os.Getenv("LIFECOMPASS_ALLOW_ORIGINS"); env != "" && !cmd.Flags().Changed("allow-origin") {
			origins = strings.Split(env, ",")
		}
		top, _ := cmd.Flags().GetInt("top")

		if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		b, err := loadBank(cmd)
		if err != nil {
			return err
		}

		opts := api.Options{
			Bank:         b,
			Logger:       logger,
			TopK:         top,
			AllowOrigins: origins,
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

		opts.Insight = newInsightService(ctx, eventRepo, false)

		pub, err := publish.FromEnv(logger)
		if err != nil {
			return fmt.Errorf("connect publisher: %w", err)
		}
		defer pub.Close()
		opts.Publisher = pub

		return api.New(opts).Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address (overrides LIFECOMPASS_ADDR)")
	serveCmd.Flags().StringSlice("allow-origin", nil, "CORS origin to allow; repeatable (default: any origin)")
	serveCmd.Flags().IntP("top", "k", scoring.DefaultTopK, "Number of categories to highlight")
	serveCmd.Flags().Bool("no-history", false, "Do not save reports; report routes return 503")
}
