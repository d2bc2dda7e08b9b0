package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/timesync/internal/auth"
	"github.com/example/timesync/internal/calendar"
	"github.com/example/timesync/internal/config"
	"github.com/example/timesync/internal/logging"
	"github.com/example/timesync/internal/scheduler"
	"github.com/example/timesync/internal/web"
)

func newServerCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}
			lvl, err := cfg.SlogLevel()
			if err != nil {
				return err
			}
			log := logging.New(logging.Config{
				Version: Version,
				Env:     logging.ParseEnv(cfg.Env),
				Level:   lvl,
			})
			if err := cfg.RequireCookieKeys(); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			store := auth.NewStore(cfg.CookieHashKey, cfg.CookieBlockKey, cfg.AccessPasswordBcrypt)
			planner := scheduler.New(cfg.Reference, nil)
			ws := &web.Server{
				Auth:    store,
				Planner: planner,
				Builder: &calendar.Builder{Planner: planner, Title: cfg.MeetingTitle, Domain: cfg.AttendeeDomain},
				Log:     log,
				TopN:    cfg.TopN,
			}
			log.Info("starting",
				"reference_zone", cfg.Reference.String(),
				"protected", store.Protected(),
				"base_url", cfg.BaseURL,
			)
			return web.Start(ctx, log, cfg.ListenAddr, ws.Routes())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default LISTEN_ADDR)")
	return cmd
}
