package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/robalobadob/bridge/internal/bridge"
	"github.com/robalobadob/bridge/internal/config"
	"github.com/robalobadob/bridge/internal/console"
	"github.com/robalobadob/bridge/internal/httpserver"
	"github.com/robalobadob/bridge/internal/store"
)

// app carries state shared between the root and sub commands.
type app struct {
	v   *viper.Viper
	cfg config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "bridge",
		Short: "Bridge crossing guessing game",
		Long: `Cross a bridge of 3 to 20 positions by guessing, at each step,
whether the up (U) or down (D) lane holds. A wrong guess ends the attempt;
retry (R) from the start or quit (Q).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			setupLogging(cfg, os.Stderr)
			return nil
		},
		RunE: a.runPlay,
	}

	pf := root.PersistentFlags()
	pf.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.String("log-format", "console", "log format on stderr: console or json")
	pf.String("generator", "random", "bridge source: random or daily")
	pf.String("daily-date", "", "daily bridge date YYYY-MM-DD (default today, UTC)")
	_ = a.v.BindPFlag("log_level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("log_format", pf.Lookup("log-format"))
	_ = a.v.BindPFlag("generator", pf.Lookup("generator"))
	_ = a.v.BindPFlag("daily_date", pf.Lookup("daily-date"))

	play := &cobra.Command{
		Use:   "play",
		Short: "Play one session on the console (default)",
		RunE:  a.runPlay,
	}
	for _, c := range []*cobra.Command{root, play} {
		c.Flags().Bool("reprompt", false, "ask again after invalid input instead of ending the game")
		c.Flags().Bool("color", true, "colour the map when stdout is a terminal")
	}
	root.AddCommand(play, a.serveCmd())
	return root
}

func (a *app) runPlay(cmd *cobra.Command, args []string) error {
	_ = a.v.BindPFlag("reprompt", cmd.Flags().Lookup("reprompt"))
	_ = a.v.BindPFlag("color", cmd.Flags().Lookup("color"))
	a.cfg.Reprompt = a.v.GetBool("reprompt")
	a.cfg.Color = a.v.GetBool("color")

	m, err := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), console.Options{
		Generator: a.cfg.Source(time.Now)(),
		Reprompt:  a.cfg.Reprompt,
		Color:     a.cfg.Color,
	})
	if err != nil {
		return err
	}
	err = m.Run(cmd.Context())
	if err != nil && !isInputError(err) && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("session aborted")
	}
	return err
}

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve one game session over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = a.v.BindPFlag("http_addr", cmd.Flags().Lookup("addr"))
			addr := a.v.GetString("http_addr")

			srv := httpserver.New(store.NewMemoryStore(), a.cfg.Source(time.Now))
			log.Info().Str("addr", addr).Str("generator", a.cfg.Generator).Msg("starting bridge server")
			if err := srv.Start(cmd.Context(), addr); err != nil {
				log.Error().Err(err).Msg("server exited")
				return err
			}
			return nil
		},
	}
	cmd.Flags().String("addr", ":5175", "listen address")
	return cmd
}

// isInputError reports whether err came from input validation; those are
// already shown to the player.
func isInputError(err error) bool {
	return errors.Is(err, bridge.ErrInvalidLength) ||
		errors.Is(err, bridge.ErrInvalidDirection) ||
		errors.Is(err, bridge.ErrInvalidCommand)
}
