package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/guessnumber/internal/config"
	"github.com/robalobadob/guessnumber/internal/db"
	"github.com/robalobadob/guessnumber/internal/httpserver"
	"github.com/robalobadob/guessnumber/internal/solver"
)

var (
	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "guessnumber",
		Short: "Bulls-and-cows solver: play, self-test, or serve over HTTP",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			zerolog.SetGlobalLevel(cfg.LogLevel)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		},
		SilenceUsage: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP service",
		RunE:  runServe,
	}
)

func init() {
	rootCmd.AddCommand(serveCmd, playCmd, selftestCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	conn, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.DatabasePath).Msg("open database")
		return err
	}
	defer conn.Close()
	if err := db.Migrate(conn); err != nil {
		log.Error().Err(err).Msg("migrate database")
		return err
	}

	srv := httpserver.New(cfg, conn, solver.NewPool(cfg.SolverPoolSize))
	log.Info().Str("port", cfg.Port).Int("pool", cfg.SolverPoolSize).Msg("starting guessnumber server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server exited")
		return err
	}
	return nil
}
