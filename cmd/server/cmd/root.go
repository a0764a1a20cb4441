package cmd

import (
	"fmt"
	"os"

	"carnet/internal/app/server/config"
	"carnet/internal/utils/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"
)

var (
	envFile string
	v       = viper.New()
	cfg     *config.Config
	log     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "carnet",
	Short: "Carnet - private journal and tracking API server",
	Long: `Carnet serves an owner-scoped JSON API for journal entries, logs,
inventories and other personal records, backed by PostgreSQL or SQLite.

Configuration comes from the environment and an optional .env file.`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup(_ *cobra.Command, _ []string) error {
	cfg = config.MustLoad(v, envFile)
	log = logger.NewWithLevel(cfg.Env, cfg.Logger.LogLevel)

	if cfg.Auth.DefaultSecret {
		log.Warn("SECRET_KEY is not set, signing tokens with the development key")
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvPath, "path to a .env file")
	rootCmd.PersistentFlags().String("database-driver", "", "storage backend: postgres or sqlite")
	rootCmd.PersistentFlags().String("database-uri", "", "database connection string or SQLite file path")
	_ = v.BindPFlag("database_driver", rootCmd.PersistentFlags().Lookup("database-driver"))
	_ = v.BindPFlag("database_uri", rootCmd.PersistentFlags().Lookup("database-uri"))

	rootCmd.AddCommand(serveCmd, migrateCmd, userCmd)
}
