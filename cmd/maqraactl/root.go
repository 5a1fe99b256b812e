// Root command: loads configuration, builds the logger, and opens the
// session every subcommand runs against.
package main

import (
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	maqraa "github.com/maqraa/maqraa.go"
	"github.com/maqraa/maqraa.go/pkg/api"
	"github.com/maqraa/maqraa.go/pkg/config"
	"github.com/maqraa/maqraa.go/pkg/logger"
	"github.com/maqraa/maqraa.go/pkg/notify"
	"github.com/maqraa/maqraa.go/pkg/token"
)

// Global flag values.
var (
	flagConfig   string
	flagBaseURL  string
	flagToken    string
	flagJSON     bool
	flagForce    bool
	flagLogLevel string
)

// Set by PersistentPreRunE for all subcommands.
var (
	cfg     config.Config
	session *maqraa.Session
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:     "maqraactl",
	Short:   "maqraactl drives the Maqraa classroom admin API from the terminal",
	Version: maqraa.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return err
		}
		if flagBaseURL != "" {
			cfg.BaseURL = flagBaseURL
		}
		if flagToken != "" {
			cfg.TokenPath = flagToken
		}
		if flagLogLevel != "" {
			cfg.LogLevel = flagLogLevel
		}

		level, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		build := logger.New().Level(level)
		if cfg.LogPath != "" {
			build = build.ToPath(cfg.LogPath)
		}
		log, file, err := build.Make()
		if err != nil {
			return err
		}
		logFile = file

		client := api.NewClient(cfg.BaseURL, token.NewFile(cfg.TokenPath))
		client.SetHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout})
		client.SetLogger(log)

		session = maqraa.NewSession(client)
		session.SetLogger(log)
		session.SetNotifier(notify.NewLog(log))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			_ = logFile.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "configuration file (YAML)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "admin API base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token-path", "", "bearer token file (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagForce, "force", false, "bypass the session cache and refetch")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "zerolog level (overrides config)")

	rootCmd.AddCommand(classroomsCmd)
	rootCmd.AddCommand(classCmd)
	rootCmd.AddCommand(studentsCmd)
	rootCmd.AddCommand(plansCmd)
	rootCmd.AddCommand(transactionsCmd)
	rootCmd.AddCommand(pendingCmd)
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(watchCmd)
}
