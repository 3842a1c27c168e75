package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Flags
	cfgPath string
	debug   bool

	// Root command
	rootCmd = &cobra.Command{
		Use:   "planning-service",
		Short: "Planning Service",
		Long: `Planning Service for coordinating group events.

Functions:
- Drive events through their lifecycle from draft to completion
- Collect invitations and participant RSVPs
- Aggregate participant dining preferences into a group consensus
- Generate and rank venue recommendations for the group to vote on`,
	}
)

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "path to the config directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}

// initLogging configures the process-wide log defaults
func initLogging() {
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// newLogger builds the logger handed to the service stack
func newLogger(environment string) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.GetLevel())

	if environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
