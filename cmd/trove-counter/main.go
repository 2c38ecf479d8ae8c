// Package main is the entry point for the trove-counter CLI.
//
// Usage:
//
//	trove-counter watch corrections          # live count in the terminal
//	trove-counter watch tags --sink html -o tags.html
//	trove-counter once tags                  # print one HTML fragment
//	trove-counter title "Small data"         # print a heading fragment
//	trove-counter page https://trove.nla.gov.au
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "trove-counter",
	Short: "Live Trove record counts rendered as HTML",
	Long: `trove-counter polls the Trove API for the number of newspaper articles
users have corrected or tagged and keeps a display up to date with it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		levelName, _ := cmd.Flags().GetString("log-level")
		level, err := log.ParseLevel(levelName)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "trove-counter %s\n", version)
	},
}

func init() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	rootCmd.PersistentFlags().StringP("config", "c", "", "path to YAML config file")
	rootCmd.PersistentFlags().String("log-level", "warning", "log level (debug, info, warning, error)")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("trove-counter failed")
		os.Exit(1)
	}
}
