package main

import (
	"fmt"
	"strings"

	"github.com/dvdk01/trove-counter/internal/render"
	"github.com/dvdk01/trove-counter/internal/validator"
	"github.com/spf13/cobra"
)

var titleCmd = &cobra.Command{
	Use:   "title <text>",
	Short: "Print an HTML heading fragment",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		display, err := render.New().Title(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), display.HTML)
		return nil
	},
}

var pageCmd = &cobra.Command{
	Use:   "page <url>",
	Short: "Print an HTML iframe fragment embedding url",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validator.New().ValidateURL(args[0]); err != nil {
			return fmt.Errorf("invalid url %q: %w", args[0], err)
		}
		display, err := render.New().Page(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), display.HTML)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(titleCmd, pageCmd)
}
