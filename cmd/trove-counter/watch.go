package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dvdk01/trove-counter/internal/application"
	"github.com/dvdk01/trove-counter/internal/config"
	"github.com/dvdk01/trove-counter/internal/counter"
	"github.com/dvdk01/trove-counter/internal/processor"
	"github.com/dvdk01/trove-counter/internal/schema"
	"github.com/dvdk01/trove-counter/internal/validator"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <variant>",
	Short: "Keep a display updated with the current count",
	Long: `Poll the Trove API for a variant and replace the display with the new
count after every request. Runs until interrupted (Ctrl+C) or SIGTERM.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var onceCmd = &cobra.Command{
	Use:   "once <variant>",
	Short: "Fetch the count once and print the HTML fragment",
	Args:  cobra.ExactArgs(1),
	RunE:  runOnce,
}

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List configured variants",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		for _, name := range cfg.VariantNames() {
			v, _ := cfg.Variant(name)
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s q=%s\n", v.Name, v.Predicate)
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().String("sink", "terminal", "display sink (terminal, html)")
	watchCmd.Flags().StringP("out", "o", "trove-counter.html", "output file for the html sink")
	watchCmd.Flags().Duration("interval", 0, "delay between requests (default from config, 5s)")
	watchCmd.Flags().Duration("timeout", 0, "request timeout (default from config, 10s)")
	onceCmd.Flags().Duration("timeout", 0, "request timeout (default from config, 10s)")

	rootCmd.AddCommand(watchCmd, onceCmd, variantsCmd)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Lookup("interval") != nil {
		if interval, _ := cmd.Flags().GetDuration("interval"); interval != 0 {
			cfg.Interval = interval
		}
	}
	if cmd.Flags().Lookup("timeout") != nil {
		if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout != 0 {
			cfg.Timeout = timeout
		}
	}

	v := validator.New()
	if results := v.ValidateVariants(cfg.Variants); validator.HasInvalid(results) {
		return nil, fmt.Errorf("invalid variants: %v", results.GetInvalidNames())
	}
	if err := v.ValidateTiming(cfg.Interval, cfg.Timeout); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolve returns the validated base query and the named variant.
func resolve(cfg *config.Config, name string) (schema.Query, schema.Variant, error) {
	variant, err := cfg.Variant(name)
	if err != nil {
		return schema.Query{}, schema.Variant{}, err
	}
	base := cfg.Query()
	if err := validator.New().ValidateQuery(variant.Query(base)); err != nil {
		return schema.Query{}, schema.Variant{}, err
	}
	return base, variant, nil
}

func newSink(kind, out string, stdout io.Writer, interval time.Duration) (application.Application, error) {
	switch kind {
	case "terminal":
		return application.NewCLIApplication(stdout), nil
	case "html":
		return application.NewHTMLApplication(out, int(interval/time.Second)), nil
	default:
		return nil, fmt.Errorf("unknown sink %q (want terminal or html)", kind)
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	base, variant, err := resolve(cfg, args[0])
	if err != nil {
		return err
	}

	kind, _ := cmd.Flags().GetString("sink")
	out, _ := cmd.Flags().GetString("out")
	display, err := newSink(kind, out, cmd.OutOrStdout(), cfg.Interval)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := counter.NewCounter(http.DefaultClient, cfg.Timeout)
	return processor.New(c, display, base, variant, cfg.Interval).Run(ctx)
}

func runOnce(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	base, variant, err := resolve(cfg, args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := counter.NewCounter(http.DefaultClient, cfg.Timeout)
	display, err := processor.New(c, nil, base, variant, cfg.Interval).Once(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), display.HTML)
	return nil
}
