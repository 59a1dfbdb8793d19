package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/matst80/zip-finder/pkg/common"
	"github.com/matst80/zip-finder/pkg/config"
	"github.com/matst80/zip-finder/pkg/logging"
	"github.com/matst80/zip-finder/pkg/session"
	"github.com/matst80/zip-finder/pkg/zipcode"
	"github.com/spf13/cobra"
)

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cfg := config.FromEnv(config.Default())

	cmd := &cobra.Command{
		Use:   "zipfinder [flags] input_csv_file",
		Short: "Look up the zip codes serving a city",
		Long: `zipfinder loads a delimited file of city/zip code records and then answers
one city per line from standard input until end of input.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError("usage: " + cmd.UseLine())
			}
			return runLookup(cmd.Context(), cfg, args[0], stdin, stdout, stderr)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &ExitError{Code: ExitUsage, Message: "usage: " + c.UseLine(), Err: err}
	})

	flags := cmd.Flags()
	flags.StringVar(&cfg.Delimiter, "delimiter", cfg.Delimiter, `field delimiter (single character, "tab", "semicolon" or "pipe")`)
	flags.IntVar(&cfg.CityColumn, "city-column", cfg.CityColumn, "zero based column holding the city")
	flags.IntVar(&cfg.ZipColumn, "zip-column", cfg.ZipColumn, "zero based column holding the zip code")
	flags.BoolVar(&cfg.Header, "header", cfg.Header, "skip the first line of the input file")
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, "result format: text or json")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: console or json")
	flags.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve /metrics and /health on this address")

	return cmd
}

func runLookup(ctx context.Context, cfg config.Config, path string, stdin io.Reader, stdout, stderr io.Writer) error {
	logger := logging.New(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Output:  stderr,
		Service: "zipfinder",
	})
	ctx = logger.WithContext(ctx)

	loaderCfg, err := cfg.LoaderConfig()
	if err != nil {
		return &ExitError{Code: ExitUsage, Message: "invalid input layout", Err: err}
	}
	format, err := session.ParseFormat(cfg.Output)
	if err != nil {
		return &ExitError{Code: ExitUsage, Message: "invalid output format", Err: err}
	}

	ready := &atomic.Bool{}
	if cfg.MetricsAddr != "" {
		timeouts := common.LoadTimeoutConfig(common.DefaultTimeoutConfig())
		server := common.NewDebugServer(cfg.MetricsAddr, common.NewDebugMux(ready), timeouts)
		stop := common.StartServer(ctx, server, "debug server", timeouts, func(context.Context) error {
			ready.Store(false)
			return nil
		})
		defer stop()
	}

	f, err := os.Open(path)
	if err != nil {
		return &ExitError{Code: ExitFileOpen, Message: fmt.Sprintf("cannot open %s for input - exiting", path), Err: err}
	}
	defer f.Close()
	if info, err := f.Stat(); err != nil || info.IsDir() {
		if err == nil {
			err = fmt.Errorf("%s is a directory", path)
		}
		return &ExitError{Code: ExitFileOpen, Message: fmt.Sprintf("cannot open %s for input - exiting", path), Err: err}
	}

	idx, err := zipcode.Load(ctx, f, loaderCfg)
	if err != nil {
		var pe *zipcode.ParseError
		if errors.As(err, &pe) {
			return &ExitError{Code: ExitParse, Message: "failed to process input record - exiting", Err: err}
		}
		return &ExitError{Code: ExitIOFailure, Message: fmt.Sprintf("failed to read %s", path), Err: err}
	}
	ready.Store(true)

	s := session.New(idx, stdin, stdout, session.Options{Format: format})
	if err := s.Run(ctx); err != nil {
		return &ExitError{Code: ExitIOFailure, Message: "query session failed", Err: err}
	}
	return nil
}
