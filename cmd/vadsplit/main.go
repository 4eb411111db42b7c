package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/vadsplit/pkg/config"
	"github.com/xaionaro-go/vadsplit/pkg/metrics"
	"github.com/xaionaro-go/vadsplit/pkg/pipeline"
	"golang.org/x/sync/errgroup"
)

func syntaxExit(message string) {
	fmt.Fprintf(os.Stderr, "syntax error: %s\n", message)
	pflag.Usage()
	os.Exit(2)
}

func main() {
	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	configPath := pflag.String("config", "", "path to a YAML config file")
	outputDir := pflag.StringP("output", "o", ".", "the directory to write the utterances to")
	listDevicesFlag := pflag.Bool("list-devices", false, "list the PortAudio input devices and exit")
	dumpConfigFlag := pflag.Bool("dump-config", false, "print the effective config and exit")
	flags := config.RegisterFlags(pflag.CommandLine)
	pflag.Parse()
	if pflag.NArg() != 0 {
		syntaxExit("expected no arguments")
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	if *listDevicesFlag {
		if err := listDevices(os.Stdout); err != nil {
			logger.Fatal(ctx, err)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal(ctx, err)
	}
	flags.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		syntaxExit(err.Error())
	}
	if *dumpConfigFlag {
		if err := cfg.Dump(os.Stdout); err != nil {
			logger.Fatal(ctx, err)
		}
		return
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		logger.Fatal(ctx, err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	p, err := pipeline.New(ctx, *cfg, pipeline.OptionMetrics{Metrics: m})
	if err != nil {
		logger.Fatal(ctx, err)
	}

	w := newUtteranceWriter(*outputDir, p.Format(), os.Stdout)
	if err := run(ctx, p, w, cfg.Metrics.ListenAddr, reg); err != nil {
		logger.Fatal(ctx, err)
	}
}

type utteranceSession interface {
	utteranceSource
	io.Closer
}

// run writes the utterances until the source is exhausted or ctx is
// cancelled. The session is closed before run returns.
func run(
	ctx context.Context,
	s utteranceSession,
	w *utteranceWriter,
	metricsAddr string,
	gatherer prometheus.Gatherer,
) (_err error) {
	logger.Debugf(ctx, "run")
	defer func() { logger.Debugf(ctx, "/run: %v", _err) }()
	defer func() {
		if err := s.Close(); err != nil {
			logger.Errorf(ctx, "unable to close the pipeline: %v", err)
		}
	}()

	ctx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()
	errGroup, ctx := errgroup.WithContext(ctx)
	if metricsAddr != "" {
		errGroup.Go(func() error {
			return metrics.ListenAndServe(ctx, metricsAddr, gatherer)
		})
	}
	errGroup.Go(func() error {
		defer cancelFn()
		return w.Run(ctx, s)
	})
	return errGroup.Wait()
}
