package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/observability"
	"github.com/xaionaro-go/vadsplit/pkg/config"
	"github.com/xaionaro-go/vadsplit/pkg/dataset"
	"github.com/xaionaro-go/vadsplit/pkg/metrics"
	"github.com/xaionaro-go/vadsplit/pkg/pipeline"
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
	inputPath := pflag.StringP("input", "i", "prompts.txt", "the text file that we're going to read aloud (one utterance per line)")
	outputDir := pflag.StringP("output", "o", "dataset", "the folder where we'll save the dataset we're creating")
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

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal(ctx, err)
	}
	flags.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		syntaxExit(err.Error())
	}
	if cfg.Audio.InputFile == "-" {
		syntaxExit("stdin is used for the confirmations, it cannot be the audio input")
	}

	prompts, err := dataset.ReadPromptsFile(*inputPath)
	if err != nil {
		logger.Fatal(ctx, err)
	}
	ds, err := dataset.Open(ctx, *outputDir)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if addr := cfg.Metrics.ListenAddr; addr != "" {
		observability.Go(ctx, func() {
			if err := metrics.ListenAndServe(ctx, addr, reg); err != nil {
				logger.Errorf(ctx, "%v", err)
			}
		})
	}

	r := &datasetRecorder{
		Dataset:  ds,
		Prompts:  prompts,
		Prompter: dataset.NewPrompter(os.Stdin, os.Stdout),
		Out:      os.Stdout,
		Format:   cfg.Format(),
		NewSession: func(ctx context.Context) (session, error) {
			p, err := pipeline.New(ctx, *cfg, pipeline.OptionMetrics{Metrics: m})
			if err != nil {
				return nil, err
			}
			return p, nil
		},
		Now: time.Now,
	}
	if err := r.Run(ctx); err != nil {
		logger.Fatal(ctx, err)
	}
}
