package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	sourceauto "github.com/xaionaro-go/vadsplit/pkg/framesource/implementations/auto"
	vadauto "github.com/xaionaro-go/vadsplit/pkg/vad/implementations/auto"
)

func TestFlagsOverrideOnlyChanged(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"-v", "1",
		"--input-file", "-",
		"--padding", "200ms",
		"--end-padding", "500ms",
		"--start-ratio", "0.6",
		"--vad-backend", "RMS",
	}))

	cfg := Default()
	cfg.VAD.Aggressiveness = 2
	cfg.Segmenter.EndRatio = 0.8
	cfg.Metrics.ListenAddr = ":9090"
	flags.Apply(&cfg)

	require.Equal(t, 1, cfg.VAD.Aggressiveness)
	require.Equal(t, vadauto.BackendRMS, cfg.VAD.Backend)
	require.Equal(t, sourceauto.KindFile, cfg.Audio.Source)
	require.Equal(t, "-", cfg.Audio.InputFile)
	require.Equal(t, 200*time.Millisecond, cfg.Segmenter.StartPadding)
	require.Equal(t, 500*time.Millisecond, cfg.Segmenter.EndPadding)
	require.Equal(t, 0.6, cfg.Segmenter.StartRatio)
	require.Equal(t, 0.8, cfg.Segmenter.EndRatio)
	require.Equal(t, ":9090", cfg.Metrics.ListenAddr)
	require.NoError(t, cfg.Validate())
}

func TestFlagsExplicitSourceWins(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--source", "recorder", "--input-file", "x.raw"}))

	cfg := Default()
	flags.Apply(&cfg)
	require.Equal(t, sourceauto.KindRecorder, cfg.Audio.Source)
}

func TestFlagsInvalidBackend(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.Error(t, fs.Parse([]string{"--vad-backend", "neural"}))
}
