package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/vadsplit/pkg/frame"
	sourceauto "github.com/xaionaro-go/vadsplit/pkg/framesource/implementations/auto"
	vadauto "github.com/xaionaro-go/vadsplit/pkg/vad/implementations/auto"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, frame.DefaultFormat(), cfg.Format())
	require.Equal(t, 3, cfg.VAD.Aggressiveness)
	require.Equal(t, 300*time.Millisecond, cfg.Segmenter.StartPadding)
	require.Equal(t, 0.75, cfg.Segmenter.EndRatio)
	require.Len(t, cfg.SegmenterOptions(), 5)
}

func TestLoadFromReader(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(`
audio:
  source: file
  input_file: /tmp/audio.raw
  blocks_per_second: 100
vad:
  backend: rms
  aggressiveness: 1
segmenter:
  end_padding: 600ms
  end_ratio: 0.9
metrics:
  listen_addr: 127.0.0.1:9090
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, sourceauto.KindFile, cfg.Audio.Source)
	require.Equal(t, "/tmp/audio.raw", cfg.SourceParams().InputFile)
	require.Equal(t, 10*time.Millisecond, cfg.Format().FrameDuration)
	require.Equal(t, uint(16000), cfg.Audio.SampleRate)
	require.Equal(t, vadauto.BackendRMS, cfg.VAD.Backend)
	require.Equal(t, 1, cfg.VAD.Aggressiveness)
	require.Equal(t, 300*time.Millisecond, cfg.Segmenter.StartPadding)
	require.Equal(t, 600*time.Millisecond, cfg.Segmenter.EndPadding)
	require.Equal(t, 0.75, cfg.Segmenter.StartRatio)
	require.Equal(t, 0.9, cfg.Segmenter.EndRatio)
	require.Equal(t, "127.0.0.1:9090", cfg.Metrics.ListenAddr)
}

func TestLoadEmpty(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, Default(), *cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), *cfg)
}

func TestLoadUnknownField(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("vad:\n  agressiveness: 2\n"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("vad:\n  aggressiveness: 0\n"), 0644))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 0, cfg.VAD.Aggressiveness)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Audio.SampleRate = 44100
	cfg.VAD.Aggressiveness = 4
	cfg.VAD.Backend = "neural"
	cfg.Segmenter.StartRatio = 2
	cfg.Segmenter.EndPadding = -time.Second
	cfg.Audio.Source = sourceauto.KindFile

	err := cfg.Validate()
	require.Error(t, err)
	for _, substr := range []string{"audio:", "input_file", "vad: unknown", "aggressiveness", "padding", "ratios"} {
		require.Contains(t, err.Error(), substr)
	}
}

func TestDumpLoad(t *testing.T) {
	cfg := Default()
	cfg.Segmenter.EndPadding = 450 * time.Millisecond

	var buf bytes.Buffer
	require.NoError(t, cfg.Dump(&buf))
	require.Contains(t, buf.String(), "end_padding: 450ms")

	loaded, err := LoadFromReader(&buf)
	require.NoError(t, err)
	require.Equal(t, cfg, *loaded)
}
