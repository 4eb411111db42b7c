// Package dataset maintains a speech dataset directory: recorded WAV files
// plus a CSV index mapping every file to its transcript.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/vadsplit/pkg/frame"
	"github.com/xaionaro-go/vadsplit/pkg/utterance"
)

const (
	IndexFileName = "dataset.csv"
)

var Header = []string{"wav_filename", "wav_filesize", "transcript"}

var errEmptyIndex = errors.New("the index is empty")

type Dataset struct {
	dir      string
	progress int
}

// Open opens the dataset in the directory, creating the directory and an
// empty index if needed.
func Open(ctx context.Context, dir string) (_ret *Dataset, _err error) {
	logger.Debugf(ctx, "Open(ctx, '%s')", dir)
	defer func() { logger.Debugf(ctx, "/Open(ctx, '%s'): %v", dir, _err) }()

	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to get the absolute path of '%s': %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create directory '%s': %w", dir, err)
	}

	d := &Dataset{dir: dir}
	progress, err := d.countRows()
	switch {
	case err == nil:
		d.progress = progress
	case errors.Is(err, os.ErrNotExist), errors.Is(err, errEmptyIndex):
		if err := d.writeHeader(); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	logger.Debugf(ctx, "the dataset in '%s' has %d recordings", dir, d.progress)
	return d, nil
}

func (d *Dataset) Dir() string {
	return d.dir
}

func (d *Dataset) IndexPath() string {
	return filepath.Join(d.dir, IndexFileName)
}

// Progress returns the amount of recordings in the index.
func (d *Dataset) Progress() int {
	return d.progress
}

func (d *Dataset) countRows() (int, error) {
	f, err := os.Open(d.IndexPath())
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err == io.EOF {
		return 0, errEmptyIndex
	}
	if err != nil {
		return 0, fmt.Errorf("unable to read the header of '%s': %w", d.IndexPath(), err)
	}
	if !slices.Equal(header, Header) {
		return 0, ErrInvalidHeader{Path: d.IndexPath(), Header: header}
	}

	count := 0
	for {
		_, err := r.Read()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return 0, fmt.Errorf("unable to parse '%s': %w", d.IndexPath(), err)
		}
		count++
	}
}

func (d *Dataset) writeHeader() error {
	f, err := os.OpenFile(d.IndexPath(), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("unable to create '%s': %w", d.IndexPath(), err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		f.Close()
		return fmt.Errorf("unable to write the header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("unable to write the header: %w", err)
	}
	return f.Close()
}

// WAVPath returns the path of a new recording made at the given moment.
func (d *Dataset) WAVPath(now time.Time) string {
	name := fmt.Sprintf("wavpath_%s_%06d.wav", now.Format("2006-01-02_15-04-05"), now.Nanosecond()/1000)
	return filepath.Join(d.dir, name)
}

// Append adds a row to the index.
func (d *Dataset) Append(wavPath string, wavSize int64, transcript string) error {
	f, err := os.OpenFile(d.IndexPath(), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("unable to open '%s': %w", d.IndexPath(), err)
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{wavPath, fmt.Sprint(wavSize), transcript}); err != nil {
		f.Close()
		return fmt.Errorf("unable to write the row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("unable to write the row: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to close '%s': %w", d.IndexPath(), err)
	}
	d.progress++
	return nil
}

// Record writes the utterance as a new WAV file and adds it to the index.
func (d *Dataset) Record(
	ctx context.Context,
	u *utterance.Utterance,
	format frame.Format,
	transcript string,
	now time.Time,
) (_ret string, _err error) {
	wavPath := d.WAVPath(now)
	logger.Debugf(ctx, "Record(ctx, %v, '%s'): '%s'", u.Duration, transcript, wavPath)
	defer func() { logger.Debugf(ctx, "/Record(ctx, %v, '%s'): %v", u.Duration, transcript, _err) }()

	f, err := os.Create(wavPath)
	if err != nil {
		return "", fmt.Errorf("unable to create '%s': %w", wavPath, err)
	}
	if err := utterance.WriteWAV(f, u, format); err != nil {
		f.Close()
		return "", fmt.Errorf("unable to write '%s': %w", wavPath, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("unable to close '%s': %w", wavPath, err)
	}

	stat, err := os.Stat(wavPath)
	if err != nil {
		return "", fmt.Errorf("unable to stat '%s': %w", wavPath, err)
	}
	if err := d.Append(wavPath, stat.Size(), transcript); err != nil {
		return "", err
	}
	logger.Infof(ctx, "wrote '%s'", wavPath)
	return wavPath, nil
}
