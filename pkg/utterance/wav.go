package utterance

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/xaionaro-go/audio/pkg/audio"
	"github.com/xaionaro-go/vadsplit/pkg/frame"
)

const (
	wavBitDepth    = 16
	wavFormatPCM   = 1
	bytesPerSample = 2
)

// WriteWAV writes the utterance as a 16-bit PCM WAV file.
func WriteWAV(w io.WriteSeeker, u *Utterance, format frame.Format) error {
	if len(u.Audio)%bytesPerSample != 0 {
		return fmt.Errorf("the audio length %d is not a multiple of the sample size", len(u.Audio))
	}

	samples := make([]int, len(u.Audio)/bytesPerSample)
	for idx := range samples {
		samples[idx] = int(int16(binary.LittleEndian.Uint16(u.Audio[idx*bytesPerSample:])))
	}

	enc := wav.NewEncoder(w, int(format.SampleRate), wavBitDepth, int(format.Channels), wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: int(format.Channels),
			SampleRate:  int(format.SampleRate),
		},
		Data:           samples,
		SourceBitDepth: wavBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("unable to write the samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("unable to finalize the WAV file: %w", err)
	}
	return nil
}

// ReadWAV reads a 16-bit PCM WAV file back into S16LE bytes.
func ReadWAV(r io.ReadSeeker) ([]byte, frame.Format, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, frame.Format{}, fmt.Errorf("not a valid WAV file")
	}
	if dec.BitDepth != wavBitDepth {
		return nil, frame.Format{}, fmt.Errorf("unsupported bit depth %d", dec.BitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, frame.Format{}, fmt.Errorf("unable to read the samples: %w", err)
	}

	result := make([]byte, len(buf.Data)*bytesPerSample)
	for idx, sample := range buf.Data {
		binary.LittleEndian.PutUint16(result[idx*bytesPerSample:], uint16(int16(sample)))
	}

	format := frame.DefaultFormat()
	format.SampleRate = audio.SampleRate(dec.SampleRate)
	format.Channels = audio.Channel(dec.NumChans)
	return result, format, nil
}
