package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// Decode opens an audio file with the decoder matching its extension.
// Closing the returned streamer closes the file.
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unsupported audio format: %s", path)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return streamer, format, nil
}

// Probe returns the playback length of an audio file in seconds
func Probe(path string) (float64, error) {
	streamer, format, err := Decode(path)
	if err != nil {
		return 0, err
	}
	defer streamer.Close()

	if format.SampleRate <= 0 {
		return 0, fmt.Errorf("invalid sample rate in %s", path)
	}
	return format.SampleRate.D(streamer.Len()).Seconds(), nil
}
