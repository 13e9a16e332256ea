package player

import (
	"context"
	"fmt"
	"time"

	"visualpattern/internal/voice/cache"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/sirupsen/logrus"
)

// Play sends an audio file to the default output device and blocks until
// it finishes or ctx is cancelled
func Play(ctx context.Context, path string) error {
	streamer, format, err := cache.Decode(path)
	if err != nil {
		return err
	}
	defer streamer.Close()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialise speaker: %w", err)
	}
	defer speaker.Close()

	done := make(chan struct{})
	ctrl := &beep.Ctrl{Streamer: streamer}
	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		close(done)
	})))

	logrus.WithField("path", path).Debug("Playing narration")

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Lock()
		ctrl.Paused = true
		speaker.Unlock()
		return ctx.Err()
	}
}
