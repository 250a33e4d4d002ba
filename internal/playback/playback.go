// Package playback plays generated audio files on the local machine.
//
// Playback runs behind a cross-process directory lock so concurrent server
// instances never talk over each other.
package playback

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// pcmSampleRate is assumed for raw PCM files, matching the vendor's highest
// PCM output format.
const pcmSampleRate = 44100

// Player plays audio files sequentially.
type Player struct {
	lock *mutexDir
}

func NewPlayer() *Player {
	return &Player{lock: newMutexDir()}
}

// Play decodes and plays the audio file at path, blocking until playback
// finishes or ctx is cancelled. Only one playback runs at a time across all
// server processes on the host.
func (p *Player) Play(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening audio file: %w", err)
	}
	defer f.Close()

	streamer, format, err := decode(f, path)
	if err != nil {
		return err
	}

	if err := p.lock.acquire(ctx); err != nil {
		return err
	}
	defer p.lock.release()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("initializing audio device: %w", err)
	}

	log.Debug("playing audio", "path", path, "sampleRate", format.SampleRate)

	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}

// decode picks a decoder from the filename extension. Raw PCM has no header
// to sniff, so the extension is authoritative.
func decode(f *os.File, path string) (beep.Streamer, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err := mp3.Decode(f)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("decoding mp3: %w", err)
		}
		return streamer, format, nil
	case ".wav":
		streamer, format, err := wav.Decode(f)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("decoding wav: %w", err)
		}
		return streamer, format, nil
	case ".pcm":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, beep.Format{}, err
		}
		format := beep.Format{SampleRate: pcmSampleRate, NumChannels: 2, Precision: 2}
		return &pcmStream{data: data, sampleRate: format.SampleRate}, format, nil
	}
	return nil, beep.Format{}, fmt.Errorf("unsupported audio format %q", filepath.Ext(path))
}
