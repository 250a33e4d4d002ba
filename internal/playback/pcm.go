package playback

import (
	"github.com/gopxl/beep/v2"
)

// pcmStream implements beep.StreamSeeker over raw 16-bit little-endian
// mono PCM, upmixed to stereo.
type pcmStream struct {
	data       []byte
	sampleRate beep.SampleRate
	position   int
}

func (s *pcmStream) Stream(samples [][2]float64) (n int, ok bool) {
	if s.position >= len(s.data) {
		return 0, false
	}

	for i := range samples {
		if s.position+1 >= len(s.data) {
			return i, true
		}

		sample16 := int16(s.data[s.position]) | int16(s.data[s.position+1])<<8
		sampleFloat := float64(sample16) / 32768.0

		samples[i][0] = sampleFloat
		samples[i][1] = sampleFloat

		s.position += 2
	}

	return len(samples), true
}

func (s *pcmStream) Err() error {
	return nil
}

func (s *pcmStream) Len() int {
	return len(s.data) / 2
}

func (s *pcmStream) Position() int {
	return s.position / 2
}

func (s *pcmStream) Seek(p int) error {
	s.position = p * 2
	if s.position < 0 {
		s.position = 0
	}
	if s.position >= len(s.data) {
		s.position = len(s.data)
	}
	return nil
}
