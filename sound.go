package pickit

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// Sound is a fully decoded clip: 16-bit little-endian stereo PCM at
// SampleRate.
type Sound struct {
	pcm        []byte
	sampleRate int
}

// SampleRate returns the rate the clip was decoded at.
func (s *Sound) SampleRate() int { return s.sampleRate }

// Duration returns the clip length in seconds.
func (s *Sound) Duration() float64 {
	const bytesPerFrame = 4 // 2 channels x 16 bit
	return float64(len(s.pcm)/bytesPerFrame) / float64(s.sampleRate)
}

// decodeSound picks a decoder by file extension and resamples to sampleRate.
func decodeSound(locator string, data []byte, sampleRate int) (*Sound, error) {
	var (
		stream io.Reader
		err    error
	)
	r := bytes.NewReader(data)
	switch ext := strings.ToLower(path.Ext(locator)); ext {
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(sampleRate, r)
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(sampleRate, r)
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(sampleRate, r)
	default:
		return nil, fmt.Errorf("unsupported sound format %q", ext)
	}
	if err != nil {
		return nil, err
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, err
	}
	return &Sound{pcm: pcm, sampleRate: sampleRate}, nil
}

// Mixer plays decoded clips. Play must not block; overlapping plays of the
// same clip are allowed.
type Mixer interface {
	Play(s *Sound) error
}

// ebitenMixer plays clips through Ebitengine's audio context.
type ebitenMixer struct {
	ctx    *audio.Context
	volume float64
}

func newEbitenMixer(sampleRate int, volume float64) *ebitenMixer {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	return &ebitenMixer{ctx: ctx, volume: clamp(volume, 0, 1)}
}

// Play starts a new player for s and returns immediately.
func (m *ebitenMixer) Play(s *Sound) error {
	if s.sampleRate != m.ctx.SampleRate() {
		return fmt.Errorf("sound decoded at %d Hz, mixer runs at %d Hz", s.sampleRate, m.ctx.SampleRate())
	}
	p := m.ctx.NewPlayerFromBytes(s.pcm)
	p.SetVolume(m.volume)
	p.Play()
	return nil
}
