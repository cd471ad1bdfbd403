package terminal

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Clicker makes a short sound when a fly is eaten.
type Clicker interface {
	Click()
}

type silent struct{}

func (silent) Click() {}

// Beeper plays clicks through the system speaker.
type Beeper struct {
	sr beep.SampleRate
}

// NewBeeper initialises the speaker.
func NewBeeper() (*Beeper, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	return &Beeper{sr: sampleRate}, nil
}

// Click plays a 30 ms tone without blocking.
func (b *Beeper) Click() {
	speaker.Play(clickSound(b.sr))
}

// Close shuts the speaker down.
func (b *Beeper) Close() {
	speaker.Close()
}

// clickSound is a quiet 880 Hz blip.
func clickSound(sr beep.SampleRate) beep.Streamer {
	sine, err := generators.SineTone(sr, 880)
	if err != nil {
		return beep.Silence(0)
	}
	return &effects.Volume{
		Streamer: beep.Take(sr.N(30*time.Millisecond), sine),
		Base:     2,
		Volume:   -2,
	}
}
