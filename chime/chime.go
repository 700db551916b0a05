// Package chime synthesizes the short celebration sounds played when the
// click counter fires. Every sound is a finite beep.Streamer; hosts hand it
// to speaker.Play (or mix it themselves).
package chime

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the rate every sound is generated at.
const SampleRate = beep.SampleRate(44100)

// Note frequencies in Hz.
const (
	noteC6 = 1046.50
	noteE6 = 1318.51
	noteG6 = 1567.98
	noteC7 = 2093.00
)

const (
	arpeggioNote = 90 * time.Millisecond
	arpeggioTail = 400 * time.Millisecond
	attack       = 5 * time.Millisecond
	pingLength   = 180 * time.Millisecond
)

// tone is a sine oscillator that stops after a fixed number of samples.
type tone struct {
	freq  float64
	phase float64
	n     int
	pos   int
	rate  beep.SampleRate
}

func newTone(freq float64, d time.Duration, rate beep.SampleRate) *tone {
	return &tone{freq: freq, n: rate.N(d), rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if t.pos >= t.n {
			return i, i > 0
		}
		v := math.Sin(2 * math.Pi * t.phase)
		samples[i][0], samples[i][1] = v, v
		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope ramps a stream in over attack samples and linearly out over the
// rest.
type envelope struct {
	s      beep.Streamer
	attack int
	total  int
	pos    int
}

func newEnvelope(s beep.Streamer, d, att time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{s: s, attack: rate.N(att), total: rate.N(d)}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		switch {
		case e.pos < e.attack:
			vol = float64(e.pos) / float64(e.attack)
		case e.total > e.attack:
			vol = float64(e.total-e.pos) / float64(e.total-e.attack)
		}
		vol = max(vol, 0)
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// volume scales s by a linear gain; zero or less is silent.
func volume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

func note(freq float64, d time.Duration) beep.Streamer {
	return newEnvelope(newTone(freq, d, SampleRate), d, attack, SampleRate)
}

// Celebration is a rising C major arpeggio whose last note rings out, played
// with the confetti burst.
func Celebration(gain float64) beep.Streamer {
	return volume(beep.Seq(
		note(noteC6, arpeggioNote),
		note(noteE6, arpeggioNote),
		note(noteG6, arpeggioNote),
		note(noteC7, arpeggioTail),
	), gain)
}

// Ping is a short bell used for single heart clicks: the fundamental mixed
// with a quieter octave.
func Ping(gain float64) beep.Streamer {
	return volume(beep.Mix(
		volume(note(noteE6, pingLength), 0.7),
		volume(note(2*noteE6, pingLength), 0.3),
	), gain)
}

// Length returns the duration of a sound built by this package.
func Length(s beep.Streamer) time.Duration {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	return SampleRate.D(total)
}
