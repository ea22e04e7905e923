package sound

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveNoise
)

// tone is an oscillator whose frequency glides linearly from start to end.
type tone struct {
	start, end float64
	phase      float64
	length     int
	position   int
	wave       Wave
	rate       beep.SampleRate
	noise      *rand.Rand
}

// newTone creates a fixed or gliding tone of the given duration.
func newTone(start, end float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{
		start:  start,
		end:    end,
		length: rate.N(d),
		wave:   wave,
		rate:   rate,
		noise:  rand.New(rand.NewSource(int64(start) + 1)),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}

		var val float64
		switch t.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			val = 1
			if t.phase >= 0.5 {
				val = -1
			}
		case WaveNoise:
			val = t.noise.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(t.position) / float64(t.length)
		freq := t.start + (t.end-t.start)*progress
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if releaseStart := e.total - e.release; e.release > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales a stream linearly; 0 or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// coinChime is a quick rising two-note chime.
func coinChime(rate beep.SampleRate) beep.Streamer {
	first := newEnvelope(newTone(987.77, 987.77, 70*time.Millisecond, WaveSquare, rate),
		70*time.Millisecond, 5*time.Millisecond, 20*time.Millisecond, rate)
	second := newEnvelope(newTone(1318.51, 1318.51, 160*time.Millisecond, WaveSquare, rate),
		160*time.Millisecond, 5*time.Millisecond, 120*time.Millisecond, rate)
	return withVolume(beep.Seq(first, second), 0.4)
}

// crashBurst is a short noise burst layered over a low thud.
func crashBurst(rate beep.SampleRate) beep.Streamer {
	d := 220 * time.Millisecond
	noise := newEnvelope(newTone(0, 0, d, WaveNoise, rate), d, 2*time.Millisecond, 180*time.Millisecond, rate)
	thud := newEnvelope(newTone(110, 55, d, WaveSine, rate), d, 2*time.Millisecond, 150*time.Millisecond, rate)
	return withVolume(beep.Mix(withVolume(noise, 0.6), withVolume(thud, 0.8)), 0.5)
}

// runOverTone is a slow descending tone.
func runOverTone(rate beep.SampleRate) beep.Streamer {
	d := 700 * time.Millisecond
	return withVolume(newEnvelope(newTone(660, 165, d, WaveSine, rate), d, 10*time.Millisecond, 300*time.Millisecond, rate), 0.5)
}
