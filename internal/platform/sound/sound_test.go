package sound

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/lane-dodge/internal/core"
)

// drain streams s to the end and returns the number of samples produced.
func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			if buf[j][0] < -1.0001 || buf[j][0] > 1.0001 {
				t.Fatalf("sample out of range: %f", buf[j][0])
			}
		}
		total += n
		if !ok {
			return total
		}
	}
	t.Fatal("stream never ended")
	return 0
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	s := newTone(440, 440, 100*time.Millisecond, WaveSine, rate)

	if got, want := drain(t, s), rate.N(100*time.Millisecond); got != want {
		t.Errorf("streamed %d samples, expected %d", got, want)
	}
	if s.Err() != nil {
		t.Errorf("unexpected error: %v", s.Err())
	}
}

func TestEnvelopeFadesIn(t *testing.T) {
	rate := beep.SampleRate(1000)
	d := 100 * time.Millisecond
	s := newEnvelope(newTone(0, 0, d, WaveSquare, rate), d, 50*time.Millisecond, 0, rate)

	buf := make([][2]float64, 100)
	n, _ := s.Stream(buf)
	if n != 100 {
		t.Fatalf("streamed %d samples", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample should be silent, got %f", buf[0][0])
	}
	if buf[25][0] <= 0 || buf[25][0] >= 1 {
		t.Errorf("mid-attack sample should be partial, got %f", buf[25][0])
	}
	if buf[80][0] != 1 {
		t.Errorf("sustain sample should be full, got %f", buf[80][0])
	}
}

func TestCues(t *testing.T) {
	tests := []struct {
		kind core.EventKind
		min  time.Duration
	}{
		{core.EventCoinCollected, 200 * time.Millisecond},
		{core.EventCrash, 200 * time.Millisecond},
		{core.EventRunOver, 600 * time.Millisecond},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			s := Cue(tc.kind)
			if s == nil {
				t.Fatal("expected a cue")
			}
			if got := drain(t, s); got < sampleRate.N(tc.min) {
				t.Errorf("cue too short: %d samples", got)
			}
		})
	}

	if Cue(core.EventKind(0)) != nil {
		t.Error("unknown kind should have no cue")
	}
}

func TestPlayerSilentUntilInitialized(t *testing.T) {
	p := NewPlayer(1, nil)
	if p.Enabled() {
		t.Fatal("player should start disabled")
	}
	p.Notify(core.Event{Kind: core.EventCrash})
	p.Close()
}
