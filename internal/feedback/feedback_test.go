package feedback

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-dodge/internal/core"
)

func TestMultiPreservesOrder(t *testing.T) {
	var got []string
	record := func(name string) Sink {
		return SinkFunc(func(ev core.Event) {
			got = append(got, name+":"+ev.Kind.String())
		})
	}

	m := Multi{record("a"), nil, record("b")}
	NotifyAll(m, []core.Event{
		{Kind: core.EventCoinCollected},
		{Kind: core.EventCrash},
	})

	expected := []string{"a:coin_collected", "b:coin_collected", "a:crash", "b:crash"}
	if strings.Join(got, ",") != strings.Join(expected, ",") {
		t.Errorf("got %v, expected %v", got, expected)
	}
}

func TestNotifyAllNilSink(t *testing.T) {
	NotifyAll(nil, []core.Event{{Kind: core.EventCrash}})
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	sink := NewLogSink(logger)

	sink.Notify(core.Event{Kind: core.EventCoinCollected, Score: 10})
	sink.Notify(core.Event{Kind: core.EventCrash, Lives: 2, Score: 11})
	sink.Notify(core.Event{Kind: core.EventRunOver, Score: 42})

	out := buf.String()
	for _, want := range []string{"coin collected", "crash", "lives=2", "run over", "score=42"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		ev   core.Event
		want string
	}{
		{core.Event{Kind: core.EventCoinCollected}, "Collected Coin! +10"},
		{core.Event{Kind: core.EventCrash}, "Crash"},
		{core.Event{Kind: core.EventRunOver, Score: 7}, "Game Over: 7"},
		{core.Event{}, ""},
	}
	for _, tc := range tests {
		if got := Message(tc.ev, 10); got != tc.want {
			t.Errorf("Message(%v) = %q, expected %q", tc.ev.Kind, got, tc.want)
		}
	}
}
