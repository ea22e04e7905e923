package dodge

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/registry"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g, err := New(config.DefaultDodgeConfig())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: seed})
	return g
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{IDModern, IDClassic} {
		if !registry.Exists(id) {
			t.Errorf("variant %q not registered", id)
		}
	}

	g, err := registry.Create(IDClassic, config.DefaultDodgeConfig())
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", IDClassic, err)
	}
	if g.ID() != IDClassic || g.Title() != "Lane Dodge (Classic)" {
		t.Errorf("unexpected classic variant: %s / %s", g.ID(), g.Title())
	}
	g.SetSpeed(core.SpeedFast)
	if g.TickInterval() != 200*time.Millisecond {
		t.Errorf("classic fast interval = %v, expected 200ms", g.TickInterval())
	}

	if _, err := registry.Create("missing", config.DefaultDodgeConfig()); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestSameSeedSameRun(t *testing.T) {
	a := newTestGame(t, 42)
	b := newTestGame(t, 42)

	moves := []core.Action{core.ActionLeft, core.ActionNone, core.ActionRight, core.ActionRight, core.ActionNone}
	for i := 0; i < 300; i++ {
		m := moves[i%len(moves)]
		a.Apply(m)
		b.Apply(m)

		ra, rb := a.Step(), b.Step()
		if !reflect.DeepEqual(ra, rb) {
			t.Fatalf("tick %d: results diverged: %+v vs %+v", i, ra, rb)
		}
		if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
			t.Fatalf("tick %d: boards diverged", i)
		}
	}
}

func TestApplyIgnoredAfterGameOver(t *testing.T) {
	g := newTestGame(t, 1)
	e := g.Engine()
	for !e.IsGameOver() {
		e.OnCrash()
	}

	col := e.PlayerCol()
	g.Apply(core.ActionLeft)
	g.Apply(core.ActionFast)
	if e.PlayerCol() != col || e.Speed() != core.SpeedNormal {
		t.Error("actions should be ignored once the run is over")
	}

	res := g.Step()
	if !res.State.GameOver || len(res.Events) != 0 {
		t.Errorf("Step() after game over = %+v", res)
	}
}

func TestApplySpeedActions(t *testing.T) {
	g := newTestGame(t, 1)

	g.Apply(core.ActionFast)
	if g.State().Speed != core.SpeedFast {
		t.Fatalf("expected fast, got %v", g.State().Speed)
	}
	g.Apply(core.ActionSlow)
	if g.State().Speed != core.SpeedSlow {
		t.Fatalf("slow should replace fast, got %v", g.State().Speed)
	}
	g.Apply(core.ActionNormal)
	if g.State().Speed != core.SpeedNormal {
		t.Fatalf("expected normal, got %v", g.State().Speed)
	}
}

func TestResetKeepsSpeedMode(t *testing.T) {
	g := newTestGame(t, 1)
	g.Apply(core.ActionSlow)
	g.Step()

	g.Reset(core.RuntimeConfig{Seed: 5})

	st := g.State()
	if st.Speed != core.SpeedSlow {
		t.Errorf("speed after reset = %v, expected slow", st.Speed)
	}
	if st.Score != 0 || st.Lives != 3 || st.GameOver {
		t.Errorf("state after reset = %+v", st)
	}
}

func TestTickEvents(t *testing.T) {
	e := newTestEngine(t, &seqRand{vals: []int{0}})
	e.maxObstacles = 1
	e.obstacles = []Obstacle{{Row: e.PlayerRow() - 1, Col: 2}}
	e.coin = &Coin{Row: e.PlayerRow() - 1, Col: 2}
	e.lives = 1

	res := e.Tick()
	if !res.CoinCollected || !res.Crashed || !res.RunOver {
		t.Fatalf("Tick() = %+v", res)
	}
	// distance +1 and coin +10 both land before the run ends
	if res.FinalScore != 11 {
		t.Errorf("FinalScore = %d, expected 11", res.FinalScore)
	}

	events := res.Events()
	kinds := make([]core.EventKind, len(events))
	for i, ev := range events {
		kinds[i] = ev.Kind
	}
	expected := []core.EventKind{core.EventCoinCollected, core.EventCrash, core.EventRunOver}
	if !reflect.DeepEqual(kinds, expected) {
		t.Errorf("event order = %v, expected %v", kinds, expected)
	}
}

func TestRenderDrawsBoard(t *testing.T) {
	g := newTestGame(t, 1)
	g.Engine().obstacles = []Obstacle{{Row: 3, Col: 0}}
	g.Engine().coin = &Coin{Row: 5, Col: 4}

	screen := core.NewScreen(60, 20)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{carSprite, bombSprite, coinSprite, "♥♥♥", "normal"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered board missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "GAME OVER") {
		t.Error("overlay drawn during a live run")
	}
}

func TestRenderGameOverAndSmallWindow(t *testing.T) {
	g := newTestGame(t, 1)
	for !g.Engine().IsGameOver() {
		g.Engine().OnCrash()
	}

	screen := core.NewScreen(60, 20)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("expected GAME OVER overlay")
	}

	small := core.NewScreen(20, 5)
	g.Render(small)
	if !strings.Contains(small.String(), "Window too small") {
		t.Errorf("expected size warning, got:\n%s", small.String())
	}
}
