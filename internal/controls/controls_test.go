package controls

import (
	"testing"

	"github.com/litescript/ls-expanse/internal/loop"
	"github.com/litescript/ls-expanse/internal/orbit"
	"github.com/litescript/ls-expanse/internal/scene"
	"github.com/litescript/ls-expanse/internal/state"
)

func TestToolbarLayout(t *testing.T) {
	tb := NewToolbar(DefaultLayout(), 600)
	buttons := tb.Buttons()

	if len(buttons) != 7 {
		t.Fatalf("buttons = %d, want 7", len(buttons))
	}
	first := buttons[0].Rect
	if first.X != 20 || first.Y != 600-20-40 {
		t.Errorf("first button at (%v, %v)", first.X, first.Y)
	}
	if buttons[1].Rect.X != 20+48 {
		t.Errorf("second button X = %v, want 68", buttons[1].Rect.X)
	}

	tb.Resize(300)
	if got := tb.Buttons()[0].Rect.Y; got != 300-60 {
		t.Errorf("after resize Y = %v, want 240", got)
	}
}

func TestToolbarHitTest(t *testing.T) {
	tb := NewToolbar(DefaultLayout(), 600)

	tests := []struct {
		name string
		x, y float64
		want Intent
	}{
		{"speed1", 25, 545, IntentSpeed1},
		{"speed3", 20 + 2*48 + 10, 560, IntentSpeed3},
		{"pause", 20 + 3*48 + 20, 560, IntentTogglePause},
		{"zoom out", 20 + 5*48 + 1, 541, IntentZoomOut},
		{"gap", 20 + 40 + 4, 560, IntentNone},
		{"above", 25, 100, IntentNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tb.HitTest(tt.x, tt.y); got != tt.want {
				t.Errorf("HitTest(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestToolbarExactlyOneActiveSpeed(t *testing.T) {
	tb := NewToolbar(DefaultLayout(), 600)

	for _, m := range []float64{1, 2, 3, 2} {
		tb.SetActiveSpeed(m)
		active := 0
		for _, b := range tb.Buttons() {
			if SpeedOf(b.Intent) != 0 && b.Active {
				active++
				if SpeedOf(b.Intent) != m {
					t.Errorf("speed %v: active button is %v", m, b.Intent)
				}
			}
		}
		if active != 1 {
			t.Errorf("speed %v: %d active speed buttons", m, active)
		}
	}
}

func TestToolbarPauseGlyph(t *testing.T) {
	tb := NewToolbar(DefaultLayout(), 600)
	label := func() string {
		for _, b := range tb.Buttons() {
			if b.Intent == IntentTogglePause {
				return b.Label
			}
		}
		return ""
	}

	if label() != "⏸" {
		t.Errorf("running glyph = %q", label())
	}
	tb.SetPaused(true)
	if label() != "▶" || !tb.Paused() {
		t.Errorf("paused glyph = %q", label())
	}
}

func TestDispatchDrivesLoop(t *testing.T) {
	tb := NewToolbar(DefaultLayout(), 768)
	l, err := loop.New(loop.Options{
		Registry:  orbit.Default(),
		Links:     orbit.DefaultLinks(""),
		Session:   state.NewSession(state.DefaultConfig(), 1024),
		Surface:   scene.NewRecorder(1024, 768),
		Scheduler: &loop.ManualScheduler{},
		Controls:  tb,
	})
	if err != nil {
		t.Fatal(err)
	}

	Dispatch(l, tb.HitTest(20+2*48+5, 768-40))
	if l.Session().Speed() != 3 || tb.ActiveSpeed() != 3 {
		t.Errorf("speed = %v / %v, want 3", l.Session().Speed(), tb.ActiveSpeed())
	}

	Dispatch(l, IntentTogglePause)
	if !l.Session().Paused() || !tb.Paused() {
		t.Error("pause intent not applied")
	}

	Dispatch(l, IntentZoomIn)
	if l.Session().Zoom() != 1.1 {
		t.Errorf("zoom = %v, want 1.1", l.Session().Zoom())
	}

	if Dispatch(l, IntentNone) {
		t.Error("IntentNone should not dispatch")
	}
}
