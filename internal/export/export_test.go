package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-expanse/internal/loop"
	"github.com/litescript/ls-expanse/internal/orbit"
	"github.com/litescript/ls-expanse/internal/scene"
	"github.com/litescript/ls-expanse/internal/state"
)

func newLoop(t *testing.T) *loop.Loop {
	t.Helper()
	l, err := loop.New(loop.Options{
		Registry:  orbit.Default(),
		Links:     orbit.DefaultLinks("https://www.meneame.net"),
		Session:   state.NewSession(state.DefaultConfig(), 1024),
		Surface:   scene.NewRecorder(1024, 768),
		Scheduler: &loop.ManualScheduler{},
	})
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestCapture(t *testing.T) {
	l := newLoop(t)
	l.SetSpeed(2)
	for i := 0; i < 3; i++ {
		l.Tick()
	}

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	snap := Capture(l, at)

	if snap.Timestamp != at {
		t.Errorf("Timestamp = %v, want %v", snap.Timestamp, at)
	}
	if snap.Frames != 3 {
		t.Errorf("Frames = %d, want 3", snap.Frames)
	}
	if snap.Speed != 2 || snap.Paused {
		t.Errorf("speed/paused = %v/%v", snap.Speed, snap.Paused)
	}
	if len(snap.Bodies) != 5 {
		t.Fatalf("Bodies = %d, want 5", len(snap.Bodies))
	}
	if snap.Bodies[0].Kind != "central" {
		t.Errorf("first body kind = %q, want central", snap.Bodies[0].Kind)
	}
	if len(snap.Events) != 1 || snap.Events[0].Type != state.EventSpeed {
		t.Errorf("Events = %+v, want one SPEED", snap.Events)
	}
}

func TestSnapshotWriteJSON(t *testing.T) {
	l := newLoop(t)
	l.Tick()

	var buf bytes.Buffer
	if err := Capture(l, time.Now()).WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"timestamp", "version", "frames", "rotation", "speed", "zoom", "paused", "bodies"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("JSON missing %q", key)
		}
	}
	if _, ok := decoded["events"]; ok {
		t.Error("empty events should be omitted")
	}

	bodies := decoded["bodies"].([]interface{})
	first := bodies[1].(map[string]interface{})
	if first["url"] != "https://www.meneame.net/rrss/rss/Renegados" {
		t.Errorf("url = %v", first["url"])
	}
}

func TestWriteSummary(t *testing.T) {
	l := newLoop(t)
	l.TogglePause()
	l.Tick()

	var buf bytes.Buffer
	WriteSummary(&buf, Capture(l, time.Now()))
	out := buf.String()

	for _, want := range []string{"paused", "Menéame", "Tardigram", "satellite", "Feeds:", "Total: 5 bodies"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}

	buf.Reset()
	WriteSummary(&buf, &Snapshot{})
	if !strings.Contains(buf.String(), "No bodies") {
		t.Error("empty snapshot should say No bodies")
	}
}

type fakeFrame struct{}

func (fakeFrame) Plain() string  { return "plain\n" }
func (fakeFrame) Render() string { return "render" }

func TestWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, fakeFrame{}, false); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "plain\n" {
		t.Errorf("plain frame = %q", buf.String())
	}

	buf.Reset()
	if err := WriteFrame(&buf, fakeFrame{}, true); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "render\n" {
		t.Errorf("colour frame = %q", buf.String())
	}
}

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"meneame", 12, "meneame"},
		{"a-very-long-key", 8, "a-very.."},
		{"Menéame", 3, "Men"},
	}
	for _, tt := range tests {
		if got := truncateStr(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
