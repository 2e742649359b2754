package orbit

import (
	"math"
	"strings"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(
		NewCentral(Info{Key: "central", Name: "Central"}, Style{BaseSize: 54}),
		NewSatellite(Info{Key: "a", Name: "A"}, Style{BaseSize: 23.4}, 144, 1),
		NewSatellite(Info{Key: "b", Name: "B"}, Style{BaseSize: 23.4}, 198, 0.7),
	)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

func TestPositionOfAtZeroRotation(t *testing.T) {
	for _, zoom := range []float64{0.3, 0.7, 1.0, 2.5} {
		for _, s := range Default().Satellites() {
			x, y := PositionOf(s, 0, 1, zoom)
			if !approx(x, s.Distance*zoom) || !approx(y, 0) {
				t.Errorf("%s zoom %.1f: got (%f, %f), want (%f, 0)", s.Info().Key, zoom, x, y, s.Distance*zoom)
			}
		}
	}
}

func TestPositionOfQuarterTurn(t *testing.T) {
	r := testRegistry(t)
	sats := r.Satellites()

	// A has speed factor 1: rotation 90 is a quarter turn.
	x, y := PositionOf(sats[0], 90, 1, 1)
	if math.Abs(x) > 1e-6 || math.Abs(y-144) > 1e-6 {
		t.Errorf("A at 90°: got (%f, %f), want (0, 144)", x, y)
	}

	// B has speed factor 0.7: reaching 90° takes rotation 90/0.7.
	x, y = PositionOf(sats[1], 90/0.7, 1, 1)
	if math.Abs(x) > 1e-6 || math.Abs(y-198) > 1e-6 {
		t.Errorf("B at 90°: got (%f, %f), want (0, 198)", x, y)
	}
}

func TestPositionOfSpeedMultiplier(t *testing.T) {
	s := NewSatellite(Info{Key: "s"}, Style{BaseSize: 10}, 100, 0.5)

	// speed 2 at rotation 45 equals speed 1 at rotation 90.
	x1, y1 := PositionOf(s, 45, 2, 1)
	x2, y2 := PositionOf(s, 90, 1, 1)
	if !approx(x1, x2) || !approx(y1, y2) {
		t.Errorf("got (%f, %f) vs (%f, %f)", x1, y1, x2, y2)
	}

	// Distance is always the scaled orbit radius.
	x, y := PositionOf(s, 123.4, 3, 1.7)
	if d := math.Hypot(x, y); !approx(d, OrbitRadius(s, 1.7)) {
		t.Errorf("distance = %f, want %f", d, OrbitRadius(s, 1.7))
	}
}

func TestScaledSizeMonotonic(t *testing.T) {
	zooms := []float64{0.3, 0.4, 0.7, 1.0, 1.3, 2.0, 3.0}
	for _, b := range Default().Bodies() {
		for i := 1; i < len(zooms); i++ {
			lo := ScaledSize(b, zooms[i-1])
			hi := ScaledSize(b, zooms[i])
			if hi <= lo {
				t.Errorf("%s: ScaledSize(%.1f)=%f not > ScaledSize(%.1f)=%f",
					b.Info().Key, zooms[i], hi, zooms[i-1], lo)
			}
		}
	}
	if got := ScaledSize(Default().Central(), 1); got != 54 {
		t.Errorf("central size at zoom 1 = %f, want 54", got)
	}
}

func TestNewRegistryValidation(t *testing.T) {
	c := func(key string) Body { return NewCentral(Info{Key: key}, Style{BaseSize: 1}) }
	s := func(key string) Body { return NewSatellite(Info{Key: key}, Style{BaseSize: 1}, 10, 1) }

	tests := []struct {
		name    string
		bodies  []Body
		wantErr string
	}{
		{"valid", []Body{c("c"), s("a"), s("b")}, ""},
		{"central only", []Body{c("c")}, ""},
		{"no central", []Body{s("a"), s("b")}, "no central body"},
		{"two centrals", []Body{c("c"), c("d")}, "second central body"},
		{"duplicate key", []Body{c("c"), s("a"), s("a")}, "duplicate body key"},
		{"empty key", []Body{c("c"), s("")}, "empty key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.bodies...)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	if r.Len() != 5 {
		t.Fatalf("Len = %d, want 5", r.Len())
	}
	if r.Central().Info().Key != "meneame" {
		t.Errorf("central = %q, want meneame", r.Central().Info().Key)
	}

	wantOrder := []string{"renegados", "mediatize", "killbait", "tardigram"}
	for i, s := range r.Satellites() {
		if s.Info().Key != wantOrder[i] {
			t.Errorf("satellite %d = %q, want %q", i, s.Info().Key, wantOrder[i])
		}
		if s.Kind() != KindSatellite {
			t.Errorf("%s kind = %v", s.Info().Key, s.Kind())
		}
	}

	b, ok := r.Lookup("mediatize")
	if !ok {
		t.Fatal("Lookup(mediatize) failed")
	}
	sat, ok := b.(*Satellite)
	if !ok || sat.Distance != 198 || sat.SpeedFactor != 0.7 {
		t.Errorf("mediatize = %+v", b)
	}

	if _, ok := r.Lookup("nope"); ok {
		t.Error("Lookup(nope) should fail")
	}
}

func TestDefaultLinks(t *testing.T) {
	links := DefaultLinks("")
	if got := links.For("meneame"); got != "/rrss/rss/Meneame" {
		t.Errorf("meneame = %q", got)
	}

	links = DefaultLinks("https://example.org/")
	if got := links.For("tardigram"); got != "https://example.org/rrss/rss/Tardigram" {
		t.Errorf("tardigram = %q", got)
	}

	for _, b := range Default().Bodies() {
		if links.For(b.Info().Key) == "" {
			t.Errorf("no link for %s", b.Info().Key)
		}
	}
	if links.For("unknown") != "" {
		t.Error("unknown key should have no link")
	}
}

func TestNewLinksCopies(t *testing.T) {
	src := map[string]string{"a": "/a"}
	links := NewLinks(src)
	src["a"] = "/changed"
	if links.For("a") != "/a" {
		t.Errorf("link table mutated through source map: %q", links.For("a"))
	}
}
