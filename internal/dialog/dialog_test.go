package dialog

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/litescript/ls-expanse/internal/loop"
)

// fakeBoxes blocks every box until its context is cancelled.
type fakeBoxes struct {
	mu     sync.Mutex
	titles []string
	closed []string
}

func (f *fakeBoxes) show(ctx context.Context, title, text string) error {
	f.mu.Lock()
	f.titles = append(f.titles, title)
	f.mu.Unlock()

	<-ctx.Done()

	f.mu.Lock()
	f.closed = append(f.closed, title)
	f.mu.Unlock()
	return ctx.Err()
}

func (f *fakeBoxes) counts() (shown, closed int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.titles), len(f.closed)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestPanelShowReplacesBox(t *testing.T) {
	f := &fakeBoxes{}
	p := NewPanel(f.show, nil)

	p.Show(loop.Info{Key: "meneame", Name: "Menéame"})
	p.Show(loop.Info{Key: "renegados", Name: "Renegados"})

	waitFor(t, func() bool { s, c := f.counts(); return s == 2 && c == 1 })
	if p.Last().Key != "renegados" {
		t.Errorf("last = %q, want renegados", p.Last().Key)
	}
	if info, _ := p.Open(); !info {
		t.Error("second box should still be open")
	}

	p.Close()
	p.Wait()
	if info, _ := p.Open(); info {
		t.Error("box still open after Close")
	}
}

func TestPanelProjectSingleInstance(t *testing.T) {
	f := &fakeBoxes{}
	p := NewPanel(f.show, nil)

	p.ShowProject()
	p.ShowProject()
	waitFor(t, func() bool { s, _ := f.counts(); return s >= 1 })
	if s, _ := f.counts(); s != 1 {
		t.Errorf("project boxes shown = %d, want 1", s)
	}

	p.CloseProject()
	p.Wait()

	p.ShowProject()
	waitFor(t, func() bool { s, _ := f.counts(); return s == 2 })
	if _, project := p.Open(); !project {
		t.Error("project box should reopen after close")
	}
	p.CloseProject()
	p.Wait()
}

func TestPanelSlotClearedWhenDismissed(t *testing.T) {
	release := make(chan struct{})
	p := NewPanel(func(ctx context.Context, title, text string) error {
		<-release
		return nil
	}, nil)

	p.Show(loop.Info{Name: "Killbait"})
	close(release)
	p.Wait()

	if info, _ := p.Open(); info {
		t.Error("dismissed box still tracked")
	}
}

func TestFormatInfo(t *testing.T) {
	text := FormatInfo(loop.Info{
		Category:    "Luna",
		Description: "Noticias rebeldes.",
		LinkText:    "Noticias Renegados",
		URL:         "https://www.meneame.net/rrss/rss/Renegados",
	})
	for _, want := range []string{"Luna", "Noticias rebeldes.", "Noticias Renegados: https://www.meneame.net/rrss/rss/Renegados"} {
		if !strings.Contains(text, want) {
			t.Errorf("FormatInfo missing %q in %q", want, text)
		}
	}

	if strings.Contains(FormatInfo(loop.Info{Category: "Planeta"}), ":") {
		t.Error("no link line expected without a URL")
	}
}
