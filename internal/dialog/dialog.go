// Package dialog shows body and project info in native message boxes.
package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ncruces/zenity"

	"github.com/litescript/ls-expanse/internal/logging"
	"github.com/litescript/ls-expanse/internal/loop"
)

// ShowFunc displays a message box and blocks until it is dismissed or ctx
// is cancelled.
type ShowFunc func(ctx context.Context, title, text string) error

// ZenityShow shows an info box with zenity.
func ZenityShow(ctx context.Context, title, text string) error {
	return zenity.Info(text,
		zenity.Title(title),
		zenity.Width(420),
		zenity.OKLabel("Cerrar"),
		zenity.Context(ctx),
	)
}

// ProjectTitle and ProjectText fill the project info box.
const (
	ProjectTitle = "Expanse"
	ProjectText  = "Expanse es un mapa orbital de sitios de noticias.\n\n" +
		"Menéame ocupa el centro y las lunas son sitios hermanos. " +
		"Pulsa sobre un cuerpo para ver su ficha y el enlace a sus noticias."
)

// Panel implements loop.InfoPanel with one message box for bodies and one
// for the project. Showing a body replaces the box already on screen.
type Panel struct {
	show ShowFunc
	log  *logging.Logger

	mu      sync.Mutex
	wg      sync.WaitGroup
	info    *box
	project *box
	last    loop.Info
}

// box is one message box on screen.
type box struct {
	cancel context.CancelFunc
}

// NewPanel creates a panel. A nil show uses ZenityShow.
func NewPanel(show ShowFunc, log *logging.Logger) *Panel {
	if show == nil {
		show = ZenityShow
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Panel{show: show, log: log}
}

// Show opens a box for a body, closing any previous body box.
func (p *Panel) Show(info loop.Info) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.info != nil {
		p.info.cancel()
	}
	p.last = info
	p.info = p.open(info.Name, FormatInfo(info), &p.info)
}

// Close dismisses the body box.
func (p *Panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.info != nil {
		p.info.cancel()
		p.info = nil
	}
}

// ShowProject opens the project box unless it is already open.
func (p *Panel) ShowProject() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.project != nil {
		return
	}
	p.project = p.open(ProjectTitle, ProjectText, &p.project)
}

// CloseProject dismisses the project box.
func (p *Panel) CloseProject() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.project != nil {
		p.project.cancel()
		p.project = nil
	}
}

// Last returns the most recently shown body.
func (p *Panel) Last() loop.Info {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Wait blocks until every box has been dismissed.
func (p *Panel) Wait() {
	p.wg.Wait()
}

// Open reports whether a body box and the project box are on screen.
func (p *Panel) Open() (info, project bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.info != nil, p.project != nil
}

// open starts a box on its own goroutine. When the box goes away, slot is
// cleared unless a newer box has taken it. The caller holds p.mu.
func (p *Panel) open(title, text string, slot **box) *box {
	ctx, cancel := context.WithCancel(context.Background())
	b := &box{cancel: cancel}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer cancel()
		err := p.show(ctx, title, text)
		switch {
		case err == nil, errors.Is(err, zenity.ErrCanceled), errors.Is(err, context.Canceled):
		default:
			p.log.Warn("dialog %q: %v", title, err)
		}

		p.mu.Lock()
		if *slot == b {
			*slot = nil
		}
		p.mu.Unlock()
	}()
	return b
}

// FormatInfo renders the text of a body box.
func FormatInfo(info loop.Info) string {
	var b strings.Builder
	b.WriteString(info.Category)
	b.WriteString("\n\n")
	b.WriteString(info.Description)
	if info.URL != "" {
		fmt.Fprintf(&b, "\n\n%s: %s", info.LinkText, info.URL)
	}
	return b.String()
}
