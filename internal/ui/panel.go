package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-expanse/internal/loop"
	"github.com/litescript/ls-expanse/internal/version"
)

// PanelWidth is the width in columns of the info and project panels.
const PanelWidth = 38

// projectText describes the map in the project panel.
var projectText = []string{
	"Expanse es un mapa orbital de sitios de noticias.",
	"Menéame ocupa el centro; las lunas son sitios hermanos.",
	"Selecciona un cuerpo para ver su ficha y el enlace a sus noticias.",
}

// Panel is the terminal info panel. It implements loop.InfoPanel; each Show
// replaces the contents, so after an overlapping click the last body wins.
type Panel struct {
	info    loop.Info
	open    bool
	project bool
}

// Show opens the panel with a body's info.
func (p *Panel) Show(info loop.Info) {
	p.info = info
	p.open = true
}

// Close hides the body panel.
func (p *Panel) Close() { p.open = false }

// ShowProject opens the project panel.
func (p *Panel) ShowProject() { p.project = true }

// CloseProject hides the project panel.
func (p *Panel) CloseProject() { p.project = false }

// Open reports whether any panel is visible.
func (p *Panel) Open() bool { return p.open || p.project }

// Info returns the body currently shown.
func (p *Panel) Info() (loop.Info, bool) { return p.info, p.open }

// View renders the visible panels stacked vertically.
func (p *Panel) View(height int) string {
	var parts []string
	if p.open {
		parts = append(parts, p.renderInfo())
	}
	if p.project {
		parts = append(parts, p.renderProject())
	}
	if len(parts) == 0 {
		return ""
	}
	out := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return lipgloss.NewStyle().Height(height).MaxHeight(height).Render(out)
}

func (p *Panel) renderInfo() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7B2CBF")).
		Padding(0, 1).
		Width(PanelWidth - 2)

	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#f97316")).Bold(true)
	typeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	linkStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var b strings.Builder
	b.WriteString(nameStyle.Render(p.info.Name))
	b.WriteString("\n")
	b.WriteString(typeStyle.Render(p.info.Category))
	b.WriteString("\n\n")
	b.WriteString(textStyle.Render(p.info.Description))
	b.WriteString("\n\n")
	b.WriteString(linkStyle.Render(p.info.LinkText))
	if p.info.URL != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(p.info.URL))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("esc: cerrar"))

	return box.Render(b.String())
}

func (p *Panel) renderProject() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("60")).
		Padding(0, 1).
		Width(PanelWidth - 2)

	header := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("249"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var b strings.Builder
	b.WriteString(header.Render("Expanse"))
	b.WriteString("\n")
	for _, line := range projectText {
		b.WriteString(textStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("v%s · esc: cerrar", version.Version)))
	return box.Render(b.String())
}

// HUD shows the speed, pause and zoom controls. It implements loop.Controls.
type HUD struct {
	speed  float64
	paused bool
}

// SetActiveSpeed marks the active speed control.
func (h *HUD) SetActiveSpeed(m float64) { h.speed = m }

// SetPaused swaps the pause glyph.
func (h *HUD) SetPaused(paused bool) { h.paused = paused }

// View renders the control bar.
func (h *HUD) View(zoom, rotation float64) string {
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	var parts []string
	for _, m := range []float64{1, 2, 3} {
		label := fmt.Sprintf("[%gx]", m)
		if m == h.speed {
			parts = append(parts, activeStyle.Render(label))
		} else {
			parts = append(parts, dimStyle.Render(label))
		}
	}

	pause := dimStyle.Render("[" + loop.PauseGlyph(h.paused) + "]")
	if h.paused {
		pause = activeStyle.Render("[" + loop.PauseGlyph(h.paused) + "]")
	}
	parts = append(parts, pause)

	parts = append(parts,
		dimStyle.Render("Zoom:")+valueStyle.Render(fmt.Sprintf("%.1fx", zoom)),
		dimStyle.Render("Rot:")+valueStyle.Render(fmt.Sprintf("%.0f°", rotation)),
	)
	return "  " + strings.Join(parts, " ")
}
