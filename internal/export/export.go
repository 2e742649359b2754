// Package export writes headless views of the orbital map: a JSON
// snapshot, a text summary and a single rendered frame.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-expanse/internal/loop"
	"github.com/litescript/ls-expanse/internal/state"
	"github.com/litescript/ls-expanse/internal/version"
)

// Snapshot is the JSON-serializable state of a render loop.
type Snapshot struct {
	Timestamp time.Time        `json:"timestamp"`
	Version   string           `json:"version"`
	Frames    uint64           `json:"frames"`
	Rotation  float64          `json:"rotation"`
	Speed     float64          `json:"speed"`
	Zoom      float64          `json:"zoom"`
	Paused    bool             `json:"paused"`
	Bodies    []loop.BodyState `json:"bodies"`
	Events    []state.Event    `json:"events,omitempty"`
}

// Capture builds a snapshot of l at the given time.
func Capture(l *loop.Loop, at time.Time) *Snapshot {
	s := l.Session().Snapshot()
	return &Snapshot{
		Timestamp: at,
		Version:   version.Version,
		Frames:    l.Frames(),
		Rotation:  s.Rotation,
		Speed:     s.Speed,
		Zoom:      s.Zoom,
		Paused:    s.Paused,
		Bodies:    l.Bodies(),
		Events:    l.Session().Events(),
	}
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *Snapshot) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteSummary writes a text table of the bodies to the given writer.
func WriteSummary(w io.Writer, s *Snapshot) {
	mode := "running"
	if s.Paused {
		mode = "paused"
	}
	fmt.Fprintf(w, "Expanse @ %s\n", s.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(w, "rotation %.1f° · speed %gx · zoom %.1fx · %s · %d frames\n",
		s.Rotation, s.Speed, s.Zoom, mode, s.Frames)
	fmt.Fprintln(w, strings.Repeat("─", 78))

	if len(s.Bodies) == 0 {
		fmt.Fprintln(w, "No bodies")
		return
	}

	fmt.Fprintf(w, "%-12s %-12s %-9s %-12s %8s %8s %7s\n",
		"Key", "Name", "Kind", "Category", "X", "Y", "Radius")
	fmt.Fprintln(w, strings.Repeat("─", 78))

	for _, b := range s.Bodies {
		fmt.Fprintf(w, "%-12s %-12s %-9s %-12s %8.1f %8.1f %7.1f\n",
			truncateStr(b.Key, 12),
			truncateStr(b.Name, 12),
			b.Kind,
			truncateStr(b.Category, 12),
			b.X,
			b.Y,
			b.Radius,
		)
	}

	var links []string
	for _, b := range s.Bodies {
		if b.URL != "" {
			links = append(links, fmt.Sprintf("  %-12s %s", b.Key, b.URL))
		}
	}
	if len(links) > 0 {
		fmt.Fprintln(w, "\nFeeds:")
		fmt.Fprintln(w, strings.Join(links, "\n"))
	}

	fmt.Fprintf(w, "\nTotal: %d bodies\n", len(s.Bodies))
}

// Frame is a rendered map, such as the terminal canvas.
type Frame interface {
	Plain() string
	Render() string
}

// WriteFrame writes one frame, coloured or as bare runes.
func WriteFrame(w io.Writer, f Frame, color bool) error {
	out := f.Plain()
	if color {
		out = f.Render() + "\n"
	}
	_, err := io.WriteString(w, out)
	return err
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}
