package loop

// Info is what the info panel shows for a clicked body.
type Info struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	URL         string `json:"url"`
	LinkText    string `json:"link_text"`
}

// InfoPanel owns the visibility and layout of the body and project panels.
type InfoPanel interface {
	Show(info Info)
	Close()
	ShowProject()
	CloseProject()
}

// Controls reflects session state back onto the UI controls.
type Controls interface {
	SetActiveSpeed(multiplier float64)
	SetPaused(paused bool)
}

// PauseGlyph returns the glyph of the pause/play control.
func PauseGlyph(paused bool) string {
	if paused {
		return "▶"
	}
	return "⏸"
}

type nopPanel struct{}

func (nopPanel) Show(Info)     {}
func (nopPanel) Close()        {}
func (nopPanel) ShowProject()  {}
func (nopPanel) CloseProject() {}

type nopControls struct{}

func (nopControls) SetActiveSpeed(float64) {}
func (nopControls) SetPaused(bool)         {}
