package orbit

import (
	"errors"
	"fmt"
	"strings"
)

// Registry is the immutable set of bodies: one central body and its
// satellites in draw order.
type Registry struct {
	central    *Central
	satellites []*Satellite
	byKey      map[string]Body
}

// NewRegistry validates and builds a registry. Exactly one central body is
// required and keys must be unique.
func NewRegistry(bodies ...Body) (*Registry, error) {
	r := &Registry{byKey: make(map[string]Body, len(bodies))}

	for _, b := range bodies {
		key := b.Info().Key
		if key == "" {
			return nil, errors.New("body with empty key")
		}
		if _, dup := r.byKey[key]; dup {
			return nil, fmt.Errorf("duplicate body key %q", key)
		}
		r.byKey[key] = b

		switch body := b.(type) {
		case *Central:
			if r.central != nil {
				return nil, fmt.Errorf("second central body %q (already have %q)", key, r.central.info.Key)
			}
			r.central = body
		case *Satellite:
			r.satellites = append(r.satellites, body)
		default:
			return nil, fmt.Errorf("body %q: unsupported type %T", key, b)
		}
	}

	if r.central == nil {
		return nil, errors.New("registry has no central body")
	}
	return r, nil
}

// Central returns the central body.
func (r *Registry) Central() *Central {
	return r.central
}

// Satellites returns the satellites in registry order.
// The slice is shared; callers must not modify it.
func (r *Registry) Satellites() []*Satellite {
	return r.satellites
}

// Bodies returns every body, central first.
func (r *Registry) Bodies() []Body {
	out := make([]Body, 0, len(r.satellites)+1)
	out = append(out, r.central)
	for _, s := range r.satellites {
		out = append(out, s)
	}
	return out
}

// Lookup finds a body by key.
func (r *Registry) Lookup(key string) (Body, bool) {
	b, ok := r.byKey[key]
	return b, ok
}

// Len returns the number of bodies.
func (r *Registry) Len() int {
	return len(r.byKey)
}

// Links maps body keys to external resource URLs.
type Links struct {
	urls map[string]string
}

// NewLinks copies urls into an immutable link table.
func NewLinks(urls map[string]string) Links {
	cp := make(map[string]string, len(urls))
	for k, v := range urls {
		cp[k] = v
	}
	return Links{urls: cp}
}

// For returns the URL for a body key, or "" if none is known.
func (l Links) For(key string) string {
	return l.urls[key]
}

// Len returns the number of links.
func (l Links) Len() int {
	return len(l.urls)
}

// feedNames maps registry keys to their feed path segment.
var feedNames = map[string]string{
	"meneame":   "Meneame",
	"renegados": "Renegados",
	"mediatize": "Mediatize",
	"tardigram": "Tardigram",
	"killbait":  "Killbait",
}

// DefaultLinks builds the feed links for the reference registry.
// base may be empty, giving site-relative paths.
func DefaultLinks(base string) Links {
	base = strings.TrimRight(base, "/")
	urls := make(map[string]string, len(feedNames))
	for key, name := range feedNames {
		urls[key] = base + "/rrss/rss/" + name
	}
	return Links{urls: urls}
}

// Default returns the reference registry of the Expanse map.
func Default() *Registry {
	r, err := NewRegistry(
		NewCentral(Info{
			Key:         "meneame",
			Name:        "Menéame",
			Category:    "Planeta Central",
			Description: "El planeta principal del sistema, un gigante naranja brillante con anillos de información que orbitan constantemente.",
		}, Style{BaseSize: 54, Color: "#f97316"}),
		NewSatellite(Info{
			Key:         "renegados",
			Name:        "Renegados",
			Category:    "Luna",
			Description: "Una luna rebelde de tono amarillo dorado, conocida por su atmósfera turbulenta y su órbita irregular.",
		}, Style{BaseSize: 23.4, Color: "#eab308"}, 144, 1),
		NewSatellite(Info{
			Key:         "mediatize",
			Name:        "Mediatize",
			Category:    "Luna",
			Description: "Luna púrpura brillante, famosa por sus cristales reflectantes que difunden luz por todo el sistema.",
		}, Style{BaseSize: 23.4, Color: "#a855f7"}, 198, 0.7),
		NewSatellite(Info{
			Key:         "killbait",
			Name:        "Killbait",
			Category:    "Luna",
			Description: "Una luna tecnológica de color azul cian que utiliza inteligencia artificial para curar y sintetizar información de todo el sistema.",
		}, Style{BaseSize: 23.4, Color: "#06b6d4"}, 252, 0.5),
		NewSatellite(Info{
			Key:         "tardigram",
			Name:        "Tardigram",
			Category:    "Luna",
			Description: "Tardigram, afirman no pertenecer a ningún sistema, pero aún así, aquí están, girando a toda velocidad.",
		}, Style{BaseSize: 17.8, Color: "#10b981"}, 306, 0.4),
	)
	if err != nil {
		// The reference table is a compile-time constant.
		panic(err)
	}
	return r
}
