package project

import (
	"github.com/jinzhu/copier"
	"github.com/samber/lo"
)

// Vec3 is a world-space position. X is east, Y is up, Z is north.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Interval is one logged downhole interval. The viewer only counts them.
type Interval struct {
	From      float64 `json:"from"`
	To        float64 `json:"to"`
	Lithology string  `json:"lithology,omitempty"`
}

// Drillhole is a single hole as stored in the project document.
// Azimuth and Inclination are optional; geometry code substitutes defaults when they are nil or not finite.
type Drillhole struct {
	ID          string     `json:"id"`
	Collar      Vec3       `json:"collar"`
	Depth       float64    `json:"depth"`
	Azimuth     *float64   `json:"azimuth,omitempty"`
	Inclination *float64   `json:"inclination,omitempty"`
	Intervals   []Interval `json:"intervals,omitempty"`
}

// Project is the document the viewer reads. Drillhole order is preserved.
type Project struct {
	Name       string      `json:"name"`
	Drillholes []Drillhole `json:"drillholes"`
}

// Snapshot returns a deep copy of the drillhole list so callers can hold it across frames
// without sharing pointers (Azimuth, Inclination, Intervals) with the document.
func (p *Project) Snapshot() []Drillhole {
	if p == nil || len(p.Drillholes) == 0 {
		return nil
	}
	var out []Drillhole
	if err := copier.CopyWithOption(&out, &p.Drillholes, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched types; fall back to a field copy.
		out = make([]Drillhole, 0, len(p.Drillholes))
		for _, h := range p.Drillholes {
			out = append(out, h.clone())
		}
	}
	// copier allocates empty slices for nil ones.
	for i, h := range p.Drillholes {
		if h.Intervals == nil {
			out[i].Intervals = nil
		}
	}
	return out
}

// Find returns the first drillhole with the given id.
func (p *Project) Find(id string) (Drillhole, bool) {
	if p == nil {
		return Drillhole{}, false
	}
	return lo.Find(p.Drillholes, func(h Drillhole) bool { return h.ID == id })
}

// DuplicateIDs returns ids that appear more than once, in first-seen order.
func (p *Project) DuplicateIDs() []string {
	if p == nil {
		return nil
	}
	dups := lo.FindDuplicatesBy(p.Drillholes, func(h Drillhole) string { return h.ID })
	return lo.Map(dups, func(h Drillhole, _ int) string { return h.ID })
}

// Index maps ids to drillholes. When ids repeat the first occurrence wins.
func Index(holes []Drillhole) map[string]Drillhole {
	out := make(map[string]Drillhole, len(holes))
	for _, h := range holes {
		if _, ok := out[h.ID]; !ok {
			out[h.ID] = h
		}
	}
	return out
}

func (h Drillhole) clone() Drillhole {
	c := h
	if h.Azimuth != nil {
		v := *h.Azimuth
		c.Azimuth = &v
	}
	if h.Inclination != nil {
		v := *h.Inclination
		c.Inclination = &v
	}
	if h.Intervals != nil {
		c.Intervals = append([]Interval(nil), h.Intervals...)
	}
	return c
}

// Float returns a pointer to v, for building drillholes with optional angles.
func Float(v float64) *float64 {
	return &v
}
