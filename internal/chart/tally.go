package chart

import "github.com/papapumpkin/bazi/internal/ganzhi"

// SurfaceSymbols is the number of stems and branches counted by a tally:
// four pillars, one stem and one branch each.
const SurfaceSymbols = 8

// ElementTally counts how often each element appears on the surface of a
// chart, indexed by ganzhi.Element. Hidden stems are not counted.
type ElementTally [5]int

// Tally counts the elements of each pillar's stem and branch.
func Tally(c Chart) ElementTally {
	var t ElementTally
	for _, p := range c.Pillars {
		t[p.Pillar.Stem.Element()]++
		t[p.Pillar.Branch.Element()]++
	}
	return t
}

// Count returns the tally for e.
func (t ElementTally) Count(e ganzhi.Element) int { return t[e] }

// Total returns the sum of all counts; SurfaceSymbols for any chart.
func (t ElementTally) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

// Missing returns the elements with a zero count, in generation order.
func (t ElementTally) Missing() []ganzhi.Element {
	var out []ganzhi.Element
	for _, e := range ganzhi.Elements {
		if t[e] == 0 {
			out = append(out, e)
		}
	}
	return out
}

// Dominant returns the elements sharing the highest count, in generation order.
func (t ElementTally) Dominant() []ganzhi.Element {
	best := 0
	for _, c := range t {
		best = max(best, c)
	}
	if best == 0 {
		return nil
	}
	var out []ganzhi.Element
	for _, e := range ganzhi.Elements {
		if t[e] == best {
			out = append(out, e)
		}
	}
	return out
}

// PolarityTally counts yang and yin among the eight surface symbols.
type PolarityTally struct {
	Yang int
	Yin  int
}

// TallyPolarity counts the polarity of each pillar's stem and branch.
func TallyPolarity(c Chart) PolarityTally {
	var t PolarityTally
	for _, p := range c.Pillars {
		for _, pol := range []ganzhi.Polarity{p.Pillar.Stem.Polarity(), p.Pillar.Branch.Polarity()} {
			if pol == ganzhi.Yang {
				t.Yang++
			} else {
				t.Yin++
			}
		}
	}
	return t
}
