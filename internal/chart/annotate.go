package chart

import (
	"fmt"

	"github.com/papapumpkin/bazi/internal/ganzhi"
)

// AnnotatedHiddenStem is a hidden stem read against the day master.
type AnnotatedHiddenStem struct {
	Stem         ganzhi.Stem
	Rank         int
	Element      ganzhi.Element
	Relationship ganzhi.Relationship
}

// AnnotatedPillar is a pillar with every attribute derived from the cycle
// tables, relative to one day master.
type AnnotatedPillar struct {
	Pillar        ganzhi.Pillar
	StemElement   ganzhi.Element
	BranchElement ganzhi.Element
	StemPolarity  ganzhi.Polarity
	Relationship  ganzhi.Relationship
	NaYin         ganzhi.NaYin
	Hidden        []AnnotatedHiddenStem
}

// Annotate derives the attributes of p read against dayMaster. Any stem equal
// to the day master is labeled Peer; only AnnotateDay keeps the Self marker.
// It returns ErrInvalidPillar when p is not one of the sixty pairs.
func Annotate(dayMaster ganzhi.Stem, p ganzhi.Pillar) (AnnotatedPillar, error) {
	return annotate(dayMaster, p, false)
}

// AnnotateDay annotates the day pillar itself: its surface stem is the day
// master and carries Self.
func AnnotateDay(day ganzhi.Pillar) (AnnotatedPillar, error) {
	return annotate(day.Stem, day, true)
}

func annotate(dayMaster ganzhi.Stem, p ganzhi.Pillar, isDay bool) (AnnotatedPillar, error) {
	if !dayMaster.Valid() {
		return AnnotatedPillar{}, fmt.Errorf("%w: day master %s", ErrInvalidPillar, dayMaster)
	}
	if !p.Valid() {
		return AnnotatedPillar{}, fmt.Errorf("%w: %s", ErrInvalidPillar, p)
	}

	rel := ganzhi.RelationshipOf(dayMaster, p.Stem)
	if !isDay {
		rel = peerUnlessSelf(rel)
	}

	hidden := ganzhi.HiddenStemsOf(p.Branch)
	out := AnnotatedPillar{
		Pillar:        p,
		StemElement:   p.Stem.Element(),
		BranchElement: p.Branch.Element(),
		StemPolarity:  p.Stem.Polarity(),
		Relationship:  rel,
		NaYin:         p.NaYin(),
		Hidden:        make([]AnnotatedHiddenStem, len(hidden)),
	}
	for i, h := range hidden {
		out.Hidden[i] = AnnotatedHiddenStem{
			Stem:         h.Stem,
			Rank:         h.Rank,
			Element:      h.Stem.Element(),
			Relationship: peerUnlessSelf(ganzhi.RelationshipOf(dayMaster, h.Stem)),
		}
	}
	return out, nil
}

// peerUnlessSelf maps Self to Peer: outside the day pillar's own stem, the
// day master's stem is an ordinary peer.
func peerUnlessSelf(r ganzhi.Relationship) ganzhi.Relationship {
	if r == ganzhi.Self {
		return ganzhi.Peer
	}
	return r
}
