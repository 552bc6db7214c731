package ganzhi

import (
	"errors"
	"fmt"
)

// ErrTable is returned by CheckTables when a static table is incomplete or
// inconsistent.
var ErrTable = errors.New("cycle table inconsistency")

// CheckTables verifies the invariants of every static table: each valid
// pillar has a sound-element, each branch has one to three distinct hidden
// stems, and each day master relates to the ten stems through ten distinct
// categories with Self on the diagonal.
func CheckTables() error {
	var errs []error

	seen := make(map[Pillar]bool, CycleLength)
	for _, p := range Cycle() {
		if !p.Valid() {
			errs = append(errs, fmt.Errorf("%w: cycle yields invalid pillar %s", ErrTable, p))
			continue
		}
		if seen[p] {
			errs = append(errs, fmt.Errorf("%w: pillar %s repeats in the cycle", ErrTable, p))
		}
		seen[p] = true
		if p.NaYin().Name == "" {
			errs = append(errs, fmt.Errorf("%w: pillar %s has no na-yin", ErrTable, p))
		}
	}

	for b := Branch(0); b < BranchCount; b++ {
		hidden := HiddenStemsOf(b)
		if len(hidden) == 0 || len(hidden) > 3 {
			errs = append(errs, fmt.Errorf("%w: branch %s has %d hidden stems", ErrTable, b, len(hidden)))
			if len(hidden) == 0 {
				continue
			}
		}
		dup := make(map[Stem]bool, len(hidden))
		for _, h := range hidden {
			if dup[h.Stem] {
				errs = append(errs, fmt.Errorf("%w: branch %s repeats hidden stem %s", ErrTable, b, h.Stem))
			}
			dup[h.Stem] = true
		}
		if hidden[0].Stem.Element() != b.Element() {
			errs = append(errs, fmt.Errorf("%w: branch %s principal qi %s differs from its element", ErrTable, b, hidden[0].Stem))
		}
	}

	for dm := Stem(0); dm < StemCount; dm++ {
		cats := make(map[Relationship]bool, StemCount)
		for other := Stem(0); other < StemCount; other++ {
			r := RelationshipOf(dm, other)
			if (r == Self) != (dm == other) {
				errs = append(errs, fmt.Errorf("%w: %s→%s is %s", ErrTable, dm, other, r))
			}
			cats[r] = true
		}
		if len(cats) != StemCount {
			errs = append(errs, fmt.Errorf("%w: day master %s spans %d categories", ErrTable, dm, len(cats)))
		}
	}

	return errors.Join(errs...)
}
