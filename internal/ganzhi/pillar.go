package ganzhi

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidPillar is returned when a stem and branch of opposite parity are
// combined. Only 60 of the 100 stem-branch pairs occur in the cycle.
var ErrInvalidPillar = errors.New("invalid stem-branch pair")

// CycleLength is the length of the sexagenary cycle.
const CycleLength = 60

// Pillar is a stem-branch pair. The zero value is 甲子, the first pillar of
// the cycle. A Pillar built by struct literal may be invalid; use Valid or
// construct through NewPillar and PillarAt.
type Pillar struct {
	Stem   Stem
	Branch Branch
}

// NewPillar returns the pillar (s, b), or ErrInvalidPillar when the pair is
// not part of the sixty-cycle.
func NewPillar(s Stem, b Branch) (Pillar, error) {
	p := Pillar{Stem: s, Branch: b}
	if !p.Valid() {
		return Pillar{}, fmt.Errorf("%w: %s", ErrInvalidPillar, p)
	}
	return p, nil
}

// PillarAt returns the pillar at position i of the sixty-cycle. Any integer
// is accepted and wrapped into [0, 60).
func PillarAt(i int) Pillar {
	i = mod(i, CycleLength)
	return Pillar{Stem: Stem(i % StemCount), Branch: Branch(i % BranchCount)}
}

// ParsePillar parses a two-character pillar such as "甲子".
func ParsePillar(s string) (Pillar, error) {
	if utf8.RuneCountInString(s) != 2 {
		return Pillar{}, fmt.Errorf("ganzhi: pillar %q must be a stem and a branch", s)
	}
	first, size := utf8.DecodeRuneInString(s)
	stem, err := ParseStem(string(first))
	if err != nil {
		return Pillar{}, err
	}
	branch, err := ParseBranch(s[size:])
	if err != nil {
		return Pillar{}, err
	}
	return NewPillar(stem, branch)
}

// Valid reports whether the pair lies on the sixty-cycle: both symbols are in
// range and share the same parity.
func (p Pillar) Valid() bool {
	return p.Stem.Valid() && p.Branch.Valid() && p.Stem%2 == Stem(p.Branch%2)
}

// Index returns the position of p in the sixty-cycle, or -1 if p is invalid.
func (p Pillar) Index() int {
	if !p.Valid() {
		return -1
	}
	// Chinese remainder over (10, 12): i ≡ stem (mod 10), i ≡ branch (mod 12).
	return mod(6*int(p.Stem)-5*int(p.Branch), CycleLength)
}

// Next returns the following pillar in the cycle.
func (p Pillar) Next() Pillar { return p.Step(1) }

// Prev returns the preceding pillar in the cycle.
func (p Pillar) Prev() Pillar { return p.Step(-1) }

// Step moves n positions along the cycle; negative n walks backward.
// Step must only be called on a valid pillar.
func (p Pillar) Step(n int) Pillar { return PillarAt(p.Index() + n) }

func (p Pillar) String() string { return p.Stem.String() + p.Branch.String() }

// MarshalText encodes the pillar as its two-character name.
func (p Pillar) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPillar, p)
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a two-character pillar name.
func (p *Pillar) UnmarshalText(text []byte) error {
	parsed, err := ParsePillar(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// NaYin is the sound-element label of a pillar.
type NaYin struct {
	Name    string
	Element Element
}

// naYinTable is indexed by cycle position / 2: consecutive yang-yin pillars
// share one label.
var naYinTable = [CycleLength / 2]NaYin{
	{"海中金", Metal}, {"炉中火", Fire}, {"大林木", Wood}, {"路旁土", Earth}, {"剑锋金", Metal},
	{"山头火", Fire}, {"涧下水", Water}, {"城头土", Earth}, {"白蜡金", Metal}, {"杨柳木", Wood},
	{"泉中水", Water}, {"屋上土", Earth}, {"霹雳火", Fire}, {"松柏木", Wood}, {"长流水", Water},
	{"沙中金", Metal}, {"山下火", Fire}, {"平地木", Wood}, {"壁上土", Earth}, {"金箔金", Metal},
	{"覆灯火", Fire}, {"天河水", Water}, {"大驿土", Earth}, {"钗钏金", Metal}, {"桑柘木", Wood},
	{"大溪水", Water}, {"沙中土", Earth}, {"天上火", Fire}, {"石榴木", Wood}, {"大海水", Water},
}

// NaYin returns the sound-element of the pillar. The pillar must be valid.
func (p Pillar) NaYin() NaYin { return naYinTable[p.Index()/2] }

// Void returns the two branches left unpaired in the ten-pillar decade (xun)
// that contains p.
func (p Pillar) Void() [2]Branch {
	head := p.Index() - int(p.Stem) // the 甲 pillar opening this decade
	first := Branch(mod(head+StemCount, BranchCount))
	return [2]Branch{first, (first + 1) % BranchCount}
}

// YearPillar returns the pillar conventionally attached to a Gregorian year,
// anchored at 4 CE = 甲子. It ignores the spring boundary (lichun), so it is
// suitable for labeling calendar years, not for birth charts.
func YearPillar(year int) Pillar { return PillarAt(year - 4) }

// Cycle returns all sixty pillars in order.
func Cycle() []Pillar {
	out := make([]Pillar, CycleLength)
	for i := range out {
		out[i] = PillarAt(i)
	}
	return out
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
