package ganzhi

import "fmt"

// Relationship is one of the Ten Gods: the category a stem falls into when
// read against the day master. Self marks the day master itself and sits
// outside the ten standard categories.
type Relationship uint8

const (
	Self Relationship = iota
	Peer              // 比肩: same element, same polarity
	Rival             // 劫财: same element, opposite polarity
	EatingGod         // 食神: day master generates it, same polarity
	HurtingOfficer    // 伤官: day master generates it, opposite polarity
	IndirectWealth    // 偏财: day master controls it, same polarity
	DirectWealth      // 正财: day master controls it, opposite polarity
	SevenKillings     // 七杀: it controls the day master, same polarity
	DirectOfficer     // 正官: it controls the day master, opposite polarity
	IndirectResource  // 偏印: it generates the day master, same polarity
	DirectResource    // 正印: it generates the day master, opposite polarity
)

var relationshipNames = [...]string{
	"日主", "比肩", "劫财", "食神", "伤官", "偏财", "正财", "七杀", "正官", "偏印", "正印",
}

func (r Relationship) String() string {
	if int(r) < len(relationshipNames) {
		return relationshipNames[r]
	}
	return fmt.Sprintf("Relationship(%d)", uint8(r))
}

// Family groups the ten categories into five conceptual pairs.
type Family uint8

const (
	FamilySelf Family = iota
	FamilyPeer
	FamilyOutput
	FamilyWealth
	FamilyAuthority
	FamilyResource
)

var familyNames = [...]string{"日主", "比劫", "食伤", "财星", "官杀", "印星"}

func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return fmt.Sprintf("Family(%d)", uint8(f))
}

// Family returns the conceptual family of r.
func (r Relationship) Family() Family {
	if r == Self {
		return FamilySelf
	}
	return Family((r-1)/2 + 1)
}

// relationships is the 10×10 matrix indexed [dayMaster][other].
var relationships = buildRelationships()

func buildRelationships() [StemCount][StemCount]Relationship {
	var m [StemCount][StemCount]Relationship
	for dm := Stem(0); dm < StemCount; dm++ {
		for other := Stem(0); other < StemCount; other++ {
			m[dm][other] = derive(dm, other)
		}
	}
	return m
}

func derive(dm, other Stem) Relationship {
	if dm == other {
		return Self
	}
	// Distance along the generation cycle from the day master's element.
	var family Relationship
	switch (other.Element() + 5 - dm.Element()) % 5 {
	case 0:
		family = Peer
	case 1:
		family = EatingGod
	case 2:
		family = IndirectWealth
	case 3:
		family = SevenKillings
	case 4:
		family = IndirectResource
	}
	if dm.Polarity() != other.Polarity() {
		family++
	}
	return family
}

// RelationshipOf returns the category of other read against the day master.
// It is total over the ten stems; identical stems yield Self.
func RelationshipOf(dayMaster, other Stem) Relationship {
	return relationships[dayMaster][other]
}

// HiddenStem is one of the stems latent in a branch.
type HiddenStem struct {
	Stem Stem
	// Rank is 0 for the principal qi, 1 for the secondary, 2 for the residual.
	Rank int
}

var hiddenStems = [BranchCount][]Stem{
	Rat:     {Gui},
	Ox:      {Ji, Gui, Xin},
	Tiger:   {Jia, Bing, Wu},
	Rabbit:  {Yi},
	Dragon:  {Wu, Yi, Gui},
	Snake:   {Bing, Geng, Wu},
	Horse:   {Ding, Ji},
	Goat:    {Ji, Ding, Yi},
	Monkey:  {Geng, Ren, Wu},
	Rooster: {Xin},
	Dog:     {Wu, Xin, Ding},
	Pig:     {Ren, Jia},
}

// HiddenStemsOf returns the branch's hidden stems, principal qi first. The
// returned slice is freshly allocated.
func HiddenStemsOf(b Branch) []HiddenStem {
	stems := hiddenStems[b]
	out := make([]HiddenStem, len(stems))
	for i, s := range stems {
		out[i] = HiddenStem{Stem: s, Rank: i}
	}
	return out
}
