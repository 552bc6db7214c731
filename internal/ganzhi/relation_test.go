package ganzhi

import "testing"

func TestRelationshipOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dm, other Stem
		want      Relationship
	}{
		{Jia, Jia, Self},
		{Jia, Yi, Rival},
		{Jia, Bing, EatingGod},
		{Jia, Ding, HurtingOfficer},
		{Jia, Wu, IndirectWealth},
		{Jia, Ji, DirectWealth},
		{Jia, Geng, SevenKillings},
		{Jia, Xin, DirectOfficer},
		{Jia, Ren, IndirectResource},
		{Jia, Gui, DirectResource},
		{Gui, Ren, Rival},
		{Gui, Yi, EatingGod},
		{Gui, Jia, HurtingOfficer},
		{Gui, Bing, DirectWealth},
		{Gui, Ding, IndirectWealth},
		{Gui, Wu, DirectOfficer},
		{Gui, Ji, SevenKillings},
		{Gui, Geng, DirectResource},
		{Gui, Xin, IndirectResource},
	}
	for _, tt := range tests {
		t.Run(tt.dm.String()+tt.other.String(), func(t *testing.T) {
			t.Parallel()
			if got := RelationshipOf(tt.dm, tt.other); got != tt.want {
				t.Errorf("RelationshipOf(%s, %s) = %s, want %s", tt.dm, tt.other, got, tt.want)
			}
		})
	}
}

func TestRelationshipTotal(t *testing.T) {
	t.Parallel()

	for dm := Stem(0); dm < StemCount; dm++ {
		for other := Stem(0); other < StemCount; other++ {
			r := RelationshipOf(dm, other)
			if r > DirectResource {
				t.Errorf("RelationshipOf(%s, %s) = %d out of range", dm, other, r)
			}
			if (r == Self) != (dm == other) {
				t.Errorf("RelationshipOf(%s, %s) = %s", dm, other, r)
			}
			samePolarity := dm.Polarity() == other.Polarity()
			// Same-polarity variants sit at odd positions.
			if r != Self && samePolarity != (r%2 == 1) {
				t.Errorf("RelationshipOf(%s, %s) = %s does not match polarity", dm, other, r)
			}
		}
	}
}

func TestFamily(t *testing.T) {
	t.Parallel()

	tests := map[Relationship]Family{
		Self:             FamilySelf,
		Peer:             FamilyPeer,
		Rival:            FamilyPeer,
		EatingGod:        FamilyOutput,
		HurtingOfficer:   FamilyOutput,
		IndirectWealth:   FamilyWealth,
		DirectWealth:     FamilyWealth,
		SevenKillings:    FamilyAuthority,
		DirectOfficer:    FamilyAuthority,
		IndirectResource: FamilyResource,
		DirectResource:   FamilyResource,
	}
	for r, want := range tests {
		if got := r.Family(); got != want {
			t.Errorf("%s.Family() = %s, want %s", r, got, want)
		}
	}
}

func TestHiddenStemsOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		branch Branch
		want   []Stem
	}{
		{Rat, []Stem{Gui}},
		{Ox, []Stem{Ji, Gui, Xin}},
		{Tiger, []Stem{Jia, Bing, Wu}},
		{Rabbit, []Stem{Yi}},
		{Dragon, []Stem{Wu, Yi, Gui}},
		{Snake, []Stem{Bing, Geng, Wu}},
		{Horse, []Stem{Ding, Ji}},
		{Goat, []Stem{Ji, Ding, Yi}},
		{Monkey, []Stem{Geng, Ren, Wu}},
		{Rooster, []Stem{Xin}},
		{Dog, []Stem{Wu, Xin, Ding}},
		{Pig, []Stem{Ren, Jia}},
	}
	for _, tt := range tests {
		t.Run(tt.branch.String(), func(t *testing.T) {
			t.Parallel()
			got := HiddenStemsOf(tt.branch)
			if len(got) != len(tt.want) {
				t.Fatalf("HiddenStemsOf(%s) returned %d stems, want %d", tt.branch, len(got), len(tt.want))
			}
			for i, h := range got {
				if h.Stem != tt.want[i] || h.Rank != i {
					t.Errorf("HiddenStemsOf(%s)[%d] = %+v, want %s rank %d", tt.branch, i, h, tt.want[i], i)
				}
			}
		})
	}
}

func TestHiddenStemsOfReturnsCopy(t *testing.T) {
	t.Parallel()

	got := HiddenStemsOf(Ox)
	got[0].Stem = Jia
	if HiddenStemsOf(Ox)[0].Stem != Ji {
		t.Error("mutating the result changed the table")
	}
}
